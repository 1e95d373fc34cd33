package repository

import (
	"studystack_backend/internal/model"

	"gorm.io/gorm"
)

type ContactRepository struct {
	DB *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(message *model.ContactMessage) error {
	return r.DB.Create(message).Error
}

func (r *ContactRepository) List(page, limit int) ([]model.ContactMessage, int64, error) {
	var total int64
	if err := r.DB.Model(&model.ContactMessage{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []model.ContactMessage
	err := r.DB.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error
	return messages, total, err
}
