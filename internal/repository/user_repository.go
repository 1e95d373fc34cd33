package repository

import (
	"studystack_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByExternalID(externalID string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("external_id = ?", externalID).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// UpdateContactInfo sets only the optional contact fields, leaving the
// rest of the profile untouched.
func (r *UserRepository) UpdateContactInfo(userID uint, phone, contactEmail *string) error {
	updates := map[string]interface{}{}
	if phone != nil {
		updates["phone"] = *phone
	}
	if contactEmail != nil {
		updates["contact_email"] = *contactEmail
	}
	if len(updates) == 0 {
		return nil
	}
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error
}
