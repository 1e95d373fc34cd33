package repository

import (
	"time"

	"studystack_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(activity *model.Activity) error {
	return r.DB.Create(activity).Error
}

// FindByUser returns a page of the user's own activity, optionally
// filtered by action.
func (r *ActivityRepository) FindByUser(userID uint, action model.ActivityAction, page, limit int) ([]model.Activity, int64, error) {
	query := r.DB.Model(&model.Activity{}).Where("user_id = ?", userID)
	if action != "" {
		query = query.Where("action = ?", action)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []model.Activity
	err := query.
		Preload("Resource").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&activities).Error
	return activities, total, err
}

func (r *ActivityRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Activity{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// DayCount is one calendar-day bucket of activity.
type DayCount struct {
	Day    string               `json:"day"`
	Action model.ActivityAction `json:"action"`
	Count  int64                `json:"count"`
}

// CountByDay buckets activity on the given resources per calendar day
// since the cutoff. DATE() is understood by both postgres and sqlite.
func (r *ActivityRepository) CountByDay(resourceIDs []uint, since time.Time) ([]DayCount, error) {
	var rows []DayCount
	if len(resourceIDs) == 0 {
		return rows, nil
	}
	err := r.DB.Model(&model.Activity{}).
		Select("DATE(created_at) AS day, action, COUNT(*) AS count").
		Where("resource_id IN ? AND created_at >= ?", resourceIDs, since).
		Group("DATE(created_at), action").
		Order("day ASC").
		Scan(&rows).Error
	return rows, err
}
