package repository

import (
	"errors"

	"studystack_backend/internal/model"

	"gorm.io/gorm"
)

type BookmarkRepository struct {
	DB *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) *BookmarkRepository {
	return &BookmarkRepository{DB: db}
}

func (r *BookmarkRepository) Exists(userID, resourceID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Bookmark{}).
		Where("user_id = ? AND resource_id = ?", userID, resourceID).
		Count(&count).Error
	return count > 0, err
}

// Toggle flips the bookmark state for (user, resource). The row change
// and the resource's denormalized counter commit in one transaction so
// a double-click cannot desynchronize them. Returns the new state and
// counter value.
func (r *BookmarkRepository) Toggle(userID, resourceID uint) (bookmarked bool, count int, err error) {
	err = r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.Bookmark
		findErr := tx.Where("user_id = ? AND resource_id = ?", userID, resourceID).
			First(&existing).Error

		switch {
		case findErr == nil:
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Resource{}).
				Where("id = ? AND bookmarks > 0", resourceID).
				Update("bookmarks", gorm.Expr("bookmarks - 1")).Error; err != nil {
				return err
			}
			bookmarked = false

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if err := tx.Create(&model.Bookmark{UserID: userID, ResourceID: resourceID}).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Resource{}).
				Where("id = ?", resourceID).
				Update("bookmarks", gorm.Expr("bookmarks + 1")).Error; err != nil {
				return err
			}
			bookmarked = true

		default:
			return findErr
		}

		return tx.Model(&model.Resource{}).
			Select("bookmarks").
			Where("id = ?", resourceID).
			Scan(&count).Error
	})
	return bookmarked, count, err
}

// FindByUser returns a page of the user's bookmarks with the bookmarked
// resources and their relations inlined.
func (r *BookmarkRepository) FindByUser(userID uint, page, limit int) ([]model.Bookmark, int64, error) {
	var total int64
	query := r.DB.Model(&model.Bookmark{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookmarks []model.Bookmark
	err := r.DB.Where("user_id = ?", userID).
		Preload("Resource").
		Preload("Resource.Uploader").
		Preload("Resource.Tags").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bookmarks).Error
	return bookmarks, total, err
}

func (r *BookmarkRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Bookmark{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
