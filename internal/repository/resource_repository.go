package repository

import (
	"studystack_backend/internal/model"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	DB *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

func (r *ResourceRepository) Create(resource *model.Resource) error {
	return r.DB.Create(resource).Error
}

func (r *ResourceRepository) FindByID(id uint) (*model.Resource, error) {
	var resource model.Resource
	err := r.DB.First(&resource, id).Error
	return &resource, err
}

// FindByIDWithRelations loads a resource with its uploader and tag set.
func (r *ResourceRepository) FindByIDWithRelations(id uint) (*model.Resource, error) {
	var resource model.Resource
	err := r.DB.Preload("Uploader").Preload("Tags").First(&resource, id).Error
	return &resource, err
}

func (r *ResourceRepository) Save(resource *model.Resource) error {
	return r.DB.Save(resource).Error
}

// Delete removes the resource row. Tag joins, bookmarks and activities
// go with it via the FK cascade rules.
func (r *ResourceRepository) Delete(resource *model.Resource) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(resource).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("resource_id = ?", resource.ID).Delete(&model.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_id = ?", resource.ID).Delete(&model.Activity{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(resource).Error
	})
}

func (r *ResourceRepository) IncrementViews(id uint) error {
	return r.DB.Model(&model.Resource{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).
		Error
}

func (r *ResourceRepository) IncrementDownloads(id uint) error {
	return r.DB.Model(&model.Resource{}).
		Where("id = ?", id).
		Update("downloads", gorm.Expr("downloads + 1")).
		Error
}

// ReplaceTags rebuilds the resource's tag set wholesale.
func (r *ResourceRepository) ReplaceTags(resource *model.Resource, tags []model.Tag) error {
	return r.DB.Model(resource).Association("Tags").Replace(tags)
}
