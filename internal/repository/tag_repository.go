package repository

import (
	"studystack_backend/internal/model"

	"gorm.io/gorm"
)

type TagRepository struct {
	DB *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{DB: db}
}

// FindOrCreate resolves a tag by normalized name, creating it when
// missing. Blank names after normalization are skipped by callers.
func (r *TagRepository) FindOrCreate(name string) (*model.Tag, error) {
	normalized := model.NormalizeTagName(name)
	var tag model.Tag
	err := r.DB.Where("name = ?", normalized).
		Attrs(model.Tag{Name: normalized}).
		FirstOrCreate(&tag).Error
	return &tag, err
}

// ResolveAll maps raw tag names to tag rows, dropping blanks and
// duplicates.
func (r *TagRepository) ResolveAll(names []string) ([]model.Tag, error) {
	seen := make(map[string]bool, len(names))
	tags := make([]model.Tag, 0, len(names))
	for _, raw := range names {
		normalized := model.NormalizeTagName(raw)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true

		tag, err := r.FindOrCreate(normalized)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (r *TagRepository) List() ([]model.Tag, error) {
	var tags []model.Tag
	err := r.DB.Order("name ASC").Find(&tags).Error
	return tags, err
}
