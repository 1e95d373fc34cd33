package repository

import (
	"testing"

	"studystack_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestResourceIncrementCounters(t *testing.T) {
	db := newTestDB(t)
	repo := NewResourceRepository(db)
	resource := seedResource(t, db, seedUser(t, db, "uploader", model.Contributor).ID)

	require.NoError(t, repo.IncrementViews(resource.ID))
	require.NoError(t, repo.IncrementViews(resource.ID))
	require.NoError(t, repo.IncrementDownloads(resource.ID))

	stored, err := repo.FindByID(resource.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Views)
	assert.Equal(t, 1, stored.Downloads)
}

func TestResourceReplaceTags(t *testing.T) {
	db := newTestDB(t)
	repo := NewResourceRepository(db)
	tagRepo := NewTagRepository(db)
	resource := seedResource(t, db, seedUser(t, db, "uploader", model.Contributor).ID)

	first, err := tagRepo.ResolveAll([]string{"algebra", "matrices"})
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceTags(resource, first))

	second, err := tagRepo.ResolveAll([]string{"calculus"})
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceTags(resource, second))

	stored, err := repo.FindByIDWithRelations(resource.ID)
	require.NoError(t, err)
	require.Len(t, stored.Tags, 1)
	assert.Equal(t, "calculus", stored.Tags[0].Name)

	// Orphaned tags stay in the catalog.
	tags, err := tagRepo.List()
	require.NoError(t, err)
	assert.Len(t, tags, 3)
}

func TestResourceDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewResourceRepository(db)
	tagRepo := NewTagRepository(db)
	uploader := seedUser(t, db, "uploader", model.Contributor)
	viewer := seedUser(t, db, "viewer", model.Viewer)
	resource := seedResource(t, db, uploader.ID)

	tags, err := tagRepo.ResolveAll([]string{"algebra"})
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceTags(resource, tags))
	require.NoError(t, db.Create(&model.Bookmark{UserID: viewer.ID, ResourceID: resource.ID}).Error)
	require.NoError(t, db.Create(&model.Activity{UserID: viewer.ID, ResourceID: resource.ID, Action: model.ActionView}).Error)

	require.NoError(t, repo.Delete(resource))

	_, err = repo.FindByID(resource.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var bookmarks, activities, joins int64
	require.NoError(t, db.Model(&model.Bookmark{}).Where("resource_id = ?", resource.ID).Count(&bookmarks).Error)
	require.NoError(t, db.Model(&model.Activity{}).Where("resource_id = ?", resource.ID).Count(&activities).Error)
	require.NoError(t, db.Table("resource_tags").Where("resource_id = ?", resource.ID).Count(&joins).Error)
	assert.Zero(t, bookmarks)
	assert.Zero(t, activities)
	assert.Zero(t, joins)
}
