package repository

import (
	"testing"

	"studystack_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkToggle(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookmarkRepository(db)
	user := seedUser(t, db, "viewer", model.Viewer)
	resource := seedResource(t, db, seedUser(t, db, "uploader", model.Contributor).ID)

	bookmarked, count, err := repo.Toggle(user.ID, resource.ID)
	require.NoError(t, err)
	assert.True(t, bookmarked)
	assert.Equal(t, 1, count)

	exists, err := repo.Exists(user.ID, resource.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Second toggle removes the row and restores the counter.
	bookmarked, count, err = repo.Toggle(user.ID, resource.ID)
	require.NoError(t, err)
	assert.False(t, bookmarked)
	assert.Equal(t, 0, count)

	exists, err = repo.Exists(user.ID, resource.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	var stored model.Resource
	require.NoError(t, db.First(&stored, resource.ID).Error)
	assert.Equal(t, 0, stored.Bookmarks)
}

func TestBookmarkToggleCounterNeverNegative(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookmarkRepository(db)
	user := seedUser(t, db, "viewer", model.Viewer)
	resource := seedResource(t, db, seedUser(t, db, "uploader", model.Contributor).ID)

	// Row inserted out of band, counter left at zero.
	require.NoError(t, db.Create(&model.Bookmark{UserID: user.ID, ResourceID: resource.ID}).Error)

	bookmarked, count, err := repo.Toggle(user.ID, resource.ID)
	require.NoError(t, err)
	assert.False(t, bookmarked)
	assert.Equal(t, 0, count)
}

func TestBookmarkUniquePair(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "viewer", model.Viewer)
	resource := seedResource(t, db, seedUser(t, db, "uploader", model.Contributor).ID)

	require.NoError(t, db.Create(&model.Bookmark{UserID: user.ID, ResourceID: resource.ID}).Error)
	err := db.Create(&model.Bookmark{UserID: user.ID, ResourceID: resource.ID}).Error
	assert.Error(t, err)
}

func TestBookmarkFindByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookmarkRepository(db)
	uploader := seedUser(t, db, "uploader", model.Contributor)
	user := seedUser(t, db, "viewer", model.Viewer)

	for i := 0; i < 3; i++ {
		resource := seedResource(t, db, uploader.ID)
		_, _, err := repo.Toggle(user.ID, resource.ID)
		require.NoError(t, err)
	}

	bookmarks, total, err := repo.FindByUser(user.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, bookmarks, 2)
	require.NotNil(t, bookmarks[0].Resource)
	assert.Equal(t, "Linear Algebra Notes", bookmarks[0].Resource.Title)

	count, err := repo.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
