package repository

import (
	"testing"

	"studystack_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserFindByExternalID(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	user := seedUser(t, db, "ada", model.Contributor)

	found, err := repo.FindByExternalID(user.ExternalID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByExternalID("ext-unknown")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	seedUser(t, db, "ada", model.Viewer)

	err := repo.Create(&model.User{
		ExternalID: "ext-other",
		Email:      "ada@example.com",
		Name:       "Other Ada",
		Role:       model.Viewer,
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserUpdateContactInfo(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	user := seedUser(t, db, "ada", model.Contributor)

	require.NoError(t, repo.UpdateContactInfo(user.ID, strPtr("+1-555-0100"), nil))

	stored, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Phone)
	assert.Equal(t, "+1-555-0100", *stored.Phone)
	assert.Nil(t, stored.ContactEmail)

	// No-op when nothing is supplied.
	require.NoError(t, repo.UpdateContactInfo(user.ID, nil, nil))
}
