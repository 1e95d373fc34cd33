package service

import (
	"testing"

	"studystack_backend/internal/model"
	"studystack_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "ada", model.Viewer)

	updated, err := env.users.UpdateProfile(user, &UpdateProfileInput{
		Name:        strPtr("Ada L."),
		Institution: strPtr("Analytical Engines Inc"),
		Phone:       strPtr("+44-20-5550"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Name)
	assert.Equal(t, "Analytical Engines Inc", updated.Institution)

	stored, err := env.userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", stored.Name)
	require.NotNil(t, stored.Phone)
	assert.Equal(t, "+44-20-5550", *stored.Phone)
	// Untouched fields survive.
	assert.Equal(t, "ada@example.com", stored.Email)
}

func TestGetStats(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "owner", model.Contributor)
	viewer := env.newUser(t, "viewer", model.Viewer)

	first := env.createLink(t, owner, "first", false)
	env.createLink(t, owner, "second", false)
	require.NoError(t, env.db.Model(&model.Resource{}).Where("id = ?", first.ID).
		Updates(map[string]interface{}{"views": 7, "downloads": 2}).Error)

	_, _, err := env.resources.ToggleBookmark(viewer, first.ID)
	require.NoError(t, err)

	stats, err := env.users.GetStats(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Uploads)
	assert.Equal(t, int64(7), stats.TotalViews)
	assert.Equal(t, int64(2), stats.TotalDownloads)
	// Two uploads were recorded as activities for the owner.
	assert.Equal(t, int64(2), stats.Activities)
	assert.Zero(t, stats.Bookmarks)

	viewerStats, err := env.users.GetStats(viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), viewerStats.Bookmarks)
	assert.Zero(t, viewerStats.Uploads)
}

func TestGetBookmarksPaged(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "owner", model.Contributor)
	viewer := env.newUser(t, "viewer", model.Viewer)

	for _, title := range []string{"a", "b", "c"} {
		resource := env.createLink(t, owner, title, false)
		_, _, err := env.resources.ToggleBookmark(viewer, resource.ID)
		require.NoError(t, err)
	}

	bookmarks, page, err := env.users.GetBookmarks(viewer.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, bookmarks, 2)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.True(t, page.HasNextPage)
	require.NotNil(t, bookmarks[0].Resource)
	require.NotNil(t, bookmarks[0].Resource.Uploader)
}

func TestGetActivities(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "owner", model.Contributor)
	viewer := env.newUser(t, "viewer", model.Viewer)
	resource := env.createLink(t, owner, "notes", false)

	_, _, err := env.resources.GetByID(resource.ID, viewer)
	require.NoError(t, err)
	_, err = env.resources.TrackDownload(viewer, resource.ID)
	require.NoError(t, err)

	all, page, err := env.users.GetActivities(viewer.ID, "", 1, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(2), page.TotalCount)

	downloads, _, err := env.users.GetActivities(viewer.ID, model.ActionDownload, 1, 10)
	require.NoError(t, err)
	require.Len(t, downloads, 1)
	assert.Equal(t, model.ActionDownload, downloads[0].Action)
}

func TestGetActivitiesInvalidAction(t *testing.T) {
	env := newTestEnv(t)
	viewer := env.newUser(t, "viewer", model.Viewer)

	_, _, err := env.users.GetActivities(viewer.ID, "LIKE", 1, 10)
	assert.ErrorIs(t, err, util.ErrInvalidAction)
}

func TestContactSubmit(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "ada", model.Viewer)

	require.NoError(t, env.contact.Submit(&model.ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Broken link",
		Body:    "The optics manual 404s.",
		UserID:  &user.ID,
	}))

	messages, total, err := env.contactRepo.List(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, messages, 1)
	assert.Equal(t, "Broken link", messages[0].Subject)
	require.NotNil(t, messages[0].UserID)
	assert.Equal(t, user.ID, *messages[0].UserID)
}
