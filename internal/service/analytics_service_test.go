package service

import (
	"context"
	"testing"
	"time"

	"studystack_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsReport(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "owner", model.Contributor)
	viewer := env.newUser(t, "viewer", model.Viewer)

	first := env.createLink(t, owner, "first", false)
	second := env.createLink(t, owner, "second", false)

	require.NoError(t, env.db.Model(&model.Resource{}).Where("id = ?", first.ID).
		Updates(map[string]interface{}{"views": 8, "downloads": 3, "bookmarks": 2}).Error)
	require.NoError(t, env.db.Model(&model.Resource{}).Where("id = ?", second.ID).
		Updates(map[string]interface{}{"views": 2, "downloads": 1}).Error)

	record := func(resourceID uint, action model.ActivityAction, at time.Time) {
		activity := &model.Activity{UserID: viewer.ID, ResourceID: resourceID, Action: action}
		require.NoError(t, env.activityRepo.Create(activity))
		require.NoError(t, env.db.Model(&model.Activity{}).
			Where("id = ?", activity.ID).
			UpdateColumn("created_at", at).Error)
	}

	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	record(first.ID, model.ActionView, yesterday)
	record(first.ID, model.ActionView, yesterday)
	record(first.ID, model.ActionDownload, yesterday)
	record(second.ID, model.ActionView, now)
	record(second.ID, model.ActionBookmark, now)

	report, err := env.analytics.Report(context.Background(), owner.ID, 7)
	require.NoError(t, err)

	assert.Equal(t, 7, report.WindowDays)
	assert.Equal(t, int64(2), report.ResourceCount)
	assert.Equal(t, int64(10), report.TotalViews)
	assert.Equal(t, int64(4), report.TotalDownloads)
	assert.Equal(t, int64(2), report.TotalBookmarks)
	assert.InDelta(t, 0.4, report.EngagementRate, 0.0001)

	require.Len(t, report.Daily, 2)
	assert.Equal(t, yesterday.Format("2006-01-02"), report.Daily[0].Day)
	assert.Equal(t, int64(2), report.Daily[0].Views)
	assert.Equal(t, int64(1), report.Daily[0].Downloads)
	assert.Zero(t, report.Daily[0].Bookmarks)

	assert.Equal(t, now.Format("2006-01-02"), report.Daily[1].Day)
	assert.Equal(t, int64(1), report.Daily[1].Views)
	assert.Equal(t, int64(1), report.Daily[1].Bookmarks)
}

func TestAnalyticsReportWindowFallback(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "owner", model.Contributor)

	report, err := env.analytics.Report(context.Background(), owner.ID, 14)
	require.NoError(t, err)
	assert.Equal(t, 30, report.WindowDays)
}

func TestAnalyticsReportEmptyCatalog(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "owner", model.Contributor)

	report, err := env.analytics.Report(context.Background(), owner.ID, 7)
	require.NoError(t, err)
	assert.Zero(t, report.ResourceCount)
	assert.Zero(t, report.TotalViews)
	assert.Zero(t, report.EngagementRate)
	assert.Empty(t, report.Daily)
}

func TestAnalyticsReportScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "owner", model.Contributor)
	other := env.newUser(t, "other", model.Contributor)

	mine := env.createLink(t, owner, "mine", false)
	theirs := env.createLink(t, other, "theirs", false)
	require.NoError(t, env.db.Model(&model.Resource{}).Where("id = ?", mine.ID).
		Update("views", 5).Error)
	require.NoError(t, env.db.Model(&model.Resource{}).Where("id = ?", theirs.ID).
		Update("views", 100).Error)

	report, err := env.analytics.Report(context.Background(), owner.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.ResourceCount)
	assert.Equal(t, int64(5), report.TotalViews)
}
