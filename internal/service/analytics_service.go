package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studystack_backend/internal/model"
	"studystack_backend/internal/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"studystack_backend/pkg/logger"
)

const analyticsCacheTTL = 5 * time.Minute

// AnalyticsService aggregates engagement over a contributor's own
// resources. Results are cached briefly in Redis since the window
// queries touch every activity row for the user's catalog.
type AnalyticsService struct {
	ResourceRepo *repository.ResourceRepository
	ActivityRepo *repository.ActivityRepository
	Redis        *redis.Client
}

func NewAnalyticsService(resourceRepo *repository.ResourceRepository, activityRepo *repository.ActivityRepository, rdb *redis.Client) *AnalyticsService {
	return &AnalyticsService{
		ResourceRepo: resourceRepo,
		ActivityRepo: activityRepo,
		Redis:        rdb,
	}
}

// DailyBucket is one calendar day of activity counts.
type DailyBucket struct {
	Day       string `json:"day"`
	Views     int64  `json:"views"`
	Downloads int64  `json:"downloads"`
	Bookmarks int64  `json:"bookmarks"`
}

// AnalyticsReport is the contributor dashboard payload.
type AnalyticsReport struct {
	ResourceCount  int64         `json:"resourceCount"`
	TotalViews     int64         `json:"totalViews"`
	TotalDownloads int64         `json:"totalDownloads"`
	TotalBookmarks int64         `json:"totalBookmarks"`
	EngagementRate float64       `json:"engagementRate"`
	WindowDays     int           `json:"windowDays"`
	Daily          []DailyBucket `json:"daily"`
}

// Report computes totals across the user's resources, the engagement
// rate (downloads over views) and per-day activity buckets over the
// selected window (7, 30 or 90 days; anything else falls back to 30).
func (s *AnalyticsService) Report(ctx context.Context, userID uint, windowDays int) (*AnalyticsReport, error) {
	switch windowDays {
	case 7, 30, 90:
	default:
		windowDays = 30
	}

	cacheKey := fmt.Sprintf("analytics:%d:%d", userID, windowDays)
	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached AnalyticsReport
			if json.Unmarshal([]byte(val), &cached) == nil {
				return &cached, nil
			}
		}
	}

	report := &AnalyticsReport{WindowDays: windowDays}

	type totals struct {
		Count     int64
		Views     int64
		Downloads int64
		Bookmarks int64
	}
	var t totals
	err := s.ResourceRepo.DB.Model(&model.Resource{}).
		Select("COUNT(*) AS count, COALESCE(SUM(views),0) AS views, COALESCE(SUM(downloads),0) AS downloads, COALESCE(SUM(bookmarks),0) AS bookmarks").
		Where("uploader_id = ?", userID).
		Scan(&t).Error
	if err != nil {
		return nil, err
	}

	report.ResourceCount = t.Count
	report.TotalViews = t.Views
	report.TotalDownloads = t.Downloads
	report.TotalBookmarks = t.Bookmarks
	if t.Views > 0 {
		report.EngagementRate = float64(t.Downloads) / float64(t.Views)
	}

	var resourceIDs []uint
	if err := s.ResourceRepo.DB.Model(&model.Resource{}).
		Where("uploader_id = ?", userID).
		Pluck("id", &resourceIDs).Error; err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -windowDays).Truncate(24 * time.Hour)
	rows, err := s.ActivityRepo.CountByDay(resourceIDs, since)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*DailyBucket)
	order := make([]string, 0, len(rows))
	for _, row := range rows {
		b, ok := buckets[row.Day]
		if !ok {
			b = &DailyBucket{Day: row.Day}
			buckets[row.Day] = b
			order = append(order, row.Day)
		}
		switch row.Action {
		case model.ActionView:
			b.Views += row.Count
		case model.ActionDownload:
			b.Downloads += row.Count
		case model.ActionBookmark:
			b.Bookmarks += row.Count
		}
	}
	report.Daily = make([]DailyBucket, 0, len(order))
	for _, day := range order {
		report.Daily = append(report.Daily, *buckets[day])
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(report); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, analyticsCacheTTL).Err(); err != nil {
				logger.Log.Warn("analytics cache write failed", zap.Error(err))
			}
		}
	}

	return report, nil
}
