package service

import (
	"studystack_backend/internal/model"
	"studystack_backend/internal/repository"
	"studystack_backend/internal/util"
)

// UserService covers the user-scoped queries: profile, stats, bookmarks
// and activity history.
type UserService struct {
	UserRepo     *repository.UserRepository
	ResourceRepo *repository.ResourceRepository
	BookmarkRepo *repository.BookmarkRepository
	ActivityRepo *repository.ActivityRepository
}

func NewUserService(
	userRepo *repository.UserRepository,
	resourceRepo *repository.ResourceRepository,
	bookmarkRepo *repository.BookmarkRepository,
	activityRepo *repository.ActivityRepository,
) *UserService {
	return &UserService{
		UserRepo:     userRepo,
		ResourceRepo: resourceRepo,
		BookmarkRepo: bookmarkRepo,
		ActivityRepo: activityRepo,
	}
}

// UpdateProfileInput carries a partial profile edit.
type UpdateProfileInput struct {
	Name         *string
	Institution  *string
	Phone        *string
	ContactEmail *string
}

func (s *UserService) UpdateProfile(user *model.User, in *UpdateProfileInput) (*model.User, error) {
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Institution != nil {
		user.Institution = *in.Institution
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}
	if in.ContactEmail != nil {
		user.ContactEmail = in.ContactEmail
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UserStats are the headline numbers for the dashboard.
type UserStats struct {
	Uploads        int64 `json:"uploads"`
	Bookmarks      int64 `json:"bookmarks"`
	Activities     int64 `json:"activities"`
	TotalViews     int64 `json:"totalViews"`
	TotalDownloads int64 `json:"totalDownloads"`
}

func (s *UserService) GetStats(userID uint) (*UserStats, error) {
	stats := &UserStats{}

	if err := s.ResourceRepo.DB.Model(&model.Resource{}).
		Where("uploader_id = ?", userID).
		Count(&stats.Uploads).Error; err != nil {
		return nil, err
	}

	var err error
	if stats.Bookmarks, err = s.BookmarkRepo.CountByUser(userID); err != nil {
		return nil, err
	}
	if stats.Activities, err = s.ActivityRepo.CountByUser(userID); err != nil {
		return nil, err
	}

	type sums struct {
		Views     int64
		Downloads int64
	}
	var totals sums
	if err := s.ResourceRepo.DB.Model(&model.Resource{}).
		Select("COALESCE(SUM(views),0) AS views, COALESCE(SUM(downloads),0) AS downloads").
		Where("uploader_id = ?", userID).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	stats.TotalViews = totals.Views
	stats.TotalDownloads = totals.Downloads

	return stats, nil
}

// GetBookmarks returns a page of the user's bookmarked resources with
// uploader and tag relations.
func (s *UserService) GetBookmarks(userID uint, page, limit int) ([]model.Bookmark, util.Pagination, error) {
	bookmarks, total, err := s.BookmarkRepo.FindByUser(userID, page, limit)
	if err != nil {
		return nil, util.Pagination{}, err
	}
	return bookmarks, util.NewPagination(page, limit, total), nil
}

// GetActivities returns a page of the user's own activity log,
// optionally filtered by action.
func (s *UserService) GetActivities(userID uint, action model.ActivityAction, page, limit int) ([]model.Activity, util.Pagination, error) {
	if action != "" && !model.ValidActivityAction(action) {
		return nil, util.Pagination{}, util.ErrInvalidAction
	}
	activities, total, err := s.ActivityRepo.FindByUser(userID, action, page, limit)
	if err != nil {
		return nil, util.Pagination{}, err
	}
	return activities, util.NewPagination(page, limit, total), nil
}
