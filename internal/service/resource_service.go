package service

import (
	"context"
	"errors"
	"mime/multipart"

	"studystack_backend/internal/model"
	"studystack_backend/internal/repository"
	"studystack_backend/internal/util"
	"studystack_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SideEffect is the outcome of a best-effort operation (activity writes,
// blob deletes). Failures are logged and carried here instead of being
// propagated, so the primary operation never fails because of them.
type SideEffect struct {
	Op  string
	Err error
}

func (e SideEffect) OK() bool { return e.Err == nil }

// ResourceService implements the resource catalog: create, list, fetch,
// update, delete, bookmark toggle and download tracking.
type ResourceService struct {
	ResourceRepo *repository.ResourceRepository
	TagRepo      *repository.TagRepository
	BookmarkRepo *repository.BookmarkRepository
	ActivityRepo *repository.ActivityRepository
	UserRepo     *repository.UserRepository
	Storage      *StorageService
}

func NewResourceService(
	resourceRepo *repository.ResourceRepository,
	tagRepo *repository.TagRepository,
	bookmarkRepo *repository.BookmarkRepository,
	activityRepo *repository.ActivityRepository,
	userRepo *repository.UserRepository,
	storage *StorageService,
) *ResourceService {
	return &ResourceService{
		ResourceRepo: resourceRepo,
		TagRepo:      tagRepo,
		BookmarkRepo: bookmarkRepo,
		ActivityRepo: activityRepo,
		UserRepo:     userRepo,
		Storage:      storage,
	}
}

// CreateResourceInput carries the validated upload form.
type CreateResourceInput struct {
	Title        string
	Description  string
	Subject      string
	ResourceType model.ResourceType
	Semester     *string
	Year         *int
	IsPrivate    bool
	AllowContact bool
	URL          *string
	Tags         []string
	Phone        *string
	ContactEmail *string
}

// validate enforces the type-conditional invariants: LINK carries a URL
// and nothing else, every other type carries a file, PYQ also needs the
// exam year.
func (in *CreateResourceInput) validate(file *multipart.FileHeader) error {
	if in.Title == "" || in.Description == "" || in.Subject == "" {
		return errors.New("title, description and subject are required")
	}
	if !model.ValidResourceType(in.ResourceType) {
		return util.ErrInvalidResourceTyp
	}

	if in.ResourceType == model.TypeLink {
		if in.URL == nil || *in.URL == "" {
			return util.ErrURLRequired
		}
		if file != nil {
			return errors.New("LINK type resources cannot carry a file")
		}
	} else {
		if file == nil {
			return util.ErrFileRequired
		}
		if in.URL != nil && *in.URL != "" {
			return errors.New("url is only allowed for LINK type resources")
		}
	}

	if in.ResourceType == model.TypePYQ && in.Year == nil {
		return util.ErrYearRequired
	}

	return nil
}

// Create validates the input, stores the file (when present) under the
// uploader's prefix, resolves tags and persists the resource. The
// UPLOAD activity and optional contact-info update are best-effort.
func (s *ResourceService) Create(ctx context.Context, uploader *model.User, in *CreateResourceInput, file *multipart.FileHeader) (*model.Resource, error) {
	if err := in.validate(file); err != nil {
		return nil, err
	}

	resource := &model.Resource{
		Title:        in.Title,
		Description:  in.Description,
		Subject:      in.Subject,
		ResourceType: in.ResourceType,
		Semester:     in.Semester,
		Year:         in.Year,
		IsPrivate:    in.IsPrivate,
		AllowContact: in.AllowContact,
		UploaderID:   uploader.ID,
	}

	if in.ResourceType == model.TypeLink {
		resource.URL = in.URL
		resource.IsExternal = true
	} else {
		src, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer src.Close()

		mimeType, err := util.ValidateMimeType(src, util.AllowedUploadMimeTypes)
		if err != nil {
			return nil, err
		}
		if seeker, ok := src.(interface {
			Seek(offset int64, whence int) (int64, error)
		}); ok {
			seeker.Seek(0, 0)
		}

		key := util.ObjectKey(uploader.ID, file.Filename)
		storedKey, err := s.Storage.Upload(ctx, key, src, file.Size, mimeType)
		if err != nil {
			return nil, err
		}

		name := file.Filename
		size := file.Size
		resource.FileName = &name
		resource.FilePath = &storedKey
		resource.FileSize = &size
		resource.MimeType = &mimeType
		resource.IsExternal = false
	}

	tags, err := s.TagRepo.ResolveAll(in.Tags)
	if err != nil {
		return nil, err
	}
	resource.Tags = tags

	if err := s.ResourceRepo.Create(resource); err != nil {
		return nil, err
	}

	if in.Phone != nil || in.ContactEmail != nil {
		if err := s.UserRepo.UpdateContactInfo(uploader.ID, in.Phone, in.ContactEmail); err != nil {
			logger.Log.Warn("contact info update failed", zap.Error(err), zap.Uint("userId", uploader.ID))
		}
	}

	s.recordActivity(uploader.ID, resource.ID, model.ActionUpload)

	return s.ResourceRepo.FindByIDWithRelations(resource.ID)
}

// ListFilter narrows and orders a resource listing.
type ListFilter struct {
	Subject      string
	ResourceType string
	Semester     string
	Year         int
	Search       string
	Sort         string
	Page         int
	Limit        int

	// UploaderID scopes the listing to one uploader ("my resources").
	UploaderID uint
	// IncludePrivate is set only for uploader-scoped listings; the
	// public endpoint always excludes private rows.
	IncludePrivate bool
}

// List returns one page of resources with uploader and tags inlined.
// String matching is case-insensitive; free-text search covers title,
// description and tag names.
func (s *ResourceService) List(filter ListFilter) ([]model.Resource, util.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = util.DefaultPageLimit
	}
	if filter.Limit > util.MaxPageLimit {
		filter.Limit = util.MaxPageLimit
	}

	query := s.ResourceRepo.DB.Model(&model.Resource{})

	if !filter.IncludePrivate {
		query = query.Where("is_private = ?", false)
	}
	if filter.UploaderID != 0 {
		query = query.Where("uploader_id = ?", filter.UploaderID)
	}
	if filter.Subject != "" {
		query = query.Where("LOWER(subject) = LOWER(?)", filter.Subject)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.Semester != "" {
		query = query.Where("LOWER(semester) = LOWER(?)", filter.Semester)
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.Search != "" {
		term := "%" + model.NormalizeTagName(filter.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR id IN (?)",
			term, term,
			s.ResourceRepo.DB.Table("resource_tags").
				Select("resource_tags.resource_id").
				Joins("JOIN tags ON tags.id = resource_tags.tag_id").
				Where("tags.name LIKE ?", term),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, util.Pagination{}, err
	}

	switch filter.Sort {
	case "oldest":
		query = query.Order("created_at ASC")
	case "popular":
		query = query.Order("views DESC")
	case "downloads":
		query = query.Order("downloads DESC")
	case "title":
		query = query.Order("LOWER(title) ASC")
	default:
		query = query.Order("created_at DESC")
	}

	var resources []model.Resource
	err := query.
		Preload("Uploader").
		Preload("Tags").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&resources).Error
	if err != nil {
		return nil, util.Pagination{}, err
	}

	return resources, util.NewPagination(filter.Page, filter.Limit, total), nil
}

// GetByID returns the full resource detail. Private resources are
// visible only to their owner (or an admin); on a successful visible
// fetch the view counter increments and a VIEW activity is recorded
// best-effort. The caller may be nil (unauthenticated).
func (s *ResourceService) GetByID(id uint, current *model.User) (*model.Resource, bool, error) {
	resource, err := s.ResourceRepo.FindByIDWithRelations(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.ErrResourceNotFound
		}
		return nil, false, err
	}

	if resource.IsPrivate && !resource.OwnedBy(current) {
		return nil, false, util.ErrPermissionDenied
	}

	if err := s.ResourceRepo.IncrementViews(id); err != nil {
		return nil, false, err
	}
	resource.Views++

	bookmarked := false
	if current != nil {
		s.recordActivity(current.ID, id, model.ActionView)
		bookmarked, _ = s.BookmarkRepo.Exists(current.ID, id)
	}

	return resource, bookmarked, nil
}

// UpdateResourceInput carries a partial update; nil fields are left
// untouched. A non-nil Tags slice replaces the whole tag set.
type UpdateResourceInput struct {
	Title        *string
	Description  *string
	Subject      *string
	Semester     *string
	Year         *int
	IsPrivate    *bool
	AllowContact *bool
	URL          *string
	Tags         []string
}

// Update applies only the supplied fields. Ownership is enforced by the
// middleware before this runs.
func (s *ResourceService) Update(resource *model.Resource, in *UpdateResourceInput) (*model.Resource, error) {
	if in.Title != nil {
		resource.Title = *in.Title
	}
	if in.Description != nil {
		resource.Description = *in.Description
	}
	if in.Subject != nil {
		resource.Subject = *in.Subject
	}
	if in.Semester != nil {
		resource.Semester = in.Semester
	}
	if in.Year != nil {
		resource.Year = in.Year
	}
	if in.IsPrivate != nil {
		resource.IsPrivate = *in.IsPrivate
	}
	if in.AllowContact != nil {
		resource.AllowContact = *in.AllowContact
	}
	if in.URL != nil {
		if resource.ResourceType != model.TypeLink {
			return nil, errors.New("url is only allowed for LINK type resources")
		}
		if *in.URL == "" {
			return nil, util.ErrURLRequired
		}
		resource.URL = in.URL
	}
	if resource.ResourceType == model.TypePYQ && resource.Year == nil {
		return nil, util.ErrYearRequired
	}

	if err := s.ResourceRepo.Save(resource); err != nil {
		return nil, err
	}

	if in.Tags != nil {
		tags, err := s.TagRepo.ResolveAll(in.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.ResourceRepo.ReplaceTags(resource, tags); err != nil {
			return nil, err
		}
	}

	return s.ResourceRepo.FindByIDWithRelations(resource.ID)
}

// Delete removes the resource (cascading to tags, bookmarks and
// activities) and then deletes the stored blob best-effort: a storage
// failure leaves an orphaned blob but never rolls back the catalog.
func (s *ResourceService) Delete(ctx context.Context, resource *model.Resource) (SideEffect, error) {
	filePath := resource.FilePath

	if err := s.ResourceRepo.Delete(resource); err != nil {
		return SideEffect{}, err
	}

	effect := SideEffect{Op: "blob delete"}
	if resource.ResourceType != model.TypeLink && filePath != nil {
		if err := s.Storage.Delete(ctx, *filePath); err != nil {
			effect.Err = err
			logger.Log.Warn("stored file deletion failed, blob orphaned",
				zap.Error(err), zap.String("filePath", *filePath))
		}
	}
	return effect, nil
}

// ToggleBookmark flips the caller's bookmark on a resource and returns
// the new state plus the resource's bookmark counter. The flip and the
// counter update are one transaction.
func (s *ResourceService) ToggleBookmark(user *model.User, resourceID uint) (bool, int, error) {
	resource, err := s.ResourceRepo.FindByID(resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, util.ErrResourceNotFound
		}
		return false, 0, err
	}

	if resource.IsPrivate && !resource.OwnedBy(user) {
		return false, 0, util.ErrPermissionDenied
	}

	bookmarked, count, err := s.BookmarkRepo.Toggle(user.ID, resourceID)
	if err != nil {
		return false, 0, err
	}

	if bookmarked {
		s.recordActivity(user.ID, resourceID, model.ActionBookmark)
	}

	return bookmarked, count, nil
}

// TrackDownload verifies visibility, bumps the download counter and
// resolves the download target: the external URL for LINK resources,
// the stored file reference otherwise.
func (s *ResourceService) TrackDownload(user *model.User, resourceID uint) (string, error) {
	resource, err := s.ResourceRepo.FindByID(resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrResourceNotFound
		}
		return "", err
	}

	if resource.IsPrivate && !resource.OwnedBy(user) {
		return "", util.ErrPermissionDenied
	}

	if err := s.ResourceRepo.IncrementDownloads(resourceID); err != nil {
		return "", err
	}

	s.recordActivity(user.ID, resourceID, model.ActionDownload)

	if resource.ResourceType == model.TypeLink {
		return *resource.URL, nil
	}
	return s.Storage.GetURL(*resource.FilePath), nil
}

// recordActivity appends to the activity ledger best-effort. A failed
// write is logged and reported in the SideEffect, never propagated.
func (s *ResourceService) recordActivity(userID, resourceID uint, action model.ActivityAction) SideEffect {
	effect := SideEffect{Op: "activity log"}
	err := s.ActivityRepo.Create(&model.Activity{
		UserID:     userID,
		ResourceID: resourceID,
		Action:     action,
	})
	if err != nil {
		effect.Err = err
		logger.Log.Warn("activity write failed",
			zap.Error(err),
			zap.Uint("userId", userID),
			zap.Uint("resourceId", resourceID),
			zap.String("action", string(action)))
	}
	return effect
}
