package controller

import (
	"errors"
	"mime/multipart"
	"strconv"

	"studystack_backend/internal/model"
	"studystack_backend/internal/service"
	"studystack_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ResourceController handles the resource catalog endpoints.
type ResourceController struct {
	ResourceService *service.ResourceService
}

func NewResourceController(resourceService *service.ResourceService) *ResourceController {
	return &ResourceController{ResourceService: resourceService}
}

// CreateResourceRequest is the multipart upload form. LINK resources
// carry url instead of a file; PYQ resources additionally carry year.
// swagger:model CreateResourceRequest
type CreateResourceRequest struct {
	Title        string   `form:"title" binding:"required"`
	Description  string   `form:"description" binding:"required"`
	Subject      string   `form:"subject" binding:"required"`
	ResourceType string   `form:"resourceType" binding:"required"`
	Semester     *string  `form:"semester"`
	Year         *int     `form:"year"`
	IsPrivate    bool     `form:"isPrivate"`
	AllowContact bool     `form:"allowContact"`
	URL          *string  `form:"url"`
	Tags         []string `form:"tags"`
	Phone        *string  `form:"phone"`
	ContactEmail *string  `form:"contactEmail"`
}

// CreateResource godoc
// @Summary Upload or link a resource
// @Description Create a resource: a stored file (PDF/DOC/DOCX/PPT/PPTX/OTHER/PYQ) or an external LINK
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param subject formData string true "Subject"
// @Param resourceType formData string true "Resource type" Enums(PDF, DOC, DOCX, PPT, PPTX, OTHER, LINK, PYQ)
// @Param year formData int false "Exam year (required for PYQ)"
// @Param url formData string false "External URL (required for LINK)"
// @Param file formData file false "Resource file (required for non-LINK)"
// @Success 201 {object} util.Response{data=model.Resource} "Created"
// @Failure 400 {object} util.Response "Bad Request"
// @Failure 401 {object} util.Response "Unauthorized"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /resources [post]
func (c *ResourceController) CreateResource(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateResourceRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var file *multipart.FileHeader
	if f, err := ctx.FormFile("file"); err == nil {
		file = f
	}

	in := &service.CreateResourceInput{
		Title:        req.Title,
		Description:  req.Description,
		Subject:      req.Subject,
		ResourceType: model.ResourceType(req.ResourceType),
		Semester:     req.Semester,
		Year:         req.Year,
		IsPrivate:    req.IsPrivate,
		AllowContact: req.AllowContact,
		URL:          req.URL,
		Tags:         req.Tags,
		Phone:        req.Phone,
		ContactEmail: req.ContactEmail,
	}

	resource, err := c.ResourceService.Create(ctx.Request.Context(), user, in, file)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.BadRequest(ctx, "duplicate field")
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, resource)
}

// ListResources godoc
// @Summary List public resources
// @Description Paginated listing with filters and sorting; private resources are always excluded
// @Tags resources
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param subject query string false "Subject filter"
// @Param resourceType query string false "Type filter"
// @Param semester query string false "Semester filter"
// @Param year query int false "Year filter"
// @Param search query string false "Free-text search over title/description/tags"
// @Param sort query string false "Sort key" Enums(newest, oldest, popular, downloads, title)
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /resources [get]
func (c *ResourceController) ListResources(ctx *gin.Context) {
	page, limit := util.PageParams(ctx)
	year, _ := strconv.Atoi(ctx.Query("year"))

	filter := service.ListFilter{
		Subject:      ctx.Query("subject"),
		ResourceType: ctx.Query("resourceType"),
		Semester:     ctx.Query("semester"),
		Year:         year,
		Search:       ctx.Query("search"),
		Sort:         ctx.Query("sort"),
		Page:         page,
		Limit:        limit,
	}

	resources, pagination, err := c.ResourceService.List(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{Items: resources, Pagination: pagination})
}

// GetResource godoc
// @Summary Get resource detail
// @Description Full resource detail with uploader and tags; private resources are visible only to their owner
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} util.Response "Success"
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Not Found"
// @Router /resources/{id} [get]
func (c *ResourceController) GetResource(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	current := util.GetUserFromContext(ctx)

	resource, bookmarked, err := c.ResourceService.GetByID(id, current)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrResourceNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"resource":     resource,
		"isBookmarked": bookmarked,
	})
}

// UpdateResourceRequest is a partial edit; omitted fields are left
// untouched and a present tags array replaces the whole tag set.
// swagger:model UpdateResourceRequest
type UpdateResourceRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Subject      *string  `json:"subject"`
	Semester     *string  `json:"semester"`
	Year         *int     `json:"year"`
	IsPrivate    *bool    `json:"isPrivate"`
	AllowContact *bool    `json:"allowContact"`
	URL          *string  `json:"url"`
	Tags         []string `json:"tags"`
}

// UpdateResource godoc
// @Summary Update a resource
// @Description Partial update, restricted to the uploader or an admin
// @Tags resources
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Resource ID"
// @Param request body UpdateResourceRequest true "Fields to update"
// @Success 200 {object} util.Response{data=model.Resource} "Success"
// @Failure 400 {object} util.Response "Bad Request"
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Not Found"
// @Router /resources/{id} [put]
func (c *ResourceController) UpdateResource(ctx *gin.Context) {
	resource := util.GetResourceFromContext(ctx)
	if resource == nil {
		util.NotFound(ctx)
		return
	}

	var req UpdateResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.ResourceService.Update(resource, &service.UpdateResourceInput{
		Title:        req.Title,
		Description:  req.Description,
		Subject:      req.Subject,
		Semester:     req.Semester,
		Year:         req.Year,
		IsPrivate:    req.IsPrivate,
		AllowContact: req.AllowContact,
		URL:          req.URL,
		Tags:         req.Tags,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.BadRequest(ctx, "duplicate field")
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, updated)
}

// DeleteResource godoc
// @Summary Delete a resource
// @Description Remove a resource (cascades to tags/bookmarks/activities); restricted to the uploader or an admin
// @Tags resources
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} util.Response "Success"
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Not Found"
// @Router /resources/{id} [delete]
func (c *ResourceController) DeleteResource(ctx *gin.Context) {
	resource := util.GetResourceFromContext(ctx)
	if resource == nil {
		util.NotFound(ctx)
		return
	}

	if _, err := c.ResourceService.Delete(ctx.Request.Context(), resource); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// ToggleBookmark godoc
// @Summary Toggle a bookmark
// @Description Idempotent flip: creates the bookmark when absent, removes it when present; the counter moves with it
// @Tags resources
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} util.Response "Success"
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Not Found"
// @Router /resources/{id}/bookmark [post]
func (c *ResourceController) ToggleBookmark(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	bookmarked, count, err := c.ResourceService.ToggleBookmark(user, id)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrResourceNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"bookmarked":    bookmarked,
		"bookmarkCount": count,
	})
}

// TrackDownload godoc
// @Summary Track a download
// @Description Bump the download counter and return the resolved download target
// @Tags resources
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} util.Response "Success"
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Not Found"
// @Router /resources/{id}/download [post]
func (c *ResourceController) TrackDownload(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	target, err := c.ResourceService.TrackDownload(user, id)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrResourceNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"downloadUrl": target})
}

// MyResources godoc
// @Summary List own resources
// @Description Paginated listing scoped to the authenticated uploader, private included
// @Tags resources
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /resources/my/resources [get]
func (c *ResourceController) MyResources(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := util.PageParams(ctx)
	resources, pagination, err := c.ResourceService.List(service.ListFilter{
		UploaderID:     user.ID,
		IncludePrivate: true,
		Sort:           ctx.Query("sort"),
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{Items: resources, Pagination: pagination})
}
