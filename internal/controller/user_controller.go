package controller

import (
	"strconv"

	"studystack_backend/internal/model"
	"studystack_backend/internal/service"
	"studystack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController handles the user-scoped endpoints: profile, stats,
// bookmarks, activities and analytics.
type UserController struct {
	UserService      *service.UserService
	ResourceService  *service.ResourceService
	AnalyticsService *service.AnalyticsService
}

func NewUserController(userService *service.UserService, resourceService *service.ResourceService, analyticsService *service.AnalyticsService) *UserController {
	return &UserController{
		UserService:      userService,
		ResourceService:  resourceService,
		AnalyticsService: analyticsService,
	}
}

// GetProfile godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User} "Success"
// @Router /users/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}

// UpdateProfileRequest is a partial profile edit.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	Institution  *string `json:"institution"`
	Phone        *string `json:"phone"`
	ContactEmail *string `json:"contactEmail" binding:"omitempty,email"`
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} util.Response{data=model.User} "Success"
// @Failure 400 {object} util.Response "Bad Request"
// @Router /users/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.UserService.UpdateProfile(user, &service.UpdateProfileInput{
		Name:         req.Name,
		Institution:  req.Institution,
		Phone:        req.Phone,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, updated)
}

// GetStats godoc
// @Summary Get own headline stats
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.UserStats} "Success"
// @Router /users/stats [get]
func (c *UserController) GetStats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.UserService.GetStats(user.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// GetBookmarks godoc
// @Summary List own bookmarks
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /users/bookmarks [get]
func (c *UserController) GetBookmarks(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := util.PageParams(ctx)
	bookmarks, pagination, err := c.UserService.GetBookmarks(user.ID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{Items: bookmarks, Pagination: pagination})
}

// ToggleBookmarkByID godoc
// @Summary Toggle a bookmark by resource id
// @Description Same transactional toggle as POST /resources/{id}/bookmark, exposed under the users prefix
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not Found"
// @Router /users/bookmarks/{id} [post]
func (c *UserController) ToggleBookmarkByID(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	bookmarked, count, err := c.ResourceService.ToggleBookmark(user, id)
	if err != nil {
		if err == util.ErrResourceNotFound {
			util.NotFound(ctx)
		} else if err == util.ErrPermissionDenied {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"bookmarked":    bookmarked,
		"bookmarkCount": count,
	})
}

// GetActivities godoc
// @Summary List own activity
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param action query string false "Action filter" Enums(VIEW, DOWNLOAD, BOOKMARK, SHARE, UPLOAD)
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Failure 400 {object} util.Response "Bad Request"
// @Router /users/activities [get]
func (c *UserController) GetActivities(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := util.PageParams(ctx)
	action := model.ActivityAction(ctx.Query("action"))

	activities, pagination, err := c.UserService.GetActivities(user.ID, action, page, limit)
	if err != nil {
		if err == util.ErrInvalidAction {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, util.PageResponse{Items: activities, Pagination: pagination})
}

// GetAnalytics godoc
// @Summary Get contributor analytics
// @Description Totals, engagement rate and per-day activity buckets over a 7/30/90-day window
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param days query int false "Window in days" Enums(7, 30, 90) default(30)
// @Success 200 {object} util.Response{data=service.AnalyticsReport} "Success"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /users/analytics [get]
func (c *UserController) GetAnalytics(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "30"))
	report, err := c.AnalyticsService.Report(ctx.Request.Context(), user.ID, days)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, report)
}
