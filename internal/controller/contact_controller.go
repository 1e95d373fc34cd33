package controller

import (
	"studystack_backend/internal/model"
	"studystack_backend/internal/service"
	"studystack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	ContactService *service.ContactService
}

func NewContactController(contactService *service.ContactService) *ContactController {
	return &ContactController{ContactService: contactService}
}

// ContactRequest is the contact form payload.
// swagger:model ContactRequest
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required,max=5000"`
}

// SubmitContact godoc
// @Summary Submit a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Message"
// @Success 201 {object} util.Response "Created"
// @Failure 400 {object} util.Response "Bad Request"
// @Router /contact [post]
func (c *ContactController) SubmitContact(ctx *gin.Context) {
	var req ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	message := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if user := util.GetUserFromContext(ctx); user != nil {
		message.UserID = &user.ID
	}

	if err := c.ContactService.Submit(message); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"received": true})
}
