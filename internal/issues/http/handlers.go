package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maintain-ai/maintain-backend/internal/auth"
	"github.com/maintain-ai/maintain-backend/internal/issues/domain"
	"github.com/maintain-ai/maintain-backend/internal/issues/service"
)

// Handler handles HTTP requests for the issue feed.
type Handler struct {
	svc *service.IssueService
}

func New(svc *service.IssueService) *Handler {
	return &Handler{svc: svc}
}

// ListIssues returns every issue with its reporter embedded, newest first.
func (h *Handler) ListIssues(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListIssues())
}

// ListMyIssues returns the issues reported by one user, newest first.
func (h *Handler) ListMyIssues(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID required"})
		return
	}
	c.JSON(http.StatusOK, h.svc.ListIssuesByReporter(userID))
}

func (h *Handler) GetIssue(c *gin.Context) {
	iss, err := h.svc.GetIssue(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, iss)
}

func (h *Handler) CreateIssue(c *gin.Context) {
	var req domain.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid issue data", "error": err.Error()})
		return
	}

	iss, err := h.svc.CreateIssue(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, iss)
}

func (h *Handler) UpdateIssue(c *gin.Context) {
	var req domain.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid issue data", "error": err.Error()})
		return
	}

	iss, err := h.svc.UpdateIssue(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, iss)
}

func (h *Handler) DeleteIssue(c *gin.Context) {
	if err := h.svc.DeleteIssue(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleUpvote flips the acting user's endorsement of an issue.
func (h *Handler) ToggleUpvote(c *gin.Context) {
	result, err := h.svc.ToggleUpvote(c.Param("id"), auth.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListComments(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListComments(c.Param("id")))
}

func (h *Handler) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid comment data", "error": err.Error()})
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = auth.CurrentUserID(c)
	}

	comment, err := h.svc.CreateComment(c.Param("id"), req.Content, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid issue data", "errors": verr.Fields})
	case errors.Is(err, domain.ErrIssueNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Issue not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"message": "Invalid status transition"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
