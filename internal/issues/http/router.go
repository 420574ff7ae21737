package http

import "github.com/gin-gonic/gin"

// Register registers the issue feed routes. createLimiter guards issue
// creation only; pass a pass-through middleware to disable limiting.
func (h *Handler) Register(rg *gin.RouterGroup, createLimiter gin.HandlerFunc) {
	rg.GET("/issues", h.ListIssues)
	rg.GET("/issues/my", h.ListMyIssues)
	rg.GET("/issues/:id", h.GetIssue)
	rg.POST("/issues", createLimiter, h.CreateIssue)
	rg.PATCH("/issues/:id", h.UpdateIssue)
	rg.DELETE("/issues/:id", h.DeleteIssue)
	rg.POST("/issues/:id/upvote", h.ToggleUpvote)
	rg.GET("/issues/:id/comments", h.ListComments)
	rg.POST("/issues/:id/comments", h.CreateComment)
}
