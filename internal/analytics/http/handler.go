package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maintain-ai/maintain-backend/internal/analytics"
)

type Handler struct {
	svc *analytics.Service
}

func New(svc *analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/analytics", h.GetAnalytics)
}

func (h *Handler) GetAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Snapshot(c.Request.Context()))
}
