package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maintain-ai/maintain-backend/internal/storage/memory"
)

// Handler serves the technician read API.
type Handler struct {
	store *memory.Store
}

func New(store *memory.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/technicians", h.ListTechnicians)
	rg.GET("/technicians/:id", h.GetTechnician)
}

func (h *Handler) ListTechnicians(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListTechnicians())
}

func (h *Handler) GetTechnician(c *gin.Context) {
	tech, err := h.store.GetTechnician(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Technician not found"})
		return
	}
	c.JSON(http.StatusOK, tech)
}
