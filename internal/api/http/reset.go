package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maintain-ai/maintain-backend/internal/storage/memory"
)

// ResetHandler restores the store to its seeded demo state.
type ResetHandler struct {
	store *memory.Store
}

func NewResetHandler(store *memory.Store) *ResetHandler {
	return &ResetHandler{store: store}
}

func (h *ResetHandler) ResetData(c *gin.Context) {
	h.store.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "Data reset to initial state"})
}

func (h *ResetHandler) RegisterResetRoute(rg *gin.RouterGroup) {
	rg.POST("/reset-data", h.ResetData)
}
