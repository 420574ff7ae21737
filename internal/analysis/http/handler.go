package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maintain-ai/maintain-backend/internal/analysis"
)

// Handler exposes the classification adapter. The adapter never fails:
// a bad upstream answer degrades to the keyword fallback, so the only
// client error here is a missing description.
type Handler struct {
	analyzer *analysis.Analyzer
}

func New(analyzer *analysis.Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/analyze-issue", h.AnalyzeIssue)
}

type analyzeRequest struct {
	Description string `json:"description"`
	ImageBase64 string `json:"imageBase64"`
}

func (h *Handler) AnalyzeIssue(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Description is required"})
		return
	}

	c.JSON(http.StatusOK, h.analyzer.Analyze(c.Request.Context(), req.Description, req.ImageBase64))
}
