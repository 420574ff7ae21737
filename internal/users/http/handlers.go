package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maintain-ai/maintain-backend/internal/storage/memory"
	"github.com/maintain-ai/maintain-backend/internal/users/domain"
)

// Handler handles user lookup and registration. Users are thin records;
// the handler talks to the store directly.
type Handler struct {
	store *memory.Store
}

func New(store *memory.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/users/username/:username", h.GetByUsername)
	rg.GET("/users/firebase/:uid", h.GetByFirebaseUID)
	rg.POST("/users", h.CreateUser)
}

func (h *Handler) GetByUsername(c *gin.Context) {
	user, err := h.store.GetUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) GetByFirebaseUID(c *gin.Context) {
	user, err := h.store.GetUserByFirebaseUID(c.Param("uid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user data", "error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}
	score := req.CredibilityScore
	if score == 0 {
		score = domain.DefaultCredibilityScore
	}

	user, err := h.store.CreateUser(domain.User{
		Username:         req.Username,
		Email:            req.Email,
		Role:             role,
		CredibilityScore: score,
		FirebaseUID:      req.FirebaseUID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user data", "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, user)
}
