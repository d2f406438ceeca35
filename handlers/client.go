package handlers

import (
	"net/http"
	"time"

	clientRepo "rotacare/database/repository/client"
	"rotacare/models"
	"rotacare/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientHandler exposes care-client management endpoints.
type ClientHandler struct {
	Repo clientRepo.ClientRepository
}

// NewClientHandler constructs a ClientHandler.
func NewClientHandler(repo clientRepo.ClientRepository) *ClientHandler {
	return &ClientHandler{Repo: repo}
}

// Create registers a new client.
func (h *ClientHandler) Create(c *gin.Context) {
	var input models.Client
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "client name is required")
		return
	}
	input.ID = uuid.New().String()
	now := time.Now().UTC()
	input.CreatedAt = now
	input.UpdatedAt = now
	if err := h.Repo.Create(c.Request.Context(), &input); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create client", err.Error())
		return
	}
	c.JSON(http.StatusCreated, input)
}

// Get returns one client.
func (h *ClientHandler) Get(c *gin.Context) {
	found, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "client not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, found)
}

// List returns all clients.
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.Repo.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list clients", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// Update replaces a client's editable fields.
func (h *ClientHandler) Update(c *gin.Context) {
	var input models.Client
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.ID = c.Param("id")
	current, err := h.Repo.GetByID(c.Request.Context(), input.ID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "client not found", err.Error())
		return
	}
	input.CreatedAt = current.CreatedAt
	input.UpdatedAt = time.Now().UTC()
	if err := h.Repo.Update(c.Request.Context(), &input); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update client", err.Error())
		return
	}
	c.JSON(http.StatusOK, input)
}

// Delete removes a client.
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete client", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
