package handlers

import (
	"net/http"

	"rotacare/models"
	"rotacare/services/carer"
	"rotacare/utils"

	"github.com/gin-gonic/gin"
)

// CarerHandler exposes carer management endpoints.
type CarerHandler struct {
	Service carer.CarerService
}

// NewCarerHandler constructs a CarerHandler.
func NewCarerHandler(svc carer.CarerService) *CarerHandler {
	return &CarerHandler{Service: svc}
}

// Create registers a new carer.
func (h *CarerHandler) Create(c *gin.Context) {
	var input models.Carer
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	created, err := h.Service.Create(c.Request.Context(), &input)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to create carer", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get returns one carer.
func (h *CarerHandler) Get(c *gin.Context) {
	found, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "carer not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, found)
}

// List returns carers, optionally filtered by ?status=.
func (h *CarerHandler) List(c *gin.Context) {
	carers, err := h.Service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to list carers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"carers": carers})
}

// Update replaces a carer's editable fields.
func (h *CarerHandler) Update(c *gin.Context) {
	var input models.Carer
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.ID = c.Param("id")
	updated, err := h.Service.Update(c.Request.Context(), &input)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to update carer", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SetStatus transitions a carer's availability status.
func (h *CarerHandler) SetStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	updated, err := h.Service.SetStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to update carer status", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a carer.
func (h *CarerHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete carer", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// DaySchedule returns a carer's bookings for one day.
func (h *CarerHandler) DaySchedule(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}
	bookings, err := h.Service.DaySchedule(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch day schedule", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"carer_id": c.Param("id"), "date": date, "bookings": bookings})
}
