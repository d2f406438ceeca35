package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"rotacare/models"
	"rotacare/services/booking"
	"rotacare/services/scheduling"
	"rotacare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes booking workflows and the pre-write conflict check.
type BookingHandler struct {
	Service   booking.BookingService
	Validator scheduling.ConflictValidator
	Logger    *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc booking.BookingService, validator scheduling.ConflictValidator, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Validator: validator, Logger: logger}
}

// Validate runs the conflict check without writing anything. Input problems
// map to 400, backend failures to 502; a conflict is a normal 200 response
// with valid=false so the UI can render the alternatives.
func (h *BookingHandler) Validate(c *gin.Context) {
	var req scheduling.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result := h.Validator.ValidateAssignment(c.Request.Context(), req)
	switch result.ErrKind {
	case models.ValidationErrInput:
		utils.JSONError(c, http.StatusBadRequest, "validation failed", result.ErrMessage)
	case models.ValidationErrBackend:
		utils.JSONError(c, http.StatusBadGateway, "validation could not be completed", result.ErrMessage)
	default:
		c.JSON(http.StatusOK, result)
	}
}

// Create writes a new appointment (one row per requested carer).
func (h *BookingHandler) Create(c *gin.Context) {
	var req booking.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	result, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	status := http.StatusCreated
	if len(result.Created) == 0 && len(result.Conflicts) > 0 {
		// Every requested carer conflicted; nothing was written.
		status = http.StatusConflict
	}
	c.JSON(status, result)
}

// Get returns one booking row.
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListDay returns the full rota for one day.
func (h *BookingHandler) ListDay(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}
	bookings, err := h.Service.ListDay(c.Request.Context(), date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "bookings": bookings})
}

// Edit updates one booking row.
func (h *BookingHandler) Edit(c *gin.Context) {
	var req booking.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	req.BookingID = c.Param("id")
	updated, err := h.Service.Edit(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AddCarer attaches another carer to an existing appointment.
func (h *BookingHandler) AddCarer(c *gin.Context) {
	var req struct {
		CarerID string `json:"carer_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	row, err := h.Service.AddCarer(c.Request.Context(), c.Param("id"), req.CarerID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// Cancel flips one row or the whole sibling set to cancelled.
func (h *BookingHandler) Cancel(c *gin.Context) {
	var req booking.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	req.BookingID = c.Param("id")
	cancelled, err := h.Service.Cancel(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}

// Delete removes one row or the whole appointment.
func (h *BookingHandler) Delete(c *gin.Context) {
	all, _ := strconv.ParseBool(c.DefaultQuery("all", "false"))
	deleted, err := h.Service.Delete(c.Request.Context(), c.Param("id"), all)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// MarkLate records a late arrival.
func (h *BookingHandler) MarkLate(c *gin.Context) {
	var req struct {
		DelayMinutes int    `json:"delay_minutes"`
		Reason       string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	updated, err := h.Service.MarkLate(c.Request.Context(), c.Param("id"), req.DelayMinutes, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Replicate copies a source week onto the following weeks.
func (h *BookingHandler) Replicate(c *gin.Context) {
	var req booking.ReplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	report, err := h.Service.Replicate(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// writeError maps service errors to HTTP responses. A conflict carries its
// summaries; a failed validation blocks the write and says so.
func (h *BookingHandler) writeError(c *gin.Context, err error) {
	var conflictErr *booking.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":     conflictErr.Message,
			"carer_id":  conflictErr.CarerID,
			"conflicts": conflictErr.Conflicts,
		})
		return
	}
	var failedErr *booking.ValidationFailedError
	if errors.As(err, &failedErr) {
		status := http.StatusBadGateway
		if failedErr.Kind == models.ValidationErrInput {
			status = http.StatusBadRequest
		}
		utils.JSONError(c, status, "validation could not be completed", failedErr.Message)
		return
	}
	h.Logger.Error("booking operation failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "booking operation failed", err.Error())
}
