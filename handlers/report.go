package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"rotacare/services/report"
	"rotacare/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves rota exports and staffing summaries.
type ReportHandler struct {
	Service report.ReportService
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(svc report.ReportService) *ReportHandler {
	return &ReportHandler{Service: svc}
}

// DailyRotaCSV streams one day's rota as a CSV download.
func (h *ReportHandler) DailyRotaCSV(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing date", "query parameter 'date' is required (YYYY-MM-DD)")
		return
	}
	var buf bytes.Buffer
	if err := h.Service.DailyRotaCSV(c.Request.Context(), date, &buf); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to build rota export", err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=rota-%s.csv", date))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// DailyRotaPDF streams one day's rota as a PDF download.
func (h *ReportHandler) DailyRotaPDF(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing date", "query parameter 'date' is required (YYYY-MM-DD)")
		return
	}
	var buf bytes.Buffer
	if err := h.Service.DailyRotaPDF(c.Request.Context(), date, &buf); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to build rota export", err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=rota-%s.pdf", date))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// CarerHours returns total booked time per carer over a date range.
func (h *ReportHandler) CarerHours(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing range", "query parameters 'from' and 'to' are required (YYYY-MM-DD)")
		return
	}
	rows, err := h.Service.CarerHours(c.Request.Context(), from, to)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to aggregate carer hours", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "carers": rows})
}
