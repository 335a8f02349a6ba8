package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mybudget/internal/services"
)

// ExportHandler handles transaction export requests.
type ExportHandler struct {
	exportService services.ExportServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService services.ExportServicer) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportCSV streams the filtered transactions as a CSV attachment.
// @Summary     Export transactions as CSV
// @Description Download the transactions matching the filter as a CSV file
// @Tags        export
// @Produce     text/csv
// @Param       category query string false "Filter by exact category"
// @Param       type     query string false "Filter by type (income/expense)"
// @Param       dateFrom query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param       dateTo   query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Success     200 {string} string "CSV document"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	csv, err := h.exportService.ExportCSV(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
