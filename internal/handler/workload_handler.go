package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siakad-dev/siakad-api/internal/service"
	appErrors "github.com/siakad-dev/siakad-api/pkg/errors"
	"github.com/siakad-dev/siakad-api/pkg/response"
)

// WorkloadHandler exposes lecturer workload and period conflict reports.
type WorkloadHandler struct {
	workloads *service.WorkloadService
	reports   *service.ReportService
	exports   *service.ExportService
}

// NewWorkloadHandler constructs handler.
func NewWorkloadHandler(workloads *service.WorkloadService, reports *service.ReportService, exports *service.ExportService) *WorkloadHandler {
	return &WorkloadHandler{workloads: workloads, reports: reports, exports: exports}
}

// LecturerWorkload godoc
// @Summary Lecturer SKS workload for an academic period
// @Tags Reports
// @Produce json
// @Param id path string true "Lecturer id"
// @Param periodId query string true "Academic period id"
// @Success 200 {object} response.Envelope
// @Router /lecturers/{id}/workload [get]
func (h *WorkloadHandler) LecturerWorkload(c *gin.Context) {
	periodID := c.Query("periodId")
	if periodID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "periodId query parameter is required"))
		return
	}
	report, err := h.workloads.CalculateDosenWorkload(c.Request.Context(), c.Param("id"), periodID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// ConflictReport godoc
// @Summary Period-wide conflict report
// @Tags Reports
// @Produce json
// @Param id path string true "Academic period id"
// @Success 200 {object} response.Envelope
// @Router /periods/{id}/conflict-report [get]
func (h *WorkloadHandler) ConflictReport(c *gin.Context) {
	report, err := h.reports.GenerateConflictReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// ExportConflictReport godoc
// @Summary Download the period conflict report as CSV or PDF
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Academic period id"
// @Param format query string true "csv or pdf"
// @Success 200 {file} file
// @Router /periods/{id}/conflict-report/export [get]
func (h *WorkloadHandler) ExportConflictReport(c *gin.Context) {
	file, err := h.exports.ExportConflictReport(c.Request.Context(), c.Param("id"), c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+file.Filename)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
