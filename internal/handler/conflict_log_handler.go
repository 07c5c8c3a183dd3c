package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/siakad-dev/siakad-api/internal/dto"
	"github.com/siakad-dev/siakad-api/internal/middleware"
	"github.com/siakad-dev/siakad-api/internal/models"
	"github.com/siakad-dev/siakad-api/internal/service"
	appErrors "github.com/siakad-dev/siakad-api/pkg/errors"
	"github.com/siakad-dev/siakad-api/pkg/response"
)

// ConflictLogHandler exposes the conflict audit trail.
type ConflictLogHandler struct {
	logs *service.ConflictLogService
}

// NewConflictLogHandler constructs handler.
func NewConflictLogHandler(logs *service.ConflictLogService) *ConflictLogHandler {
	return &ConflictLogHandler{logs: logs}
}

// List godoc
// @Summary List logged conflicts
// @Tags Conflict Logs
// @Produce json
// @Param type query string false "Conflict type code"
// @Param severity query string false "ERROR or WARNING"
// @Param resolved query bool false "Filter by resolution state"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Param sort query string false "asc or desc by detection time"
// @Success 200 {object} response.Envelope
// @Router /conflict-logs [get]
func (h *ConflictLogHandler) List(c *gin.Context) {
	filter := models.ConflictLogFilter{
		Type:      c.Query("type"),
		Severity:  models.ConflictSeverity(c.Query("severity")),
		SortOrder: c.Query("sort"),
	}
	if raw := c.Query("resolved"); raw != "" {
		resolved, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "resolved must be a boolean"))
			return
		}
		filter.Resolved = &resolved
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	entries, total, err := h.logs.ListConflictLogs(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	response.JSON(c, http.StatusOK, entries, pagination)
}

// Get godoc
// @Summary Get one logged conflict
// @Tags Conflict Logs
// @Produce json
// @Param id path string true "Conflict log id"
// @Success 200 {object} response.Envelope
// @Router /conflict-logs/{id} [get]
func (h *ConflictLogHandler) Get(c *gin.Context) {
	entry, err := h.logs.GetConflictLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Resolve godoc
// @Summary Mark a logged conflict as resolved
// @Tags Conflict Logs
// @Accept json
// @Produce json
// @Param id path string true "Conflict log id"
// @Param payload body dto.ResolveConflictRequest true "Resolution notes"
// @Success 200 {object} response.Envelope
// @Router /conflict-logs/{id}/resolve [patch]
func (h *ConflictLogHandler) Resolve(c *gin.Context) {
	var req dto.ResolveConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	claims, ok := currentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	entry, err := h.logs.ResolveConflict(c.Request.Context(), c.Param("id"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Stats godoc
// @Summary Conflict log counters for dashboards
// @Tags Conflict Logs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /conflict-logs/stats [get]
func (h *ConflictLogHandler) Stats(c *gin.Context) {
	stats, err := h.logs.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

func currentUser(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok
}
