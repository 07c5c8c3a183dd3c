package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siakad-dev/siakad-api/internal/dto"
	"github.com/siakad-dev/siakad-api/internal/models"
	"github.com/siakad-dev/siakad-api/internal/service"
	appErrors "github.com/siakad-dev/siakad-api/pkg/errors"
	"github.com/siakad-dev/siakad-api/pkg/response"
)

// ValidationHandler exposes schedule validation endpoints.
type ValidationHandler struct {
	validations *service.ValidatorService
}

// NewValidationHandler constructs handler.
func NewValidationHandler(validations *service.ValidatorService) *ValidationHandler {
	return &ValidationHandler{validations: validations}
}

// ValidateItem godoc
// @Summary Validate one proposed schedule item
// @Tags Validations
// @Accept json
// @Produce json
// @Param excludeItemId query string false "Item id to exclude (edit flows)"
// @Param payload body dto.ScheduleItemCandidate true "Candidate booking"
// @Success 200 {object} response.Envelope
// @Router /validations/schedule-item [post]
func (h *ValidationHandler) ValidateItem(c *gin.Context) {
	var candidate dto.ScheduleItemCandidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result := h.validations.ValidateScheduleItem(c.Request.Context(), candidate, c.Query("excludeItemId"))
	response.JSON(c, http.StatusOK, result, nil)
}

// ValidateBatch godoc
// @Summary Validate several schedule items in one call
// @Tags Validations
// @Accept json
// @Produce json
// @Param payload body dto.BatchValidateRequest true "Candidate bookings"
// @Success 200 {object} response.Envelope
// @Router /validations/schedule-items:batch [post]
func (h *ValidationHandler) ValidateBatch(c *gin.Context) {
	var req dto.BatchValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.validations.ValidateBatch(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ValidateSchedule godoc
// @Summary Validate every item of a program schedule
// @Tags Validations
// @Produce json
// @Param id path string true "Program schedule id"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/validation [get]
func (h *ValidationHandler) ValidateSchedule(c *gin.Context) {
	result, err := h.validations.ValidateCompleteSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// CheckDosenConflict godoc
// @Summary Check lecturer double-booking for a time window
// @Tags Validations
// @Produce json
// @Param lecturerId query string true "Lecturer id"
// @Param day query string true "Day of week"
// @Param start query string true "Start time HH:MM"
// @Param end query string true "End time HH:MM"
// @Param excludeItemId query string false "Item id to exclude"
// @Success 200 {object} response.Envelope
// @Router /validations/dosen-conflicts [get]
func (h *ValidationHandler) CheckDosenConflict(c *gin.Context) {
	window, err := bindWindow(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.validations.CheckDosenConflict(c.Request.Context(), c.Query("lecturerId"), window.day, window.start, window.end, c.Query("excludeItemId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// CheckRuanganConflict godoc
// @Summary Check room double-booking for a time window
// @Tags Validations
// @Produce json
// @Param roomId query string true "Room id"
// @Param day query string true "Day of week"
// @Param start query string true "Start time HH:MM"
// @Param end query string true "End time HH:MM"
// @Param excludeItemId query string false "Item id to exclude"
// @Success 200 {object} response.Envelope
// @Router /validations/ruangan-conflicts [get]
func (h *ValidationHandler) CheckRuanganConflict(c *gin.Context) {
	window, err := bindWindow(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.validations.CheckRuanganConflict(c.Request.Context(), c.Query("roomId"), window.day, window.start, window.end, c.Query("excludeItemId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// CheckMahasiswaConflict godoc
// @Summary Check enrolled-student overlaps for a time window
// @Tags Validations
// @Produce json
// @Param scheduleId query string true "Program schedule id"
// @Param day query string true "Day of week"
// @Param start query string true "Start time HH:MM"
// @Param end query string true "End time HH:MM"
// @Param excludeItemId query string false "Item id to exclude"
// @Success 200 {object} response.Envelope
// @Router /validations/mahasiswa-conflicts [get]
func (h *ValidationHandler) CheckMahasiswaConflict(c *gin.Context) {
	window, err := bindWindow(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.validations.CheckMahasiswaConflict(c.Request.Context(), c.Query("scheduleId"), window.day, window.start, window.end, c.Query("excludeItemId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

type timeWindow struct {
	day   models.DayOfWeek
	start string
	end   string
}

func bindWindow(c *gin.Context) (timeWindow, error) {
	window := timeWindow{
		day:   models.DayOfWeek(c.Query("day")),
		start: c.Query("start"),
		end:   c.Query("end"),
	}
	if window.day == "" || window.start == "" || window.end == "" {
		return window, appErrors.Clone(appErrors.ErrValidation, "day, start and end query parameters are required")
	}
	return window, nil
}
