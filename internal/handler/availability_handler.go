package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/siakad-dev/siakad-api/internal/dto"
	"github.com/siakad-dev/siakad-api/internal/models"
	"github.com/siakad-dev/siakad-api/internal/service"
	appErrors "github.com/siakad-dev/siakad-api/pkg/errors"
	"github.com/siakad-dev/siakad-api/pkg/response"
)

// AvailabilityHandler exposes free-room and free-slot lookups.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(availability *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// AvailableRooms godoc
// @Summary List rooms free for a time window
// @Tags Availability
// @Produce json
// @Param day query string true "Day of week"
// @Param start query string true "Start time HH:MM"
// @Param end query string true "End time HH:MM"
// @Param minCapacity query int false "Minimum seat count"
// @Param excludeItemId query string false "Item id to exclude"
// @Success 200 {object} response.Envelope
// @Router /rooms/available [get]
func (h *AvailabilityHandler) AvailableRooms(c *gin.Context) {
	minCapacity := 0
	if raw := c.Query("minCapacity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "minCapacity must be a non-negative integer"))
			return
		}
		minCapacity = parsed
	}

	query := dto.AvailableRoomsQuery{
		Day:           models.DayOfWeek(c.Query("day")),
		StartTime:     c.Query("start"),
		EndTime:       c.Query("end"),
		MinCapacity:   minCapacity,
		ExcludeItemID: c.Query("excludeItemId"),
	}
	rooms, err := h.availability.GetAvailableRooms(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, nil)
}

// AvailableSlots godoc
// @Summary List canonical teaching slots free for a lecturer
// @Tags Availability
// @Produce json
// @Param id path string true "Lecturer id"
// @Param day query string true "Day of week"
// @Success 200 {object} response.Envelope
// @Router /lecturers/{id}/available-slots [get]
func (h *AvailabilityHandler) AvailableSlots(c *gin.Context) {
	result, err := h.availability.GetAvailableTimeSlots(c.Request.Context(), c.Param("id"), models.DayOfWeek(c.Query("day")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
