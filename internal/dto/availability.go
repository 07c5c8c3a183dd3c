package dto

import "github.com/siakad-dev/siakad-api/internal/models"

// AvailableRoomsQuery filters the free-room search.
type AvailableRoomsQuery struct {
	Day           models.DayOfWeek `json:"day_of_week" validate:"required"`
	StartTime     string           `json:"start_time" validate:"required"`
	EndTime       string           `json:"end_time" validate:"required"`
	MinCapacity   int              `json:"min_capacity"`
	ExcludeItemID string           `json:"exclude_item_id,omitempty"`
}

// TimeSlot is one canonical teaching block of the daily grid.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SlotAvailability reports whether a canonical slot is free for a lecturer.
type SlotAvailability struct {
	Slot       TimeSlot `json:"slot"`
	Available  bool     `json:"available"`
	OccupiedBy string   `json:"occupied_by,omitempty"`
}

// AvailableSlotsResult lists slot availability for one lecturer and day.
type AvailableSlotsResult struct {
	LecturerID string             `json:"lecturer_id"`
	Day        models.DayOfWeek   `json:"day_of_week"`
	Slots      []SlotAvailability `json:"slots"`
}
