package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/siakad-dev/siakad-api/internal/dto"
	"github.com/siakad-dev/siakad-api/internal/models"
	appErrors "github.com/siakad-dev/siakad-api/pkg/errors"
)

// CanonicalSlots is the standard six-block teaching grid. Blocks 1-3 run
// before lunch, blocks 4-6 after.
var CanonicalSlots = []dto.TimeSlot{
	{Start: "07:00", End: "08:40"},
	{Start: "08:40", End: "10:20"},
	{Start: "10:20", End: "12:00"},
	{Start: "13:00", End: "14:40"},
	{Start: "14:40", End: "16:20"},
	{Start: "16:20", End: "18:00"},
}

type bookingReader interface {
	ListBookedRoomIDs(ctx context.Context, day models.DayOfWeek, startTime, endTime, excludeItemID string) ([]string, error)
	ListLecturerDayItems(ctx context.Context, lecturerID string, day models.DayOfWeek) ([]models.ScheduleItemDetail, error)
}

type roomLister interface {
	ListActiveWithCapacity(ctx context.Context, minCapacity int) ([]models.Room, error)
}

// AvailabilityService answers free-room and free-slot lookups used by the
// schedule editor.
type AvailabilityService struct {
	bookings  bookingReader
	rooms     roomLister
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvailabilityService wires availability dependencies.
func NewAvailabilityService(bookings bookingReader, rooms roomLister, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{bookings: bookings, rooms: rooms, validator: validate, logger: logger}
}

// GetAvailableRooms returns active rooms that seat at least MinCapacity and
// have no active booking overlapping the requested window.
func (s *AvailabilityService) GetAvailableRooms(ctx context.Context, query dto.AvailableRoomsQuery) ([]models.Room, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability query")
	}
	if !models.ValidDay(query.Day) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day of week %q", query.Day))
	}
	if !validClock(query.StartTime) || !validClock(query.EndTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start and end must be HH:MM clock times")
	}
	if clockMinutes(query.EndTime) <= clockMinutes(query.StartTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end time must be after start time")
	}

	rooms, err := s.rooms.ListActiveWithCapacity(ctx, query.MinCapacity)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}

	bookedIDs, err := s.bookings.ListBookedRoomIDs(ctx, query.Day, query.StartTime, query.EndTime, query.ExcludeItemID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list booked rooms")
	}
	booked := make(map[string]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	available := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if _, taken := booked[room.ID]; !taken {
			available = append(available, room)
		}
	}
	return available, nil
}

// GetAvailableTimeSlots marks each canonical teaching block as free or taken
// for the lecturer on the given day. A block is taken when any active booking
// overlaps it, touching endpoints excluded.
func (s *AvailabilityService) GetAvailableTimeSlots(ctx context.Context, lecturerID string, day models.DayOfWeek) (*dto.AvailableSlotsResult, error) {
	if !models.ValidDay(day) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day of week %q", day))
	}

	items, err := s.bookings.ListLecturerDayItems(ctx, lecturerID, day)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lecturer bookings")
	}

	result := &dto.AvailableSlotsResult{
		LecturerID: lecturerID,
		Day:        day,
		Slots:      make([]dto.SlotAvailability, 0, len(CanonicalSlots)),
	}
	for _, slot := range CanonicalSlots {
		availability := dto.SlotAvailability{Slot: slot, Available: true}
		slotStart := clockMinutes(slot.Start)
		slotEnd := clockMinutes(slot.End)
		for _, item := range items {
			if !validClock(item.StartTime) || !validClock(item.EndTime) {
				continue
			}
			if rangesOverlap(slotStart, slotEnd, clockMinutes(item.StartTime), clockMinutes(item.EndTime)) {
				availability.Available = false
				availability.OccupiedBy = fmt.Sprintf("%s (%s %s)", item.CourseName, item.ClassSection, formatRange(item.StartTime, item.EndTime))
				break
			}
		}
		result.Slots = append(result.Slots, availability)
	}
	return result, nil
}
