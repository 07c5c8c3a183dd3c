package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siakad-dev/siakad-api/internal/dto"
	"github.com/siakad-dev/siakad-api/internal/models"
)

func TestGetAvailableRoomsFiltersBooked(t *testing.T) {
	service := NewAvailabilityService(
		bookingStoreStub{bookedRoomIDs: []string{"room-2"}},
		roomListerStub{rooms: []models.Room{
			{ID: "room-1", Code: "GK-201", Capacity: 40},
			{ID: "room-2", Code: "GK-202", Capacity: 60},
			{ID: "room-3", Code: "LAB-1", Capacity: 30},
		}},
		nil, nil,
	)

	rooms, err := service.GetAvailableRooms(context.Background(), dto.AvailableRoomsQuery{
		Day:       models.DayMonday,
		StartTime: "07:00",
		EndTime:   "08:40",
	})
	require.NoError(t, err)

	require.Len(t, rooms, 2)
	assert.Equal(t, "room-1", rooms[0].ID)
	assert.Equal(t, "room-3", rooms[1].ID)
}

func TestGetAvailableRoomsRejectsBadWindow(t *testing.T) {
	service := NewAvailabilityService(bookingStoreStub{}, roomListerStub{}, nil, nil)

	_, err := service.GetAvailableRooms(context.Background(), dto.AvailableRoomsQuery{
		Day:       models.DayMonday,
		StartTime: "09:00",
		EndTime:   "08:00",
	})
	assert.Error(t, err)

	_, err = service.GetAvailableRooms(context.Background(), dto.AvailableRoomsQuery{
		Day:       "SUNDAY",
		StartTime: "07:00",
		EndTime:   "08:40",
	})
	assert.Error(t, err)
}

func TestGetAvailableTimeSlots(t *testing.T) {
	busy := detailFixture("item-1", "sched-1")
	busy.StartTime = "08:00"
	busy.EndTime = "09:40"
	service := NewAvailabilityService(
		bookingStoreStub{dayItems: []models.ScheduleItemDetail{busy}},
		roomListerStub{},
		nil, nil,
	)

	result, err := service.GetAvailableTimeSlots(context.Background(), "lect-1", models.DayMonday)
	require.NoError(t, err)

	require.Len(t, result.Slots, 6)
	// The 08:00-09:40 booking spans the first two blocks.
	assert.False(t, result.Slots[0].Available)
	assert.False(t, result.Slots[1].Available)
	assert.NotEmpty(t, result.Slots[0].OccupiedBy)
	for _, slot := range result.Slots[2:] {
		assert.True(t, slot.Available, slot.Slot.Start)
	}
}

func TestGetAvailableTimeSlotsTouchingBooking(t *testing.T) {
	busy := detailFixture("item-1", "sched-1")
	busy.StartTime = "08:40"
	busy.EndTime = "10:20"
	service := NewAvailabilityService(
		bookingStoreStub{dayItems: []models.ScheduleItemDetail{busy}},
		roomListerStub{},
		nil, nil,
	)

	result, err := service.GetAvailableTimeSlots(context.Background(), "lect-1", models.DayMonday)
	require.NoError(t, err)

	assert.True(t, result.Slots[0].Available, "booking starting at 08:40 leaves 07:00-08:40 free")
	assert.False(t, result.Slots[1].Available)
	assert.True(t, result.Slots[2].Available)
}

func TestGetAvailableTimeSlotsIgnoresCorruptBooking(t *testing.T) {
	busy := detailFixture("item-1", "sched-1")
	busy.StartTime = "8 o'clock"
	busy.EndTime = "0940"
	service := NewAvailabilityService(
		bookingStoreStub{dayItems: []models.ScheduleItemDetail{busy}},
		roomListerStub{},
		nil, nil,
	)

	result, err := service.GetAvailableTimeSlots(context.Background(), "lect-1", models.DayMonday)
	require.NoError(t, err)

	for _, slot := range result.Slots {
		assert.True(t, slot.Available, slot.Slot.Start)
	}
}

type bookingStoreStub struct {
	bookedRoomIDs []string
	dayItems      []models.ScheduleItemDetail
}

func (s bookingStoreStub) ListBookedRoomIDs(ctx context.Context, day models.DayOfWeek, startTime, endTime, excludeItemID string) ([]string, error) {
	return s.bookedRoomIDs, nil
}

func (s bookingStoreStub) ListLecturerDayItems(ctx context.Context, lecturerID string, day models.DayOfWeek) ([]models.ScheduleItemDetail, error) {
	return s.dayItems, nil
}

type roomListerStub struct {
	rooms []models.Room
}

func (s roomListerStub) ListActiveWithCapacity(ctx context.Context, minCapacity int) ([]models.Room, error) {
	var out []models.Room
	for _, room := range s.rooms {
		if room.Capacity >= minCapacity {
			out = append(out, room)
		}
	}
	return out, nil
}
