package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/siakad-dev/siakad-api/internal/models"
)

// detailColumns is the shared select list for enriched schedule items.
const detailColumns = `si.id, si.schedule_id, si.lecturer_id, si.room_id, si.course_id, si.day_of_week, si.start_time, si.end_time, si.capacity, si.created_at, si.updated_at, c.code AS course_code, c.name AS course_name, c.sks AS course_sks, l.full_name AS lecturer_name, r.code AS room_code, p.name AS program_name, ps.class_section, ps.status`

const detailJoins = ` FROM schedule_items si
JOIN program_schedules ps ON ps.id = si.schedule_id
JOIN programs p ON p.id = ps.program_id
JOIN courses c ON c.id = si.course_id
JOIN lecturers l ON l.id = si.lecturer_id
JOIN rooms r ON r.id = si.room_id`

// ScheduleItemRepository provides read access to timetable bookings. All
// overlap queries use the half-open predicate (start < $end AND $start < end)
// on zero-padded "HH:MM" text, so touching endpoints never match.
type ScheduleItemRepository struct {
	db *sqlx.DB
}

// NewScheduleItemRepository creates a new schedule item repository.
func NewScheduleItemRepository(db *sqlx.DB) *ScheduleItemRepository {
	return &ScheduleItemRepository{db: db}
}

// FindByID loads one enriched schedule item.
func (r *ScheduleItemRepository) FindByID(ctx context.Context, id string) (*models.ScheduleItemDetail, error) {
	query := "SELECT " + detailColumns + detailJoins + " WHERE si.id = $1"
	var item models.ScheduleItemDetail
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListBySchedule returns every item of one program schedule ordered by
// day and start time.
func (r *ScheduleItemRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ScheduleItemDetail, error) {
	query := "SELECT " + detailColumns + detailJoins + " WHERE si.schedule_id = $1 ORDER BY si.day_of_week ASC, si.start_time ASC"
	var items []models.ScheduleItemDetail
	if err := r.db.SelectContext(ctx, &items, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list schedule items: %w", err)
	}
	return items, nil
}

// FindLecturerOverlaps returns active bookings of a lecturer that overlap the
// given window on the given day, excluding excludeItemID when non-empty.
func (r *ScheduleItemRepository) FindLecturerOverlaps(ctx context.Context, lecturerID string, day models.DayOfWeek, startTime, endTime, excludeItemID string) ([]models.ScheduleItemDetail, error) {
	query := "SELECT " + detailColumns + detailJoins + ` WHERE si.lecturer_id = $1 AND si.day_of_week = $2 AND si.start_time < $4 AND $3 < si.end_time AND ps.status = ANY($5) AND si.id <> $6 ORDER BY si.start_time ASC`
	var items []models.ScheduleItemDetail
	if err := r.db.SelectContext(ctx, &items, query, lecturerID, day, startTime, endTime, pq.Array(models.StatusStrings(models.ActiveScheduleStatuses)), excludeItemID); err != nil {
		return nil, fmt.Errorf("find lecturer overlaps: %w", err)
	}
	return items, nil
}

// FindRoomOverlaps returns active bookings of a room that overlap the given
// window on the given day, excluding excludeItemID when non-empty.
func (r *ScheduleItemRepository) FindRoomOverlaps(ctx context.Context, roomID string, day models.DayOfWeek, startTime, endTime, excludeItemID string) ([]models.ScheduleItemDetail, error) {
	query := "SELECT " + detailColumns + detailJoins + ` WHERE si.room_id = $1 AND si.day_of_week = $2 AND si.start_time < $4 AND $3 < si.end_time AND ps.status = ANY($5) AND si.id <> $6 ORDER BY si.start_time ASC`
	var items []models.ScheduleItemDetail
	if err := r.db.SelectContext(ctx, &items, query, roomID, day, startTime, endTime, pq.Array(models.StatusStrings(models.ActiveScheduleStatuses)), excludeItemID); err != nil {
		return nil, fmt.Errorf("find room overlaps: %w", err)
	}
	return items, nil
}

// FindStudentOverlaps returns bookings colliding with the window across a
// student's other active enrollments.
func (r *ScheduleItemRepository) FindStudentOverlaps(ctx context.Context, studentID string, day models.DayOfWeek, startTime, endTime, excludeScheduleID, excludeItemID string) ([]models.ScheduleItemDetail, error) {
	query := "SELECT " + detailColumns + detailJoins + ` JOIN enrollments e ON e.schedule_id = si.schedule_id WHERE e.student_id = $1 AND e.status = $2 AND si.schedule_id <> $3 AND si.day_of_week = $4 AND si.start_time < $6 AND $5 < si.end_time AND ps.status = ANY($7) AND si.id <> $8 ORDER BY si.start_time ASC`
	var items []models.ScheduleItemDetail
	if err := r.db.SelectContext(ctx, &items, query, studentID, models.EnrollmentStatusActive, excludeScheduleID, day, startTime, endTime, pq.Array(models.StatusStrings(models.ActiveScheduleStatuses)), excludeItemID); err != nil {
		return nil, fmt.Errorf("find student overlaps: %w", err)
	}
	return items, nil
}

// ListLecturerPeriodItems returns a lecturer's bookings within one academic
// period, restricted to schedules in the given status scope.
func (r *ScheduleItemRepository) ListLecturerPeriodItems(ctx context.Context, lecturerID, periodID string, statuses []models.ScheduleStatus, excludeItemID string) ([]models.LecturerLoadItem, error) {
	const query = `SELECT si.id AS item_id, si.course_id, c.code AS course_code, c.name AS course_name, c.sks, si.day_of_week, si.start_time, si.end_time, ps.class_section
FROM schedule_items si
JOIN program_schedules ps ON ps.id = si.schedule_id
JOIN courses c ON c.id = si.course_id
WHERE si.lecturer_id = $1 AND ps.period_id = $2 AND ps.status = ANY($3) AND si.id <> $4
ORDER BY si.day_of_week ASC, si.start_time ASC`
	var items []models.LecturerLoadItem
	if err := r.db.SelectContext(ctx, &items, query, lecturerID, periodID, pq.Array(models.StatusStrings(statuses)), excludeItemID); err != nil {
		return nil, fmt.Errorf("list lecturer period items: %w", err)
	}
	return items, nil
}

// ListBookedRoomIDs returns the ids of rooms with an active booking
// overlapping the window on the given day.
func (r *ScheduleItemRepository) ListBookedRoomIDs(ctx context.Context, day models.DayOfWeek, startTime, endTime, excludeItemID string) ([]string, error) {
	const query = `SELECT DISTINCT si.room_id
FROM schedule_items si
JOIN program_schedules ps ON ps.id = si.schedule_id
WHERE si.day_of_week = $1 AND si.start_time < $3 AND $2 < si.end_time AND ps.status = ANY($4) AND si.id <> $5`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, day, startTime, endTime, pq.Array(models.StatusStrings(models.ActiveScheduleStatuses)), excludeItemID); err != nil {
		return nil, fmt.Errorf("list booked room ids: %w", err)
	}
	return ids, nil
}

// ListLecturerDayItems returns a lecturer's active bookings on one day,
// ordered by start time.
func (r *ScheduleItemRepository) ListLecturerDayItems(ctx context.Context, lecturerID string, day models.DayOfWeek) ([]models.ScheduleItemDetail, error) {
	query := "SELECT " + detailColumns + detailJoins + ` WHERE si.lecturer_id = $1 AND si.day_of_week = $2 AND ps.status = ANY($3) ORDER BY si.start_time ASC`
	var items []models.ScheduleItemDetail
	if err := r.db.SelectContext(ctx, &items, query, lecturerID, day, pq.Array(models.StatusStrings(models.ActiveScheduleStatuses))); err != nil {
		return nil, fmt.Errorf("list lecturer day items: %w", err)
	}
	return items, nil
}
