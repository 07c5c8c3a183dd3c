package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/siakad-dev/siakad-api/internal/models"
)

// EnrollmentRepository provides read access to schedule enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository creates a new enrollment repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListActiveBySchedule returns the active enrollments of a program schedule.
func (r *EnrollmentRepository) ListActiveBySchedule(ctx context.Context, scheduleID string) ([]models.Enrollment, error) {
	const query = `SELECT id, student_id, schedule_id, status, joined_at, left_at FROM enrollments WHERE schedule_id = $1 AND status = $2`
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, scheduleID, models.EnrollmentStatusActive); err != nil {
		return nil, fmt.Errorf("list active enrollments: %w", err)
	}
	return enrollments, nil
}
