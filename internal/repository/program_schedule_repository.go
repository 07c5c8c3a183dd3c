package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/siakad-dev/siakad-api/internal/models"
)

const programScheduleColumns = `ps.id, ps.program_id, p.name AS program_name, ps.class_section, ps.period_id, ps.status, ps.created_at, ps.updated_at`

// ProgramScheduleRepository provides read access to program schedules.
type ProgramScheduleRepository struct {
	db *sqlx.DB
}

// NewProgramScheduleRepository creates a new program schedule repository.
func NewProgramScheduleRepository(db *sqlx.DB) *ProgramScheduleRepository {
	return &ProgramScheduleRepository{db: db}
}

// FindByID loads a program schedule by id.
func (r *ProgramScheduleRepository) FindByID(ctx context.Context, id string) (*models.ProgramSchedule, error) {
	query := "SELECT " + programScheduleColumns + " FROM program_schedules ps JOIN programs p ON p.id = ps.program_id WHERE ps.id = $1"
	var schedule models.ProgramSchedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ListByPeriod returns the period's schedules restricted to a status scope.
func (r *ProgramScheduleRepository) ListByPeriod(ctx context.Context, periodID string, statuses []models.ScheduleStatus) ([]models.ProgramSchedule, error) {
	query := "SELECT " + programScheduleColumns + " FROM program_schedules ps JOIN programs p ON p.id = ps.program_id WHERE ps.period_id = $1 AND ps.status = ANY($2) ORDER BY p.name ASC, ps.class_section ASC"
	var schedules []models.ProgramSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, periodID, pq.Array(models.StatusStrings(statuses))); err != nil {
		return nil, fmt.Errorf("list program schedules by period: %w", err)
	}
	return schedules, nil
}
