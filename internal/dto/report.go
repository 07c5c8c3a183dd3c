package dto

import (
	"time"

	"github.com/siakad-dev/siakad-api/internal/models"
)

// ScheduleConflictReport is the sweep result for one program schedule inside
// a period-wide report.
type ScheduleConflictReport struct {
	ScheduleID   string                 `json:"schedule_id"`
	ProgramName  string                 `json:"program_name"`
	ClassSection string                 `json:"class_section"`
	Status       models.ScheduleStatus  `json:"status"`
	Result       CompleteScheduleResult `json:"result"`
}

// PeriodConflictReport aggregates conflict detection across every reviewable
// schedule of an academic period.
type PeriodConflictReport struct {
	PeriodID       string                   `json:"period_id"`
	Year           string                   `json:"year"`
	Semester       models.Semester          `json:"semester"`
	GeneratedAt    time.Time                `json:"generated_at"`
	TotalSchedules int                      `json:"total_schedules"`
	TotalItems     int                      `json:"total_items"`
	TotalConflicts int                      `json:"total_conflicts"`
	Summary        ConflictSummary          `json:"summary"`
	Schedules      []ScheduleConflictReport `json:"schedules"`
}
