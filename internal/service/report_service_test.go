package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siakad-dev/siakad-api/internal/dto"
	"github.com/siakad-dev/siakad-api/internal/models"
)

func TestGenerateConflictReport(t *testing.T) {
	sweeper := sweeperStub{results: map[string]*dto.CompleteScheduleResult{
		"sched-1": {
			ScheduleID: "sched-1",
			Valid:      false,
			Errors: []dto.AnnotatedIssue{{
				ValidationIssue: dto.ValidationIssue{Type: dto.IssueDosenConflict, Message: "double booked"},
				ItemID:          "item-1",
			}},
			Summary: dto.ConflictSummary{TotalItems: 3, TotalErrors: 1, DosenConflicts: 1},
		},
		"sched-2": {
			ScheduleID: "sched-2",
			Valid:      true,
			Summary:    dto.ConflictSummary{TotalItems: 2},
		},
	}}
	service := NewReportService(scheduleListerStub{schedules: []models.ProgramSchedule{
		{ID: "sched-1", ProgramName: "Teknik Informatika", ClassSection: "A", Status: models.ScheduleStatusSubmitted},
		{ID: "sched-2", ProgramName: "Sistem Informasi", ClassSection: "B", Status: models.ScheduleStatusPublished},
	}}, sweeper, workloadPeriodStub{}, nil, nil, time.Minute)

	report, err := service.GenerateConflictReport(context.Background(), "period-1")
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalSchedules)
	assert.Equal(t, 5, report.TotalItems)
	assert.Equal(t, 1, report.TotalConflicts)
	assert.Equal(t, 1, report.Summary.DosenConflicts)
	require.Len(t, report.Schedules, 2)
	assert.Equal(t, "Teknik Informatika", report.Schedules[0].ProgramName)
	assert.False(t, report.Schedules[0].Result.Valid)
}

func TestGenerateConflictReportUnknownPeriod(t *testing.T) {
	service := NewReportService(scheduleListerStub{}, sweeperStub{}, workloadPeriodStub{}, nil, nil, time.Minute)

	_, err := service.GenerateConflictReport(context.Background(), "nope")
	assert.Error(t, err)
}

func TestGenerateConflictReportUsesCache(t *testing.T) {
	cache := &cacheStoreStub{values: map[string][]byte{}}
	service := NewReportService(scheduleListerStub{}, sweeperStub{}, workloadPeriodStub{}, cache, nil, time.Minute)

	_, err := service.GenerateConflictReport(context.Background(), "period-1")
	require.NoError(t, err)
	assert.Contains(t, cache.values, "conflict-report:period-1")
}

type scheduleListerStub struct {
	schedules []models.ProgramSchedule
}

func (s scheduleListerStub) ListByPeriod(ctx context.Context, periodID string, statuses []models.ScheduleStatus) ([]models.ProgramSchedule, error) {
	return s.schedules, nil
}

type sweeperStub struct {
	results map[string]*dto.CompleteScheduleResult
}

func (s sweeperStub) ValidateCompleteSchedule(ctx context.Context, scheduleID string) (*dto.CompleteScheduleResult, error) {
	if result, ok := s.results[scheduleID]; ok {
		return result, nil
	}
	return &dto.CompleteScheduleResult{ScheduleID: scheduleID, Valid: true}, nil
}
