package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/siakad-dev/siakad-api/internal/dto"
	"github.com/siakad-dev/siakad-api/internal/models"
	appErrors "github.com/siakad-dev/siakad-api/pkg/errors"
)

type programScheduleLister interface {
	ListByPeriod(ctx context.Context, periodID string, statuses []models.ScheduleStatus) ([]models.ProgramSchedule, error)
}

type scheduleSweeper interface {
	ValidateCompleteSchedule(ctx context.Context, scheduleID string) (*dto.CompleteScheduleResult, error)
}

// ReportService builds period-wide conflict reports by sweeping every
// reviewable schedule of an academic period through full validation.
type ReportService struct {
	schedules programScheduleLister
	sweeper   scheduleSweeper
	periods   periodReader
	cache     cacheStore
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewReportService wires conflict-report dependencies. cache may be nil.
func NewReportService(schedules programScheduleLister, sweeper scheduleSweeper, periods periodReader, cache cacheStore, logger *zap.Logger, cacheTTL time.Duration) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ReportService{
		schedules: schedules,
		sweeper:   sweeper,
		periods:   periods,
		cache:     cache,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

func reportCacheKey(periodID string) string {
	return fmt.Sprintf("conflict-report:%s", periodID)
}

// GenerateConflictReport sweeps every submitted, under-review, approved or
// published schedule of the period and aggregates the findings. Draft
// schedules are excluded: they are still being edited.
func (s *ReportService) GenerateConflictReport(ctx context.Context, periodID string) (*dto.PeriodConflictReport, error) {
	key := reportCacheKey(periodID)
	if s.cache != nil {
		var cached dto.PeriodConflictReport
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	period, err := s.periods.FindByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academic period not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic period")
	}

	schedules, err := s.schedules.ListByPeriod(ctx, periodID, models.ConflictReportStatuses)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}

	report := &dto.PeriodConflictReport{
		PeriodID:       period.ID,
		Year:           period.Year,
		Semester:       period.Semester,
		GeneratedAt:    time.Now().UTC(),
		TotalSchedules: len(schedules),
		Schedules:      make([]dto.ScheduleConflictReport, 0, len(schedules)),
	}

	for _, schedule := range schedules {
		result, err := s.sweeper.ValidateCompleteSchedule(ctx, schedule.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
				fmt.Sprintf("failed to validate schedule %s", schedule.ID))
		}
		report.TotalItems += result.Summary.TotalItems
		report.TotalConflicts += result.Summary.TotalErrors
		mergeSummaries(&report.Summary, result.Summary)
		report.Schedules = append(report.Schedules, dto.ScheduleConflictReport{
			ScheduleID:   schedule.ID,
			ProgramName:  schedule.ProgramName,
			ClassSection: schedule.ClassSection,
			Status:       schedule.Status,
			Result:       *result,
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report, s.cacheTTL); err != nil {
			s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return report, nil
}

// InvalidatePeriod drops the cached report for one period.
func (s *ReportService) InvalidatePeriod(ctx context.Context, periodID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, reportCacheKey(periodID)); err != nil {
		s.logger.Warn("report cache invalidation failed", zap.String("period_id", periodID), zap.Error(err))
	}
}

func mergeSummaries(total *dto.ConflictSummary, part dto.ConflictSummary) {
	total.TotalItems += part.TotalItems
	total.TotalErrors += part.TotalErrors
	total.TotalWarnings += part.TotalWarnings
	total.DosenConflicts += part.DosenConflicts
	total.RuanganConflicts += part.RuanganConflicts
	total.MahasiswaConflicts += part.MahasiswaConflicts
	total.CapacityIssues += part.CapacityIssues
	total.WorkloadIssues += part.WorkloadIssues
	total.StructuralIssues += part.StructuralIssues
}
