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

type lecturerLoadReader interface {
	ListLecturerPeriodItems(ctx context.Context, lecturerID, periodID string, statuses []models.ScheduleStatus, excludeItemID string) ([]models.LecturerLoadItem, error)
}

type periodReader interface {
	FindByID(ctx context.Context, id string) (*models.AcademicPeriod, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// WorkloadService builds per-lecturer teaching load reports. Reports only
// count approved and published schedules; results are cached briefly because
// the report page is polled by the kaprodi dashboard.
type WorkloadService struct {
	loads         lecturerLoadReader
	lecturers     lecturerReader
	periods       periodReader
	cache         cacheStore
	logger        *zap.Logger
	defaultMaxSKS int
	cacheTTL      time.Duration
}

// NewWorkloadService wires workload reporting dependencies. cache may be nil.
func NewWorkloadService(loads lecturerLoadReader, lecturers lecturerReader, periods periodReader, cache cacheStore, logger *zap.Logger, defaultMaxSKS int, cacheTTL time.Duration) *WorkloadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultMaxSKS <= 0 {
		defaultMaxSKS = 16
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &WorkloadService{
		loads:         loads,
		lecturers:     lecturers,
		periods:       periods,
		cache:         cache,
		logger:        logger,
		defaultMaxSKS: defaultMaxSKS,
		cacheTTL:      cacheTTL,
	}
}

func workloadCacheKey(lecturerID, periodID string) string {
	return fmt.Sprintf("workload:%s:%s", lecturerID, periodID)
}

// CalculateDosenWorkload sums the lecturer's committed teaching load for one
// academic period.
func (s *WorkloadService) CalculateDosenWorkload(ctx context.Context, lecturerID, periodID string) (*dto.DosenWorkloadReport, error) {
	key := workloadCacheKey(lecturerID, periodID)
	if s.cache != nil {
		var cached dto.DosenWorkloadReport
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("workload cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	lecturer, err := s.lecturers.FindByID(ctx, lecturerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lecturer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecturer")
	}
	period, err := s.periods.FindByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academic period not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic period")
	}

	items, err := s.loads.ListLecturerPeriodItems(ctx, lecturerID, periodID, models.ReportingScheduleStatuses, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teaching items")
	}

	maxSKS := s.defaultMaxSKS
	if lecturer.MaxSKS != nil && *lecturer.MaxSKS > 0 {
		maxSKS = *lecturer.MaxSKS
	}

	report := &dto.DosenWorkloadReport{
		LecturerID:   lecturer.ID,
		LecturerName: lecturer.FullName,
		PeriodID:     period.ID,
		Year:         period.Year,
		Semester:     period.Semester,
		MaxSKS:       maxSKS,
		Courses:      items,
	}
	seenCourses := make(map[string]struct{})
	for _, item := range items {
		report.TotalSKS += item.SKS
		// Rows with corrupt times still count toward SKS but not minutes.
		if validClock(item.StartTime) && validClock(item.EndTime) {
			report.TotalMinutes += clockMinutes(item.EndTime) - clockMinutes(item.StartTime)
		}
		seenCourses[item.CourseID] = struct{}{}
	}
	report.CourseCount = len(seenCourses)
	report.Overloaded = report.TotalSKS > maxSKS

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report, s.cacheTTL); err != nil {
			s.logger.Warn("workload cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return report, nil
}

// InvalidateLecturer drops every cached workload report for the lecturer.
// Called after schedule mutations touching the lecturer's bookings.
func (s *WorkloadService) InvalidateLecturer(ctx context.Context, lecturerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, fmt.Sprintf("workload:%s:*", lecturerID)); err != nil {
		s.logger.Warn("workload cache invalidation failed", zap.String("lecturer_id", lecturerID), zap.Error(err))
	}
}
