package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/siakad-dev/siakad-api/internal/dto"
	"github.com/siakad-dev/siakad-api/internal/models"
	appErrors "github.com/siakad-dev/siakad-api/pkg/errors"
)

type scheduleItemReader interface {
	FindByID(ctx context.Context, id string) (*models.ScheduleItemDetail, error)
	ListBySchedule(ctx context.Context, scheduleID string) ([]models.ScheduleItemDetail, error)
	FindLecturerOverlaps(ctx context.Context, lecturerID string, day models.DayOfWeek, startTime, endTime, excludeItemID string) ([]models.ScheduleItemDetail, error)
	FindRoomOverlaps(ctx context.Context, roomID string, day models.DayOfWeek, startTime, endTime, excludeItemID string) ([]models.ScheduleItemDetail, error)
	FindStudentOverlaps(ctx context.Context, studentID string, day models.DayOfWeek, startTime, endTime, excludeScheduleID, excludeItemID string) ([]models.ScheduleItemDetail, error)
	ListLecturerPeriodItems(ctx context.Context, lecturerID, periodID string, statuses []models.ScheduleStatus, excludeItemID string) ([]models.LecturerLoadItem, error)
}

type enrollmentReader interface {
	ListActiveBySchedule(ctx context.Context, scheduleID string) ([]models.Enrollment, error)
}

type lecturerReader interface {
	FindByID(ctx context.Context, id string) (*models.Lecturer, error)
}

type roomReader interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
}

type courseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type programScheduleReader interface {
	FindByID(ctx context.Context, id string) (*models.ProgramSchedule, error)
}

type conflictLogWriter interface {
	Insert(ctx context.Context, entry *models.ConflictLog) error
}

type validationMetrics interface {
	RecordValidation(valid bool)
	RecordConflict(conflictType string)
}

// ValidatorConfig tunes the schedule validation thresholds.
type ValidatorConfig struct {
	MinDurationMinutes int
	WorkdayStart       string
	WorkdayEnd         string
	LunchStart         string
	LunchEnd           string
	DefaultMaxSKS      int
	WorkloadWarnRatio  float64
}

// ValidatorService detects booking conflicts, capacity shortfalls and
// lecturer overload for proposed or existing schedule items. It is stateless
// per call; its only write side effect is best-effort conflict logging.
type ValidatorService struct {
	items        scheduleItemReader
	enrollments  enrollmentReader
	lecturers    lecturerReader
	rooms        roomReader
	courses      courseReader
	schedules    programScheduleReader
	conflictLogs conflictLogWriter
	metrics      validationMetrics
	validator    *validator.Validate
	logger       *zap.Logger
	cfg          ValidatorConfig
}

// NewValidatorService wires validator dependencies.
func NewValidatorService(
	items scheduleItemReader,
	enrollments enrollmentReader,
	lecturers lecturerReader,
	rooms roomReader,
	courses courseReader,
	schedules programScheduleReader,
	conflictLogs conflictLogWriter,
	metrics validationMetrics,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ValidatorConfig,
) *ValidatorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MinDurationMinutes <= 0 {
		cfg.MinDurationMinutes = 50
	}
	if cfg.WorkdayStart == "" {
		cfg.WorkdayStart = "07:00"
	}
	if cfg.WorkdayEnd == "" {
		cfg.WorkdayEnd = "17:00"
	}
	if cfg.LunchStart == "" {
		cfg.LunchStart = "12:00"
	}
	if cfg.LunchEnd == "" {
		cfg.LunchEnd = "13:00"
	}
	if cfg.DefaultMaxSKS <= 0 {
		cfg.DefaultMaxSKS = 16
	}
	if cfg.WorkloadWarnRatio <= 0 || cfg.WorkloadWarnRatio > 1 {
		cfg.WorkloadWarnRatio = 0.8
	}
	return &ValidatorService{
		items:        items,
		enrollments:  enrollments,
		lecturers:    lecturers,
		rooms:        rooms,
		courses:      courses,
		schedules:    schedules,
		conflictLogs: conflictLogs,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		cfg:          cfg,
	}
}

// ValidateScheduleItem runs the full validation pipeline for one candidate
// booking. Structural failures short-circuit before any store access. The
// method never returns an error: infrastructure failures surface as a single
// VALIDATION_ERROR entry.
func (s *ValidatorService) ValidateScheduleItem(ctx context.Context, candidate dto.ScheduleItemCandidate, excludeItemID string) (result *dto.ValidationResult) {
	result = &dto.ValidationResult{Valid: true, Errors: []dto.ValidationIssue{}, Warnings: []dto.ValidationIssue{}}
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("schedule validation panicked", zap.Any("panic", rec))
			result.AddError(dto.ValidationIssue{
				Type:    dto.IssueValidationError,
				Message: "validation could not be completed",
			})
		}
		if s.metrics != nil {
			s.metrics.RecordValidation(result.Valid)
		}
	}()

	if err := s.validator.Struct(candidate); err != nil {
		result.AddError(dto.ValidationIssue{
			Type:    dto.IssueValidationError,
			Message: fmt.Sprintf("invalid candidate payload: %v", err),
		})
		return result
	}
	if !models.ValidDay(candidate.Day) {
		result.AddError(dto.ValidationIssue{
			Type:    dto.IssueValidationError,
			Message: fmt.Sprintf("unknown day of week %q", candidate.Day),
		})
		return result
	}

	// Structural gate: no store access against unparseable times.
	s.checkTimeFormat(candidate, result)
	if !result.Valid {
		return result
	}
	s.checkDuration(candidate, result)
	if !result.Valid {
		return result
	}

	s.checkWorkHours(candidate, result)

	dosen, err := s.CheckDosenConflict(ctx, candidate.LecturerID, candidate.Day, candidate.StartTime, candidate.EndTime, excludeItemID)
	if err != nil {
		return s.abortOnInfra(ctx, result, "lecturer conflict check", err)
	}
	if dosen.HasConflict {
		s.recordConflict(ctx, dto.IssueDosenConflict, dosen, candidate, excludeItemID)
		result.AddError(dto.ValidationIssue{
			Type:    dto.IssueDosenConflict,
			Message: dosen.Message,
			Details: map[string]any{"conflicts": dosen.Conflicts},
		})
	}

	ruangan, err := s.CheckRuanganConflict(ctx, candidate.RoomID, candidate.Day, candidate.StartTime, candidate.EndTime, excludeItemID)
	if err != nil {
		return s.abortOnInfra(ctx, result, "room conflict check", err)
	}
	if ruangan.HasConflict {
		s.recordConflict(ctx, dto.IssueRuanganConflict, ruangan, candidate, excludeItemID)
		result.AddError(dto.ValidationIssue{
			Type:    dto.IssueRuanganConflict,
			Message: ruangan.Message,
			Details: map[string]any{"conflicts": ruangan.Conflicts},
		})
	}

	if candidate.Capacity != nil {
		capRes, err := s.CheckRoomCapacity(ctx, candidate.RoomID, *candidate.Capacity)
		if err != nil {
			return s.abortOnInfra(ctx, result, "room capacity check", err)
		}
		if !capRes.Valid {
			if s.metrics != nil {
				s.metrics.RecordConflict(dto.IssueKapasitasExceeded)
			}
			result.AddError(dto.ValidationIssue{
				Type:    dto.IssueKapasitasExceeded,
				Message: capRes.Message,
				Details: map[string]any{
					"room_capacity": capRes.Details.RoomCapacity,
					"requested":     capRes.Details.Requested,
					"kelebihan":     capRes.Details.Kelebihan,
				},
			})
		}
	}

	if candidate.CourseID != "" {
		load, err := s.CheckDosenWorkload(ctx, candidate.LecturerID, candidate.CourseID, candidate.ScheduleID, excludeItemID)
		if err != nil {
			return s.abortOnInfra(ctx, result, "lecturer workload check", err)
		}
		switch {
		case !load.Valid:
			if s.metrics != nil {
				s.metrics.RecordConflict(dto.IssueDosenOverload)
			}
			result.AddError(dto.ValidationIssue{
				Type:    dto.IssueDosenOverload,
				Message: load.Message,
				Details: map[string]any{
					"total_sks": load.Details.TotalSKS,
					"max_sks":   load.Details.MaxSKS,
					"exceeded":  load.Details.Exceeded,
					"courses":   load.Details.Courses,
				},
			})
		case load.Severity == string(models.ConflictSeverityWarning):
			result.AddWarning(dto.ValidationIssue{
				Type:    dto.WarnDosenWorkload,
				Message: load.Message,
				Details: map[string]any{
					"total_sks":  load.Details.TotalSKS,
					"max_sks":    load.Details.MaxSKS,
					"percentage": load.Details.Percentage,
				},
			})
		}
	}

	return result
}

func (s *ValidatorService) checkTimeFormat(candidate dto.ScheduleItemCandidate, result *dto.ValidationResult) {
	if !validClock(candidate.StartTime) {
		result.AddError(dto.ValidationIssue{
			Type:    dto.IssueInvalidTimeFormat,
			Message: fmt.Sprintf("start time %q is not a valid HH:MM clock time", candidate.StartTime),
			Details: map[string]any{"field": "start_time", "value": candidate.StartTime},
		})
	}
	if !validClock(candidate.EndTime) {
		result.AddError(dto.ValidationIssue{
			Type:    dto.IssueInvalidTimeFormat,
			Message: fmt.Sprintf("end time %q is not a valid HH:MM clock time", candidate.EndTime),
			Details: map[string]any{"field": "end_time", "value": candidate.EndTime},
		})
	}
}

func (s *ValidatorService) checkDuration(candidate dto.ScheduleItemCandidate, result *dto.ValidationResult) {
	start := clockMinutes(candidate.StartTime)
	end := clockMinutes(candidate.EndTime)
	if end <= start {
		result.AddError(dto.ValidationIssue{
			Type:    dto.IssueInvalidTimeRange,
			Message: "end time must be after start time",
			Details: map[string]any{"start_time": candidate.StartTime, "end_time": candidate.EndTime},
		})
		return
	}
	if duration := end - start; duration < s.cfg.MinDurationMinutes {
		result.AddError(dto.ValidationIssue{
			Type:    dto.IssueDurationTooShort,
			Message: fmt.Sprintf("duration of %d minutes is below the %d minute minimum", duration, s.cfg.MinDurationMinutes),
			Details: map[string]any{"duration_minutes": duration, "minimum_minutes": s.cfg.MinDurationMinutes},
		})
	}
}

func (s *ValidatorService) checkWorkHours(candidate dto.ScheduleItemCandidate, result *dto.ValidationResult) {
	start := clockMinutes(candidate.StartTime)
	end := clockMinutes(candidate.EndTime)

	if start < clockMinutes(s.cfg.WorkdayStart) || end > clockMinutes(s.cfg.WorkdayEnd) {
		result.AddWarning(dto.ValidationIssue{
			Type:    dto.WarnOutsideWorkHours,
			Message: fmt.Sprintf("booking falls outside teaching hours (%s-%s)", s.cfg.WorkdayStart, s.cfg.WorkdayEnd),
		})
	}
	if rangesOverlap(start, end, clockMinutes(s.cfg.LunchStart), clockMinutes(s.cfg.LunchEnd)) {
		result.AddWarning(dto.ValidationIssue{
			Type:    dto.WarnLunchOverlap,
			Message: fmt.Sprintf("booking overlaps the lunch break (%s-%s)", s.cfg.LunchStart, s.cfg.LunchEnd),
		})
	}
}

// CheckDosenConflict finds every active booking of the lecturer overlapping
// the window on the given day, system-wide across programs and sections.
func (s *ValidatorService) CheckDosenConflict(ctx context.Context, lecturerID string, day models.DayOfWeek, startTime, endTime, excludeItemID string) (*dto.ConflictCheckResult, error) {
	overlapping, err := s.items.FindLecturerOverlaps(ctx, lecturerID, day, startTime, endTime, excludeItemID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query lecturer bookings")
	}
	result := &dto.ConflictCheckResult{Conflicts: []dto.ConflictingBooking{}}
	if len(overlapping) == 0 {
		return result, nil
	}

	name := lecturerID
	if lecturer, err := s.lecturers.FindByID(ctx, lecturerID); err == nil {
		name = lecturer.FullName
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecturer")
	}

	result.HasConflict = true
	result.Message = fmt.Sprintf("lecturer %s already teaches %d overlapping class(es) on %s %s", name, len(overlapping), day, formatRange(startTime, endTime))
	for _, item := range overlapping {
		result.Conflicts = append(result.Conflicts, bookingFromDetail(item))
	}
	return result, nil
}

// CheckRuanganConflict finds every active booking of the room overlapping the
// window on the given day.
func (s *ValidatorService) CheckRuanganConflict(ctx context.Context, roomID string, day models.DayOfWeek, startTime, endTime, excludeItemID string) (*dto.ConflictCheckResult, error) {
	overlapping, err := s.items.FindRoomOverlaps(ctx, roomID, day, startTime, endTime, excludeItemID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query room bookings")
	}
	result := &dto.ConflictCheckResult{Conflicts: []dto.ConflictingBooking{}}
	if len(overlapping) == 0 {
		return result, nil
	}

	code := roomID
	if room, err := s.rooms.FindByID(ctx, roomID); err == nil {
		code = room.Code
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	result.HasConflict = true
	result.Message = fmt.Sprintf("room %s is already booked by %d overlapping class(es) on %s %s", code, len(overlapping), day, formatRange(startTime, endTime))
	for _, item := range overlapping {
		result.Conflicts = append(result.Conflicts, bookingFromDetail(item))
	}
	return result, nil
}

// CheckMahasiswaConflict searches, for every student actively enrolled in the
// schedule, their other active enrollments for bookings overlapping the
// window. One query per student; deliberately not part of the main
// ValidateScheduleItem pipeline.
func (s *ValidatorService) CheckMahasiswaConflict(ctx context.Context, scheduleID string, day models.DayOfWeek, startTime, endTime, excludeItemID string) (*dto.ConflictCheckResult, error) {
	enrollments, err := s.enrollments.ListActiveBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}

	result := &dto.ConflictCheckResult{Conflicts: []dto.ConflictingBooking{}}
	affected := 0
	for _, enrollment := range enrollments {
		overlapping, err := s.items.FindStudentOverlaps(ctx, enrollment.StudentID, day, startTime, endTime, scheduleID, excludeItemID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query student bookings")
		}
		if len(overlapping) == 0 {
			continue
		}
		affected++
		for _, item := range overlapping {
			booking := bookingFromDetail(item)
			booking.StudentID = enrollment.StudentID
			result.Conflicts = append(result.Conflicts, booking)
		}
	}

	if affected > 0 {
		result.HasConflict = true
		result.Message = fmt.Sprintf("%d enrolled student(s) have overlapping classes on %s %s", affected, day, formatRange(startTime, endTime))
	}
	return result, nil
}

// CheckRoomCapacity verifies that the requested seat count fits the room.
func (s *ValidatorService) CheckRoomCapacity(ctx context.Context, roomID string, requested int) (*dto.CapacityCheckResult, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	if requested > room.Capacity {
		return &dto.CapacityCheckResult{
			Valid:   false,
			Message: fmt.Sprintf("requested capacity %d exceeds room %s capacity %d", requested, room.Code, room.Capacity),
			Details: &dto.CapacityDetails{
				RoomID:       room.ID,
				RoomCode:     room.Code,
				RoomCapacity: room.Capacity,
				Requested:    requested,
				Kelebihan:    requested - room.Capacity,
			},
		}, nil
	}
	return &dto.CapacityCheckResult{Valid: true}, nil
}

// CheckDosenWorkload sums the lecturer's SKS load within the candidate
// schedule's academic period and judges the new course against the lecturer's
// ceiling. Reaching the warn ratio without exceeding the ceiling yields a
// non-blocking warning.
func (s *ValidatorService) CheckDosenWorkload(ctx context.Context, lecturerID, courseID, scheduleID, excludeItemID string) (*dto.WorkloadCheckResult, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	schedule, err := s.schedules.FindByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program schedule")
	}

	maxSKS := s.cfg.DefaultMaxSKS
	if lecturer, err := s.lecturers.FindByID(ctx, lecturerID); err == nil {
		if lecturer.MaxSKS != nil && *lecturer.MaxSKS > 0 {
			maxSKS = *lecturer.MaxSKS
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecturer")
	}

	items, err := s.items.ListLecturerPeriodItems(ctx, lecturerID, schedule.PeriodID, models.ActiveScheduleStatuses, excludeItemID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecturer teaching load")
	}

	current := 0
	for _, item := range items {
		current += item.SKS
	}
	total := current + course.SKS

	details := dto.WorkloadDetails{
		CurrentSKS:   current,
		NewCourseSKS: course.SKS,
		TotalSKS:     total,
		MaxSKS:       maxSKS,
		Courses:      items,
	}

	if total > maxSKS {
		details.Exceeded = total - maxSKS
		return &dto.WorkloadCheckResult{
			Valid:    false,
			Severity: string(models.ConflictSeverityError),
			Message:  fmt.Sprintf("adding this course brings the load to %d SKS, exceeding the %d SKS ceiling by %d", total, maxSKS, details.Exceeded),
			Details:  details,
		}, nil
	}

	if float64(total) >= s.cfg.WorkloadWarnRatio*float64(maxSKS) {
		details.Percentage = int(math.Round(float64(total) / float64(maxSKS) * 100))
		return &dto.WorkloadCheckResult{
			Valid:    true,
			Severity: string(models.ConflictSeverityWarning),
			Message:  fmt.Sprintf("lecturer load reaches %d%% of the %d SKS ceiling", details.Percentage, maxSKS),
			Details:  details,
		}, nil
	}

	return &dto.WorkloadCheckResult{
		Valid:   true,
		Message: fmt.Sprintf("lecturer load is %d of %d SKS", total, maxSKS),
		Details: details,
	}, nil
}

// ValidateCompleteSchedule sweeps every item of one program schedule,
// re-validating each against the rest of the system (self-excluded) and
// running the student-level conflict check. Intended as the publish gate.
func (s *ValidatorService) ValidateCompleteSchedule(ctx context.Context, scheduleID string) (*dto.CompleteScheduleResult, error) {
	items, err := s.items.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule items")
	}

	result := &dto.CompleteScheduleResult{
		ScheduleID: scheduleID,
		Valid:      true,
		Errors:     []dto.AnnotatedIssue{},
		Warnings:   []dto.AnnotatedIssue{},
	}
	result.Summary.TotalItems = len(items)

	for _, item := range items {
		candidate := dto.ScheduleItemCandidate{
			ScheduleID: item.ScheduleID,
			LecturerID: item.LecturerID,
			RoomID:     item.RoomID,
			CourseID:   item.CourseID,
			Day:        item.Day,
			StartTime:  item.StartTime,
			EndTime:    item.EndTime,
			Capacity:   item.Capacity,
		}

		itemResult := s.ValidateScheduleItem(ctx, candidate, item.ID)
		for _, issue := range itemResult.Errors {
			result.Errors = append(result.Errors, annotate(issue, item))
			tally(&result.Summary, issue.Type, true)
		}
		for _, issue := range itemResult.Warnings {
			result.Warnings = append(result.Warnings, annotate(issue, item))
			tally(&result.Summary, issue.Type, false)
		}

		students, err := s.CheckMahasiswaConflict(ctx, scheduleID, item.Day, item.StartTime, item.EndTime, item.ID)
		if err != nil {
			s.logger.Warn("student conflict check failed during sweep",
				zap.String("schedule_id", scheduleID),
				zap.String("item_id", item.ID),
				zap.Error(err))
			continue
		}
		if students.HasConflict {
			issue := dto.ValidationIssue{
				Type:    dto.IssueMahasiswaConflict,
				Message: students.Message,
				Details: map[string]any{"conflicts": students.Conflicts},
			}
			result.Errors = append(result.Errors, annotate(issue, item))
			tally(&result.Summary, issue.Type, true)
		}
	}

	result.Valid = result.Summary.TotalErrors == 0
	return result, nil
}

// ValidateBatch validates candidates sequentially and aggregates the results.
func (s *ValidatorService) ValidateBatch(ctx context.Context, req dto.BatchValidateRequest) (*dto.BatchValidateResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid batch payload")
	}

	batch := &dto.BatchValidateResult{Valid: true, Results: make([]dto.BatchItemResult, 0, len(req.Items))}
	for i, candidate := range req.Items {
		itemResult := s.ValidateScheduleItem(ctx, candidate, "")
		if !itemResult.Valid {
			batch.Valid = false
		}
		batch.Results = append(batch.Results, dto.BatchItemResult{Index: i, Result: *itemResult})
	}
	return batch, nil
}

// LogConflict persists a conflict log entry best-effort. Failures are logged
// and swallowed so logging never affects the validation response.
func (s *ValidatorService) LogConflict(ctx context.Context, data dto.ConflictLogData) {
	if s.conflictLogs == nil {
		return
	}
	entry := &models.ConflictLog{
		Type:        data.Type,
		Severity:    data.Severity,
		Description: data.Description,
	}
	if data.ItemID != "" {
		entry.ItemID = &data.ItemID
	}
	if data.ConflictingItemID != "" {
		entry.ConflictingItemID = &data.ConflictingItemID
	}
	if len(data.Details) > 0 {
		if raw, err := json.Marshal(data.Details); err == nil {
			entry.Details = types.JSONText(raw)
		}
	}
	if err := s.conflictLogs.Insert(ctx, entry); err != nil {
		s.logger.Warn("failed to persist conflict log", zap.String("type", data.Type), zap.Error(err))
	}
}

func (s *ValidatorService) recordConflict(ctx context.Context, conflictType string, check *dto.ConflictCheckResult, candidate dto.ScheduleItemCandidate, itemID string) {
	if s.metrics != nil {
		s.metrics.RecordConflict(conflictType)
	}
	conflictingID := ""
	if len(check.Conflicts) > 0 {
		conflictingID = check.Conflicts[0].ItemID
	}
	s.LogConflict(ctx, dto.ConflictLogData{
		Type:              conflictType,
		Severity:          models.ConflictSeverityError,
		Description:       check.Message,
		ItemID:            itemID,
		ConflictingItemID: conflictingID,
		Details: map[string]any{
			"day":        candidate.Day,
			"start_time": candidate.StartTime,
			"end_time":   candidate.EndTime,
		},
	})
}

func (s *ValidatorService) abortOnInfra(_ context.Context, result *dto.ValidationResult, op string, err error) *dto.ValidationResult {
	s.logger.Error("validation infrastructure failure", zap.String("operation", op), zap.Error(err))
	result.AddError(dto.ValidationIssue{
		Type:    dto.IssueValidationError,
		Message: fmt.Sprintf("validation could not be completed: %s failed", op),
	})
	return result
}

func annotate(issue dto.ValidationIssue, item models.ScheduleItemDetail) dto.AnnotatedIssue {
	return dto.AnnotatedIssue{
		ValidationIssue: issue,
		ItemID:          item.ID,
		CourseName:      item.CourseName,
		LecturerName:    item.LecturerName,
		Day:             item.Day,
		TimeRange:       formatRange(item.StartTime, item.EndTime),
	}
}

func tally(summary *dto.ConflictSummary, issueType string, isError bool) {
	if isError {
		summary.TotalErrors++
	} else {
		summary.TotalWarnings++
	}
	switch issueType {
	case dto.IssueDosenConflict:
		summary.DosenConflicts++
	case dto.IssueRuanganConflict:
		summary.RuanganConflicts++
	case dto.IssueMahasiswaConflict:
		summary.MahasiswaConflicts++
	case dto.IssueKapasitasExceeded:
		summary.CapacityIssues++
	case dto.IssueDosenOverload, dto.WarnDosenWorkload:
		summary.WorkloadIssues++
	case dto.IssueInvalidTimeFormat, dto.IssueInvalidTimeRange, dto.IssueDurationTooShort:
		summary.StructuralIssues++
	}
}

func bookingFromDetail(item models.ScheduleItemDetail) dto.ConflictingBooking {
	return dto.ConflictingBooking{
		ItemID:       item.ID,
		ScheduleID:   item.ScheduleID,
		CourseName:   item.CourseName,
		ProgramName:  item.ProgramName,
		ClassSection: item.ClassSection,
		RoomCode:     item.RoomCode,
		LecturerName: item.LecturerName,
		Day:          item.Day,
		TimeRange:    formatRange(item.StartTime, item.EndTime),
	}
}

// --- Clock helpers ---

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func validClock(raw string) bool {
	return clockPattern.MatchString(raw)
}

// clockMinutes converts a validated "HH:MM" value to minutes since midnight.
func clockMinutes(raw string) int {
	hours := int(raw[0]-'0')*10 + int(raw[1]-'0')
	minutes := int(raw[3]-'0')*10 + int(raw[4]-'0')
	return hours*60 + minutes
}

// rangesOverlap implements the half-open interval predicate: touching
// endpoints do not overlap.
func rangesOverlap(start1, end1, start2, end2 int) bool {
	return start1 < end2 && start2 < end1
}

func formatRange(startTime, endTime string) string {
	return startTime + "-" + endTime
}
