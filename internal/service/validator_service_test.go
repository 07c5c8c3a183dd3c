package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siakad-dev/siakad-api/internal/dto"
	"github.com/siakad-dev/siakad-api/internal/models"
)

func TestValidateScheduleItemValid(t *testing.T) {
	service := newValidatorFixture(validatorFixtureConfig{})

	result := service.ValidateScheduleItem(context.Background(), validCandidate(), "")

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateScheduleItemLecturerConflict(t *testing.T) {
	existing := detailFixture("item-77", "sched-2")
	sink := &conflictSinkStub{}
	service := newValidatorFixture(validatorFixtureConfig{
		lecturerOverlaps: []models.ScheduleItemDetail{existing},
		conflictSink:     sink,
	})

	result := service.ValidateScheduleItem(context.Background(), validCandidate(), "")

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, dto.IssueDosenConflict, result.Errors[0].Type)
	conflicts := result.Errors[0].Details["conflicts"].([]dto.ConflictingBooking)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "item-77", conflicts[0].ItemID)

	// Detected conflicts land in the audit log.
	require.Len(t, sink.entries, 1)
	assert.Equal(t, dto.IssueDosenConflict, sink.entries[0].Type)
	assert.Equal(t, models.ConflictSeverityError, sink.entries[0].Severity)
}

func TestValidateScheduleItemConflictLogFailureIgnored(t *testing.T) {
	sink := &conflictSinkStub{err: errors.New("conflict_logs insert failed")}
	service := newValidatorFixture(validatorFixtureConfig{
		lecturerOverlaps: []models.ScheduleItemDetail{detailFixture("item-77", "sched-2")},
		conflictSink:     sink,
	})

	result := service.ValidateScheduleItem(context.Background(), validCandidate(), "")

	// A failed audit write never changes the validation outcome.
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, dto.IssueDosenConflict, result.Errors[0].Type)
	assert.Empty(t, sink.entries)
}

func TestValidateScheduleItemRoomConflict(t *testing.T) {
	service := newValidatorFixture(validatorFixtureConfig{
		roomOverlaps: []models.ScheduleItemDetail{detailFixture("item-9", "sched-3")},
	})

	result := service.ValidateScheduleItem(context.Background(), validCandidate(), "")

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, dto.IssueRuanganConflict, result.Errors[0].Type)
}

func TestValidateScheduleItemFormatGateSkipsStore(t *testing.T) {
	items := &itemStoreStub{}
	service := newValidatorFixture(validatorFixtureConfig{items: items})

	candidate := validCandidate()
	candidate.StartTime = "7:00"

	result := service.ValidateScheduleItem(context.Background(), candidate, "")

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, dto.IssueInvalidTimeFormat, result.Errors[0].Type)
	assert.Equal(t, 0, items.calls, "structural failures must not hit the store")
}

func TestValidateScheduleItemInvalidRange(t *testing.T) {
	service := newValidatorFixture(validatorFixtureConfig{})

	candidate := validCandidate()
	candidate.StartTime = "10:00"
	candidate.EndTime = "09:00"

	result := service.ValidateScheduleItem(context.Background(), candidate, "")

	require.Len(t, result.Errors, 1)
	assert.Equal(t, dto.IssueInvalidTimeRange, result.Errors[0].Type)
}

func TestValidateScheduleItemDurationBoundary(t *testing.T) {
	service := newValidatorFixture(validatorFixtureConfig{})

	short := validCandidate()
	short.StartTime = "08:00"
	short.EndTime = "08:49"
	result := service.ValidateScheduleItem(context.Background(), short, "")
	require.Len(t, result.Errors, 1)
	assert.Equal(t, dto.IssueDurationTooShort, result.Errors[0].Type)
	assert.Equal(t, 49, result.Errors[0].Details["duration_minutes"])

	exact := validCandidate()
	exact.StartTime = "08:00"
	exact.EndTime = "08:50"
	result = service.ValidateScheduleItem(context.Background(), exact, "")
	assert.True(t, result.Valid, "a 50 minute booking meets the minimum exactly")
}

func TestValidateScheduleItemWorkHourWarnings(t *testing.T) {
	service := newValidatorFixture(validatorFixtureConfig{})

	early := validCandidate()
	early.StartTime = "06:00"
	early.EndTime = "07:40"
	result := service.ValidateScheduleItem(context.Background(), early, "")
	assert.True(t, result.Valid, "warnings never affect validity")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, dto.WarnOutsideWorkHours, result.Warnings[0].Type)

	lunch := validCandidate()
	lunch.StartTime = "12:30"
	lunch.EndTime = "14:10"
	result = service.ValidateScheduleItem(context.Background(), lunch, "")
	assert.True(t, result.Valid)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, dto.WarnLunchOverlap, result.Warnings[0].Type)

	// Ending exactly at the lunch start does not overlap the break.
	edge := validCandidate()
	edge.StartTime = "10:20"
	edge.EndTime = "12:00"
	result = service.ValidateScheduleItem(context.Background(), edge, "")
	assert.Empty(t, result.Warnings)
}

func TestValidateScheduleItemCapacityExceeded(t *testing.T) {
	service := newValidatorFixture(validatorFixtureConfig{})

	candidate := validCandidate()
	requested := 45
	candidate.Capacity = &requested

	result := service.ValidateScheduleItem(context.Background(), candidate, "")

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, dto.IssueKapasitasExceeded, result.Errors[0].Type)
	assert.Equal(t, 5, result.Errors[0].Details["kelebihan"])
}

func TestValidateScheduleItemWorkloadWarning(t *testing.T) {
	service := newValidatorFixture(validatorFixtureConfig{
		loadItems: loadItemsWithSKS(10),
	})

	candidate := validCandidate()
	candidate.CourseID = "course-1" // 3 SKS in the fixture

	result := service.ValidateScheduleItem(context.Background(), candidate, "")

	assert.True(t, result.Valid)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, dto.WarnDosenWorkload, result.Warnings[0].Type)
	assert.Equal(t, 81, result.Warnings[0].Details["percentage"], "13 of 16 SKS rounds to 81 percent")
}

func TestValidateScheduleItemWorkloadExceeded(t *testing.T) {
	service := newValidatorFixture(validatorFixtureConfig{
		loadItems: loadItemsWithSKS(14),
	})

	candidate := validCandidate()
	candidate.CourseID = "course-1"

	result := service.ValidateScheduleItem(context.Background(), candidate, "")

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, dto.IssueDosenOverload, result.Errors[0].Type)
	assert.Equal(t, 1, result.Errors[0].Details["exceeded"])
}

func TestValidateScheduleItemInfraErrorSingleEntry(t *testing.T) {
	service := newValidatorFixture(validatorFixtureConfig{
		items: &itemStoreStub{err: assert.AnError},
	})

	result := service.ValidateScheduleItem(context.Background(), validCandidate(), "")

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, dto.IssueValidationError, result.Errors[0].Type)
}

func TestValidateScheduleItemRecoversFromPanic(t *testing.T) {
	service := newValidatorFixture(validatorFixtureConfig{
		items: &itemStoreStub{panicOnLecturer: true},
	})

	result := service.ValidateScheduleItem(context.Background(), validCandidate(), "")

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, dto.IssueValidationError, result.Errors[0].Type)
}

func TestValidateScheduleItemUnknownDay(t *testing.T) {
	service := newValidatorFixture(validatorFixtureConfig{})

	candidate := validCandidate()
	candidate.Day = "FUNDAY"

	result := service.ValidateScheduleItem(context.Background(), candidate, "")

	require.Len(t, result.Errors, 1)
	assert.Equal(t, dto.IssueValidationError, result.Errors[0].Type)
}

func TestCheckDosenConflictSelfExclusion(t *testing.T) {
	items := &itemStoreStub{}
	service := newValidatorFixture(validatorFixtureConfig{items: items})

	_, err := service.CheckDosenConflict(context.Background(), "lect-1", models.DayMonday, "07:00", "08:40", "item-edit")
	require.NoError(t, err)
	assert.Equal(t, "item-edit", items.lastExcludeID, "edits must exclude the item being edited")
}

func TestCheckMahasiswaConflict(t *testing.T) {
	service := newValidatorFixture(validatorFixtureConfig{
		enrollments: []models.Enrollment{
			{ID: "enr-1", StudentID: "stud-1", ScheduleID: "sched-1", Status: models.EnrollmentStatusActive},
			{ID: "enr-2", StudentID: "stud-2", ScheduleID: "sched-1", Status: models.EnrollmentStatusActive},
		},
		studentOverlaps: map[string][]models.ScheduleItemDetail{
			"stud-2": {detailFixture("item-40", "sched-9")},
		},
	})

	result, err := service.CheckMahasiswaConflict(context.Background(), "sched-1", models.DayMonday, "07:00", "08:40", "")
	require.NoError(t, err)
	require.True(t, result.HasConflict)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "stud-2", result.Conflicts[0].StudentID)
}

func TestCheckRoomCapacityFits(t *testing.T) {
	service := newValidatorFixture(validatorFixtureConfig{})

	result, err := service.CheckRoomCapacity(context.Background(), "room-1", 40)
	require.NoError(t, err)
	assert.True(t, result.Valid, "a full room is not over capacity")
}

func TestValidateCompleteSchedule(t *testing.T) {
	item := detailFixture("item-1", "sched-1")
	item.CourseID = ""
	item.Capacity = nil
	service := newValidatorFixture(validatorFixtureConfig{
		items: &itemStoreStub{
			bySchedule:   []models.ScheduleItemDetail{item},
			roomOverlaps: []models.ScheduleItemDetail{detailFixture("item-2", "sched-5")},
		},
	})

	result, err := service.ValidateCompleteSchedule(context.Background(), "sched-1")
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.Equal(t, 1, result.Summary.TotalItems)
	assert.Equal(t, 1, result.Summary.RuanganConflicts)
	assert.Equal(t, 1, result.Summary.TotalErrors)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "item-1", result.Errors[0].ItemID)
}

func TestValidateBatch(t *testing.T) {
	service := newValidatorFixture(validatorFixtureConfig{})

	bad := validCandidate()
	bad.StartTime = "09:00"
	bad.EndTime = "08:00"

	batch, err := service.ValidateBatch(context.Background(), dto.BatchValidateRequest{
		Items: []dto.ScheduleItemCandidate{validCandidate(), bad},
	})
	require.NoError(t, err)

	assert.False(t, batch.Valid)
	require.Len(t, batch.Results, 2)
	assert.True(t, batch.Results[0].Result.Valid)
	assert.False(t, batch.Results[1].Result.Valid)
}

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"identical", "07:00", "08:40", "07:00", "08:40", true},
		{"partial", "07:00", "08:40", "08:00", "09:40", true},
		{"contained", "07:00", "10:20", "08:00", "08:50", true},
		{"touching endpoints", "07:00", "08:40", "08:40", "10:20", false},
		{"touching reversed", "08:40", "10:20", "07:00", "08:40", false},
		{"disjoint", "07:00", "08:40", "13:00", "14:40", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := rangesOverlap(clockMinutes(tc.s1), clockMinutes(tc.e1), clockMinutes(tc.s2), clockMinutes(tc.e2))
			assert.Equal(t, tc.want, got)
			// Overlap is symmetric.
			assert.Equal(t, got, rangesOverlap(clockMinutes(tc.s2), clockMinutes(tc.e2), clockMinutes(tc.s1), clockMinutes(tc.e1)))
		})
	}
}

func TestValidClock(t *testing.T) {
	valid := []string{"00:00", "07:00", "12:30", "23:59"}
	for _, v := range valid {
		assert.True(t, validClock(v), v)
	}
	invalid := []string{"7:00", "24:00", "12:60", "0700", "12:3", "ab:cd", ""}
	for _, v := range invalid {
		assert.False(t, validClock(v), v)
	}
}

// --- Fixture ---

type validatorFixtureConfig struct {
	items            *itemStoreStub
	lecturerOverlaps []models.ScheduleItemDetail
	roomOverlaps     []models.ScheduleItemDetail
	studentOverlaps  map[string][]models.ScheduleItemDetail
	loadItems        []models.LecturerLoadItem
	enrollments      []models.Enrollment
	conflictSink     *conflictSinkStub
}

func newValidatorFixture(cfg validatorFixtureConfig) *ValidatorService {
	items := cfg.items
	if items == nil {
		items = &itemStoreStub{
			lecturerOverlaps: cfg.lecturerOverlaps,
			roomOverlaps:     cfg.roomOverlaps,
			studentOverlaps:  cfg.studentOverlaps,
			loadItems:        cfg.loadItems,
		}
	}
	sink := cfg.conflictSink
	if sink == nil {
		sink = &conflictSinkStub{}
	}
	maxSKS := 16
	return NewValidatorService(
		items,
		enrollmentStoreStub{items: cfg.enrollments},
		lecturerStoreStub{items: map[string]*models.Lecturer{
			"lect-1": {ID: "lect-1", FullName: "Dr. Ratna Sari", MaxSKS: &maxSKS},
		}},
		roomStoreStub{items: map[string]*models.Room{
			"room-1": {ID: "room-1", Code: "GK-201", Capacity: 40, Active: true},
		}},
		courseStoreStub{items: map[string]*models.Course{
			"course-1": {ID: "course-1", Code: "IF2110", Name: "Algoritma dan Struktur Data", SKS: 3},
		}},
		scheduleStoreStub{items: map[string]*models.ProgramSchedule{
			"sched-1": {ID: "sched-1", PeriodID: "period-1", Status: models.ScheduleStatusDraft},
		}},
		sink,
		nil,
		nil,
		nil,
		ValidatorConfig{},
	)
}

func validCandidate() dto.ScheduleItemCandidate {
	return dto.ScheduleItemCandidate{
		ScheduleID: "sched-1",
		LecturerID: "lect-1",
		RoomID:     "room-1",
		Day:        models.DayMonday,
		StartTime:  "07:00",
		EndTime:    "08:40",
	}
}

func detailFixture(id, scheduleID string) models.ScheduleItemDetail {
	detail := models.ScheduleItemDetail{
		CourseName:   "Basis Data",
		LecturerName: "Dr. Ratna Sari",
		RoomCode:     "GK-201",
		ProgramName:  "Teknik Informatika",
		ClassSection: "A",
		Status:       models.ScheduleStatusApproved,
	}
	detail.ID = id
	detail.ScheduleID = scheduleID
	detail.LecturerID = "lect-1"
	detail.RoomID = "room-1"
	detail.CourseID = "course-1"
	detail.Day = models.DayMonday
	detail.StartTime = "07:30"
	detail.EndTime = "09:10"
	return detail
}

func loadItemsWithSKS(total int) []models.LecturerLoadItem {
	var items []models.LecturerLoadItem
	remaining := total
	i := 0
	for remaining > 0 {
		sks := 2
		if remaining < 2 {
			sks = remaining
		}
		i++
		items = append(items, models.LecturerLoadItem{
			ItemID:    itemID(i),
			CourseID:  itemID(i),
			SKS:       sks,
			Day:       models.DayTuesday,
			StartTime: "07:00",
			EndTime:   "08:40",
		})
		remaining -= sks
	}
	return items
}

func itemID(n int) string {
	return "load-" + string(rune('a'+n))
}

// --- Stubs ---

type itemStoreStub struct {
	lecturerOverlaps []models.ScheduleItemDetail
	roomOverlaps     []models.ScheduleItemDetail
	studentOverlaps  map[string][]models.ScheduleItemDetail
	loadItems        []models.LecturerLoadItem
	bySchedule       []models.ScheduleItemDetail
	err              error
	panicOnLecturer  bool
	calls            int
	lastExcludeID    string
}

func (s *itemStoreStub) FindByID(ctx context.Context, id string) (*models.ScheduleItemDetail, error) {
	s.calls++
	for _, item := range s.bySchedule {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *itemStoreStub) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ScheduleItemDetail, error) {
	s.calls++
	return s.bySchedule, s.err
}

func (s *itemStoreStub) FindLecturerOverlaps(ctx context.Context, lecturerID string, day models.DayOfWeek, startTime, endTime, excludeItemID string) ([]models.ScheduleItemDetail, error) {
	if s.panicOnLecturer {
		panic("boom")
	}
	s.calls++
	s.lastExcludeID = excludeItemID
	return s.lecturerOverlaps, s.err
}

func (s *itemStoreStub) FindRoomOverlaps(ctx context.Context, roomID string, day models.DayOfWeek, startTime, endTime, excludeItemID string) ([]models.ScheduleItemDetail, error) {
	s.calls++
	s.lastExcludeID = excludeItemID
	return s.roomOverlaps, s.err
}

func (s *itemStoreStub) FindStudentOverlaps(ctx context.Context, studentID string, day models.DayOfWeek, startTime, endTime, excludeScheduleID, excludeItemID string) ([]models.ScheduleItemDetail, error) {
	s.calls++
	return s.studentOverlaps[studentID], s.err
}

func (s *itemStoreStub) ListLecturerPeriodItems(ctx context.Context, lecturerID, periodID string, statuses []models.ScheduleStatus, excludeItemID string) ([]models.LecturerLoadItem, error) {
	s.calls++
	return s.loadItems, s.err
}

type enrollmentStoreStub struct {
	items []models.Enrollment
}

func (s enrollmentStoreStub) ListActiveBySchedule(ctx context.Context, scheduleID string) ([]models.Enrollment, error) {
	return s.items, nil
}

type lecturerStoreStub struct {
	items map[string]*models.Lecturer
}

func (s lecturerStoreStub) FindByID(ctx context.Context, id string) (*models.Lecturer, error) {
	if lecturer, ok := s.items[id]; ok {
		return lecturer, nil
	}
	return nil, sql.ErrNoRows
}

type roomStoreStub struct {
	items map[string]*models.Room
}

func (s roomStoreStub) FindByID(ctx context.Context, id string) (*models.Room, error) {
	if room, ok := s.items[id]; ok {
		return room, nil
	}
	return nil, sql.ErrNoRows
}

type courseStoreStub struct {
	items map[string]*models.Course
}

func (s courseStoreStub) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if course, ok := s.items[id]; ok {
		return course, nil
	}
	return nil, sql.ErrNoRows
}

type scheduleStoreStub struct {
	items map[string]*models.ProgramSchedule
}

func (s scheduleStoreStub) FindByID(ctx context.Context, id string) (*models.ProgramSchedule, error) {
	if schedule, ok := s.items[id]; ok {
		return schedule, nil
	}
	return nil, sql.ErrNoRows
}

type conflictSinkStub struct {
	entries []*models.ConflictLog
	err     error
}

func (s *conflictSinkStub) Insert(ctx context.Context, entry *models.ConflictLog) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}
