package dto

import "github.com/siakad-dev/siakad-api/internal/models"

// Validation issue codes. Codes match the legacy API contract so existing
// clients keep working.
const (
	IssueInvalidTimeFormat = "INVALID_TIME_FORMAT"
	IssueInvalidTimeRange  = "INVALID_TIME_RANGE"
	IssueDurationTooShort  = "DURATION_TOO_SHORT"
	IssueDosenConflict     = models.ConflictTypeDosen
	IssueRuanganConflict   = models.ConflictTypeRuangan
	IssueMahasiswaConflict = models.ConflictTypeMahasiswa
	IssueKapasitasExceeded = models.ConflictTypeKapasitas
	IssueDosenOverload     = models.ConflictTypeOverload
	IssueValidationError   = "VALIDATION_ERROR"

	WarnOutsideWorkHours = "OUTSIDE_WORK_HOURS"
	WarnLunchOverlap     = "LUNCH_BREAK_OVERLAP"
	WarnDosenWorkload    = "DOSEN_WORKLOAD_WARNING"
)

// ScheduleItemCandidate is a proposed booking submitted for validation.
type ScheduleItemCandidate struct {
	ScheduleID string           `json:"schedule_id" validate:"required"`
	LecturerID string           `json:"lecturer_id" validate:"required"`
	RoomID     string           `json:"room_id" validate:"required"`
	CourseID   string           `json:"course_id"`
	Day        models.DayOfWeek `json:"day_of_week" validate:"required"`
	StartTime  string           `json:"start_time" validate:"required"`
	EndTime    string           `json:"end_time" validate:"required"`
	Capacity   *int             `json:"capacity,omitempty"`
}

// ValidationIssue is one error or warning found during validation.
type ValidationIssue struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ValidationResult aggregates every issue found for one candidate. Warnings
// never affect validity.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}

// AddError appends an error and flips validity.
func (r *ValidationResult) AddError(issue ValidationIssue) {
	r.Valid = false
	r.Errors = append(r.Errors, issue)
}

// AddWarning appends a non-blocking warning.
func (r *ValidationResult) AddWarning(issue ValidationIssue) {
	r.Warnings = append(r.Warnings, issue)
}

// ConflictingBooking describes an existing booking that collides with a
// candidate, with names resolved for display.
type ConflictingBooking struct {
	ItemID       string           `json:"item_id"`
	ScheduleID   string           `json:"schedule_id"`
	CourseName   string           `json:"course_name"`
	ProgramName  string           `json:"program_name"`
	ClassSection string           `json:"class_section"`
	RoomCode     string           `json:"room_code"`
	LecturerName string           `json:"lecturer_name"`
	Day          models.DayOfWeek `json:"day_of_week"`
	TimeRange    string           `json:"time_range"`
	StudentID    string           `json:"student_id,omitempty"`
}

// ConflictCheckResult is the shared answer shape of the three conflict checks.
type ConflictCheckResult struct {
	HasConflict bool                 `json:"has_conflict"`
	Message     string               `json:"message,omitempty"`
	Conflicts   []ConflictingBooking `json:"conflicts"`
}

// CapacityDetails reports a room capacity shortfall. Kelebihan is the legacy
// field name for the overflow amount.
type CapacityDetails struct {
	RoomID       string `json:"room_id"`
	RoomCode     string `json:"room_code"`
	RoomCapacity int    `json:"room_capacity"`
	Requested    int    `json:"requested"`
	Kelebihan    int    `json:"kelebihan"`
}

// CapacityCheckResult answers a room capacity check.
type CapacityCheckResult struct {
	Valid   bool             `json:"valid"`
	Message string           `json:"message,omitempty"`
	Details *CapacityDetails `json:"details,omitempty"`
}

// WorkloadDetails carries the SKS accounting behind a workload verdict.
type WorkloadDetails struct {
	CurrentSKS   int                       `json:"current_sks"`
	NewCourseSKS int                       `json:"new_course_sks"`
	TotalSKS     int                       `json:"total_sks"`
	MaxSKS       int                       `json:"max_sks"`
	Exceeded     int                       `json:"exceeded,omitempty"`
	Percentage   int                       `json:"percentage,omitempty"`
	Courses      []models.LecturerLoadItem `json:"courses,omitempty"`
}

// WorkloadCheckResult answers a lecturer workload check. Severity is empty
// when the load is comfortably below the warning threshold.
type WorkloadCheckResult struct {
	Valid    bool            `json:"valid"`
	Severity string          `json:"severity,omitempty"`
	Message  string          `json:"message"`
	Details  WorkloadDetails `json:"details"`
}

// AnnotatedIssue ties a validation issue back to the schedule item that
// produced it during a whole-schedule sweep.
type AnnotatedIssue struct {
	ValidationIssue
	ItemID       string           `json:"item_id"`
	CourseName   string           `json:"course_name"`
	LecturerName string           `json:"lecturer_name"`
	Day          models.DayOfWeek `json:"day_of_week"`
	TimeRange    string           `json:"time_range"`
}

// ConflictSummary tallies issues per conflict type.
type ConflictSummary struct {
	TotalItems         int `json:"total_items"`
	TotalErrors        int `json:"total_errors"`
	TotalWarnings      int `json:"total_warnings"`
	DosenConflicts     int `json:"dosen_conflicts"`
	RuanganConflicts   int `json:"ruangan_conflicts"`
	MahasiswaConflicts int `json:"mahasiswa_conflicts"`
	CapacityIssues     int `json:"capacity_issues"`
	WorkloadIssues     int `json:"workload_issues"`
	StructuralIssues   int `json:"structural_issues"`
}

// CompleteScheduleResult aggregates a whole-schedule validation sweep.
type CompleteScheduleResult struct {
	ScheduleID string           `json:"schedule_id"`
	Valid      bool             `json:"valid"`
	Errors     []AnnotatedIssue `json:"errors"`
	Warnings   []AnnotatedIssue `json:"warnings"`
	Summary    ConflictSummary  `json:"summary"`
}

// BatchValidateRequest validates several candidates in one call.
type BatchValidateRequest struct {
	Items []ScheduleItemCandidate `json:"items" validate:"required,min=1,dive"`
}

// BatchItemResult pairs one candidate with its validation outcome.
type BatchItemResult struct {
	Index  int              `json:"index"`
	Result ValidationResult `json:"result"`
}

// BatchValidateResult aggregates batch validation outcomes.
type BatchValidateResult struct {
	Valid   bool              `json:"valid"`
	Results []BatchItemResult `json:"results"`
}

// ConflictLogData is the payload handed to best-effort conflict logging.
type ConflictLogData struct {
	Type              string                  `json:"type"`
	Severity          models.ConflictSeverity `json:"severity"`
	Description       string                  `json:"description"`
	ItemID            string                  `json:"item_id,omitempty"`
	ConflictingItemID string                  `json:"conflicting_item_id,omitempty"`
	Details           map[string]any          `json:"details,omitempty"`
}
