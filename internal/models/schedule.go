package models

import "time"

// DayOfWeek enumerates the six-day teaching week.
type DayOfWeek string

const (
	DayMonday    DayOfWeek = "MONDAY"
	DayTuesday   DayOfWeek = "TUESDAY"
	DayWednesday DayOfWeek = "WEDNESDAY"
	DayThursday  DayOfWeek = "THURSDAY"
	DayFriday    DayOfWeek = "FRIDAY"
	DaySaturday  DayOfWeek = "SATURDAY"
)

// TeachingDays lists the valid scheduling days in week order.
var TeachingDays = []DayOfWeek{
	DayMonday,
	DayTuesday,
	DayWednesday,
	DayThursday,
	DayFriday,
	DaySaturday,
}

// ValidDay reports whether the day belongs to the teaching week.
func ValidDay(day DayOfWeek) bool {
	for _, d := range TeachingDays {
		if d == day {
			return true
		}
	}
	return false
}

// ScheduleStatus is the lifecycle state of a program schedule.
type ScheduleStatus string

const (
	ScheduleStatusDraft       ScheduleStatus = "DRAFT"
	ScheduleStatusSubmitted   ScheduleStatus = "SUBMITTED"
	ScheduleStatusUnderReview ScheduleStatus = "UNDER_REVIEW"
	ScheduleStatusApproved    ScheduleStatus = "APPROVED"
	ScheduleStatusPublished   ScheduleStatus = "PUBLISHED"
	ScheduleStatusRejected    ScheduleStatus = "REJECTED"
	ScheduleStatusArchived    ScheduleStatus = "ARCHIVED"
)

// ActiveScheduleStatuses is the commit-blocking scope: items in schedules
// with these statuses participate in conflict checks.
var ActiveScheduleStatuses = []ScheduleStatus{
	ScheduleStatusDraft,
	ScheduleStatusSubmitted,
	ScheduleStatusUnderReview,
	ScheduleStatusApproved,
	ScheduleStatusPublished,
}

// ReportingScheduleStatuses is the stricter scope used by workload reporting.
var ReportingScheduleStatuses = []ScheduleStatus{
	ScheduleStatusApproved,
	ScheduleStatusPublished,
}

// ConflictReportStatuses is the scope swept by period-wide conflict reports.
var ConflictReportStatuses = []ScheduleStatus{
	ScheduleStatusSubmitted,
	ScheduleStatusUnderReview,
	ScheduleStatusApproved,
	ScheduleStatusPublished,
}

// StatusStrings converts a status set into plain strings for SQL array args.
func StatusStrings(statuses []ScheduleStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// ScheduleItem is a single timetable booking inside a program schedule.
// Start and end times are wall-clock "HH:MM" strings; zero-padding makes
// lexicographic order equal temporal order.
type ScheduleItem struct {
	ID         string    `db:"id" json:"id"`
	ScheduleID string    `db:"schedule_id" json:"schedule_id"`
	LecturerID string    `db:"lecturer_id" json:"lecturer_id"`
	RoomID     string    `db:"room_id" json:"room_id"`
	CourseID   string    `db:"course_id" json:"course_id"`
	Day        DayOfWeek `db:"day_of_week" json:"day_of_week"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
	Capacity   *int      `db:"capacity" json:"capacity,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleItemDetail enriches ScheduleItem with joined names for diagnostics.
type ScheduleItemDetail struct {
	ScheduleItem
	CourseCode   string         `db:"course_code" json:"course_code"`
	CourseName   string         `db:"course_name" json:"course_name"`
	CourseSKS    int            `db:"course_sks" json:"course_sks"`
	LecturerName string         `db:"lecturer_name" json:"lecturer_name"`
	RoomCode     string         `db:"room_code" json:"room_code"`
	ProgramName  string         `db:"program_name" json:"program_name"`
	ClassSection string         `db:"class_section" json:"class_section"`
	Status       ScheduleStatus `db:"status" json:"status"`
}

// ProgramSchedule is one class-section's timetable within a program and
// academic period.
type ProgramSchedule struct {
	ID           string         `db:"id" json:"id"`
	ProgramID    string         `db:"program_id" json:"program_id"`
	ProgramName  string         `db:"program_name" json:"program_name"`
	ClassSection string         `db:"class_section" json:"class_section"`
	PeriodID     string         `db:"period_id" json:"period_id"`
	Status       ScheduleStatus `db:"status" json:"status"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// LecturerLoadItem is one booking contributing to a lecturer's teaching load
// within an academic period.
type LecturerLoadItem struct {
	ItemID       string    `db:"item_id" json:"item_id"`
	CourseID     string    `db:"course_id" json:"course_id"`
	CourseCode   string    `db:"course_code" json:"course_code"`
	CourseName   string    `db:"course_name" json:"course_name"`
	SKS          int       `db:"sks" json:"sks"`
	Day          DayOfWeek `db:"day_of_week" json:"day_of_week"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
	ClassSection string    `db:"class_section" json:"class_section"`
}
