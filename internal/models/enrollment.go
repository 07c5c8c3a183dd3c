package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusActive   EnrollmentStatus = "ACTIVE"
	EnrollmentStatusInactive EnrollmentStatus = "INACTIVE"
)

// Enrollment captures a student's registration to a program schedule.
type Enrollment struct {
	ID         string           `db:"id" json:"id"`
	StudentID  string           `db:"student_id" json:"student_id"`
	ScheduleID string           `db:"schedule_id" json:"schedule_id"`
	Status     EnrollmentStatus `db:"status" json:"status"`
	JoinedAt   time.Time        `db:"joined_at" json:"joined_at"`
	LeftAt     *time.Time       `db:"left_at" json:"left_at,omitempty"`
}
