package models

import "time"

// Semester identifies the half of an academic year.
type Semester string

const (
	SemesterGanjil Semester = "GANJIL"
	SemesterGenap  Semester = "GENAP"
)

// AcademicPeriod is the (academic-year, semester) pair scoping workload and
// conflict checks.
type AcademicPeriod struct {
	ID        string    `db:"id" json:"id"`
	Year      string    `db:"year" json:"year"`
	Semester  Semester  `db:"semester" json:"semester"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
