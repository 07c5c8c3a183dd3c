package dto

import "github.com/siakad-dev/siakad-api/internal/models"

// DosenWorkloadReport summarises a lecturer's teaching load for one academic
// period, scoped to approved/published schedules only.
type DosenWorkloadReport struct {
	LecturerID   string                    `json:"lecturer_id"`
	LecturerName string                    `json:"lecturer_name"`
	PeriodID     string                    `json:"period_id"`
	Year         string                    `json:"year"`
	Semester     models.Semester           `json:"semester"`
	TotalSKS     int                       `json:"total_sks"`
	MaxSKS       int                       `json:"max_sks"`
	CourseCount  int                       `json:"course_count"`
	TotalMinutes int                       `json:"total_minutes"`
	Overloaded   bool                      `json:"overloaded"`
	Courses      []models.LecturerLoadItem `json:"courses"`
}
