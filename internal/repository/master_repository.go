package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/siakad-dev/siakad-api/internal/models"
)

// LecturerRepository provides read access to lecturer master data.
type LecturerRepository struct {
	db *sqlx.DB
}

// NewLecturerRepository creates a new lecturer repository.
func NewLecturerRepository(db *sqlx.DB) *LecturerRepository {
	return &LecturerRepository{db: db}
}

// FindByID loads a lecturer by id.
func (r *LecturerRepository) FindByID(ctx context.Context, id string) (*models.Lecturer, error) {
	const query = `SELECT id, nidn, full_name, email, max_sks, active, created_at, updated_at FROM lecturers WHERE id = $1`
	var lecturer models.Lecturer
	if err := r.db.GetContext(ctx, &lecturer, query, id); err != nil {
		return nil, err
	}
	return &lecturer, nil
}

// RoomRepository provides read access to room master data.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// FindByID loads a room by id.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	const query = `SELECT id, code, name, capacity, active, created_at, updated_at FROM rooms WHERE id = $1`
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		return nil, err
	}
	return &room, nil
}

// ListActiveWithCapacity returns active rooms seating at least minCapacity.
func (r *RoomRepository) ListActiveWithCapacity(ctx context.Context, minCapacity int) ([]models.Room, error) {
	const query = `SELECT id, code, name, capacity, active, created_at, updated_at FROM rooms WHERE active = TRUE AND capacity >= $1 ORDER BY code ASC`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query, minCapacity); err != nil {
		return nil, fmt.Errorf("list active rooms: %w", err)
	}
	return rooms, nil
}

// CourseRepository provides read access to course master data.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByID loads a course by id.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, code, name, sks, created_at, updated_at FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// PeriodRepository provides read access to academic periods.
type PeriodRepository struct {
	db *sqlx.DB
}

// NewPeriodRepository creates a new period repository.
func NewPeriodRepository(db *sqlx.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// FindByID loads an academic period by id.
func (r *PeriodRepository) FindByID(ctx context.Context, id string) (*models.AcademicPeriod, error) {
	const query = `SELECT id, year, semester, active, created_at, updated_at FROM academic_periods WHERE id = $1`
	var period models.AcademicPeriod
	if err := r.db.GetContext(ctx, &period, query, id); err != nil {
		return nil, err
	}
	return &period, nil
}

// FindByYearSemester loads the period matching an academic year and semester.
func (r *PeriodRepository) FindByYearSemester(ctx context.Context, year string, semester models.Semester) (*models.AcademicPeriod, error) {
	const query = `SELECT id, year, semester, active, created_at, updated_at FROM academic_periods WHERE year = $1 AND semester = $2`
	var period models.AcademicPeriod
	if err := r.db.GetContext(ctx, &period, query, year, semester); err != nil {
		return nil, fmt.Errorf("find period %s %s: %w", year, semester, err)
	}
	return &period, nil
}
