package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/siakad-dev/siakad-api/internal/models"
)

func TestEnrollmentRepositoryListActiveBySchedule(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewEnrollmentRepository(sqlx.NewDb(db, "sqlmock"))
	rows := sqlmock.NewRows([]string{"id", "student_id", "schedule_id", "status", "joined_at", "left_at"}).
		AddRow("enr-1", "stud-1", "sched-1", "ACTIVE", time.Now(), nil).
		AddRow("enr-2", "stud-2", "sched-1", "ACTIVE", time.Now(), nil)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE schedule_id = $1 AND status = $2")).
		WithArgs("sched-1", "ACTIVE").
		WillReturnRows(rows)

	enrollments, err := repo.ListActiveBySchedule(context.Background(), "sched-1")
	require.NoError(t, err)
	require.Len(t, enrollments, 2)
	require.Equal(t, models.EnrollmentStatusActive, enrollments[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
