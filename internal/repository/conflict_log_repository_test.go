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

func newConflictLogRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestConflictLogRepositoryInsertAssignsID(t *testing.T) {
	db, mock, cleanup := newConflictLogRepoMock(t)
	defer cleanup()

	repo := NewConflictLogRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO conflict_logs")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.ConflictLog{
		Type:        models.ConflictTypeDosen,
		Severity:    models.ConflictSeverityError,
		Description: "lecturer double booked",
	}
	require.NoError(t, repo.Insert(context.Background(), entry))
	require.NotEmpty(t, entry.ID)
	require.False(t, entry.DetectedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConflictLogRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newConflictLogRepoMock(t)
	defer cleanup()

	repo := NewConflictLogRepository(db)
	rows := sqlmock.NewRows([]string{"id", "type", "severity", "description", "item_id", "conflicting_item_id", "details", "detected_at", "resolved_by", "resolved_at", "resolution_notes"}).
		AddRow("log-1", "DOSEN_CONFLICT", "ERROR", "double booked", nil, nil, nil, time.Now(), nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("type = $1")).
		WithArgs("DOSEN_CONFLICT", "ERROR").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("DOSEN_CONFLICT", "ERROR").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	resolved := false
	entries, total, err := repo.List(context.Background(), models.ConflictLogFilter{
		Type:     models.ConflictTypeDosen,
		Severity: models.ConflictSeverityError,
		Resolved: &resolved,
		Page:     1,
		PageSize: 20,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 1, total)
	require.Equal(t, "log-1", entries[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConflictLogRepositoryMarkResolved(t *testing.T) {
	db, mock, cleanup := newConflictLogRepoMock(t)
	defer cleanup()

	repo := NewConflictLogRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE conflict_logs SET resolved_by = $2")).
		WithArgs("log-1", "user-1", sqlmock.AnyArg(), "fixed by moving the class").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkResolved(context.Background(), "log-1", "user-1", "fixed by moving the class"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConflictLogRepositoryCountResolved(t *testing.T) {
	db, mock, cleanup := newConflictLogRepoMock(t)
	defer cleanup()

	repo := NewConflictLogRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE resolved_at IS NOT NULL)")).
		WillReturnRows(sqlmock.NewRows([]string{"resolved", "open"}).AddRow(3, 7))

	resolved, open, err := repo.CountResolved(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, resolved)
	require.Equal(t, 7, open)
	require.NoError(t, mock.ExpectationsWereMet())
}
