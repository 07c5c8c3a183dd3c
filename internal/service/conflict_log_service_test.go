package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siakad-dev/siakad-api/internal/dto"
	"github.com/siakad-dev/siakad-api/internal/models"
	appErrors "github.com/siakad-dev/siakad-api/pkg/errors"
)

func TestResolveConflict(t *testing.T) {
	store := newConflictStoreStub(models.ConflictLog{ID: "log-1", Type: models.ConflictTypeDosen, Severity: models.ConflictSeverityError})
	service := NewConflictLogService(store, nil, nil)

	entry, err := service.ResolveConflict(context.Background(), "log-1", "user-1", dto.ResolveConflictRequest{Notes: "moved the class to Friday"})
	require.NoError(t, err)

	assert.True(t, entry.Resolved())
	require.NotNil(t, entry.ResolvedBy)
	assert.Equal(t, "user-1", *entry.ResolvedBy)
}

func TestResolveConflictAlreadyResolved(t *testing.T) {
	resolvedAt := time.Now().UTC()
	store := newConflictStoreStub(models.ConflictLog{ID: "log-1", ResolvedAt: &resolvedAt})
	service := NewConflictLogService(store, nil, nil)

	_, err := service.ResolveConflict(context.Background(), "log-1", "user-1", dto.ResolveConflictRequest{Notes: "again"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestResolveConflictRequiresNotes(t *testing.T) {
	store := newConflictStoreStub(models.ConflictLog{ID: "log-1"})
	service := NewConflictLogService(store, nil, nil)

	_, err := service.ResolveConflict(context.Background(), "log-1", "user-1", dto.ResolveConflictRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGetConflictLogNotFound(t *testing.T) {
	service := NewConflictLogService(newConflictStoreStub(), nil, nil)

	_, err := service.GetConflictLog(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestGetStats(t *testing.T) {
	resolvedAt := time.Now().UTC()
	store := newConflictStoreStub(
		models.ConflictLog{ID: "log-1", Type: models.ConflictTypeDosen, Severity: models.ConflictSeverityError},
		models.ConflictLog{ID: "log-2", Type: models.ConflictTypeRuangan, Severity: models.ConflictSeverityError, ResolvedAt: &resolvedAt},
	)
	service := NewConflictLogService(store, nil, nil)

	stats, err := service.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Open)
	assert.Equal(t, 1, stats.Resolved)
	assert.Len(t, stats.ByType, 2)
}

type conflictStoreStub struct {
	entries map[string]*models.ConflictLog
}

func newConflictStoreStub(entries ...models.ConflictLog) *conflictStoreStub {
	store := &conflictStoreStub{entries: make(map[string]*models.ConflictLog)}
	for i := range entries {
		entry := entries[i]
		store.entries[entry.ID] = &entry
	}
	return store
}

func (s *conflictStoreStub) FindByID(ctx context.Context, id string) (*models.ConflictLog, error) {
	if entry, ok := s.entries[id]; ok {
		copied := *entry
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (s *conflictStoreStub) List(ctx context.Context, filter models.ConflictLogFilter) ([]models.ConflictLog, int, error) {
	var out []models.ConflictLog
	for _, entry := range s.entries {
		out = append(out, *entry)
	}
	return out, len(out), nil
}

func (s *conflictStoreStub) MarkResolved(ctx context.Context, id, resolvedBy, notes string) error {
	entry, ok := s.entries[id]
	if !ok {
		return sql.ErrNoRows
	}
	now := time.Now().UTC()
	entry.ResolvedBy = &resolvedBy
	entry.ResolvedAt = &now
	entry.ResolutionNotes = &notes
	return nil
}

func (s *conflictStoreStub) CountByType(ctx context.Context) ([]models.ConflictTypeCount, error) {
	tally := make(map[string]*models.ConflictTypeCount)
	for _, entry := range s.entries {
		key := entry.Type + "|" + string(entry.Severity)
		if _, ok := tally[key]; !ok {
			tally[key] = &models.ConflictTypeCount{Type: entry.Type, Severity: entry.Severity}
		}
		tally[key].Count++
	}
	var out []models.ConflictTypeCount
	for _, count := range tally {
		out = append(out, *count)
	}
	return out, nil
}

func (s *conflictStoreStub) CountResolved(ctx context.Context) (int, int, error) {
	resolved, open := 0, 0
	for _, entry := range s.entries {
		if entry.ResolvedAt != nil {
			resolved++
		} else {
			open++
		}
	}
	return resolved, open, nil
}
