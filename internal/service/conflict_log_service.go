package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/siakad-dev/siakad-api/internal/dto"
	"github.com/siakad-dev/siakad-api/internal/models"
	appErrors "github.com/siakad-dev/siakad-api/pkg/errors"
)

type conflictLogStore interface {
	FindByID(ctx context.Context, id string) (*models.ConflictLog, error)
	List(ctx context.Context, filter models.ConflictLogFilter) ([]models.ConflictLog, int, error)
	MarkResolved(ctx context.Context, id, resolvedBy, notes string) error
	CountByType(ctx context.Context) ([]models.ConflictTypeCount, error)
	CountResolved(ctx context.Context) (resolved int, open int, err error)
}

// ConflictLogService exposes the audit trail of detected conflicts.
type ConflictLogService struct {
	logs      conflictLogStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewConflictLogService wires conflict log dependencies.
func NewConflictLogService(logs conflictLogStore, validate *validator.Validate, logger *zap.Logger) *ConflictLogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictLogService{logs: logs, validator: validate, logger: logger}
}

// GetConflictLog loads one conflict log entry.
func (s *ConflictLogService) GetConflictLog(ctx context.Context, id string) (*models.ConflictLog, error) {
	entry, err := s.logs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "conflict log not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load conflict log")
	}
	return entry, nil
}

// ListConflictLogs returns filtered, paginated conflict logs with the total
// row count for pagination metadata.
func (s *ConflictLogService) ListConflictLogs(ctx context.Context, filter models.ConflictLogFilter) ([]models.ConflictLog, int, error) {
	entries, total, err := s.logs.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list conflict logs")
	}
	return entries, total, nil
}

// ResolveConflict marks an open conflict as resolved by the given user.
// Resolving an already-resolved conflict is rejected.
func (s *ConflictLogService) ResolveConflict(ctx context.Context, id, resolvedBy string, req dto.ResolveConflictRequest) (*models.ConflictLog, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "resolution notes are required")
	}

	entry, err := s.GetConflictLog(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.Resolved() {
		return nil, appErrors.Clone(appErrors.ErrConflict, "conflict is already resolved")
	}

	if err := s.logs.MarkResolved(ctx, id, resolvedBy, req.Notes); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve conflict")
	}

	s.logger.Info("conflict resolved",
		zap.String("conflict_id", id),
		zap.String("resolved_by", resolvedBy))

	return s.GetConflictLog(ctx, id)
}

// GetStats aggregates the conflict log for the admin dashboard.
func (s *ConflictLogService) GetStats(ctx context.Context) (*models.ConflictLogStats, error) {
	byType, err := s.logs.CountByType(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count conflicts by type")
	}
	resolved, open, err := s.logs.CountResolved(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count resolved conflicts")
	}
	return &models.ConflictLogStats{
		Total:    resolved + open,
		Open:     open,
		Resolved: resolved,
		ByType:   byType,
	}, nil
}
