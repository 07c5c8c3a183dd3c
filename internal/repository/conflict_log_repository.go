package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/siakad-dev/siakad-api/internal/models"
)

const conflictLogColumns = `id, type, severity, description, item_id, conflicting_item_id, details, detected_at, resolved_by, resolved_at, resolution_notes`

// ConflictLogRepository persists detected conflicts.
type ConflictLogRepository struct {
	db *sqlx.DB
}

// NewConflictLogRepository creates a new conflict log repository.
func NewConflictLogRepository(db *sqlx.DB) *ConflictLogRepository {
	return &ConflictLogRepository{db: db}
}

// Insert stores a new conflict log entry.
func (r *ConflictLogRepository) Insert(ctx context.Context, entry *models.ConflictLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.DetectedAt.IsZero() {
		entry.DetectedAt = time.Now().UTC()
	}
	const query = `INSERT INTO conflict_logs (id, type, severity, description, item_id, conflicting_item_id, details, detected_at) VALUES (:id, :type, :severity, :description, :item_id, :conflicting_item_id, :details, :detected_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("insert conflict log: %w", err)
	}
	return nil
}

// FindByID loads a conflict log entry by id.
func (r *ConflictLogRepository) FindByID(ctx context.Context, id string) (*models.ConflictLog, error) {
	query := "SELECT " + conflictLogColumns + " FROM conflict_logs WHERE id = $1"
	var entry models.ConflictLog
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns conflict logs with optional filtering and pagination.
func (r *ConflictLogRepository) List(ctx context.Context, filter models.ConflictLogFilter) ([]models.ConflictLog, int, error) {
	base := "FROM conflict_logs WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)+1))
		args = append(args, filter.Type)
	}
	if filter.Severity != "" {
		conditions = append(conditions, fmt.Sprintf("severity = $%d", len(args)+1))
		args = append(args, filter.Severity)
	}
	if filter.Resolved != nil {
		if *filter.Resolved {
			conditions = append(conditions, "resolved_at IS NOT NULL")
		} else {
			conditions = append(conditions, "resolved_at IS NULL")
		}
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY detected_at %s LIMIT %d OFFSET %d", conflictLogColumns, base, order, size, offset)
	var entries []models.ConflictLog
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list conflict logs: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count conflict logs: %w", err)
	}

	return entries, total, nil
}

// MarkResolved records resolution metadata for an open conflict.
func (r *ConflictLogRepository) MarkResolved(ctx context.Context, id, resolvedBy, notes string) error {
	const query = `UPDATE conflict_logs SET resolved_by = $2, resolved_at = $3, resolution_notes = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, resolvedBy, time.Now().UTC(), notes); err != nil {
		return fmt.Errorf("mark conflict resolved: %w", err)
	}
	return nil
}

// CountByType tallies conflict logs grouped by type and severity.
func (r *ConflictLogRepository) CountByType(ctx context.Context) ([]models.ConflictTypeCount, error) {
	const query = `SELECT type, severity, COUNT(*) AS count FROM conflict_logs GROUP BY type, severity ORDER BY type ASC, severity ASC`
	var counts []models.ConflictTypeCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count conflict logs by type: %w", err)
	}
	return counts, nil
}

// CountResolved returns totals of resolved and open conflicts.
func (r *ConflictLogRepository) CountResolved(ctx context.Context) (resolved int, open int, err error) {
	const query = `SELECT COUNT(*) FILTER (WHERE resolved_at IS NOT NULL) AS resolved, COUNT(*) FILTER (WHERE resolved_at IS NULL) AS open FROM conflict_logs`
	row := r.db.QueryRowxContext(ctx, query)
	if err := row.Scan(&resolved, &open); err != nil {
		return 0, 0, fmt.Errorf("count resolved conflicts: %w", err)
	}
	return resolved, open, nil
}
