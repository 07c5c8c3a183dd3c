package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ConflictSeverity grades a logged conflict.
type ConflictSeverity string

const (
	ConflictSeverityError   ConflictSeverity = "ERROR"
	ConflictSeverityWarning ConflictSeverity = "WARNING"
)

// Conflict type codes. The codes match the legacy API contract.
const (
	ConflictTypeDosen     = "DOSEN_CONFLICT"
	ConflictTypeRuangan   = "RUANGAN_CONFLICT"
	ConflictTypeMahasiswa = "MAHASISWA_CONFLICT"
	ConflictTypeKapasitas = "KAPASITAS_EXCEEDED"
	ConflictTypeOverload  = "DOSEN_OVERLOAD"
)

// ConflictLog is a persisted record of a detected conflict. Rows are only
// ever mutated to mark resolution.
type ConflictLog struct {
	ID                string           `db:"id" json:"id"`
	Type              string           `db:"type" json:"type"`
	Severity          ConflictSeverity `db:"severity" json:"severity"`
	Description       string           `db:"description" json:"description"`
	ItemID            *string          `db:"item_id" json:"item_id,omitempty"`
	ConflictingItemID *string          `db:"conflicting_item_id" json:"conflicting_item_id,omitempty"`
	Details           types.JSONText   `db:"details" json:"details,omitempty"`
	DetectedAt        time.Time        `db:"detected_at" json:"detected_at"`
	ResolvedBy        *string          `db:"resolved_by" json:"resolved_by,omitempty"`
	ResolvedAt        *time.Time       `db:"resolved_at" json:"resolved_at,omitempty"`
	ResolutionNotes   *string          `db:"resolution_notes" json:"resolution_notes,omitempty"`
}

// Resolved reports whether the conflict has been marked resolved.
func (c *ConflictLog) Resolved() bool {
	return c.ResolvedAt != nil
}

// ConflictLogFilter describes query params for listing conflict logs.
type ConflictLogFilter struct {
	Type      string
	Severity  ConflictSeverity
	Resolved  *bool
	Page      int
	PageSize  int
	SortOrder string
}

// ConflictTypeCount tallies logged conflicts for one type/severity pair.
type ConflictTypeCount struct {
	Type     string           `db:"type" json:"type"`
	Severity ConflictSeverity `db:"severity" json:"severity"`
	Count    int              `db:"count" json:"count"`
}

// ConflictLogStats aggregates the conflict log for dashboards.
type ConflictLogStats struct {
	Total    int                 `json:"total"`
	Open     int                 `json:"open"`
	Resolved int                 `json:"resolved"`
	ByType   []ConflictTypeCount `json:"by_type"`
}
