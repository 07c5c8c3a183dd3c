package models

import "time"

// Lecturer represents a teaching staff record.
type Lecturer struct {
	ID        string    `db:"id" json:"id"`
	NIDN      *string   `db:"nidn" json:"nidn,omitempty"`
	FullName  string    `db:"full_name" json:"full_name"`
	Email     string    `db:"email" json:"email"`
	MaxSKS    *int      `db:"max_sks" json:"max_sks,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
