package dto

// ResolveConflictRequest marks a logged conflict as resolved.
type ResolveConflictRequest struct {
	Notes string `json:"notes" validate:"required,min=3"`
}
