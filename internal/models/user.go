package models

import "github.com/golang-jwt/jwt/v5"

// UserRole enumerates the roles recognised by the API.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleKaprodi UserRole = "KAPRODI"
	RoleDosen   UserRole = "DOSEN"
)

// JWTClaims are the custom claims embedded in access tokens issued by the
// account service. This API only verifies them.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
