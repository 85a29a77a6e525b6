package model

import "github.com/google/uuid"

// TokenManager issues and validates session tokens.
type TokenManager interface {
	GenerateSessionToken(sessionID uuid.UUID) (string, error)
	ParseSessionToken(token string) (uuid.UUID, error)
}
