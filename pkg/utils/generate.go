package utils

import (
	"github.com/google/uuid"
)

// ==================== SESSION TOKEN ====================

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ParseSessionToken rejects anything that is not a canonical UUID so
// malformed cookies never reach the database.
func ParseSessionToken(raw string) (uuid.UUID, bool) {
	token, err := uuid.Parse(raw)
	if err != nil || token == uuid.Nil {
		return uuid.Nil, false
	}
	return token, true
}
