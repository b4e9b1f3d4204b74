package service

import (
	"github.com/aadhidev/stockify/internal/models"
	"github.com/google/uuid"
)

// Actor is the authenticated caller of an operation, resolved by the
// auth middleware before any service body runs.
type Actor struct {
	ID   uuid.UUID
	Role models.Role
}
