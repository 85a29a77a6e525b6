package model

import (
	"time"

	"github.com/google/uuid"
)

// Event is a change notification emitted after a committed action.
type Event struct {
	Verb       string
	ObjectType string
	ObjectID   string
	SessionID  uuid.UUID
	Identity   IdentityKey
	Metadata   map[string]any
	OccurredAt time.Time
}
