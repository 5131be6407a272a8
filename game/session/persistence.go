package session

import (
	"time"

	"github.com/gridgames/arena/game/engine"
	"github.com/gridgames/arena/game/service"
)

// Persistence defines the interface for persisting match sessions
type Persistence interface {
	// Save persists a match session to storage
	Save(session *service.Session) error

	// Load retrieves a match session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a match session from storage
	Delete(id string) error

	// ListAll returns all persisted match IDs
	ListAll() ([]string, error)

	// Exists checks if a match exists in storage
	Exists(id string) bool
}

// PersistedMatchData is the JSON structure written for each live match
type PersistedMatchData struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	MatchState     *engine.MatchState `json:"match_state"`
}
