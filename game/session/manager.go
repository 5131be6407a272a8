package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gridgames/arena/game/engine"
	"github.com/gridgames/arena/game/service"
	"github.com/gridgames/arena/internal/log"
	"github.com/gridgames/arena/internal/metrics"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrMatchExists    = errors.New("match already exists")
	ErrInvalidMatchID = errors.New("invalid match ID")
)

var logger = log.WithComponent("session")

// Manager handles match session lifecycle
type Manager struct {
	matches     map[string]*service.Session
	persistence Persistence
	mu          sync.RWMutex
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{
		matches: make(map[string]*service.Session),
	}
}

// NewManagerWithPersistence creates a new session manager with persistence
func NewManagerWithPersistence(persistence Persistence) *Manager {
	return &Manager{
		matches:     make(map[string]*service.Session),
		persistence: persistence,
	}
}

// Create creates a new match session with the given ID and configuration
func (m *Manager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	if id == "" {
		id = m.generateMatchID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Match IDs are case-insensitive
	if m.matchExists(id) {
		return nil, ErrMatchExists
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.matches[strings.ToLower(id)] = session
	metrics.ActiveMatches.Set(float64(len(m.matches)))

	// Auto-save if persistence is enabled
	if m.persistence != nil {
		if err := m.persistence.Save(session); err != nil {
			logger.Warn().Err(err).Str("match_id", id).Msg("failed to persist match")
		}
	}

	return session, nil
}

// Get retrieves a match by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	session, exists := m.matches[strings.ToLower(id)]
	m.mu.RUnlock()

	if exists {
		return session, nil
	}

	// Try loading from persistence if not in memory
	if m.persistence != nil && m.persistence.Exists(id) {
		session, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted match: %w", err)
		}

		m.mu.Lock()
		m.matches[strings.ToLower(id)] = session
		metrics.ActiveMatches.Set(float64(len(m.matches)))
		m.mu.Unlock()

		return session, nil
	}

	return nil, ErrMatchNotFound
}

// GetOrCreate gets an existing match or creates a new one
func (m *Manager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	session, err := m.Get(id)
	if err == nil {
		return session, nil
	}

	if errors.Is(err, ErrMatchNotFound) {
		return m.Create(id, config)
	}

	return nil, err
}

// List returns all active matches
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.matches))
	for _, session := range m.matches {
		result = append(result, session)
	}

	return result
}

// Delete removes a match from memory and persistence
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	inMemory := false

	if _, exists := m.matches[lowerID]; exists {
		delete(m.matches, lowerID)
		metrics.ActiveMatches.Set(float64(len(m.matches)))
		inMemory = true
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted match: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrMatchNotFound
	}

	return nil
}

// DeleteFromMemory removes a match from memory only (not from persistence)
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.matches[lowerID]; exists {
		delete(m.matches, lowerID)
		metrics.ActiveMatches.Set(float64(len(m.matches)))
		return nil
	}

	return ErrMatchNotFound
}

// UpdateLastAccessed updates the last accessed time for a match
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.matches[strings.ToLower(id)]
	if !exists {
		return ErrMatchNotFound
	}

	session.LastAccessedAt = time.Now()

	if m.persistence != nil {
		if err := m.persistence.Save(session); err != nil {
			logger.Warn().Err(err).Str("match_id", id).Msg("failed to persist match after access update")
		}
	}

	return nil
}

// Save saves a specific match to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	session, exists := m.matches[strings.ToLower(id)]
	m.mu.RUnlock()
	if !exists {
		return ErrMatchNotFound
	}

	return m.persistence.Save(session)
}

// CleanupExpired removes matches that have not been accessed within maxAge.
// It returns the number of matches removed.
func (m *Manager) CleanupExpired(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, session := range m.matches {
		if session.LastAccessedAt.Before(cutoff) {
			delete(m.matches, id)
			removed++
		}
	}
	if removed > 0 {
		metrics.ActiveMatches.Set(float64(len(m.matches)))
	}

	return removed
}

// Count returns the number of active matches
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matches)
}

// generateMatchID generates a random 4-character match ID
func (m *Manager) generateMatchID() string {
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// matchExists checks if a match exists (case-insensitive); callers hold the lock
func (m *Manager) matchExists(id string) bool {
	_, exists := m.matches[strings.ToLower(id)]
	return exists
}

// LoadPersistedMatches loads all persisted matches into memory
func (m *Manager) LoadPersistedMatches() error {
	if m.persistence == nil {
		return nil
	}

	matchIDs, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted matches: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, id := range matchIDs {
		if _, exists := m.matches[strings.ToLower(id)]; exists {
			continue
		}

		session, err := m.persistence.Load(id)
		if err != nil {
			// Corrupt or stale file; keep serving the rest
			logger.Warn().Err(err).Str("match_id", id).Msg("failed to load persisted match")
			continue
		}

		m.matches[strings.ToLower(id)] = session
		loaded++
	}

	if loaded > 0 {
		metrics.ActiveMatches.Set(float64(len(m.matches)))
		logger.Info().Int("count", loaded).Msg("loaded persisted matches from storage")
	}

	return nil
}

// SaveAll saves all in-memory matches to persistence
func (m *Manager) SaveAll() error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	sessions := make([]*service.Session, 0, len(m.matches))
	for _, session := range m.matches {
		sessions = append(sessions, session)
	}
	m.mu.RUnlock()

	errorCount := 0
	for _, session := range sessions {
		if err := m.persistence.Save(session); err != nil {
			logger.Warn().Err(err).Str("match_id", session.ID).Msg("failed to save match")
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("failed to save %d matches", errorCount)
	}

	return nil
}
