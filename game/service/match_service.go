package service

import (
	"context"
	"time"

	"github.com/gridgames/arena/game/engine"
)

// MatchService defines all match-related operations
type MatchService interface {
	// Match management
	CreateMatch(ctx context.Context, configName string) (*MatchInfo, error)
	GetMatch(ctx context.Context, matchID string) (*MatchInfo, error)
	ListMatches(ctx context.Context) ([]*MatchInfo, error)
	DeleteMatch(ctx context.Context, matchID string) error

	// Game operations
	Place(ctx context.Context, matchID, symbol string, pos engine.Position, reset bool) (*PlaceResult, error)
	Replay(ctx context.Context, matchID string, moves []ReplayMove, reset bool) (*ReplayResult, error)
	Reset(ctx context.Context, matchID string) (*engine.MatchState, error)

	// Match state
	GetMatchState(ctx context.Context, matchID string) (*engine.MatchState, error)
	GetMoveHistory(ctx context.Context, matchID string, opts HistoryOptions) (*HistoryResponse, error)
	Scoreboard(ctx context.Context, matchID string) (*ScoreboardResult, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines match session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Archiver records finished matches for later analysis. Implementations
// must tolerate repeated records for the same match.
type Archiver interface {
	ArchiveMatch(ctx context.Context, record *ArchiveRecord) error
}

// Notifier pushes state snapshots to live spectators after every accepted
// mutation. Implementations must not block the caller.
type Notifier interface {
	BroadcastToMatch(matchID string, state *engine.MatchState)
}

// Session represents an active match session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
