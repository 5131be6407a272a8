// Package store archives finished matches in a local sqlite database and
// answers aggregate queries over them.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/gridgames/arena/game/engine"
	"github.com/gridgames/arena/game/service"
	"github.com/gridgames/arena/internal/log"
)

var logger = log.WithComponent("store")

const schemaVersion = 1

// Store wraps the sqlite archive database. It implements service.Archiver.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the archive database at path and applies the
// schema. The DSN enables WAL and a busy timeout so the HTTP handlers and
// the archiver can share the file.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS matches (
			record_id TEXT PRIMARY KEY,
			match_id TEXT NOT NULL,
			config_name TEXT,
			ruleset TEXT NOT NULL,
			rows INTEGER NOT NULL,
			cols INTEGER NOT NULL,
			seats TEXT NOT NULL,
			outcome TEXT NOT NULL,
			winner INTEGER NOT NULL,
			winner_name TEXT,
			scores TEXT NOT NULL,
			move_count INTEGER NOT NULL,
			started_at TIMESTAMP NOT NULL,
			finished_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_matches_match_id ON matches(match_id);
		CREATE INDEX IF NOT EXISTS idx_matches_finished_at ON matches(finished_at);
		CREATE TABLE IF NOT EXISTS moves (
			record_id TEXT NOT NULL,
			move_number INTEGER NOT NULL,
			seat INTEGER NOT NULL,
			symbol TEXT NOT NULL,
			row INTEGER NOT NULL,
			col INTEGER NOT NULL,
			played_at BIGINT NOT NULL,
			PRIMARY KEY (record_id, move_number),
			FOREIGN KEY (record_id) REFERENCES matches(record_id) ON DELETE CASCADE
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	return nil
}

// ArchivedMatch is one finished match as stored in the archive
type ArchivedMatch struct {
	RecordID   string                    `json:"record_id"`
	MatchID    string                    `json:"match_id"`
	ConfigName string                    `json:"config_name"`
	Ruleset    string                    `json:"ruleset"`
	Rows       int                       `json:"rows"`
	Cols       int                       `json:"cols"`
	Seats      []engine.Seat             `json:"seats"`
	Outcome    engine.Outcome            `json:"outcome"`
	Winner     int                       `json:"winner"`
	WinnerName string                    `json:"winner_name,omitempty"`
	Scores     []int                     `json:"scores"`
	MoveCount  int                       `json:"move_count"`
	Moves      []engine.MoveHistoryEntry `json:"moves,omitempty"`
	StartedAt  time.Time                 `json:"started_at"`
	FinishedAt time.Time                 `json:"finished_at"`
}

// LeaderboardEntry aggregates one player's standing across archived matches
type LeaderboardEntry struct {
	Name       string  `json:"name"`
	Matches    int     `json:"matches"`
	Wins       int     `json:"wins"`
	Draws      int     `json:"draws"`
	Losses     int     `json:"losses"`
	WinRate    float64 `json:"win_rate"`
	TotalScore int     `json:"total_score"`
	BestScore  int     `json:"best_score"`
}

// RulesetStat summarizes archived matches for one ruleset
type RulesetStat struct {
	Ruleset  string  `json:"ruleset"`
	Matches  int     `json:"matches"`
	Wins     int     `json:"wins"`
	Draws    int     `json:"draws"`
	AvgMoves float64 `json:"avg_moves"`
}

// ArchiveMatch stores a finished match and its move list in one transaction
func (s *Store) ArchiveMatch(ctx context.Context, record *service.ArchiveRecord) error {
	if record == nil {
		return fmt.Errorf("archive record cannot be nil")
	}

	seatsJSON, err := json.Marshal(record.Seats)
	if err != nil {
		return fmt.Errorf("failed to marshal seats: %w", err)
	}
	scoresJSON, err := json.Marshal(record.Scores)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}

	winnerName := ""
	if record.Winner >= 1 && record.Winner <= len(record.Seats) {
		winnerName = record.Seats[record.Winner-1].Name
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	recordID := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO matches (record_id, match_id, config_name, ruleset, rows, cols, seats,
			outcome, winner, winner_name, scores, move_count, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recordID, record.MatchID, record.ConfigName, record.Ruleset, record.Rows, record.Cols,
		string(seatsJSON), string(record.Outcome), record.Winner, winnerName,
		string(scoresJSON), len(record.Moves), record.StartedAt, record.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}

	for _, move := range record.Moves {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO moves (record_id, move_number, seat, symbol, row, col, played_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			recordID, move.MoveNumber, move.Seat, move.Symbol,
			move.Position.Row, move.Position.Col, move.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to insert move %d: %w", move.MoveNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit archive transaction: %w", err)
	}

	logger.Debug().
		Str("record_id", recordID).
		Str("match_id", record.MatchID).
		Int("moves", len(record.Moves)).
		Msg("match archived")

	return nil
}

// GetMatch returns the most recent archived record for a match ID,
// including its full move list.
func (s *Store) GetMatch(ctx context.Context, matchID string) (*ArchivedMatch, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT record_id, match_id, config_name, ruleset, rows, cols, seats,
			outcome, winner, winner_name, scores, move_count, started_at, finished_at
		FROM matches WHERE match_id = ?
		ORDER BY finished_at DESC LIMIT 1`, matchID)

	match, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no archived match with id '%s'", matchID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load archived match: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT move_number, seat, symbol, row, col, played_at
		FROM moves WHERE record_id = ? ORDER BY move_number`, match.RecordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load archived moves: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var move engine.MoveHistoryEntry
		if err := rows.Scan(&move.MoveNumber, &move.Seat, &move.Symbol,
			&move.Position.Row, &move.Position.Col, &move.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan archived move: %w", err)
		}
		match.Moves = append(match.Moves, move)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate archived moves: %w", err)
	}

	return match, nil
}

// ListRecent returns summaries of the most recently finished matches,
// newest first. Moves are not loaded.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]*ArchivedMatch, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 500 {
		limit = 500
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT record_id, match_id, config_name, ruleset, rows, cols, seats,
			outcome, winner, winner_name, scores, move_count, started_at, finished_at
		FROM matches ORDER BY finished_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*ArchivedMatch, 0, limit)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan archived match: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate archived matches: %w", err)
	}

	return matches, nil
}

// Leaderboard aggregates per-player results across all archived matches,
// ordered by wins, then win rate, then name.
func (s *Store) Leaderboard(ctx context.Context) ([]*LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seats, outcome, winner, scores FROM matches`)
	if err != nil {
		return nil, fmt.Errorf("failed to query archived matches: %w", err)
	}
	defer rows.Close()

	byName := make(map[string]*LeaderboardEntry)
	for rows.Next() {
		var seatsJSON, outcome, scoresJSON string
		var winner int
		if err := rows.Scan(&seatsJSON, &outcome, &winner, &scoresJSON); err != nil {
			return nil, fmt.Errorf("failed to scan archived match: %w", err)
		}

		var seats []engine.Seat
		if err := json.Unmarshal([]byte(seatsJSON), &seats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal seats: %w", err)
		}
		var scores []int
		if err := json.Unmarshal([]byte(scoresJSON), &scores); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
		}

		for i, seat := range seats {
			entry, ok := byName[seat.Name]
			if !ok {
				entry = &LeaderboardEntry{Name: seat.Name}
				byName[seat.Name] = entry
			}

			entry.Matches++
			switch {
			case engine.Outcome(outcome) == engine.OutcomeDraw:
				entry.Draws++
			case winner == i+1:
				entry.Wins++
			default:
				entry.Losses++
			}

			if i < len(scores) {
				entry.TotalScore += scores[i]
				if scores[i] > entry.BestScore {
					entry.BestScore = scores[i]
				}
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate archived matches: %w", err)
	}

	entries := make([]*LeaderboardEntry, 0, len(byName))
	for _, entry := range byName {
		if entry.Matches > 0 {
			entry.WinRate = float64(entry.Wins) / float64(entry.Matches)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		if entries[i].WinRate != entries[j].WinRate {
			return entries[i].WinRate > entries[j].WinRate
		}
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

// RulesetStats summarizes archived matches per ruleset
func (s *Store) RulesetStats(ctx context.Context) ([]*RulesetStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ruleset,
			COUNT(*),
			SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END),
			SUM(CASE WHEN outcome = 'draw' THEN 1 ELSE 0 END),
			AVG(move_count)
		FROM matches GROUP BY ruleset ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ruleset stats: %w", err)
	}
	defer rows.Close()

	var stats []*RulesetStat
	for rows.Next() {
		stat := &RulesetStat{}
		if err := rows.Scan(&stat.Ruleset, &stat.Matches, &stat.Wins, &stat.Draws, &stat.AvgMoves); err != nil {
			return nil, fmt.Errorf("failed to scan ruleset stats: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ruleset stats: %w", err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*ArchivedMatch, error) {
	match := &ArchivedMatch{}
	var seatsJSON, outcome, scoresJSON string
	err := row.Scan(&match.RecordID, &match.MatchID, &match.ConfigName, &match.Ruleset,
		&match.Rows, &match.Cols, &seatsJSON, &outcome, &match.Winner, &match.WinnerName,
		&scoresJSON, &match.MoveCount, &match.StartedAt, &match.FinishedAt)
	if err != nil {
		return nil, err
	}

	match.Outcome = engine.Outcome(outcome)
	if err := json.Unmarshal([]byte(seatsJSON), &match.Seats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seats: %w", err)
	}
	if err := json.Unmarshal([]byte(scoresJSON), &match.Scores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
	}

	return match, nil
}
