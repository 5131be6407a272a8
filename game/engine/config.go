package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate grid dimensions
	if config.Rows < MinGridSize || config.Rows > MaxGridSize {
		return fmt.Errorf("config validation: rows must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.Rows)
	}
	if config.Cols < MinGridSize || config.Cols > MaxGridSize {
		return fmt.Errorf("config validation: cols must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.Cols)
	}

	// Validate seats
	if len(config.Seats) < MinSeats || len(config.Seats) > MaxSeats {
		return fmt.Errorf("config validation: seats must have between %d and %d entries, got %d",
			MinSeats, MaxSeats, len(config.Seats))
	}
	symbols := make(map[string]int)
	for i, seat := range config.Seats {
		if seat.Name == "" {
			return fmt.Errorf("config validation: seat %d needs a name", i+1)
		}
		if utf8.RuneCountInString(seat.Symbol) != 1 {
			return fmt.Errorf("config validation: seat %d symbol must be exactly one character, got '%s'", i+1, seat.Symbol)
		}
		if seat.Symbol == " " {
			return fmt.Errorf("config validation: seat %d symbol cannot be whitespace, it marks empty cells", i+1)
		}
		if prev, taken := symbols[seat.Symbol]; taken {
			return fmt.Errorf("config validation: seats %d and %d share the symbol '%s'", prev, i+1, seat.Symbol)
		}
		symbols[seat.Symbol] = i + 1
	}

	// Validate ruleset and its specific fields
	rules, err := GetRules(config.Ruleset)
	if err != nil {
		return fmt.Errorf("config validation: %v", err)
	}
	if err := rules.ValidateConfig(config); err != nil {
		return err
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Victory == "" {
		return fmt.Errorf("config validation: messages.victory is required")
	}
	if config.Messages.Draw == "" {
		return fmt.Errorf("config validation: messages.draw is required")
	}

	// Validate format strings
	if !strings.Contains(config.Messages.Victory, "%s") || !strings.Contains(config.Messages.Victory, "%d") {
		return fmt.Errorf("config validation: messages.victory must contain %%s for the winner and %%d for the score")
	}
	if !strings.Contains(config.Messages.Draw, "%d") {
		return fmt.Errorf("config validation: messages.draw must contain %%d for the score")
	}
	if config.Messages.TurnPrompt != "" && !strings.Contains(config.Messages.TurnPrompt, "%s") {
		return fmt.Errorf("config validation: messages.turn_prompt must contain %%s for the player name")
	}
	if config.Messages.NotYourTurn != "" && !strings.Contains(config.Messages.NotYourTurn, "%s") {
		return fmt.Errorf("config validation: messages.not_your_turn must contain %%s for the player name")
	}

	return nil
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		// If filename starts with "configs/", replace with CONFIG_DIR
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Validate the loaded configuration
	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a game configuration by name from the configs directory
func LoadConfigByName(configName string) (*GameConfig, error) {
	// Add .json extension if not present
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	// Load and parse the config
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %v", configName, err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %v", configName, err)
	}

	// Validate the config
	if err := ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %v", configName, err)
	}

	return &config, nil
}

// DefaultConfig returns the built-in configuration: a 5x5 connected-component
// duel between a human seat and an agent seat
func DefaultConfig() *GameConfig {
	config := &GameConfig{
		Name:        "classic",
		Description: "Claim cells on a 5x5 grid; the largest connected component wins.",
		Rows:        5,
		Cols:        5,
		Ruleset:     "connected",
		Seats: []Seat{
			{Name: "human", Symbol: "*"},
			{Name: "agent", Symbol: "o"},
		},
	}
	config.Messages.Welcome = "Starting game."
	config.Messages.TurnPrompt = "Player %s's turn."
	config.Messages.Victory = "Player %s wins with a largest component of %d tiles!"
	config.Messages.Draw = "Game ended in a draw at %d tiles apiece."
	config.Messages.MatchOver = "The match is already over."
	config.Messages.NotYourTurn = "It is not player %s's turn."
	return config
}

// InitMatchStateFromConfig creates a new match state using the provided configuration
func InitMatchStateFromConfig(config *GameConfig) *MatchState {
	if config == nil {
		// Use default config if not provided
		config = DefaultConfig()
	}

	seats := make([]Seat, len(config.Seats))
	copy(seats, config.Seats)

	return &MatchState{
		Board:             NewBoard(config.Rows, config.Cols),
		Seats:             seats,
		Turn:              1,
		Status:            StatusInProgress,
		Outcome:           OutcomeNone,
		Winner:            0,
		Scores:            make([]int, len(seats)),
		Message:           config.Messages.Welcome,
		ConfigName:        config.Name,
		Ruleset:           config.Ruleset,
		WinLength:         config.WinLength,
		MoveHistory:       []MoveHistoryEntry{},
		TotalMoves:        0,
		CurrentMoves:      []MoveHistoryEntry{},
		CurrentMovesCount: 0,
	}
}
