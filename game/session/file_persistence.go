package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridgames/arena/game/engine"
	"github.com/gridgames/arena/game/service"
)

// FilePersistence implements Persistence using one JSON file per live match
type FilePersistence struct {
	matchesDir    string
	configManager service.ConfigManager
}

// NewFilePersistence creates a new file-based match persistence layer
func NewFilePersistence(matchesDir string, configManager service.ConfigManager) (*FilePersistence, error) {
	if err := os.MkdirAll(matchesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create matches directory: %w", err)
	}

	return &FilePersistence{
		matchesDir:    matchesDir,
		configManager: configManager,
	}, nil
}

// Save persists a match session to a JSON file
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	// Store the config ID, not the display name, so Load can resolve it
	configID, err := fp.getConfigIDFromName(session.Config.Name)
	if err != nil {
		return fmt.Errorf("failed to get config ID: %w", err)
	}

	data := PersistedMatchData{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		MatchState:     session.Engine.GetState(),
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal match data: %w", err)
	}

	filePath := fp.getFilePath(session.ID)
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write match file: %w", err)
	}

	return nil
}

// Load retrieves a match session from a JSON file and restores its engine
// state through the config manager.
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrMatchNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read match file: %w", err)
	}

	var data PersistedMatchData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match data: %w", err)
	}

	gameConfig, err := fp.configManager.LoadConfig(data.ConfigName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config '%s': %w", data.ConfigName, err)
	}

	gameEngine, err := engine.NewEngine(gameConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create game engine: %w", err)
	}

	if data.MatchState == nil {
		return nil, fmt.Errorf("match file for '%s' carries no state", id)
	}
	if err := gameEngine.SetState(data.MatchState); err != nil {
		return nil, fmt.Errorf("failed to set match state: %w", err)
	}

	return &service.Session{
		ID:             data.ID,
		Engine:         gameEngine,
		Config:         gameConfig,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a match file
func (fp *FilePersistence) Delete(id string) error {
	filePath := fp.getFilePath(id)

	if !fp.Exists(id) {
		return ErrMatchNotFound
	}

	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to remove match file: %w", err)
	}

	return nil
}

// ListAll returns all persisted match IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.matchesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read matches directory: %w", err)
	}

	var matchIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			matchIDs = append(matchIDs, strings.TrimSuffix(name, ".json"))
		}
	}

	return matchIDs, nil
}

// Exists checks if a match file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a match ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.matchesDir, fmt.Sprintf("%s.json", id))
}

// getConfigIDFromName resolves a config display name to its file-based ID
func (fp *FilePersistence) getConfigIDFromName(displayName string) (string, error) {
	configs, err := fp.configManager.ListConfigs()
	if err != nil {
		return "", fmt.Errorf("failed to list configs: %w", err)
	}

	for _, config := range configs {
		if config.Name == displayName {
			return config.ConfigID, nil
		}
	}

	// Assume the display name already is the config ID
	return displayName, nil
}
