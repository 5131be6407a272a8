package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gridgames/arena/game/config"
	"github.com/gridgames/arena/game/engine"
	"github.com/gridgames/arena/game/service"
)

func TestFilePersistence(t *testing.T) {
	tempDir := t.TempDir()

	// Create config manager
	configManager, err := config.NewManager("../../configs")
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}

	// Create persistence layer
	persistence, err := NewFilePersistence(tempDir, configManager)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}

	// Create test session
	gameConfig := configManager.GetDefault()
	gameEngine, err := engine.NewEngine(gameConfig)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	session := &service.Session{
		ID:             "test1",
		Engine:         gameEngine,
		Config:         gameConfig,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	t.Run("Save and Load Match", func(t *testing.T) {
		// Save session
		err := persistence.Save(session)
		if err != nil {
			t.Fatalf("Failed to save match: %v", err)
		}

		// Check file exists
		if !persistence.Exists("test1") {
			t.Error("Match file should exist after save")
		}

		// Load session
		loadedSession, err := persistence.Load("test1")
		if err != nil {
			t.Fatalf("Failed to load match: %v", err)
		}

		// Verify session data
		if loadedSession.ID != session.ID {
			t.Errorf("Expected ID %s, got %s", session.ID, loadedSession.ID)
		}
		if loadedSession.Config.Name != session.Config.Name {
			t.Errorf("Expected config name %s, got %s", session.Config.Name, loadedSession.Config.Name)
		}
		if loadedSession.Engine.Turn() != session.Engine.Turn() {
			t.Errorf("Expected turn %d, got %d", session.Engine.Turn(), loadedSession.Engine.Turn())
		}
	})

	t.Run("Save State Changes", func(t *testing.T) {
		// Place a tile to change state
		if err := session.Engine.Place(1, engine.Position{Row: 0, Col: 0}); err != nil {
			t.Fatalf("Failed to place tile: %v", err)
		}

		// Save updated session
		err := persistence.Save(session)
		if err != nil {
			t.Fatalf("Failed to save updated match: %v", err)
		}

		// Load and verify state was persisted
		loadedSession, err := persistence.Load("test1")
		if err != nil {
			t.Fatalf("Failed to load updated match: %v", err)
		}

		if loadedSession.Engine.GetState().Board.Owner(engine.Position{Row: 0, Col: 0}) != 1 {
			t.Errorf("Placed tile not persisted correctly")
		}
		if len(loadedSession.Engine.GetMoveHistory()) != len(session.Engine.GetMoveHistory()) {
			t.Errorf("Move history not persisted correctly")
		}
		if loadedSession.Engine.Turn() != session.Engine.Turn() {
			t.Errorf("Turn not persisted correctly")
		}
	})

	t.Run("List All Matches", func(t *testing.T) {
		// Create another session
		session2 := &service.Session{
			ID:             "test2",
			Engine:         gameEngine,
			Config:         gameConfig,
			CreatedAt:      time.Now(),
			LastAccessedAt: time.Now(),
		}
		err := persistence.Save(session2)
		if err != nil {
			t.Fatalf("Failed to save second match: %v", err)
		}

		// List all matches
		matchIDs, err := persistence.ListAll()
		if err != nil {
			t.Fatalf("Failed to list matches: %v", err)
		}

		if len(matchIDs) < 2 {
			t.Errorf("Expected at least 2 matches, got %d", len(matchIDs))
		}

		// Check that our matches are in the list
		found := make(map[string]bool)
		for _, id := range matchIDs {
			found[id] = true
		}
		if !found["test1"] || !found["test2"] {
			t.Error("Expected matches not found in list")
		}
	})

	t.Run("Delete Match", func(t *testing.T) {
		// Delete match
		err := persistence.Delete("test2")
		if err != nil {
			t.Fatalf("Failed to delete match: %v", err)
		}

		// Verify it no longer exists
		if persistence.Exists("test2") {
			t.Error("Match should not exist after delete")
		}

		// Verify we can't load it
		_, err = persistence.Load("test2")
		if err == nil {
			t.Error("Should not be able to load deleted match")
		}
	})

	t.Run("Error Cases", func(t *testing.T) {
		// Try to load non-existent match
		_, err := persistence.Load("nonexistent")
		if err == nil {
			t.Error("Should get error when loading non-existent match")
		}

		// Try to delete non-existent match
		err = persistence.Delete("nonexistent")
		if err == nil {
			t.Error("Should get error when deleting non-existent match")
		}

		// Try to save nil session
		err = persistence.Save(nil)
		if err == nil {
			t.Error("Should get error when saving nil session")
		}
	})
}

func TestFilePersistenceFileStructure(t *testing.T) {
	tempDir := t.TempDir()

	configManager, err := config.NewManager("../../configs")
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}

	persistence, err := NewFilePersistence(tempDir, configManager)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}

	// Create and save session
	gameConfig := configManager.GetDefault()
	gameEngine, err := engine.NewEngine(gameConfig)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	session := &service.Session{
		ID:             "file_test",
		Engine:         gameEngine,
		Config:         gameConfig,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	err = persistence.Save(session)
	if err != nil {
		t.Fatalf("Failed to save match: %v", err)
	}

	// Check file exists in correct location
	expectedFile := filepath.Join(tempDir, "file_test.json")
	if _, err := os.Stat(expectedFile); os.IsNotExist(err) {
		t.Errorf("Expected file %s does not exist", expectedFile)
	}

	// Check file contains valid JSON
	data, err := os.ReadFile(expectedFile)
	if err != nil {
		t.Fatalf("Failed to read match file: %v", err)
	}

	if len(data) == 0 {
		t.Error("Match file should not be empty")
	}

	// Check it contains expected fields (basic validation)
	content := string(data)
	expectedFields := []string{"\"id\"", "\"config_name\"", "\"created_at\"", "\"match_state\""}
	for _, field := range expectedFields {
		if !strings.Contains(content, field) {
			t.Errorf("Match file should contain field %s", field)
		}
	}
}
