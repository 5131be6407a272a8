package session

import (
	"testing"
	"time"

	"github.com/gridgames/arena/game/config"
	"github.com/gridgames/arena/game/engine"
)

func TestManagerWithPersistence(t *testing.T) {
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

	// Create manager with persistence
	manager := NewManagerWithPersistence(persistence)

	t.Run("Create Match Auto-Saves", func(t *testing.T) {
		gameConfig := configManager.GetDefault()
		session, err := manager.Create("auto1", gameConfig)
		if err != nil {
			t.Fatalf("Failed to create match: %v", err)
		}

		// Verify match was auto-saved
		if !persistence.Exists(session.ID) {
			t.Error("Match should be auto-saved on creation")
		}

		// Verify we can load it directly from persistence
		loadedSession, err := persistence.Load(session.ID)
		if err != nil {
			t.Fatalf("Failed to load auto-saved match: %v", err)
		}

		if loadedSession.ID != session.ID {
			t.Errorf("Expected ID %s, got %s", session.ID, loadedSession.ID)
		}
	})

	t.Run("Get Match Loads from Persistence", func(t *testing.T) {
		// Create new manager (no in-memory matches)
		manager2 := NewManagerWithPersistence(persistence)

		// Try to get match that exists only in persistence
		session, err := manager2.Get("auto1")
		if err != nil {
			t.Fatalf("Failed to get match from persistence: %v", err)
		}

		if session.ID != "auto1" {
			t.Errorf("Expected ID auto1, got %s", session.ID)
		}

		// Verify it's now in memory too
		session2, err := manager2.Get("auto1")
		if err != nil {
			t.Fatalf("Failed to get match from memory: %v", err)
		}

		if session2.ID != session.ID {
			t.Error("Match should be cached in memory after loading from persistence")
		}
	})

	t.Run("Save Method Persists Changes", func(t *testing.T) {
		// Get match and make changes
		session, err := manager.Get("auto1")
		if err != nil {
			t.Fatalf("Failed to get match: %v", err)
		}

		// Place a tile to change state
		pos := engine.Position{Row: 1, Col: 1}
		if err := session.Engine.Place(session.Engine.Turn(), pos); err != nil {
			t.Fatalf("Failed to place tile: %v", err)
		}

		// Save manually
		err = manager.Save("auto1")
		if err != nil {
			t.Fatalf("Failed to save match: %v", err)
		}

		// Create new manager and load match
		manager3 := NewManagerWithPersistence(persistence)
		loadedSession, err := manager3.Get("auto1")
		if err != nil {
			t.Fatalf("Failed to load match after manual save: %v", err)
		}

		// Verify changes were persisted
		if loadedSession.Engine.GetState().Board.Owner(pos) == 0 {
			t.Error("Placed tiles should be persisted")
		}

		if len(loadedSession.Engine.GetMoveHistory()) == 0 {
			t.Error("Move history should be persisted")
		}
	})

	t.Run("Delete Removes from Persistence", func(t *testing.T) {
		// Create match
		gameConfig := configManager.GetDefault()
		session, err := manager.Create("delete_test", gameConfig)
		if err != nil {
			t.Fatalf("Failed to create match: %v", err)
		}

		// Verify it exists in persistence
		if !persistence.Exists(session.ID) {
			t.Error("Match should exist in persistence")
		}

		// Delete match
		err = manager.Delete(session.ID)
		if err != nil {
			t.Fatalf("Failed to delete match: %v", err)
		}

		// Verify it's gone from persistence
		if persistence.Exists(session.ID) {
			t.Error("Match should be removed from persistence on delete")
		}

		// Verify we can't get it anymore
		_, err = manager.Get(session.ID)
		if err == nil {
			t.Error("Should not be able to get deleted match")
		}
	})

	t.Run("Load Persisted Matches on Startup", func(t *testing.T) {
		// Create some matches with first manager
		gameConfig := configManager.GetDefault()
		matches := []string{"startup1", "startup2", "startup3"}
		for _, id := range matches {
			_, err := manager.Create(id, gameConfig)
			if err != nil {
				t.Fatalf("Failed to create match %s: %v", id, err)
			}
		}

		// Create new manager (simulates server restart)
		manager4 := NewManagerWithPersistence(persistence)

		// Load persisted matches
		err := manager4.LoadPersistedMatches()
		if err != nil {
			t.Fatalf("Failed to load persisted matches: %v", err)
		}

		// Verify all matches are accessible
		for _, id := range matches {
			session, err := manager4.Get(id)
			if err != nil {
				t.Errorf("Failed to get match %s after loading persisted matches: %v", id, err)
			}
			if session.ID != id {
				t.Errorf("Expected ID %s, got %s", id, session.ID)
			}
		}

		// Check that the match list includes loaded matches
		allMatches := manager4.List()
		if len(allMatches) < len(matches) {
			t.Errorf("Expected at least %d matches, got %d", len(matches), len(allMatches))
		}
	})

	t.Run("Update Last Accessed Persists", func(t *testing.T) {
		// Get match
		session, err := manager.Get("startup1")
		if err != nil {
			t.Fatalf("Failed to get match: %v", err)
		}

		originalTime := session.LastAccessedAt
		time.Sleep(10 * time.Millisecond)

		// Update last accessed
		err = manager.UpdateLastAccessed("startup1")
		if err != nil {
			t.Fatalf("Failed to update last accessed: %v", err)
		}

		// Create new manager and load match
		manager5 := NewManagerWithPersistence(persistence)
		loadedSession, err := manager5.Get("startup1")
		if err != nil {
			t.Fatalf("Failed to load match: %v", err)
		}

		// Verify last accessed time was persisted and updated
		if !loadedSession.LastAccessedAt.After(originalTime) {
			t.Error("Last accessed time should be updated and persisted")
		}
	})
}
