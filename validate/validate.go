// Package validate checks game configuration JSON files for structural
// and rules problems before they are served. It checks:
//   - JSON structure and required fields
//   - Grid dimensions within the supported range
//   - Seat count, names, and symbol uniqueness
//   - Ruleset registration and ruleset-specific fields (win_length for inarow)
//   - Required message templates and their format verbs
package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gridgames/arena/game/engine"
)

// Result captures the outcome of validating a single file. When Valid is
// true, Notes holds informational summary lines; otherwise Errors holds
// the problems that were found.
type Result struct {
	File   string
	Valid  bool
	Errors []string
	Notes  []string
}

// File loads and validates a single configuration JSON file.
func File(path string) Result {
	result := Result{
		File:  filepath.Base(path),
		Valid: true,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Notes = append(result.Notes, fmt.Sprintf("Name: %s", config.Name))
	result.Notes = append(result.Notes, fmt.Sprintf("Board: %dx%d", config.Rows, config.Cols))
	result.Notes = append(result.Notes, fmt.Sprintf("Ruleset: %s", config.Ruleset))
	if config.WinLength > 0 {
		result.Notes = append(result.Notes, fmt.Sprintf("Win length: %d", config.WinLength))
	}
	for i, seat := range config.Seats {
		result.Notes = append(result.Notes, fmt.Sprintf("Seat %d: %s (%s)", i+1, seat.Name, seat.Symbol))
	}

	return result
}

// Dir validates every *.json file in the given directory, sorted by
// filename. It returns the per-file results and whether all passed.
func Dir(dir string) ([]Result, bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, false, fmt.Errorf("finding config files: %w", err)
	}
	sort.Strings(files)

	allValid := true
	results := make([]Result, 0, len(files))
	for _, file := range files {
		result := File(file)
		if !result.Valid {
			allValid = false
		}
		results = append(results, result)
	}

	return results, allValid, nil
}
