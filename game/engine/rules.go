package engine

import (
	"fmt"
	"sort"
)

// Rules decides when a match ends and who wins. Implementations register
// themselves by name and are selected through GameConfig.Ruleset.
type Rules interface {
	// Name returns the registry key for this ruleset
	Name() string

	// Describe returns a short summary of the objective and win condition,
	// suitable for player instructions
	Describe(config *GameConfig) string

	// ValidateConfig checks ruleset-specific configuration fields
	ValidateConfig(config *GameConfig) error

	// Evaluate inspects the board after the placement at last and reports
	// whether the match is over along with outcome, winner, and scores
	Evaluate(board *Board, config *GameConfig, last Position) Verdict
}

var rulesets = map[string]Rules{}

// RegisterRules adds a ruleset to the registry. Duplicate names panic so
// conflicts surface at startup rather than at match creation.
func RegisterRules(rules Rules) {
	name := rules.Name()
	if _, exists := rulesets[name]; exists {
		panic(fmt.Sprintf("ruleset %q registered twice", name))
	}
	rulesets[name] = rules
}

// GetRules returns the registered ruleset with the given name
func GetRules(name string) (Rules, error) {
	rules, ok := rulesets[name]
	if !ok {
		return nil, fmt.Errorf("unknown ruleset '%s' (available: %v)", name, RulesetNames())
	}
	return rules, nil
}

// RulesetNames returns the registered ruleset names in sorted order
func RulesetNames() []string {
	names := make([]string, 0, len(rulesets))
	for name := range rulesets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
