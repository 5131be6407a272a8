package engine

// Status represents the lifecycle phase of a match
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// Outcome represents how a finished match ended
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeDraw Outcome = "draw"
)

const (
	// Validation constants
	MinGridSize  = 2
	MaxGridSize  = 50
	MinSeats     = 2
	MaxSeats     = 4
	MinWinLength = 3

	MaxReplayMoves      = 1024
	WebSocketBufferSize = 256
)

// Placement rejection reason codes
const (
	ReasonOutOfBounds = "out_of_bounds"
	ReasonOccupied    = "occupied"
	ReasonNotYourTurn = "not_your_turn"
	ReasonMatchOver   = "match_over"
	ReasonBadSymbol   = "bad_symbol"
	ReasonBadFormat   = "bad_format"
)

// PlaceError reports a rejected placement. Message is the player-facing
// feedback line, Reason is the machine-readable code transports key on.
type PlaceError struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (e *PlaceError) Error() string {
	return e.Message
}

// Cell represents a single grid cell. Owner is 0 while the cell is empty,
// otherwise the 1-based seat number of the player holding it.
type Cell struct {
	Owner int `json:"owner"`
}

// Position identifies a cell by 0-based row and column
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Seat describes one player slot in a match
type Seat struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Board is a rectangular grid of cells in row-major order
type Board struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells [][]Cell `json:"cells"`
}

// GameConfig represents the match configuration from JSON
type GameConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Ruleset     string `json:"ruleset"`
	WinLength   int    `json:"win_length,omitempty"`
	Seats       []Seat `json:"seats"`
	Messages    struct {
		Welcome     string `json:"welcome"`
		TurnPrompt  string `json:"turn_prompt"`
		Victory     string `json:"victory"`
		Draw        string `json:"draw"`
		MatchOver   string `json:"match_over"`
		NotYourTurn string `json:"not_your_turn"`
	} `json:"messages"`
}

// MatchState represents the complete state of one match
type MatchState struct {
	Board       Board              `json:"board"`
	Seats       []Seat             `json:"seats"`
	Turn        int                `json:"turn"`   // 1-based seat number on move
	Status      Status             `json:"status"`
	Outcome     Outcome            `json:"outcome"`
	Winner      int                `json:"winner"` // 1-based seat number, 0 when none
	Scores      []int              `json:"scores"` // index 0 holds seat 1's score
	Message     string             `json:"message"`
	ConfigName  string             `json:"config_name"`
	Ruleset     string             `json:"ruleset"`
	WinLength   int                `json:"win_length,omitempty"`
	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors MoveHistory
	// entries but gets cleared on reset while MoveHistory remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`
}

// MoveHistoryEntry represents a single accepted placement in the match history
type MoveHistoryEntry struct {
	Seat       int      `json:"seat"`
	Symbol     string   `json:"symbol"`
	Position   Position `json:"position"`
	Timestamp  int64    `json:"timestamp"`
	MoveNumber int      `json:"move_number"`
}

// Verdict is the result of a rules evaluation after a placement
type Verdict struct {
	Finished bool
	Outcome  Outcome
	Winner   int   // 1-based seat, 0 on draw or while unfinished
	Scores   []int // index 0 holds seat 1's score
}
