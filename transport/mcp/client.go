package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gridgames/arena/game/engine"
	"github.com/gridgames/arena/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Grid Arena",
		"2.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Grid Arena - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Players take turns placing tiles on a grid. In "connected" matches the largest
orthogonally connected group of your tiles wins when the board fills. In
"inarow" matches the first straight run of the required length wins.

AVAILABLE TOOLS:
- match_state: Get current match state with rendered board
- place_tile: Place one tile at row,col - requires intent explanation
- replay_moves: Re-apply a recorded sequence of placements
- legal_moves: List every open cell for the match
- reset_match: Reset the board to empty
- match_history: View past placements
- scoreboard: Current standing of every seat
- create_match: Create new match
- get_match: Get match details
- list_matches: List all active matches
- list_configs: List available configurations
- game_instructions: Get comprehensive game instructions and rules
- describe_cell: Get detailed info about one grid cell (owner, neighbors, component/run value)

NOTE: The 'intent' parameter on place_tile/replay_moves serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Match management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_match",
		Description: "Create a new match with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Name of the config to use (optional)",
				},
			},
		},
	}, c.handleCreateMatch)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_matches",
		Description: "List all active matches",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListMatches)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_match",
		Description: "Get details of a specific match",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID to retrieve",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleGetMatch)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "match_state",
		Description: "Get the current match state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleMatchState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_tile",
		Description: "Place one tile for a seat at a 0-based row,col position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"symbol": map[string]interface{}{
					"type":        "string",
					"description": "Symbol of the seat placing the tile, e.g. * or o",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the target cell (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the target cell (0-based)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this placement (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset the board before placing",
				},
			},
			Required: []string{"match_id", "symbol", "row", "col"},
		},
	}, c.handlePlaceTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "replay_moves",
		Description: "Re-apply a recorded sequence of placements in order",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"symbol": map[string]interface{}{"type": "string"},
							"row":    map[string]interface{}{"type": "integer"},
							"col":    map[string]interface{}{"type": "integer"},
						},
					},
					"description": "Array of placements, each with symbol, row and col",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset the board before replaying",
				},
			},
			Required: []string{"match_id", "moves"},
		},
	}, c.handleReplayMoves)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "legal_moves",
		Description: "List every open cell where the seat on move may place a tile",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleLegalMoves)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_match",
		Description: "Reset the match board to empty",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleResetMatch)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "match_history",
		Description: "Get placement history for a match",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleMatchHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "scoreboard",
		Description: "Get the current standing of every seat in a match",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleScoreboard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about one cell in the grid: owner, open neighbors, and the component size or run length a tile there would produce. Useful before committing to a placement.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the cell to describe (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the cell to describe (0-based)",
				},
			},
			Required: []string{"match_id", "row", "col"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var match service.MatchInfo
	err := c.apiCall("POST", "/api/matches", body, &match)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created match: %s\nConfig: %s\n", match.ID, match.ConfigName)
	if match.MatchState != nil {
		result += "\n" + formatMatchState(match.MatchState)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListMatches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                 `json:"count"`
		Matches []service.MatchInfo `json:"matches"`
	}

	err := c.apiCall("GET", "/api/matches", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Matches (%d):\n\n", response.Count)
	for _, m := range response.Matches {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			m.ID, m.ConfigName, m.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	var match service.MatchInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s", matchID), nil, &match)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatMatchInfo(&match)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMatchState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	var state engine.MatchState
	err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s/state", matchID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatMatchState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePlaceTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	symbol, _ := args["symbol"].(string)
	row, rowOK := args["row"].(float64)
	col, colOK := args["col"].(float64)
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	if !rowOK || !colOK {
		return mcp.NewToolResultError("row and col are required integers"), nil
	}

	body := map[string]interface{}{
		"symbol": symbol,
		"row":    int(row),
		"col":    int(col),
		"reset":  reset,
	}

	var result service.PlaceResult
	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/moves", matchID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatPlaceResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReplayMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	movesRaw, _ := args["moves"].([]interface{})
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	// Convert moves to the service wire shape
	moves := make([]map[string]interface{}, 0, len(movesRaw))
	for _, m := range movesRaw {
		entry, ok := m.(map[string]interface{})
		if !ok {
			continue
		}
		symbol, _ := entry["symbol"].(string)
		row, _ := entry["row"].(float64)
		col, _ := entry["col"].(float64)
		moves = append(moves, map[string]interface{}{
			"symbol": symbol,
			"pos":    map[string]int{"row": int(row), "col": int(col)},
		})
	}

	body := map[string]interface{}{
		"moves": moves,
		"reset": reset,
	}

	var result service.ReplayResult
	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/replay", matchID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatReplayResult(matchID, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleLegalMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	var state engine.MatchState
	err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s/state", matchID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if state.Status == engine.StatusFinished {
		return mcp.NewToolResultText("Match is over. No legal moves."), nil
	}

	open := state.Board.OpenPositions()
	result := fmt.Sprintf("Seat on move: %s (seat %d)\nLegal moves (%d): %s\n",
		engine.SymbolForSeat(state.Seats, state.Turn), state.Turn,
		len(open), engine.FormatPositions(open))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleResetMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	var response struct {
		Message string             `json:"message"`
		State   *engine.MatchState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/reset", matchID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatMatchState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMatchHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s/history%s", matchID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Also fetch the current segment from live state
	var match service.MatchInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s", matchID), nil, &match); err != nil {
		// If fetching the match fails, still return the history
		result := formatHistory(&history)
		return mcp.NewToolResultText(result), nil
	}

	result := formatHistory(&history)
	result += "\n" + formatCurrentSegment(match.MatchState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleScoreboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	var board service.ScoreboardResult
	err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s/scores", matchID), nil, &board)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Scoreboard for match %s (%s, %s)\n\n", board.MatchID, board.Ruleset, board.Status))
	for _, row := range board.Rows {
		marker := " "
		if row.OnMove {
			marker = ">"
		}
		winner := ""
		if row.IsWinner {
			winner = " [winner]"
		}
		b.WriteString(fmt.Sprintf("%s seat %d %s (%s): score %d, tiles %d%s\n",
			marker, row.Seat, row.Name, row.Symbol, row.Score, row.Tiles, winner))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s\n  %s\n  Grid: %dx%d, Ruleset: %s",
			config.ConfigID, config.Description, config.Rows, config.Cols, config.Ruleset)
		if config.WinLength > 0 {
			result += fmt.Sprintf(", Win length: %d", config.WinLength)
		}
		result += "\n\n"
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Grid Arena - Complete Instructions

GAME OBJECTIVE:
Two or more players take turns placing tiles on a rectangular grid. A tile
never moves or flips once placed. How you win depends on the ruleset.

RULESETS:
• connected - The match ends when the board is full. Each seat scores the size
  of its largest orthogonally connected group of tiles (up/down/left/right
  adjacency only, NO diagonals). Highest score wins; equal top scores draw.
• inarow - The first seat to complete a straight run of the required length
  (horizontal, vertical, or diagonal) wins immediately. A full board with no
  run is a draw.

COORDINATES:
All positions are 0-based "row,col" pairs. Row 0 is the top row, column 0 is
the leftmost column. A 5x5 board accepts rows 0-4 and columns 0-4.

TURN ORDER:
Seats move in order: seat 1 first, then seat 2, and so on, wrapping back to
seat 1. Placing out of turn is rejected and does NOT consume the turn.

PLACEMENT RULES:
• The target cell must be inside the board
• The target cell must be empty
• It must be your turn
• The match must still be in progress
Any rejected placement leaves the board untouched; read the reason, then retry.

AGENT STRATEGY NOTES:
• connected: growth beats scatter - extend one large group instead of seeding
  isolated tiles. Remember diagonal tiles are NOT connected.
• inarow: always check two things before extending your own run - can you win
  this turn, and can the opponent win next turn? Block forced wins first.
• Use describe_cell to verify a target before committing: it reports the
  component size or run length a tile there would produce.
• Use legal_moves when unsure what remains open.

API USAGE BEST PRACTICES:
• Use replay_moves to restore a known position rather than placing one by one
• Read the rendered board after every placement - it is authoritative
• Rejections come back as structured reasons (out_of_bounds, occupied,
  not_your_turn, bad_symbol, match_over) - handle each explicitly

MATCH MANAGEMENT:
• Multiple matches can run simultaneously
• Each match has a unique 4-character ID
• Matches maintain independent state and configuration
• reset_match clears the board but keeps the cumulative history

Remember: the board state returned by the API is the single source of truth.
When a placement is rejected, the reason tells you exactly which rule you
broke - adjust and place again.`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	row := int(args["row"].(float64))
	col := int(args["col"].(float64))

	var state engine.MatchState
	err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s/state", matchID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pos := engine.Position{Row: row, Col: col}
	if !state.Board.InBounds(pos) {
		return mcp.NewToolResultError(fmt.Sprintf("Position %d,%d is out of bounds. Board is %dx%d (rows 0-%d, cols 0-%d)",
			row, col, state.Board.Rows, state.Board.Cols, state.Board.Rows-1, state.Board.Cols-1)), nil
	}

	owner := state.Board.Owner(pos)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Cell %d,%d:\n", row, col))
	if owner == 0 {
		b.WriteString("Owner: none (open)\n")
	} else {
		b.WriteString(fmt.Sprintf("Owner: seat %d (%s, %s)\n",
			owner, state.Seats[owner-1].Name, state.Seats[owner-1].Symbol))
	}

	// Neighbor summary
	openNeighbors := 0
	for _, n := range state.Board.Neighbors(pos) {
		if state.Board.Owner(n) == 0 {
			openNeighbors++
		}
	}
	b.WriteString(fmt.Sprintf("Open neighbors: %d\n", openNeighbors))

	// What a tile here would be worth for the seat on move
	if owner == 0 && state.Status == engine.StatusInProgress {
		probe := state.Board
		probe.Cells = make([][]engine.Cell, state.Board.Rows)
		for r := range probe.Cells {
			probe.Cells[r] = make([]engine.Cell, state.Board.Cols)
			copy(probe.Cells[r], state.Board.Cells[r])
		}
		probe.Cells[row][col].Owner = state.Turn

		switch state.Ruleset {
		case "inarow":
			run := probe.RunThrough(pos, state.Turn)
			b.WriteString(fmt.Sprintf("A tile here for seat %d would complete a run of %d (need %d to win)\n",
				state.Turn, run, state.WinLength))
		default:
			comp := probe.ComponentAt(pos)
			b.WriteString(fmt.Sprintf("A tile here for seat %d would join a connected group of %d\n",
				state.Turn, len(comp)))
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

// Formatting helpers

func formatMatchInfo(match *service.MatchInfo) string {
	return fmt.Sprintf("Match: %s\nConfig: %s\nCreated: %s\n\n%s",
		match.ID, match.ConfigName,
		match.CreatedAt.Format("2006-01-02 15:04:05"),
		formatMatchState(match.MatchState))
}

func formatMatchState(state *engine.MatchState) string {
	if state == nil {
		return "No match state available"
	}

	var result strings.Builder

	// Header (include cumulative total moves)
	result.WriteString(fmt.Sprintf("Ruleset: %s | Board: %dx%d | Moves: %d\n",
		state.Ruleset, state.Board.Rows, state.Board.Cols, state.TotalMoves))
	for i, seat := range state.Seats {
		marker := " "
		if state.Status == engine.StatusInProgress && state.Turn == i+1 {
			marker = ">"
		}
		score := 0
		if i < len(state.Scores) {
			score = state.Scores[i]
		}
		result.WriteString(fmt.Sprintf("%s seat %d %s (%s): %d\n", marker, i+1, seat.Name, seat.Symbol, score))
	}
	result.WriteString("\n")

	result.WriteString(engine.RenderBoard(&state.Board, state.Seats))

	// Status
	if state.Status == engine.StatusFinished {
		if state.Outcome == engine.OutcomeWin {
			result.WriteString(fmt.Sprintf("\nWinner: seat %d (%s)", state.Winner, state.Seats[state.Winner-1].Name))
		} else {
			result.WriteString("\nDraw")
		}
	} else {
		open := state.Board.OpenPositions()
		result.WriteString(fmt.Sprintf("\nOpen cells (%d): %s", len(open), engine.FormatPositions(open)))
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

func formatPlaceResult(result *service.PlaceResult) string {
	response := ""
	if result.Success {
		response = "✓ Placement accepted\n"
	} else {
		response = fmt.Sprintf("✗ Placement rejected (%s)\n", result.Reason)
	}

	if result.Message != "" {
		response += result.Message + "\n"
	}

	// Compact step summary (if available)
	if result.Step != nil {
		s := result.Step
		response += fmt.Sprintf("Step: seat %d (%s) -> %d,%d score=%d\n",
			s.Seat, s.Symbol, s.Pos.Row, s.Pos.Col, s.ScoreAfter)
	}

	// Failure diagnostic (if available)
	if result.Attempted != nil {
		a := result.Attempted
		if a.Owner > 0 {
			response += fmt.Sprintf("Attempted: %d,%d already owned by seat %d (%s)\n", a.Pos.Row, a.Pos.Col, a.Owner, a.Symbol)
		} else {
			response += fmt.Sprintf("Attempted: %d,%d (%s)\n", a.Pos.Row, a.Pos.Col, a.Reason)
		}
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatMatchState(result.MatchState)
	return response
}

func formatReplayResult(matchID string, result *service.ReplayResult) string {
	var b strings.Builder

	// Match header
	configName := ""
	rows, cols := 0, 0
	if result.MatchState != nil {
		configName = result.MatchState.ConfigName
		rows = result.MatchState.Board.Rows
		cols = result.MatchState.Board.Cols
	}
	b.WriteString(fmt.Sprintf("Match: %s • Config: %s • Board: %dx%d\n",
		matchID, configName, rows, cols))

	// Replay summary
	b.WriteString(fmt.Sprintf("Executed %d/%d moves\n", result.MovesExecuted, result.RequestedMoves))
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated to the first %d moves\n", result.Limit))
	}
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped on move %d: %s (%s)\n",
			result.StoppedOnMove, result.StoppedReason, result.StopReasonCode))
	}
	b.WriteString(fmt.Sprintf("Open cells: %d -> %d\n", result.StartOpenCells, result.EndOpenCells))

	// Events (keep as-is, concise)
	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	// Per-step trace for this call
	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			b.WriteString(fmt.Sprintf("%d. seat %d (%s) -> %d,%d score=%d\n",
				s.Idx, s.Seat, s.Symbol, s.Pos.Row, s.Pos.Col, s.ScoreAfter))
		}
	}

	// Stopped diagnostic
	if result.Attempted != nil {
		a := result.Attempted
		b.WriteString("\n")
		if a.Owner > 0 {
			b.WriteString(fmt.Sprintf("Blocked: attempted %d,%d already owned by seat %d (%s)\n", a.Pos.Row, a.Pos.Col, a.Owner, a.Symbol))
		} else {
			b.WriteString(fmt.Sprintf("Blocked: attempted %d,%d (%s)\n", a.Pos.Row, a.Pos.Col, a.Reason))
		}
	}

	// Full state at the end (kept for compatibility)
	b.WriteString("\n")
	b.WriteString(formatMatchState(result.MatchState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Move History (Page %d/%d) — Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		result += fmt.Sprintf("%d. seat %d (%s) -> %d,%d\n",
			move.MoveNumber, move.Seat, move.Symbol, move.Position.Row, move.Position.Col)
	}

	return result
}

func formatCurrentSegment(state *engine.MatchState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	moves := state.CurrentMoves
	total := state.CurrentMovesCount
	header := fmt.Sprintf("Current Move Segment — Moves: %d\n\n", total)
	if len(moves) == 0 {
		return header + "(no moves in current segment)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, move := range moves {
		b.WriteString(fmt.Sprintf("%d. seat %d (%s) -> %d,%d\n",
			i+1, move.Seat, move.Symbol, move.Position.Row, move.Position.Col))
	}
	return b.String()
}
