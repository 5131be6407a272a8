// Command arena runs the grid game arena.
//
// It supports four modes:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "play" – plays one local match between configured agents in the terminal
//  4. "validate" – validates every configuration file in the config directory
//
// Flags control host/port, config and data directories, log level, and
// optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
	"golang.org/x/sync/errgroup"

	"github.com/gridgames/arena/agent"
	"github.com/gridgames/arena/api"
	"github.com/gridgames/arena/game/config"
	"github.com/gridgames/arena/game/engine"
	"github.com/gridgames/arena/game/service"
	"github.com/gridgames/arena/game/session"
	"github.com/gridgames/arena/internal/log"
	"github.com/gridgames/arena/store"
	"github.com/gridgames/arena/transport/mcp"
	"github.com/gridgames/arena/transport/websocket"
	"github.com/gridgames/arena/validate"
)

// Version information
const (
	Version = "2.0.0"
	AppName = "Grid Arena"
)

var logger = log.WithComponent("main")

// serverFlags are shared by the serve and mcp commands
var serverFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "host",
		Value:   "localhost",
		Usage:   "HTTP server host",
		Sources: cli.EnvVars("HOST"),
	},
	&cli.IntFlag{
		Name:    "port",
		Value:   8080,
		Usage:   "HTTP server port",
		Sources: cli.EnvVars("PORT"),
	},
	&cli.StringFlag{
		Name:    "config-dir",
		Value:   "configs",
		Usage:   "Directory containing game configurations",
		Sources: cli.EnvVars("CONFIG_DIR"),
	},
	&cli.StringFlag{
		Name:    "sessions-dir",
		Value:   "sessions",
		Usage:   "Directory for persisted match sessions",
		Sources: cli.EnvVars("SESSIONS_DIR"),
	},
	&cli.StringFlag{
		Name:    "db-path",
		Value:   "arena.db",
		Usage:   "SQLite archive path, empty disables the archive",
		Sources: cli.EnvVars("DB_PATH"),
	},
	&cli.StringFlag{
		Name:    "log-level",
		Value:   "",
		Usage:   "Log level (debug, info, warn, error)",
		Sources: cli.EnvVars("LOG_LEVEL"),
	},
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	cmd := newRootCommand()

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "arena",
		Usage:   "turn-based grid game arena for humans and agents",
		Version: Version,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP server with REST API, WebSocket, and MCP endpoint",
				Flags: append(serverFlags,
					&cli.BoolFlag{
						Name:    "ngrok",
						Usage:   "Enable ngrok tunnel",
						Sources: cli.EnvVars("NGROK_ENABLED"),
					},
					&cli.StringFlag{
						Name:    "ngrok-auth",
						Usage:   "Ngrok auth token",
						Sources: cli.EnvVars("NGROK_AUTHTOKEN"),
					},
					&cli.StringFlag{
						Name:    "ngrok-domain",
						Usage:   "Custom ngrok domain (optional)",
						Sources: cli.EnvVars("NGROK_DOMAIN"),
					},
				),
				Action: runServe,
			},
			{
				Name:   "mcp",
				Usage:  "Run an MCP stdio server, starting an internal HTTP API if none is running",
				Flags:  serverFlags,
				Action: runStdioMCP,
			},
			{
				Name:  "play",
				Usage: "Play one local match between configured agents in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config-dir",
						Value:   "configs",
						Usage:   "Directory containing game configurations",
						Sources: cli.EnvVars("CONFIG_DIR"),
					},
					&cli.StringFlag{
						Name:  "config",
						Value: "",
						Usage: "Configuration name, empty uses the default",
					},
					&cli.StringFlag{
						Name:  "agents",
						Value: "human,greedy",
						Usage: "Comma-separated agent kinds for seats 1..n (human, random, greedy, openai)",
					},
					&cli.StringFlag{
						Name:    "model",
						Value:   agent.DefaultOpenAIModel,
						Usage:   "Model for openai agents",
						Sources: cli.EnvVars("OPENAI_MODEL"),
					},
					&cli.StringFlag{
						Name:    "log-level",
						Value:   "warn",
						Usage:   "Log level (debug, info, warn, error)",
						Sources: cli.EnvVars("LOG_LEVEL"),
					},
				},
				Action: runPlay,
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Fprintf(cmd.Root().Writer, "%s %s\n", AppName, Version)
					return nil
				},
			},
			{
				Name:  "validate",
				Usage: "Validate every configuration file in the config directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config-dir",
						Value:   "configs",
						Usage:   "Directory containing game configurations",
						Sources: cli.EnvVars("CONFIG_DIR"),
					},
				},
				Action: runValidate,
			},
		},
		// Bare invocation serves, matching the old default mode
		DefaultCommand: "serve",
	}
}

// services bundles everything initializeServices wires together
type services struct {
	match   service.MatchService
	hub     *websocket.Hub
	archive *store.Store
	manager *session.Manager
}

// initializeServices wires session/config managers, the archive store, the
// websocket hub, and the match service. It also starts background routines
// that prune stale sessions and sync memory with the sessions directory.
func initializeServices(ctx context.Context, configDir, sessionsDir, dbPath string) (*services, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	persistence, err := session.NewFilePersistence(sessionsDir, configManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(persistence)

	if err := sessionManager.LoadPersistedMatches(); err != nil {
		logger.Warn().Err(err).Msg("failed to load persisted matches")
	}

	var archive *store.Store
	if dbPath != "" {
		archive, err = store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open archive store: %w", err)
		}
	}

	hub := websocket.NewHub()
	go hub.Run()

	var archiver service.Archiver
	if archive != nil {
		archiver = archive
	}
	matchService := service.NewMatchService(sessionManager, configManager, archiver, hub)

	go sessionCleanupRoutine(ctx, sessionManager)
	go filesystemSyncRoutine(ctx, sessionManager, persistence)

	return &services{
		match:   matchService,
		hub:     hub,
		archive: archive,
		manager: sessionManager,
	}, nil
}

// sessionCleanupRoutine periodically removes matches that have not been
// accessed within the retention window.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := manager.CleanupExpired(24 * time.Hour)
			if removed > 0 {
				logger.Info().Int("removed", removed).Msg("cleaned up expired matches")
			}
		}
	}
}

// filesystemSyncRoutine periodically syncs in-memory matches with filesystem
// state, dropping matches whose files were deleted out of band.
func filesystemSyncRoutine(ctx context.Context, manager *session.Manager, persistence session.Persistence) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if persistence == nil {
				continue
			}

			pruned := 0
			for _, sess := range manager.List() {
				if !persistence.Exists(sess.ID) {
					if err := manager.DeleteFromMemory(sess.ID); err == nil {
						pruned++
					}
				}
			}
			if pruned > 0 {
				logger.Info().Int("pruned", pruned).Msg("pruned matches whose files were deleted")
			}
		}
	}
}

// buildRouter mounts the API server and the /mcp proxy endpoint
func buildRouter(apiServer *api.Server, mcpClient *mcp.Client) *http.ServeMux {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// runServe starts the HTTP server with REST API, WebSocket hub, and an /mcp
// proxy endpoint. If ngrok is enabled it also provisions a public tunnel.
func runServe(ctx context.Context, cmd *cli.Command) error {
	log.Configure(log.Config{Level: cmd.String("log-level")})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svcs, err := initializeServices(ctx, cmd.String("config-dir"), cmd.String("sessions-dir"), cmd.String("db-path"))
	if err != nil {
		return err
	}
	if svcs.archive != nil {
		defer svcs.archive.Close()
	}

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	apiServer := api.NewServer(svcs.match, svcs.hub, svcs.archive)
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))
	mainRouter := buildRouter(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		logger.Info().Msgf("REST API: http://%s/api", addr)
		logger.Info().Msgf("WebSocket: ws://%s/ws?match=<match_id>", addr)
		logger.Info().Msgf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	if cmd.Bool("ngrok") {
		g.Go(func() error {
			return runNgrokTunnel(gctx, mainRouter, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"))
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("HTTP server shutdown error")
		}
		return nil
	})

	err = g.Wait()
	logger.Info().Msg("server stopped")
	return err
}

// runNgrokTunnel provisions a public tunnel and serves the router through it
func runNgrokTunnel(ctx context.Context, handler http.Handler, authToken, domain string) error {
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTH_TOKEN")
	}
	if authToken == "" {
		logger.Warn().Msg("ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return nil
	}

	logger.Info().Msg("starting ngrok tunnel")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		logger.Info().Str("domain", domain).Msg("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		logger.Error().Err(err).Msg("failed to start ngrok tunnel")
		return nil
	}
	defer tun.Close()

	logger.Info().Str("url", tun.URL()).Msg("ngrok tunnel established")

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed && ctx.Err() == nil {
		logger.Error().Err(err).Msg("ngrok server error")
	}
	logger.Info().Msg("ngrok tunnel closed")
	return nil
}

// runStdioMCP runs an MCP stdio server. It tries to reuse an external API at
// the configured host and port; if unavailable, it starts a minimal internal
// HTTP API bound to a random loopback port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	// Stdout belongs to the MCP protocol; keep logs on stderr
	log.Configure(log.Config{Level: cmd.String("log-level")})

	externalURL := fmt.Sprintf("http://%s:%d", cmd.String("host"), cmd.Int("port"))
	logger.Info().Str("url", externalURL).Msg("checking for external API server")

	var baseURL string
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/healthz")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		logger.Info().Str("url", externalURL).Msg("external API server found, using it for MCP")
		baseURL = externalURL
	} else {
		logger.Info().Msg("no external API server found, starting internal HTTP server")

		svcs, err := initializeServices(ctx, cmd.String("config-dir"), cmd.String("sessions-dir"), cmd.String("db-path"))
		if err != nil {
			return err
		}
		if svcs.archive != nil {
			defer svcs.archive.Close()
		}

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()
		logger.Info().Str("addr", internalAddr).Msg("starting internal HTTP server for MCP stdio")

		apiServer := api.NewServer(svcs.match, svcs.hub, svcs.archive)
		httpServer := &http.Server{Handler: apiServer}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("internal HTTP server error")
			}
		}()

		// Give the listener a moment before the first tool call
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	logger.Info().Str("base_url", baseURL).Msg("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// runPlay plays one local match between configured agents in the terminal
func runPlay(ctx context.Context, cmd *cli.Command) error {
	log.Configure(log.Config{Level: cmd.String("log-level"), Console: true})

	configManager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager()
	matchService := service.NewMatchService(sessionManager, configManager, nil, nil)

	match, err := matchService.CreateMatch(ctx, cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	agents, err := buildAgents(cmd.String("agents"), cmd.String("model"), match.GameConfig)
	if err != nil {
		return err
	}

	runner := agent.NewRunner(matchService, os.Stdout)
	for seat, a := range agents {
		runner.Seat(seat, a)
	}

	if _, err := runner.Run(ctx, match.ID); err != nil {
		return err
	}
	return nil
}

// buildAgents maps the comma-separated kinds onto the config's seats in order
func buildAgents(kinds, model string, gameConfig *engine.GameConfig) (map[int]agent.Agent, error) {
	parts := strings.Split(kinds, ",")
	if len(parts) != len(gameConfig.Seats) {
		return nil, fmt.Errorf("config %q has %d seats but %d agents were given", gameConfig.Name, len(gameConfig.Seats), len(parts))
	}

	agents := make(map[int]agent.Agent, len(parts))
	for i, kind := range parts {
		seat := i + 1
		name := gameConfig.Seats[i].Name

		switch strings.TrimSpace(kind) {
		case "human":
			agents[seat] = agent.NewHuman(name, os.Stdin, os.Stdout)
		case "random":
			agents[seat] = agent.NewRandom(name, rand.New(rand.NewSource(time.Now().UnixNano())))
		case "greedy":
			agents[seat] = agent.NewGreedy(name)
		case "openai":
			a, err := agent.NewOpenAIAgent(name, model)
			if err != nil {
				return nil, err
			}
			agents[seat] = a
		default:
			return nil, fmt.Errorf("unknown agent kind %q (want human, random, greedy, or openai)", kind)
		}
	}
	return agents, nil
}

// runValidate validates every configuration file in the config directory
func runValidate(ctx context.Context, cmd *cli.Command) error {
	results, allValid, err := validate.Dir(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	for _, result := range results {
		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)
		if result.Valid {
			fmt.Println("VALID")
			for _, note := range result.Notes {
				fmt.Println("  " + note)
			}
		} else {
			fmt.Println("INVALID")
			for _, e := range result.Errors {
				fmt.Println("  - " + e)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if !allValid {
		return fmt.Errorf("some configurations have errors")
	}
	fmt.Println("All configurations are valid")
	return nil
}
