package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/games/tower"
	"github.com/vovakirdan/tui-tower/internal/platform/tui"
	"github.com/vovakirdan/tui-tower/internal/registry"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

var (
	flagDemo     bool
	flagUsername string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the game. It opens in attract mode with the autopilot
playing; press space or click to take over.

Controls:
  Space/Enter/Click - Cut the moving block (or start a game)
  R                 - Restart
  Ctrl+S            - Save a screenshot to ~/.arcade/screenshots
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slower start
  normal - Configured speed
  hard   - Faster start
  fixed  - Speed never increases

Examples:
  tower play
  tower play --user ada
  tower play --demo --seed 42
  tower play --config ./my-tower.yaml --log-file /tmp/tower.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagDemo, "demo", false, "Watch the autopilot play; no input, no scores")
	playCmd.Flags().StringVar(&flagUsername, "user", "", "Player name (prompted when empty)")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameID := "tower"
	if flagDemo {
		gameID = "tower-demo"
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logFile, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "tower")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	tower.SetLogger(logger)

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Username: flagUsername,
	}
	if flagDemo && cfg.Username == "" {
		cfg.Username = tower.DefaultUsername
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
