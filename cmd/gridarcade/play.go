package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/games/asterix"
	"github.com/vovakirdan/grid-arcade/internal/games/breakout"
	"github.com/vovakirdan/grid-arcade/internal/games/freeway"
	"github.com/vovakirdan/grid-arcade/internal/games/seaquest"
	"github.com/vovakirdan/grid-arcade/internal/games/spaceinvaders"
	"github.com/vovakirdan/grid-arcade/internal/platform/tui"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

var (
	flagConfig  string
	flagRows    int
	flagCols    int
	flagTier    int
	flagNoTrail bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD - Move
  Space       - Shoot (where the game supports it)
  R           - Restart (after game over)
  Esc         - Back (in the menu flow)
  Q/Ctrl+C    - Quit

Examples:
  gridarcade play breakout
  gridarcade play freeway --seed 42
  gridarcade play seaquest --rows 12 --cols 12
  gridarcade play asterix --tier 2
  gridarcade play breakout --config ./my-breakout.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().IntVar(&flagRows, "rows", 10, "Board rows")
	playCmd.Flags().IntVar(&flagCols, "cols", 10, "Board columns")
	playCmd.Flags().IntVar(&flagTier, "tier", 0, "Starting difficulty tier")
	playCmd.Flags().BoolVar(&flagNoTrail, "no-trail", false, "Collapse motion trails to plain presence")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'gridarcade list' to see available games.")
		os.Exit(1)
	}

	// Pass the custom config path to the game before creation.
	switch gameID {
	case "asterix":
		asterix.SetConfigPath(flagConfig)
	case "breakout":
		breakout.SetConfigPath(flagConfig)
	case "freeway":
		freeway.SetConfigPath(flagConfig)
	case "seaquest":
		seaquest.SetConfigPath(flagConfig)
	case "spaceinvaders":
		spaceinvaders.SetConfigPath(flagConfig)
	}

	cfg := core.Config{
		Rows:    flagRows,
		Cols:    flagCols,
		NoTrail: flagNoTrail,
		Seed:    flagSeed,
		Tier:    flagTier,
	}

	// Each board cell renders two characters wide; warn if the terminal
	// cannot fit the board plus the chrome around it.
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if w < cfg.Cols*2+4 || h < cfg.Rows+6 {
			fmt.Fprintf(os.Stderr, "Warning: terminal %dx%d is small for a %dx%d board\n",
				w, h, cfg.Rows, cfg.Cols)
		}
	}

	env, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(env, store, cfg, flagFPS)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
