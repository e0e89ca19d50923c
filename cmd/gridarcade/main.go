// gridarcade is a deterministic grid arcade: five MinAtar-style games
// playable in the terminal, locally or over SSH.
//
// Usage:
//
//	gridarcade list              - List available games
//	gridarcade play <game>       - Play a game
//	gridarcade menu              - Start menu to pick games interactively
//	gridarcade rollout <game>    - Run a headless random-policy rollout
//	gridarcade serve             - Start SSH server for remote play
//	gridarcade scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 8)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.gridarcade/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/grid-arcade/internal/games/asterix"
	_ "github.com/vovakirdan/grid-arcade/internal/games/breakout"
	_ "github.com/vovakirdan/grid-arcade/internal/games/freeway"
	_ "github.com/vovakirdan/grid-arcade/internal/games/seaquest"
	_ "github.com/vovakirdan/grid-arcade/internal/games/spaceinvaders"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridarcade",
	Short: "Grid Arcade - Deterministic arcade games in your terminal",
	Long: `Grid Arcade is a terminal gaming platform built on small deterministic
grid simulations. Every run is reproducible from its seed.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  rollout  - Run a headless random-policy rollout
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  gridarcade list
  gridarcade play breakout
  gridarcade play freeway --seed 42
  gridarcade rollout seaquest --steps 500 --verify
  gridarcade serve --ssh :2222
  gridarcade scores breakout`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 8, "Tick rate (simulation steps per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gridarcade/scores.db", "Path to scores database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(rolloutCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
