// moles is a terminal whack-a-mole game.
//
// Usage:
//
//	moles play W H total limit hideMin hideMax outMin outMax  - Play a game
//	moles scores                                               - Show past results
//	moles rules                                                - Print the effective rules
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible timing
//	--db <path>     - Set database path (default: ~/.moles/results.db)
//	--config <path> - Load rules from a YAML file
//	--log <path>    - Write a debug log while playing
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "moles",
	Short: "Whack-a-Mole in your terminal",
	Long: `Moles pop out of a lettered board; press a mole's letter while it is
out to whack it. Every mole runs on its own and only a limited number
may be out at once.

Available commands:
  play     - Play a game
  scores   - View past results
  rules    - Print the effective rules

Examples:
  moles play 5 5 25 3 500 1500 700 900
  moles scores --best
  moles rules --config ./my-rules.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.moles/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Path to log file (default: no logging)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(rulesCmd)
}

// newLogger opens the log file named by --log. Without one, logs are
// discarded: the board owns the terminal while a game runs.
func newLogger(path string) (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "moles",
	})
	if path != "" {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}
