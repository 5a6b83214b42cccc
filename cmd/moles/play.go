package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-moles/internal/config"
	"github.com/vovakirdan/tui-moles/internal/game"
	"github.com/vovakirdan/tui-moles/internal/platform/tui"
	"github.com/vovakirdan/tui-moles/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play " + config.Usage(),
	Short: "Play a game",
	Long: `Start a game on a boardWidth x boardHeight board.

Arguments (times in milliseconds):
  boardWidth, boardHeight   - Board size; at most 26 cells in total
  moleTotal                 - Number of moles (clamped to the cell count)
  moleLimit                 - Max moles out at the same time
  hideTimeMin, hideTimeMax  - How long a mole stays hidden
  outTimeMin, outTimeMax    - How long a mole stays out

Controls:
  a-z        - Whack the mole in that cell
  Esc/Ctrl+C - Quit

Win with 100 hits, lose at 30 misses (see 'moles rules').

Examples:
  moles play 5 5 25 3 500 1500 700 900
  moles play 3 3 9 1 200 400 600 800 --seed 42`,
	Args: cobra.ArbitraryArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	rules, err := config.LoadRules(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	params, err := config.ParseArgs(args, rules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Usage: moles play %s\n", config.Usage())
		os.Exit(1)
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintln(os.Stderr, "Error: moles play needs an interactive terminal")
		os.Exit(1)
	}
	rows, cols := game.FrameSize(params, rules)
	if w, h, termErr := term.GetSize(fd); termErr == nil && (w < cols || h < rows) {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the board needs %dx%d\n", w, h, cols, rows)
	}

	logger, closeLog, err := newLogger(flagLogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res, err := play(params, rules, logger)
	closeLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d hits, %d misses in %s\n",
		storage.OutcomeOf(res.Status), res.Counters.Hits, res.Counters.Misses, res.Duration.Round(time.Millisecond))
}

// play runs one game on the terminal. The surface is shut down before it
// returns, so errors can be printed on a restored terminal.
func play(params config.Params, rules config.Rules, logger *log.Logger) (game.Result, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []game.Option{
		game.WithRand(game.NewRand(flagSeed)),
		game.WithLogger(logger),
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - game still works
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		logger.Warn("results will not be saved", "error", err)
	} else {
		defer store.Close()
		opts = append(opts, game.WithResultSaver(store))
	}

	rows, cols := game.FrameSize(params, rules)
	surface := tui.NewSurface(cols, rows, tea.WithoutSignalHandler())

	g, err := game.New(params, rules, surface, opts...)
	if err != nil {
		return game.Result{}, err
	}

	if err := surface.Init(); err != nil {
		return game.Result{}, fmt.Errorf("cannot start display: %w", err)
	}
	defer func() {
		if shutErr := surface.Shutdown(); shutErr != nil {
			logger.Warn("display shutdown failed", "error", shutErr)
		}
	}()

	res, err := g.Run(ctx)
	if err != nil {
		return res, err
	}

	if !res.Quit() && ctx.Err() == nil {
		if err := g.AwaitDismiss(ctx); err != nil && !errors.Is(err, tui.ErrClosed) {
			return res, err
		}
	}
	return res, nil
}
