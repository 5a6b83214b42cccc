package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-moles/internal/platform/tui"
	"github.com/vovakirdan/tui-moles/internal/storage"
)

var (
	flagLimit int
	flagBest  bool
	flagPlain bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show past results",
	Long: `Display recorded games, newest first, with overall stats.

On a terminal the results open in a browser (tab switches between recent
and best games). Use --plain, or pipe the output, for a text table.

Examples:
  moles scores
  moles scores --best --limit 5
  moles scores --plain > results.txt`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagBest, "best", false, "Order by hits instead of date")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text table instead of the browser")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	stats, err := store.GetStats()
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		height := 24
		if _, h, termErr := term.GetSize(fd); termErr == nil {
			height = h
		}
		if err := tui.RunScores(store, stats, flagLimit, height, flagBest); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error running results browser: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var entries []storage.ResultEntry
	if flagBest {
		entries, err = store.TopResults(flagLimit)
	} else {
		entries, err = store.RecentResults(flagLimit)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	title := "Recent Games"
	if flagBest {
		title = "Best Games"
	}
	fmt.Println(title)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'moles play 5 5 25 3 500 1500 700 900' to record the first one!")
		return
	}

	columns := tui.ResultColumns()
	printRow(columns, headerRow(columns))
	for _, row := range tui.ResultRows(entries) {
		printRow(columns, row)
	}

	fmt.Println()
	fmt.Println(tui.StatsLine(*stats))
}

func headerRow(columns []table.Column) table.Row {
	row := make(table.Row, len(columns))
	for i, c := range columns {
		row[i] = c.Title
	}
	return row
}

func printRow(columns []table.Column, row table.Row) {
	for i, cell := range row {
		fmt.Printf("  %-*s", columns[i].Width, cell)
	}
	fmt.Println()
}
