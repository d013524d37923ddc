package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/platform/tui"
	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresPlain bool
	flagScoresReset bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top recorded scores.

By default an interactive table opens; use --plain for text output
suitable for scripts.

Examples:
  tetris scores
  tetris scores --plain
  tetris scores --plain --limit 25
  tetris scores --reset`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show with --plain")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print scores to stdout instead of the interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Delete all recorded scores")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresReset {
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All scores cleared.")
		return
	}

	if flagScoresPlain {
		if err := printScores(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Interactive leaderboard
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunScoreboard(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printScores writes a plain-text leaderboard to stdout.
func printScores(store *storage.Store) error {
	scores, err := store.TopScores(flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - Tetris")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-12s  %s\n", "Rank", "Score", "Level", "Lines", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-12s  %s\n", "----", "-----", "-----", "-----", "------", "----")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-6d  %-6d  %-12s  %s\n",
			i+1, entry.Score, entry.Level, entry.Lines, entry.Player, dateStr)
	}

	stats, err := store.GetStats()
	if err == nil && stats.GamesPlayed > 0 {
		fmt.Println()
		fmt.Printf("Games played: %d   Best: %d   Total lines: %d\n",
			stats.GamesPlayed, stats.HighScore, stats.TotalLines)
	}

	return nil
}
