package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tower/internal/platform/tui"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

const scoresGameID = "tower"

var (
	flagScoresLimit int
	flagScoresUser  string
	flagScoresBoard bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best scores recorded for manual games.

Examples:
  tower scores
  tower scores --limit 25
  tower scores --user ada
  tower scores --board`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresUser, "user", "", "Also show this player's personal best")
	scoresCmd.Flags().BoolVar(&flagScoresBoard, "board", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresBoard {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, scoresGameID, "Tower", flagScoresUser, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scores, err := store.TopScores(scoresGameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Tower")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tower play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-7s  %-5s  %s\n", "Rank", "Player", "Score", "Level", "When")
	fmt.Printf("  %-4s  %-16s  %-7s  %-5s  %s\n", "----", "------", "-----", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-16s  %-7s  %-5d  %s\n",
			i+1, entry.Username, humanize.Comma(int64(entry.Score)), entry.Level, humanize.Time(entry.CreatedAt))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(scoresGameID); err == nil {
		fmt.Printf("Best: %s  Games: %s  Players: %d  Highest level: %d  Last played: %s\n",
			humanize.Comma(int64(stats.HighScore)), humanize.Comma(int64(stats.GamesCount)), stats.Players, stats.BestLevel, humanize.Time(stats.LastPlayed))
	}
	if flagScoresUser != "" {
		if best, err := store.PersonalBest(scoresGameID, flagScoresUser); err == nil {
			fmt.Printf("Personal best for %s: %s\n", flagScoresUser, humanize.Comma(int64(best)))
		}
	}
}
