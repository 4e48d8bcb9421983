package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"trivia-gauntlet/internal/config"
	"trivia-gauntlet/internal/domain"
	"trivia-gauntlet/internal/game"
	"trivia-gauntlet/internal/leaderboard"
	"trivia-gauntlet/internal/quizgen"
)

// NewPlayCmd builds the CLI subcommand for a terminal game session.
func NewPlayCmd(configPath *string) *cobra.Command {
	var serverURL string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the trivia gauntlet in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				cfg = config.Config{}
			}
			base := serverURL
			if base == "" {
				base = cfg.Client.BaseURL
			}
			if base == "" {
				base = "http://localhost:8080"
			}
			return runPlay(cmd.Context(), base, cfg)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "base URL of the quiz server")
	return cmd
}

// runPlay is a thin renderer: it observes controller snapshots and forwards
// line input as events. All game decisions live in the controller.
func runPlay(ctx context.Context, baseURL string, cfg config.Config) error {
	decks := quizgen.NewClient(baseURL)
	scores := leaderboard.NewClient(baseURL)
	controller := game.New(decks, scores)
	controller.SetPauses(
		config.Duration(cfg.Game.AnswerPause, time.Second),
		config.Duration(cfg.Game.LevelPause, 2*time.Second),
		config.Duration(cfg.Game.FetchPause, 1500*time.Millisecond),
	)

	updates, cancel := controller.Subscribe()
	defer cancel()
	stdin := bufio.NewScanner(os.Stdin)

	fmt.Println("=== TRIVIA GAUNTLET ===")
	controller.StartGame()

	var (
		session       uuid.UUID
		levelShown    bool
		gameOverShown bool
		lastLabel     string
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			if snap.Session != session {
				session = snap.Session
				levelShown, gameOverShown, lastLabel = false, false, ""
			}

			if snap.Phase == domain.PhaseLevelTransition {
				if !levelShown {
					fmt.Println("\nLEVEL COMPLETE!")
					levelShown = true
				}
				continue
			}
			levelShown = false

			if snap.Fetching {
				if snap.LevelLabel != "" && snap.LevelLabel != lastLabel {
					fmt.Printf("Generating %s...\n", snap.LevelLabel)
					lastLabel = snap.LevelLabel
				}
				continue
			}

			switch snap.Phase {
			case domain.PhaseAwaitingTopic:
				for {
					fmt.Print("Enter a topic to start: ")
					if !stdin.Scan() {
						return nil
					}
					err := controller.SubmitTopic(ctx, stdin.Text())
					if errors.Is(err, domain.ErrInvalidInput) {
						fmt.Println("Please enter a topic to start!")
						continue
					}
					break
				}

			case domain.PhaseAwaitingCategory:
				fmt.Printf("\nScore: %d. Pick your next category:\n", snap.Score)
				for i, category := range snap.Remaining {
					fmt.Printf("  %d) %s\n", i+1, category)
				}
				for {
					fmt.Print("Category: ")
					if !stdin.Scan() {
						return nil
					}
					choice := pickOption(stdin.Text(), snap.Remaining)
					err := controller.SelectCategory(ctx, choice)
					if errors.Is(err, domain.ErrInvalidCategory) {
						fmt.Println("That category is not available.")
						continue
					}
					break
				}

			case domain.PhaseInRound:
				if snap.Question == nil {
					continue
				}
				q := snap.Question
				fmt.Printf("\n[%s] Score %d, question %d of %d\n%s\n",
					snap.LevelLabel, snap.Score, snap.DeckPosition+1, snap.DeckSize, q.Question)
				for i, opt := range q.Options {
					fmt.Printf("  %d) %s\n", i+1, opt)
				}
				for {
					fmt.Print("Your answer: ")
					if !stdin.Scan() {
						return nil
					}
					selected := pickOption(stdin.Text(), q.Options)
					err := controller.AnswerQuestion(selected)
					if errors.Is(err, domain.ErrInvalidSelection) {
						fmt.Println("Pick one of the listed options.")
						continue
					}
					if err == nil && selected == q.Answer {
						fmt.Println("Correct!")
					}
					break
				}

			case domain.PhaseEnded:
				if snap.CorrectAnswer != "" && !gameOverShown {
					fmt.Printf("\nGame Over! The correct answer was: %s\n", snap.CorrectAnswer)
					gameOverShown = true
				}
				if snap.Failure != "" {
					fmt.Printf("Error: %s\n", snap.Failure)
				}
				if snap.CanSubmit {
					fmt.Printf("You scored %d. ", snap.Score)
					fmt.Print("Enter your name for the leaderboard (or press enter to skip): ")
					if !stdin.Scan() {
						return nil
					}
					name := strings.TrimSpace(stdin.Text())
					if name != "" {
						if err := controller.SubmitScore(ctx, name); err == nil {
							continue
						}
					}
				}
				if snap.Submitted {
					printLeaderboard(ctx, scores)
				}
				if !promptPlayAgain(stdin) {
					return nil
				}
				controller.StartGame()
			}
		}
	}
}

// pickOption resolves a 1-based index into options, or returns the raw
// input so exact text still works.
func pickOption(input string, options []string) string {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return input
}

func printLeaderboard(ctx context.Context, scores *leaderboard.Client) {
	entries, err := scores.Top(ctx)
	if err != nil {
		fmt.Printf("Could not load the leaderboard: %v\n", err)
		return
	}
	fmt.Println("\n--- LEADERBOARD ---")
	for i, entry := range entries {
		fmt.Printf("%2d. %-20s %4d pts  %8.1fs\n", i+1, entry.Name, entry.Score, entry.Time)
	}
}

func promptPlayAgain(stdin *bufio.Scanner) bool {
	fmt.Print("Play again? [y/N]: ")
	if !stdin.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(stdin.Text()))
	return answer == "y" || answer == "yes"
}
