package cli

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"trivia-gauntlet/internal/app"
	"trivia-gauntlet/internal/config"
	"trivia-gauntlet/internal/domain"
	"trivia-gauntlet/internal/generate"
	"trivia-gauntlet/internal/infra/memory"
	pgstore "trivia-gauntlet/internal/infra/postgres"
	redisstore "trivia-gauntlet/internal/infra/redis"
	transport "trivia-gauntlet/internal/transport/http"
)

// NewServeCmd builds the CLI subcommand to start the quiz API server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the quiz generation and leaderboard server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	store, err := buildScoreStore(ctx, cfg)
	if err != nil {
		return err
	}
	scores := app.NewScoreService(store, cfg.Leaderboard.Limit)

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = cfg.Gemini.APIKey
	}
	var generator generate.Generator
	if apiKey != "" {
		generator = generate.NewGeminiGenerator(cfg.Gemini.URL, cfg.Gemini.Model, apiKey)
	} else {
		log.Printf("GEMINI_API_KEY not set, serving sample decks")
		generator = generate.NewStaticGenerator(sampleDecks(), sampleGeneralDeck())
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	server := transport.New(":"+finalPort, logger, scores, generator, cfg.Server.StaticDir)

	go func() {
		log.Printf("starting trivia gauntlet server on :%s", finalPort)
		if err := server.Run(ctx); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildScoreStore picks the leaderboard backend: Postgres when configured,
// then Redis, then process memory.
func buildScoreStore(ctx context.Context, cfg config.Config) (app.ScoreStore, error) {
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		return pgstore.NewScoreStore(pool), nil
	}
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redisstore.NewScoreStore(client, config.Duration(cfg.Redis.TTL, 0)), nil
	}
	return memory.NewScoreStore(), nil
}

// sampleDecks provides small category decks so the server is playable
// without a generation backend.
func sampleDecks() map[string]domain.Deck {
	return map[string]domain.Deck{
		"Sports": {
			{
				Question: "How many players are on the field per side in a soccer match?",
				Options:  []string{"9", "10", "11", "12"},
				Answer:   "11",
			},
			{
				Question: "In which sport is the Ryder Cup contested?",
				Options:  []string{"Tennis", "Golf", "Rowing", "Cricket"},
				Answer:   "Golf",
			},
		},
		"Movies": {
			{
				Question: "Who directed Jurassic Park (1993)?",
				Options:  []string{"Steven Spielberg", "James Cameron", "Ridley Scott", "George Lucas"},
				Answer:   "Steven Spielberg",
			},
		},
		"History": {
			{
				Question: "In what year did the Berlin Wall fall?",
				Options:  []string{"1987", "1989", "1991", "1993"},
				Answer:   "1989",
			},
		},
		"Science": {
			{
				Question: "What is the chemical symbol for gold?",
				Options:  []string{"Go", "Gd", "Au", "Ag"},
				Answer:   "Au",
			},
		},
	}
}

func sampleGeneralDeck() domain.Deck {
	return domain.Deck{
		{
			Question: "What is the largest planet in the solar system?",
			Options:  []string{"Earth", "Saturn", "Jupiter", "Neptune"},
			Answer:   "Jupiter",
		},
		{
			Question: "Which language has the most native speakers?",
			Options:  []string{"English", "Mandarin Chinese", "Spanish", "Hindi"},
			Answer:   "Mandarin Chinese",
		},
	}
}
