package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quiz-api/internal/app"
	"quiz-api/internal/config"
	"quiz-api/internal/infra/memory"
	infrapg "quiz-api/internal/infra/postgres"
	infraredis "quiz-api/internal/infra/redis"
	transport "quiz-api/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz API server",
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

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var repo app.Repository = memory.NewRepository()
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		repo = infrapg.NewRepository(pool)
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var questions app.QuestionSource
	if redisClient != nil {
		questions = infraredis.NewQuestionCache(redisClient, repo, quizTTL)
	} else {
		questions = memory.NewQuestionCache(repo, quizTTL)
	}

	perSecond := config.PositiveOr(cfg.RateLimit.PerSecond, 5)
	perMinute := config.PositiveOr(cfg.RateLimit.PerMinute, 100)
	var limiter transport.Limiter
	if redisClient != nil {
		limiter = infraredis.NewRateLimiter(redisClient, perSecond, perMinute)
	} else {
		limiter = memory.NewRateLimiter(perSecond, perMinute)
	}

	origins := cfg.CORS.Origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	service := app.NewQuizService(repo, questions)
	handler := transport.NewHandler(service)
	router := transport.NewRouter(handler, limiter, origins)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz API on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
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
