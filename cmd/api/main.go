package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/sproutbank/sprout/internal/challenge"
	challengeStore "github.com/sproutbank/sprout/internal/challenge/store"
	"github.com/sproutbank/sprout/internal/config"
	"github.com/sproutbank/sprout/internal/contribution"
	contributionStore "github.com/sproutbank/sprout/internal/contribution/store"
	"github.com/sproutbank/sprout/internal/database"
	"github.com/sproutbank/sprout/internal/events"
	"github.com/sproutbank/sprout/internal/goal"
	goalStore "github.com/sproutbank/sprout/internal/goal/store"
	sproutHttp "github.com/sproutbank/sprout/internal/http"
	accountHandler "github.com/sproutbank/sprout/internal/http/account"
	"github.com/sproutbank/sprout/internal/http/auth"
	challengeHandler "github.com/sproutbank/sprout/internal/http/challenge"
	contributionHandler "github.com/sproutbank/sprout/internal/http/contribution"
	goalHandler "github.com/sproutbank/sprout/internal/http/goal"
	matchingHandler "github.com/sproutbank/sprout/internal/http/matching"
	statementHandler "github.com/sproutbank/sprout/internal/http/statement"
	"github.com/sproutbank/sprout/internal/matching"
	matchingStore "github.com/sproutbank/sprout/internal/matching/store"
	"github.com/sproutbank/sprout/internal/statement"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var publisher contribution.Publisher

	rabbit, err := events.NewRabbitPublisher(cfg.RabbitMQ.URL)
	if err != nil {
		slog.Warn("broker unavailable, progress events will be logged only", "error", err)

		publisher = events.LogPublisher{}
	} else {
		defer rabbit.Close()

		publisher = rabbit
	}

	var (
		goalService         = goal.NewService(goalStore.New(db))
		matchingService     = matching.NewService(matchingStore.New(db))
		challengeService    = challenge.NewService(challengeStore.New(db), goalService)
		contributionService = contribution.NewService(contributionStore.New(db), publisher, cfg.Contribution.Timeout)
		statementService    = statement.NewService(goalService)
	)

	var (
		authMW        = auth.NewMiddleware(cfg.Auth.JWTSecret)
		goalH         = goalHandler.NewHandler(goalService)
		contributionH = contributionHandler.NewHandler(contributionService)
		matchingH     = matchingHandler.NewHandler(matchingService)
		challengeH    = challengeHandler.NewHandler(challengeService)
		statementH    = statementHandler.NewHandler(statementService, goalService)
		accountH      = accountHandler.NewHandler(goalService)
	)

	router := sproutHttp.New(authMW, goalH, contributionH, matchingH, challengeH, statementH, accountH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
