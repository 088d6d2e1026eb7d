package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "formae/docs"
	"formae/internal/config"
	"formae/internal/domain/announcement"
	"formae/internal/domain/event"
	"formae/internal/domain/finance"
	"formae/internal/domain/poll"
	"formae/internal/domain/user"
	"formae/internal/domain/vote"
	api "formae/internal/http"
	"formae/internal/metrics"
	"formae/internal/platform/database"
	jwtpkg "formae/internal/platform/jwt"
	"formae/internal/repository/postgres"
	"formae/internal/worker"
)

// @title           Formae API
// @version         1.0
// @description     Class-association backend: polls, announcements, events and class funds
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	api.SetLogger(logger)

	metrics.Register()

	db, err := database.NewPostgres(cfg.DB_DSN)
	if err != nil {
		logger.Error("db connect error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepo(db)
	pollRepo := postgres.NewPollRepo(db)
	voteRepo := postgres.NewVoteRepo(db)
	annRepo := postgres.NewAnnouncementRepo(db)
	eventRepo := postgres.NewEventRepo(db)
	finRepo := postgres.NewFinanceRepo(db)

	userSvc := user.NewService(userRepo)
	pollSvc := poll.NewService(pollRepo)
	voteSvc := vote.NewService(voteRepo)
	annSvc := announcement.NewService(annRepo)
	eventSvc := event.NewService(eventRepo)
	finSvc := finance.NewService(finRepo)

	jwtMgr := jwtpkg.NewManager(cfg.JWTSecret, cfg.JWTIssuer)

	eventCh := make(chan worker.ChangeEvent, 100)
	notifier := worker.NewNotifier(eventCh, logger)

	router := api.NewRouter(userSvc, pollSvc, voteSvc, annSvc, eventSvc, finSvc, jwtMgr, cfg.TokenTTL, eventCh, db)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go notifier.Run(ctx)

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "err", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
