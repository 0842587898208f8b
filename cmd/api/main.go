package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "github.com/Shriprasad-P/Matrix-abacus-site/internal/adapters/http_server"
	"github.com/Shriprasad-P/Matrix-abacus-site/internal/adapters/observability"
	redisad "github.com/Shriprasad-P/Matrix-abacus-site/internal/adapters/redis"
	"github.com/Shriprasad-P/Matrix-abacus-site/internal/adapters/smtp"
	"github.com/Shriprasad-P/Matrix-abacus-site/internal/app"
	"github.com/Shriprasad-P/Matrix-abacus-site/internal/domain"
	"github.com/Shriprasad-P/Matrix-abacus-site/internal/shared"
	filestore "github.com/Shriprasad-P/Matrix-abacus-site/internal/storage/file"
)

func main() {
	_ = godotenv.Load() // fall back to process env when no .env is present

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	if dir := filepath.Dir(cfg.ReviewsFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("create reviews directory failed")
		}
	}

	// deps
	store := filestore.New(cfg.ReviewsFile)
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		log.Info().Str("addr", cfg.RedisAddr).Msg("review cache enabled")
	}
	mailer := smtp.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, cfg.MailTo)
	reviews := app.NewReviewService(store, cache, mailer, cfg.CacheTTL)
	contact := app.NewContactService(mailer)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Reviews:     reviews,
		Contact:     contact,
		SubmitRPS:   cfg.SubmitRPS,
		SubmitBurst: cfg.SubmitBurst,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Str("file", cfg.ReviewsFile).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("shutdown complete")
}
