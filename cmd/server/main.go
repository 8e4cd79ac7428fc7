package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"linguachat/internal/app"
	"linguachat/internal/config"
	"linguachat/internal/ratelimit"
	"linguachat/internal/server"
	"linguachat/internal/util"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	sessionTTL, err := config.ParseSessionTTL(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("failed to parse session TTL: %v", err)
	}
	historyTTL, err := config.ParseHistoryTTL(cfg.HistoryTTL)
	if err != nil {
		log.Fatalf("failed to parse history TTL: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	appCore, err := app.New(app.Config{
		DatabaseURL:     cfg.DatabaseURL,
		RedisAddr:       cfg.RedisAddr,
		RedisPassword:   cfg.RedisPassword,
		JWTSecret:       cfg.JWTSecret,
		SessionTTL:      sessionTTL,
		GeminiAPIKey:    cfg.GeminiAPIKey,
		GenerationModel: cfg.GenerationModel,
		HistoryLimit:    cfg.HistoryLimit,
		HistoryTTL:      historyTTL,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	registerLimiter := newLimiter(cfg, "linguachat:ratelimit:register", cfg.RegisterRateLimitPerMinute)
	loginLimiter := newLimiter(cfg, "linguachat:ratelimit:login", cfg.LoginRateLimitPerMinute)

	httpServer := server.New(server.Config{
		App:             appCore,
		CORSOrigin:      cfg.CORSOrigin,
		RegisterLimiter: registerLimiter,
		LoginLimiter:    loginLimiter,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("chat server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}

// newLimiter builds a Redis fixed-window limiter, nil when the per-minute
// limit is 0 or Redis is not configured.
func newLimiter(cfg config.FileConfig, prefix string, perMinute int) *ratelimit.FixedWindowLimiter {
	if perMinute <= 0 || cfg.RedisAddr == "" {
		return nil
	}
	limiter, err := ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, prefix, perMinute, time.Minute)
	if err != nil {
		log.Fatalf("failed to init rate limiter: %v", err)
	}
	return limiter
}
