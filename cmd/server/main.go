package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redis "github.com/redis/go-redis/v9"

	emailPkg "powerpump/internal/adapters/email"
	web "powerpump/internal/adapters/http"
	"powerpump/internal/adapters/metrics"
	"powerpump/internal/adapters/storage"
	attendanceStore "powerpump/internal/adapters/storage/attendance"
	memberStore "powerpump/internal/adapters/storage/member"
	"powerpump/internal/application/orchestrators"
	"powerpump/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server_event", "event", "startup_failed", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.NewLogger())

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(reg)

	backend, health, closer, err := openBackend(cfg, recorder)
	if err != nil {
		return err
	}
	defer closer.Close()

	stores := &web.Stores{
		MemberStore:     memberStore.NewCollectionStore(backend),
		AttendanceStore: attendanceStore.NewCollectionStore(backend),
	}

	// Demo members for development only
	if !cfg.IsProduction() {
		n, err := orchestrators.ExecuteSeedDemoMembers(context.Background(), orchestrators.AddMemberDeps{MemberStore: stores.MemberStore})
		if err != nil {
			return fmt.Errorf("seed demo members: %w", err)
		}
		if n > 0 {
			slog.Info("seed_event", "event", "demo_members_loaded", "count", n)
		}
	}

	admin, generated, err := cfg.AdminAccount()
	if err != nil {
		return err
	}
	if generated != "" {
		slog.Warn("auth_event", "event", "generated_admin_password",
			"email", admin.Email, "password", generated,
			"detail", "set GYM_ADMIN_PASSWORD_HASH to keep a stable credential")
	}

	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		slog.Info("email_event", "event", "sender_configured", "provider", "resend")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			slog.Warn("email_event", "event", "sender_disabled", "detail", "GYM_RESEND_KEY is not set; welcome emails are not delivered")
		} else {
			slog.Info("email_event", "event", "sender_configured", "provider", "noop")
		}
	}

	csrfKey, err := cfg.CSRFKeyBytes()
	if err != nil {
		return err
	}

	handler, stop, err := web.NewMux(stores, web.Options{
		Verifier:    &admin,
		Mailer:      emailPkg.NewWelcomeMailer(sender, cfg.EmailFrom),
		Metrics:     recorder,
		Health:      health,
		Location:    loc,
		CSRFKey:     csrfKey,
		Production:  cfg.IsProduction(),
		SlowRequest: cfg.SlowRequest(),
	})
	if err != nil {
		return err
	}
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_event", "event", "listening", "version", version, "addr", cfg.Addr, "env", cfg.Env, "store", cfg.Store, "timezone", loc.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("server_event", "event", "shutting_down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openBackend builds the configured collection backend.
// The returned closer releases the connection; health is nil when the backend cannot be pinged.
func openBackend(cfg config.Config, recorder *metrics.Recorder) (storage.Backend, storage.HealthChecker, io.Closer, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, nil, err
		}
		timed := storage.NewTimedDB(db, recorder, cfg.SlowQuery())
		b := storage.NewSQLiteBackend(timed)
		slog.Info("storage_event", "event", "opened", "backend", "sqlite", "path", cfg.DBPath)
		return b, b, timed, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, nil, fmt.Errorf("redis %s unreachable: %w", cfg.RedisAddr, err)
		}
		b := storage.NewRedisBackend(rdb, cfg.RedisPrefix, recorder)
		slog.Info("storage_event", "event", "opened", "backend", "redis", "addr", cfg.RedisAddr)
		return b, b, rdb, nil

	default:
		slog.Warn("storage_event", "event", "opened", "backend", "memory", "detail", "data is lost on restart")
		return storage.NewMemoryBackend(), nil, nopCloser{}, nil
	}
}
