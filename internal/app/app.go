// Package app wires configuration, storage, providers and the HTTP surface
// into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/lingua-tutor-backend/internal/adapter/postgres"
	courserepo "github.com/heartmarshall/lingua-tutor-backend/internal/adapter/postgres/course"
	progressrepo "github.com/heartmarshall/lingua-tutor-backend/internal/adapter/postgres/progress"
	sessionrepo "github.com/heartmarshall/lingua-tutor-backend/internal/adapter/postgres/session"
	userrepo "github.com/heartmarshall/lingua-tutor-backend/internal/adapter/postgres/user"
	wordrepo "github.com/heartmarshall/lingua-tutor-backend/internal/adapter/postgres/wordbank"
	"github.com/heartmarshall/lingua-tutor-backend/internal/auth"
	"github.com/heartmarshall/lingua-tutor-backend/internal/catalog"
	"github.com/heartmarshall/lingua-tutor-backend/internal/config"
	"github.com/heartmarshall/lingua-tutor-backend/internal/observe"
	authsvc "github.com/heartmarshall/lingua-tutor-backend/internal/service/auth"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/course"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/progress"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/tutor"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/wordbank"
	"github.com/heartmarshall/lingua-tutor-backend/internal/transport/middleware"
	"github.com/heartmarshall/lingua-tutor-backend/internal/transport/rest"
)

const serviceName = "lingua-tutor"

// App owns every long-lived dependency of the server.
type App struct {
	cfg *config.Config
	log *slog.Logger

	pool    *pgxpool.Pool
	model   chatModel
	stt     transcriber
	tutor   *tutor.Service
	limiter *middleware.RateLimiter
	server  *http.Server

	// closers are called in order during Shutdown.
	closers []func() error

	// stopOnce guards the Shutdown path.
	stopOnce sync.Once
}

// Option customises an App.
type Option func(*App)

// WithChatModel replaces the configured model vendor.
func WithChatModel(m chatModel) Option {
	return func(a *App) { a.model = m }
}

// WithTranscriber replaces the configured speech-to-text vendor.
func WithTranscriber(t transcriber) Option {
	return func(a *App) { a.stt = t }
}

// New connects to the database, applies migrations when enabled and builds
// the services and router. Resources acquired before a failure are released.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (_ *App, err error) {
	a := &App{cfg: cfg, log: logger}
	for _, o := range opts {
		o(a)
	}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	if err := a.initDatabase(ctx); err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("app: load catalog: %w", err)
	}

	metrics, metricsHandler, err := a.initMetrics()
	if err != nil {
		return nil, err
	}

	if a.model == nil {
		if a.model, err = a.newChatModel(ctx); err != nil {
			return nil, fmt.Errorf("app: chat model: %w", err)
		}
	}
	if a.stt == nil {
		if a.stt, err = newTranscriber(cfg.STT); err != nil {
			return nil, fmt.Errorf("app: transcriber: %w", err)
		}
	}

	prompts, err := tutor.NewPromptBuilder(cfg.LLM.PromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	var seg interface{ Segment(string) []string }
	if cfg.Vocab.JapaneseSegmentation {
		js, err := wordbank.NewJapaneseSegmenter()
		if err != nil {
			return nil, fmt.Errorf("app: japanese segmenter: %w", err)
		}
		seg = js
	}

	tx := postgres.NewTxManager(a.pool)
	tokens := auth.NewJWTManager(cfg.Auth.SessionSecret, cfg.Auth.Issuer)

	authService := authsvc.NewService(logger, userrepo.New(a.pool), sessionrepo.New(a.pool), tx, tokens, cfg.Auth)
	wordService := wordbank.NewService(logger, wordrepo.New(a.pool), seg, metrics)
	progressService := progress.NewService(logger, progressrepo.New(a.pool))
	courseService := course.NewService(logger, courserepo.New(a.pool), cat)

	a.tutor = tutor.NewService(logger, authService, cat, a.model, a.stt, wordService, progressService, metrics, prompts, tutor.Config{
		Temperature:      cfg.LLM.Temperature,
		MaxTokens:        cfg.LLM.MaxTokens,
		VoiceTemperature: cfg.LLM.VoiceTemperature,
		VoiceMaxTokens:   cfg.LLM.VoiceMaxTokens,
	})

	health := rest.NewHealthHandler(BuildVersion(),
		rest.Check{Name: "database", Ping: a.pool.Ping},
		rest.Check{Name: "catalog", Ping: func(context.Context) error {
			if len(cat.Languages()) == 0 {
				return errors.New("catalog is empty")
			}
			return nil
		}},
	)

	a.limiter = middleware.NewRateLimiter(time.Minute)
	mux := rest.NewRouter(rest.Handlers{
		Health:      health,
		Auth:        rest.NewAuthHandler(authService, logger),
		Chat:        rest.NewChatHandler(a.tutor, logger, cfg.Server.MaxUploadBytes),
		Courses:     rest.NewCourseHandler(courseService, logger),
		Progress:    rest.NewProgressHandler(progressService, logger),
		WordBank:    rest.NewWordBankHandler(wordService, logger),
		Catalog:     rest.NewCatalogHandler(cat),
		Metrics:     metricsHandler,
		MetricsPath: cfg.Metrics.Path,
	}, rest.Limits{
		Chat: a.limiter.Limit("chat", cfg.RateLimit.ChatPerMinute),
		Auth: a.limiter.Limit("auth", cfg.RateLimit.AuthPerMinute),
	})

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(authService),
		middleware.Logger(logger),
		observe.Middleware(metrics),
	)(mux)

	a.server = &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return a, nil
}

func (a *App) initDatabase(ctx context.Context) error {
	if a.cfg.Database.AutoMigrate {
		applied, err := postgres.Migrate(ctx, a.cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("app: migrate: %w", err)
		}
		a.log.InfoContext(ctx, "migrations applied", slog.Int("count", applied))
	}

	pool, err := postgres.NewPool(ctx, a.cfg.Database)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	a.pool = pool
	a.closers = append(a.closers, func() error {
		pool.Close()
		return nil
	})
	return nil
}

// initMetrics returns the pipeline metrics and, when the scrape endpoint is
// enabled, its handler. Disabled metrics record into no-op instruments.
func (a *App) initMetrics() (*observe.Metrics, http.Handler, error) {
	if !a.cfg.Metrics.Enabled {
		return observe.Noop(), nil, nil
	}

	provider, err := observe.InitProvider(serviceName, Version)
	if err != nil {
		return nil, nil, fmt.Errorf("app: metrics provider: %w", err)
	}
	a.closers = append(a.closers, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return provider.Shutdown(ctx)
	})

	m, err := observe.NewMetrics(provider.MeterProvider)
	if err != nil {
		return nil, nil, fmt.Errorf("app: metrics: %w", err)
	}
	return m, provider.Handler, nil
}

// Handler returns the fully wrapped HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP until ctx is cancelled, then stops accepting requests and
// drains in-flight ones within the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("http server listening",
			slog.String("addr", a.server.Addr),
			slog.String("version", BuildVersion()),
			slog.String("llm_provider", a.cfg.LLM.Provider),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app: serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("app: http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Shutdown waits for background turn side effects and releases every
// resource. It is safe to call more than once.
func (a *App) Shutdown(ctx context.Context) error {
	var err error
	a.stopOnce.Do(func() {
		done := make(chan struct{})
		go func() {
			if a.tutor != nil {
				a.tutor.Wait()
			}
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			a.log.Warn("shutdown deadline reached before background writes finished")
			err = ctx.Err()
		}

		if a.limiter != nil {
			a.limiter.Stop()
		}
		if cerr := a.close(); cerr != nil && err == nil {
			err = cerr
		}
	})
	return err
}

func (a *App) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
