package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"payroll/internal/domain/auth"
	"payroll/internal/domain/dashboard"
	"payroll/internal/domain/employee"
	"payroll/internal/domain/payroll"
	"payroll/internal/platform/config"
	"payroll/internal/platform/db"
	"payroll/internal/platform/logging"
	"payroll/internal/platform/memstore"
	"payroll/internal/platform/metrics"
	"payroll/internal/transport/http/api"
	authhandler "payroll/internal/transport/http/handlers/auth"
	dashboardhandler "payroll/internal/transport/http/handlers/dashboard"
	employeehandler "payroll/internal/transport/http/handlers/employees"
	payrollhandler "payroll/internal/transport/http/handlers/payroll"
	"payroll/internal/transport/http/middleware"
	"payroll/internal/transport/http/render"
	"payroll/internal/transport/http/shared"
	"payroll/web"
)

const devSessionSecret = "dev-only-session-secret"

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

type stores struct {
	employees employee.StoreAPI
	salaries  payroll.StoreAPI
	users     auth.StoreAPI
	ready     pinger
}

// New wires the stores, services and router for cfg. With the postgres
// driver it connects, migrates and seeds before returning.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		slog.Warn("SESSION_SECRET not set, using an insecure development secret")
		cfg.SessionSecret = devSessionSecret
	}

	app := &App{Config: cfg, Metrics: metrics.New()}

	var st stores
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		app.DB = pool
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		st = stores{
			employees: employee.NewStore(pool),
			salaries:  payroll.NewStore(pool),
			users:     auth.NewStore(pool),
			ready:     pool,
		}
	default:
		mem := memstore.New()
		st = stores{employees: mem, salaries: mem, users: mem, ready: mem}
	}

	employeeSvc := employee.NewService(st.employees)
	payrollSvc := payroll.NewService(st.salaries, st.employees)
	authSvc := auth.NewService(st.users, auth.Options{
		Mode:          cfg.AuthMode,
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		AdminEmail:    cfg.AdminEmail,
	})
	var skips dashboard.SkipRecorder
	if cfg.MetricsEnabled {
		skips = app.Metrics
	}
	dashboardSvc := dashboard.NewService(st.employees, st.salaries, skips)

	if err := db.Seed(ctx, authSvc, cfg); err != nil {
		app.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}

	renderer, err := render.New(web.FS, authSvc.RegistrationEnabled())
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("templates: %w", err)
	}
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		app.Close()
		return nil, err
	}

	cookies := middleware.SessionCookies{Secret: cfg.SessionSecret, TTL: cfg.SessionTTL, Secure: cfg.IsProduction()}
	clientKey := shared.ClientIP
	if cfg.TrustProxyHeaders {
		clientKey = shared.ForwardedClientIP
	}
	authLimit := middleware.AuthRateLimit(cfg.AuthRatePerMinute, clientKey)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(slog.Default()))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(app.Metrics))
	}
	router.Use(middleware.Session(cfg.SessionSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := st.ready.Ping(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})

	authHandler := authhandler.NewHandler(authSvc, cookies, renderer)
	authHandler.RegisterRoutes(router, authLimit)

	employeeHandler := employeehandler.NewHandler(employeeSvc, renderer)
	payrollHandler := payrollhandler.NewHandler(payrollSvc, employeeSvc, renderer)
	dashboardHandler := dashboardhandler.NewHandler(dashboardSvc, renderer)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession)
		dashboardHandler.RegisterRoutes(r)
		employeeHandler.RegisterRoutes(r)
		payrollHandler.RegisterRoutes(r)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireSessionAPI)
		dashboardHandler.RegisterAPIRoutes(r)
		employeeHandler.RegisterAPIRoutes(r)
		payrollHandler.RegisterAPIRoutes(r)
	})

	if cfg.MetricsEnabled {
		router.With(middleware.RequireSessionAPI).Get("/metricsz", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, app.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	app.Router = router
	return app, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run loads configuration from the environment and serves until SIGINT or
// SIGTERM.
func Run() error {
	cfg := config.Load()
	slog.SetDefault(logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("payroll server listening", "addr", cfg.Addr, "store", cfg.StoreDriver, "authMode", cfg.AuthMode)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
