package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/eyecare/clinic/internal/config"
	"github.com/eyecare/clinic/internal/domain/billing"
	"github.com/eyecare/clinic/internal/domain/dashboard"
	"github.com/eyecare/clinic/internal/domain/patient"
	"github.com/eyecare/clinic/internal/domain/rxtemplate"
	"github.com/eyecare/clinic/internal/domain/visit"
	"github.com/eyecare/clinic/internal/platform/db"
	"github.com/eyecare/clinic/internal/platform/middleware"
	"github.com/eyecare/clinic/internal/platform/reporting"
	"github.com/eyecare/clinic/internal/seed"
)

const (
	version         = "0.1.0"
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Eye clinic patient management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			pool, err := openPostgres(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(cmd.Context())
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			pool, err := openPostgres(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

// seedCmd loads the demo data into PostgreSQL. The memory store seeds itself
// at startup when SEED_MOCK_DATA is set.
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo patients, visits and templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger("production")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.UsesPostgres() {
				return fmt.Errorf("seed needs STORE=%s; the memory store seeds on serve", config.StorePostgres)
			}

			pool, err := db.NewPool(cmd.Context(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := newServices(cfg, pool, logger)
			res, err := seed.Load(cmd.Context(), svc.patients, svc.visits, svc.templates, logger)
			if err != nil {
				return err
			}
			if res.Skipped {
				fmt.Println("Store already has patients, nothing seeded.")
				return nil
			}
			fmt.Printf("Seeded %d patient(s), %d visit(s), %d template(s).\n", res.Patients, res.Visits, res.Templates)
			return nil
		},
	}
}

func openPostgres(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
}

func newLogger(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// services holds the wired domain services. A nil pool selects the memory
// store.
type services struct {
	patients  *patient.Service
	visits    *visit.Service
	templates *rxtemplate.Service
	billing   *billing.Service
	dashboard *dashboard.Service
	reports   *reporting.Handler
}

func newServices(cfg *config.Config, pool *pgxpool.Pool, logger zerolog.Logger) *services {
	var (
		patientRepo  patient.Repository
		visitRepo    visit.Repository
		templateRepo rxtemplate.Repository
	)
	if pool != nil {
		patientRepo = patient.NewPatientRepoPG(pool)
		visitRepo = visit.NewVisitRepoPG(pool)
		templateRepo = rxtemplate.NewTemplateRepoPG(pool)
	} else {
		patientRepo = patient.NewMemoryRepo()
		visitRepo = visit.NewMemoryRepo()
		templateRepo = rxtemplate.NewMemoryRepo()
	}

	s := &services{}
	s.patients = patient.NewService(patientRepo, logger)
	s.visits = visit.NewService(visitRepo, s.patients, logger)
	s.templates = rxtemplate.NewService(templateRepo, logger)

	if pool != nil {
		s.visits.SetTxRunner(func(ctx context.Context, fn func(ctx context.Context) error) error {
			return db.WithTx(ctx, pool, fn)
		})
	} else {
		s.patients.SetVisitPurger(s.visits)
	}

	clinic := billing.Clinic{Name: cfg.ClinicName, Address: cfg.ClinicAddress, Phone: cfg.ClinicPhone}
	s.billing = billing.NewService(s.patients, s.visits, clinic, cfg.FollowUpDays)
	s.dashboard = dashboard.NewService(s.patients, s.visits, cfg.ClinicName)
	s.reports = reporting.NewHandler(reportSource{patients: s.patients, visits: s.visits})
	return s
}

// newServer builds the HTTP surface: global middleware, health check and the
// versioned API.
func newServer(cfg *config.Config, pool *pgxpool.Pool, svc *services, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	e.GET("/health", db.HealthHandler(pool, version))

	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))
	apiV1.Use(middleware.RequestTimeout(requestTimeout))

	patient.NewHandler(svc.patients).RegisterRoutes(apiV1)
	visit.NewHandler(svc.visits).RegisterRoutes(apiV1)
	rxtemplate.NewHandler(svc.templates).RegisterRoutes(apiV1)
	billing.NewHandler(svc.billing).RegisterRoutes(apiV1)
	dashboard.NewHandler(svc.dashboard).RegisterRoutes(apiV1)
	svc.reports.RegisterRoutes(apiV1)

	return e
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := newLogger("production")
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}
	logger := newLogger(cfg.Env)

	ctx := context.Background()
	var pool *pgxpool.Pool
	if cfg.UsesPostgres() {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")
	} else {
		logger.Info().Msg("using in-memory store")
	}

	svc := newServices(cfg, pool, logger)
	if cfg.SeedMockData && pool == nil {
		if _, err := seed.Load(ctx, svc.patients, svc.visits, svc.templates, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed demo data")
		}
	}

	e := newServer(cfg, pool, svc, logger)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("store", cfg.Store).Msg("starting clinic server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
