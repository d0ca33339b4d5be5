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

	"alphinex-backend-go/internal/config"
	"alphinex-backend-go/internal/db"
	httpapi "alphinex-backend-go/internal/http"
	"alphinex-backend-go/internal/logging"
	"alphinex-backend-go/internal/migrations"
	"alphinex-backend-go/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// metricsRetention bounds how long health samples are kept.
const metricsRetention = 7 * 24 * time.Hour

var (
	cfg    config.Config
	logger *zap.Logger
	closer func()
)

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Alphinex site and admin API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "hash-password" {
			return nil
		}
		_ = godotenv.Load()
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger, closer, err = logging.New(logging.Options{
			Dir:           cfg.LogDir,
			RetentionDays: cfg.LogRetentionDays,
			Level:         cfg.LogLevel,
		})
		if err != nil {
			return fmt.Errorf("logger setup failed: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closer != nil {
			closer()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()
		applied, err := migrations.Applied(database)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", zap.Strings("versions", applied))
		return nil
	},
}

var seedSample bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin user and default contact recipients",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()
		ctx := cmd.Context()
		tokens := services.TokenService{Secret: []byte(cfg.SessionSecret), Issuer: cfg.SessionIssuer}
		report, err := services.SeedDefaults(ctx, database, tokens,
			envOr("ADMIN_EMAIL", "admin@alphinexsolutions.com"),
			os.Getenv("ADMIN_PASSWORD"),
			envOr("ADMIN_NAME", "Admin"))
		if err != nil {
			return err
		}
		if seedSample {
			sample, err := services.SeedSample(ctx, database)
			if err != nil {
				return err
			}
			report.TeamMembers = sample.TeamMembers
			report.Testimonials = sample.Testimonials
		}
		logger.Info("database seeded",
			zap.String("adminEmail", report.AdminEmail),
			zap.Int("contactEmails", report.ContactEmails),
			zap.Int("teamMembers", report.TeamMembers),
			zap.Int("testimonials", report.Testimonials))
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print an argon2id hash for a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := services.TokenService{}.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedSample, "sample", false, "also insert sample team members and testimonials")
	rootCmd.AddCommand(migrateCmd, seedCmd, hashPasswordCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func openDatabase() (*sqlx.DB, error) {
	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	if err := migrations.Apply(database); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return database, nil
}

func serve(parent context.Context) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var mailer services.Mailer
	if cfg.MailConfigured() {
		mailer = services.NewResendMailer(cfg.ResendAPIKey)
	} else {
		logger.Warn("RESEND_API_KEY not set, contact submissions will only be logged")
	}

	hub := services.NewMetricsHub()
	go hub.Run(ctx)

	server := httpapi.NewServer(database, cfg, logger, mailer, hub)
	go metricsLoop(ctx, server)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	logger.Info("shutdown complete")
	return nil
}

func metricsLoop(ctx context.Context, server *httpapi.Server) {
	ticker := time.NewTicker(time.Duration(server.Config.MetricsSampleSeconds) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sample, err := services.CaptureMetrics(ctx, server.DB, server.Config.MetricsDiskPath)
			if err != nil {
				server.Logger.Warn("metrics capture", zap.Error(err))
				continue
			}
			server.MetricsHub.Broadcast(sample)
			if _, err := services.PruneMetrics(ctx, server.DB, time.Now().UTC().Add(-metricsRetention)); err != nil {
				server.Logger.Warn("metrics prune", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
