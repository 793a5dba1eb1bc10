package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JungleeAadmi/component-storage/internal/core/config"
	"github.com/JungleeAadmi/component-storage/internal/core/container"
	"github.com/JungleeAadmi/component-storage/internal/core/logger"
	"github.com/JungleeAadmi/component-storage/internal/core/routes"
	"github.com/JungleeAadmi/component-storage/internal/database"
	"github.com/JungleeAadmi/component-storage/internal/repository"
	"github.com/JungleeAadmi/component-storage/internal/users"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is overridden at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

const shutdownTimeout = 10 * time.Second

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run migrations manually.",
	Long:  `Applies every pending migration from --dir and exits.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.NewLogger(cfg.LogLevel)
		defer log.Sync()

		migrationDir, _ := cmd.Flags().GetString("dir")
		if migrationDir == "" {
			migrationDir = cfg.MigrationsDir
		}

		if err := database.RunMigrations(cfg.DatabaseURL, migrationDir, true, log); err != nil {
			log.Error("migration failed", zap.Error(err))
			return fmt.Errorf("migrate database: %w", err)
		}

		return nil
	},
}

var CreateAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account.",
	Long:  `Creates a user with the admin role. The password is read from --password or COMPONENTS_ADMIN_PASSWORD.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.NewLogger(cfg.LogLevel)
		defer log.Sync()

		username, _ := cmd.Flags().GetString("username")
		fullname, _ := cmd.Flags().GetString("fullname")
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			password = os.Getenv("COMPONENTS_ADMIN_PASSWORD")
		}

		db, err := database.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		repo := repository.NewRepository(db)
		defer repo.Close()

		user, err := users.CreateAdmin(users.NewRepository(repo), models.CreateUserRequest{
			Username: username,
			Password: password,
			Fullname: fullname,
		})
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}

		log.Info("admin account created", zap.Int("id", user.ID), zap.String("username", user.Username))
		return nil
	},
}

func init() {
	MigrateCmd.Flags().String("dir", "", "Directory containing the migration files (defaults to MIGRATIONS_DIR)")

	CreateAdminCmd.Flags().String("username", "admin", "Login of the new admin")
	CreateAdminCmd.Flags().String("fullname", "", "Display name of the new admin")
	CreateAdminCmd.Flags().String("password", "", "Password of the new admin (at least 6 characters)")
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "components",
		Short:         "Electronic component storage service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
	rootCmd.AddCommand(ServeCmd, MigrateCmd, CreateAdminCmd)
	return rootCmd
}

func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir, false, log); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	log.Info("connected to the database")

	app, err := container.NewAppContainer(ctx, cfg, db, log, Version)
	if err != nil {
		db.Close()
		return err
	}
	defer app.Close()

	server := &http.Server{
		Addr:              cfg.AppHost,
		Handler:           routes.NewRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.AppHost), zap.String("version", Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
