package container

import (
	"context"
	"database/sql"
	"fmt"

	auditLogRepo "github.com/JungleeAadmi/component-storage/internal/auditlog"
	"github.com/JungleeAadmi/component-storage/internal/core/config"
	"github.com/JungleeAadmi/component-storage/internal/integrations/googlesheets"
	"github.com/JungleeAadmi/component-storage/internal/inventory/components"
	"github.com/JungleeAadmi/component-storage/internal/inventory/stats"
	"github.com/JungleeAadmi/component-storage/internal/middleware"
	"github.com/JungleeAadmi/component-storage/internal/rate_limiter"
	"github.com/JungleeAadmi/component-storage/internal/repository"
	"github.com/JungleeAadmi/component-storage/internal/search"
	"github.com/JungleeAadmi/component-storage/internal/storage/containers"
	"github.com/JungleeAadmi/component-storage/internal/storage/sections"
	"github.com/JungleeAadmi/component-storage/internal/uploads"
	"github.com/JungleeAadmi/component-storage/internal/users"
	"github.com/JungleeAadmi/component-storage/pkg/auditlog"
	"github.com/JungleeAadmi/component-storage/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Config           *config.Config
	Logger           *zap.Logger
	Repository       *repository.Repository
	Store            *uploads.DiskStore
	AuditLog         *auditlog.Auditlog
	Tokens           *security.TokenService
	LoginLimiter     *rate_limiter.RateLimiter
	HealthChecker    *middleware.HealthChecker
	LoginHandler     *security.LoginHandler
	UserHandler      *users.UsersHandler
	ContainerHandler *containers.ContainerHandler
	SectionHandler   *sections.SectionHandler
	ComponentHandler *components.ComponentHandler
	StatsHandler     *stats.StatsHandler
	SearchHandler    *search.SearchHandler
	// SheetsHandler is nil unless the spreadsheet export is configured.
	SheetsHandler *googlesheets.GoogleSheetsHandler
}

func NewAppContainer(ctx context.Context, cfg *config.Config, db *sql.DB, log *zap.Logger, version string) (*Container, error) {
	repo := repository.NewRepository(db)

	store, err := uploads.NewDiskStore(cfg.UploadDir, cfg.MaxUploadBytes, log)
	if err != nil {
		return nil, err
	}

	auditLog := auditlog.NewAuditLog(auditLogRepo.NewRepository(repo), log)
	tokens := security.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	loginLimiter := security.NewLoginRateLimiter()

	userRepo := users.NewRepository(repo)
	containerRepo := containers.NewRepository(repo)
	sectionRepo := sections.NewRepository(repo)
	componentRepo := components.NewRepository(repo)

	containerService := containers.NewContainerService(containerRepo, store, auditLog)
	sectionService := sections.NewSectionService(sectionRepo, componentRepo, auditLog)
	componentService := components.NewComponentService(componentRepo, sectionRepo, store, auditLog)
	statsService := stats.NewStatsService(componentRepo)

	app := &Container{
		Config:           cfg,
		Logger:           log,
		Repository:       repo,
		Store:            store,
		AuditLog:         auditLog,
		Tokens:           tokens,
		LoginLimiter:     loginLimiter,
		HealthChecker:    middleware.NewHealthChecker(db, version),
		LoginHandler:     security.NewLoginHandler(userRepo, tokens, loginLimiter),
		UserHandler:      users.NewHandler(userRepo, tokens),
		ContainerHandler: containers.NewContainerHandler(containerService),
		SectionHandler:   sections.NewSectionHandler(sectionService),
		ComponentHandler: components.NewComponentHandler(componentService),
		StatsHandler:     stats.NewStatsHandler(statsService),
		SearchHandler:    search.NewSearchHandler(search.NewRepository(repo)),
	}

	if cfg.Sheets.Enabled() {
		writer, err := googlesheets.NewSheetsWriter(ctx, cfg.Sheets.CredentialsJSON)
		if err != nil {
			loginLimiter.Stop()
			return nil, fmt.Errorf("configure sheets export: %w", err)
		}
		exporter := googlesheets.NewExporter(writer, cfg.Sheets.SpreadsheetID, cfg.Sheets.Range, log)
		app.SheetsHandler = googlesheets.NewGoogleSheetsHandler(exporter, componentRepo)
		log.Info("google sheets export enabled", zap.String("spreadsheet_id", cfg.Sheets.SpreadsheetID))
	}

	return app, nil
}

// Close stops background work and releases the database handle.
func (c *Container) Close() error {
	c.LoginLimiter.Stop()
	return c.Repository.Close()
}
