package container

import (
	"context"
	"fmt"
	"time"

	"pressroom-backend/internal/config"
	infraCache "pressroom-backend/internal/infrastructure/cache"
	"pressroom-backend/internal/infrastructure/database"
	"pressroom-backend/internal/shared/middleware"
	"pressroom-backend/pkg/cache"
	"pressroom-backend/pkg/logger"
	"pressroom-backend/pkg/token"

	"pressroom-backend/internal/domains/artist"
	artistHandler "pressroom-backend/internal/domains/artist/handler"
	artistRepo "pressroom-backend/internal/domains/artist/repository"
	artistService "pressroom-backend/internal/domains/artist/service"

	"pressroom-backend/internal/domains/ebook"
	ebookRepo "pressroom-backend/internal/domains/ebook/repository"

	"pressroom-backend/internal/domains/project"
	"pressroom-backend/internal/domains/project/enrich"
	projectHandler "pressroom-backend/internal/domains/project/handler"
	projectRepo "pressroom-backend/internal/domains/project/repository"
	projectService "pressroom-backend/internal/domains/project/service"

	"pressroom-backend/internal/domains/session"
	sessionHandler "pressroom-backend/internal/domains/session/handler"
	sessionRepo "pressroom-backend/internal/domains/session/repository"
	sessionService "pressroom-backend/internal/domains/session/service"

	"pressroom-backend/internal/domains/user"
	userRepo "pressroom-backend/internal/domains/user/repository"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup.
type Container struct {
	Config       *config.Config
	DB           *database.PostgresDB
	Cache        cache.Cache
	TokenManager *token.Manager
	CookieConfig middleware.SessionCookieConfig

	UserRepo    user.Repository
	EbookRepo   ebook.Repository
	ArtistRepo  artist.Repository
	SessionRepo session.Repository
	ProjectRepo project.Repository

	ArtistService  artist.Service
	SessionService session.Service
	ProjectService project.Service

	ArtistHandler  *artistHandler.ArtistHandler
	SessionHandler *sessionHandler.SessionHandler
	ProjectHandler *projectHandler.ProjectHandler
}

// NewContainer builds the whole graph in dependency order: config, then
// infrastructure, then repositories, services and handlers. A failure at
// any step aborts startup.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	db := database.NewPostgresDB(&database.DBConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Username: cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Database,
		SSLMode:  cfg.Database.SSLMode,
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisClient := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(context.Background()); err != nil {
		// The cache is an accelerator, not a dependency.
		logger.Warn("redis connection failed, continuing without cache warm-up", err)
	}
	c.Cache = redisClient

	c.TokenManager = token.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Hour,
	)

	c.CookieConfig = middleware.SessionCookieConfig{
		Name:   cfg.Session.CookieName,
		Domain: cfg.App.SiteDomain,
		MaxAge: int(cfg.Session.MaxAge.Seconds()),
		Secure: cfg.App.Environment != "development",
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

func (c *Container) initRepositories() {
	c.UserRepo = userRepo.NewPostgresRepository(c.DB.Pool)
	c.EbookRepo = ebookRepo.NewPostgresRepository(c.DB.Pool)
	c.ArtistRepo = artistRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.SessionRepo = sessionRepo.NewPostgresRepository(c.DB.Pool)
	c.ProjectRepo = projectRepo.NewPostgresRepository(c.DB.Pool, c.EbookRepo)
}

func (c *Container) initServices() {
	c.ArtistService = artistService.NewArtistService(c.ArtistRepo)
	c.SessionService = sessionService.NewSessionService(c.SessionRepo, c.UserRepo)

	enricher := enrich.NewEnricher(c.Config.GitHub.APIKey)
	c.ProjectService = projectService.NewProjectService(c.ProjectRepo, c.UserRepo, enricher)
}

func (c *Container) initHandlers() {
	c.ArtistHandler = artistHandler.NewArtistHandler(c.ArtistService)
	c.SessionHandler = sessionHandler.NewSessionHandler(c.SessionService, c.CookieConfig, c.TokenManager)
	c.ProjectHandler = projectHandler.NewProjectHandler(c.ProjectService)
}

// Cleanup releases infrastructure resources. Call it on shutdown.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisClient); ok {
			if err := rc.Close(); err != nil {
				logger.Error("failed to close redis client", err)
			}
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}
}
