package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pixweight-backend/internal/estimates"
	"pixweight-backend/internal/images"
	"pixweight-backend/internal/inference"
	openaiprovider "pixweight-backend/internal/inference/openai"
	vertexprovider "pixweight-backend/internal/inference/vertex"
	"pixweight-backend/internal/reference"
	"pixweight-backend/internal/services/health"
	"pixweight-backend/internal/sessions"
	"pixweight-backend/internal/shared/auth"
	"pixweight-backend/internal/shared/config"
	"pixweight-backend/internal/shared/server"
	"pixweight-backend/internal/shared/server/middleware"
	"pixweight-backend/internal/shared/storage/db"
	"pixweight-backend/internal/shared/storage/object"
	localstore "pixweight-backend/internal/shared/storage/object/local"
	s3store "pixweight-backend/internal/shared/storage/object/s3"
	"pixweight-backend/internal/shared/telemetry"
)

// App holds shared dependencies and the router built from them.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	DB        *sql.DB
	Store     object.ObjectStore
	Reference reference.Store
	Gateway   *inference.Gateway

	ImagesService    *images.Service
	EstimatesService *estimates.Service
	SessionsService  *sessions.Service

	closers []func() error
}

// Build prepares dependencies and wires the router. Without DATABASE_URL in
// dev or local, repositories are in memory and reference data is seeded.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	log := telemetry.Named("bootstrap")
	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if sqlDB != nil {
		app.DB = sqlDB
		app.closers = append(app.closers, sqlDB.Close)
	}

	if app.Store, err = buildStore(ctx, cfg); err != nil {
		app.Close()
		return nil, err
	}

	provider, closeProvider, err := buildProvider(ctx, cfg.Inference, log)
	if err != nil {
		app.Close()
		return nil, err
	}
	if closeProvider != nil {
		app.closers = append(app.closers, closeProvider)
	}
	app.Gateway = inference.NewGateway(provider, inference.Config{
		VisionModel: cfg.Inference.VisionModel,
		TextModel:   cfg.Inference.TextModel,
		Temperature: cfg.Inference.Temperature,
		MaxRetries:  cfg.Inference.MaxRetries,
		Backoff:     cfg.Inference.RetryBackoff,
		Timeout:     cfg.Inference.Timeout,
	}, telemetry.Named("inference"))

	buildServices(app)

	var pinger health.Pinger
	if app.DB != nil {
		pinger = app.DB
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		Verifier:         auth.NewVerifier(cfg.JWTSecret, 0),
		RateLimiter:      middleware.NewRateLimiter(nil),
		Health:           health.NewService(pinger, cfg.Inference.Provider),
		ReferenceHandler: reference.NewHandler(app.Reference),
		ImageHandler:     images.NewHandler(app.ImagesService),
		SessionHandler:   sessions.NewHandler(app.SessionsService),
		EstimateHandler:  estimates.NewHandler(app.EstimatesService),
	})
	return app, nil
}

// Close releases the database and provider connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config, log *zap.Logger) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			log.Info("DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if cfg.IsDevLike() {
			log.Warn("database unavailable; using in-memory repositories", zap.Error(err))
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildProvider picks the model backend. Missing credentials in dev leave
// the gateway unconfigured so the rest of the API still serves.
func buildProvider(ctx context.Context, cfg config.Inference, log *zap.Logger) (inference.Provider, func() error, error) {
	var (
		provider inference.Provider
		closer   func() error
		err      error
	)
	switch cfg.Provider {
	case "none":
		return inference.Unconfigured{}, nil, nil
	case "vertex":
		var c *vertexprovider.Client
		c, err = vertexprovider.NewClient(ctx, vertexprovider.Config{
			ProjectID:       cfg.VertexProject,
			Location:        cfg.VertexLocation,
			CredentialsFile: cfg.VertexCredentials,
		}, telemetry.Named("inference"))
		if err == nil {
			provider, closer = c, c.Close
		}
	default:
		var c *openaiprovider.Client
		c, err = openaiprovider.NewClient(openaiprovider.Config{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Referer: cfg.AppReferer,
			Title:   cfg.AppTitle,
			Timeout: cfg.Timeout,
		}, telemetry.Named("inference"))
		if err == nil {
			provider = c
		}
	}
	if err != nil {
		log.Warn("inference provider not configured", zap.String("provider", cfg.Provider), zap.Error(err))
		return inference.Unconfigured{}, nil, nil
	}
	log.Info("inference provider ready",
		zap.String("provider", cfg.Provider),
		zap.String("vision_model", cfg.VisionModel),
		zap.String("text_model", cfg.TextModel),
	)
	return provider, closer, nil
}

func buildServices(app *App) {
	var (
		imageRepo    images.Repo
		estimateRepo estimates.Repo
		sessionRepo  sessions.Repo
		refBase      reference.Store
	)
	if app.DB != nil {
		imageRepo = &images.PGRepo{DB: app.DB}
		estimateRepo = &estimates.PGRepo{DB: app.DB}
		sessionRepo = &sessions.PGRepo{DB: app.DB}
		refBase = &reference.PGStore{DB: app.DB}
	} else {
		imageRepo = images.NewMemoryRepo()
		estimateRepo = estimates.NewMemoryRepo()
		sessionRepo = sessions.NewMemoryRepo()
		refBase = reference.NewSeededMemoryStore()
	}
	app.Reference = reference.NewCachedStore(refBase, app.Config.ReferenceCacheTTL)

	app.ImagesService = &images.Service{
		Store:           app.Store,
		Repo:            imageRepo,
		StorageProvider: app.Config.ObjectStoreType,
		MaxBytes:        app.Config.MaxUploadBytes,
	}
	app.EstimatesService = &estimates.Service{Repo: estimateRepo}
	app.SessionsService = &sessions.Service{
		Repo:      sessionRepo,
		Estimates: app.EstimatesService,
		Images:    app.ImagesService,
		Gateway:   app.Gateway,
		Enricher: &sessions.Enricher{
			Reference: app.Reference,
			Log:       telemetry.Named("enrichment"),
		},
		Log: telemetry.Named("sessions"),
	}
}
