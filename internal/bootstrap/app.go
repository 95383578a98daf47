package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"careerarchitect/internal/enhance"
	"careerarchitect/internal/llm/gemini"
	"careerarchitect/internal/llm/openai"
	"careerarchitect/internal/resumes"
	"careerarchitect/internal/scores"
	"careerarchitect/internal/services/health"
	"careerarchitect/internal/shared/auth"
	"careerarchitect/internal/shared/config"
	"careerarchitect/internal/shared/server"
	"careerarchitect/internal/shared/storage/db"
	"careerarchitect/internal/shared/storage/object"
	localstore "careerarchitect/internal/shared/storage/object/local"
	s3store "careerarchitect/internal/shared/storage/object/s3"
	"careerarchitect/internal/users"
)

// App holds the process-wide dependencies. It is built once at startup and
// released with Close.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	Tokens         *auth.Issuer
	Dispatcher     *enhance.Dispatcher
	UsersRepo      users.Repo
	ResumesRepo    resumes.Repo
	ScoresRepo     scores.Repo
	UsersService   *users.Service
	ResumesService *resumes.Service

	closers []io.Closer
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB
	if sqlDB != nil {
		app.closers = append(app.closers, sqlDB)
	}

	if app.Store, err = buildStore(ctx, cfg); err != nil {
		_ = app.Close()
		return nil, err
	}

	if app.Tokens, err = auth.NewIssuer(cfg.JWTSecret, cfg.Env, cfg.JWTExpiration); err != nil {
		_ = app.Close()
		return nil, err
	}

	if app.Dispatcher, err = app.buildDispatcher(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}

	if err := app.buildServices(); err != nil {
		_ = app.Close()
		return nil, err
	}

	return app, nil
}

// Close releases the database pool and provider clients.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL, db.ServerPool().With(cfg.DBPool))
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID, cfg.S3Endpoint)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildDispatcher creates a client per provider that has a key. A provider
// without a key stays nil and every call to it falls back.
func (a *App) buildDispatcher(ctx context.Context) (*enhance.Dispatcher, error) {
	d := &enhance.Dispatcher{}
	if strings.TrimSpace(a.Config.OpenAIAPIKey) != "" {
		client, err := openai.NewClient(a.Config.OpenAIAPIKey, a.Config.OpenAIModel, a.Config.OpenAITimeout)
		if err != nil {
			return nil, err
		}
		d.OpenAI = client
	} else {
		log.Printf("bootstrap: OPENAI_API_KEY empty; openai enhancement disabled")
	}
	if strings.TrimSpace(a.Config.GeminiAPIKey) != "" {
		client, err := gemini.NewClient(ctx, a.Config.GeminiAPIKey, a.Config.GeminiModel)
		if err != nil {
			return nil, err
		}
		d.Gemini = client
		a.closers = append(a.closers, client)
	} else {
		log.Printf("bootstrap: GEMINI_API_KEY empty; gemini enhancement disabled")
	}
	return d, nil
}

func (a *App) buildServices() error {
	var healthSvc *health.Service
	if a.DB != nil {
		a.UsersRepo = &users.PGRepo{DB: a.DB}
		a.ResumesRepo = &resumes.PGRepo{DB: a.DB}
		a.ScoresRepo = &scores.PGRepo{DB: a.DB}
		healthSvc = health.NewService(a.DB)
	} else {
		a.UsersRepo = users.NewMemoryRepo()
		a.ResumesRepo = resumes.NewMemoryRepo()
		a.ScoresRepo = scores.NewMemoryRepo()
		healthSvc = health.NewService(nil)
	}

	hasher, err := auth.NewHasher(a.Config.BcryptCost)
	if err != nil {
		return err
	}

	a.UsersService = users.NewService(a.UsersRepo, hasher, a.Tokens)
	a.ResumesService = &resumes.Service{
		Repo:     a.ResumesRepo,
		Scores:   a.ScoresRepo,
		Store:    a.Store,
		Enhancer: a.Dispatcher,
	}

	a.Router = server.NewRouter(server.RouterDeps{
		Config:        a.Config,
		Tokens:        a.Tokens,
		Health:        healthSvc,
		UserHandler:   users.NewHandler(a.UsersService),
		ResumeHandler: resumes.NewHandler(a.ResumesService, a.Config.MaxUploadBytes),
	})
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
