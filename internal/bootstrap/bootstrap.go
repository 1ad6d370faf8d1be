package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/vgsantoni/registro/internal/app/controllers"
	appMigrations "github.com/vgsantoni/registro/internal/app/migrations"
	appRepos "github.com/vgsantoni/registro/internal/app/repositories"
	appRoutes "github.com/vgsantoni/registro/internal/app/routes"
	appServices "github.com/vgsantoni/registro/internal/app/services"
	"github.com/vgsantoni/registro/internal/config"
	"github.com/vgsantoni/registro/internal/db"
	appMiddleware "github.com/vgsantoni/registro/internal/middleware"
	pkgAuth "github.com/vgsantoni/registro/internal/pkg/auth"
	"github.com/vgsantoni/registro/internal/pkg/filestorage"
	"github.com/vgsantoni/registro/internal/pkg/logger"
	"github.com/vgsantoni/registro/internal/pkg/session"
	"github.com/vgsantoni/registro/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService              appServices.AuthService
	EstudanteService         appServices.EstudanteService
	ReconhecimentoService    appServices.ReconhecimentoService
	AuthController           *appControllers.AuthController
	EstudanteController      *appControllers.EstudanteController
	ReconhecimentoController *appControllers.ReconhecimentoController
	AuthMiddleware           *appMiddleware.AuthMiddleware
	LoginLimiter             *appMiddleware.TokenBucket
	Repos                    *appRepos.Repositories
	JWTService               *pkgAuth.JWTService
	Sessions                 *session.Store
	FileStorage              *filestorage.LocalStorage
	Logger                   zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	appMiddleware.SetDevMode(cfg.IsDevelopment())

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the first admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, redisDB *db.Redis, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.PublicPath, cfg.Uploads.MaxSizeMB)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    cfg.JWTExpiration(),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Sessions = session.NewStore(redisDB.Client, cfg.JWTExpiration())

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UsuarioRepository,
		deps.JWTService,
		deps.Sessions,
		cfg.Auth.ConfigPassword,
	)
	deps.EstudanteService = appServices.NewEstudanteService(
		deps.Repos.EstudanteRepository,
		deps.FileStorage,
	)
	deps.ReconhecimentoService = appServices.NewReconhecimentoService(
		deps.Repos.EstudanteRepository,
	)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.EstudanteController = appControllers.NewEstudanteController(deps.EstudanteService)
	deps.ReconhecimentoController = appControllers.NewReconhecimentoController(deps.ReconhecimentoService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UsuarioRepository, deps.Sessions)
	deps.LoginLimiter = appMiddleware.NewTokenBucket(cfg.Auth.LoginRatePerMin, cfg.Auth.LoginRatePerMin)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, database *db.PostgresDB, redisDB *db.Redis, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.Use(appMiddleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(appMiddleware.Metrics())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.EstudanteController,
		deps.ReconhecimentoController,
		deps.AuthMiddleware,
		deps.LoginLimiter,
		database,
		redisDB,
		cfg.Uploads.Dir,
	)

	return router
}
