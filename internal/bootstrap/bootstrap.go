package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/Shyam-123pandey/NITM-content-hub/internal/app/auth"
	appControllers "github.com/Shyam-123pandey/NITM-content-hub/internal/app/controllers"
	appMigrations "github.com/Shyam-123pandey/NITM-content-hub/internal/app/migrations"
	appRepos "github.com/Shyam-123pandey/NITM-content-hub/internal/app/repositories"
	appRoutes "github.com/Shyam-123pandey/NITM-content-hub/internal/app/routes"
	appServices "github.com/Shyam-123pandey/NITM-content-hub/internal/app/services"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/config"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/db"
	appMiddleware "github.com/Shyam-123pandey/NITM-content-hub/internal/middleware"
	pkgAuth "github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/auth"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/filestorage"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/logger"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/ws"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           appServices.AuthService
	ContentService        appServices.ContentService
	DiscussionService     appServices.DiscussionService
	OpportunityService    appServices.OpportunityService
	CalendarService       appServices.CalendarService
	ChatService           appServices.ChatService
	AuthController        *appControllers.AuthController
	ContentController     *appControllers.ContentController
	DiscussionController  *appControllers.DiscussionController
	OpportunityController *appControllers.OpportunityController
	CalendarController    *appControllers.CalendarController
	ChatController        *appControllers.ChatController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	GoogleService         *pkgAuth.GoogleOAuthService
	AuthzService          *appAuth.AuthorizationService
	Hub                   *ws.Hub
	WSHandler             *ws.Handler
	FileStorage           *filestorage.LocalStorage
	Logger                zerolog.Logger
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

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
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
	migrator := appMigrations.NewMigrator(database)

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

	// Seeding failures are logged but never abort startup
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// The base URL must match the static file serving endpoint
	var err error
	baseURL := "http://localhost:" + cfg.Server.Port
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.UserRepository)

	accessTokenExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		accessTokenExp = 24 * time.Hour
	}
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: accessTokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.GoogleService = pkgAuth.NewGoogleOAuthService(pkgAuth.GoogleOAuthConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
	})

	deps.Hub = ws.NewHub(lgr)
	go deps.Hub.Run()

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.JWTService,
		deps.GoogleService,
		deps.FileStorage,
		lgr,
	)
	deps.ContentService = appServices.NewContentService(
		deps.Repos.ContentRepository,
		deps.Repos.UserRepository,
		deps.FileStorage,
		deps.AuthzService,
		lgr,
	)
	deps.DiscussionService = appServices.NewDiscussionService(
		deps.Repos.DiscussionRepository,
		deps.Repos.UserRepository,
		deps.AuthzService,
		lgr,
	)
	deps.OpportunityService = appServices.NewOpportunityService(
		deps.Repos.OpportunityRepository,
		deps.Repos.UserRepository,
		deps.AuthzService,
		lgr,
	)
	deps.CalendarService = appServices.NewCalendarService(
		deps.Repos.CalendarRepository,
		deps.Repos.UserRepository,
		deps.AuthzService,
		lgr,
	)
	deps.ChatService = appServices.NewChatService(
		deps.Repos.ChatRepository,
		deps.Repos.UserRepository,
		deps.Hub,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.WSHandler = ws.NewHandler(deps.Hub, deps.Repos.ChatRepository, lgr)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, cfg.Server.ClientURL, lgr)
	deps.ContentController = appControllers.NewContentController(deps.ContentService, lgr)
	deps.DiscussionController = appControllers.NewDiscussionController(deps.DiscussionService, lgr)
	deps.OpportunityController = appControllers.NewOpportunityController(deps.OpportunityService, lgr)
	deps.CalendarController = appControllers.NewCalendarController(deps.CalendarService, lgr)
	deps.ChatController = appControllers.NewChatController(deps.ChatService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.Use(appMiddleware.CORS(cfg.Server.ClientURL))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ContentController,
		deps.DiscussionController,
		deps.OpportunityController,
		deps.CalendarController,
		deps.ChatController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	// Uploaded files are served from the same process
	router.Static("/uploads", cfg.Server.StoragePath)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
