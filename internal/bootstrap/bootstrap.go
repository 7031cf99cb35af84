package bootstrap

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/amrelfalogy/smarted/internal/app/controllers"
	"github.com/amrelfalogy/smarted/internal/app/player"
	appRoutes "github.com/amrelfalogy/smarted/internal/app/routes"
	"github.com/amrelfalogy/smarted/internal/config"
	appMiddleware "github.com/amrelfalogy/smarted/internal/middleware"
	"github.com/amrelfalogy/smarted/internal/pkg/filestorage"
	"github.com/amrelfalogy/smarted/internal/pkg/logger"
	"github.com/amrelfalogy/smarted/internal/pkg/metrics"
	"github.com/amrelfalogy/smarted/internal/pkg/websocket"
)

// Dependencies holds all the gateway dependencies
type Dependencies struct {
	HTTPClient       *http.Client
	FileStorage      *filestorage.LocalStorage
	Metrics          *metrics.Metrics
	Hub              *websocket.Hub
	WSHandler        *websocket.Handler
	Bridge           *player.Bridge
	ProxyController  *controllers.ProxyController
	UploadController *controllers.UploadController
	PlayerController *controllers.PlayerController
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("SMARTED_CONFIG", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies wires the proxy, the upload relay and the player bridge.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.HTTPClient = &http.Client{Timeout: cfg.BackendTimeout()}
	deps.Metrics = metrics.New()

	deps.Hub = websocket.NewHub(logger.ForComponent("hub"))
	deps.WSHandler = websocket.NewHandler(deps.Hub, logger.ForComponent("websocket"))

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	if err := deps.FileStorage.Purge(); err != nil {
		lgr.Warn().Err(err).Msg("Failed to purge stale uploads")
	}

	deps.ProxyController, err = controllers.NewProxyController(
		cfg.Backend.BaseURL,
		http.DefaultTransport,
		deps.Metrics,
		logger.ForComponent("proxy"),
	)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize proxy")
		return nil, fmt.Errorf("failed to initialize proxy: %w", err)
	}

	// Uploads can take far longer than a JSON call, so the relay gets its own client
	deps.UploadController = controllers.NewUploadController(
		cfg.Backend.BaseURL,
		&http.Client{},
		deps.FileStorage,
		deps.Hub,
		deps.Metrics,
		logger.ForComponent("upload"),
	)

	gate := player.NewReadinessGate(&player.HTTPScriptInjector{
		URL:    cfg.Player.ScriptURL,
		Client: deps.HTTPClient,
	})
	deps.Bridge = player.NewBridge(gate,
		&player.EmbedFactory{BaseURL: cfg.Player.EmbedBaseURL},
		logger.ForComponent("player"),
	)
	deps.PlayerController = controllers.NewPlayerController(deps.Bridge, deps.Metrics, logger.ForComponent("player"))

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(logger.ForComponent("http")),
		appMiddleware.Metrics(deps.Metrics),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.ProxyController,
		deps.UploadController,
		deps.PlayerController,
		deps.WSHandler,
		deps.Metrics,
	)

	return router
}
