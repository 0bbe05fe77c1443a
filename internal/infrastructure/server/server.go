package server

import (
	"context"
	"errors"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cyberproxy/backend/internal/api/http"
	"github.com/cyberproxy/backend/internal/api/middleware"
	"github.com/cyberproxy/backend/internal/api/ws"
	"github.com/cyberproxy/backend/internal/domain/advisory"
	"github.com/cyberproxy/backend/internal/domain/identity"
	"github.com/cyberproxy/backend/internal/domain/media"
	"github.com/cyberproxy/backend/internal/domain/session"
	"github.com/cyberproxy/backend/internal/domain/tab"
	"github.com/cyberproxy/backend/internal/infrastructure/config"
	"github.com/cyberproxy/backend/internal/infrastructure/logging"
	"github.com/cyberproxy/backend/internal/infrastructure/monitoring"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	httpSrv *nethttp.Server
	store   *session.Store
	tabs    *tab.Service
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing CyberProxy backend",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("model", cfg.Gemini.Model),
	)

	metrics := monitoring.NewMetrics()

	identities := identity.New()
	store := session.NewStore(identities).WithMetrics(metrics)

	// Provider is optional: without a key the gateway serves fallbacks only
	var provider advisory.Provider
	p, err := advisory.NewGemini(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	switch {
	case err == nil:
		provider = p
		logger.Info("Gemini provider initialized", zap.String("model", cfg.Gemini.Model))
	case errors.Is(err, advisory.ErrMissingAPIKey):
		logger.Warn("GEMINI_API_KEY not set, advisory gateway will serve fallbacks")
	default:
		logger.Warn("Gemini provider unavailable, advisory gateway will serve fallbacks", zap.Error(err))
	}
	gateway := advisory.NewGateway(provider, cfg.Gemini.Timeout, logger).WithMetrics(metrics)

	tabs := tab.NewService(store, gateway, identities, logger)
	if cfg.Probe.Enabled {
		tabs = tabs.WithProbe(media.NewProbe(cfg.Probe.Timeout))
		logger.Info("Stream metadata probe enabled", zap.Duration("timeout", cfg.Probe.Timeout))
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}

	handlers := http.NewHandlers(store, tabs)
	wsHandler := ws.NewHandler(store, logger).WithMetrics(metrics)
	RegisterRoutes(router, handlers, wsHandler, metrics)

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		store:   store,
		tabs:    tabs,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// RegisterRoutes attaches all API routes to the router
func RegisterRoutes(router *gin.Engine, handlers *http.Handlers, wsHandler *ws.Handler, metrics *monitoring.Metrics) {
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/stats", handlers.GetStats)
	router.GET("/snapshot", handlers.GetSnapshot)

	// Tab management
	router.GET("/tabs", handlers.ListTabs)
	router.POST("/tabs", handlers.OpenTab)
	router.POST("/tabs/move", handlers.MoveTab)
	router.GET("/tabs/:id", handlers.GetTab)
	router.DELETE("/tabs/:id", handlers.CloseTab)
	router.POST("/tabs/:id/focus", handlers.FocusTab)
	router.POST("/tabs/:id/search", handlers.SearchTab)
	router.POST("/tabs/:id/advisory", handlers.RefreshAdvisory)
	router.POST("/tabs/:id/group", handlers.AssignGroup)

	// Identity operations
	router.POST("/tabs/:id/identity/rotate", handlers.RotateIdentity)
	router.POST("/tabs/:id/identity/regenerate", handlers.RegenerateIdentity)

	// Video players
	router.POST("/tabs/:id/videos", handlers.AddVideo)
	router.POST("/tabs/:id/videos/quick", handlers.QuickLaunch)
	router.DELETE("/tabs/:id/videos/:video_id", handlers.RemoveVideo)
	router.POST("/tabs/:id/videos/:video_id/rotate", handlers.RotateVideoIP)
	router.PUT("/tabs/:id/videos/:video_id/playback", handlers.SetPlayback)

	// Identity bookmarks
	router.GET("/bookmarks", handlers.ListBookmarks)
	router.POST("/bookmarks", handlers.SaveBookmark)
	router.POST("/bookmarks/:id/apply", handlers.ApplyBookmark)

	// Tab groups
	router.GET("/groups", handlers.ListGroups)
	router.POST("/groups", handlers.CreateGroup)
	router.DELETE("/groups/:id", handlers.DeleteGroup)

	// WebSocket snapshot stream
	router.GET("/ws", wsHandler.HandleConnection)

	if h := metrics.Handler(); h != nil {
		router.GET("/metrics", gin.WrapH(h))
	}
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))

	s.httpSrv = &nethttp.Server{
		Addr:    addr,
		Handler: s.router,
	}
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	if s.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
			return err
		}
	}

	s.logger.Sync()
	return nil
}
