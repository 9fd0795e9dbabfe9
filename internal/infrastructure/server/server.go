package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/PocketOS/internal/api/http"
	"github.com/GriffinCanCode/PocketOS/internal/api/middleware"
	"github.com/GriffinCanCode/PocketOS/internal/api/ws"
	"github.com/GriffinCanCode/PocketOS/internal/domain/catalog"
	"github.com/GriffinCanCode/PocketOS/internal/domain/device"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/scheduler"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/PocketOS/internal/providers/ai"
	"github.com/GriffinCanCode/PocketOS/internal/providers/storage"
)

const shutdownTimeout = 10 * time.Second

// Option customizes server assembly
type Option func(*options)

type options struct {
	clock  scheduler.Clock
	ai     ai.Service
	logger *logging.Logger
}

// WithClock replaces the wall clock driving the device
func WithClock(c scheduler.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithAI replaces the HTTP assistant client
func WithAI(s ai.Service) Option {
	return func(o *options) { o.ai = s }
}

// WithLogger replaces the configured logger
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	device  *device.Device
	hub     *ws.Hub
	store   storage.Store
	tracer  *tracing.Tracer
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// New assembles the device and its API. The device is not started; Run
// starts it.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		var err error
		logger, err = newLogger(cfg.Logging)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("Initializing PocketOS",
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("catalog_dir", cfg.Catalog.Dir),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("pocketos", logger.Component("trace").Logger)

	store, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("open settings store: %w", err)
	}

	apps, err := catalog.Load(ctx, cfg.Catalog.Dir)
	if err != nil {
		tracer.Close()
		store.Close()
		return nil, fmt.Errorf("load app catalog: %w", err)
	}
	logger.Info("App catalog loaded", zap.Int("apps", apps.Len()))

	assistant := o.ai
	if assistant == nil {
		if cfg.AI.APIKey == "" {
			logger.Warn("AI_API_KEY not set; assistant apps will show their fallback replies")
		}
		assistant = ai.NewClient(cfg.AI, metrics, logger)
	}

	var dev *device.Device
	hub := ws.NewHub(func() any { return dev.Snapshot() }, metrics, logger)
	dev, err = device.New(device.Options{
		Clock:   o.clock,
		Store:   store,
		Catalog: apps,
		AI:      assistant,
		Sink:    hub,
		Metrics: metrics,
		Logger:  logger,
	})
	if err != nil {
		tracer.Close()
		store.Close()
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	apihttp.NewHandlers(dev, metrics, logger).Register(router)
	router.GET("/stream", hub.HandleConnection)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.Snapshot())
	})

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		device:  dev,
		hub:     hub,
		store:   store,
		tracer:  tracer,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

func newLogger(cfg config.LogConfig) (*logging.Logger, error) {
	lc := logging.DefaultConfig()
	if cfg.Development {
		lc = logging.DevelopmentConfig()
	}
	if cfg.Level != "" {
		lc.Level = cfg.Level
	}
	return logging.New(lc)
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Device returns the simulated handset
func (s *Server) Device() *device.Device {
	return s.device
}

// Run boots the device and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	s.device.Start(ctx)

	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// Close stops the device and releases the store
func (s *Server) Close() error {
	s.hub.Close()
	s.device.Close()
	s.tracer.Close()

	var err error
	if cerr := s.store.Close(); cerr != nil {
		s.logger.Error("Failed to close settings store", zap.Error(cerr))
		err = fmt.Errorf("close settings store: %w", cerr)
	}
	_ = s.logger.Sync()
	return err
}
