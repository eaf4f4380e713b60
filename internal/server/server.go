package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"StrataScan/internal/cache"
	"StrataScan/internal/layer"
	"StrataScan/internal/pipeline"
	"StrataScan/internal/recorder"
)

// Server exposes the analysis pipeline over HTTP.
type Server struct {
	analyzer *pipeline.Analyzer
	macro    *layer.MacroAnalyzer
	store    *cache.RunStore
	recorder recorder.Recorder
	log      zerolog.Logger

	http *http.Server
}

func New(addr, mode string, analyzer *pipeline.Analyzer, macro *layer.MacroAnalyzer, store *cache.RunStore, rec recorder.Recorder, log zerolog.Logger) *Server {
	gin.SetMode(mode)

	s := &Server{
		analyzer: analyzer,
		macro:    macro,
		store:    store,
		recorder: rec,
		log:      log.With().Str("component", "server").Logger(),
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logging(s.log, "/health"), CORS())

	router.GET("/health", s.handleHealth)
	api := router.Group("/api")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.GET("/analysis/latest", s.handleLatest)
		api.GET("/analysis/runs/:id", s.handleRunByID)
		api.GET("/macro", s.handleMacro)
	}

	s.http = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("http server listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("http server shutting down")
	return s.http.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }
