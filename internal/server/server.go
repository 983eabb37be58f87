// Package server exposes the word cloud generator over HTTP
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linuxmatters/lyricloud/internal/cache"
	"github.com/linuxmatters/lyricloud/internal/config"
	"github.com/linuxmatters/lyricloud/internal/fonts"
	"github.com/linuxmatters/lyricloud/internal/store"
	"github.com/linuxmatters/lyricloud/internal/wordcloud"
	"golang.org/x/time/rate"
)

const (
	serviceName     = "wordcloud"
	shutdownTimeout = 10 * time.Second
)

// GenerateFunc renders a word cloud; wordcloud.Generate in production
type GenerateFunc func(ctx context.Context, opts wordcloud.Options) (*wordcloud.Result, error)

type Server struct {
	cfg      config.Server
	generate GenerateFunc
	fonts    *fonts.Discoverer
	store    store.Store
	cache    *cache.Cache
	limiter  *rate.Limiter
	engine   *gin.Engine
}

type Option func(*Server)

func WithStore(s store.Store) Option { return func(srv *Server) { srv.store = s } }

func WithCache(c *cache.Cache) Option { return func(srv *Server) { srv.cache = c } }

func WithGenerator(g GenerateFunc) Option { return func(srv *Server) { srv.generate = g } }

func WithFonts(d *fonts.Discoverer) Option { return func(srv *Server) { srv.fonts = d } }

// New builds the server and its routes
func New(cfg config.Server, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		generate: wordcloud.Generate,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fonts == nil {
		s.fonts = fonts.NewDiscoverer(cfg.Fonts.Dir, cfg.Fonts.Download)
	}
	if cfg.Limits.RateRPS > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Limits.RateRPS), cfg.Limits.RateBurst)
	}

	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(corsMiddleware(s.cfg.HTTP.CORSOrigins))

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	api.POST("/wordcloud",
		RateLimitMiddleware(s.limiter),
		BodyLimitMiddleware(s.cfg.Limits.MaxBodyBytes),
		s.handleWordcloud,
	)
	api.GET("/wordcloud/:id", s.handleImage)

	return r
}

// Handler returns the HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTP.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on http://%s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// SetGinMode switches gin to release mode in production
func SetGinMode(env string) {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}
