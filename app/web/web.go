// Package web implements the HTTP server for jobsrc: JSON API for job sources and the uploads file server
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"golang.org/x/crypto/bcrypt"

	"github.com/umputun/jobsrc/app/persistence"
	"github.com/umputun/jobsrc/app/sources"
)

// Server represents the web server
type Server struct {
	sources         SourcesManager
	uploads         http.Handler
	baseURL         string // base URL path for reverse proxy (e.g., /jobsrc), empty for root
	version         string
	jwtSecret       []byte            // hmac secret for bearer tokens, empty disables bearer auth
	users           map[string]string // user name -> bcrypt hash for basic auth
	comparePassword func(hash, password []byte) error
	rateLimit       float64 // max mutating requests per second per ip
	csrfProtection  *http.CrossOriginProtection
}

// SourcesManager defines job source operations served by the API
type SourcesManager interface {
	ListForUser(ctx context.Context, user sources.User) ([]persistence.JobSource, error)
	ListAll(ctx context.Context) ([]persistence.JobSource, error)
	CreateOrUpdate(ctx context.Context, user sources.User, label string) (persistence.JobSource, error)
	DeleteByID(ctx context.Context, user sources.User, id string) (persistence.JobSource, error)
}

// Config holds server configuration
type Config struct {
	Sources   SourcesManager
	Uploads   http.Handler // serves "GET /uploads/{path...}"
	BaseURL   string       // base URL path for reverse proxy (e.g., /jobsrc), empty for root
	Version   string
	JWTSecret string            // empty disables bearer auth
	Users     map[string]string // user name -> bcrypt hash, empty disables basic auth
	RateLimit float64           // mutating requests per second per ip, defaults to 10
}

// New creates a new web server
func New(cfg Config) (*Server, error) {
	if cfg.Sources == nil {
		return nil, errors.New("web server initialization failed: sources manager is required")
	}
	if cfg.Uploads == nil {
		return nil, errors.New("web server initialization failed: uploads handler is required")
	}

	rateLimit := cfg.RateLimit
	if rateLimit <= 0 {
		rateLimit = 10
	}

	s := &Server{
		sources:         cfg.Sources,
		uploads:         cfg.Uploads,
		baseURL:         cfg.BaseURL,
		version:         cfg.Version,
		users:           cfg.Users,
		comparePassword: bcrypt.CompareHashAndPassword,
		rateLimit:       rateLimit,
		csrfProtection:  http.NewCrossOriginProtection(),
	}
	if cfg.JWTSecret != "" {
		s.jwtSecret = []byte(cfg.JWTSecret)
	}
	if len(s.jwtSecret) == 0 && len(s.users) == 0 {
		log.Printf("[WARN] no jwt secret and no users configured, authenticated endpoints will reject everyone")
	}
	return s, nil
}

// Run starts the web server and blocks until ctx is canceled
func (s *Server) Run(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown server: %v", err)
		}
	}()

	log.Printf("[INFO] starting web server on %s", address)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// handler returns the http.Handler with base URL wrapping applied
func (s *Server) handler() http.Handler {
	routes := s.routes()
	if s.baseURL == "" {
		return routes
	}

	mux := http.NewServeMux()
	mux.HandleFunc(s.baseURL, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.baseURL+"/", http.StatusMovedPermanently)
	})
	mux.Handle(s.baseURL+"/", http.StripPrefix(s.baseURL, routes))
	return mux
}

// routes returns the http.Handler with all routes configured
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	router.Use(
		rest.RealIP,
		rest.Recoverer(log.Default()),
		rest.Throttle(1000),
		rest.AppInfo("jobsrc", "umputun", s.version),
		rest.Ping,
		rest.Trace,
		rest.SizeLimit(64*1024), // 64KB max request size
		logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler,
	)

	router.Handle("GET /uploads/{path...}", s.uploads)

	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)
		api.Use(s.identify)
		api.HandleFunc("GET /sources", s.handleListSources)
		api.HandleFunc("GET /sources/all", s.handleListAllSources)

		mutating := api.With(s.csrfProtection.Handler, tollbooth.HTTPMiddleware(s.limiter()))
		mutating.HandleFunc("POST /sources", s.handleCreateSource)
		mutating.HandleFunc("DELETE /sources/{id}", s.handleDeleteSource)
	})

	return router
}

// limiter makes per-ip rate limiter for mutating endpoints, ip taken from RemoteAddr set by rest.RealIP
func (s *Server) limiter() *limiter.Limiter {
	lmt := tollbooth.NewLimiter(s.rateLimit, nil)
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})
	lmt.SetMessageContentType("application/json")
	lmt.SetMessage(`{"error": "Too many requests"}`)
	return lmt
}
