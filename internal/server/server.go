package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okgoogle13/resume-copilot/internal/config"
	"github.com/okgoogle13/resume-copilot/internal/gateway"
	"github.com/okgoogle13/resume-copilot/internal/llm"
	"github.com/okgoogle13/resume-copilot/internal/profile"
	"github.com/okgoogle13/resume-copilot/internal/rendering"
	"github.com/okgoogle13/resume-copilot/internal/server/middleware"
	"github.com/okgoogle13/resume-copilot/internal/server/ratelimit"
)

// Server is the HTTP server wiring the wizard, AI gateway, profile storage
// and identity together.
type Server struct {
	httpServer  *http.Server
	llmClient   llm.Client
	store       profile.Store
	sessions    *SessionManager
	renderer    *rendering.Renderer
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	useBrowser  bool
}

// New builds a server from configuration. With DATABASE_URL set, profiles
// and accounts live in Postgres; otherwise profiles go to JSON files under
// the profile directory and accounts are in-memory.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}

	var (
		store     profile.Store
		userStore UserStore
	)
	if cfg.DatabaseURL != "" {
		pg, err := profile.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			client.Close()
			return nil, err
		}
		store = pg
		userStore = NewPostgresUserStore(pg.Pool())
	} else {
		fs, err := profile.NewFileStore(cfg.ProfileDir)
		if err != nil {
			client.Close()
			return nil, err
		}
		store = fs
		userStore = NewMemoryUserStore()
		log.Printf("[SERVER] no DATABASE_URL set; accounts are in-memory and reset on restart")
	}

	renderer, err := rendering.NewRenderer()
	if err != nil {
		client.Close()
		return nil, err
	}

	gw := gateway.New(client)

	s := &Server{
		llmClient:  client,
		store:      store,
		sessions:   NewSessionManager(gw, store),
		renderer:   renderer,
		useBrowser: cfg.UseBrowser,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	s.userService = NewUserService(userStore, cfg.Password)
	s.jwtService = NewJWTService(cfg.JWT)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	requireAuth := middleware.Auth(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("GET /users/me", requireAuth(http.HandlerFunc(s.authHandler.Me)))
	mux.Handle("PUT /users/me/password", requireAuth(http.HandlerFunc(s.authHandler.UpdatePassword)))

	mux.Handle("POST /sessions", requireAuth(http.HandlerFunc(s.handleCreateSession)))
	mux.Handle("GET /sessions/{id}", requireAuth(http.HandlerFunc(s.handleGetSession)))
	mux.Handle("DELETE /sessions/{id}", requireAuth(http.HandlerFunc(s.handleDeleteSession)))
	mux.Handle("POST /sessions/{id}/events", requireAuth(http.HandlerFunc(s.handleSessionEvent)))
	mux.Handle("GET /sessions/{id}/export", requireAuth(http.HandlerFunc(s.handleExport)))
	mux.Handle("GET /sessions/{id}/export/bundle", requireAuth(http.HandlerFunc(s.handleExportBundle)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // generation and PDF export are slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start listens for requests until an interrupt, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[SERVER] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[SERVER] serve error: %v", err)
		}
	}()

	<-stop
	log.Println("[SERVER] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if closer, ok := s.store.(interface{ Close() }); ok {
		closer.Close()
	}
	s.llmClient.Close()

	log.Println("[SERVER] stopped")
	return nil
}

// withCORS adds CORS headers for browser clients.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit enforces per-client limits.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with its duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[SERVER] %s %s %s (%v)", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[SERVER] error encoding JSON response: %v", err)
	}
}

// extractClientID identifies the client by IP for rate limiting.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}
	writeJSON(w, http.StatusTooManyRequests, response)
}
