// Package web serves the server-rendered household ledger UI.
package web

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/konta/internal/auth"
	"github.com/mmynk/konta/internal/ledger"
	"github.com/mmynk/konta/internal/metrics"
	"github.com/mmynk/konta/internal/money"
	appweb "github.com/mmynk/konta/web"
)

type requestIDKey struct{}

// Server renders the ledger pages and handles their form posts.
type Server struct {
	ledger    *ledger.Ledger
	guard     *auth.Guard
	metrics   *metrics.Metrics
	logger    *slog.Logger
	templates *template.Template

	staticMaxAge  int
	secureCookies bool
	now           func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records HTTP request counts.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithStaticMaxAge sets the Cache-Control max-age for /static/ assets.
func WithStaticMaxAge(seconds int) Option {
	return func(s *Server) { s.staticMaxAge = seconds }
}

// WithSecureCookies marks the session cookie Secure (HTTPS deployments).
func WithSecureCookies(secure bool) Option {
	return func(s *Server) { s.secureCookies = secure }
}

// New parses the embedded templates and returns a Server.
func New(l *ledger.Ledger, guard *auth.Guard, opts ...Option) (*Server, error) {
	s := &Server{
		ledger:       l,
		guard:        guard,
		logger:       slog.Default(),
		staticMaxAge: 3600,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	t, err := template.New("").Funcs(template.FuncMap{
		"money": money.Format,
		"date": func(t time.Time) string {
			return t.Local().Format("2006-01-02 15:04")
		},
	}).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.templates = t
	return s, nil
}

// Handler returns the routed handler with security headers, request IDs,
// logging and metrics applied to every route.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		cacheControl := "public, max-age=" + strconv.Itoa(s.staticMaxAge)
		mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", cacheControl)
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)

	mux.Handle("GET /{$}", s.requireSession(s.handleIndex))
	mux.Handle("GET /members", s.requireSession(s.handleMembers))
	mux.Handle("POST /members", s.requireSession(s.handleAddMember))
	mux.Handle("GET /members/{id}/edit", s.requireSession(s.handleEditMemberPage))
	mux.Handle("POST /members/{id}/edit", s.requireSession(s.handleEditMember))
	mux.Handle("POST /members/{id}/delete", s.requireSession(s.handleDeleteMember))
	mux.Handle("GET /members/{id}/pay", s.requireSession(s.handlePayPage))
	mux.Handle("POST /members/{id}/pay", s.requireSession(s.handlePay))
	mux.Handle("GET /pay-all", s.requireSession(s.handlePayAllPage))
	mux.Handle("POST /pay-all", s.requireSession(s.handlePayAll))
	mux.Handle("GET /bills", s.requireSession(s.handleBills))
	mux.Handle("POST /bills", s.requireSession(s.handleAddBill))
	mux.Handle("GET /bills/{id}/edit", s.requireSession(s.handleEditBillPage))
	mux.Handle("POST /bills/{id}/edit", s.requireSession(s.handleEditBill))
	mux.Handle("POST /bills/{id}/delete", s.requireSession(s.handleDeleteBill))
	mux.Handle("GET /log", s.requireSession(s.handleLog))
	mux.Handle("GET /notify", s.requireSession(s.handleNotify))

	return s.withRequestLogging(s.withSecurityHeaders(mux))
}

// withSecurityHeaders sets the browser hardening headers.
func (s *Server) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Content-Security-Policy", "default-src 'self'; style-src 'self'; img-src 'self' data:; form-action 'self'")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// withRequestLogging tags each request with an ID, logs start and
// completion and counts the response status per route.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		w.Header().Set("X-Request-ID", requestID)
		s.logger.DebugContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveHTTP(route, rw.statusCode)
		s.logger.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// RequestID returns the ID assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
