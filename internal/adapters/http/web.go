package web

import (
	"crypto/rand"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"powerpump/internal/adapters/http/middleware"
	"powerpump/internal/adapters/metrics"
	"powerpump/internal/adapters/storage"
	"powerpump/internal/application/orchestrators"
	"powerpump/internal/application/projections"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed content/*.md
var contentFS embed.FS

// Stores holds all storage dependencies.
type Stores struct {
	MemberStore     orchestrators.MemberStore
	AttendanceStore orchestrators.AttendanceStore
}

// Options configures the HTTP surface.
type Options struct {
	Verifier           orchestrators.CredentialVerifier // required
	Mailer             orchestrators.WelcomeMailer      // optional: nil skips welcome emails
	Metrics            *metrics.Recorder                // optional
	Health             storage.HealthChecker            // optional: nil reports healthy
	Location           *time.Location                   // defines "today"; nil means local time
	Now                func() time.Time                 // injectable for testing
	CSRFKey            []byte                           // 32 bytes; nil generates a per-process key
	Production         bool
	TrustedOrigins     []string
	SlowRequest        time.Duration
	RateLimitPerSecond int // zero uses DefaultRateLimitPerSecond
}

// DefaultRateLimitPerSecond is the per-IP request budget.
const DefaultRateLimitPerSecond = 10

// server carries the handlers' dependencies.
// writeLock serialises every registry and ledger read-modify-write.
type server struct {
	stores    *Stores
	opts      Options
	sessions  *middleware.SessionStore
	writeLock sync.Mutex
	landing   []template.HTML
}

// NewMux wires HTTP handlers for the app.
// The returned stop function ends background work owned by the handler.
func NewMux(s *Stores, opts Options) (http.Handler, func(), error) {
	if s == nil || s.MemberStore == nil || s.AttendanceStore == nil {
		return nil, nil, errors.New("web: member and attendance stores are required")
	}
	if opts.Verifier == nil {
		return nil, nil, errors.New("web: credential verifier is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RateLimitPerSecond <= 0 {
		opts.RateLimitPerSecond = DefaultRateLimitPerSecond
	}

	csrfKey, err := resolveCSRFKey(opts.CSRFKey, opts.Production)
	if err != nil {
		return nil, nil, err
	}
	landing, err := renderLanding()
	if err != nil {
		return nil, nil, err
	}

	srv := &server{
		stores:   s,
		opts:     opts,
		sessions: middleware.NewSessionStore(),
		landing:  landing,
	}
	middleware.SecureCookies = opts.Production

	mux := http.NewServeMux()
	srv.registerRoutes(mux)

	limiter := middleware.NewRateLimiter(opts.RateLimitPerSecond, time.Second)

	// Request order: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> mux
	handler := middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, middleware.CSRFOptions{Secure: opts.Production, TrustedOrigins: opts.TrustedOrigins}),
		middleware.Auth(srv.sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(opts.Metrics, opts.SlowRequest, func(r *http.Request) string { return routeLabel(r.URL.Path) }),
	)
	return handler, limiter.Stop, nil
}

// resolveCSRFKey returns the configured key, or a random one outside production.
func resolveCSRFKey(key []byte, production bool) ([]byte, error) {
	if len(key) == 32 {
		return key, nil
	}
	if len(key) != 0 {
		return nil, fmt.Errorf("web: CSRF key must be 32 bytes, got %d", len(key))
	}
	if production {
		return nil, errors.New("web: CSRF key is required in production")
	}
	key = make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate CSRF key: %w", err)
	}
	slog.Warn("csrf_event", "event", "random_key", "detail", "form tokens will not survive a restart")
	return key, nil
}

func (s *server) clockDeps() orchestrators.ClockDeps {
	return orchestrators.ClockDeps{
		MemberStore:     s.stores.MemberStore,
		AttendanceStore: s.stores.AttendanceStore,
		Lock:            &s.writeLock,
		Now:             s.opts.Now,
		Location:        s.opts.Location,
		Metrics:         s.opts.Metrics,
	}
}

func (s *server) clock() projections.Clock {
	return projections.Clock{Now: s.opts.Now, Location: s.opts.Location}
}

func (s *server) attendanceDeps() projections.AttendanceDeps {
	return projections.AttendanceDeps{AttendanceStore: s.stores.AttendanceStore, Clock: s.clock()}
}

func (s *server) dashboardDeps() projections.DashboardDeps {
	return projections.DashboardDeps{
		MemberStore:     s.stores.MemberStore,
		AttendanceStore: s.stores.AttendanceStore,
		Clock:           s.clock(),
	}
}

func (s *server) memberWriteDeps() orchestrators.MemberWriteDeps {
	return orchestrators.MemberWriteDeps{
		MemberStore: s.stores.MemberStore,
		Lock:        &s.writeLock,
		Metrics:     s.opts.Metrics,
	}
}

func (s *server) addMemberDeps() orchestrators.AddMemberDeps {
	return orchestrators.AddMemberDeps{
		MemberStore: s.stores.MemberStore,
		Lock:        &s.writeLock,
		Now:         s.opts.Now,
		Mailer:      s.opts.Mailer,
		Metrics:     s.opts.Metrics,
	}
}
