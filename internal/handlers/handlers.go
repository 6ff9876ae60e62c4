package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"

	"github.com/draftspin/draftspin/internal/services"
	"github.com/draftspin/draftspin/internal/session"
	"github.com/draftspin/draftspin/internal/websocket"
)

// SessionCookie is the cookie carrying the draft session token.
const SessionCookie = "draftspin_session"

// NewStaticServer creates a static file server from an fs.FS
func NewStaticServer(staticFS fs.FS) http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// Templates holds all parsed HTML templates
type Templates struct {
	Index *template.Template
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Draft        *services.DraftService
	Sessions     *session.Manager
	Hub          *websocket.Hub
	Log          HTTPLogger
	templates    *Templates
	staticServer http.Handler

	baseURLMu sync.RWMutex
	baseURL   string
}

// New creates a new Handlers instance with all dependencies
func New(
	draft *services.DraftService,
	sessions *session.Manager,
	hub *websocket.Hub,
	templatesFS fs.FS,
	staticServer http.Handler,
	log HTTPLogger,
) (*Handlers, error) {
	templates, err := loadTemplates(templatesFS)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &Handlers{
		Draft:        draft,
		Sessions:     sessions,
		Hub:          hub,
		Log:          log,
		templates:    templates,
		staticServer: staticServer,
	}, nil
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance without loading templates
// (for testing API endpoints)
func NewForTesting(draft *services.DraftService, sessions *session.Manager) *Handlers {
	return &Handlers{
		Draft:    draft,
		Sessions: sessions,
		Log:      NoopHTTPLogger{},
		// templates left nil - API endpoints don't use templates
	}
}

// SetBaseURL records the externally reachable URL used for QR codes.
func (h *Handlers) SetBaseURL(url string) {
	h.baseURLMu.Lock()
	h.baseURL = url
	h.baseURLMu.Unlock()
}

// BaseURL returns the configured base URL.
func (h *Handlers) BaseURL() string {
	h.baseURLMu.RLock()
	defer h.baseURLMu.RUnlock()
	return h.baseURL
}

// loadTemplates parses all templates once at startup
func loadTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{}
	var err error

	if t.Index, err = template.ParseFS(templatesFS, "index.html"); err != nil {
		return nil, fmt.Errorf("index template: %w", err)
	}

	return t, nil
}

// sessionFromRequest resolves the request's draft session, creating one
// (and setting the cookie) for first-time visitors.
func (h *Handlers) sessionFromRequest(w http.ResponseWriter, r *http.Request) *session.Session {
	var token string
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		token = cookie.Value
	}

	sess, created := h.Sessions.GetOrCreate(token)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sess.Token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}
