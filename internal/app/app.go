package app

import (
	"context"
	"fmt"
	"io/fs"
	"math/rand"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/draftspin/draftspin/internal/handlers"
	"github.com/draftspin/draftspin/internal/logger"
	"github.com/draftspin/draftspin/internal/services"
	"github.com/draftspin/draftspin/internal/session"
	"github.com/draftspin/draftspin/internal/websocket"
	"github.com/draftspin/draftspin/pkg/sportsfeed"
)

// App holds all application dependencies
type App struct {
	log           logger.Logger
	handlers      *handlers.Handlers
	cancelSweeper context.CancelFunc
}

// New creates and initializes a new application instance
func New(log logger.Logger, feed sportsfeed.Client, templatesFS, staticFS fs.FS, seed int64) (*App, error) {
	// Separate rand streams for the spin and the AI engine
	engine := services.NewEngine(log, feed, rand.New(rand.NewSource(seed)))
	draft := services.NewDraftService(log, feed, engine, rand.New(rand.NewSource(seed+1)))

	sessions := session.NewManager(log, session.DefaultIdleTTL)

	// Initialize WebSocket hub and wire it into the draft service
	hub := websocket.New(log)
	hub.Start()
	draft.SetBroadcaster(hub)

	// Sweep idle sessions with context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go sessions.StartSweeper(ctx)

	staticServer := handlers.NewStaticServer(staticFS)

	h, err := handlers.New(draft, sessions, hub, templatesFS, staticServer, log)
	if err != nil {
		cancel() // Clean up sweeper goroutine
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return &App{
		log:           log,
		handlers:      h,
		cancelSweeper: cancel,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Close performs graceful shutdown of app resources
func (a *App) Close() {
	if a.cancelSweeper != nil {
		a.cancelSweeper()
	}
}

// Run starts the HTTP server
func (a *App) Run(addr string) error {
	// Advertise the LAN address so the QR code is scannable from phones
	ip := getPreferredIP(realNetworkProvider{})
	baseURL := fmt.Sprintf("http://%s%s", ip, addr)
	a.handlers.SetBaseURL(baseURL)

	a.log.Info("Server starting", "url", baseURL)
	return http.ListenAndServe(addr, a.Router())
}

// networkInterface wraps net.Interface for testing
type networkInterface interface {
	Flags() net.Flags
	Addrs() ([]net.Addr, error)
}

// realInterface wraps a real net.Interface
type realInterface struct {
	iface net.Interface
}

func (r realInterface) Flags() net.Flags {
	return r.iface.Flags
}

func (r realInterface) Addrs() ([]net.Addr, error) {
	return r.iface.Addrs()
}

// networkProvider is an interface for getting network interfaces (for testing)
type networkProvider interface {
	Interfaces() ([]networkInterface, error)
}

// realNetworkProvider implements networkProvider using actual net package
type realNetworkProvider struct{}

func (realNetworkProvider) Interfaces() ([]networkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	result := make([]networkInterface, len(ifaces))
	for i, iface := range ifaces {
		result[i] = realInterface{iface: iface}
	}
	return result, nil
}

// getPreferredIP returns the best IP address for LAN access.
// Prefers private network addresses (192.168.x.x, 10.x.x.x, 172.16-31.x.x).
// Falls back to localhost if no suitable address is found.
func getPreferredIP(provider networkProvider) string {
	ifaces, err := provider.Interfaces()
	if err != nil {
		return "localhost"
	}

	var candidates []net.IP

	for _, iface := range ifaces {
		// Skip down, loopback, and point-to-point interfaces
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			// Only consider IPv4 addresses
			if ip == nil || ip.To4() == nil {
				continue
			}

			if ip.IsLoopback() {
				continue
			}

			candidates = append(candidates, ip)
		}
	}

	// Prefer private network addresses
	for _, ip := range candidates {
		ipStr := ip.String()
		if strings.HasPrefix(ipStr, "192.168.") ||
			strings.HasPrefix(ipStr, "10.") ||
			isPrivate172(ip) {
			return ipStr
		}
	}

	// Fall back to any non-loopback if no private address found
	if len(candidates) > 0 {
		return candidates[0].String()
	}

	return "localhost"
}

// isPrivate172 checks if IP is in 172.16.0.0/12 range
func isPrivate172(ip net.IP) bool {
	if ip4 := ip.To4(); ip4 != nil {
		return ip4[0] == 172 && ip4[1] >= 16 && ip4[1] <= 31
	}
	return false
}
