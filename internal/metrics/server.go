package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/espegro/ledboard-bridge/internal/logger"
)

const indexPage = `<html>
<head><title>LED Board Bridge Metrics</title></head>
<body>
<h1>LED Board Bridge</h1>
<p><a href="/metrics">Metrics</a></p>
<p><a href="/board">Board status</a></p>
</body>
</html>`

// Server serves /metrics, the board status and an index page
type Server struct {
	port        int
	boardOnline func() bool
	server      *http.Server
	listener    net.Listener
}

// NewServer creates a metrics server on port. boardOnline reports the
// probe state for /board; nil means unknown.
func NewServer(port int, boardOnline func() bool) *Server {
	return &Server{
		port:        port,
		boardOnline: boardOnline,
	}
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/board", s.handleBoard)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, indexPage)
	})
	return mux
}

// handleBoard answers 200 when the board is online and 503 otherwise
func (s *Server) handleBoard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	switch {
	case s.boardOnline == nil:
		fmt.Fprintln(w, "unknown")
	case s.boardOnline():
		fmt.Fprintln(w, "online")
	default:
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintln(w, "offline")
	}
}

// Start binds the port and serves in the background. A busy port is
// returned as an error.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("listening on :%d: %w", s.port, err)
	}
	s.listener = ln

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Metrics server listening on %s", ln.Addr())
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server error: %v", err)
		}
	}()

	return nil
}

// Addr returns the bound address, or "" before Start
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop gracefully stops the metrics server
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	logger.Info("Shutting down metrics server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
