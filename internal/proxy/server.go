package proxy

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/sandeepkv93/focuslist/internal/httpmw"
)

const defaultShutdownTimeout = 5 * time.Second

type ServerConfig struct {
	Addr            string
	AllowedOrigin   string
	ShutdownTimeout time.Duration
}

type Server struct {
	cfg     ServerConfig
	handler *Handler
	logger  *log.Logger
	server  *http.Server
}

func NewServer(cfg ServerConfig, handler *Handler, logger *log.Logger) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{cfg: cfg, handler: handler, logger: logger}
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/gpt", s.handler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return httpmw.Chain(mux,
		httpmw.WithRequestID,
		httpmw.WithRecover(s.logger),
		httpmw.WithAccessLog(s.logger),
		httpmw.WithCORS(s.cfg.AllowedOrigin),
	)
}

// Start listens on the configured address and blocks until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			httpmw.Log(s.logger, "error", "shutdown_failed", map[string]any{"error": err.Error()})
		}
	}()

	httpmw.Log(s.logger, "info", "proxy_listening", map[string]any{"addr": ln.Addr().String()})
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	httpmw.Log(s.logger, "info", "proxy_stopped", nil)
	return nil
}
