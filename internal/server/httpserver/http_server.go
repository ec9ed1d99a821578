// Package httpserver wires the API and admin listeners.
package httpserver

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"git.home.luguber.info/inful/policygen/internal/config"
	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
	"git.home.luguber.info/inful/policygen/internal/logfields"
	"git.home.luguber.info/inful/policygen/internal/server/handlers"
	smw "git.home.luguber.info/inful/policygen/internal/server/middleware"
)

// Server manages the API listener and, when enabled, the admin listener.
type Server struct {
	cfg    *config.Config
	opts   Options
	logger *slog.Logger

	apiServer   *http.Server
	adminServer *http.Server

	policyHandlers     *handlers.PolicyHandlers
	monitoringHandlers *handlers.MonitoringHandlers
	historyHandlers    *handlers.HistoryHandlers

	mchain func(http.Handler) http.Handler

	mu      sync.Mutex
	addrs   map[string]string
	running atomic.Bool
}

// New constructs the server wiring. Nothing listens until Start.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.StartTime.IsZero() {
		opts.StartTime = time.Now()
	}
	adapter := errors.NewHTTPErrorAdapter(logger)

	s := &Server{
		cfg:                opts.Config,
		opts:               opts,
		logger:             logger,
		policyHandlers:     handlers.NewPolicyHandlers(opts.Service, adapter),
		monitoringHandlers: handlers.NewMonitoringHandlers(opts.StartTime, opts.Health, adapter),
		historyHandlers:    handlers.NewHistoryHandlers(opts.Service, adapter),
		addrs:              make(map[string]string),
	}
	s.mchain = smw.Chain(smw.Options{
		Logger:       logger,
		Adapter:      adapter,
		Recorder:     opts.Recorder,
		MaxBodyBytes: opts.Config.Server.MaxBodyBytes,
	})
	return s
}

// APIHandler returns the public API routes wrapped in middleware.
func (s *Server) APIHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate-policy", s.policyHandlers.HandleGenerate)
	mux.HandleFunc("POST /api/download-policy", s.policyHandlers.HandleDownload)
	mux.HandleFunc("GET /api/options", s.policyHandlers.HandleOptions)
	mux.HandleFunc("GET /healthz", s.monitoringHandlers.HandleHealthCheck)
	return s.mchain(mux)
}

// AdminHandler returns the admin routes wrapped in middleware.
func (s *Server) AdminHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.monitoringHandlers.HandleHealthCheck)
	if s.opts.MetricsHandler != nil {
		mux.Handle("GET "+s.cfg.Admin.MetricsPath, s.opts.MetricsHandler)
	}
	mux.HandleFunc("GET /api/generations", s.historyHandlers.HandleGenerations)
	return s.mchain(mux)
}

type preBind struct {
	name string
	addr string
	ln   net.Listener
}

// Start binds every listener before serving so that a port conflict fails
// the whole start instead of leaving a partial server behind.
func (s *Server) Start(ctx context.Context) error {
	binds := []preBind{{name: "api", addr: s.cfg.Server.Address}}
	if s.cfg.Admin.Enabled {
		binds = append(binds, preBind{name: "admin", addr: s.cfg.Admin.Address})
	}

	var bindErrs []error
	lc := net.ListenConfig{}
	for i := range binds {
		ln, err := lc.Listen(ctx, "tcp", binds[i].addr)
		if err != nil {
			bindErrs = append(bindErrs, fmt.Errorf("%s address %s: %w", binds[i].name, binds[i].addr, err))
			continue
		}
		binds[i].ln = ln
	}
	if len(bindErrs) > 0 {
		for _, b := range binds {
			if b.ln != nil {
				_ = b.ln.Close()
			}
		}
		return errors.WrapError(stderrors.Join(bindErrs...), errors.CategoryRuntime, "http startup failed").Build()
	}

	s.apiServer = s.newHTTPServer(s.APIHandler())
	s.serve("api", s.apiServer, binds[0].ln)
	if len(binds) > 1 {
		s.adminServer = s.newHTTPServer(s.AdminHandler())
		s.serve("admin", s.adminServer, binds[1].ln)
	}
	s.running.Store(true)

	attrs := []any{slog.String("api", s.Addr("api"))}
	if s.adminServer != nil {
		attrs = append(attrs, slog.String("admin", s.Addr("admin")))
	}
	s.logger.Info("HTTP servers started", attrs...)
	return nil
}

func (s *Server) newHTTPServer(h http.Handler) *http.Server {
	sc := s.cfg.Server
	return &http.Server{
		Handler:           h,
		ReadTimeout:       sc.ReadTimeout,
		ReadHeaderTimeout: sc.ReadTimeout,
		WriteTimeout:      sc.WriteTimeout,
		IdleTimeout:       sc.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
}

// serve launches srv on a pre-bound listener.
func (s *Server) serve(kind string, srv *http.Server, ln net.Listener) {
	s.mu.Lock()
	s.addrs[kind] = ln.Addr().String()
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			s.logger.Error(kind+" server error", logfields.Error(err))
		}
	}()
}

// Addr returns the bound address of the named listener ("api" or "admin").
func (s *Server) Addr(kind string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addrs[kind]
}

// IsRunning reports whether Start succeeded and Stop has not been called.
func (s *Server) IsRunning() bool { return s.running.Load() }

// Stop gracefully shuts down the listeners, admin first.
func (s *Server) Stop(ctx context.Context) error {
	s.running.Store(false)
	var errs []error
	if s.adminServer != nil {
		if err := s.adminServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("admin server shutdown: %w", err))
		}
	}
	if s.apiServer != nil {
		if err := s.apiServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("api server shutdown: %w", err))
		}
	}
	if len(errs) > 0 {
		return errors.WrapError(stderrors.Join(errs...), errors.CategoryRuntime, "http shutdown failed").Build()
	}
	s.logger.Info("HTTP servers stopped")
	return nil
}
