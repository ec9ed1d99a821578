package commands

import (
	"context"
	"io"
	"log/slog"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"git.home.luguber.info/inful/policygen/internal/config"
	"git.home.luguber.info/inful/policygen/internal/events"
	"git.home.luguber.info/inful/policygen/internal/eventstore"
	"git.home.luguber.info/inful/policygen/internal/logfields"
	"git.home.luguber.info/inful/policygen/internal/metrics"
	"git.home.luguber.info/inful/policygen/internal/scheduler"
	"git.home.luguber.info/inful/policygen/internal/server/httpserver"
	"git.home.luguber.info/inful/policygen/internal/service"
	"git.home.luguber.info/inful/policygen/internal/services"
)

// Component names registered with the orchestrator and shown by /healthz.
const (
	componentHistory = "history"
	componentPruner  = "history-pruner"
	componentEvents  = "events"
	componentHTTP    = "http"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Address string `short:"a" help:"Override server.address from the configuration"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if s.Address != "" {
		cfg.Server.Address = s.Address
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunServe(ctx, cfg, g.Logger)
}

// Stack is the set of long-running components behind 'serve'.
type Stack struct {
	Orchestrator *services.Orchestrator
	Server       *httpserver.Server
	Service      *service.PolicyService
}

// BuildStack wires the configured components and registers them with an
// orchestrator. Nothing is started. Resources opened before a failure are
// closed again.
func BuildStack(cfg *config.Config, logger *slog.Logger) (st *Stack, err error) {
	orch := services.NewOrchestrator(logger)
	var opened []io.Closer
	defer func() {
		if err != nil {
			for _, c := range slices.Backward(opened) {
				_ = c.Close()
			}
		}
	}()

	reg := metrics.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)
	var httpDeps []string

	var store eventstore.Store
	if cfg.History.Enabled {
		sqlite, err := eventstore.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		store = sqlite
		opened = append(opened, sqlite)
		if err := orch.Register(services.NewResourceService(componentHistory, sqlite, nil)); err != nil {
			return nil, err
		}
		pruner, err := scheduler.NewHistoryPruner(sqlite, cfg.History, logger)
		if err != nil {
			return nil, err
		}
		if err := orch.Register(services.NewSchedulerService(componentPruner, pruner, componentHistory)); err != nil {
			return nil, err
		}
		httpDeps = append(httpDeps, componentHistory)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		nats, err := events.NewNATSPublisher(cfg.Events, logger)
		if err != nil {
			return nil, err
		}
		publisher = nats
		opened = append(opened, nats)
		if err := orch.Register(services.NewResourceService(componentEvents, nats, nil)); err != nil {
			return nil, err
		}
		httpDeps = append(httpDeps, componentEvents)
	}

	svc := service.New(service.Options{
		Renderer:  newRenderer(cfg),
		Recorder:  recorder,
		Store:     store,
		Publisher: publisher,
		Logger:    logger,
	})
	srv := httpserver.New(httpserver.Options{
		Config:         cfg,
		Service:        svc,
		Logger:         logger,
		Recorder:       recorder,
		MetricsHandler: metrics.HTTPHandler(reg),
		Health:         orch,
		StartTime:      time.Now(),
	})
	if err := orch.Register(services.NewHTTPServerService(componentHTTP, srv, httpDeps...)); err != nil {
		return nil, err
	}
	return &Stack{Orchestrator: orch, Server: srv, Service: svc}, nil
}

// RunServe starts the stack and blocks until ctx is cancelled, then stops
// every component within the configured shutdown timeout.
func RunServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	st, err := BuildStack(cfg, logger)
	if err != nil {
		return err
	}
	if err := st.Orchestrator.StartAll(ctx); err != nil {
		return err
	}
	logger.Info("Policy service started",
		slog.String("api", st.Server.Addr("api")),
		slog.Bool("history", st.Service.HistoryEnabled()))

	<-ctx.Done()
	logger.Info("Shutdown signal received, stopping")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer stopCancel()
	if err := st.Orchestrator.StopAll(stopCtx); err != nil {
		logger.Error("Shutdown incomplete", logfields.Error(err))
		return err
	}
	logger.Info("Policy service stopped")
	return nil
}
