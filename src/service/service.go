// Package service wires the blacklist store, the check adapter and the MCP
// upstream together and keeps them running.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Easy-Infra-Ltd/easy-phishcheck/src/blacklist"
	"github.com/Easy-Infra-Ltd/easy-phishcheck/src/boundary"
	"github.com/Easy-Infra-Ltd/easy-phishcheck/src/config"
	"github.com/Easy-Infra-Ltd/easy-phishcheck/src/transport"
)

// Service is the top-level orchestrator.
type Service struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *blacklist.Store
	adapter  *boundary.Adapter
	upstream *transport.Upstream
}

// New creates a Service from the given config and logger. Nothing is loaded
// until Run or Reload.
func New(cfg config.Config, logger *slog.Logger) *Service {
	store := blacklist.NewStore()
	s := &Service{
		cfg:      cfg,
		logger:   logger.With("area", "service"),
		store:    store,
		adapter:  boundary.New(store, logger),
		upstream: transport.NewUpstream(cfg.Upstream, logger),
	}
	s.registerTools()
	return s
}

// Reload loads the blacklist at path, or the configured path when path is
// empty, and installs it. The previous blacklist is kept on failure.
func (s *Service) Reload(path string) (*blacklist.Blacklist, error) {
	if path == "" {
		path = s.cfg.Blacklist.Path
	}
	bl, err := s.store.LoadAndInstall(path)
	if err != nil {
		s.logger.Error("blacklist reload failed", "path", path, "err", err)
		return nil, err
	}
	s.logger.Info("blacklist installed", "path", path, "domains", bl.Len(), "id", bl.ID)
	return bl, nil
}

// Run loads the configured blacklist, then serves MCP clients and reloads on
// SIGHUP until SIGINT/SIGTERM, ctx cancellation, or the upstream closing.
func (s *Service) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.logger.Info("starting phishcheck", "version", transport.Version)

	if _, err := s.Reload(""); err != nil {
		if s.cfg.BlacklistRequired() {
			return fmt.Errorf("initial blacklist load: %w", err)
		}
		s.logger.Warn("starting without a blacklist, every check will be clean until a reload succeeds")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return s.upstream.Run(ctx)
	})

	g.Go(func() error {
		s.reloadOnHangup(ctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("stopped with error", "err", err)
		return err
	}
	s.logger.Info("stopped")
	return nil
}

func (s *Service) reloadOnHangup(ctx context.Context) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			s.logger.Info("received SIGHUP, reloading blacklist")
			// Reload logs both outcomes and keeps the old blacklist on failure.
			s.Reload("")
		}
	}
}
