// Package asset wires the read repository and the HTTP surface into a managed service.
package asset

import (
	"context"
	"net"
	"net/http"

	"github.com/dashbook/dashbook/dashcore"
	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/services/address"
	"github.com/dashbook/dashbook/services/asset/httpimpl"
	"github.com/dashbook/dashbook/services/asset/repository"
	"github.com/dashbook/dashbook/services/live"
	"github.com/dashbook/dashbook/settings"
	"github.com/dashbook/dashbook/stores/cache"
	"github.com/dashbook/dashbook/ulogger"
	"github.com/dashbook/dashbook/util/health"
)

// Server serves the explorer API on asset_httpListenAddress.
type Server struct {
	logger      ulogger.Logger
	settings    *settings.Settings
	client      dashcore.ClientI
	caches      *cache.Caches
	bus         *live.Bus
	healthCheck httpimpl.HealthFunc
	repository  *repository.Repository
	httpServer  *httpimpl.HTTP
}

// NewServer will return a server instance with the logger stored within it
func NewServer(logger ulogger.Logger, tSettings *settings.Settings, client dashcore.ClientI, caches *cache.Caches, bus *live.Bus) *Server {
	return &Server{
		logger:   logger,
		settings: tSettings,
		client:   client,
		caches:   caches,
		bus:      bus,
	}
}

// SetHealthCheck replaces what /health reports. It must be called before Init.
func (v *Server) SetHealthCheck(fn httpimpl.HealthFunc) {
	v.healthCheck = fn
}

func (v *Server) Health(ctx context.Context, checkLiveness bool) (int, string, error) {
	if checkLiveness {
		return health.CheckAll(ctx, checkLiveness, nil)
	}

	checks := []health.Check{
		{Name: "Repository", Check: v.repositoryHealth},
	}

	return health.CheckAll(ctx, checkLiveness, checks)
}

func (v *Server) repositoryHealth(ctx context.Context, checkLiveness bool) (int, string, error) {
	if v.repository == nil {
		return http.StatusServiceUnavailable, "repository not initialised", errors.NewServiceNotStartedError("[Asset] not initialised")
	}

	return v.repository.Health(ctx, checkLiveness)
}

func (v *Server) Init(ctx context.Context) (err error) {
	if v.settings.Asset.HTTPListenAddress == "" {
		return errors.NewConfigurationError("no asset_httpListenAddress setting found")
	}

	addressEngine := address.NewEngine(v.logger, v.client, v.settings)

	v.repository, err = repository.NewRepository(v.logger, v.settings, v.client, v.caches, addressEngine)
	if err != nil {
		return errors.NewServiceError("[Asset] error creating repository", err)
	}

	v.httpServer, err = httpimpl.New(v.logger, v.settings, v.repository, v.bus)
	if err != nil {
		return errors.NewServiceError("[Asset] error creating http server", err)
	}

	v.httpServer.SetHealthCheck(v.healthCheck)

	if err = v.httpServer.Init(ctx); err != nil {
		return errors.NewServiceError("[Asset] error initializing http server", err)
	}

	return nil
}

// Start binds the listener, reports ready and serves until ctx is done.
func (v *Server) Start(ctx context.Context, readyCh chan<- struct{}) error {
	addr := v.settings.Asset.HTTPListenAddress

	if err := v.httpServer.Listen(addr); err != nil {
		return err
	}

	close(readyCh)

	if err := v.httpServer.Start(ctx, addr); err != nil {
		v.logger.Errorf("[Asset] error in http server: %v", err)
		return err
	}

	return nil
}

func (v *Server) Stop(ctx context.Context) error {
	if v.httpServer != nil {
		v.logger.Infof("[Asset] Stopping http server")

		if err := v.httpServer.Stop(ctx); err != nil {
			v.logger.Errorf("[Asset] error stopping http server: %v", err)
		}
	}

	return nil
}

// Addr is the bound listen address, nil before Start.
func (v *Server) Addr() net.Addr {
	if v.httpServer == nil {
		return nil
	}

	return v.httpServer.Addr()
}
