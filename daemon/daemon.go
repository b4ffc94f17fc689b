// Package daemon builds the node client and the caches, checks the node is reachable and
// runs the live poller and the asset service under one service manager.
package daemon

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dashbook/dashbook/dashcore"
	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/services/asset"
	"github.com/dashbook/dashbook/services/live"
	"github.com/dashbook/dashbook/settings"
	"github.com/dashbook/dashbook/stores/cache"
	"github.com/dashbook/dashbook/ulogger"
	"github.com/dashbook/dashbook/util/servicemanager"
	"github.com/dashbook/dashbook/util/tracing"
	"github.com/ordishs/gocore"
)

const (
	serviceLive  = "Live"
	serviceAsset = "Asset"

	startupCheckTimeout = 10 * time.Second
)

var pprofRegistered atomic.Bool

type Daemon struct {
	Ctx            context.Context
	ServiceManager *servicemanager.ServiceManager

	doneCh        chan struct{}
	closeDoneOnce sync.Once
	stopCh        chan struct{}
	closeStopOnce sync.Once

	loggerFactory func(serviceName string) ulogger.Logger
	clientFactory func(logger ulogger.Logger, tSettings *settings.Settings) (dashcore.ClientI, error)

	mu          sync.Mutex
	caches      *cache.Caches
	assetServer *asset.Server
}

func New(opts ...Option) *Daemon {
	d := &Daemon{
		Ctx:    context.Background(),
		doneCh: make(chan struct{}),
		stopCh: make(chan struct{}),
		loggerFactory: func(serviceName string) ulogger.Logger {
			return ulogger.New(serviceName)
		},
		clientFactory: func(logger ulogger.Logger, tSettings *settings.Settings) (dashcore.ClientI, error) {
			return dashcore.NewClient(logger, tSettings)
		},
	}

	for _, opt := range opts {
		opt(d)
	}

	d.ServiceManager = servicemanager.NewServiceManager(d.Ctx, d.loggerFactory("ServiceManager"))

	return d
}

// Start blocks until the services stop, either through a signal, a failing service or Stop.
// An unreachable node is reported as an error before any service starts.
func (d *Daemon) Start(logger ulogger.Logger, tSettings *settings.Settings, readyCh ...chan struct{}) error {
	defer d.closeStopOnce.Do(func() { close(d.stopCh) })

	sm := d.ServiceManager

	var readyChInternal chan struct{}
	if len(readyCh) > 0 {
		readyChInternal = readyCh[0]
	}

	if err := d.startServices(sm.Ctx, logger, tSettings, sm, readyChInternal); err != nil {
		sm.ForceShutdown()
		_ = sm.Wait()

		d.closeCaches()

		return err
	}

	waitErr := make(chan error, 1)

	go func() {
		waitErr <- sm.Wait()
	}()

	var err error

	select {
	case err = <-waitErr:
		if err != nil {
			logger.Errorf("services failed: %v", err)
		}
	case <-d.doneCh:
		logger.Infof("daemon shutdown requested")

		sm.ForceShutdown()

		logger.Infof("daemon shutdown waiting for services to finish")

		if err = <-waitErr; err != nil {
			logger.Errorf("error during service shutdown: %v", err)
		}

		logger.Infof("daemon shutdown completed")
	}

	d.closeCaches()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if tErr := tracing.ShutdownTracer(shutdownCtx); tErr != nil {
		logger.Warnf("failed to shut down tracer: %v", tErr)
	}

	return err
}

// Stop asks a running Start to shut down and waits for it, 10 seconds by default.
func (d *Daemon) Stop(timeout ...time.Duration) error {
	d.closeDoneOnce.Do(func() { close(d.doneCh) })

	shutdownTimeout := 10 * time.Second
	if len(timeout) > 0 {
		shutdownTimeout = timeout[0]
	}

	select {
	case <-d.stopCh:
		return nil
	case <-time.After(shutdownTimeout):
		return errors.NewProcessingError("timeout waiting for services to stop after %v, not ready: %v", shutdownTimeout, d.ServiceManager.ServicesNotReady())
	}
}

// AssetServer is nil until the services have been added.
func (d *Daemon) AssetServer() *asset.Server {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.assetServer
}

func (d *Daemon) startServices(ctx context.Context, logger ulogger.Logger, tSettings *settings.Settings,
	sm *servicemanager.ServiceManager, readyCh chan<- struct{}) error {
	startProfiler(logger, tSettings)

	if tSettings.Tracing.Enabled {
		logger.Infof("Starting tracer")

		if err := tracing.InitTracer(tSettings); err != nil {
			logger.Warnf("failed to initialize tracer: %v", err)
		}
	}

	client, err := d.clientFactory(d.loggerFactory("dashcore"), tSettings)
	if err != nil {
		return errors.NewServiceError("[Daemon] error creating node client", err)
	}

	if err = checkNode(ctx, logger, client, tSettings); err != nil {
		return err
	}

	caches := cache.NewCaches(tSettings)
	bus := live.NewBus(tSettings.Live.BusCapacity)

	d.mu.Lock()
	d.caches = caches
	d.mu.Unlock()

	liveServer := live.NewServer(d.loggerFactory("live"), tSettings, client, bus, caches)
	if err = sm.AddService(serviceLive, liveServer); err != nil {
		return err
	}

	assetServer := asset.NewServer(d.loggerFactory("asset"), tSettings, client, caches, bus)
	assetServer.SetHealthCheck(sm.HealthHandler)

	if err = sm.AddService(serviceAsset, assetServer); err != nil {
		return err
	}

	d.mu.Lock()
	d.assetServer = assetServer
	d.mu.Unlock()

	if readyCh != nil {
		allReady := make(chan struct{})

		go func() {
			sm.WaitForServiceToBeReady()
			close(allReady)
		}()

		// a service that fails before it is ready cancels ctx
		select {
		case <-allReady:
			close(readyCh)
		case <-ctx.Done():
			logger.Warnf("[Daemon] services not ready before shutdown: %v", sm.ServicesNotReady())
		}
	}

	return nil
}

// checkNode makes one getblockcount call so a wrong url or credentials fail the start
// instead of every request.
func checkNode(ctx context.Context, logger ulogger.Logger, client dashcore.ClientI, tSettings *settings.Settings) error {
	ctx, cancel := context.WithTimeout(ctx, startupCheckTimeout)
	defer cancel()

	height, err := client.GetBlockCount(ctx)
	if err != nil {
		return errors.NewServiceUnavailableError("[Daemon] dash core at %s is not reachable", tSettings.RPC.URL.Redacted(), err)
	}

	logger.Infof("[Daemon] connected to dash core at %s, tip height %d", tSettings.RPC.URL.Redacted(), height)

	return nil
}

func (d *Daemon) closeCaches() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.caches != nil {
		d.caches.Stop()
		d.caches = nil
	}
}

// startProfiler serves pprof and the gocore stats on profilerAddr when it is set.
func startProfiler(logger ulogger.Logger, tSettings *settings.Settings) {
	profilerAddr := tSettings.ProfilerAddr
	if profilerAddr == "" || !pprofRegistered.CompareAndSwap(false, true) {
		return
	}

	go func() {
		logger.Infof("Profiler listening on http://%s/debug/pprof", profilerAddr)

		gocore.RegisterStatsHandlers()

		logger.Infof("StatsServer listening on http://%s%sstats", profilerAddr, tSettings.StatsPrefix)

		server := &http.Server{
			Addr:              profilerAddr,
			Handler:           nil,
			ReadHeaderTimeout: 20 * time.Second,
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		logger.Errorf("profiler stopped: %v", server.ListenAndServe())
	}()
}
