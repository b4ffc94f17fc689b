// Package servicemanager runs the daemon's services: one Init and Start each, ordered
// start, reverse-order stop, shared cancellation and aggregated health.
package servicemanager

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/ulogger"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type serviceWrapper struct {
	name     string
	instance Service
	started  chan struct{}   // closed right before Start is called
	after    <-chan struct{} // started channel of the previously added service, nil for the first
	readyCh  chan struct{}
}

var (
	mu        sync.RWMutex
	listeners []string
)

// ServiceManager starts services in registration order, stops them in reverse order
// and aggregates their health. The first service error cancels Ctx for all of them.
type ServiceManager struct {
	mu           sync.Mutex
	services     []*serviceWrapper
	logger       ulogger.Logger
	Ctx          context.Context
	cancelFunc   context.CancelFunc
	g            *errgroup.Group
	startTimeout time.Duration
}

// NewServiceManager creates a service manager whose context is cancelled on SIGINT or SIGTERM.
func NewServiceManager(ctx context.Context, logger ulogger.Logger) *ServiceManager {
	ctx, cancelFunc := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)

	sm := &ServiceManager{
		logger:       logger,
		Ctx:          ctx,
		cancelFunc:   cancelFunc,
		g:            g,
		startTimeout: 5 * time.Second,
	}

	go sm.watchSignals(ctx)

	return sm
}

func (sm *ServiceManager) watchSignals(ctx context.Context) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	defer signal.Stop(sigs)

	select {
	case sig := <-sigs:
		sm.logger.Infof("🟠 Received %s. Stopping services...", sig)
		sm.cancelFunc()
	case <-ctx.Done():
	}
}

// AddListenerInfo records a listener description, for example "Asset HTTP listening on 0.0.0.0:3000".
func AddListenerInfo(name string) {
	mu.Lock()
	defer mu.Unlock()

	listeners = append(listeners, name)
}

// GetListenerInfos returns the recorded listeners sorted alphabetically.
func GetListenerInfos() []string {
	mu.RLock()
	defer mu.RUnlock()

	sorted := append([]string(nil), listeners...)
	sort.Strings(sorted)

	return sorted
}

func (sm *ServiceManager) snapshot() []*serviceWrapper {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return append([]*serviceWrapper(nil), sm.services...)
}

// AddService initializes the service and starts it once the previously added service has started.
func (sm *ServiceManager) AddService(name string, service Service) error {
	sw := &serviceWrapper{
		name:     name,
		instance: service,
		started:  make(chan struct{}),
		readyCh:  make(chan struct{}),
	}

	sm.mu.Lock()
	if n := len(sm.services); n > 0 {
		sw.after = sm.services[n-1].started
	}

	sm.services = append(sm.services, sw)
	sm.mu.Unlock()

	sm.logger.Infof("⚪️ Initializing service %s...", name)

	if err := service.Init(sm.Ctx); err != nil {
		return errors.NewServiceError("[%s] failed to initialize", name, err)
	}

	sm.logger.Infof("🟢 Starting service %s...", name)

	sm.g.Go(func() error {
		if err := sm.waitForPrevious(sw); err != nil {
			return err
		}

		close(sw.started)

		if err := service.Start(sm.Ctx, sw.readyCh); err != nil {
			sm.logger.Errorf("Error from service start %s: %v", name, err)
			return err
		}

		return nil
	})

	return nil
}

func (sm *ServiceManager) waitForPrevious(sw *serviceWrapper) error {
	if sw.after == nil {
		return nil
	}

	timer := time.NewTimer(sm.startTimeout)
	defer timer.Stop()

	select {
	case <-sw.after:
		return nil
	case <-timer.C:
		return errors.NewServiceError("%s timed out waiting for the previous service to start", sw.name)
	}
}

// WaitForServiceToBeReady blocks until all registered services have closed their ready channel.
func (sm *ServiceManager) WaitForServiceToBeReady() {
	for _, sw := range sm.snapshot() {
		<-sw.readyCh
		sm.logger.Infof("🟢 Service %s is ready", sw.name)
	}
}

// ServicesNotReady returns the names of services that have not signalled readiness yet.
func (sm *ServiceManager) ServicesNotReady() []string {
	var notReady []string

	for _, sw := range sm.snapshot() {
		select {
		case <-sw.readyCh:
		default:
			notReady = append(notReady, sw.name)
		}
	}

	return notReady
}

// ForceShutdown cancels the manager context, which makes every Start return.
func (sm *ServiceManager) ForceShutdown() {
	sm.cancelFunc()
}

// Wait blocks until all services have returned, then stops them in reverse order.
// A shutdown through context cancellation is not an error.
func (sm *ServiceManager) Wait() error {
	err := sm.g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		sm.logger.Errorf("Received error: %v", err)
	}

	services := sm.snapshot()

	for i := len(services) - 1; i >= 0; i-- {
		sm.stop(services[i])
	}

	sm.logger.Infof("🛑 All services stopped.")

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func (sm *ServiceManager) stop(sw *serviceWrapper) {
	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sm.logger.Infof("🟠 Stopping service %s...", sw.name)

	if err := sw.instance.Stop(stopCtx); err != nil {
		sm.logger.Warnf("[%s] Failed to stop service: %v", sw.name, err)
		return
	}

	sm.logger.Infof("[%s] Service stopped gracefully", sw.name)
}

type serviceHealth struct {
	Service      string              `json:"service"`
	Status       int                 `json:"status"`
	Error        string              `json:"error,omitempty"`
	Dependencies jsoniter.RawMessage `json:"dependencies,omitempty"`
	Message      string              `json:"message,omitempty"`
}

type healthReport struct {
	Status   int             `json:"status"`
	Services []serviceHealth `json:"services"`
}

// HealthHandler aggregates the health of all services. Any unhealthy service makes the result 503.
func (sm *ServiceManager) HealthHandler(ctx context.Context, checkLiveness bool) (int, string, error) {
	services := sm.snapshot()

	report := healthReport{
		Status:   http.StatusOK,
		Services: make([]serviceHealth, 0, len(services)),
	}

	for _, sw := range services {
		status, details, err := sw.instance.Health(ctx, checkLiveness)
		if err != nil || status != http.StatusOK {
			report.Status = http.StatusServiceUnavailable
		}

		entry := serviceHealth{Service: sw.name, Status: status}

		if err != nil {
			entry.Error = err.Error()
		}

		if len(details) > 0 && details[0] == '{' && json.Valid([]byte(details)) {
			entry.Dependencies = jsoniter.RawMessage(details)
		} else {
			entry.Message = details
		}

		report.Services = append(report.Services, entry)
	}

	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return http.StatusInternalServerError, "", err
	}

	return report.Status, string(b), nil
}
