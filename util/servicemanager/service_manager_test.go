package servicemanager

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	name      string
	failInit  bool
	failStart bool
	unhealthy bool

	events  *eventLog
	stopped atomic.Bool
}

type eventLog struct {
	mu   sync.Mutex
	list []string
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.list...)
}

func newFakeService(name string, events *eventLog) *fakeService {
	return &fakeService{name: name, events: events}
}

func (s *fakeService) record(event string) {
	s.events.mu.Lock()
	defer s.events.mu.Unlock()

	s.events.list = append(s.events.list, s.name+":"+event)
}

func (s *fakeService) Init(ctx context.Context) error {
	if s.failInit {
		return errors.NewServiceError("init failed")
	}

	return nil
}

func (s *fakeService) Start(ctx context.Context, readyCh chan<- struct{}) error {
	s.record("start")
	close(readyCh)

	if s.failStart {
		return errors.NewServiceError("mock service failure")
	}

	<-ctx.Done()

	return ctx.Err()
}

func (s *fakeService) Stop(ctx context.Context) error {
	s.stopped.Store(true)
	s.record("stop")

	return nil
}

func (s *fakeService) Health(ctx context.Context, checkLiveness bool) (int, string, error) {
	if s.unhealthy {
		return http.StatusServiceUnavailable, `{"message": "down"}`, nil
	}

	return http.StatusOK, "OK", nil
}

func TestNewServiceManager(t *testing.T) {
	sm := NewServiceManager(context.Background(), ulogger.TestLogger{})

	assert.NotNil(t, sm.Ctx)
	assert.NotNil(t, sm.g)
	assert.Empty(t, sm.snapshot())

	sm.ForceShutdown()
	require.NoError(t, sm.Wait())
}

func TestListenerInfos(t *testing.T) {
	mu.Lock()
	listeners = nil
	mu.Unlock()

	AddListenerInfo("zebra")
	AddListenerInfo("alpha")

	assert.Equal(t, []string{"alpha", "zebra"}, GetListenerInfos())
}

func TestServiceManagerStartStopOrder(t *testing.T) {
	events := &eventLog{}

	sm := NewServiceManager(context.Background(), ulogger.TestLogger{})

	first := newFakeService("poller", events)
	second := newFakeService("asset", events)

	require.NoError(t, sm.AddService("poller", first))
	require.NoError(t, sm.AddService("asset", second))

	sm.WaitForServiceToBeReady()
	assert.Empty(t, sm.ServicesNotReady())

	sm.ForceShutdown()
	require.NoError(t, sm.Wait())

	assert.True(t, first.stopped.Load())
	assert.True(t, second.stopped.Load())

	// stop runs in reverse order
	all := events.all()
	require.Len(t, all, 4)
	assert.Equal(t, "asset:stop", all[2])
	assert.Equal(t, "poller:stop", all[3])
}

func TestServiceManagerInitFailure(t *testing.T) {
	events := &eventLog{}

	sm := NewServiceManager(context.Background(), ulogger.TestLogger{})

	svc := newFakeService("broken", events)
	svc.failInit = true

	err := sm.AddService("broken", svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrServiceError))

	sm.ForceShutdown()
}

func TestServiceManagerStartFailureStopsOthers(t *testing.T) {
	events := &eventLog{}

	sm := NewServiceManager(context.Background(), ulogger.TestLogger{})

	healthy := newFakeService("poller", events)
	failing := newFakeService("asset", events)
	failing.failStart = true

	require.NoError(t, sm.AddService("poller", healthy))
	require.NoError(t, sm.AddService("asset", failing))

	done := make(chan error, 1)

	go func() {
		done <- sm.Wait()
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mock service failure")
	case <-time.After(5 * time.Second):
		t.Fatal("service manager did not stop")
	}

	assert.True(t, healthy.stopped.Load())
}

func TestServiceManagerHealthHandler(t *testing.T) {
	events := &eventLog{}

	sm := NewServiceManager(context.Background(), ulogger.TestLogger{})
	defer sm.ForceShutdown()

	require.NoError(t, sm.AddService("poller", newFakeService("poller", events)))

	status, body, err := sm.HealthHandler(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	var report healthReport
	require.NoError(t, json.Unmarshal([]byte(body), &report))
	require.Len(t, report.Services, 1)
	assert.Equal(t, "poller", report.Services[0].Service)
	assert.Equal(t, "OK", report.Services[0].Message)

	down := newFakeService("asset", events)
	down.unhealthy = true
	require.NoError(t, sm.AddService("asset", down))

	status, body, err = sm.HealthHandler(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, status)

	report = healthReport{}
	require.NoError(t, json.Unmarshal([]byte(body), &report))
	require.Len(t, report.Services, 2)
	assert.JSONEq(t, `{"message": "down"}`, string(report.Services[1].Dependencies))
}
