package daemon

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dashbook/dashbook/dashcore"
	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/settings"
	"github.com/dashbook/dashbook/ulogger"
	"github.com/dashbook/dashbook/util/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestDaemon(client dashcore.ClientI) *Daemon {
	return New(
		WithLoggerFactory(func(string) ulogger.Logger { return ulogger.TestLogger{} }),
		WithClientFactory(func(ulogger.Logger, *settings.Settings) (dashcore.ClientI, error) {
			return client, nil
		}),
	)
}

func testSettings() *settings.Settings {
	tSettings := test.CreateBaseTestSettings()
	tSettings.Live.PollInterval = time.Hour

	return tSettings
}

func TestStartFailsWhenNodeIsUnreachable(t *testing.T) {
	client := &dashcore.Mock{}
	client.On("GetBlockCount", mock.Anything).Return(uint64(0), errors.NewNetworkConnectionRefusedError("connection refused"))

	d := newTestDaemon(client)

	err := d.Start(ulogger.TestLogger{}, testSettings())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrServiceUnavailable))
	assert.Nil(t, d.AssetServer())

	// Start already returned, so Stop does not wait
	require.NoError(t, d.Stop(time.Second))
}

func TestStartFailsWhenClientCannotBeBuilt(t *testing.T) {
	d := New(
		WithLoggerFactory(func(string) ulogger.Logger { return ulogger.TestLogger{} }),
		WithClientFactory(func(ulogger.Logger, *settings.Settings) (dashcore.ClientI, error) {
			return nil, errors.NewConfigurationError("bad rpc url")
		}),
	)

	require.Error(t, d.Start(ulogger.TestLogger{}, testSettings()))
}

func TestStartAndStop(t *testing.T) {
	client := &dashcore.Mock{}
	client.On("GetBlockCount", mock.Anything).Return(uint64(1000), nil)
	client.On("Health", mock.Anything, mock.Anything).Return(http.StatusOK, "block count 1000", nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := New(
		WithContext(ctx),
		WithLoggerFactory(func(string) ulogger.Logger { return ulogger.TestLogger{} }),
		WithClientFactory(func(ulogger.Logger, *settings.Settings) (dashcore.ClientI, error) {
			return client, nil
		}),
	)

	logger := ulogger.NewErrorTestLogger(t)
	t.Cleanup(logger.Shutdown)

	readyCh := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- d.Start(logger, testSettings(), readyCh)
	}()

	select {
	case <-readyCh:
	case err := <-done:
		t.Fatalf("daemon did not start: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("daemon not ready in time")
	}

	server := d.AssetServer()
	require.NotNil(t, server)
	require.NotNil(t, server.Addr())

	resp, err := http.Get("http://" + server.Addr().String() + "/alive") //nolint:gosec,noctx // test server
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, d.Stop(5*time.Second))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}
