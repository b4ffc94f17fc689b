package daemon

import (
	"context"

	"github.com/dashbook/dashbook/dashcore"
	"github.com/dashbook/dashbook/settings"
	"github.com/dashbook/dashbook/ulogger"
)

// Option is a functional option type for configuring the Daemon.
type Option func(*Daemon)

// WithLoggerFactory provides a custom logger factory for the Daemon and its services.
func WithLoggerFactory(factory func(serviceName string) ulogger.Logger) Option {
	return func(d *Daemon) {
		d.loggerFactory = factory
	}
}

// WithContext allows setting a custom context for the Daemon.
func WithContext(ctx context.Context) Option {
	return func(d *Daemon) {
		d.Ctx = ctx
	}
}

// WithClientFactory replaces how the node client is built, tests hand in a mock here.
func WithClientFactory(factory func(logger ulogger.Logger, tSettings *settings.Settings) (dashcore.ClientI, error)) Option {
	return func(d *Daemon) {
		d.clientFactory = factory
	}
}
