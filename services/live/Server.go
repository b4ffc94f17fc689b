package live

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dashbook/dashbook/dashcore"
	"github.com/dashbook/dashbook/settings"
	"github.com/dashbook/dashbook/ulogger"
	"github.com/lightningnetwork/lnd/ticker"
)

// Server runs the poller as a managed service and owns the bus it publishes to.
type Server struct {
	logger      ulogger.Logger
	settings    *settings.Settings
	client      dashcore.ClientI
	invalidator Invalidator
	bus         *Bus
	poller      *Poller
	newTicker   func() ticker.Ticker
}

func NewServer(logger ulogger.Logger, tSettings *settings.Settings, client dashcore.ClientI, bus *Bus, invalidator Invalidator) *Server {
	interval := tSettings.Live.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Server{
		logger:      logger,
		settings:    tSettings,
		client:      client,
		invalidator: invalidator,
		bus:         bus,
		newTicker: func() ticker.Ticker {
			return ticker.New(interval)
		},
	}
}

func (s *Server) Bus() *Bus {
	return s.bus
}

// Poller is nil until Init has run.
func (s *Server) Poller() *Poller {
	return s.poller
}

func (s *Server) Health(ctx context.Context, checkLiveness bool) (int, string, error) {
	if checkLiveness || s.poller == nil {
		return http.StatusOK, "OK", nil
	}

	state := s.poller.Snapshot()

	return http.StatusOK, "tip " + strconv.FormatUint(state.Height, 10) + ", subscribers " + strconv.Itoa(s.bus.Subscribers()), nil
}

func (s *Server) Init(ctx context.Context) error {
	s.poller = NewPoller(s.logger, s.client, s.bus, s.invalidator, s.newTicker(), s.settings.Live.MempoolEveryNTicks)

	return nil
}

// Start blocks running the poller until ctx is done.
func (s *Server) Start(ctx context.Context, readyCh chan<- struct{}) error {
	close(readyCh)

	s.poller.Run(ctx)

	return nil
}

func (s *Server) Stop(_ context.Context) error {
	s.logger.Infof("[Live] closing event bus")
	s.bus.Close()

	return nil
}
