package live

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dashbook/dashbook/dashcore"
	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/settings"
	"github.com/dashbook/dashbook/ulogger"
	"github.com/lightningnetwork/lnd/ticker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

type countingInvalidator struct {
	calls atomic.Int64
}

func (c *countingInvalidator) InvalidateTip() {
	c.calls.Inc()
}

type pollerHarness struct {
	t           *testing.T
	client      *dashcore.Mock
	bus         *Bus
	sub         *Subscription
	invalidator *countingInvalidator
	ticker      *ticker.Force
	poller      *Poller
	ticks       uint64
}

func newPollerHarness(t *testing.T) *pollerHarness {
	h := &pollerHarness{
		t:           t,
		client:      &dashcore.Mock{},
		bus:         NewBus(16),
		invalidator: &countingInvalidator{},
		ticker:      ticker.NewForce(time.Hour),
	}

	h.sub = h.bus.Subscribe()
	h.poller = NewPoller(ulogger.TestLogger{}, h.client, h.bus, h.invalidator, h.ticker, 5)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		h.poller.Run(ctx)
		close(done)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	return h
}

// tick forces one tick and waits until the poller has finished processing it.
func (h *pollerHarness) tick() {
	h.t.Helper()

	h.ticks++
	want := h.ticks

	select {
	case h.ticker.Force <- time.Now():
	case <-time.After(time.Second):
		h.t.Fatal("poller did not accept tick")
	}

	require.Eventually(h.t, func() bool {
		return h.poller.Snapshot().Ticks == want
	}, time.Second, time.Millisecond)
}

func (h *pollerHarness) noEvent() {
	h.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := h.sub.Recv(ctx)
	assert.ErrorIs(h.t, err, context.DeadlineExceeded)
}

func (h *pollerHarness) nextEvent() Event {
	h.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	ev, err := h.sub.Recv(ctx)
	require.NoError(h.t, err)

	return ev
}

func TestPollerBaselineOnly(t *testing.T) {
	h := newPollerHarness(t)
	h.client.On("GetBlockCount", mock.Anything).Return(uint64(100), nil)

	h.tick()
	h.tick()

	assert.Equal(t, uint64(100), h.poller.Snapshot().Height)
	assert.Equal(t, int64(0), h.invalidator.calls.Load())
	h.noEvent()
	h.client.AssertNotCalled(t, "GetBlockHash", mock.Anything, mock.Anything)
}

func TestPollerEmitsOneEventPerHeight(t *testing.T) {
	h := newPollerHarness(t)

	h.client.On("GetBlockCount", mock.Anything).Return(uint64(100), nil).Once()
	h.client.On("GetBlockCount", mock.Anything).Return(uint64(103), nil).Once()

	h.client.On("GetBlockHash", mock.Anything, uint64(101)).Return("h101", nil)
	h.client.On("GetBlockHash", mock.Anything, uint64(102)).Return("h102", nil)
	h.client.On("GetBlockHash", mock.Anything, uint64(103)).Return("h103", nil)

	h.client.On("GetBlock", mock.Anything, "h101", 1).Return(&dashcore.Block{Hash: "h101", Height: 101, NTx: 1}, nil)
	h.client.On("GetBlock", mock.Anything, "h102", 1).Return(nil, errors.NewNetworkTimeoutError("timeout"))
	h.client.On("GetBlock", mock.Anything, "h103", 1).Return(&dashcore.Block{
		Hash:      "h103",
		Height:    103,
		Chainlock: true,
		CbTx:      &dashcore.CbTx{CreditPoolBalance: 12.5},
	}, nil)

	h.tick()
	h.tick()

	first := h.nextEvent()
	assert.Equal(t, EventNewBlock, first.Type)
	assert.Equal(t, uint64(101), first.Data.(*NewBlock).Height)
	assert.InDelta(t, 0.0, first.Data.(*NewBlock).CreditPoolBalance, 1e-9)

	second := h.nextEvent()
	block := second.Data.(*NewBlock)
	assert.Equal(t, uint64(103), block.Height)
	assert.True(t, block.Chainlock)
	assert.InDelta(t, 12.5, block.CreditPoolBalance, 1e-9)
	assert.Greater(t, second.Seq(), first.Seq())

	h.noEvent()

	assert.Equal(t, uint64(103), h.poller.Snapshot().Height)
	assert.Equal(t, int64(1), h.invalidator.calls.Load())
}

func TestPollerCatchesUpInOrder(t *testing.T) {
	tests := []struct {
		name  string
		from  uint64
		to    uint64
		wants []uint64
	}{
		{"one block", 100, 101, []uint64{101}},
		{"three blocks in one tick", 100, 103, []uint64{101, 102, 103}},
		{"five blocks in one tick", 7, 12, []uint64{8, 9, 10, 11, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newPollerHarness(t)

			h.client.On("GetBlockCount", mock.Anything).Return(tt.from, nil).Once()
			h.client.On("GetBlockCount", mock.Anything).Return(tt.to, nil).Once()

			for height := tt.from + 1; height <= tt.to; height++ {
				hash := fmt.Sprintf("h%d", height)
				h.client.On("GetBlockHash", mock.Anything, height).Return(hash, nil).Once()
				h.client.On("GetBlock", mock.Anything, hash, 1).Return(&dashcore.Block{Hash: hash, Height: height}, nil).Once()
			}

			h.tick()
			h.tick()

			var lastSeq uint64

			for _, want := range tt.wants {
				ev := h.nextEvent()
				require.Equal(t, EventNewBlock, ev.Type)

				block := ev.Data.(*NewBlock)
				assert.Equal(t, want, block.Height)
				assert.Equal(t, fmt.Sprintf("h%d", want), block.Hash)
				assert.Greater(t, ev.Seq(), lastSeq)

				lastSeq = ev.Seq()
			}

			h.noEvent()

			assert.Equal(t, tt.to, h.poller.Snapshot().Height)
			assert.Equal(t, int64(1), h.invalidator.calls.Load())
			h.client.AssertNumberOfCalls(t, "GetBlock", len(tt.wants))
		})
	}
}

func TestPollerIgnoresFailedTipCall(t *testing.T) {
	h := newPollerHarness(t)

	h.client.On("GetBlockCount", mock.Anything).Return(uint64(100), nil).Once()
	h.client.On("GetBlockCount", mock.Anything).Return(uint64(0), errors.NewNetworkError("down")).Once()
	h.client.On("GetBlockCount", mock.Anything).Return(uint64(100), nil)

	h.tick()
	h.tick()
	h.tick()

	assert.Equal(t, uint64(100), h.poller.Snapshot().Height)
	assert.Equal(t, int64(0), h.invalidator.calls.Load())
	h.noEvent()
}

func TestPollerMempoolEveryNthTick(t *testing.T) {
	h := newPollerHarness(t)

	h.client.On("GetBlockCount", mock.Anything).Return(uint64(100), nil)
	h.client.On("GetMempoolInfo", mock.Anything).Return(&dashcore.MempoolInfo{Size: 10, Bytes: 2500, TotalFee: 0.01}, nil)

	for i := 0; i < 4; i++ {
		h.tick()
	}

	h.client.AssertNotCalled(t, "GetMempoolInfo", mock.Anything)

	h.tick()

	ev := h.nextEvent()
	assert.Equal(t, EventMempoolUpdate, ev.Type)
	assert.Equal(t, uint64(10), ev.Data.(*MempoolUpdate).Size)
	assert.Equal(t, uint64(10), h.poller.Snapshot().MempoolSize)

	for i := 0; i < 5; i++ {
		h.tick()
	}

	// same size on tick 10
	h.noEvent()
	h.client.AssertNumberOfCalls(t, "GetMempoolInfo", 2)
}

func TestServerLifecycle(t *testing.T) {
	client := &dashcore.Mock{}
	client.On("GetBlockCount", mock.Anything).Return(uint64(5), nil)

	bus := NewBus(4)
	s := NewServer(ulogger.TestLogger{}, testSettings(), client, bus, &countingInvalidator{})

	force := ticker.NewForce(time.Hour)
	s.newTicker = func() ticker.Ticker { return force }

	require.NoError(t, s.Init(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	readyCh := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- s.Start(ctx, readyCh)
	}()

	select {
	case <-readyCh:
	case <-time.After(time.Second):
		t.Fatal("server did not become ready")
	}

	force.Force <- time.Now()

	require.Eventually(t, func() bool {
		return s.Poller().Snapshot().Height == 5
	}, time.Second, time.Millisecond)

	status, msg, err := s.Health(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Contains(t, msg, "tip 5")

	sub := bus.Subscribe()

	cancel()
	require.NoError(t, <-done)
	require.NoError(t, s.Stop(context.Background()))

	_, err = sub.Recv(context.Background())
	assert.True(t, errors.Is(err, ErrBusClosed))
}

func testSettings() *settings.Settings {
	return &settings.Settings{
		Live: settings.LiveSettings{
			PollInterval:       time.Hour,
			MempoolEveryNTicks: 5,
			BusCapacity:        4,
		},
	}
}
