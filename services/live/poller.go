package live

import (
	"context"
	"time"

	"github.com/dashbook/dashbook/dashcore"
	"github.com/dashbook/dashbook/model"
	"github.com/dashbook/dashbook/ulogger"
	"github.com/lightningnetwork/lnd/ticker"
	"go.uber.org/atomic"
)

const (
	DefaultPollInterval       = 2 * time.Second
	DefaultMempoolEveryNTicks = 5
)

// Invalidator drops the cache entries that depend on the current tip.
type Invalidator interface {
	InvalidateTip()
}

// TipState is the poller's last observed view of the node.
type TipState struct {
	Height      uint64
	MempoolSize uint64
	Ticks       uint64 // completed ticks
}

// Poller detects new blocks and mempool changes. All state is written by the Run goroutine only,
// Snapshot may be called from anywhere.
type Poller struct {
	logger             ulogger.Logger
	client             dashcore.ClientI
	bus                *Bus
	invalidator        Invalidator
	ticker             ticker.Ticker
	mempoolEveryNTicks uint64

	height      *atomic.Uint64
	baseline    *atomic.Bool
	mempoolSize *atomic.Uint64
	ticks       *atomic.Uint64
}

func NewPoller(logger ulogger.Logger, client dashcore.ClientI, bus *Bus, invalidator Invalidator, t ticker.Ticker, mempoolEveryNTicks int) *Poller {
	if mempoolEveryNTicks <= 0 {
		mempoolEveryNTicks = DefaultMempoolEveryNTicks
	}

	initPrometheusMetrics()

	return &Poller{
		logger:             logger,
		client:             client,
		bus:                bus,
		invalidator:        invalidator,
		ticker:             t,
		mempoolEveryNTicks: uint64(mempoolEveryNTicks),
		height:             atomic.NewUint64(0),
		baseline:           atomic.NewBool(false),
		mempoolSize:        atomic.NewUint64(0),
		ticks:              atomic.NewUint64(0),
	}
}

func (p *Poller) Snapshot() TipState {
	return TipState{
		Height:      p.height.Load(),
		MempoolSize: p.mempoolSize.Load(),
		Ticks:       p.ticks.Load(),
	}
}

// Run polls until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	p.ticker.Resume()
	defer p.ticker.Stop()

	p.logger.Infof("[Poller] started")

	for {
		select {
		case <-ctx.Done():
			p.logger.Infof("[Poller] stopped")
			return
		case <-p.ticker.Ticks():
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	tick := p.ticks.Load() + 1

	p.checkTip(ctx)

	if tick%p.mempoolEveryNTicks == 0 {
		p.checkMempool(ctx)
	}

	p.ticks.Store(tick)
	prometheusLivePollerTicks.Inc()
}

func (p *Poller) checkTip(ctx context.Context) {
	height, err := p.client.GetBlockCount(ctx)
	if err != nil {
		prometheusLivePollerErrors.WithLabelValues("getblockcount").Inc()
		p.logger.Warnf("[Poller] getblockcount failed: %v", err)

		return
	}

	if !p.baseline.Load() {
		p.height.Store(height)
		p.baseline.Store(true)
		p.logger.Infof("[Poller] baseline height %d", height)

		return
	}

	prev := p.height.Load()

	if height > prev {
		for h := prev + 1; h <= height; h++ {
			if ctx.Err() != nil {
				return
			}

			p.emitBlock(ctx, h)
		}

		p.invalidator.InvalidateTip()
	}

	// recorded even if some heights could not be fetched, those are not retried
	p.height.Store(height)
	prometheusLiveTipHeight.Set(float64(height))
}

func (p *Poller) emitBlock(ctx context.Context, height uint64) {
	hash, err := p.client.GetBlockHash(ctx, height)
	if err != nil {
		prometheusLivePollerErrors.WithLabelValues("getblockhash").Inc()
		p.logger.Warnf("[Poller] getblockhash %d failed, skipping: %v", height, err)

		return
	}

	block, err := p.client.GetBlock(ctx, hash, 1)
	if err != nil {
		prometheusLivePollerErrors.WithLabelValues("getblock").Inc()
		p.logger.Warnf("[Poller] getblock %s at height %d failed, skipping: %v", hash, height, err)

		return
	}

	p.bus.Publish(NewBlockEvent(&NewBlock{
		Hash:              block.Hash,
		Height:            block.Height,
		Time:              block.Time,
		NTx:               block.NTx,
		Chainlock:         block.Chainlock,
		CreditPoolBalance: model.CreditPoolBalance(block),
	}))

	p.logger.Infof("[Poller] new block %s at height %d", shortHash(hash), height)
}

func (p *Poller) checkMempool(ctx context.Context) {
	info, err := p.client.GetMempoolInfo(ctx)
	if err != nil {
		prometheusLivePollerErrors.WithLabelValues("getmempoolinfo").Inc()
		p.logger.Warnf("[Poller] getmempoolinfo failed: %v", err)

		return
	}

	if info.Size == p.mempoolSize.Load() {
		return
	}

	p.bus.Publish(NewMempoolUpdateEvent(&MempoolUpdate{
		Size:     info.Size,
		Bytes:    info.Bytes,
		TotalFee: info.TotalFee,
	}))

	p.mempoolSize.Store(info.Size)
}

func shortHash(hash string) string {
	if len(hash) > 16 {
		return hash[:16]
	}

	return hash
}
