// Package address builds paginated, balance annotated snapshots of a single address
// from the node's address index.
package address

import (
	"context"

	"github.com/dashbook/dashbook/dashcore"
	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/model"
	"github.com/dashbook/dashbook/settings"
	"github.com/dashbook/dashbook/ulogger"
	"github.com/dashbook/dashbook/util/tracing"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultLimit            = 50
	DefaultMaxLimit         = 200
	DefaultBulkDeltaMaxTxs  = 10_000
	DefaultUtxoMaxTxs       = 50_000
	DefaultFetchConcurrency = 8

	strategyBulk  = "bulk"
	strategyPerTx = "per_tx"
)

var tracer = tracing.Tracer("address")

type Request struct {
	Address string
	Page    int
	Limit   int
}

type Engine struct {
	logger           ulogger.Logger
	client           dashcore.ClientI
	defaultLimit     int
	maxLimit         int
	bulkDeltaMaxTxs  int
	utxoMaxTxs       int
	fetchConcurrency int
}

func NewEngine(logger ulogger.Logger, client dashcore.ClientI, tSettings *settings.Settings) *Engine {
	initPrometheusMetrics()

	cfg := tSettings.Address

	return &Engine{
		logger:           logger,
		client:           client,
		defaultLimit:     positiveOr(cfg.DefaultLimit, DefaultLimit),
		maxLimit:         positiveOr(cfg.MaxLimit, DefaultMaxLimit),
		bulkDeltaMaxTxs:  positiveOr(cfg.BulkDeltaMaxTxs, DefaultBulkDeltaMaxTxs),
		utxoMaxTxs:       positiveOr(cfg.UtxoMaxTxs, DefaultUtxoMaxTxs),
		fetchConcurrency: positiveOr(cfg.FetchConcurrency, DefaultFetchConcurrency),
	}
}

// clamp normalises page and limit: page starts at 1, a zero limit takes the default
// and anything above the maximum is capped.
func (e *Engine) clamp(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}

	if limit <= 0 {
		limit = e.defaultLimit
	}

	if limit > e.maxLimit {
		limit = e.maxLimit
	}

	return page, limit
}

// Snapshot fetches the balance, one page of history (newest first) and, for addresses
// below the UTXO threshold, the unspent outputs.
func (e *Engine) Snapshot(ctx context.Context, req Request) (_ *model.AddressInfo, err error) {
	ctx, _, endSpan := tracer.Start(ctx, "Snapshot",
		tracing.WithHistogram(prometheusAddressSnapshotDuration),
		tracing.WithTag("address", req.Address),
	)
	defer func() {
		endSpan(err)
	}()

	if req.Address == "" {
		return nil, errors.NewInvalidArgumentError("address is required")
	}

	page, limit := e.clamp(req.Page, req.Limit)

	var (
		balance *dashcore.AddressBalance
		txids   []string
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var gErr error
		balance, gErr = e.client.GetAddressBalance(gCtx, req.Address)

		return gErr
	})

	g.Go(func() error {
		var gErr error
		txids, gErr = e.client.GetAddressTxIDs(gCtx, req.Address)

		return gErr
	})

	if err = g.Wait(); err != nil {
		return nil, err
	}

	txCount := len(txids)
	pageIDs := pageOf(newestFirst(txids), page, limit)

	var rows []model.AddressTxEntry

	if txCount <= e.bulkDeltaMaxTxs {
		prometheusAddressStrategy.WithLabelValues(strategyBulk).Inc()

		if rows, err = e.bulkDeltas(ctx, req.Address, pageIDs); err != nil {
			return nil, err
		}
	} else {
		prometheusAddressStrategy.WithLabelValues(strategyPerTx).Inc()

		rows = e.perTxDeltas(ctx, req.Address, pageIDs)
	}

	utxos := make([]model.AddressUtxo, 0)

	if txCount <= e.utxoMaxTxs {
		utxos = e.utxos(ctx, req.Address)
	}

	return &model.AddressInfo{
		Address:          req.Address,
		Balance:          model.SatoshisToCoins(balance.Balance),
		BalanceSat:       balance.Balance,
		BalanceImmature:  model.SatoshisToCoins(balance.BalanceImmature),
		BalanceSpendable: model.SatoshisToCoins(balance.BalanceSpendable),
		TotalReceived:    model.SatoshisToCoins(balance.Received),
		TotalReceivedSat: balance.Received,
		TxCount:          txCount,
		Transactions:     rows,
		Utxos:            utxos,
	}, nil
}

// bulkDeltas aggregates a single getaddressdeltas result down to the page ids.
func (e *Engine) bulkDeltas(ctx context.Context, address string, pageIDs []string) ([]model.AddressTxEntry, error) {
	rows := make([]model.AddressTxEntry, len(pageIDs))
	if len(pageIDs) == 0 {
		return rows, nil
	}

	deltas, err := e.client.GetAddressDeltas(ctx, address, nil, nil)
	if err != nil {
		return nil, err
	}

	type aggregate struct {
		satoshis int64
		height   uint64
		seen     bool
	}

	wanted := make(map[string]*aggregate, len(pageIDs))
	for _, txid := range pageIDs {
		wanted[txid] = &aggregate{}
	}

	for _, d := range deltas {
		agg, ok := wanted[d.TxID]
		if !ok {
			continue
		}

		agg.satoshis += d.Satoshis

		if !agg.seen {
			agg.height = d.Height
			agg.seen = true
		}
	}

	for i, txid := range pageIDs {
		agg := wanted[txid]
		rows[i] = newEntry(txid, agg.height, agg.satoshis)
	}

	return rows, nil
}

// perTxDeltas recomputes each page row from the full transaction. A row whose
// transaction cannot be fetched is reported with zero delta and height.
func (e *Engine) perTxDeltas(ctx context.Context, address string, pageIDs []string) []model.AddressTxEntry {
	rows := make([]model.AddressTxEntry, len(pageIDs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.fetchConcurrency)

	for i, txid := range pageIDs {
		g.Go(func() error {
			tx, err := e.client.GetRawTransaction(gCtx, txid)
			if err != nil {
				prometheusAddressRowFailures.Inc()
				e.logger.Warnf("[Address] getrawtransaction %s for %s failed, reporting zero delta: %v", txid, address, err)

				rows[i] = newEntry(txid, 0, 0)

				return nil
			}

			var height uint64
			if tx.Height != nil {
				height = *tx.Height
			}

			rows[i] = newEntry(txid, height, TxDelta(tx, address))

			return nil
		})
	}

	// row failures are absorbed above
	_ = g.Wait()

	return rows
}

func (e *Engine) utxos(ctx context.Context, address string) []model.AddressUtxo {
	raw, err := e.client.GetAddressUtxos(ctx, address)
	if err != nil {
		prometheusAddressUtxoFailures.Inc()
		e.logger.Warnf("[Address] getaddressutxos for %s failed, returning empty list: %v", address, err)

		return make([]model.AddressUtxo, 0)
	}

	utxos := make([]model.AddressUtxo, 0, len(raw))
	for _, u := range raw {
		utxos = append(utxos, model.AddressUtxo{
			TxID:        u.TxID,
			OutputIndex: u.OutputIndex,
			Satoshis:    u.Satoshis,
			Value:       model.SatoshisToCoins(u.Satoshis),
			Height:      u.Height,
		})
	}

	return utxos
}

// TxDelta is the signed amount tx moves for address: outputs paying it minus the
// inputs spending from it.
func TxDelta(tx *dashcore.Transaction, address string) int64 {
	var delta int64

	for _, out := range tx.Vout {
		if out.ScriptPubKey.Address != nil && *out.ScriptPubKey.Address == address {
			delta += out.ValueSat
		}
	}

	for _, in := range tx.Vin {
		if in.Address != nil && *in.Address == address && in.ValueSat != nil {
			delta -= *in.ValueSat
		}
	}

	return delta
}

func newEntry(txid string, height uint64, deltaSat int64) model.AddressTxEntry {
	return model.AddressTxEntry{
		TxID:     txid,
		Height:   height,
		DeltaSat: deltaSat,
		Delta:    model.SatoshisToCoins(deltaSat),
	}
}

func newestFirst(txids []string) []string {
	reversed := make([]string, len(txids))
	for i, txid := range txids {
		reversed[len(txids)-1-i] = txid
	}

	return reversed
}

// pageOf compares page against the page count before multiplying, so a huge page is
// empty rather than an overflowed offset.
func pageOf(ids []string, page, limit int) []string {
	if limit <= 0 || page < 1 || page-1 >= (len(ids)+limit-1)/limit {
		return []string{}
	}

	start := (page - 1) * limit

	end := start + limit
	if end > len(ids) {
		end = len(ids)
	}

	return ids[start:end]
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}

	return fallback
}
