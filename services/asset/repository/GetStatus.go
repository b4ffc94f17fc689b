package repository

import (
	"context"

	"github.com/dashbook/dashbook/dashcore"
	"github.com/dashbook/dashbook/model"
	"github.com/dashbook/dashbook/stores/cache"
	"golang.org/x/sync/errgroup"
)

// tipSnapshot is the set of node views shared by the status and network endpoints.
type tipSnapshot struct {
	blockchain *dashcore.BlockchainInfo
	network    *dashcore.NetworkInfo
	chainlock  *dashcore.ChainLock
	mempool    *dashcore.MempoolInfo
	mnCount    *dashcore.MasternodeCount
	chainStats *dashcore.ChainTxStats
	creditPool float64
}

// fetchTipSnapshot runs the independent calls concurrently, then reads the credit pool
// from the best block.
func (repo *Repository) fetchTipSnapshot(ctx context.Context, withNetwork bool) (*tipSnapshot, error) {
	snap := &tipSnapshot{}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.blockchain, err = repo.client.GetBlockchainInfo(gCtx)
		return err
	})

	if withNetwork {
		g.Go(func() (err error) {
			snap.network, err = repo.client.GetNetworkInfo(gCtx)
			return err
		})
	}

	g.Go(func() (err error) {
		snap.chainlock, err = repo.client.GetBestChainLock(gCtx)
		return err
	})

	g.Go(func() (err error) {
		snap.mempool, err = repo.client.GetMempoolInfo(gCtx)
		return err
	})

	g.Go(func() (err error) {
		snap.mnCount, err = repo.client.GetMasternodeCount(gCtx)
		return err
	})

	g.Go(func() (err error) {
		snap.chainStats, err = repo.client.GetChainTxStats(gCtx, nil)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	best, err := repo.client.GetBlock(ctx, snap.blockchain.BestBlockHash, 1)
	if err != nil {
		return nil, err
	}

	snap.creditPool = model.CreditPoolBalance(best)

	return snap, nil
}

func (repo *Repository) GetStatus(ctx context.Context) (_ *model.StatusResponse, err error) {
	ctx, _, endSpan := tracer.Start(ctx, "GetStatus")
	defer func() {
		endSpan(err)
	}()

	if cached, ok := repo.caches.Status.Get(cache.StatusKey); ok {
		return cached, nil
	}

	gen := repo.caches.Status.Begin()

	snap, err := repo.fetchTipSnapshot(ctx, false)
	if err != nil {
		return nil, err
	}

	status := &model.StatusResponse{
		BlockHeight:       snap.blockchain.Blocks,
		BestBlockHash:     snap.blockchain.BestBlockHash,
		ChainlockHeight:   snap.chainlock.Height,
		Difficulty:        snap.blockchain.Difficulty,
		CreditPoolBalance: snap.creditPool,
		MasternodeCount:   model.NewMasternodeCountInfo(snap.mnCount),
		MempoolSize:       snap.mempool.Size,
		MempoolBytes:      snap.mempool.Bytes,
		TxRate:            snap.chainStats.TxRate,
		Chain:             snap.blockchain.Chain,
	}

	repo.caches.Status.Set(gen, cache.StatusKey, status)

	return status, nil
}

// GetNetwork is always fetched fresh.
func (repo *Repository) GetNetwork(ctx context.Context) (_ *model.NetworkOverview, err error) {
	ctx, _, endSpan := tracer.Start(ctx, "GetNetwork")
	defer func() {
		endSpan(err)
	}()

	snap, err := repo.fetchTipSnapshot(ctx, true)
	if err != nil {
		return nil, err
	}

	return &model.NetworkOverview{
		Chain:             snap.blockchain.Chain,
		BlockHeight:       snap.blockchain.Blocks,
		BestBlockHash:     snap.blockchain.BestBlockHash,
		Difficulty:        snap.blockchain.Difficulty,
		ChainlockHeight:   snap.chainlock.Height,
		ChainlockHash:     snap.chainlock.BlockHash,
		TxCount:           snap.chainStats.TxCount,
		TxRate:            snap.chainStats.TxRate,
		MempoolSize:       snap.mempool.Size,
		MempoolBytes:      snap.mempool.Bytes,
		MempoolTotalFee:   snap.mempool.TotalFee,
		CoreVersion:       snap.network.BuildVersion,
		ProtocolVersion:   snap.network.ProtocolVersion,
		Connections:       snap.network.Connections,
		ConnectionsMN:     snap.network.ConnectionsMN,
		CreditPoolBalance: snap.creditPool,
		MasternodeCount:   model.NewMasternodeCountInfo(snap.mnCount),
	}, nil
}

func (repo *Repository) GetMempool(ctx context.Context) (*model.MempoolResponse, error) {
	var (
		info  *dashcore.MempoolInfo
		txids []string
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		info, err = repo.client.GetMempoolInfo(gCtx)
		return err
	})

	g.Go(func() (err error) {
		txids, err = repo.client.GetRawMempool(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return model.NewMempoolResponse(info, txids), nil
}
