package cache

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/dashbook/dashbook/model"
	"github.com/dashbook/dashbook/settings"
)

const (
	StatusKey      = "status"
	MasternodesKey = "masternodes"
)

// Caches is the set of caches the gateway reads through.
type Caches struct {
	Blocks         *Cache[chainhash.Hash, *model.BlockDetail]
	HeightIndex    *HeightIndex
	Transactions   *Cache[chainhash.Hash, *model.TransactionDetail]
	Status         *Cache[string, *model.StatusResponse]
	MasternodeList *Cache[string, []model.MasternodeSummary]
	LatestBlocks   *Cache[string, *model.BlockListResponse]
}

func NewCaches(tSettings *settings.Settings) *Caches {
	s := tSettings.Cache

	return &Caches{
		Blocks:         New[chainhash.Hash, *model.BlockDetail]("blocks", s.BlocksCapacity, s.BlocksTTL, (*model.BlockDetail).Clone),
		HeightIndex:    NewHeightIndex(s.HeightIndexCapacity, s.HeightIndexTTL),
		Transactions:   New[chainhash.Hash, *model.TransactionDetail]("transactions", s.TransactionsCapacity, s.TransactionsTTL, (*model.TransactionDetail).Clone),
		Status:         New[string, *model.StatusResponse]("status", s.StatusCapacity, s.StatusTTL, (*model.StatusResponse).Clone),
		MasternodeList: New[string, []model.MasternodeSummary]("masternode_list", s.MasternodeListCapacity, s.MasternodeListTTL, model.CloneMasternodes),
		LatestBlocks:   New[string, *model.BlockListResponse]("latest_blocks", s.LatestBlocksCapacity, s.LatestBlocksTTL, (*model.BlockListResponse).Clone),
	}
}

// InvalidateTip drops the entries that are derived from the current tip.
func (c *Caches) InvalidateTip() {
	c.LatestBlocks.InvalidateAll()
	c.Status.InvalidateAll()
}

func (c *Caches) Stop() {
	c.Blocks.Stop()
	c.Transactions.Stop()
	c.Status.Stop()
	c.MasternodeList.Stop()
	c.LatestBlocks.Stop()
}
