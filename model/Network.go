package model

import (
	"github.com/dashbook/dashbook/dashcore"
)

type MasternodeCountInfo struct {
	Total          uint32 `json:"total"`
	Enabled        uint32 `json:"enabled"`
	RegularTotal   uint32 `json:"regular_total"`
	RegularEnabled uint32 `json:"regular_enabled"`
	EvoTotal       uint32 `json:"evo_total"`
	EvoEnabled     uint32 `json:"evo_enabled"`
}

type StatusResponse struct {
	BlockHeight       uint64              `json:"block_height"`
	BestBlockHash     string              `json:"best_block_hash"`
	ChainlockHeight   uint64              `json:"chainlock_height"`
	Difficulty        float64             `json:"difficulty"`
	CreditPoolBalance float64             `json:"credit_pool_balance"`
	MasternodeCount   MasternodeCountInfo `json:"masternode_count"`
	MempoolSize       uint64              `json:"mempool_size"`
	MempoolBytes      uint64              `json:"mempool_bytes"`
	TxRate            float64             `json:"tx_rate"`
	Chain             string              `json:"chain"`
}

type NetworkOverview struct {
	Chain             string              `json:"chain"`
	BlockHeight       uint64              `json:"block_height"`
	BestBlockHash     string              `json:"best_block_hash"`
	Difficulty        float64             `json:"difficulty"`
	ChainlockHeight   uint64              `json:"chainlock_height"`
	ChainlockHash     string              `json:"chainlock_hash"`
	TxCount           uint64              `json:"tx_count"`
	TxRate            float64             `json:"tx_rate"`
	MempoolSize       uint64              `json:"mempool_size"`
	MempoolBytes      uint64              `json:"mempool_bytes"`
	MempoolTotalFee   float64             `json:"mempool_total_fee"`
	CoreVersion       string              `json:"core_version"`
	ProtocolVersion   uint64              `json:"protocol_version"`
	Connections       uint32              `json:"connections"`
	ConnectionsMN     uint32              `json:"connections_mn"`
	CreditPoolBalance float64             `json:"credit_pool_balance"`
	MasternodeCount   MasternodeCountInfo `json:"masternode_count"`
}

type MempoolResponse struct {
	Size             uint64   `json:"size"`
	Bytes            uint64   `json:"bytes"`
	TotalFee         float64  `json:"total_fee"`
	MinFee           float64  `json:"min_fee"`
	InstantSendLocks uint64   `json:"instantsend_locks"`
	Transactions     []string `json:"transactions"`
}

type SearchResult struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func NewMasternodeCountInfo(c *dashcore.MasternodeCount) MasternodeCountInfo {
	return MasternodeCountInfo{
		Total:          c.Total,
		Enabled:        c.Enabled,
		RegularTotal:   c.Detailed.Regular.Total,
		RegularEnabled: c.Detailed.Regular.Enabled,
		EvoTotal:       c.Detailed.Evo.Total,
		EvoEnabled:     c.Detailed.Evo.Enabled,
	}
}

// CreditPoolBalance reads the platform credit pool from a block's coinbase payload, 0 when absent.
func CreditPoolBalance(b *dashcore.Block) float64 {
	if b == nil || b.CbTx == nil {
		return 0
	}

	return b.CbTx.CreditPoolBalance
}

func NewMempoolResponse(info *dashcore.MempoolInfo, txids []string) *MempoolResponse {
	if txids == nil {
		txids = []string{}
	}

	return &MempoolResponse{
		Size:             info.Size,
		Bytes:            info.Bytes,
		TotalFee:         info.TotalFee,
		MinFee:           info.MempoolMinFee,
		InstantSendLocks: info.InstantSendLocks,
		Transactions:     txids,
	}
}

func (s *StatusResponse) Clone() *StatusResponse {
	if s == nil {
		return nil
	}

	c := *s

	return &c
}
