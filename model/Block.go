package model

import (
	"github.com/dashbook/dashbook/dashcore"
)

type BlockSummary struct {
	Hash              string   `json:"hash"`
	Height            uint64   `json:"height"`
	Time              uint64   `json:"time"`
	NTx               uint32   `json:"n_tx"`
	Size              uint64   `json:"size"`
	Difficulty        float64  `json:"difficulty"`
	Chainlock         bool     `json:"chainlock"`
	CreditPoolBalance *float64 `json:"credit_pool_balance"`
}

type BlockDetail struct {
	Hash              string               `json:"hash"`
	Height            uint64               `json:"height"`
	Version           uint32               `json:"version"`
	MerkleRoot        string               `json:"merkle_root"`
	Time              uint64               `json:"time"`
	MedianTime        uint64               `json:"median_time"`
	Nonce             uint64               `json:"nonce"`
	Bits              string               `json:"bits"`
	Difficulty        float64              `json:"difficulty"`
	Chainwork         string               `json:"chainwork"`
	NTx               uint32               `json:"n_tx"`
	Confirmations     int64                `json:"confirmations"`
	Size              uint64               `json:"size"`
	PreviousBlockHash *string              `json:"previous_block_hash"`
	NextBlockHash     *string              `json:"next_block_hash"`
	Chainlock         bool                 `json:"chainlock"`
	CbTx              *CbTxInfo            `json:"cb_tx"`
	Transactions      []TransactionSummary `json:"transactions"`
}

type CbTxInfo struct {
	Version           uint32  `json:"version"`
	Height            uint64  `json:"height"`
	MerkleRootMNList  string  `json:"merkle_root_mn_list"`
	MerkleRootQuorums string  `json:"merkle_root_quorums"`
	BestCLHeightDiff  uint64  `json:"best_cl_height_diff"`
	BestCLSignature   string  `json:"best_cl_signature"`
	CreditPoolBalance float64 `json:"credit_pool_balance"`
}

type BlockListResponse struct {
	Blocks []BlockSummary `json:"blocks"`
	Total  uint64         `json:"total"`
	Page   int            `json:"page"`
	Pages  uint64         `json:"pages"`
}

func NewBlockSummary(b *dashcore.Block) BlockSummary {
	s := BlockSummary{
		Hash:       b.Hash,
		Height:     b.Height,
		Time:       b.Time,
		NTx:        b.NTx,
		Difficulty: b.Difficulty,
		Chainlock:  b.Chainlock,
	}

	if b.Size != nil {
		s.Size = *b.Size
	}

	if b.CbTx != nil {
		balance := b.CbTx.CreditPoolBalance
		s.CreditPoolBalance = &balance
	}

	return s
}

// NewBlockDetail shapes a block fetched with verbosity 2. Blocks fetched with txids only
// get an empty transaction list.
func NewBlockDetail(b *dashcore.Block) *BlockDetail {
	d := &BlockDetail{
		Hash:              b.Hash,
		Height:            b.Height,
		Version:           b.Version,
		MerkleRoot:        b.MerkleRoot,
		Time:              b.Time,
		MedianTime:        b.MedianTime,
		Nonce:             b.Nonce,
		Bits:              b.Bits,
		Difficulty:        b.Difficulty,
		Chainwork:         b.Chainwork,
		NTx:               b.NTx,
		Confirmations:     b.Confirmations,
		PreviousBlockHash: clonePtr(b.PreviousBlockHash),
		NextBlockHash:     clonePtr(b.NextBlockHash),
		Chainlock:         b.Chainlock,
		CbTx:              NewCbTxInfo(b.CbTx),
		Transactions:      make([]TransactionSummary, 0, len(b.Tx.Transactions)),
	}

	if b.Size != nil {
		d.Size = *b.Size
	}

	if b.Tx.Kind == dashcore.BlockTxsFull {
		for i := range b.Tx.Transactions {
			d.Transactions = append(d.Transactions, NewTransactionSummary(&b.Tx.Transactions[i]))
		}
	}

	return d
}

func NewCbTxInfo(cb *dashcore.CbTx) *CbTxInfo {
	if cb == nil {
		return nil
	}

	return &CbTxInfo{
		Version:           cb.Version,
		Height:            cb.Height,
		MerkleRootMNList:  cb.MerkleRootMNList,
		MerkleRootQuorums: cb.MerkleRootQuorums,
		BestCLHeightDiff:  cb.BestCLHeightDiff,
		BestCLSignature:   cb.BestCLSignature,
		CreditPoolBalance: cb.CreditPoolBalance,
	}
}

func (d *BlockDetail) Clone() *BlockDetail {
	if d == nil {
		return nil
	}

	c := *d
	c.PreviousBlockHash = clonePtr(d.PreviousBlockHash)
	c.NextBlockHash = clonePtr(d.NextBlockHash)
	c.CbTx = clonePtr(d.CbTx)

	c.Transactions = make([]TransactionSummary, len(d.Transactions))
	for i := range d.Transactions {
		c.Transactions[i] = d.Transactions[i].Clone()
	}

	return &c
}

func (r *BlockListResponse) Clone() *BlockListResponse {
	if r == nil {
		return nil
	}

	c := *r
	c.Blocks = make([]BlockSummary, len(r.Blocks))

	for i := range r.Blocks {
		c.Blocks[i] = r.Blocks[i]
		c.Blocks[i].CreditPoolBalance = clonePtr(r.Blocks[i].CreditPoolBalance)
	}

	return &c
}
