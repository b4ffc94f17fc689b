package model

import (
	"strconv"

	"github.com/dashbook/dashbook/dashcore"
)

// Special transaction types carried in the tx type field.
const (
	TxTypeStandard         uint32 = 0
	TxTypeProRegTx         uint32 = 1
	TxTypeProUpServTx      uint32 = 2
	TxTypeProUpRegTx       uint32 = 3
	TxTypeProUpRevTx       uint32 = 4
	TxTypeCoinbase         uint32 = 5
	TxTypeQuorumCommitment uint32 = 6
	TxTypeAssetLock        uint32 = 8
	TxTypeAssetUnlock      uint32 = 9
)

func TxTypeLabel(txType uint32) string {
	switch txType {
	case TxTypeStandard:
		return "Standard"
	case TxTypeProRegTx:
		return "ProRegTx"
	case TxTypeProUpServTx:
		return "ProUpServTx"
	case TxTypeProUpRegTx:
		return "ProUpRegTx"
	case TxTypeProUpRevTx:
		return "ProUpRevTx"
	case TxTypeCoinbase:
		return "CoinBase"
	case TxTypeQuorumCommitment:
		return "QuorumCommitment"
	case TxTypeAssetLock:
		return "AssetLock"
	case TxTypeAssetUnlock:
		return "AssetUnlock"
	default:
		return "Type " + strconv.FormatUint(uint64(txType), 10)
	}
}

type TransactionSummary struct {
	TxID        string   `json:"txid"`
	TxType      uint32   `json:"tx_type"`
	TxTypeLabel string   `json:"tx_type_label"`
	Size        uint64   `json:"size"`
	Fee         *float64 `json:"fee"`
	InstantLock bool     `json:"instantlock"`
	TotalInput  *float64 `json:"total_input"`
	TotalOutput float64  `json:"total_output"`
}

type TransactionDetail struct {
	TxID                string            `json:"txid"`
	Version             uint32            `json:"version"`
	TxType              uint32            `json:"tx_type"`
	TxTypeLabel         string            `json:"tx_type_label"`
	Size                uint64            `json:"size"`
	LockTime            uint64            `json:"locktime"`
	BlockHash           *string           `json:"block_hash"`
	BlockHeight         *uint64           `json:"block_height"`
	Confirmations       *int64            `json:"confirmations"`
	Time                *uint64           `json:"time"`
	Fee                 *float64          `json:"fee"`
	InstantLock         bool              `json:"instantlock"`
	InstantLockInternal bool              `json:"instantlock_internal"`
	Chainlock           *bool             `json:"chainlock"`
	Inputs              []TxInput         `json:"inputs"`
	Outputs             []TxOutput        `json:"outputs"`
	SpecialTxPayload    *SpecialTxPayload `json:"special_tx_payload"`
}

type TxInput struct {
	TxID        *string  `json:"txid"`
	Vout        *uint32  `json:"vout"`
	IsCoinbase  bool     `json:"is_coinbase"`
	CoinbaseHex *string  `json:"coinbase_hex"`
	Address     *string  `json:"address"`
	Value       *float64 `json:"value"`
	ValueSat    *int64   `json:"value_sat"`
}

type TxOutput struct {
	N           uint32  `json:"n"`
	Value       float64 `json:"value"`
	ValueSat    int64   `json:"value_sat"`
	Address     *string `json:"address"`
	ScriptType  string  `json:"script_type"`
	ScriptAsm   string  `json:"script_asm"`
	SpentTxID   *string `json:"spent_tx_id"`
	SpentHeight *int64  `json:"spent_height"`
	IsSpent     bool    `json:"is_spent"`
}

// SpecialTxPayload is the tagged special transaction payload, serialized as {"type": ..., "data": ...}.
// Data holds one of the dashcore payload types, or the node's raw JSON for the provider update kinds.
type SpecialTxPayload struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewTransactionSummary(tx *dashcore.Transaction) TransactionSummary {
	s := TransactionSummary{
		TxID:        tx.TxID,
		TxType:      tx.Type,
		TxTypeLabel: TxTypeLabel(tx.Type),
		Size:        tx.Size,
		Fee:         clonePtr(tx.Fee),
		InstantLock: tx.InstantLock,
	}

	hasCoinbase := false
	totalIn := 0.0

	for _, vin := range tx.Vin {
		if vin.Coinbase != nil {
			hasCoinbase = true
		}

		if vin.Value != nil {
			totalIn += *vin.Value
		}
	}

	if !hasCoinbase && totalIn > 0 {
		s.TotalInput = &totalIn
	}

	for _, vout := range tx.Vout {
		s.TotalOutput += vout.Value
	}

	return s
}

func NewTransactionDetail(tx *dashcore.Transaction) *TransactionDetail {
	d := &TransactionDetail{
		TxID:                tx.TxID,
		Version:             tx.Version,
		TxType:              tx.Type,
		TxTypeLabel:         TxTypeLabel(tx.Type),
		Size:                tx.Size,
		LockTime:            tx.LockTime,
		BlockHash:           clonePtr(tx.BlockHash),
		BlockHeight:         clonePtr(tx.Height),
		Confirmations:       clonePtr(tx.Confirmations),
		Time:                clonePtr(tx.Time),
		Fee:                 clonePtr(tx.Fee),
		InstantLock:         tx.InstantLock,
		InstantLockInternal: tx.InstantLockInternal,
		Chainlock:           clonePtr(tx.Chainlock),
		Inputs:              make([]TxInput, 0, len(tx.Vin)),
		Outputs:             make([]TxOutput, 0, len(tx.Vout)),
		SpecialTxPayload:    NewSpecialTxPayload(tx),
	}

	for _, vin := range tx.Vin {
		d.Inputs = append(d.Inputs, TxInput{
			TxID:        clonePtr(vin.TxID),
			Vout:        clonePtr(vin.Vout),
			IsCoinbase:  vin.Coinbase != nil,
			CoinbaseHex: clonePtr(vin.Coinbase),
			Address:     clonePtr(vin.Address),
			Value:       clonePtr(vin.Value),
			ValueSat:    clonePtr(vin.ValueSat),
		})
	}

	for _, vout := range tx.Vout {
		d.Outputs = append(d.Outputs, TxOutput{
			N:           vout.N,
			Value:       vout.Value,
			ValueSat:    vout.ValueSat,
			Address:     clonePtr(vout.ScriptPubKey.Address),
			ScriptType:  vout.ScriptPubKey.Type,
			ScriptAsm:   vout.ScriptPubKey.Asm,
			SpentTxID:   clonePtr(vout.SpentTxID),
			SpentHeight: clonePtr(vout.SpentHeight),
			IsSpent:     vout.SpentTxID != nil,
		})
	}

	return d
}

// NewSpecialTxPayload picks the first payload present, in provider, coinbase, quorum, asset unlock order.
func NewSpecialTxPayload(tx *dashcore.Transaction) *SpecialTxPayload {
	switch {
	case tx.ProRegTx != nil:
		return &SpecialTxPayload{Type: "ProRegTx", Data: clonePtr(tx.ProRegTx)}
	case len(tx.ProUpServTx) > 0:
		return &SpecialTxPayload{Type: "ProUpServTx", Data: cloneRaw(tx.ProUpServTx)}
	case len(tx.ProUpRegTx) > 0:
		return &SpecialTxPayload{Type: "ProUpRegTx", Data: cloneRaw(tx.ProUpRegTx)}
	case len(tx.ProUpRevTx) > 0:
		return &SpecialTxPayload{Type: "ProUpRevTx", Data: cloneRaw(tx.ProUpRevTx)}
	case tx.CbTx != nil:
		return &SpecialTxPayload{Type: "CbTx", Data: clonePtr(tx.CbTx)}
	case tx.QcTx != nil:
		return &SpecialTxPayload{Type: "QcTx", Data: clonePtr(tx.QcTx)}
	case tx.AssetUnlockTx != nil:
		return &SpecialTxPayload{Type: "AssetUnlockTx", Data: clonePtr(tx.AssetUnlockTx)}
	default:
		return nil
	}
}

func cloneRaw(raw []byte) RawJSON {
	c := make(RawJSON, len(raw))
	copy(c, raw)

	return c
}

// RawJSON is an opaque node payload that is passed through as-is.
type RawJSON []byte

func (r RawJSON) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}

	return r, nil
}

func (s TransactionSummary) Clone() TransactionSummary {
	c := s
	c.Fee = clonePtr(s.Fee)
	c.TotalInput = clonePtr(s.TotalInput)

	return c
}

func (d *TransactionDetail) Clone() *TransactionDetail {
	if d == nil {
		return nil
	}

	c := *d
	c.BlockHash = clonePtr(d.BlockHash)
	c.BlockHeight = clonePtr(d.BlockHeight)
	c.Confirmations = clonePtr(d.Confirmations)
	c.Time = clonePtr(d.Time)
	c.Fee = clonePtr(d.Fee)
	c.Chainlock = clonePtr(d.Chainlock)

	c.Inputs = make([]TxInput, len(d.Inputs))
	for i, in := range d.Inputs {
		c.Inputs[i] = TxInput{
			TxID:        clonePtr(in.TxID),
			Vout:        clonePtr(in.Vout),
			IsCoinbase:  in.IsCoinbase,
			CoinbaseHex: clonePtr(in.CoinbaseHex),
			Address:     clonePtr(in.Address),
			Value:       clonePtr(in.Value),
			ValueSat:    clonePtr(in.ValueSat),
		}
	}

	c.Outputs = make([]TxOutput, len(d.Outputs))
	for i, out := range d.Outputs {
		c.Outputs[i] = out
		c.Outputs[i].Address = clonePtr(out.Address)
		c.Outputs[i].SpentTxID = clonePtr(out.SpentTxID)
		c.Outputs[i].SpentHeight = clonePtr(out.SpentHeight)
	}

	// payload data is never mutated after construction
	c.SpecialTxPayload = clonePtr(d.SpecialTxPayload)

	return &c
}
