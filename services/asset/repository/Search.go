package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/model"
)

const (
	SearchBlock      = "block"
	SearchTx         = "tx"
	SearchMasternode = "masternode"
	SearchAddress    = "address"
	SearchNone       = "none"
)

// mainnet and testnet, pubkey hash and script hash
var addressPrefixes = []string{"y", "X", "8", "7"}

// Search classifies q by probing the node. Lookup failures move on to the next
// candidate, a query nothing matches yields type "none".
func (repo *Repository) Search(ctx context.Context, q string) (_ *model.SearchResult, err error) {
	ctx, _, endSpan := tracer.Start(ctx, "Search")
	defer func() {
		endSpan(err)
	}()

	q = strings.TrimSpace(q)
	if q == "" {
		return nil, errors.NewInvalidArgumentError("search query is empty")
	}

	if model.IsDigits(q) {
		if height, parseErr := strconv.ParseUint(q, 10, 64); parseErr == nil {
			if hash, hashErr := repo.client.GetBlockHash(ctx, height); hashErr == nil {
				return &model.SearchResult{Type: SearchBlock, Value: hash}, nil
			}
		}
	}

	if model.IsHex64(q) {
		if _, lookupErr := repo.client.GetBlockHeader(ctx, q); lookupErr == nil {
			return &model.SearchResult{Type: SearchBlock, Value: q}, nil
		}

		if _, lookupErr := repo.client.GetRawTransaction(ctx, q); lookupErr == nil {
			return &model.SearchResult{Type: SearchTx, Value: q}, nil
		}

		if _, lookupErr := repo.client.GetProTxInfo(ctx, q); lookupErr == nil {
			return &model.SearchResult{Type: SearchMasternode, Value: q}, nil
		}
	}

	if hasAddressPrefix(q) {
		if _, lookupErr := repo.client.GetAddressBalance(ctx, q); lookupErr == nil {
			return &model.SearchResult{Type: SearchAddress, Value: q}, nil
		}
	}

	return &model.SearchResult{Type: SearchNone, Value: ""}, nil
}

func hasAddressPrefix(q string) bool {
	for _, prefix := range addressPrefixes {
		if strings.HasPrefix(q, prefix) {
			return true
		}
	}

	return false
}
