package repository

import (
	"context"

	"github.com/dashbook/dashbook/model"
	"github.com/dashbook/dashbook/stores/cache"
)

func (repo *Repository) GetTransaction(ctx context.Context, txid string) (_ *model.TransactionDetail, err error) {
	ctx, _, endSpan := tracer.Start(ctx, "GetTransaction")
	defer func() {
		endSpan(err)
	}()

	hash, err := model.ParseHash(txid)
	if err != nil {
		return nil, err
	}

	if cached, ok := repo.caches.Transactions.Get(*hash); ok {
		return cached, nil
	}

	gen := repo.caches.Transactions.Begin()

	tx, err := repo.client.GetRawTransaction(ctx, hash.String())
	if err != nil {
		return nil, err
	}

	detail := model.NewTransactionDetail(tx)

	// mempool transactions have no confirmations field
	if tx.Confirmations != nil && cache.Eligible(*tx.Confirmations) {
		repo.caches.Transactions.Set(gen, *hash, detail)
	}

	return detail, nil
}
