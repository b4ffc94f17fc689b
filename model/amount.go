package model

import (
	"github.com/btcsuite/btcd/btcutil"
)

// SatoshisToCoins renders a duff amount in DASH.
func SatoshisToCoins(satoshis int64) float64 {
	return btcutil.Amount(satoshis).ToBTC()
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}
