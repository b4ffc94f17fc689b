package cache

import (
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// HeightIndex maps a block height to its hash. It only learns heights of blocks that were
// themselves deep enough to cache, so a reorg above the safety margin cannot leave a stale entry.
type HeightIndex struct {
	lru *expirable.LRU[uint64, chainhash.Hash]
}

func NewHeightIndex(capacity int, ttl time.Duration) *HeightIndex {
	initPrometheusMetrics()

	return &HeightIndex{
		lru: expirable.NewLRU[uint64, chainhash.Hash](capacity, nil, ttl),
	}
}

func (h *HeightIndex) Get(height uint64) (chainhash.Hash, bool) {
	hash, ok := h.lru.Get(height)
	if !ok {
		prometheusCacheMisses.WithLabelValues("height_index").Inc()
		return chainhash.Hash{}, false
	}

	prometheusCacheHits.WithLabelValues("height_index").Inc()

	return hash, true
}

func (h *HeightIndex) Set(height uint64, hash chainhash.Hash) {
	h.lru.Add(height, hash)
}

func (h *HeightIndex) Len() int {
	return h.lru.Len()
}
