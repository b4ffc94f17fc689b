// Package repository composes the node client, the confirmation-depth caches and the
// address engine into the read views served by the asset service.
package repository

import (
	"context"
	"net/http"

	"github.com/dashbook/dashbook/dashcore"
	"github.com/dashbook/dashbook/model"
	"github.com/dashbook/dashbook/services/address"
	"github.com/dashbook/dashbook/settings"
	"github.com/dashbook/dashbook/stores/cache"
	"github.com/dashbook/dashbook/ulogger"
	"github.com/dashbook/dashbook/util/health"
	"github.com/dashbook/dashbook/util/tracing"
)

const (
	DefaultBlocksLimit      = 20
	MaxBlocksLimit          = 100
	DefaultMasternodesLimit = 50
	MaxMasternodesLimit     = 200
)

var tracer = tracing.Tracer("repository")

// Interface defines the read operations exposed over HTTP.
type Interface interface {
	Health(ctx context.Context, checkLiveness bool) (int, string, error)
	GetStatus(ctx context.Context) (*model.StatusResponse, error)
	GetNetwork(ctx context.Context) (*model.NetworkOverview, error)
	GetMempool(ctx context.Context) (*model.MempoolResponse, error)
	GetBlocks(ctx context.Context, page, limit int) (*model.BlockListResponse, error)
	GetBlock(ctx context.Context, hashOrHeight string) (*model.BlockDetail, error)
	GetTransaction(ctx context.Context, txid string) (*model.TransactionDetail, error)
	GetAddress(ctx context.Context, req address.Request) (*model.AddressInfo, error)
	GetMasternodes(ctx context.Context, query MasternodeQuery) (*model.MasternodeListResponse, error)
	GetMasternode(ctx context.Context, proTxHash string) (*model.MasternodeDetail, error)
	GetGovernance(ctx context.Context) (*model.GovernanceOverview, error)
	Search(ctx context.Context, q string) (*model.SearchResult, error)
}

// Repository reads through the caches to the node.
type Repository struct {
	logger   ulogger.Logger
	settings *settings.Settings
	client   dashcore.ClientI
	caches   *cache.Caches
	address  *address.Engine
}

func NewRepository(logger ulogger.Logger, tSettings *settings.Settings, client dashcore.ClientI, caches *cache.Caches,
	addressEngine *address.Engine) (*Repository, error) {
	return &Repository{
		logger:   logger,
		settings: tSettings,
		client:   client,
		caches:   caches,
		address:  addressEngine,
	}, nil
}

func (repo *Repository) Caches() *cache.Caches {
	return repo.caches
}

func (repo *Repository) Health(ctx context.Context, checkLiveness bool) (int, string, error) {
	if checkLiveness {
		return http.StatusOK, "OK", nil
	}

	checks := []health.Check{
		{Name: "DashcoreClient", Check: repo.client.Health},
	}

	return health.CheckAll(ctx, checkLiveness, checks)
}

// GetAddress is not cached, balances change with every transaction.
func (repo *Repository) GetAddress(ctx context.Context, req address.Request) (*model.AddressInfo, error) {
	return repo.address.Snapshot(ctx, req)
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}

	return page
}

func clampLimit(limit, fallback, maxLimit int) int {
	if limit <= 0 {
		return fallback
	}

	if limit > maxLimit {
		return maxLimit
	}

	return limit
}
