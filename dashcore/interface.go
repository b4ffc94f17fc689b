package dashcore

import (
	"context"
)

type ClientI interface {
	Health(ctx context.Context, checkLiveness bool) (int, string, error)
	Call(ctx context.Context, method string, params []interface{}, result interface{}) error

	GetBlockCount(ctx context.Context) (uint64, error)
	GetBlockHash(ctx context.Context, height uint64) (string, error)
	GetBestBlockHash(ctx context.Context) (string, error)
	GetBlock(ctx context.Context, hash string, verbosity int) (*Block, error)
	GetBlockHeader(ctx context.Context, hash string) (*Block, error)
	GetBlockStats(ctx context.Context, height uint64) (*BlockStats, error)
	GetBlockchainInfo(ctx context.Context) (*BlockchainInfo, error)
	GetChainTxStats(ctx context.Context, nBlocks *int) (*ChainTxStats, error)

	GetRawTransaction(ctx context.Context, txid string) (*Transaction, error)
	GetRawMempool(ctx context.Context) ([]string, error)

	GetAddressBalance(ctx context.Context, address string) (*AddressBalance, error)
	GetAddressTxIDs(ctx context.Context, address string) ([]string, error)
	GetAddressUtxos(ctx context.Context, address string) ([]AddressUtxo, error)
	GetAddressDeltas(ctx context.Context, address string, start, end *uint64) ([]AddressDelta, error)

	GetNetworkInfo(ctx context.Context) (*NetworkInfo, error)
	GetMempoolInfo(ctx context.Context) (*MempoolInfo, error)
	GetBestChainLock(ctx context.Context) (*ChainLock, error)

	GetMasternodeList(ctx context.Context) (map[string]MasternodeListEntry, error)
	GetMasternodeCount(ctx context.Context) (*MasternodeCount, error)
	GetProTxInfo(ctx context.Context, proTxHash string) (*ProTx, error)

	GetGovernanceInfo(ctx context.Context) (*GovernanceInfo, error)
	GetGovernanceObjects(ctx context.Context) (map[string]GovernanceObject, error)
}

var _ ClientI = (*Client)(nil)
