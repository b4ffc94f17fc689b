package dashcore

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Mock struct {
	mock.Mock
}

var _ ClientI = (*Mock)(nil)

func (m *Mock) Health(ctx context.Context, checkLiveness bool) (int, string, error) {
	args := m.Called(ctx, checkLiveness)
	return args.Int(0), args.String(1), args.Error(2)
}

func (m *Mock) Call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	args := m.Called(ctx, method, params, result)
	return args.Error(0)
}

func (m *Mock) GetBlockCount(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)

	if args.Error(1) != nil {
		return 0, args.Error(1)
	}

	return args.Get(0).(uint64), nil
}

func (m *Mock) GetBlockHash(ctx context.Context, height uint64) (string, error) {
	args := m.Called(ctx, height)
	return args.String(0), args.Error(1)
}

func (m *Mock) GetBestBlockHash(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *Mock) GetBlock(ctx context.Context, hash string, verbosity int) (*Block, error) {
	args := m.Called(ctx, hash, verbosity)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*Block), nil
}

func (m *Mock) GetBlockHeader(ctx context.Context, hash string) (*Block, error) {
	args := m.Called(ctx, hash)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*Block), nil
}

func (m *Mock) GetBlockStats(ctx context.Context, height uint64) (*BlockStats, error) {
	args := m.Called(ctx, height)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*BlockStats), nil
}

func (m *Mock) GetBlockchainInfo(ctx context.Context) (*BlockchainInfo, error) {
	args := m.Called(ctx)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*BlockchainInfo), nil
}

func (m *Mock) GetChainTxStats(ctx context.Context, nBlocks *int) (*ChainTxStats, error) {
	args := m.Called(ctx, nBlocks)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*ChainTxStats), nil
}

func (m *Mock) GetRawTransaction(ctx context.Context, txid string) (*Transaction, error) {
	args := m.Called(ctx, txid)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*Transaction), nil
}

func (m *Mock) GetRawMempool(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), nil
}

func (m *Mock) GetAddressBalance(ctx context.Context, address string) (*AddressBalance, error) {
	args := m.Called(ctx, address)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*AddressBalance), nil
}

func (m *Mock) GetAddressTxIDs(ctx context.Context, address string) ([]string, error) {
	args := m.Called(ctx, address)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), nil
}

func (m *Mock) GetAddressUtxos(ctx context.Context, address string) ([]AddressUtxo, error) {
	args := m.Called(ctx, address)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]AddressUtxo), nil
}

func (m *Mock) GetAddressDeltas(ctx context.Context, address string, start, end *uint64) ([]AddressDelta, error) {
	args := m.Called(ctx, address, start, end)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]AddressDelta), nil
}

func (m *Mock) GetNetworkInfo(ctx context.Context) (*NetworkInfo, error) {
	args := m.Called(ctx)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*NetworkInfo), nil
}

func (m *Mock) GetMempoolInfo(ctx context.Context) (*MempoolInfo, error) {
	args := m.Called(ctx)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*MempoolInfo), nil
}

func (m *Mock) GetBestChainLock(ctx context.Context) (*ChainLock, error) {
	args := m.Called(ctx)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*ChainLock), nil
}

func (m *Mock) GetMasternodeList(ctx context.Context) (map[string]MasternodeListEntry, error) {
	args := m.Called(ctx)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[string]MasternodeListEntry), nil
}

func (m *Mock) GetMasternodeCount(ctx context.Context) (*MasternodeCount, error) {
	args := m.Called(ctx)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*MasternodeCount), nil
}

func (m *Mock) GetProTxInfo(ctx context.Context, proTxHash string) (*ProTx, error) {
	args := m.Called(ctx, proTxHash)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*ProTx), nil
}

func (m *Mock) GetGovernanceInfo(ctx context.Context) (*GovernanceInfo, error) {
	args := m.Called(ctx)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*GovernanceInfo), nil
}

func (m *Mock) GetGovernanceObjects(ctx context.Context) (map[string]GovernanceObject, error) {
	args := m.Called(ctx)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[string]GovernanceObject), nil
}
