package repository_test

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/dashbook/dashbook/dashcore"
	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/model"
	"github.com/dashbook/dashbook/services/address"
	"github.com/dashbook/dashbook/services/asset/repository"
	"github.com/dashbook/dashbook/stores/cache"
	"github.com/dashbook/dashbook/ulogger"
	"github.com/dashbook/dashbook/util/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	blockHash = strings.Repeat("ab", 32)
	txHash    = strings.Repeat("cd", 32)
	proTxHash = strings.Repeat("ef", 32)
)

func newTestRepository(t *testing.T) (*repository.Repository, *dashcore.Mock, *cache.Caches) {
	tSettings := test.CreateBaseTestSettings()
	client := &dashcore.Mock{}
	caches := cache.NewCaches(tSettings)

	t.Cleanup(caches.Stop)

	repo, err := repository.NewRepository(ulogger.TestLogger{}, tSettings, client, caches,
		address.NewEngine(ulogger.TestLogger{}, client, tSettings))
	require.NoError(t, err)

	return repo, client, caches
}

func TestGetBlockCachesDeeplyConfirmed(t *testing.T) {
	repo, client, caches := newTestRepository(t)

	client.On("GetBlock", mock.Anything, blockHash, 2).Return(&dashcore.Block{
		Hash:          blockHash,
		Height:        100,
		Confirmations: 7,
	}, nil)

	first, err := repo.GetBlock(context.Background(), blockHash)
	require.NoError(t, err)

	second, err := repo.GetBlock(context.Background(), blockHash)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	client.AssertNumberOfCalls(t, "GetBlock", 1)
	assert.Equal(t, 1, caches.Blocks.Len())

	// the height index is populated alongside, so no getblockhash is needed
	byHeight, err := repo.GetBlock(context.Background(), "100")
	require.NoError(t, err)
	assert.Equal(t, blockHash, byHeight.Hash)
	client.AssertNotCalled(t, "GetBlockHash", mock.Anything, mock.Anything)
}

func TestGetBlockShallowIsNeverCached(t *testing.T) {
	repo, client, caches := newTestRepository(t)

	client.On("GetBlock", mock.Anything, blockHash, 2).Return(&dashcore.Block{
		Hash:          blockHash,
		Height:        100,
		Confirmations: 6,
	}, nil)

	for i := 0; i < 3; i++ {
		_, err := repo.GetBlock(context.Background(), blockHash)
		require.NoError(t, err)
	}

	client.AssertNumberOfCalls(t, "GetBlock", 3)
	assert.Equal(t, 0, caches.Blocks.Len())
	assert.Equal(t, 0, caches.HeightIndex.Len())
}

func TestGetBlockByHeight(t *testing.T) {
	repo, client, _ := newTestRepository(t)

	client.On("GetBlockHash", mock.Anything, uint64(5)).Return(blockHash, nil)
	client.On("GetBlock", mock.Anything, blockHash, 2).Return(&dashcore.Block{Hash: blockHash, Height: 5, Confirmations: 1}, nil)

	detail, err := repo.GetBlock(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), detail.Height)
}

func TestGetBlockInvalidInput(t *testing.T) {
	repo, client, _ := newTestRepository(t)

	for _, input := range []string{"xyz", "abc123", strings.Repeat("z", 64), "99999999999999999999999"} {
		_, err := repo.GetBlock(context.Background(), input)
		require.Error(t, err, input)
		assert.Equal(t, errors.KindBadRequest, errors.KindOf(err), input)
	}

	client.AssertNotCalled(t, "GetBlock", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetBlockPreservesUpstreamKind(t *testing.T) {
	repo, client, _ := newTestRepository(t)

	client.On("GetBlock", mock.Anything, blockHash, 2).Return(nil, errors.NewNotFoundError("Block not found"))

	_, err := repo.GetBlock(context.Background(), blockHash)
	require.Error(t, err)
	assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
}

func TestGetTransactionCaching(t *testing.T) {
	repo, client, caches := newTestRepository(t)

	confirmations := int64(7)
	client.On("GetRawTransaction", mock.Anything, txHash).Return(&dashcore.Transaction{
		TxID:          txHash,
		Confirmations: &confirmations,
	}, nil)

	_, err := repo.GetTransaction(context.Background(), txHash)
	require.NoError(t, err)

	detail, err := repo.GetTransaction(context.Background(), strings.ToUpper(txHash))
	require.NoError(t, err)
	assert.Equal(t, txHash, detail.TxID)

	client.AssertNumberOfCalls(t, "GetRawTransaction", 1)
	assert.Equal(t, 1, caches.Transactions.Len())
}

func TestGetTransactionMempoolNotCached(t *testing.T) {
	repo, client, caches := newTestRepository(t)

	client.On("GetRawTransaction", mock.Anything, txHash).Return(&dashcore.Transaction{TxID: txHash}, nil)

	_, err := repo.GetTransaction(context.Background(), txHash)
	require.NoError(t, err)
	_, err = repo.GetTransaction(context.Background(), txHash)
	require.NoError(t, err)

	client.AssertNumberOfCalls(t, "GetRawTransaction", 2)
	assert.Equal(t, 0, caches.Transactions.Len())
}

func registerChain(client *dashcore.Mock, tip uint64) {
	client.On("GetBlockCount", mock.Anything).Return(tip, nil)

	for h := uint64(0); h <= tip; h++ {
		hash := fmt.Sprintf("hash%d", h)
		client.On("GetBlockHash", mock.Anything, h).Return(hash, nil)
		client.On("GetBlockHeader", mock.Anything, hash).Return(&dashcore.Block{Hash: hash, Height: h}, nil)
	}
}

func heightsOf(resp *model.BlockListResponse) []uint64 {
	heights := make([]uint64, 0, len(resp.Blocks))
	for _, b := range resp.Blocks {
		heights = append(heights, b.Height)
	}

	return heights
}

func TestGetBlocksPagination(t *testing.T) {
	repo, client, _ := newTestRepository(t)
	registerChain(client, 25)

	first, err := repo.GetBlocks(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{25, 24, 23, 22, 21, 20, 19, 18, 17, 16}, heightsOf(first))
	assert.Equal(t, uint64(25), first.Total)
	assert.Equal(t, uint64(3), first.Pages)
	assert.Equal(t, 1, first.Page)

	last, err := repo.GetBlocks(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 4, 3, 2, 1, 0}, heightsOf(last))

	past, err := repo.GetBlocks(context.Background(), 4, 10)
	require.NoError(t, err)
	assert.Empty(t, past.Blocks)
}

func TestGetBlocksHugePage(t *testing.T) {
	repo, client, _ := newTestRepository(t)
	registerChain(client, 25)

	tests := []struct {
		name  string
		page  int
		limit int
	}{
		{"half max int", math.MaxInt64 / 2, 4},
		// (page-1)*limit is exactly 2^64, which wraps to the first page in uint64
		{"offset wrapping to zero", 1<<60 + 1, 16},
		{"max int", math.MaxInt64, repository.MaxBlocksLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp *model.BlockListResponse

			require.NotPanics(t, func() {
				var err error
				resp, err = repo.GetBlocks(context.Background(), tt.page, tt.limit)
				require.NoError(t, err)
			})

			assert.Empty(t, resp.Blocks)
			assert.Equal(t, uint64(25), resp.Total)
			assert.Equal(t, tt.page, resp.Page)
		})
	}

	client.AssertNotCalled(t, "GetBlockHash", mock.Anything, mock.Anything)
}

func TestGetBlocksClampsAndCaches(t *testing.T) {
	repo, client, caches := newTestRepository(t)
	registerChain(client, 150)

	resp, err := repo.GetBlocks(context.Background(), 0, 500)
	require.NoError(t, err)
	assert.Len(t, resp.Blocks, repository.MaxBlocksLimit)
	assert.Equal(t, 1, resp.Page)

	resp, err = repo.GetBlocks(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, resp.Blocks, repository.DefaultBlocksLimit)

	_, err = repo.GetBlocks(context.Background(), 1, 0)
	require.NoError(t, err)
	client.AssertNumberOfCalls(t, "GetBlockCount", 2)

	caches.InvalidateTip()

	_, err = repo.GetBlocks(context.Background(), 1, 0)
	require.NoError(t, err)
	client.AssertNumberOfCalls(t, "GetBlockCount", 3)
}

func registerTip(client *dashcore.Mock) {
	client.On("GetBlockchainInfo", mock.Anything).Return(&dashcore.BlockchainInfo{
		Chain:         "test",
		Blocks:        1200,
		BestBlockHash: blockHash,
		Difficulty:    0.5,
	}, nil)
	client.On("GetNetworkInfo", mock.Anything).Return(&dashcore.NetworkInfo{
		BuildVersion:    "v22.0.0",
		ProtocolVersion: 70235,
		Connections:     8,
		ConnectionsMN:   3,
	}, nil)
	client.On("GetBestChainLock", mock.Anything).Return(&dashcore.ChainLock{BlockHash: blockHash, Height: 1199}, nil)
	client.On("GetMempoolInfo", mock.Anything).Return(&dashcore.MempoolInfo{Size: 4, Bytes: 900, TotalFee: 0.0001, MempoolMinFee: 0.00001}, nil)
	client.On("GetMasternodeCount", mock.Anything).Return(&dashcore.MasternodeCount{Total: 10, Enabled: 9}, nil)
	client.On("GetChainTxStats", mock.Anything, (*int)(nil)).Return(&dashcore.ChainTxStats{TxCount: 5000, TxRate: 0.02}, nil)
	client.On("GetBlock", mock.Anything, blockHash, 1).Return(&dashcore.Block{
		Hash: blockHash,
		CbTx: &dashcore.CbTx{CreditPoolBalance: 42.5},
	}, nil)
}

func TestGetStatusCachedUntilTipChanges(t *testing.T) {
	repo, client, caches := newTestRepository(t)
	registerTip(client)

	status, err := repo.GetStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1200), status.BlockHeight)
	assert.Equal(t, uint64(1199), status.ChainlockHeight)
	assert.InDelta(t, 42.5, status.CreditPoolBalance, 1e-9)
	assert.Equal(t, uint32(9), status.MasternodeCount.Enabled)
	assert.Equal(t, "test", status.Chain)

	_, err = repo.GetStatus(context.Background())
	require.NoError(t, err)
	client.AssertNumberOfCalls(t, "GetBlockchainInfo", 1)

	caches.InvalidateTip()

	_, err = repo.GetStatus(context.Background())
	require.NoError(t, err)
	client.AssertNumberOfCalls(t, "GetBlockchainInfo", 2)
	client.AssertNotCalled(t, "GetNetworkInfo", mock.Anything)
}

func TestGetStatusFailsWhenAnyCallFails(t *testing.T) {
	repo, client, caches := newTestRepository(t)

	client.On("GetBlockchainInfo", mock.Anything).Return(&dashcore.BlockchainInfo{BestBlockHash: blockHash}, nil)
	client.On("GetBestChainLock", mock.Anything).Return(nil, errors.NewUpstreamError(-32603, "Unable to find any ChainLock"))
	client.On("GetMempoolInfo", mock.Anything).Return(&dashcore.MempoolInfo{}, nil)
	client.On("GetMasternodeCount", mock.Anything).Return(&dashcore.MasternodeCount{}, nil)
	client.On("GetChainTxStats", mock.Anything, (*int)(nil)).Return(&dashcore.ChainTxStats{}, nil)

	_, err := repo.GetStatus(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.KindUpstream, errors.KindOf(err))
	assert.Equal(t, 0, caches.Status.Len())
}

func TestGetNetwork(t *testing.T) {
	repo, client, _ := newTestRepository(t)
	registerTip(client)

	network, err := repo.GetNetwork(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "v22.0.0", network.CoreVersion)
	assert.Equal(t, uint64(70235), network.ProtocolVersion)
	assert.Equal(t, uint32(3), network.ConnectionsMN)
	assert.Equal(t, blockHash, network.ChainlockHash)
	assert.Equal(t, uint64(5000), network.TxCount)
	assert.InDelta(t, 0.0001, network.MempoolTotalFee, 1e-12)
	assert.InDelta(t, 42.5, network.CreditPoolBalance, 1e-9)
}

func TestGetMempool(t *testing.T) {
	repo, client, _ := newTestRepository(t)

	client.On("GetMempoolInfo", mock.Anything).Return(&dashcore.MempoolInfo{Size: 2, MempoolMinFee: 0.00001}, nil)
	client.On("GetRawMempool", mock.Anything).Return([]string{"a", "b"}, nil)

	mempool, err := repo.GetMempool(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, mempool.Transactions)
	assert.InDelta(t, 0.00001, mempool.MinFee, 1e-12)
}

func TestGetMasternodes(t *testing.T) {
	repo, client, _ := newTestRepository(t)

	client.On("GetMasternodeList", mock.Anything).Return(map[string]dashcore.MasternodeListEntry{
		"c": {ProTxHash: "c", Type: "Regular", Status: "POSE_BANNED", PoSePenaltyScore: 0},
		"a": {ProTxHash: "a", Type: "Evo", Status: "ENABLED", PoSePenaltyScore: 5},
		"b": {ProTxHash: "b", Type: "Regular", Status: "ENABLED", PoSePenaltyScore: 0},
		"d": {ProTxHash: "d", Type: "Regular", Status: "ENABLED", PoSePenaltyScore: 0},
	}, nil)

	resp, err := repo.GetMasternodes(context.Background(), repository.MasternodeQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 2, resp.Pages)
	require.Len(t, resp.Masternodes, 2)
	assert.Equal(t, "b", resp.Masternodes[0].ProTxHash)
	assert.Equal(t, "d", resp.Masternodes[1].ProTxHash)

	resp, err = repo.GetMasternodes(context.Background(), repository.MasternodeQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Masternodes, 2)
	assert.Equal(t, "a", resp.Masternodes[0].ProTxHash)
	assert.Equal(t, "c", resp.Masternodes[1].ProTxHash)

	resp, err = repo.GetMasternodes(context.Background(), repository.MasternodeQuery{Type: "regular", Status: "enabled"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Pages)

	resp, err = repo.GetMasternodes(context.Background(), repository.MasternodeQuery{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, resp.Masternodes)
	assert.NotNil(t, resp.Masternodes)

	// the shaped list is cached
	client.AssertNumberOfCalls(t, "GetMasternodeList", 1)
}

func TestGetMasternodesHugePage(t *testing.T) {
	repo, client, _ := newTestRepository(t)

	client.On("GetMasternodeList", mock.Anything).Return(map[string]dashcore.MasternodeListEntry{
		"a": {ProTxHash: "a", Type: "Regular", Status: "ENABLED"},
		"b": {ProTxHash: "b", Type: "Regular", Status: "ENABLED"},
		"c": {ProTxHash: "c", Type: "Evo", Status: "ENABLED"},
	}, nil)

	tests := []struct {
		name    string
		page    int
		limit   int
		wantLen int
	}{
		{"half max int", math.MaxInt64 / 2, 4, 0},
		{"max int", math.MaxInt64, 1, 0},
		{"page just past the end", 2, 3, 0},
		{"last page", 3, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp *model.MasternodeListResponse

			require.NotPanics(t, func() {
				var err error
				resp, err = repo.GetMasternodes(context.Background(), repository.MasternodeQuery{Page: tt.page, Limit: tt.limit})
				require.NoError(t, err)
			})

			assert.Len(t, resp.Masternodes, tt.wantLen)
			assert.NotNil(t, resp.Masternodes)
			assert.Equal(t, 3, resp.Total)
		})
	}
}

func TestGetMasternode(t *testing.T) {
	repo, client, _ := newTestRepository(t)

	client.On("GetProTxInfo", mock.Anything, proTxHash).Return(&dashcore.ProTx{ProTxHash: proTxHash, Type: "Evo"}, nil)

	detail, err := repo.GetMasternode(context.Background(), proTxHash)
	require.NoError(t, err)
	assert.Equal(t, proTxHash, detail.ProTxHash)

	_, err = repo.GetMasternode(context.Background(), "short")
	require.Error(t, err)
	assert.Equal(t, errors.KindBadRequest, errors.KindOf(err))
}

func TestSearch(t *testing.T) {
	notFound := errors.NewNotFoundError("not found")

	tests := []struct {
		name  string
		q     string
		setup func(client *dashcore.Mock)
		want  model.SearchResult
	}{
		{
			name: "height",
			q:    " 12 ",
			setup: func(client *dashcore.Mock) {
				client.On("GetBlockHash", mock.Anything, uint64(12)).Return(blockHash, nil)
			},
			want: model.SearchResult{Type: repository.SearchBlock, Value: blockHash},
		},
		{
			name: "block hash",
			q:    blockHash,
			setup: func(client *dashcore.Mock) {
				client.On("GetBlockHeader", mock.Anything, blockHash).Return(&dashcore.Block{Hash: blockHash}, nil)
			},
			want: model.SearchResult{Type: repository.SearchBlock, Value: blockHash},
		},
		{
			name: "txid",
			q:    txHash,
			setup: func(client *dashcore.Mock) {
				client.On("GetBlockHeader", mock.Anything, txHash).Return(nil, notFound)
				client.On("GetRawTransaction", mock.Anything, txHash).Return(&dashcore.Transaction{TxID: txHash}, nil)
			},
			want: model.SearchResult{Type: repository.SearchTx, Value: txHash},
		},
		{
			name: "protx",
			q:    proTxHash,
			setup: func(client *dashcore.Mock) {
				client.On("GetBlockHeader", mock.Anything, proTxHash).Return(nil, notFound)
				client.On("GetRawTransaction", mock.Anything, proTxHash).Return(nil, notFound)
				client.On("GetProTxInfo", mock.Anything, proTxHash).Return(&dashcore.ProTx{ProTxHash: proTxHash}, nil)
			},
			want: model.SearchResult{Type: repository.SearchMasternode, Value: proTxHash},
		},
		{
			name: "address",
			q:    "yWdXnYxGbouNoo8yMvcbZmZ3Gdp6BpySxL",
			setup: func(client *dashcore.Mock) {
				client.On("GetAddressBalance", mock.Anything, "yWdXnYxGbouNoo8yMvcbZmZ3Gdp6BpySxL").Return(&dashcore.AddressBalance{}, nil)
			},
			want: model.SearchResult{Type: repository.SearchAddress, Value: "yWdXnYxGbouNoo8yMvcbZmZ3Gdp6BpySxL"},
		},
		{
			name: "unknown address",
			q:    "Xnothing",
			setup: func(client *dashcore.Mock) {
				client.On("GetAddressBalance", mock.Anything, "Xnothing").Return(nil, errors.NewUpstreamError(-5, "Invalid address"))
			},
			want: model.SearchResult{Type: repository.SearchNone, Value: ""},
		},
		{
			name:  "nothing",
			q:     "hello",
			setup: func(client *dashcore.Mock) {},
			want:  model.SearchResult{Type: repository.SearchNone, Value: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, client, _ := newTestRepository(t)
			tt.setup(client)

			result, err := repo.Search(context.Background(), tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *result)
		})
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	repo, _, _ := newTestRepository(t)

	_, err := repo.Search(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, errors.KindBadRequest, errors.KindOf(err))
}

func TestGetGovernance(t *testing.T) {
	repo, client, _ := newTestRepository(t)

	client.On("GetGovernanceInfo", mock.Anything).Return(&dashcore.GovernanceInfo{SuperblockCycle: 16616}, nil)
	client.On("GetGovernanceObjects", mock.Anything).Return(map[string]dashcore.GovernanceObject{}, nil)

	overview, err := repo.GetGovernance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(16616), overview.Info.SuperblockCycle)
	assert.Empty(t, overview.Proposals)
}

func TestHealth(t *testing.T) {
	repo, client, _ := newTestRepository(t)

	client.On("Health", mock.Anything, false).Return(200, "block count 5", nil)

	status, _, err := repo.Health(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 200, status)

	status, msg, err := repo.Health(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Contains(t, msg, "DashcoreClient")
}
