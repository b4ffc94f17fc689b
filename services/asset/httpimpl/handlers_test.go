package httpimpl

import (
	"net/http"
	"testing"

	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/model"
	"github.com/dashbook/dashbook/services/address"
	"github.com/dashbook/dashbook/services/asset/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "00000bafbc94add76cb75e2ec92894837288a481e5c005f6563d91623bf8bc2c"

func TestGetStatus(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h, repo, c, rec := GetMockHTTP(t, "/api/status")

		repo.On("GetStatus").Return(&model.StatusResponse{BlockHeight: 1234, Chain: "test"}, nil)

		require.NoError(t, h.GetStatus(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"block_height":1234`)
		assert.Contains(t, rec.Body.String(), `"chain":"test"`)
	})

	t.Run("upstream failure is a bad gateway", func(t *testing.T) {
		h, repo, c, rec := GetMockHTTP(t, "/api/status")

		repo.On("GetStatus").Return(nil, errors.NewUpstreamError(-28, "Loading block index..."))

		require.NoError(t, h.GetStatus(c))

		assert.Equal(t, http.StatusBadGateway, rec.Code)

		resp := decodeError(t, rec)
		assert.Equal(t, int32(http.StatusBadGateway), resp.Status)
		assert.Equal(t, int32(errors.ERR_UPSTREAM), resp.Code)
		assert.Equal(t, "rpc error -28: Loading block index...", resp.Err)
	})

	t.Run("transport failure is internal", func(t *testing.T) {
		h, repo, c, rec := GetMockHTTP(t, "/api/status")

		repo.On("GetStatus").Return(nil, errors.NewNetworkConnectionRefusedError("node unreachable"))

		require.NoError(t, h.GetStatus(c))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, int32(errors.ERR_NETWORK_CONNECTION_REFUSED), decodeError(t, rec).Code)
	})
}

func TestGetBlocks(t *testing.T) {
	t.Run("passes page and limit", func(t *testing.T) {
		h, repo, c, rec := GetMockHTTP(t, "/api/blocks?page=3&limit=10")

		repo.On("GetBlocks", 3, 10).Return(&model.BlockListResponse{Total: 500, Page: 3, Pages: 50}, nil)

		require.NoError(t, h.GetBlocks(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"pages":50`)
		repo.AssertExpectations(t)
	})

	t.Run("absent parameters are zero", func(t *testing.T) {
		h, repo, c, rec := GetMockHTTP(t, "/api/blocks")

		repo.On("GetBlocks", 0, 0).Return(&model.BlockListResponse{Page: 1}, nil)

		require.NoError(t, h.GetBlocks(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		repo.AssertExpectations(t)
	})

	for _, target := range []string{"/api/blocks?page=abc", "/api/blocks?limit=-1", "/api/blocks?page=1.5"} {
		t.Run("rejects "+target, func(t *testing.T) {
			h, repo, c, rec := GetMockHTTP(t, target)

			require.NoError(t, h.GetBlocks(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, int32(errors.ERR_INVALID_ARGUMENT), decodeError(t, rec).Code)
			repo.AssertNotCalled(t, "GetBlocks")
		})
	}
}

func TestGetBlock(t *testing.T) {
	t.Run("by height", func(t *testing.T) {
		h, repo, c, rec := GetMockHTTP(t, "/api/block/42")
		c.SetParamNames("hashOrHeight")
		c.SetParamValues("42")

		repo.On("GetBlock", "42").Return(&model.BlockDetail{Hash: testHash, Height: 42}, nil)

		require.NoError(t, h.GetBlock(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), testHash)
	})

	t.Run("not found", func(t *testing.T) {
		h, repo, c, rec := GetMockHTTP(t, "/api/block/99999999")
		c.SetParamNames("hashOrHeight")
		c.SetParamValues("99999999")

		repo.On("GetBlock", "99999999").Return(nil, errors.NewNotFoundError("block height 99999999 is beyond the tip"))

		require.NoError(t, h.GetBlock(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)

		resp := decodeError(t, rec)
		assert.Equal(t, int32(http.StatusNotFound), resp.Status)
		assert.Equal(t, "block height 99999999 is beyond the tip", resp.Err)
	})

	t.Run("bad hash", func(t *testing.T) {
		h, repo, c, rec := GetMockHTTP(t, "/api/block/xyz")
		c.SetParamNames("hashOrHeight")
		c.SetParamValues("xyz")

		repo.On("GetBlock", "xyz").Return(nil, errors.NewInvalidArgumentError("invalid block hash or height"))

		require.NoError(t, h.GetBlock(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetTransaction(t *testing.T) {
	h, repo, c, rec := GetMockHTTP(t, "/api/tx/"+testHash)
	c.SetParamNames("txid")
	c.SetParamValues(testHash)

	repo.On("GetTransaction", testHash).Return(&model.TransactionDetail{TxID: testHash, TxTypeLabel: "Classic"}, nil)

	require.NoError(t, h.GetTransaction(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tx_type_label":"Classic"`)
}

func TestGetAddress(t *testing.T) {
	t.Run("builds the request", func(t *testing.T) {
		h, repo, c, rec := GetMockHTTP(t, "/api/address/yTestAddr?page=2&limit=25")
		c.SetParamNames("address")
		c.SetParamValues("yTestAddr")

		req := address.Request{Address: "yTestAddr", Page: 2, Limit: 25}
		repo.On("GetAddress", req).Return(&model.AddressInfo{Address: "yTestAddr", BalanceSat: 150000000, Balance: 1.5}, nil)

		require.NoError(t, h.GetAddress(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"balance_sat":150000000`)
	})

	t.Run("invalid limit", func(t *testing.T) {
		h, repo, c, rec := GetMockHTTP(t, "/api/address/yTestAddr?limit=x")
		c.SetParamNames("address")
		c.SetParamValues("yTestAddr")

		require.NoError(t, h.GetAddress(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		repo.AssertNotCalled(t, "GetAddress")
	})
}

func TestGetMasternodes(t *testing.T) {
	h, repo, c, rec := GetMockHTTP(t, "/api/masternodes?page=1&limit=2&type=evo&status=enabled")

	query := repository.MasternodeQuery{Page: 1, Limit: 2, Type: "evo", Status: "enabled"}
	repo.On("GetMasternodes", query).Return(&model.MasternodeListResponse{
		Masternodes: []model.MasternodeSummary{{ProTxHash: testHash, MnType: "Evo", Status: "ENABLED"}},
		Total:       1,
		Page:        1,
		Pages:       1,
	}, nil)

	require.NoError(t, h.GetMasternodes(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"mn_type":"Evo"`)
	repo.AssertExpectations(t)
}

func TestGetMasternode(t *testing.T) {
	h, repo, c, rec := GetMockHTTP(t, "/api/masternode/"+testHash)
	c.SetParamNames("protxhash")
	c.SetParamValues(testHash)

	repo.On("GetMasternode", testHash).Return(nil, errors.NewNotFoundError("masternode %s not found", testHash))

	require.NoError(t, h.GetMasternode(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetGovernanceNetworkMempool(t *testing.T) {
	t.Run("governance", func(t *testing.T) {
		h, repo, c, rec := GetMockHTTP(t, "/api/governance")

		repo.On("GetGovernance").Return(&model.GovernanceOverview{Proposals: []model.Proposal{}}, nil)

		require.NoError(t, h.GetGovernance(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"proposals":[]`)
	})

	t.Run("network", func(t *testing.T) {
		h, repo, c, rec := GetMockHTTP(t, "/api/network")

		repo.On("GetNetwork").Return(&model.NetworkOverview{Chain: "main"}, nil)

		require.NoError(t, h.GetNetwork(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"chain":"main"`)
	})

	t.Run("mempool", func(t *testing.T) {
		h, repo, c, rec := GetMockHTTP(t, "/api/mempool")

		repo.On("GetMempool").Return(&model.MempoolResponse{Size: 2, Transactions: []string{testHash}}, nil)

		require.NoError(t, h.GetMempool(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"size":2`)
	})
}

func TestSearch(t *testing.T) {
	t.Run("hit", func(t *testing.T) {
		h, repo, c, rec := GetMockHTTP(t, "/api/search?q=1000")

		repo.On("Search", "1000").Return(&model.SearchResult{Type: repository.SearchBlock, Value: testHash}, nil)

		require.NoError(t, h.Search(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"type":"block","value":"`+testHash+`"}`, rec.Body.String())
	})

	t.Run("empty query", func(t *testing.T) {
		h, repo, c, rec := GetMockHTTP(t, "/api/search?q=")

		repo.On("Search", "").Return(nil, errors.NewInvalidArgumentError("empty search query"))

		require.NoError(t, h.Search(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "plain", errorMessage(errors.NewProcessingError("plain")))
	assert.Equal(t, "outer", errorMessage(errors.NewServiceError("outer", errors.NewNotFoundError("inner"))))
	assert.Equal(t, http.StatusNotFound, statusForKind(errors.KindNotFound))
	assert.Equal(t, http.StatusBadGateway, statusForKind(errors.KindUpstream))
}
