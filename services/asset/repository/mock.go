package repository

import (
	"context"

	"github.com/dashbook/dashbook/model"
	"github.com/dashbook/dashbook/services/address"
	"github.com/stretchr/testify/mock"
)

var _ Interface = (*Mock)(nil)

type Mock struct {
	mock.Mock
}

func (m *Mock) Health(_ context.Context, checkLiveness bool) (int, string, error) {
	args := m.Called(checkLiveness)

	return args.Int(0), args.String(1), args.Error(2)
}

func (m *Mock) GetStatus(_ context.Context) (*model.StatusResponse, error) {
	args := m.Called()

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.StatusResponse), args.Error(1)
}

func (m *Mock) GetNetwork(_ context.Context) (*model.NetworkOverview, error) {
	args := m.Called()

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.NetworkOverview), args.Error(1)
}

func (m *Mock) GetMempool(_ context.Context) (*model.MempoolResponse, error) {
	args := m.Called()

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.MempoolResponse), args.Error(1)
}

func (m *Mock) GetBlocks(_ context.Context, page, limit int) (*model.BlockListResponse, error) {
	args := m.Called(page, limit)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.BlockListResponse), args.Error(1)
}

func (m *Mock) GetBlock(_ context.Context, hashOrHeight string) (*model.BlockDetail, error) {
	args := m.Called(hashOrHeight)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.BlockDetail), args.Error(1)
}

func (m *Mock) GetTransaction(_ context.Context, txid string) (*model.TransactionDetail, error) {
	args := m.Called(txid)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.TransactionDetail), args.Error(1)
}

func (m *Mock) GetAddress(_ context.Context, req address.Request) (*model.AddressInfo, error) {
	args := m.Called(req)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.AddressInfo), args.Error(1)
}

func (m *Mock) GetMasternodes(_ context.Context, query MasternodeQuery) (*model.MasternodeListResponse, error) {
	args := m.Called(query)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.MasternodeListResponse), args.Error(1)
}

func (m *Mock) GetMasternode(_ context.Context, proTxHash string) (*model.MasternodeDetail, error) {
	args := m.Called(proTxHash)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.MasternodeDetail), args.Error(1)
}

func (m *Mock) GetGovernance(_ context.Context) (*model.GovernanceOverview, error) {
	args := m.Called()

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.GovernanceOverview), args.Error(1)
}

func (m *Mock) Search(_ context.Context, q string) (*model.SearchResult, error) {
	args := m.Called(q)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.SearchResult), args.Error(1)
}
