package dashcore

import (
	"context"
)

func (c *Client) GetNetworkInfo(ctx context.Context) (*NetworkInfo, error) {
	info := &NetworkInfo{}
	if err := c.Call(ctx, "getnetworkinfo", nil, info); err != nil {
		return nil, err
	}

	return info, nil
}

func (c *Client) GetMempoolInfo(ctx context.Context) (*MempoolInfo, error) {
	info := &MempoolInfo{}
	if err := c.Call(ctx, "getmempoolinfo", nil, info); err != nil {
		return nil, err
	}

	return info, nil
}

func (c *Client) GetBestChainLock(ctx context.Context) (*ChainLock, error) {
	lock := &ChainLock{}
	if err := c.Call(ctx, "getbestchainlock", nil, lock); err != nil {
		return nil, err
	}

	return lock, nil
}
