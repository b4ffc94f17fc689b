package dashcore

import (
	"context"
)

// GetMasternodeList returns the deterministic masternode list keyed by collateral outpoint.
func (c *Client) GetMasternodeList(ctx context.Context) (map[string]MasternodeListEntry, error) {
	list := make(map[string]MasternodeListEntry)
	if err := c.Call(ctx, "masternodelist", []interface{}{"json"}, &list); err != nil {
		return nil, err
	}

	return list, nil
}

func (c *Client) GetMasternodeCount(ctx context.Context) (*MasternodeCount, error) {
	count := &MasternodeCount{}
	if err := c.Call(ctx, "masternode", []interface{}{"count"}, count); err != nil {
		return nil, err
	}

	return count, nil
}

func (c *Client) GetProTxInfo(ctx context.Context, proTxHash string) (*ProTx, error) {
	info := &ProTx{}
	if err := c.Call(ctx, "protx", []interface{}{"info", proTxHash}, info); err != nil {
		return nil, err
	}

	return info, nil
}
