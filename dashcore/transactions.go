package dashcore

import (
	"context"
)

// GetRawTransaction fetches the verbose form of a transaction.
func (c *Client) GetRawTransaction(ctx context.Context, txid string) (*Transaction, error) {
	tx := &Transaction{}
	if err := c.Call(ctx, "getrawtransaction", []interface{}{txid, true}, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (c *Client) GetRawMempool(ctx context.Context) ([]string, error) {
	txids := make([]string, 0)
	if err := c.Call(ctx, "getrawmempool", []interface{}{false}, &txids); err != nil {
		return nil, err
	}

	return txids, nil
}
