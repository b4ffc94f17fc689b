package dashcore

import (
	"context"
)

type addressQuery struct {
	Addresses []string `json:"addresses"`
	Start     *uint64  `json:"start,omitempty"`
	End       *uint64  `json:"end,omitempty"`
}

func addressParams(address string) []interface{} {
	return []interface{}{addressQuery{Addresses: []string{address}}}
}

func (c *Client) GetAddressBalance(ctx context.Context, address string) (*AddressBalance, error) {
	balance := &AddressBalance{}
	if err := c.Call(ctx, "getaddressbalance", addressParams(address), balance); err != nil {
		return nil, err
	}

	return balance, nil
}

// GetAddressTxIDs returns the txids touching address, oldest first.
func (c *Client) GetAddressTxIDs(ctx context.Context, address string) ([]string, error) {
	txids := make([]string, 0)
	if err := c.Call(ctx, "getaddresstxids", addressParams(address), &txids); err != nil {
		return nil, err
	}

	return txids, nil
}

func (c *Client) GetAddressUtxos(ctx context.Context, address string) ([]AddressUtxo, error) {
	utxos := make([]AddressUtxo, 0)
	if err := c.Call(ctx, "getaddressutxos", addressParams(address), &utxos); err != nil {
		return nil, err
	}

	return utxos, nil
}

// GetAddressDeltas optionally restricts the result to the block height range [start, end].
func (c *Client) GetAddressDeltas(ctx context.Context, address string, start, end *uint64) ([]AddressDelta, error) {
	params := []interface{}{addressQuery{
		Addresses: []string{address},
		Start:     start,
		End:       end,
	}}

	deltas := make([]AddressDelta, 0)
	if err := c.Call(ctx, "getaddressdeltas", params, &deltas); err != nil {
		return nil, err
	}

	return deltas, nil
}
