package dashcore

import (
	"context"
)

func (c *Client) GetBlockCount(ctx context.Context) (uint64, error) {
	var height uint64
	if err := c.Call(ctx, "getblockcount", nil, &height); err != nil {
		return 0, err
	}

	return height, nil
}

func (c *Client) GetBlockHash(ctx context.Context, height uint64) (string, error) {
	var hash string
	if err := c.Call(ctx, "getblockhash", []interface{}{height}, &hash); err != nil {
		return "", err
	}

	return hash, nil
}

func (c *Client) GetBestBlockHash(ctx context.Context) (string, error) {
	var hash string
	if err := c.Call(ctx, "getbestblockhash", nil, &hash); err != nil {
		return "", err
	}

	return hash, nil
}

// GetBlock fetches a block with verbosity 1 (txids) or 2 (full transactions).
func (c *Client) GetBlock(ctx context.Context, hash string, verbosity int) (*Block, error) {
	block := &Block{}
	if err := c.Call(ctx, "getblock", []interface{}{hash, verbosity}, block); err != nil {
		return nil, err
	}

	return block, nil
}

func (c *Client) GetBlockHeader(ctx context.Context, hash string) (*Block, error) {
	header := &Block{}
	if err := c.Call(ctx, "getblockheader", []interface{}{hash, true}, header); err != nil {
		return nil, err
	}

	return header, nil
}

func (c *Client) GetBlockStats(ctx context.Context, height uint64) (*BlockStats, error) {
	stats := &BlockStats{}
	if err := c.Call(ctx, "getblockstats", []interface{}{height}, stats); err != nil {
		return nil, err
	}

	return stats, nil
}

func (c *Client) GetBlockchainInfo(ctx context.Context) (*BlockchainInfo, error) {
	info := &BlockchainInfo{}
	if err := c.Call(ctx, "getblockchaininfo", nil, info); err != nil {
		return nil, err
	}

	return info, nil
}

// GetChainTxStats uses the node's default window when nBlocks is nil.
func (c *Client) GetChainTxStats(ctx context.Context, nBlocks *int) (*ChainTxStats, error) {
	var params []interface{}
	if nBlocks != nil {
		params = []interface{}{*nBlocks}
	}

	stats := &ChainTxStats{}
	if err := c.Call(ctx, "getchaintxstats", params, stats); err != nil {
		return nil, err
	}

	return stats, nil
}
