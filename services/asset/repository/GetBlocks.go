package repository

import (
	"context"
	"strconv"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/model"
	"github.com/dashbook/dashbook/stores/cache"
	"golang.org/x/sync/errgroup"
)

const blockHeaderConcurrency = 8

// GetBlocks returns one page of the latest blocks, walking down from the tip.
// A page past genesis is empty.
func (repo *Repository) GetBlocks(ctx context.Context, page, limit int) (_ *model.BlockListResponse, err error) {
	ctx, _, endSpan := tracer.Start(ctx, "GetBlocks")
	defer func() {
		endSpan(err)
	}()

	page = clampPage(page)
	limit = clampLimit(limit, DefaultBlocksLimit, MaxBlocksLimit)

	key := strconv.Itoa(page) + ":" + strconv.Itoa(limit)

	if cached, ok := repo.caches.LatestBlocks.Get(key); ok {
		return cached, nil
	}

	gen := repo.caches.LatestBlocks.Begin()

	tip, err := repo.client.GetBlockCount(ctx)
	if err != nil {
		return nil, err
	}

	heights := pageHeights(tip, page, limit)
	blocks := make([]model.BlockSummary, len(heights))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(blockHeaderConcurrency)

	for i, height := range heights {
		g.Go(func() error {
			hash, err := repo.client.GetBlockHash(gCtx, height)
			if err != nil {
				return err
			}

			header, err := repo.client.GetBlockHeader(gCtx, hash)
			if err != nil {
				return err
			}

			blocks[i] = model.NewBlockSummary(header)

			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return nil, err
	}

	resp := &model.BlockListResponse{
		Blocks: blocks,
		Total:  tip,
		Page:   page,
		Pages:  tip/uint64(limit) + 1,
	}

	repo.caches.LatestBlocks.Set(gen, key, resp)

	return resp, nil
}

// pageHeights lists the heights of one page, highest first.
func pageHeights(tip uint64, page, limit int) []uint64 {
	if page < 1 || limit < 1 || uint64(page-1) > tip/uint64(limit) {
		return []uint64{}
	}

	offset := uint64(page-1) * uint64(limit)

	start := tip - offset

	var end uint64
	if start >= uint64(limit-1) {
		end = start - uint64(limit-1)
	}

	heights := make([]uint64, 0, start-end+1)
	for h := start; ; h-- {
		heights = append(heights, h)

		if h == end {
			break
		}
	}

	return heights
}

// GetBlock accepts a height (all digits) or a block hash.
func (repo *Repository) GetBlock(ctx context.Context, hashOrHeight string) (_ *model.BlockDetail, err error) {
	ctx, _, endSpan := tracer.Start(ctx, "GetBlock")
	defer func() {
		endSpan(err)
	}()

	hash, err := repo.resolveBlockHash(ctx, hashOrHeight)
	if err != nil {
		return nil, err
	}

	if cached, ok := repo.caches.Blocks.Get(*hash); ok {
		return cached, nil
	}

	gen := repo.caches.Blocks.Begin()

	block, err := repo.client.GetBlock(ctx, hash.String(), 2)
	if err != nil {
		return nil, err
	}

	detail := model.NewBlockDetail(block)

	if cache.Eligible(block.Confirmations) {
		repo.caches.Blocks.Set(gen, *hash, detail)
		repo.caches.HeightIndex.Set(block.Height, *hash)
	}

	return detail, nil
}

func (repo *Repository) resolveBlockHash(ctx context.Context, hashOrHeight string) (*chainhash.Hash, error) {
	if !model.IsDigits(hashOrHeight) {
		return model.ParseHash(hashOrHeight)
	}

	height, err := strconv.ParseUint(hashOrHeight, 10, 64)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid block height %q", hashOrHeight)
	}

	if hash, ok := repo.caches.HeightIndex.Get(height); ok {
		return &hash, nil
	}

	hashStr, err := repo.client.GetBlockHash(ctx, height)
	if err != nil {
		return nil, err
	}

	hash, err := chainhash.NewHashFromStr(hashStr)
	if err != nil {
		return nil, errors.NewInvalidResponseError("node returned invalid hash %q for height %d", hashStr, height, err)
	}

	return hash, nil
}
