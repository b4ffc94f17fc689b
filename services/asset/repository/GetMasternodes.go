package repository

import (
	"context"
	"sort"

	"github.com/dashbook/dashbook/model"
	"github.com/dashbook/dashbook/stores/cache"
)

type MasternodeQuery struct {
	Page   int
	Limit  int
	Type   string
	Status string
}

func (repo *Repository) GetMasternodes(ctx context.Context, query MasternodeQuery) (_ *model.MasternodeListResponse, err error) {
	ctx, _, endSpan := tracer.Start(ctx, "GetMasternodes")
	defer func() {
		endSpan(err)
	}()

	page := clampPage(query.Page)
	limit := clampLimit(query.Limit, DefaultMasternodesLimit, MaxMasternodesLimit)

	list, err := repo.masternodeList(ctx)
	if err != nil {
		return nil, err
	}

	selected := model.SelectMasternodes(list, query.Type, query.Status)
	total := len(selected)

	start := total
	if page-1 <= total/limit {
		start = min((page-1)*limit, total)
	}

	end := start + limit
	if end > total {
		end = total
	}

	return &model.MasternodeListResponse{
		Masternodes: selected[start:end],
		Total:       total,
		Page:        page,
		Pages:       (total + limit - 1) / limit,
	}, nil
}

// masternodeList returns the full shaped list ordered by proTxHash, so the stable
// sort applied per request is deterministic.
func (repo *Repository) masternodeList(ctx context.Context) ([]model.MasternodeSummary, error) {
	if cached, ok := repo.caches.MasternodeList.Get(cache.MasternodesKey); ok {
		return cached, nil
	}

	gen := repo.caches.MasternodeList.Begin()

	entries, err := repo.client.GetMasternodeList(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]model.MasternodeSummary, 0, len(entries))
	for _, entry := range entries {
		list = append(list, model.NewMasternodeSummary(&entry))
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].ProTxHash < list[j].ProTxHash
	})

	repo.caches.MasternodeList.Set(gen, cache.MasternodesKey, list)

	return list, nil
}

func (repo *Repository) GetMasternode(ctx context.Context, proTxHash string) (*model.MasternodeDetail, error) {
	hash, err := model.ParseHash(proTxHash)
	if err != nil {
		return nil, err
	}

	protx, err := repo.client.GetProTxInfo(ctx, hash.String())
	if err != nil {
		return nil, err
	}

	return model.NewMasternodeDetail(protx), nil
}
