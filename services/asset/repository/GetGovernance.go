package repository

import (
	"context"

	"github.com/dashbook/dashbook/dashcore"
	"github.com/dashbook/dashbook/model"
	"golang.org/x/sync/errgroup"
)

func (repo *Repository) GetGovernance(ctx context.Context) (*model.GovernanceOverview, error) {
	var (
		info    *dashcore.GovernanceInfo
		objects map[string]dashcore.GovernanceObject
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		info, err = repo.client.GetGovernanceInfo(gCtx)
		return err
	})

	g.Go(func() (err error) {
		objects, err = repo.client.GetGovernanceObjects(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return model.NewGovernanceOverview(info, objects), nil
}
