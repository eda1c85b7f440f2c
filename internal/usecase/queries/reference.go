package queries

import (
	"context"

	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/usecase/shared"
)

type ReferenceQueries interface {
	GetActiveConstraints(ctx context.Context) (*ConstraintsView, error)
	ListResources(ctx context.Context) (*CatalogView, error)
}

type referenceQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewReferenceQueries(uow shared.UnitOfWork) ReferenceQueries {
	return &referenceQueriesImpl{uow: uow}
}

func (q *referenceQueriesImpl) GetActiveConstraints(ctx context.Context) (*ConstraintsView, error) {
	var c scheduling.Constraints
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		c, err = tx.Constraints().Active(ctx)
		return constraintsNotFound(err)
	})
	if err != nil {
		return nil, err
	}
	return NewConstraintsView(c), nil
}

// ListResources returns every bay and team, including the ones out of service.
func (q *referenceQueriesImpl) ListResources(ctx context.Context) (*CatalogView, error) {
	view := &CatalogView{WashBays: []*WashBayView{}, MobileTeams: []*MobileTeamView{}}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		cat, err := tx.Resources().Catalog(ctx)
		if err != nil {
			return err
		}
		for _, b := range cat.Bays {
			view.WashBays = append(view.WashBays, NewWashBayView(b))
		}
		for _, t := range cat.Teams {
			view.MobileTeams = append(view.MobileTeams, NewMobileTeamView(t))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
