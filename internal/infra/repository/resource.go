package repository

import (
	"context"
	"time"

	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/infra"
	"carwash-scheduler/internal/infra/pgquery"
	"carwash-scheduler/internal/infra/repository/converter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ResourceQueries interface {
	ListWashBays(ctx context.Context, db pgquery.DBTX) ([]pgquery.WashBays, error)
	GetWashBay(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.WashBays, error)
	CreateWashBay(ctx context.Context, db pgquery.DBTX, arg pgquery.WashBays) error
	UpdateWashBayStatus(ctx context.Context, db pgquery.DBTX, id uuid.UUID, status string, updatedAt time.Time) (int64, error)
	ListMobileTeams(ctx context.Context, db pgquery.DBTX) ([]pgquery.MobileTeams, error)
	GetMobileTeam(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.MobileTeams, error)
	CreateMobileTeam(ctx context.Context, db pgquery.DBTX, arg pgquery.MobileTeams) error
	UpdateMobileTeamStatus(ctx context.Context, db pgquery.DBTX, id uuid.UUID, status string, updatedAt time.Time) (int64, error)
}

type ResourceRepository struct {
	queries ResourceQueries
	db      pgquery.DBTX
	logger  *zap.Logger
}

func NewResourceRepository(queries ResourceQueries, db pgquery.DBTX, logger *zap.Logger) *ResourceRepository {
	return &ResourceRepository{queries: queries, db: db, logger: logger}
}

// Catalog loads every bay and team; filtering by status and capability is the domain's job.
func (r *ResourceRepository) Catalog(ctx context.Context) (resource.Catalog, error) {
	bays, err := r.queries.ListWashBays(ctx, r.db)
	if err != nil {
		return resource.Catalog{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list wash bays", err)
	}
	teams, err := r.queries.ListMobileTeams(ctx, r.db)
	if err != nil {
		return resource.Catalog{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list mobile teams", err)
	}

	cat := resource.Catalog{
		Bays:  make([]*resource.WashBay, len(bays)),
		Teams: make([]*resource.MobileTeam, len(teams)),
	}
	for i, row := range bays {
		cat.Bays[i] = converter.WashBayFromRow(row)
	}
	for i, row := range teams {
		cat.Teams[i] = converter.MobileTeamFromRow(row)
	}
	return cat, nil
}

func (r *ResourceRepository) FindWashBay(ctx context.Context, id uuid.UUID) (*resource.WashBay, error) {
	row, err := r.queries.GetWashBay(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to find wash bay", err)
	}
	return converter.WashBayFromRow(row), nil
}

func (r *ResourceRepository) FindMobileTeam(ctx context.Context, id uuid.UUID) (*resource.MobileTeam, error) {
	row, err := r.queries.GetMobileTeam(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to find mobile team", err)
	}
	return converter.MobileTeamFromRow(row), nil
}

func (r *ResourceRepository) CreateWashBay(ctx context.Context, b *resource.WashBay) error {
	if err := r.queries.CreateWashBay(ctx, r.db, converter.WashBayToRow(b)); err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to create wash bay", err)
	}
	return nil
}

func (r *ResourceRepository) CreateMobileTeam(ctx context.Context, t *resource.MobileTeam) error {
	if err := r.queries.CreateMobileTeam(ctx, r.db, converter.MobileTeamToRow(t)); err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to create mobile team", err)
	}
	return nil
}

func (r *ResourceRepository) UpdateWashBayStatus(ctx context.Context, b *resource.WashBay) error {
	n, err := r.queries.UpdateWashBayStatus(ctx, r.db, b.ID(), string(b.Status()), b.UpdatedAt())
	return r.statusResult(n, err, "wash bay")
}

func (r *ResourceRepository) UpdateMobileTeamStatus(ctx context.Context, t *resource.MobileTeam) error {
	n, err := r.queries.UpdateMobileTeamStatus(ctx, r.db, t.ID(), string(t.Status()), t.UpdatedAt())
	return r.statusResult(n, err, "mobile team")
}

func (r *ResourceRepository) statusResult(n int64, err error, what string) error {
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update "+what+" status", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, what+" not found", nil)
	}
	return nil
}
