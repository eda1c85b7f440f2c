//go:build unit

package commands_test

import (
	"context"
	"testing"

	"carwash-scheduler/internal/domain/geo"
	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/pkg/clock"
	"carwash-scheduler/internal/pkg/errs"
	"carwash-scheduler/internal/usecase/commands"
	"carwash-scheduler/internal/usecase/shared"
	"carwash-scheduler/tests/common/builder"
	"carwash-scheduler/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type ResourceCommandsTestSuite struct {
	suite.Suite
	store *memstore.Store
	uc    commands.ResourceCommands
}

func TestResourceCommandsSuite(t *testing.T) {
	suite.Run(t, new(ResourceCommandsTestSuite))
}

func (s *ResourceCommandsTestSuite) SetupTest() {
	s.store = memstore.New(builder.NewBookingBuilder().BuildConstraints())
	s.uc = commands.NewResourceUseCase(s.store, clock.NewMockClock(builder.DefaultNow), zap.NewNop())
}

func (s *ResourceCommandsTestSuite) catalog() resource.Catalog {
	var cat resource.Catalog
	err := s.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		cat, err = tx.Resources().Catalog(ctx)
		return err
	})
	s.Require().NoError(err)
	return cat
}

func (s *ResourceCommandsTestSuite) TestCreateWashBay() {
	s.Run("success", func() {
		bay, err := s.uc.CreateWashBay(context.Background(), resource.NewWashBayParams{
			BayNumber:      4,
			MaxVehicleSize: resource.VehicleSizeXL,
			Equipment:      []string{"foam_cannon"},
		})

		s.Require().NoError(err)
		s.Equal(4, bay.BayNumber())
		s.Equal(resource.StatusActive, bay.Status())
		_, found := s.catalog().FindBay(bay.ID())
		s.True(found)
	})

	s.Run("duplicate bay number", func() {
		_, err := s.uc.CreateWashBay(context.Background(), resource.NewWashBayParams{BayNumber: 4, MaxVehicleSize: resource.VehicleSizeSmall})

		s.ErrorIs(err, commands.ErrBayNumberTaken)
		s.True(errs.IsKind(err, errs.KindBusinessRule))
	})

	s.Run("validation", func() {
		_, err := s.uc.CreateWashBay(context.Background(), resource.NewWashBayParams{BayNumber: 0, MaxVehicleSize: resource.VehicleSizeSmall})

		s.ErrorIs(err, resource.ErrInvalidBayNumber)
	})
}

func (s *ResourceCommandsTestSuite) TestCreateMobileTeam() {
	team, err := s.uc.CreateMobileTeam(context.Background(), resource.NewMobileTeamParams{
		Name:            "North crew",
		BaseLocation:    geo.Point{Lat: 52.52, Lng: 13.40},
		ServiceRadiusKm: 15,
		DailyCapacity:   6,
	})

	s.Require().NoError(err)
	s.Equal("North crew", team.Name())
	_, found := s.catalog().FindTeam(team.ID())
	s.True(found)
}

func (s *ResourceCommandsTestSuite) TestSetResourceStatus() {
	bay, err := s.uc.CreateWashBay(context.Background(), resource.NewWashBayParams{BayNumber: 1, MaxVehicleSize: resource.VehicleSizeLarge})
	s.Require().NoError(err)

	s.Run("maintenance takes the bay out of matching", func() {
		status, err := s.uc.SetResourceStatus(context.Background(), resource.TypeWashBay, bay.ID(), resource.StatusMaintenance)

		s.Require().NoError(err)
		s.Equal(resource.StatusMaintenance, status)
		stored, _ := s.catalog().FindBay(bay.ID())
		s.Equal(resource.StatusMaintenance, stored.Status())
	})

	s.Run("same status again is a rule violation", func() {
		_, err := s.uc.SetResourceStatus(context.Background(), resource.TypeWashBay, bay.ID(), resource.StatusMaintenance)

		s.ErrorIs(err, resource.ErrStatusUnchanged)
	})

	s.Run("unknown resource", func() {
		_, err := s.uc.SetResourceStatus(context.Background(), resource.TypeMobileTeam, uuid.New(), resource.StatusActive)

		s.ErrorIs(err, resource.ErrResourceNotFound)
	})

	s.Run("unknown status", func() {
		_, err := s.uc.SetResourceStatus(context.Background(), resource.TypeWashBay, bay.ID(), resource.Status("BROKEN"))

		s.ErrorIs(err, resource.ErrInvalidStatus)
	})
}
