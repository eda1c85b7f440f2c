//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/geo"
	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/infra/lock"
	"carwash-scheduler/internal/pkg/clock"
	"carwash-scheduler/internal/pkg/errs"
	"carwash-scheduler/internal/usecase/commands"
	"carwash-scheduler/internal/usecase/shared"
	"carwash-scheduler/tests/common/builder"
	"carwash-scheduler/tests/common/memstore"
	sharedmock "carwash-scheduler/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	clock    *clock.MockClock
	store    *memstore.Store
	bay      *resource.WashBay
	notifier *sharedmock.MockNotificationService
	payments *sharedmock.MockPaymentService
	locker   *lock.MemoryLocker
	uc       commands.BookingCommands

	customerID uuid.UUID
	vehicleID  uuid.UUID
	exterior   shared.ServiceData
	interior   shared.ServiceData
	waxing     shared.ServiceData
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.clock = clock.NewMockClock(builder.DefaultNow)
	s.store = memstore.New(builder.NewBookingBuilder().BuildConstraints())

	bay, err := resource.NewWashBay(resource.NewWashBayParams{BayNumber: 1, MaxVehicleSize: resource.VehicleSizeLarge}, builder.DefaultNow)
	s.Require().NoError(err)
	s.bay = bay
	s.store.AddWashBay(bay)

	s.customerID, s.vehicleID = uuid.New(), uuid.New()
	s.exterior = shared.ServiceData{ID: uuid.New(), Name: "Exterior wash", PriceCents: 2500, DurationMinutes: 30}
	s.interior = shared.ServiceData{ID: uuid.New(), Name: "Interior vacuum", PriceCents: 1500, DurationMinutes: 20}
	s.waxing = shared.ServiceData{ID: uuid.New(), Name: "Waxing", PriceCents: 3000, DurationMinutes: 30}
	catalog := map[uuid.UUID]shared.ServiceData{s.exterior.ID: s.exterior, s.interior.ID: s.interior, s.waxing.ID: s.waxing}

	customers := sharedmock.NewMockCustomerValidator(s.ctrl)
	customers.EXPECT().CustomerExists(gomock.Any(), s.customerID).Return(true, nil).AnyTimes()

	vehicles := sharedmock.NewMockVehicleValidator(s.ctrl)
	vehicle := &shared.VehicleRecord{ID: s.vehicleID, CustomerID: s.customerID, Size: resource.VehicleSizeMedium}
	vehicles.EXPECT().GetVehicle(gomock.Any(), s.vehicleID).Return(vehicle, nil).AnyTimes()
	vehicles.EXPECT().BelongsToCustomer(gomock.Any(), s.vehicleID, s.customerID).Return(true, nil).AnyTimes()

	services := sharedmock.NewMockServiceCatalog(s.ctrl)
	services.EXPECT().GetServicesData(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ids []uuid.UUID) ([]shared.ServiceData, error) {
			var out []shared.ServiceData
			for _, id := range ids {
				if d, ok := catalog[id]; ok {
					out = append(out, d)
				}
			}
			return out, nil
		}).AnyTimes()

	events := sharedmock.NewMockEventBus(s.ctrl)
	events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cache := sharedmock.NewMockBookingCache(s.ctrl)
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().InvalidateCustomer(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	s.notifier = sharedmock.NewMockNotificationService(s.ctrl)
	s.payments = sharedmock.NewMockPaymentService(s.ctrl)

	s.locker = lock.NewMemoryLocker(s.clock)
	s.uc = s.newUseCase(s.locker, customers, vehicles, services, events, cache)
}

func (s *BookingCommandsTestSuite) newUseCase(
	locker shared.Locker,
	customers shared.CustomerValidator,
	vehicles shared.VehicleValidator,
	services shared.ServiceCatalog,
	events shared.EventBus,
	cache shared.BookingCache,
) commands.BookingCommands {
	logger := zap.NewNop()
	return commands.NewBookingUseCase(
		s.store, locker, customers, vehicles, services,
		s.notifier, s.payments, events, cache,
		shared.NewSideEffectRecorder(s.store, logger, true),
		scheduling.NewEngine(),
		booking.DefaultPolicy(),
		commands.Settings{
			OperationTimeout: 5 * time.Second,
			SearchWindow:     4 * time.Hour,
			MaxAlternatives:  3,
			SlotLockTTL:      30 * time.Second,
			BookingLockTTL:   30 * time.Second,
			LockKeyPrefix:    "test:",
		},
		s.clock,
		logger,
	)
}

func (s *BookingCommandsTestSuite) createRequest(at time.Time) commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		CustomerID:  s.customerID,
		VehicleID:   s.vehicleID,
		Type:        booking.TypeFixedBay,
		ScheduledAt: at,
		ServiceIDs:  []uuid.UUID{s.exterior.ID, s.interior.ID},
	}
}

// tomorrow 09:00, inside business hours
func (s *BookingCommandsTestSuite) slot() time.Time {
	return builder.DefaultNow.Add(24 * time.Hour)
}

func (s *BookingCommandsTestSuite) create() *booking.Booking {
	s.notifier.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).Return(nil)
	b, err := s.uc.CreateBooking(context.Background(), s.createRequest(s.slot()))
	s.Require().NoError(err)
	return b
}

func (s *BookingCommandsTestSuite) confirm(id uuid.UUID) *booking.Booking {
	s.notifier.EXPECT().SendStatusUpdate(gomock.Any(), gomock.Any()).Return(nil)
	b, err := s.uc.ConfirmBooking(context.Background(), id)
	s.Require().NoError(err)
	return b
}

// ================================================================================
// CreateBooking
// ================================================================================

func (s *BookingCommandsTestSuite) TestCreateBooking() {
	s.Run("success: assigns the bay and snapshots prices", func() {
		b := s.create()

		s.Equal(booking.StatusPending, b.Status())
		s.Equal(s.bay.ID(), *b.ResourceID())
		s.Equal(int64(4000), b.TotalPrice().Cents())
		s.Equal(50, b.EstimatedMinutes())
		s.Equal(15, b.BufferMinutes())
		s.Equal(1, b.Version())

		stored, ok := s.store.Booking(b.ID())
		s.Require().True(ok)
		s.Equal(b.Snapshot(), stored.Snapshot())
	})

	s.Run("validation: one hour ahead is below the minimum notice", func() {
		_, err := s.uc.CreateBooking(context.Background(), s.createRequest(builder.DefaultNow.Add(time.Hour)))

		s.Require().Error(err)
		s.True(errs.IsKind(err, errs.KindValidation))
		s.ErrorIs(err, scheduling.ErrAdvanceNoticeTooShort)
	})

	s.Run("not found: unknown service", func() {
		req := s.createRequest(s.slot().Add(4 * time.Hour))
		req.ServiceIDs = []uuid.UUID{uuid.New()}

		_, err := s.uc.CreateBooking(context.Background(), req)

		s.ErrorIs(err, commands.ErrServiceNotFound)
	})

	s.Run("taken slot returns alternatives", func() {
		_, err := s.uc.CreateBooking(context.Background(), s.createRequest(s.slot()))

		s.Require().Error(err)
		s.ErrorIs(err, scheduling.ErrSlotUnavailable)
		var typed *errs.Error
		s.Require().True(errors.As(err, &typed))
		s.NotEmpty(typed.Details["alternatives"])
	})
}

func (s *BookingCommandsTestSuite) TestCreateBooking_ConcurrentRequestsForOneSlot() {
	s.notifier.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	const workers = 2
	var wg sync.WaitGroup
	results := make([]error, workers)
	start := make(chan struct{})
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, results[i] = s.uc.CreateBooking(context.Background(), s.createRequest(s.slot()))
		}()
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		s.True(errs.IsKind(err, errs.KindContention), "loser must get a retryable error, got %v", err)
	}
	s.Equal(1, succeeded)
	s.Len(s.store.Bookings(), 1)
}

// ================================================================================
// CancelBooking
// ================================================================================

func (s *BookingCommandsTestSuite) TestCancelBooking() {
	s.Run("five hours ahead charges half the total", func() {
		b := s.create()
		s.clock.Set(b.ScheduledAt().Add(-5 * time.Hour))

		s.notifier.EXPECT().SendBookingCancellation(gomock.Any(), gomock.Any()).Return(nil)
		s.payments.EXPECT().ChargeCancellationFee(gomock.Any(), gomock.Any(), booking.NewMoney(2000)).
			Return(&shared.PaymentResult{IntentID: "pi_fee"}, nil)

		cancelled, err := s.uc.CancelBooking(context.Background(), b.ID(), commands.CancelBookingRequest{
			By:     booking.CancelledByCustomer,
			Reason: "plans changed",
		})

		s.Require().NoError(err)
		s.Equal(booking.StatusCancelled, cancelled.Status())
		s.Equal(int64(2000), cancelled.Cancellation().Fee.Cents())
		s.Equal(booking.PaymentSettled, cancelled.Payment().State)
		s.Equal("pi_fee", *cancelled.Payment().IntentID)

		stored, _ := s.store.Booking(b.ID())
		s.Equal(booking.PaymentSettled, stored.Payment().State)
	})
}

func (s *BookingCommandsTestSuite) TestCancelBooking_Prepaid() {
	s.Run("five hours ahead refunds half of a prepaid booking", func() {
		req := s.createRequest(s.slot())
		intent := "pi_prepaid"
		req.PaymentIntentID = &intent
		s.notifier.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).Return(nil)
		b, err := s.uc.CreateBooking(context.Background(), req)
		s.Require().NoError(err)
		s.Equal(booking.PaymentPrepaid, b.Payment().State)

		s.clock.Set(b.ScheduledAt().Add(-5 * time.Hour))
		s.notifier.EXPECT().SendBookingCancellation(gomock.Any(), gomock.Any()).Return(nil)
		s.payments.EXPECT().Refund(gomock.Any(), "pi_prepaid", booking.NewMoney(2000), gomock.Any()).
			Return(&shared.PaymentResult{IntentID: "pi_prepaid"}, nil)

		cancelled, err := s.uc.CancelBooking(context.Background(), b.ID(), commands.CancelBookingRequest{By: booking.CancelledByCustomer})

		s.Require().NoError(err)
		s.Equal(int64(2000), cancelled.Cancellation().Fee.Cents())
		s.Equal(booking.PaymentSettled, cancelled.Payment().State)

		stored, _ := s.store.Booking(b.ID())
		s.Equal("pi_prepaid", *stored.Payment().IntentID)
	})

	s.Run("blank payment intent is rejected", func() {
		req := s.createRequest(s.slot().Add(2 * time.Hour))
		blank := "  "
		req.PaymentIntentID = &blank

		_, err := s.uc.CreateBooking(context.Background(), req)

		s.ErrorIs(err, booking.ErrInvalidPaymentIntent)
	})
}

func (s *BookingCommandsTestSuite) TestCancelBooking_FreesTheSlot() {
	b := s.create()
	s.notifier.EXPECT().SendBookingCancellation(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.uc.CancelBooking(context.Background(), b.ID(), commands.CancelBookingRequest{By: booking.CancelledByStaff})
	s.Require().NoError(err)

	again := s.create()
	s.Equal(s.bay.ID(), *again.ResourceID())
}

// ================================================================================
// CompleteBooking
// ================================================================================

func (s *BookingCommandsTestSuite) TestCompleteBooking_Overtime() {
	b := s.create()
	s.confirm(b.ID())

	s.clock.Set(b.ScheduledAt())
	s.notifier.EXPECT().SendStatusUpdate(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	_, err := s.uc.StartBooking(context.Background(), b.ID())
	s.Require().NoError(err)

	end := b.ScheduledAt().Add(60 * time.Minute)
	s.clock.Set(end)

	s.Run("ten minutes over turns $40 into $50", func() {
		s.payments.EXPECT().ChargeOvertime(gomock.Any(), gomock.Any(), booking.NewMoney(1000)).
			Return(&shared.PaymentResult{IntentID: "pi_ot"}, nil)

		done, err := s.uc.CompleteBooking(context.Background(), b.ID(), commands.CompleteBookingRequest{ActualEnd: &end})

		s.Require().NoError(err)
		s.Equal(booking.StatusCompleted, done.Status())
		s.Equal(10, done.Execution().OvertimeMinutes)
		s.Require().NotNil(done.Execution().FinalPrice)
		s.Equal(int64(5000), done.Execution().FinalPrice.Cents())
	})
}

func (s *BookingCommandsTestSuite) TestCompleteBooking_PaymentFailureIsUnresolved() {
	b := s.create()
	s.confirm(b.ID())
	s.clock.Set(b.ScheduledAt())
	s.notifier.EXPECT().SendStatusUpdate(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	_, err := s.uc.StartBooking(context.Background(), b.ID())
	s.Require().NoError(err)

	end := b.ScheduledAt().Add(55 * time.Minute)
	s.clock.Set(end)
	s.payments.EXPECT().ChargeOvertime(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("card_declined"))

	done, err := s.uc.CompleteBooking(context.Background(), b.ID(), commands.CompleteBookingRequest{ActualEnd: &end})

	s.Require().NoError(err, "the lifecycle transition stands")
	s.Equal(booking.StatusCompleted, done.Status())
	s.Equal(booking.PaymentUnresolved, done.Payment().State)
	s.Contains(done.Payment().LastError, "card_declined")

	effects := s.store.SideEffects()
	s.Require().Len(effects, 1)
	s.Equal(shared.EffectPayment, effects[0].Kind)
	s.Equal(b.ID(), effects[0].BookingID)
}

// ================================================================================
// RescheduleBooking
// ================================================================================

func (s *BookingCommandsTestSuite) TestRescheduleBooking_RoundTrip() {
	b := s.create()
	original := b.ScheduledAt()
	later := original.Add(2 * time.Hour)

	s.notifier.EXPECT().SendBookingReschedule(gomock.Any(), gomock.Any(), original).Return(nil)
	moved, err := s.uc.RescheduleBooking(context.Background(), b.ID(), commands.RescheduleBookingRequest{ScheduledAt: later})
	s.Require().NoError(err)
	s.True(moved.ScheduledAt().Equal(later))
	s.Equal(s.bay.ID(), *moved.ResourceID())

	s.notifier.EXPECT().SendBookingReschedule(gomock.Any(), gomock.Any(), later).Return(nil)
	back, err := s.uc.RescheduleBooking(context.Background(), b.ID(), commands.RescheduleBookingRequest{ScheduledAt: original})
	s.Require().NoError(err)

	s.True(back.ScheduledAt().Equal(original))
	s.Equal(2, back.RescheduleCount())
	s.Equal(3, back.Version())
}

func (s *BookingCommandsTestSuite) TestCreateBooking_PinnedResourceOfWrongType() {
	team, err := resource.NewMobileTeam(resource.NewMobileTeamParams{
		Name:            "Team North",
		BaseLocation:    geo.Point{Lat: 52.52, Lng: 13.40},
		ServiceRadiusKm: 20,
		DailyCapacity:   6,
	}, builder.DefaultNow)
	s.Require().NoError(err)
	s.store.AddMobileTeam(team)

	req := s.createRequest(s.slot())
	id := team.ID()
	req.ResourceID = &id

	_, err = s.uc.CreateBooking(context.Background(), req)

	s.ErrorIs(err, commands.ErrInvalidResourceID)
}

func (s *BookingCommandsTestSuite) TestCreateBooking_SlotLockFreeDuringNotification() {
	c := builder.NewBookingBuilder().BuildConstraints()
	s.notifier.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, b *booking.Booking) error {
			key := shared.SlotLockKey("test:", resource.TypeWashBay, *b.ResourceID(), b.ScheduledAt(), c.SlotDuration(), b.Duration())
			lease, ok, err := s.locker.Acquire(ctx, key, time.Minute)
			s.Require().NoError(err)
			s.True(ok, "slot lock still held while notifying")
			_, err = s.locker.Release(ctx, lease)
			return err
		})

	_, err := s.uc.CreateBooking(context.Background(), s.createRequest(s.slot()))

	s.Require().NoError(err)
}

func (s *BookingCommandsTestSuite) TestRescheduleBooking_LocksFreeDuringNotification() {
	c := builder.NewBookingBuilder().BuildConstraints()
	b := s.create()
	original := b.ScheduledAt()

	s.notifier.EXPECT().SendBookingReschedule(gomock.Any(), gomock.Any(), original).DoAndReturn(
		func(ctx context.Context, moved *booking.Booking, _ time.Time) error {
			keys := []string{
				shared.BookingLockKey("test:", moved.ID()),
				shared.SlotLockKey("test:", resource.TypeWashBay, *moved.ResourceID(), moved.ScheduledAt(), c.SlotDuration(), moved.Duration()),
			}
			for _, key := range keys {
				lease, ok, err := s.locker.Acquire(ctx, key, time.Minute)
				s.Require().NoError(err)
				s.True(ok, "%s still held while notifying", key)
				_, err = s.locker.Release(ctx, lease)
				s.Require().NoError(err)
			}
			return nil
		})

	_, err := s.uc.RescheduleBooking(context.Background(), b.ID(), commands.RescheduleBookingRequest{ScheduledAt: original.Add(2 * time.Hour)})

	s.Require().NoError(err)
}

func (s *BookingCommandsTestSuite) TestRescheduleBooking_OntoAnotherBooking() {
	first := s.create()
	s.notifier.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).Return(nil)
	second, err := s.uc.CreateBooking(context.Background(), s.createRequest(s.slot().Add(3*time.Hour)))
	s.Require().NoError(err)

	_, err = s.uc.RescheduleBooking(context.Background(), second.ID(), commands.RescheduleBookingRequest{ScheduledAt: first.ScheduledAt()})

	s.Require().Error(err)
	s.True(errs.IsKind(err, errs.KindContention))
	stored, _ := s.store.Booking(second.ID())
	s.Equal(second.ScheduledAt(), stored.ScheduledAt())
}

// ================================================================================
// Locking
// ================================================================================

func (s *BookingCommandsTestSuite) TestMutation_BookingLockHeld() {
	b := s.create()
	locker := lock.NewMemoryLocker(s.clock)
	_, ok, err := locker.Acquire(context.Background(), shared.BookingLockKey("test:", b.ID()), time.Minute)
	s.Require().NoError(err)
	s.Require().True(ok)

	uc := s.newUseCase(locker, nil, nil, nil, nil, nil)
	_, err = uc.ConfirmBooking(context.Background(), b.ID())

	s.ErrorIs(err, commands.ErrBookingLocked)
	stored, _ := s.store.Booking(b.ID())
	s.Equal(booking.StatusPending, stored.Status())
}

// ================================================================================
// Services
// ================================================================================

func (s *BookingCommandsTestSuite) TestAddAndRemoveService() {
	b := s.create()

	added, err := s.uc.AddService(context.Background(), b.ID(), s.waxing.ID)
	s.Require().NoError(err)
	s.Equal(int64(7000), added.TotalPrice().Cents())
	s.Equal(80, added.EstimatedMinutes())

	removed, err := s.uc.RemoveService(context.Background(), b.ID(), s.interior.ID)
	s.Require().NoError(err)
	s.Equal(int64(5500), removed.TotalPrice().Cents())
	s.False(removed.HasService(s.interior.ID))
}

// ================================================================================
// SweepNoShows
// ================================================================================

func (s *BookingCommandsTestSuite) TestSweepNoShows() {
	due := s.create()
	s.confirm(due.ID())

	second, err := resource.NewWashBay(resource.NewWashBayParams{BayNumber: 2, MaxVehicleSize: resource.VehicleSizeLarge}, builder.DefaultNow)
	s.Require().NoError(err)
	s.store.AddWashBay(second)
	s.notifier.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).Return(nil)
	pending, err := s.uc.CreateBooking(context.Background(), s.createRequest(s.slot()))
	s.Require().NoError(err)
	s.Equal(second.ID(), *pending.ResourceID())

	s.clock.Set(due.ScheduledAt().Add(31 * time.Minute))
	s.notifier.EXPECT().SendStatusUpdate(gomock.Any(), gomock.Any()).Return(nil)
	s.payments.EXPECT().ChargeNoShowFee(gomock.Any(), gomock.Any(), booking.NewMoney(4000)).
		Return(&shared.PaymentResult{IntentID: "pi_ns"}, nil)

	res, err := s.uc.SweepNoShows(context.Background(), 10)

	s.Require().NoError(err)
	s.Equal(commands.SweepResult{Scanned: 1, Marked: 1}, res)
	stored, _ := s.store.Booking(due.ID())
	s.Equal(booking.StatusNoShow, stored.Status())
	untouched, _ := s.store.Booking(pending.ID())
	s.Equal(booking.StatusPending, untouched.Status())
}

func TestSweepNoShows_NothingDue(t *testing.T) {
	store := memstore.New(builder.NewBookingBuilder().BuildConstraints())
	clk := clock.NewMockClock(builder.DefaultNow)
	uc := commands.NewBookingUseCase(store, lock.NewMemoryLocker(clk), nil, nil, nil, nil, nil, nil, nil,
		shared.NewSideEffectRecorder(store, zap.NewNop(), false), scheduling.NewEngine(), booking.DefaultPolicy(),
		commands.Settings{OperationTimeout: time.Second}, clk, zap.NewNop())

	res, err := uc.SweepNoShows(context.Background(), 10)

	require.NoError(t, err)
	assert.Zero(t, res)
}
