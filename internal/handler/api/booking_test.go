//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/handler/api"
	"carwash-scheduler/internal/handler/middleware"
	resdto "carwash-scheduler/internal/handler/dto/response"
	"carwash-scheduler/internal/usecase/commands"
	"carwash-scheduler/internal/usecase/queries"
	"carwash-scheduler/tests/common/builder"
	"carwash-scheduler/tests/common/httptest"
	"carwash-scheduler/tests/common/testutil"
	commandsmock "carwash-scheduler/tests/mock/commands"
	queriesmock "carwash-scheduler/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler(2 * time.Second))

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/bookings", s.handler.Create)
	s.router.GET("/bookings/:id", s.handler.Get)
	s.router.PATCH("/bookings/:id", s.handler.Update)
	s.router.POST("/bookings/:id/reschedule", s.handler.Reschedule)
	s.router.POST("/bookings/:id/cancel", s.handler.Cancel)
	s.router.POST("/bookings/:id/confirm", s.handler.Confirm)
	s.router.POST("/bookings/:id/complete", s.handler.Complete)
	s.router.POST("/bookings/:id/rating", s.handler.Rate)
	s.router.POST("/bookings/:id/services", s.handler.AddService)
	s.router.DELETE("/bookings/:id/services/:serviceId", s.handler.RemoveService)
	s.router.GET("/customers/:id/bookings", s.handler.ListByCustomer)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *BookingHandlerTestSuite) pending() *booking.Booking {
	b, err := builder.NewBookingBuilder().BuildDomain()
	s.Require().NoError(err)
	return b
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()

	manyIDs := make([]string, 11)
	for i := range manyIDs {
		manyIDs[i] = uuid.NewString()
	}

	validation := []testCaseBooking{
		{name: "missing customerId", mutate: testutil.Field("customerId", nil), expectCode: http.StatusBadRequest},
		{name: "missing scheduledAt", mutate: testutil.Field("scheduledAt", nil), expectCode: http.StatusBadRequest},
		{name: "unknown bookingType", mutate: testutil.Field("bookingType", "DRIVE_THRU"), expectCode: http.StatusBadRequest},
		{name: "no services", mutate: testutil.Field("serviceIds", []string{}), expectCode: http.StatusBadRequest},
		{name: "too many services", mutate: testutil.Field("serviceIds", manyIDs), expectCode: http.StatusBadRequest},
		{name: "notes too long", mutate: testutil.Field("notes", strings.Repeat("n", 501)), expectCode: http.StatusBadRequest},
		{name: "malformed scheduledAt", mutate: testutil.Field("scheduledAt", "tomorrow"), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 201 Created with Location header", func() {
		created := s.pending()
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req commands.CreateBookingRequest) (*booking.Booking, error) {
				s.Equal(booking.TypeFixedBay, req.Type)
				s.Len(req.ServiceIDs, 2)
				return created, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(created.ID(), resp.ID)
		s.Equal("PENDING", resp.Status)
		s.Equal(int64(4000), resp.TotalPriceCents)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/" + created.ID().String()})
	})

	for _, tc := range validation {
		s.Run("validation: "+tc.name, func() {
			body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
		})
	}

	s.Run("error: domain validation maps to 400 with code and field", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, scheduling.ErrAdvanceNoticeTooShort).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "advance notice")
		s.Contains(rec.Body.String(), `"code":"ADVANCE_NOTICE_TOO_SHORT"`)
		s.Contains(rec.Body.String(), `"field":"scheduledAt"`)
	})

	s.Run("error: contention maps to 409 with Retry-After", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, scheduling.ErrSlotUnavailable.WithDetail("alternatives", []string{"10:00"})).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "overlaps")
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Retry-After": "2"})
		s.Contains(rec.Body.String(), `"retryable":true`)
		s.Contains(rec.Body.String(), `"alternatives"`)
	})

	s.Run("error: unclassified failure maps to 500 without leaking text", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("pq: connection reset")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
		s.NotContains(rec.Body.String(), "connection reset")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	s.Run("success: returns the booking view", func() {
		view := queries.NewBookingView(s.pending())
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil)

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
		s.Len(resp.Services, 2)
	})

	s.Run("error: invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: not found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), id).Return(nil, booking.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "booking not found")
	})
}

// ================================================================================
// TestLifecycle
// ================================================================================

func (s *BookingHandlerTestSuite) TestLifecycle() {
	b := s.pending()
	base := "/bookings/" + b.ID().String()

	s.Run("reschedule passes the new start", func() {
		at := builder.DefaultNow.Add(48 * time.Hour)
		s.mockCommands.EXPECT().RescheduleBooking(gomock.Any(), b.ID(), commands.RescheduleBookingRequest{ScheduledAt: at}).
			Return(b, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/reschedule", map[string]any{"scheduledAt": at})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("cancel validates cancelledBy", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/cancel", map[string]any{"cancelledBy": "ROBOT"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("cancel maps the request", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), b.ID(), commands.CancelBookingRequest{By: booking.CancelledByStaff, Reason: "weather"}).
			Return(b, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/cancel", map[string]any{"cancelledBy": "STAFF", "reason": "weather"})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("confirm: invalid transition maps to 422", func() {
		s.mockCommands.EXPECT().ConfirmBooking(gomock.Any(), b.ID()).Return(nil, booking.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/confirm", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "transition not allowed")
	})

	s.Run("confirm: booking lock held maps to 409", func() {
		s.mockCommands.EXPECT().ConfirmBooking(gomock.Any(), b.ID()).Return(nil, commands.ErrBookingLocked).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/confirm", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "retry shortly")
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Retry-After": "2"})
	})

	s.Run("complete without body", func() {
		s.mockCommands.EXPECT().CompleteBooking(gomock.Any(), b.ID(), commands.CompleteBookingRequest{}).Return(b, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/complete", nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("rating bounds", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/rating", map[string]any{"score": 6})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")

		s.mockCommands.EXPECT().RateBooking(gomock.Any(), b.ID(), commands.RateBookingRequest{Score: 5, Feedback: "spotless"}).
			Return(b, nil).Times(1)
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/rating", map[string]any{"score": 5, "feedback": "spotless"})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("update notes", func() {
		s.mockCommands.EXPECT().UpdateBooking(gomock.Any(), b.ID(), gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, req commands.UpdateBookingRequest) (*booking.Booking, error) {
				s.Require().NotNil(req.Notes)
				s.Equal("gate code 42", *req.Notes)
				s.Nil(req.Location)
				return b, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, base, map[string]any{"notes": "gate code 42"})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("add and remove service", func() {
		serviceID := uuid.New()
		s.mockCommands.EXPECT().AddService(gomock.Any(), b.ID(), serviceID).Return(b, nil).Times(1)
		s.mockCommands.EXPECT().RemoveService(gomock.Any(), b.ID(), serviceID).Return(b, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/services", map[string]any{"serviceId": serviceID})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodDelete, base+"/services/"+serviceID.String(), nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("remove service with invalid service id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, base+"/services/xyz", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid serviceId")
	})
}

// ================================================================================
// TestListByCustomer
// ================================================================================

func (s *BookingHandlerTestSuite) TestListByCustomer() {
	customerID := uuid.New()
	url := "/customers/" + customerID.String() + "/bookings"

	s.Run("success: parses filters", func() {
		view := queries.NewBookingView(s.pending())
		s.mockQueries.EXPECT().ListCustomerBookings(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req queries.ListBookingsRequest) (*queries.BookingPage, error) {
				s.Equal(customerID, req.CustomerID)
				s.Equal([]booking.Status{booking.StatusPending, booking.StatusConfirmed}, req.Statuses)
				s.Require().NotNil(req.From)
				s.Nil(req.To)
				s.Equal(5, req.Limit)
				s.Equal("abc", req.Cursor)
				return &queries.BookingPage{Items: []*queries.BookingView{view}, NextCursor: "next"}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			url+"?status=pending,CONFIRMED&from=2026-03-01T00:00:00Z&limit=5&after=abc", nil)

		var resp resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp.Bookings, 1)
		s.Equal("next", resp.NextCursor)
	})

	s.Run("error: malformed from", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?from=yesterday", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid from")
	})

	s.Run("error: malformed limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=many", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid limit")
	})

	s.Run("error: invalid cursor from queries", func() {
		s.mockQueries.EXPECT().ListCustomerBookings(gomock.Any(), gomock.Any()).Return(nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?after=bogus", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "cursor")
	})
}
