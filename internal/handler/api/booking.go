package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"carwash-scheduler/internal/domain/booking"
	reqdto "carwash-scheduler/internal/handler/dto/request"
	resdto "carwash-scheduler/internal/handler/dto/response"
	"carwash-scheduler/internal/handler/httperr"
	"carwash-scheduler/internal/usecase/commands"
	"carwash-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Book a wash bay or mobile team. Contention answers 409 with Retry-After and alternatives.
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	b, err := h.cmds.CreateBooking(c.Request.Context(), req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/bookings/"+b.ID().String())
	c.JSON(http.StatusCreated, resdto.FromBooking(b))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetBooking(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Update booking details
// @Description Change notes or, for mobile bookings, the service location
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Update booking request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id} [patch]
func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	h.respond(c, func() (*booking.Booking, error) {
		return h.cmds.UpdateBooking(c.Request.Context(), id, req.ToCommand())
	})
}

// @Summary Reschedule booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.RescheduleBookingRequest true "New start"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/reschedule [post]
func (h *BookingHandler) Reschedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	h.respond(c, func() (*booking.Booking, error) {
		return h.cmds.RescheduleBooking(c.Request.Context(), id, commands.RescheduleBookingRequest{ScheduledAt: req.ScheduledAt})
	})
}

// @Summary Cancel booking
// @Description Cancel a PENDING or CONFIRMED booking; the fee follows the cancellation tiers
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest true "Cancel booking request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	h.respond(c, func() (*booking.Booking, error) {
		return h.cmds.CancelBooking(c.Request.Context(), id, req.ToCommand())
	})
}

// @Summary Confirm booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respond(c, func() (*booking.Booking, error) {
		return h.cmds.ConfirmBooking(c.Request.Context(), id)
	})
}

// @Summary Start service
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/start [post]
func (h *BookingHandler) Start(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respond(c, func() (*booking.Booking, error) {
		return h.cmds.StartBooking(c.Request.Context(), id)
	})
}

// @Summary Complete service
// @Description Finish an IN_PROGRESS booking; minutes beyond the estimate are charged as overtime
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.CompleteBookingRequest false "Actual end (defaults to now)"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CompleteBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	h.respond(c, func() (*booking.Booking, error) {
		return h.cmds.CompleteBooking(c.Request.Context(), id, commands.CompleteBookingRequest{ActualEnd: req.ActualEnd})
	})
}

// @Summary Mark no-show
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/no-show [post]
func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respond(c, func() (*booking.Booking, error) {
		return h.cmds.MarkNoShow(c.Request.Context(), id)
	})
}

// @Summary Rate booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.RateBookingRequest true "Rating"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/rating [post]
func (h *BookingHandler) Rate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.RateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	h.respond(c, func() (*booking.Booking, error) {
		return h.cmds.RateBooking(c.Request.Context(), id, commands.RateBookingRequest{Score: req.Score, Feedback: req.Feedback})
	})
}

// @Summary Add service to booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.AddServiceRequest true "Service to add"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/services [post]
func (h *BookingHandler) AddService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	h.respond(c, func() (*booking.Booking, error) {
		return h.cmds.AddService(c.Request.Context(), id, req.ServiceID)
	})
}

// @Summary Remove service from booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Param serviceId path string true "Service ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/services/{serviceId} [delete]
func (h *BookingHandler) RemoveService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "serviceId")
	if !ok {
		return
	}
	h.respond(c, func() (*booking.Booking, error) {
		return h.cmds.RemoveService(c.Request.Context(), id, serviceID)
	})
}

// @Summary List customer bookings
// @Description Keyset-paginated by scheduled time
// @Tags bookings
// @Produce json
// @Param id path string true "Customer ID"
// @Param status query string false "Comma separated statuses"
// @Param from query string false "Scheduled at or after (RFC3339)"
// @Param to query string false "Scheduled before (RFC3339)"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Router /customers/{id}/bookings [get]
func (h *BookingHandler) ListByCustomer(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := queries.ListBookingsRequest{CustomerID: customerID, Cursor: c.Query("after")}
	if v := c.Query("status"); v != "" {
		for _, s := range strings.Split(v, ",") {
			req.Statuses = append(req.Statuses, booking.Status(strings.ToUpper(strings.TrimSpace(s))))
		}
	}
	var err error
	if req.From, err = queryTime(c, "from"); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid from", nil)
		return
	}
	if req.To, err = queryTime(c, "to"); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid to", nil)
		return
	}
	if v := c.Query("limit"); v != "" {
		if req.Limit, err = strconv.Atoi(v); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
	}

	page, err := h.q.ListCustomerBookings(c.Request.Context(), req)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingPage(page))
}

func (h *BookingHandler) respond(c *gin.Context, run func() (*booking.Booking, error)) {
	b, err := run()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func queryTime(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
