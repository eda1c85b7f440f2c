//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/handler/api"
	resdto "carwash-scheduler/internal/handler/dto/response"
	"carwash-scheduler/internal/handler/middleware"
	"carwash-scheduler/internal/usecase/queries"
	"carwash-scheduler/tests/common/builder"
	"carwash-scheduler/tests/common/httptest"
	"carwash-scheduler/tests/common/testutil"
	queriesmock "carwash-scheduler/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAvailabilityHandler_Search(t *testing.T) {
	gin.SetMode(gin.TestMode)

	desired := builder.DefaultNow.Add(24 * time.Hour)
	reqBody := map[string]any{
		"bookingType":  "FIXED_BAY",
		"desiredStart": desired,
		"serviceIds":   []string{uuid.NewString()},
		"vehicleSize":  "MEDIUM",
	}

	setup := func(t *testing.T) (*gin.Engine, *queriesmock.MockAvailabilityQueries) {
		ctrl := gomock.NewController(t)
		q := queriesmock.NewMockAvailabilityQueries(ctrl)
		r := gin.New()
		r.Use(middleware.ErrorHandler(time.Second))
		r.POST("/availability/search", api.NewAvailabilityHandler(q).Search)
		return r, q
	}

	t.Run("exact slot", func(t *testing.T) {
		r, q := setup(t)
		q.EXPECT().SearchAvailability(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req queries.SearchAvailabilityRequest) (*queries.AvailabilityView, error) {
				assert.Equal(t, resource.VehicleSizeMedium, req.VehicleSize)
				assert.True(t, desired.Equal(req.DesiredStart))
				return &queries.AvailabilityView{
					Available:       true,
					DurationMinutes: 30,
					Exact:           &queries.SlotView{Start: desired, End: desired.Add(30 * time.Minute)},
					Alternatives:    []queries.SlotView{},
				}, nil
			}).Times(1)

		rec := httptest.PerformRequest(t, r, http.MethodPost, "/availability/search", reqBody)

		var resp resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &resp)
		assert.True(t, resp.Available)
		require.NotNil(t, resp.Exact)
		assert.True(t, desired.Equal(resp.Exact.Start))
	})

	t.Run("invalid vehicle size", func(t *testing.T) {
		r, _ := setup(t)
		body := testutil.DtoMap(t, reqBody, testutil.Field("vehicleSize", "HUGE"))
		rec := httptest.PerformRequest(t, r, http.MethodPost, "/availability/search", body)
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "Invalid request")
	})

	t.Run("size or vehicle required", func(t *testing.T) {
		r, q := setup(t)
		q.EXPECT().SearchAvailability(gomock.Any(), gomock.Any()).Return(nil, queries.ErrInvalidVehicleSize).Times(1)

		body := testutil.DtoMap(t, reqBody, testutil.Field("vehicleSize", nil))
		rec := httptest.PerformRequest(t, r, http.MethodPost, "/availability/search", body)
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "vehicle size")
	})
}
