package api

import (
	"net/http"

	reqdto "carwash-scheduler/internal/handler/dto/request"
	resdto "carwash-scheduler/internal/handler/dto/response"
	"carwash-scheduler/internal/handler/httperr"
	"carwash-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Search availability
// @Description Exact slot when free, otherwise nearby alternatives. No locks are taken.
// @Tags availability
// @Accept json
// @Produce json
// @Param request body reqdto.SearchAvailabilityRequest true "Search request"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability/search [post]
func (h *AvailabilityHandler) Search(c *gin.Context) {
	var req reqdto.SearchAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.q.SearchAvailability(c.Request.Context(), req.ToQuery())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
