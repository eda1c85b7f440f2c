package api

import (
	"net/http"
	"strings"

	"carwash-scheduler/internal/domain/resource"
	reqdto "carwash-scheduler/internal/handler/dto/request"
	resdto "carwash-scheduler/internal/handler/dto/response"
	"carwash-scheduler/internal/handler/httperr"
	"carwash-scheduler/internal/usecase/commands"
	"carwash-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	constraints commands.ConstraintsCommands
	resources   commands.ResourceCommands
	q           queries.ReferenceQueries
}

func NewAdminHandler(constraints commands.ConstraintsCommands, resources commands.ResourceCommands, q queries.ReferenceQueries) *AdminHandler {
	return &AdminHandler{constraints: constraints, resources: resources, q: q}
}

// @Summary Active scheduling constraints
// @Tags scheduling
// @Produce json
// @Success 200 {object} resdto.ConstraintsResponse
// @Failure 404 {object} httperr.Response
// @Router /scheduling/constraints [get]
func (h *AdminHandler) GetConstraints(c *gin.Context) {
	view, err := h.q.GetActiveConstraints(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromConstraintsView(view))
}

// @Summary Replace scheduling constraints
// @Description Deactivates the active version and stores its successor. Existing bookings keep their buffer.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.ReplaceConstraintsRequest true "Constraints"
// @Success 200 {object} resdto.ConstraintsResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/scheduling/constraints [put]
func (h *AdminHandler) ReplaceConstraints(c *gin.Context) {
	var req reqdto.ReplaceConstraintsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	params, err := req.ToParams()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	next, err := h.constraints.ReplaceConstraints(c.Request.Context(), params)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromConstraintsView(queries.NewConstraintsView(next)))
}

// @Summary List resources
// @Description Every wash bay and mobile team, including the ones out of service
// @Tags resources
// @Produce json
// @Success 200 {object} resdto.ResourceListResponse
// @Router /resources [get]
func (h *AdminHandler) ListResources(c *gin.Context) {
	view, err := h.q.ListResources(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCatalogView(view))
}

// @Summary Create wash bay
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.CreateWashBayRequest true "Wash bay"
// @Success 201 {object} resdto.WashBayResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/wash-bays [post]
func (h *AdminHandler) CreateWashBay(c *gin.Context) {
	var req reqdto.CreateWashBayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	bay, err := h.resources.CreateWashBay(c.Request.Context(), req.ToParams())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromWashBayView(queries.NewWashBayView(bay)))
}

// @Summary Create mobile team
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.CreateMobileTeamRequest true "Mobile team"
// @Success 201 {object} resdto.MobileTeamResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/mobile-teams [post]
func (h *AdminHandler) CreateMobileTeam(c *gin.Context) {
	var req reqdto.CreateMobileTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	team, err := h.resources.CreateMobileTeam(c.Request.Context(), req.ToParams())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromMobileTeamView(queries.NewMobileTeamView(team)))
}

// @Summary Change resource status
// @Description Take a wash bay or mobile team in or out of service
// @Tags admin
// @Accept json
// @Produce json
// @Param type path string true "wash-bays or mobile-teams"
// @Param id path string true "Resource ID"
// @Param request body reqdto.SetResourceStatusRequest true "New status"
// @Success 200 {object} resdto.ResourceStatusResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/resources/{type}/{id}/status [put]
func (h *AdminHandler) SetResourceStatus(c *gin.Context) {
	t, err := resourceType(c.Param("type"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.SetResourceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	status, err := h.resources.SetResourceStatus(c.Request.Context(), t, id, resource.Status(req.Status))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ResourceStatusResponse{ID: id, Type: t.String(), Status: status.String()})
}

func resourceType(segment string) (resource.Type, error) {
	switch strings.ToLower(segment) {
	case "wash-bays", "wash_bay":
		return resource.TypeWashBay, nil
	case "mobile-teams", "mobile_team":
		return resource.TypeMobileTeam, nil
	}
	return "", resource.ErrInvalidType.Withf("unknown resource type %q", segment)
}
