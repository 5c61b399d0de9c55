package v1

import (
	"net/http"
	"strconv"

	"preset-backend/internal/delivery/http/response"
	"preset-backend/internal/domain"
	"preset-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	matchingUC domain.MatchingUsecase
}

func NewMatchingHandler(public *gin.RouterGroup, matchingUC domain.MatchingUsecase, limiter gin.HandlerFunc) {
	handler := &MatchingHandler{matchingUC: matchingUC}

	matching := public.Group("/matching", limiter)
	{
		matching.GET("/roles/:id/users", handler.UsersForRole)
		matching.GET("/gear-requests/:id/listings", handler.EquipmentForGearRequest)
		matching.GET("/users/:id/projects", handler.ProjectsForUser)
	}
}

// parseLimit reads ?limit=. Absent means 0, which the usecase replaces with its default.
func parseLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, apperror.BadRequest("limit must be a non-negative integer")
	}
	return limit, nil
}

// UsersForRole godoc
// @Summary      Match users to a role
// @Description  Ranks active users by compatibility with a project role
// @Tags         matching
// @Produce      json
// @Param        id     path   string  true   "Role ID"
// @Param        limit  query  int     false  "Maximum results (default 10)"
// @Success      200  {object}  response.Response{data=[]domain.UserMatch}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /matching/roles/{id}/users [get]
func (h *MatchingHandler) UsersForRole(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		c.Error(err)
		return
	}

	matches, err := h.matchingUC.MatchUsersForRole(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Matches retrieved", matches)
}

// EquipmentForGearRequest godoc
// @Summary      Match listings to a gear request
// @Description  Ranks active listings by compatibility with a project's gear request
// @Tags         matching
// @Produce      json
// @Param        id     path   string  true   "Gear request ID"
// @Param        limit  query  int     false  "Maximum results (default 10)"
// @Success      200  {object}  response.Response{data=[]domain.EquipmentMatch}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /matching/gear-requests/{id}/listings [get]
func (h *MatchingHandler) EquipmentForGearRequest(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		c.Error(err)
		return
	}

	matches, err := h.matchingUC.MatchEquipmentForGearRequest(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Matches retrieved", matches)
}

// ProjectsForUser godoc
// @Summary      Match projects to a user
// @Description  Ranks public, published projects by compatibility with a user profile
// @Tags         matching
// @Produce      json
// @Param        id     path   string  true   "User profile ID"
// @Param        limit  query  int     false  "Maximum results (default 10)"
// @Success      200  {object}  response.Response{data=[]domain.ProjectMatch}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /matching/users/{id}/projects [get]
func (h *MatchingHandler) ProjectsForUser(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		c.Error(err)
		return
	}

	matches, err := h.matchingUC.MatchProjectsForUser(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Matches retrieved", matches)
}
