package v1

import (
	"net/http"

	"preset-backend/internal/delivery/http/response"
	"preset-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC domain.HealthUsecase
}

// Check godoc
// @Summary      Service health
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.HealthStatus}
// @Failure      503  {object}  response.Response{data=domain.HealthStatus}
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status, healthy := h.healthUC.Check(c.Request.Context())
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success: false,
			Message: "Service degraded",
			Data:    status,
		})
		return
	}
	response.Success(c, http.StatusOK, "System operational", status)
}
