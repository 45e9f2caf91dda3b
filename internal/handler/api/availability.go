package api

import (
	"net/http"
	"strconv"

	resdto "coachwell/internal/handler/dto/response"
	"coachwell/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// @Summary List open slots
// @Description List every open future slot within the requested window
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window size in days"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 401 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid days parameter",
			})
			return
		}
		days = parsed
	}

	slots, err := h.availability.ListAvailable(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{Slots: slots})
}
