package api

import (
	"errors"
	"net/http"

	reqdto "coachwell/internal/handler/dto/request"
	resdto "coachwell/internal/handler/dto/response"
	"coachwell/internal/handler/middleware"
	"coachwell/internal/usecase/commands"
	"coachwell/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	bookings      commands.BookingCommands
	cancellations commands.CancellationCommands
	appointments  queries.AppointmentQueries
}

func NewAppointmentHandler(
	bookings commands.BookingCommands,
	cancellations commands.CancellationCommands,
	appointments queries.AppointmentQueries,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookings:      bookings,
		cancellations: cancellations,
		appointments:  appointments,
	}
}

// @Summary Book a session slot
// @Description Reserve an open slot and create an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BookAppointmentRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /appointments [post]
func (h *AppointmentHandler) Book(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.BookAppointmentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.bookings.Book(c.Request.Context(), req.SessionTime, commands.Requester{
		UserID:         identity.UserID,
		DisplayName:    identity.DisplayName,
		ContactAddress: identity.ContactAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSlotUnavailable):
			// Caller should pick another slot, not retry this one.
			c.JSON(http.StatusConflict, gin.H{
				"error": "Slot is no longer available",
			})
		case errors.Is(err, commands.ErrSessionTimeInPast):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Session time must be in the future",
			})
		case errors.Is(err, commands.ErrStoreFailure):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Booking is temporarily unavailable, please retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingResult(result))
}

// @Summary Cancel an appointment
// @Description Cancel an upcoming appointment owned by the caller
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID format",
		})
		return
	}

	if err := h.cancellations.Cancel(c.Request.Context(), id, identity.UserID); err != nil {
		switch {
		case errors.Is(err, commands.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
		case errors.Is(err, commands.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Appointment belongs to another user",
			})
		case errors.Is(err, commands.ErrAppointmentNotActive):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Only upcoming appointments may be cancelled",
			})
		case errors.Is(err, commands.ErrStoreFailure):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Cancellation is temporarily unavailable, please retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List my appointments
// @Description List every appointment of the authenticated user
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.AppointmentResponse
// @Failure 401 {object} map[string]string
// @Router /appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.appointments.ListByUser(c.Request.Context(), identity.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.AppointmentResponse, len(views))
	for i, view := range views {
		response[i] = resdto.FromAppointmentView(view)
	}

	c.JSON(http.StatusOK, response)
}
