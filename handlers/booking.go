package handlers

import (
	"errors"
	"net/http"

	"agendamento/models"
	"agendamento/services/booking"
	"agendamento/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgBookingCreated = "Agendamento criado com sucesso!"
	msgBookingFailed  = "Erro ao criar agendamento."
	msgListFailed     = "Erro ao buscar agendamentos."
)

type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateAppointmentHandler handles POST /agendar.
func (h *BookingHandler) CreateAppointmentHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid booking payload", zap.Error(err))
		if errors.Is(err, models.ErrServicesNotList) {
			utils.JSONError(c, http.StatusBadRequest, "missing required fields: services")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	id, err := h.Service.Submit(c.Request.Context(), req)
	if err != nil {
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			utils.JSONError(c, http.StatusBadRequest, verr.Message)
			return
		}
		logger.Error("Booking submission failed",
			zap.Error(err),
			zap.String("orphaned_appointment", booking.OrphanedAppointment(err)),
		)
		utils.JSONError(c, http.StatusInternalServerError, msgBookingFailed)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msgBookingCreated, "id": id})
}

// ListAppointmentsHandler handles GET /agendamentos/:userID.
func (h *BookingHandler) ListAppointmentsHandler(c *gin.Context) {
	views, err := h.Service.ListByUser(c.Request.Context(), c.Param("userID"))
	if err != nil {
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			utils.JSONError(c, http.StatusBadRequest, verr.Message)
			return
		}
		getLogger(c).Error("Failed to list appointments", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, msgListFailed)
		return
	}
	c.JSON(http.StatusOK, views)
}
