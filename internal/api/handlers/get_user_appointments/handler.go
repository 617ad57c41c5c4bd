package get_user_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nailsrdv/NRDV-BookingService/internal/api/handlers"
	"github.com/nailsrdv/NRDV-BookingService/internal/api/middleware"
	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/appointments"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/appointments/models"
)

const (
	msgInvalidUserID   = "identifiant d'utilisateur invalide"
	msgMissingIdentity = "identifiants d'authentification manquants"
	msgInvalidParams   = "paramètres de requête invalides"
	msgForbidden       = "accès refusé"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/appointments
// Query params: period (all|upcoming|today|past, опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil || userID <= 0 {
		h.logger.Warn("GET /users/{id}/appointments - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/appointments - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	result, err := h.service.ListUserAppointments(r.Context(), &models.ListUserAppointmentsRequest{
		UserID: userID,
		Period: domain.PeriodFilter(r.URL.Query().Get("period")),
		Actor:  actor,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrForbidden):
			h.logger.Warn("GET /users/{id}/appointments - Access denied: user_id=%d, actor_id=%d",
				userID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidValue):
			h.logger.Warn("GET /users/{id}/appointments - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /users/{id}/appointments - Failed to list appointments: user_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/appointments - Appointments retrieved: user_id=%d, count=%d",
		userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
