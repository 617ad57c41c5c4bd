package get_provider_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nailsrdv/NRDV-BookingService/internal/api/handlers"
	"github.com/nailsrdv/NRDV-BookingService/internal/api/middleware"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/appointments"
)

const (
	msgInvalidProviderID = "identifiant de prestataire invalide"
	msgMissingIdentity   = "identifiants d'authentification manquants"
	msgInvalidParams     = "paramètres de requête invalides"
	msgForbidden         = "accès refusé"
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

// Handle GET /api/v1/providers/{providerId}/appointments
// Query params: period (all|upcoming|today|past), status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("GET /providers/{id}/appointments - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /providers/{id}/appointments - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	query := r.URL.Query()
	serviceReq := ToServiceRequest(providerID, query.Get("period"), query.Get("status"), actor)

	result, err := h.service.ListProviderAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrForbidden):
			h.logger.Warn("GET /providers/{id}/appointments - Access denied: provider_id=%d, actor_id=%d",
				providerID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidValue), errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("GET /providers/{id}/appointments - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /providers/{id}/appointments - Failed to list appointments: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/appointments - Appointments retrieved: provider_id=%d, count=%d",
		providerID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
