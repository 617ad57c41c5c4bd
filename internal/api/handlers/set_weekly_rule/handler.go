package set_weekly_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nailsrdv/NRDV-BookingService/internal/api/handlers"
	"github.com/nailsrdv/NRDV-BookingService/internal/api/middleware"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/availability"
)

const (
	msgInvalidProviderID  = "identifiant de prestataire invalide"
	msgInvalidDayOfWeek   = "jour de la semaine invalide, attendu 0..6"
	msgInvalidRequestBody = "corps de la requête invalide"
	msgMissingIdentity    = "identifiants d'authentification manquants"
	msgInvalidTimeWindow  = "plage horaire invalide"
	msgInvalidRange       = "l'heure de début doit précéder l'heure de fin"
	msgForbidden          = "accès refusé"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/providers/{providerId}/availability/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("PUT /providers/{id}/availability/{day} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	dayOfWeek, err := strconv.Atoi(vars["dayOfWeek"])
	if err != nil || dayOfWeek < 0 || dayOfWeek > 6 {
		h.logger.Warn("PUT /providers/{id}/availability/{day} - Invalid day of week: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /providers/{id}/availability/{day} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req SetWeeklyRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /providers/{id}/availability/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetWeeklyRule(r.Context(), req.ToServiceRequest(providerID, dayOfWeek, actor))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrForbidden):
			h.logger.Warn("PUT /providers/{id}/availability/{day} - Access denied: provider_id=%d, actor_id=%d",
				providerID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidRange):
			h.logger.Warn("PUT /providers/{id}/availability/{day} - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, availability.ErrInvalidValue):
			h.logger.Warn("PUT /providers/{id}/availability/{day} - Invalid window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeWindow)

		default:
			h.logger.Error("PUT /providers/{id}/availability/{day} - Failed to set rule: provider_id=%d, day=%d, error=%v",
				providerID, dayOfWeek, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/{id}/availability/{day} - Rule updated: provider_id=%d, day=%d",
		providerID, dayOfWeek)
	handlers.RespondJSON(w, http.StatusOK, result)
}
