package add_blocked_slot

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
	msgInvalidRequestBody = "corps de la requête invalide"
	msgMissingIdentity    = "identifiants d'authentification manquants"
	msgInvalidBlock       = "créneau de blocage invalide"
	msgInvalidRange       = "l'heure de début doit précéder l'heure de fin"
	msgPastDate           = "impossible de bloquer une date passée"
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

// Handle POST /api/v1/providers/{providerId}/blocked-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("POST /providers/{id}/blocked-slots - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /providers/{id}/blocked-slots - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req AddBlockedSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/{id}/blocked-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddBlockedSlot(r.Context(), req.ToServiceRequest(providerID, actor))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrForbidden):
			h.logger.Warn("POST /providers/{id}/blocked-slots - Access denied: provider_id=%d, actor_id=%d",
				providerID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrPastDate):
			h.logger.Warn("POST /providers/{id}/blocked-slots - Past date: %v", err)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, availability.ErrInvalidRange):
			h.logger.Warn("POST /providers/{id}/blocked-slots - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, availability.ErrInvalidValue):
			h.logger.Warn("POST /providers/{id}/blocked-slots - Invalid block: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBlock)

		default:
			h.logger.Error("POST /providers/{id}/blocked-slots - Failed to add blocked slot: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/blocked-slots - Blocked slot created: provider_id=%d, slot_id=%d",
		providerID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
