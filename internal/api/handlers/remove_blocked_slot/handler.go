package remove_blocked_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nailsrdv/NRDV-BookingService/internal/api/handlers"
	"github.com/nailsrdv/NRDV-BookingService/internal/api/middleware"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/availability"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/availability/models"
)

const (
	msgInvalidProviderID = "identifiant de prestataire invalide"
	msgInvalidSlotID     = "identifiant de blocage invalide"
	msgMissingIdentity   = "identifiants d'authentification manquants"
	msgForbidden         = "accès refusé"
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

// Handle DELETE /api/v1/providers/{providerId}/blocked-slots/{slotId}
// Идемпотентен: удаление несуществующего блокировки возвращает 204.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("DELETE /providers/{id}/blocked-slots/{sid} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		h.logger.Warn("DELETE /providers/{id}/blocked-slots/{sid} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /providers/{id}/blocked-slots/{sid} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	err = h.service.RemoveBlockedSlot(r.Context(), &models.RemoveBlockedSlotRequest{
		ProviderID: providerID,
		SlotID:     slotID,
		Actor:      actor,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrForbidden):
			h.logger.Warn("DELETE /providers/{id}/blocked-slots/{sid} - Access denied: provider_id=%d, actor_id=%d",
				providerID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /providers/{id}/blocked-slots/{sid} - Failed to remove blocked slot: provider_id=%d, slot_id=%d, error=%v",
				providerID, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /providers/{id}/blocked-slots/{sid} - Blocked slot removed: provider_id=%d, slot_id=%d",
		providerID, slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
