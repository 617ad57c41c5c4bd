package update_provider_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nailsrdv/NRDV-BookingService/internal/api/handlers"
	"github.com/nailsrdv/NRDV-BookingService/internal/api/middleware"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/catalog"
)

const (
	msgInvalidProviderID  = "identifiant de prestataire invalide"
	msgInvalidServiceID   = "identifiant de prestation invalide"
	msgInvalidRequestBody = "corps de la requête invalide"
	msgMissingIdentity    = "identifiants d'authentification manquants"
	msgServiceNotFound    = "prestation introuvable au catalogue"
	msgInvalidOverrides   = "tarif ou durée personnalisés invalides"
	msgForbidden          = "accès refusé"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/providers/{providerId}/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("PUT /providers/{id}/services/{sid} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("PUT /providers/{id}/services/{sid} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /providers/{id}/services/{sid} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req UpdateProviderServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /providers/{id}/services/{sid} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetProviderService(r.Context(), req.ToServiceRequest(providerID, serviceID, actor))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrForbidden):
			h.logger.Warn("PUT /providers/{id}/services/{sid} - Access denied: provider_id=%d, actor_id=%d",
				providerID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidService):
			h.logger.Warn("PUT /providers/{id}/services/{sid} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrInvalidValue):
			h.logger.Warn("PUT /providers/{id}/services/{sid} - Invalid overrides: %v", err)
			handlers.RespondBadRequest(w, msgInvalidOverrides)

		default:
			h.logger.Error("PUT /providers/{id}/services/{sid} - Failed to set provider service: provider_id=%d, service_id=%d, error=%v",
				providerID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/{id}/services/{sid} - Provider service updated: provider_id=%d, service_id=%d",
		providerID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
