package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nailsrdv/NRDV-BookingService/internal/api/handlers"
	resolveSlots "github.com/nailsrdv/NRDV-BookingService/internal/usecase/resolve_slots"
)

const (
	msgInvalidProviderID = "identifiant de prestataire invalide"
	msgInvalidParams     = "paramètres de requête invalides"
	msgServiceNotOffered = "ce prestataire ne propose pas cette prestation"
	msgPastDate          = "la date demandée est passée"
)

type Handler struct {
	useCase ResolveSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ResolveSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/available-slots
// Query params: serviceId, date (обязательные), granularity (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(providerID, query.Get("serviceId"), query.Get("date"), query.Get("granularity"))
	if err != nil {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, resolveSlots.ErrServiceNotOffered):
			h.logger.Warn("GET /providers/{id}/available-slots - Service not offered: provider_id=%d, service_id=%d",
				providerID, useCaseReq.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotOffered)

		case errors.Is(err, resolveSlots.ErrPastDate):
			h.logger.Warn("GET /providers/{id}/available-slots - Past date: provider_id=%d", providerID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, resolveSlots.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /providers/{id}/available-slots - Failed to resolve slots: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/available-slots - Slots resolved: provider_id=%d, service_id=%d, count=%d",
		providerID, useCaseReq.ServiceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
