package create_appointment

import (
	"errors"
	"net/http"

	"github.com/nailsrdv/NRDV-BookingService/internal/api/handlers"
	"github.com/nailsrdv/NRDV-BookingService/internal/api/middleware"
	createAppointment "github.com/nailsrdv/NRDV-BookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "corps de la requête invalide"
	msgInvalidDateOrTime  = "date ou heure invalide, attendu YYYY-MM-DD et HH:MM"
	msgMissingIdentity    = "identifiants d'authentification manquants"
	msgSlotTaken          = "ce créneau vient d'être réservé"
	msgSlotClosed         = "ce créneau est en dehors des horaires d'ouverture"
	msgServiceNotOffered  = "ce prestataire ne propose pas cette prestation"
	msgPastDate           = "impossible de réserver un créneau passé"
	msgInvalidInput       = "données de réservation invalides"
	msgForbidden          = "accès refusé"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: provider_id=%d, date=%s, time=%s",
				req.ProviderID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrSlotClosed):
			h.logger.Warn("POST /appointments - Slot closed: provider_id=%d, date=%s, time=%s",
				req.ProviderID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotClosed)

		case errors.Is(err, createAppointment.ErrServiceNotOffered):
			h.logger.Warn("POST /appointments - Service not offered: provider_id=%d, service_id=%d",
				req.ProviderID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotOffered)

		case errors.Is(err, createAppointment.ErrPastDate):
			h.logger.Warn("POST /appointments - Past date: provider_id=%d, date=%s", req.ProviderID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createAppointment.ErrForbidden):
			h.logger.Warn("POST /appointments - Access denied: provider_id=%d, actor_id=%d",
				req.ProviderID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: provider_id=%d, error=%v",
				req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, provider_id=%d, status=%s",
		result.ID, result.ProviderID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
