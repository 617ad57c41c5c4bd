package update_appointment_status

import (
	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/appointments/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(appointmentID int64, actor domain.Actor) *models.TransitionRequest {
	return &models.TransitionRequest{
		AppointmentID: appointmentID,
		TargetStatus:  domain.AppointmentStatus(r.Status),
		Reason:        r.Reason,
		Actor:         actor,
	}
}
