package get_provider_appointments

import (
	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/appointments/models"
)

// ToServiceRequest собирает модель сервиса из параметров запроса
func ToServiceRequest(providerID int64, periodStr, statusStr string, actor domain.Actor) *models.ListProviderAppointmentsRequest {
	req := &models.ListProviderAppointmentsRequest{
		ProviderID: providerID,
		Period:     domain.PeriodFilter(periodStr),
		Actor:      actor,
	}

	if statusStr != "" {
		status := domain.AppointmentStatus(statusStr)
		req.Status = &status
	}

	return req
}
