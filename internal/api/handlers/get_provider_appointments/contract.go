package get_provider_appointments

import (
	"context"

	"github.com/nailsrdv/NRDV-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	ListProviderAppointments(ctx context.Context, req *models.ListProviderAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
