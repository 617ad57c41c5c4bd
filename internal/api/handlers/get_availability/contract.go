package get_availability

import (
	"context"

	"github.com/nailsrdv/NRDV-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	ListAvailability(ctx context.Context, providerID int64) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
