package remove_blocked_slot

import (
	"context"

	"github.com/nailsrdv/NRDV-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	RemoveBlockedSlot(ctx context.Context, req *models.RemoveBlockedSlotRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
