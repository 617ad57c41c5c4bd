package get_provider_services

import (
	"context"

	"github.com/nailsrdv/NRDV-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListBookableServices(ctx context.Context, providerID int64) (*models.BookableServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
