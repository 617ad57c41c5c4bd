package update_provider_service

import (
	"context"

	"github.com/nailsrdv/NRDV-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	SetProviderService(ctx context.Context, req *models.SetProviderServiceRequest) (*models.ProviderServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
