package catalog

import (
	"context"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	ListActiveServices(ctx context.Context) ([]*domain.Service, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	UpsertProviderService(ctx context.Context, ps *domain.ProviderService) (*domain.ProviderService, error)
	ListBookableServices(ctx context.Context, providerID int64) ([]*domain.BookableService, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
