package resolve_slots

import (
	"context"
	"time"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetBookableService(ctx context.Context, providerID, serviceID int64) (*domain.BookableService, error)
}

// AvailabilityRepository интерфейс репозитория расписания и блокировок
type AvailabilityRepository interface {
	GetRuleForDay(ctx context.Context, providerID int64, day time.Weekday) (*domain.AvailabilityRule, error)
	ListBlockedSlotsForDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.BlockedSlot, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetActiveByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Appointment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
