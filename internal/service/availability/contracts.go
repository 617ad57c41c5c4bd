package availability

import (
	"context"
	"time"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория расписания и блокировок
type AvailabilityRepository interface {
	UpsertRule(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	ListRules(ctx context.Context, providerID int64) ([]*domain.AvailabilityRule, error)
	CreateBlockedSlot(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error)
	DeleteBlockedSlot(ctx context.Context, providerID, id int64) error
	ListBlockedSlotsFrom(ctx context.Context, providerID int64, from time.Time) ([]*domain.BlockedSlot, error)
}

// TimeProvider источник текущего времени, выделен для тестируемости
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
