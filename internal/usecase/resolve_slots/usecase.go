package resolve_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	availabilityRepo "github.com/nailsrdv/NRDV-BookingService/internal/infra/storage/availability"
	catalogRepo "github.com/nailsrdv/NRDV-BookingService/internal/infra/storage/catalog"
	"github.com/nailsrdv/NRDV-BookingService/pkg/types"
)

// UseCase use case для расчета доступных слотов мастера
type UseCase struct {
	catalogRepo        CatalogRepository
	availabilityRepo   AvailabilityRepository
	appointmentRepo    AppointmentRepository
	timeProvider       TimeProvider
	defaultGranularity int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	defaultGranularity int,
	logger Logger,
) *UseCase {
	if defaultGranularity <= 0 {
		defaultGranularity = domain.DefaultGranularityMinutes
	}
	return &UseCase{
		catalogRepo:        catalogRepo,
		availabilityRepo:   availabilityRepo,
		appointmentRepo:    appointmentRepo,
		timeProvider:       &RealTimeProvider{},
		defaultGranularity: defaultGranularity,
		logger:             logger,
	}
}

// Execute выполняет use case расчета доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveSlots: provider=%d, service=%d, date=%s",
		req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveSlots: validation failed: %v", err)
		return nil, err
	}

	granularity := uc.defaultGranularity
	if req.GranularityMinutes != nil {
		granularity = *req.GranularityMinutes
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата не может быть в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("ResolveSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrPastDate
	}

	// 4. Проверяем, что мастер оказывает услугу, и берем эффективную длительность
	service, err := uc.catalogRepo.GetBookableService(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProviderServiceNotFound) {
			uc.logger.Warn("ResolveSlots: provider=%d does not offer service=%d", req.ProviderID, req.ServiceID)
			return nil, ErrServiceNotOffered
		}
		uc.logger.Error("ResolveSlots: failed to get bookable service: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookable service: %v", ErrInternal, err)
	}

	emptyResponse := &Response{
		ProviderID:         req.ProviderID,
		ServiceID:          req.ServiceID,
		Date:               req.Date,
		DurationMinutes:    service.DurationMinutes,
		GranularityMinutes: granularity,
		Slots:              []Slot{},
	}

	// 5. Получаем правило расписания на день недели
	rule, err := uc.availabilityRepo.GetRuleForDay(ctx, req.ProviderID, req.Date.Weekday())
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
			// Нет правила — день закрыт
			uc.logger.Info("ResolveSlots: no rule for provider=%d on %s", req.ProviderID, req.Date.Weekday())
			return emptyResponse, nil
		}
		uc.logger.Error("ResolveSlots: failed to get rule: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability rule: %v", ErrInternal, err)
	}

	if !rule.IsAvailable {
		uc.logger.Info("ResolveSlots: provider=%d is closed on %s", req.ProviderID, req.Date.Weekday())
		return emptyResponse, nil
	}

	// 6. Получаем блокировки календаря на дату
	blocked, err := uc.availabilityRepo.ListBlockedSlotsForDate(ctx, req.ProviderID, req.Date)
	if err != nil {
		uc.logger.Error("ResolveSlots: failed to list blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocked slots: %v", ErrInternal, err)
	}

	if hasFullDayBlock(blocked) {
		uc.logger.Info("ResolveSlots: provider=%d has a full-day block on %s",
			req.ProviderID, req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 7. Получаем активные записи на дату
	appointments, err := uc.appointmentRepo.GetActiveByProviderAndDate(ctx, req.ProviderID, req.Date)
	if err != nil {
		uc.logger.Error("ResolveSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Для сегодняшней даты отсекаем слоты, начинающиеся раньше текущего времени
	var minStart *types.TimeString
	if isSameDay(req.Date, now) {
		currentTime := types.NewTimeString(now)
		minStart = &currentTime
	}

	// 9. Рассчитываем доступные слоты
	slots := resolveSlots(rule, service.DurationMinutes, granularity, blocked, appointments, minStart)

	uc.logger.Info("ResolveSlots: %d slots for provider=%d, service=%d, date=%s",
		len(slots), req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		ProviderID:         req.ProviderID,
		ServiceID:          req.ServiceID,
		Date:               req.Date,
		DurationMinutes:    service.DurationMinutes,
		GranularityMinutes: granularity,
		Slots:              slots,
	}, nil
}
