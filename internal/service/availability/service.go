package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/availability/models"
	"github.com/nailsrdv/NRDV-BookingService/pkg/types"
)

// Service сервис недельного расписания мастера и блокировок календаря
type Service struct {
	repo         AvailabilityRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(repo AvailabilityRepository, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// SetWeeklyRule заменяет правило для дня недели мастера.
// Повторный вызов с тем же днем перезаписывает существующее правило.
func (s *Service) SetWeeklyRule(ctx context.Context, req *models.SetWeeklyRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("SetWeeklyRule: provider=%d, day=%d, available=%t",
		req.ProviderID, req.DayOfWeek, req.IsAvailable)

	if !req.Actor.IsProvider() || req.Actor.ID != req.ProviderID {
		s.logger.Warn("SetWeeklyRule: actor id=%d role=%s has no rights over provider=%d",
			req.Actor.ID, req.Actor.Role, req.ProviderID)
		return nil, ErrForbidden
	}

	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, fmt.Errorf("%w: day of week must be 0..6, got %d", ErrInvalidValue, req.DayOfWeek)
	}

	rule := &domain.AvailabilityRule{
		ProviderID:  req.ProviderID,
		DayOfWeek:   time.Weekday(req.DayOfWeek),
		IsAvailable: req.IsAvailable,
	}

	// Для закрытого дня окно не задается
	if req.IsAvailable {
		startTime, endTime, err := parseWindow(req.StartTime, req.EndTime)
		if err != nil {
			s.logger.Warn("SetWeeklyRule: invalid window [%s, %s): %v", req.StartTime, req.EndTime, err)
			return nil, err
		}
		rule.StartTime = startTime
		rule.EndTime = endTime
	}

	created, err := s.repo.UpsertRule(ctx, rule)
	if err != nil {
		s.logger.Error("SetWeeklyRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: SetWeeklyRule - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("SetWeeklyRule: upserted rule id=%d", created.ID)
	return models.FromDomainRule(created), nil
}

// ListAvailability возвращает недельное расписание мастера и блокировки
// начиная с сегодняшнего дня
func (s *Service) ListAvailability(ctx context.Context, providerID int64) (*models.AvailabilityResponse, error) {
	rules, err := s.repo.ListRules(ctx, providerID)
	if err != nil {
		s.logger.Error("ListAvailability: failed to list rules for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListAvailability - repository error: %v", ErrStoreUnavailable, err)
	}

	today := dateOnly(s.timeProvider.Now())
	slots, err := s.repo.ListBlockedSlotsFrom(ctx, providerID, today)
	if err != nil {
		s.logger.Error("ListAvailability: failed to list blocked slots for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListAvailability - repository error: %v", ErrStoreUnavailable, err)
	}

	return models.FromDomainAvailability(providerID, rules, slots), nil
}

// AddBlockedSlot создает блокировку календаря: либо весь день, либо
// интервал [start, end) внутри дня
func (s *Service) AddBlockedSlot(ctx context.Context, req *models.AddBlockedSlotRequest) (*models.BlockedSlotResponse, error) {
	s.logger.Info("AddBlockedSlot: provider=%d, date=%s, fullDay=%t",
		req.ProviderID, req.Date, req.IsFullDay)

	if !req.Actor.IsProvider() || req.Actor.ID != req.ProviderID {
		s.logger.Warn("AddBlockedSlot: actor id=%d role=%s has no rights over provider=%d",
			req.Actor.ID, req.Actor.Role, req.ProviderID)
		return nil, ErrForbidden
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidValue, req.Date)
	}

	// Блокировать прошедшие даты бессмысленно; сегодняшняя дата допустима
	if date.Before(dateOnly(s.timeProvider.Now())) {
		s.logger.Warn("AddBlockedSlot: date %s is in the past", req.Date)
		return nil, fmt.Errorf("%w: %s", ErrPastDate, req.Date)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidValue, domain.MaxReasonLength)
	}

	slot := &domain.BlockedSlot{
		ProviderID: req.ProviderID,
		Date:       date,
		IsFullDay:  req.IsFullDay,
		Reason:     req.Reason,
	}

	if !req.IsFullDay {
		if req.StartTime == nil || req.EndTime == nil {
			return nil, fmt.Errorf("%w: partial block requires start and end time", ErrInvalidValue)
		}
		startTime, endTime, err := parseWindow(*req.StartTime, *req.EndTime)
		if err != nil {
			s.logger.Warn("AddBlockedSlot: invalid window [%s, %s): %v", *req.StartTime, *req.EndTime, err)
			return nil, err
		}
		slot.StartTime = &startTime
		slot.EndTime = &endTime
	}

	created, err := s.repo.CreateBlockedSlot(ctx, slot)
	if err != nil {
		s.logger.Error("AddBlockedSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddBlockedSlot - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("AddBlockedSlot: created blocked slot id=%d", created.ID)
	return models.FromDomainBlockedSlot(created), nil
}

// RemoveBlockedSlot снимает блокировку календаря.
// Идемпотентен: повторное удаление не возвращает ошибку.
func (s *Service) RemoveBlockedSlot(ctx context.Context, req *models.RemoveBlockedSlotRequest) error {
	s.logger.Info("RemoveBlockedSlot: provider=%d, slot=%d", req.ProviderID, req.SlotID)

	if !req.Actor.IsProvider() || req.Actor.ID != req.ProviderID {
		s.logger.Warn("RemoveBlockedSlot: actor id=%d role=%s has no rights over provider=%d",
			req.Actor.ID, req.Actor.Role, req.ProviderID)
		return ErrForbidden
	}

	if err := s.repo.DeleteBlockedSlot(ctx, req.ProviderID, req.SlotID); err != nil {
		s.logger.Error("RemoveBlockedSlot: repository error: %v", err)
		return fmt.Errorf("%w: RemoveBlockedSlot - repository error: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// parseWindow валидирует интервал [start, end): оба времени корректны
// и начало строго раньше конца
func parseWindow(start, end string) (types.TimeString, types.TimeString, error) {
	startTime, err := types.NewTimeStringFromString(start)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid start time %q", ErrInvalidValue, start)
	}

	endTime, err := types.NewTimeStringFromString(end)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid end time %q", ErrInvalidValue, end)
	}

	if !startTime.IsBefore(endTime) {
		return "", "", fmt.Errorf("%w: [%s, %s)", ErrInvalidRange, start, end)
	}

	return startTime, endTime, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
