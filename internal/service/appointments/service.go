package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	appointmentRepo "github.com/nailsrdv/NRDV-BookingService/internal/infra/storage/appointment"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/appointments/models"
)

// Service сервис жизненного цикла записей
type Service struct {
	repo         AppointmentRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(repo AppointmentRepository, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Transition переводит запись в новый статус.
// Мастер выполняет любой разрешенный переход по своим записям,
// клиент — только отмену собственной записи.
func (s *Service) Transition(ctx context.Context, req *models.TransitionRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Transition: appointment=%d, target=%s, actor id=%d role=%s",
		req.AppointmentID, req.TargetStatus, req.Actor.ID, req.Actor.Role)

	if !domain.IsValidStatus(req.TargetStatus) {
		s.logger.Warn("Transition: unknown target status %q", req.TargetStatus)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.TargetStatus)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidValue, domain.MaxReasonLength)
	}

	appt, err := s.repo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Transition: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrStoreUnavailable, err)
	}

	if err := s.authorizeTransition(appt, req); err != nil {
		return nil, err
	}

	// Права проверены; остался сам граф переходов
	if !appt.CanTransitionTo(req.TargetStatus) {
		s.logger.Warn("Transition: %s -> %s is not allowed for appointment id=%d",
			appt.Status, req.TargetStatus, appt.ID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, req.TargetStatus)
	}

	// Обновление условное на прочитанном статусе: из двух конкурентных
	// переходов по одному снимку второй получает конфликт, а не
	// перезаписывает финальное состояние
	if req.TargetStatus == domain.StatusCancelled {
		err = s.repo.Cancel(ctx, appt.ID, appt.Status, req.Reason)
	} else {
		err = s.repo.UpdateStatus(ctx, appt.ID, appt.Status, req.TargetStatus)
	}
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			s.logger.Warn("Transition: appointment id=%d changed status concurrently", appt.ID)
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, req.TargetStatus)
		}
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Transition: failed to update appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrStoreUnavailable, err)
	}

	updated, err := s.repo.GetByID(ctx, appt.ID)
	if err != nil {
		s.logger.Error("Transition: failed to reload appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Transition: appointment id=%d moved %s -> %s", appt.ID, appt.Status, updated.Status)
	return models.FromDomainAppointment(updated), nil
}

// authorizeTransition проверяет права актора на переход
func (s *Service) authorizeTransition(appt *domain.Appointment, req *models.TransitionRequest) error {
	if req.Actor.IsProvider() {
		if appt.ProviderID != req.Actor.ID {
			s.logger.Warn("Transition: provider id=%d does not own appointment id=%d",
				req.Actor.ID, appt.ID)
			return ErrForbidden
		}
		return nil
	}

	// Клиенту доступна только отмена собственной записи
	if req.TargetStatus != domain.StatusCancelled || !appt.IsOwnedByUser(req.Actor.ID) {
		s.logger.Warn("Transition: client id=%d cannot move appointment id=%d to %s",
			req.Actor.ID, appt.ID, req.TargetStatus)
		return ErrForbidden
	}
	return nil
}

// ListProviderAppointments возвращает записи мастера с фильтрами по периоду
// и статусу, отсортированные по (дата, время начала)
func (s *Service) ListProviderAppointments(ctx context.Context, req *models.ListProviderAppointmentsRequest) (*models.AppointmentListResponse, error) {
	if !req.Actor.IsProvider() || req.Actor.ID != req.ProviderID {
		s.logger.Warn("ListProviderAppointments: actor id=%d role=%s has no rights over provider=%d",
			req.Actor.ID, req.Actor.Role, req.ProviderID)
		return nil, ErrForbidden
	}

	period, err := normalizePeriod(req.Period)
	if err != nil {
		return nil, err
	}
	if req.Status != nil && !domain.IsValidStatus(*req.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
	}

	appointments, err := s.repo.ListWithFilter(ctx, domain.AppointmentsFilter{
		ProviderID: &req.ProviderID,
		Period:     period,
		Status:     req.Status,
		Now:        s.timeProvider.Now(),
	})
	if err != nil {
		s.logger.Error("ListProviderAppointments: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ListProviderAppointments - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("ListProviderAppointments: provider=%d, period=%s, found %d",
		req.ProviderID, period, len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// ListUserAppointments возвращает записи клиента с фильтром по периоду
func (s *Service) ListUserAppointments(ctx context.Context, req *models.ListUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	if !req.Actor.IsClient() || req.Actor.ID != req.UserID {
		s.logger.Warn("ListUserAppointments: actor id=%d role=%s has no rights over user=%d",
			req.Actor.ID, req.Actor.Role, req.UserID)
		return nil, ErrForbidden
	}

	period, err := normalizePeriod(req.Period)
	if err != nil {
		return nil, err
	}

	appointments, err := s.repo.ListWithFilter(ctx, domain.AppointmentsFilter{
		UserID: &req.UserID,
		Period: period,
		Now:    s.timeProvider.Now(),
	})
	if err != nil {
		s.logger.Error("ListUserAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListUserAppointments - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("ListUserAppointments: user=%d, period=%s, found %d", req.UserID, period, len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// normalizePeriod подставляет "all" для пустого фильтра и проверяет значение
func normalizePeriod(period domain.PeriodFilter) (domain.PeriodFilter, error) {
	if period == "" {
		return domain.FilterAll, nil
	}
	if !domain.IsValidPeriodFilter(period) {
		return "", fmt.Errorf("%w: unknown period filter %q", ErrInvalidValue, period)
	}
	return period, nil
}
