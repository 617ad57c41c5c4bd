package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	availabilityRepo "github.com/nailsrdv/NRDV-BookingService/internal/infra/storage/availability"
	catalogRepo "github.com/nailsrdv/NRDV-BookingService/internal/infra/storage/catalog"
	"github.com/nailsrdv/NRDV-BookingService/pkg/types"
)

// UseCase use case для создания записи на услугу
type UseCase struct {
	catalogRepo      CatalogRepository
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	txManager        TransactionManager
	metrics          Metrics
	timeProvider     TimeProvider
	autoConfirm      bool
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	metrics Metrics,
	autoConfirm bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:      catalogRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		autoConfirm:      autoConfirm,
		logger:           logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка доступности слота и вставка выполняются в одной сериализуемой
// транзакции: из конкурирующих запросов на один слот выигрывает ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: provider=%d, service=%d, date=%s, time=%s, actor id=%d role=%s",
		req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime,
		req.Actor.ID, req.Actor.Role)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем идентичность клиента (аккаунт или гость)
	userID, err := validateIdentity(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: identity validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Запись в прошлое невозможна
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrPastDate
	}
	if isSameDay(req.Date, now) && req.StartTime.IsBefore(types.NewTimeString(now)) {
		uc.logger.Warn("CreateAppointment: start time %s already elapsed today", req.StartTime)
		return nil, ErrPastDate
	}

	// 5. Проверяем, что мастер оказывает услугу; фиксируем эффективные
	// длительность и цену на момент записи
	service, err := uc.catalogRepo.GetBookableService(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProviderServiceNotFound) {
			uc.logger.Warn("CreateAppointment: provider=%d does not offer service=%d",
				req.ProviderID, req.ServiceID)
			return nil, ErrServiceNotOffered
		}
		uc.logger.Error("CreateAppointment: failed to get bookable service: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookable service: %v", ErrInternal, err)
	}

	slotEnd, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateAppointment: slot [%s + %d min] crosses midnight", req.StartTime, service.DurationMinutes)
		return nil, ErrSlotClosed
	}

	status := domain.StatusPending
	if uc.autoConfirm {
		status = domain.StatusConfirmed
	}

	var result *domain.Appointment

	// Проверки доступности и вставка; выполняется в сериализуемой транзакции
	admit := func(txCtx context.Context) error {
		// 6.1. Слот должен целиком лежать в рабочем окне дня
		rule, err := uc.availabilityRepo.GetRuleForDay(txCtx, req.ProviderID, req.Date.Weekday())
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
				uc.logger.Warn("CreateAppointment: no rule for provider=%d on %s",
					req.ProviderID, req.Date.Weekday())
				return ErrSlotClosed
			}
			uc.logger.Error("CreateAppointment: failed to get rule: %v", err)
			return fmt.Errorf("%w: failed to get availability rule: %w", ErrInternal, err)
		}
		if !rule.Contains(req.StartTime, slotEnd) {
			uc.logger.Warn("CreateAppointment: slot [%s, %s) is outside working window", req.StartTime, slotEnd)
			return ErrSlotClosed
		}

		// 6.2. Слот не должен пересекаться с блокировками календаря
		blocked, err := uc.availabilityRepo.ListBlockedSlotsForDate(txCtx, req.ProviderID, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list blocked slots: %v", err)
			return fmt.Errorf("%w: failed to list blocked slots: %w", ErrInternal, err)
		}
		for _, b := range blocked {
			if b.Intersects(req.StartTime, slotEnd) {
				uc.logger.Warn("CreateAppointment: slot [%s, %s) intersects blocked slot id=%d",
					req.StartTime, slotEnd, b.ID)
				return ErrSlotClosed
			}
		}

		// 6.3. Читаем активные записи на дату с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetActiveByProviderAndDate(txCtx, req.ProviderID, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		// 6.4. Пересечение с активной записью — конфликт
		for _, appt := range appointments {
			if appt.Overlaps(req.StartTime, slotEnd) {
				uc.logger.Warn("CreateAppointment: slot [%s, %s) overlaps appointment id=%d",
					req.StartTime, slotEnd, appt.ID)
				uc.metrics.IncSlotConflicts()
				return ErrSlotTaken
			}
		}

		// 6.5. Создаем запись с денормализацией данных услуги
		appointment := &domain.Appointment{
			ProviderID:      req.ProviderID,
			UserID:          userID,
			ClientName:      req.ClientName,
			ClientPhone:     req.ClientPhone,
			ServiceID:       req.ServiceID,
			ServiceName:     service.Name,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Price:           service.Price,
			Status:          status,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	}

	// 6. Выполняем допуск в сериализуемой транзакции. Проигравшую
	// конкурентную транзакцию Postgres обрывает кодом serialization_failure:
	// повторяем допуск один раз, повторная проверка пересечений возвращает
	// честный ErrSlotTaken вместо внутренней ошибки
	err = uc.txManager.DoSerializable(ctx, admit)
	if isSerializationFailure(err) {
		uc.logger.Warn("CreateAppointment: admission aborted by serialization failure, retrying once")
		err = uc.txManager.DoSerializable(ctx, admit)
		if isSerializationFailure(err) {
			uc.metrics.IncSlotConflicts()
			return nil, ErrSlotTaken
		}
	}
	if err != nil {
		return nil, err
	}

	uc.metrics.IncAppointmentsCreated(string(result.Status))
	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, status=%s",
		result.ID, result.Status)

	return &Response{
		ID:              result.ID,
		ProviderID:      result.ProviderID,
		UserID:          result.UserID,
		ClientName:      result.ClientName,
		ClientPhone:     result.ClientPhone,
		ServiceID:       result.ServiceID,
		ServiceName:     result.ServiceName,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         slotEnd,
		DurationMinutes: result.DurationMinutes,
		Price:           result.Price,
		Status:          string(result.Status),
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
	}, nil
}

// isSerializationFailure распознает обрыв SERIALIZABLE-транзакции
// (serialization_failure, deadlock_detected)
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
