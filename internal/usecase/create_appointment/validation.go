package create_appointment

import (
	"fmt"
	"time"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, req.StartTime)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateIdentity проверяет права актора и возвращает идентичность клиента.
// Клиент записывается только от своего имени; мастер создает гостевую запись
// в собственном календаре, указав имя и телефон гостя.
func validateIdentity(req *Request) (userID *int64, err error) {
	if req.Actor.IsClient() {
		if req.ClientName != nil || req.ClientPhone != nil {
			return nil, fmt.Errorf("%w: account clients cannot set guest identity", ErrInvalidInput)
		}
		id := req.Actor.ID
		return &id, nil
	}

	// Гостевая запись от мастера
	if req.Actor.ID != req.ProviderID {
		return nil, ErrForbidden
	}
	if req.ClientName == nil || *req.ClientName == "" || req.ClientPhone == nil || *req.ClientPhone == "" {
		return nil, fmt.Errorf("%w: guest booking requires client name and phone", ErrInvalidInput)
	}
	if len(*req.ClientName) > domain.MaxClientNameLength {
		return nil, fmt.Errorf("%w: client name exceeds %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}
	if len(*req.ClientPhone) > domain.MaxClientPhoneLength {
		return nil, fmt.Errorf("%w: client phone exceeds %d characters", ErrInvalidInput, domain.MaxClientPhoneLength)
	}
	return nil, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
