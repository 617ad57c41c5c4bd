package availability

import "errors"

var (
	// ErrInvalidValue возвращается при некорректном формате времени или дня недели
	ErrInvalidValue = errors.New("invalid availability value")

	// ErrInvalidRange возвращается, когда начало интервала не раньше конца
	ErrInvalidRange = errors.New("start time must be before end time")

	// ErrPastDate возвращается при попытке заблокировать прошедшую дату
	ErrPastDate = errors.New("date is in the past")

	// ErrForbidden возвращается, когда у пользователя нет прав на операцию
	ErrForbidden = errors.New("access denied")

	// ErrStoreUnavailable возвращается, когда хранилище недоступно
	ErrStoreUnavailable = errors.New("availability service: store unavailable")
)
