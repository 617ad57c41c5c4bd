package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidStatus возвращается при неизвестном целевом статусе
	ErrInvalidStatus = errors.New("unknown appointment status")

	// ErrInvalidTransition возвращается, когда жизненный цикл запрещает переход
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrInvalidValue возвращается при некорректных параметрах запроса
	ErrInvalidValue = errors.New("invalid appointment request value")

	// ErrForbidden возвращается, когда у пользователя нет прав на операцию
	ErrForbidden = errors.New("access denied")

	// ErrStoreUnavailable возвращается, когда хранилище недоступно
	ErrStoreUnavailable = errors.New("appointments service: store unavailable")
)
