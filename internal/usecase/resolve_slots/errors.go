package resolve_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resolve_slots: invalid input data")

	// ErrServiceNotOffered возвращается, когда мастер не оказывает услугу
	ErrServiceNotOffered = errors.New("resolve_slots: provider does not offer this service")

	// ErrPastDate возвращается при запросе слотов на прошедшую дату
	ErrPastDate = errors.New("resolve_slots: date is in the past")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_slots: internal error")
)
