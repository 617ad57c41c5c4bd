package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrServiceNotOffered возвращается, когда мастер не оказывает услугу
	ErrServiceNotOffered = errors.New("create_appointment: provider does not offer this service")

	// ErrPastDate возвращается при попытке записи на прошедшее время
	ErrPastDate = errors.New("create_appointment: date is in the past")

	// ErrSlotClosed возвращается, когда слот вне рабочего окна или заблокирован
	ErrSlotClosed = errors.New("create_appointment: slot is outside working hours or blocked")

	// ErrSlotTaken возвращается, когда слот пересекается с активной записью
	ErrSlotTaken = errors.New("create_appointment: slot is already taken")

	// ErrForbidden возвращается, когда у актора нет прав на создание записи
	ErrForbidden = errors.New("create_appointment: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
