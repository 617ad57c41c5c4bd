package catalog

import "errors"

var (
	// ErrInvalidService возвращается, когда услуги нет в каталоге
	ErrInvalidService = errors.New("service does not exist")

	// ErrInvalidValue возвращается при недопустимых переопределениях цены или длительности
	ErrInvalidValue = errors.New("invalid custom price or duration")

	// ErrForbidden возвращается, когда у пользователя нет прав на операцию
	ErrForbidden = errors.New("access denied")

	// ErrStoreUnavailable возвращается, когда хранилище недоступно
	ErrStoreUnavailable = errors.New("catalog service: store unavailable")
)
