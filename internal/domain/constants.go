package domain

// Default configuration values
const (
	DefaultGranularityMinutes = 30
)

// Business validation constants
const (
	MinDurationMinutes      = 1
	MaxDurationMinutes      = 480 // 8 hours
	MinGranularityMinutes   = 5
	MaxGranularityMinutes   = 240
	MaxNotesLength          = 500
	MaxReasonLength         = 200
	MaxClientNameLength     = 100
	MaxClientPhoneLength    = 20
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, занимающих время в календаре.
// Используется при проверке пересечений слотов.
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses список финальных статусов: такие записи
// не блокируют календарь и не меняют статус повторно
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
