package resolve_slots

import (
	"time"

	"github.com/nailsrdv/NRDV-BookingService/pkg/types"
)

// Request модель запроса на расчет доступных слотов
type Request struct {
	ProviderID         int64     // ID мастера
	ServiceID          int64     // ID услуги из каталога
	Date               time.Time // Дата, на которую запрашиваются слоты (без времени)
	GranularityMinutes *int      // Шаг слотов; nil — использовать шаг по умолчанию
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ProviderID         int64     // ID мастера
	ServiceID          int64     // ID услуги
	Date               time.Time // Дата, на которую рассчитаны слоты
	DurationMinutes    int       // Эффективная длительность услуги у мастера
	GranularityMinutes int       // Использованный шаг слотов
	Slots              []Slot    // Доступные слоты в хронологическом порядке
}

// Slot модель доступного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота
	EndTime   types.TimeString // Время конца слота (start + duration)
}
