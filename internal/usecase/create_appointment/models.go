package create_appointment

import (
	"time"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	"github.com/nailsrdv/NRDV-BookingService/pkg/types"
)

// Request модель запроса на создание записи.
// Клиент с аккаунтом записывается от своего имени; мастер может создать
// гостевую запись для клиента без аккаунта, указав имя и телефон.
type Request struct {
	ProviderID  int64            // ID мастера
	ServiceID   int64            // ID услуги из каталога
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Время начала слота
	Notes       *string          // Пожелания клиента
	ClientName  *string          // Имя гостя (только для гостевой записи)
	ClientPhone *string          // Телефон гостя (только для гостевой записи)
	Actor       domain.Actor     // Аутентифицированный инициатор запроса
}

// Response модель ответа с созданной записью
type Response struct {
	ID                 int64
	ProviderID         int64
	UserID             *int64
	ClientName         *string
	ClientPhone        *string
	ServiceID          int64
	ServiceName        string
	Date               time.Time
	StartTime          types.TimeString
	EndTime            types.TimeString
	DurationMinutes    int
	Price              float64
	Status             string
	Notes              *string
	CreatedAt          time.Time
}
