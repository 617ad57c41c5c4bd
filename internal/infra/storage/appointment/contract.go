package appointment

import "github.com/nailsrdv/NRDV-BookingService/pkg/txmanager"

// Переиспользуем интерфейсы txmanager для работы с БД
type DBExecutor = txmanager.DBExecutor
