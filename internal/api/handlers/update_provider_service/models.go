package update_provider_service

import (
	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/catalog/models"
)

// UpdateProviderServiceRequest HTTP request model
type UpdateProviderServiceRequest struct {
	IsEnabled      bool     `json:"isEnabled"`
	CustomPrice    *float64 `json:"customPrice,omitempty"`
	CustomDuration *int     `json:"customDuration,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateProviderServiceRequest) ToServiceRequest(providerID, serviceID int64, actor domain.Actor) *models.SetProviderServiceRequest {
	return &models.SetProviderServiceRequest{
		ProviderID:     providerID,
		ServiceID:      serviceID,
		IsEnabled:      r.IsEnabled,
		CustomPrice:    r.CustomPrice,
		CustomDuration: r.CustomDuration,
		Actor:          actor,
	}
}
