package add_blocked_slot

import (
	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/availability/models"
)

// AddBlockedSlotRequest HTTP request model
type AddBlockedSlotRequest struct {
	Date      string  `json:"date"` // "2025-10-15"
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	IsFullDay bool    `json:"isFullDay"`
	Reason    *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddBlockedSlotRequest) ToServiceRequest(providerID int64, actor domain.Actor) *models.AddBlockedSlotRequest {
	return &models.AddBlockedSlotRequest{
		ProviderID: providerID,
		Date:       r.Date,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		IsFullDay:  r.IsFullDay,
		Reason:     r.Reason,
		Actor:      actor,
	}
}
