package set_weekly_rule

import (
	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/availability/models"
)

// SetWeeklyRuleRequest HTTP request model
type SetWeeklyRuleRequest struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SetWeeklyRuleRequest) ToServiceRequest(providerID int64, dayOfWeek int, actor domain.Actor) *models.SetWeeklyRuleRequest {
	return &models.SetWeeklyRuleRequest{
		ProviderID:  providerID,
		DayOfWeek:   dayOfWeek,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsAvailable: r.IsAvailable,
		Actor:       actor,
	}
}
