package models

import (
	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	"github.com/nailsrdv/NRDV-BookingService/pkg/types"
)

// Request модели

// SetWeeklyRuleRequest запрос на замену правила дня недели
type SetWeeklyRuleRequest struct {
	ProviderID  int64        `json:"providerId"`
	DayOfWeek   int          `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime   string       `json:"startTime"`
	EndTime     string       `json:"endTime"`
	IsAvailable bool         `json:"isAvailable"`
	Actor       domain.Actor `json:"-"`
}

// AddBlockedSlotRequest запрос на блокировку календаря
type AddBlockedSlotRequest struct {
	ProviderID int64        `json:"providerId"`
	Date       string       `json:"date"` // YYYY-MM-DD
	StartTime  *string      `json:"startTime,omitempty"`
	EndTime    *string      `json:"endTime,omitempty"`
	IsFullDay  bool         `json:"isFullDay"`
	Reason     *string      `json:"reason,omitempty"`
	Actor      domain.Actor `json:"-"`
}

// RemoveBlockedSlotRequest запрос на снятие блокировки
type RemoveBlockedSlotRequest struct {
	ProviderID int64        `json:"providerId"`
	SlotID     int64        `json:"slotId"`
	Actor      domain.Actor `json:"-"`
}

// Response модели

// RuleResponse правило дня недели
type RuleResponse struct {
	ID          int64  `json:"id"`
	ProviderID  int64  `json:"providerId"`
	DayOfWeek   int    `json:"dayOfWeek"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	IsAvailable bool   `json:"isAvailable"`
}

// BlockedSlotResponse блокировка календаря
type BlockedSlotResponse struct {
	ID         int64   `json:"id"`
	ProviderID int64   `json:"providerId"`
	Date       string  `json:"date"`
	StartTime  *string `json:"startTime,omitempty"`
	EndTime    *string `json:"endTime,omitempty"`
	IsFullDay  bool    `json:"isFullDay"`
	Reason     *string `json:"reason,omitempty"`
}

// AvailabilityResponse недельное расписание мастера и предстоящие блокировки
type AvailabilityResponse struct {
	ProviderID   int64                 `json:"providerId"`
	Rules        []RuleResponse        `json:"rules"`
	BlockedSlots []BlockedSlotResponse `json:"blockedSlots"`
}

// Методы конвертации

// FromDomainRule конвертирует domain правило в DTO
func FromDomainRule(rule *domain.AvailabilityRule) *RuleResponse {
	return &RuleResponse{
		ID:          rule.ID,
		ProviderID:  rule.ProviderID,
		DayOfWeek:   int(rule.DayOfWeek),
		StartTime:   rule.StartTime.String(),
		EndTime:     rule.EndTime.String(),
		IsAvailable: rule.IsAvailable,
	}
}

// FromDomainBlockedSlot конвертирует domain блокировку в DTO
func FromDomainBlockedSlot(slot *domain.BlockedSlot) *BlockedSlotResponse {
	return &BlockedSlotResponse{
		ID:         slot.ID,
		ProviderID: slot.ProviderID,
		Date:       slot.Date.Format(domain.DateFormat),
		StartTime:  timeStringPtr(slot.StartTime),
		EndTime:    timeStringPtr(slot.EndTime),
		IsFullDay:  slot.IsFullDay,
		Reason:     slot.Reason,
	}
}

// FromDomainAvailability собирает расписание мастера в один ответ
func FromDomainAvailability(providerID int64, rules []*domain.AvailabilityRule, slots []*domain.BlockedSlot) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		ProviderID:   providerID,
		Rules:        make([]RuleResponse, len(rules)),
		BlockedSlots: make([]BlockedSlotResponse, len(slots)),
	}
	for i, rule := range rules {
		resp.Rules[i] = *FromDomainRule(rule)
	}
	for i, slot := range slots {
		resp.BlockedSlots[i] = *FromDomainBlockedSlot(slot)
	}
	return resp
}

func timeStringPtr(t *types.TimeString) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
