package get_available_slots

import (
	"strconv"
	"time"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	resolveSlots "github.com/nailsrdv/NRDV-BookingService/internal/usecase/resolve_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProviderID         int64          `json:"providerId"`
	ServiceID          int64          `json:"serviceId"`
	Date               string         `json:"date"`
	DurationMinutes    int            `json:"durationMinutes"`
	GranularityMinutes int            `json:"granularityMinutes"`
	Slots              []SlotResponse `json:"slots"`
}

// SlotResponse доступный слот
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ToUseCaseRequest собирает модель use case из параметров запроса
func ToUseCaseRequest(providerID int64, serviceIDStr, dateStr, granularityStr string) (*resolveSlots.Request, error) {
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &resolveSlots.Request{
		ProviderID: providerID,
		ServiceID:  serviceID,
		Date:       date,
	}

	if granularityStr != "" {
		granularity, err := strconv.Atoi(granularityStr)
		if err != nil {
			return nil, err
		}
		req.GranularityMinutes = &granularity
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveSlots.Response) *AvailableSlotsResponse {
	result := &AvailableSlotsResponse{
		ProviderID:         resp.ProviderID,
		ServiceID:          resp.ServiceID,
		Date:               resp.Date.Format(domain.DateFormat),
		DurationMinutes:    resp.DurationMinutes,
		GranularityMinutes: resp.GranularityMinutes,
		Slots:              make([]SlotResponse, len(resp.Slots)),
	}
	for i, slot := range resp.Slots {
		result.Slots[i] = SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}
	return result
}
