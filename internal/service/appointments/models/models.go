package models

import (
	"time"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
)

// Request модели

// TransitionRequest запрос на смену статуса записи
type TransitionRequest struct {
	AppointmentID int64                    `json:"appointmentId"`
	TargetStatus  domain.AppointmentStatus `json:"status"`
	Reason        *string                  `json:"reason,omitempty"`
	Actor         domain.Actor             `json:"-"`
}

// ListProviderAppointmentsRequest запрос списка записей мастера
type ListProviderAppointmentsRequest struct {
	ProviderID int64
	Period     domain.PeriodFilter
	Status     *domain.AppointmentStatus
	Actor      domain.Actor
}

// ListUserAppointmentsRequest запрос списка записей клиента
type ListUserAppointmentsRequest struct {
	UserID int64
	Period domain.PeriodFilter
	Actor  domain.Actor
}

// Response модели

// AppointmentResponse запись на услугу
type AppointmentResponse struct {
	ID                 int64      `json:"id"`
	ProviderID         int64      `json:"providerId"`
	UserID             *int64     `json:"userId,omitempty"`
	ClientName         *string    `json:"clientName,omitempty"`
	ClientPhone        *string    `json:"clientPhone,omitempty"`
	ServiceID          int64      `json:"serviceId"`
	ServiceName        string     `json:"serviceName"`
	Date               string     `json:"date"`
	StartTime          string     `json:"startTime"`
	EndTime            string     `json:"endTime"`
	DurationMinutes    int        `json:"durationMinutes"`
	Price              float64    `json:"price"`
	Status             string     `json:"status"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain запись в DTO
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                 appt.ID,
		ProviderID:         appt.ProviderID,
		UserID:             appt.UserID,
		ClientName:         appt.ClientName,
		ClientPhone:        appt.ClientPhone,
		ServiceID:          appt.ServiceID,
		ServiceName:        appt.ServiceName,
		Date:               appt.Date.Format(domain.DateFormat),
		StartTime:          appt.StartTime.String(),
		DurationMinutes:    appt.DurationMinutes,
		Price:              appt.Price,
		Status:             string(appt.Status),
		Notes:              appt.Notes,
		CancellationReason: appt.CancellationReason,
		CancelledAt:        appt.CancelledAt,
		CreatedAt:          appt.CreatedAt,
	}

	if end, err := appt.End(); err == nil {
		resp.EndTime = end.String()
	}

	return resp
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
		Total:        len(appointments),
	}
	for i, appt := range appointments {
		resp.Appointments[i] = *FromDomainAppointment(appt)
	}
	return resp
}
