package models

import (
	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
)

// Request модели

// SetProviderServiceRequest запрос на привязку/обновление услуги мастера
type SetProviderServiceRequest struct {
	ProviderID     int64        `json:"providerId"`
	ServiceID      int64        `json:"serviceId"`
	IsEnabled      bool         `json:"isEnabled"`
	CustomPrice    *float64     `json:"customPrice,omitempty"`
	CustomDuration *int         `json:"customDuration,omitempty"`
	Actor          domain.Actor `json:"-"`
}

// Response модели

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Icon            string  `json:"icon"`
	Category        string  `json:"category"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// BookableServiceResponse услуга мастера с эффективными ценой и длительностью
type BookableServiceResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Icon            string  `json:"icon"`
	Category        string  `json:"category"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ServiceListResponse список услуг каталога
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// BookableServiceListResponse список услуг мастера
type BookableServiceListResponse struct {
	Services []BookableServiceResponse `json:"services"`
}

// ProviderServiceResponse привязка услуги к мастеру
type ProviderServiceResponse struct {
	ID             int64    `json:"id"`
	ProviderID     int64    `json:"providerId"`
	ServiceID      int64    `json:"serviceId"`
	IsEnabled      bool     `json:"isEnabled"`
	CustomPrice    *float64 `json:"customPrice,omitempty"`
	CustomDuration *int     `json:"customDuration,omitempty"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель услуги в DTO
func FromDomainService(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Code:            s.Code,
		Name:            s.Name,
		Description:     s.Description,
		Icon:            s.Icon,
		Category:        s.Category,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}

// FromDomainServiceList конвертирует список услуг каталога
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, len(services))}
	for i, s := range services {
		resp.Services[i] = FromDomainService(s)
	}
	return resp
}

// FromDomainBookable конвертирует услугу мастера в DTO
func FromDomainBookable(s *domain.BookableService) BookableServiceResponse {
	return BookableServiceResponse{
		ServiceID:       s.ServiceID,
		Code:            s.Code,
		Name:            s.Name,
		Description:     s.Description,
		Icon:            s.Icon,
		Category:        s.Category,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}

// FromDomainBookableList конвертирует список услуг мастера
func FromDomainBookableList(services []*domain.BookableService) *BookableServiceListResponse {
	resp := &BookableServiceListResponse{Services: make([]BookableServiceResponse, len(services))}
	for i, s := range services {
		resp.Services[i] = FromDomainBookable(s)
	}
	return resp
}

// FromDomainProviderService конвертирует привязку услуги в DTO
func FromDomainProviderService(ps *domain.ProviderService) *ProviderServiceResponse {
	return &ProviderServiceResponse{
		ID:             ps.ID,
		ProviderID:     ps.ProviderID,
		ServiceID:      ps.ServiceID,
		IsEnabled:      ps.IsEnabled,
		CustomPrice:    ps.CustomPrice,
		CustomDuration: ps.CustomDuration,
	}
}
