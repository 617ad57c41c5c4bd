package domain

import "time"

// Service represents a canonical service definition from the catalog
type Service struct {
	ID              int64
	Code            string
	Name            string
	Description     *string
	Icon            string
	Category        string
	DurationMinutes int
	Price           float64
	IsActive        bool
	CreatedAt       time.Time
}

// ProviderService links a provider to a catalog service with optional overrides
type ProviderService struct {
	ID              int64
	ProviderID      int64
	ServiceID       int64
	CustomPrice     *float64
	CustomDuration  *int
	IsEnabled       bool
	CreatedAt       time.Time
}

// BookableService is a service as offered by a concrete provider:
// duration and price are the effective values (override if present, else base)
type BookableService struct {
	ServiceID       int64
	Code            string
	Name            string
	Description     *string
	Icon            string
	Category        string
	DurationMinutes int
	Price           float64
}

// EffectiveDuration returns the override duration if set, else the base duration
func (ps *ProviderService) EffectiveDuration(s *Service) int {
	if ps.CustomDuration != nil {
		return *ps.CustomDuration
	}
	return s.DurationMinutes
}

// EffectivePrice returns the override price if set, else the base price
func (ps *ProviderService) EffectivePrice(s *Service) float64 {
	if ps.CustomPrice != nil {
		return *ps.CustomPrice
	}
	return s.Price
}
