package set_weekly_rule

import (
	"context"

	"github.com/nailsrdv/NRDV-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	SetWeeklyRule(ctx context.Context, req *models.SetWeeklyRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
