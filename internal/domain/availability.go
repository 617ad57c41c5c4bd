package domain

import (
	"time"

	"github.com/nailsrdv/NRDV-BookingService/pkg/types"
)

// AvailabilityRule is a provider's recurring weekly open/closed window.
// At most one rule exists per (provider, day of week).
type AvailabilityRule struct {
	ID          int64
	ProviderID  int64
	DayOfWeek   time.Weekday
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Contains reports whether [start, end) lies entirely within the rule's window
func (r *AvailabilityRule) Contains(start, end types.TimeString) bool {
	if !r.IsAvailable {
		return false
	}
	return !start.IsBefore(r.StartTime) && !end.IsAfter(r.EndTime)
}

// BlockedSlot is a one-off exception (vacation, break) overriding the weekly
// rule for a specific date. A full-day block closes the whole date.
type BlockedSlot struct {
	ID         int64
	ProviderID int64
	Date       time.Time
	StartTime  *types.TimeString
	EndTime    *types.TimeString
	IsFullDay  bool
	Reason     *string
	CreatedAt  time.Time
}

// Intersects reports whether the block intersects the half-open interval
// [start, end). A full-day block intersects everything on its date.
// Boundary contact (block end == interval start) is not an intersection.
func (b *BlockedSlot) Intersects(start, end types.TimeString) bool {
	if b.IsFullDay {
		return true
	}
	if b.StartTime == nil || b.EndTime == nil {
		return false
	}
	return b.StartTime.IsBefore(end) && b.EndTime.IsAfter(start)
}
