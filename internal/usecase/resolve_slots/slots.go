package resolve_slots

import (
	"iter"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	"github.com/nailsrdv/NRDV-BookingService/pkg/types"
)

// candidateStarts возвращает последовательность кандидатов времени начала слота.
// Кандидаты идут от начала окна с шагом granularity; кандидат годится, только
// если интервал [start, start+duration) целиком помещается в окно правила.
// Последовательность ленивая и перезапускаемая: каждый range проходит её заново.
func candidateStarts(rule *domain.AvailabilityRule, durationMinutes, granularityMinutes int) iter.Seq[types.TimeString] {
	return func(yield func(types.TimeString) bool) {
		current := rule.StartTime

		for current.IsBefore(rule.EndTime) {
			slotEnd, err := current.AddMinutes(durationMinutes)
			if err != nil {
				return
			}
			if slotEnd.IsAfter(rule.EndTime) {
				return
			}
			if !yield(current) {
				return
			}

			next, err := current.AddMinutes(granularityMinutes)
			if err != nil {
				return
			}
			current = next
		}
	}
}

// resolveSlots вычисляет доступные слоты: кандидаты из окна правила минус
// блокировки календаря минус активные записи.
// Граничные касания не считаются конфликтом: запись, заканчивающаяся в 12:00,
// не мешает слоту, начинающемуся в 12:00.
func resolveSlots(
	rule *domain.AvailabilityRule,
	durationMinutes int,
	granularityMinutes int,
	blocked []*domain.BlockedSlot,
	appointments []*domain.Appointment,
	minStart *types.TimeString,
) []Slot {
	slots := make([]Slot, 0)

	for start := range candidateStarts(rule, durationMinutes, granularityMinutes) {
		// Для сегодняшней даты прошедшие слоты не предлагаются
		if minStart != nil && start.IsBefore(*minStart) {
			continue
		}

		end, err := start.AddMinutes(durationMinutes)
		if err != nil {
			continue
		}

		if slotBlocked(start, end, blocked) || slotTaken(start, end, appointments) {
			continue
		}

		slots = append(slots, Slot{StartTime: start, EndTime: end})
	}

	return slots
}

// slotBlocked проверяет пересечение интервала [start, end) с блокировками
func slotBlocked(start, end types.TimeString, blocked []*domain.BlockedSlot) bool {
	for _, b := range blocked {
		if b.Intersects(start, end) {
			return true
		}
	}
	return false
}

// slotTaken проверяет пересечение интервала [start, end) с активными записями
func slotTaken(start, end types.TimeString, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if appt.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// hasFullDayBlock проверяет наличие блокировки на весь день
func hasFullDayBlock(blocked []*domain.BlockedSlot) bool {
	for _, b := range blocked {
		if b.IsFullDay {
			return true
		}
	}
	return false
}
