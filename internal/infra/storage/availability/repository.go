package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	"github.com/nailsrdv/NRDV-BookingService/pkg/psqlbuilder"
	"github.com/nailsrdv/NRDV-BookingService/pkg/txmanager"
)

// Repository репозиторий недельного расписания и блокировок календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertRule заменяет правило для дня недели мастера.
// На пару (provider_id, day_of_week) существует не больше одного правила.
func (r *Repository) UpsertRule(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns(
			"provider_id",
			"day_of_week",
			"start_time",
			"end_time",
			"is_available",
		).
		Values(
			rule.ProviderID,
			int(rule.DayOfWeek),
			rule.StartTime,
			rule.EndTime,
			rule.IsAvailable,
		).
		Suffix(`ON CONFLICT (provider_id, day_of_week) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			is_available = EXCLUDED.is_available,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRule - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRule - execute upsert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time
	return rule, nil
}

// GetRuleForDay получает правило мастера для дня недели
func (r *Repository) GetRuleForDay(ctx context.Context, providerID int64, day time.Weekday) (*domain.AvailabilityRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := ruleSelect().
		Where(squirrel.Eq{"provider_id": providerID, "day_of_week": int(day)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRuleForDay - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRuleForDay - scan rule: %w", ErrScanRow, err)
	}

	return rule, nil
}

// ListRules возвращает все недельные правила мастера, отсортированные по дню
func (r *Repository) ListRules(ctx context.Context, providerID int64) ([]*domain.AvailabilityRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := ruleSelect().
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRules - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// CreateBlockedSlot создает блокировку календаря
func (r *Repository) CreateBlockedSlot(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_slots").
		Columns(
			"provider_id",
			"date",
			"start_time",
			"end_time",
			"is_full_day",
			"reason",
		).
		Values(
			slot.ProviderID,
			slot.Date,
			slot.StartTime,
			slot.EndTime,
			slot.IsFullDay,
			slot.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedSlot - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedSlot - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	return slot, nil
}

// DeleteBlockedSlot удаляет блокировку мастера по ID.
// Удаление ограничено provider_id: чужую блокировку снять нельзя.
// Идемпотентен: отсутствие записи не считается ошибкой.
func (r *Repository) DeleteBlockedSlot(ctx context.Context, providerID, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{"id": id, "provider_id": providerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedSlot - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteBlockedSlot - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// ListBlockedSlotsForDate возвращает блокировки мастера на конкретную дату
func (r *Repository) ListBlockedSlotsForDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.BlockedSlot, error) {
	return r.listBlockedSlots(ctx, squirrel.Eq{"provider_id": providerID, "date": date})
}

// ListBlockedSlotsFrom возвращает блокировки мастера начиная с даты
// (для списка предстоящих исключений в кабинете мастера)
func (r *Repository) ListBlockedSlotsFrom(ctx context.Context, providerID int64, from time.Time) ([]*domain.BlockedSlot, error) {
	return r.listBlockedSlots(ctx, squirrel.And{
		squirrel.Eq{"provider_id": providerID},
		squirrel.GtOrEq{"date": from},
	})
}

func (r *Repository) listBlockedSlots(ctx context.Context, where squirrel.Sqlizer) ([]*domain.BlockedSlot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"date",
		"start_time",
		"end_time",
		"is_full_day",
		"reason",
		"created_at",
	).
		From("blocked_slots").
		Where(where).
		OrderBy("date ASC, start_time ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listBlockedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listBlockedSlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.BlockedSlot, 0)
	for rows.Next() {
		var slot domain.BlockedSlot
		var createdAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.ProviderID,
			&slot.Date,
			&slot.StartTime,
			&slot.EndTime,
			&slot.IsFullDay,
			&slot.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: listBlockedSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listBlockedSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// ruleSelect общий SELECT для недельных правил
func ruleSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"provider_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_available",
		"created_at",
		"updated_at",
	).From("availability_rules")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.AvailabilityRule, error) {
	var rule domain.AvailabilityRule
	var day int
	var startTime, endTime sql.Null[string]
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.ProviderID,
		&day,
		&startTime,
		&endTime,
		&rule.IsAvailable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.DayOfWeek = time.Weekday(day)
	if startTime.Valid {
		if err := rule.StartTime.Scan(startTime.V); err != nil {
			return nil, err
		}
	}
	if endTime.Valid {
		if err := rule.EndTime.Scan(endTime.V); err != nil {
			return nil, err
		}
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}
