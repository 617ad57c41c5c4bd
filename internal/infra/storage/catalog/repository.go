package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	"github.com/nailsrdv/NRDV-BookingService/pkg/psqlbuilder"
	"github.com/nailsrdv/NRDV-BookingService/pkg/txmanager"
)

// Repository репозиторий каталога услуг и привязок мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActiveServices возвращает все активные услуги каталога
func (r *Repository) ListActiveServices(ctx context.Context) ([]*domain.Service, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"code",
		"name",
		"description",
		"icon",
		"category",
		"duration_minutes",
		"price",
		"is_active",
		"created_at",
	).
		From("services").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("category ASC, name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		var createdAt sql.NullTime

		err := rows.Scan(
			&svc.ID,
			&svc.Code,
			&svc.Name,
			&svc.Description,
			&svc.Icon,
			&svc.Category,
			&svc.DurationMinutes,
			&svc.Price,
			&svc.IsActive,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveServices - scan row: %v", ErrScanRow, err)
		}

		svc.CreatedAt = createdAt.Time
		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetServiceByID получает услугу каталога по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"code",
		"name",
		"description",
		"icon",
		"category",
		"duration_minutes",
		"price",
		"is_active",
		"created_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.Code,
		&svc.Name,
		&svc.Description,
		&svc.Icon,
		&svc.Category,
		&svc.DurationMinutes,
		&svc.Price,
		&svc.IsActive,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	svc.CreatedAt = createdAt.Time
	return &svc, nil
}

// UpsertProviderService создает или обновляет привязку услуги к мастеру.
// Уникальность пары (provider_id, service_id) обеспечивает constraint в БД.
func (r *Repository) UpsertProviderService(ctx context.Context, ps *domain.ProviderService) (*domain.ProviderService, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("provider_services").
		Columns(
			"provider_id",
			"service_id",
			"custom_price",
			"custom_duration",
			"is_enabled",
		).
		Values(
			ps.ProviderID,
			ps.ServiceID,
			ps.CustomPrice,
			ps.CustomDuration,
			ps.IsEnabled,
		).
		Suffix(`ON CONFLICT (provider_id, service_id) DO UPDATE SET
			custom_price = EXCLUDED.custom_price,
			custom_duration = EXCLUDED.custom_duration,
			is_enabled = EXCLUDED.is_enabled
			RETURNING id, created_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertProviderService - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&ps.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertProviderService - execute upsert: %v", ErrExecQuery, err)
	}

	ps.CreatedAt = createdAt.Time
	return ps, nil
}

// ListBookableServices возвращает услуги мастера с эффективными ценой и
// длительностью (переопределение, если задано, иначе базовые значения)
func (r *Repository) ListBookableServices(ctx context.Context, providerID int64) ([]*domain.BookableService, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := bookableSelect().
		Where(squirrel.Eq{"ps.provider_id": providerID}).
		OrderBy("s.category ASC, s.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBookableServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookableServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.BookableService, 0)
	for rows.Next() {
		var svc domain.BookableService
		err := rows.Scan(
			&svc.ServiceID,
			&svc.Code,
			&svc.Name,
			&svc.Description,
			&svc.Icon,
			&svc.Category,
			&svc.DurationMinutes,
			&svc.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBookableServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookableServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetBookableService возвращает одну услугу мастера с эффективными значениями.
// Возвращает ErrProviderServiceNotFound, если услуга не привязана, выключена
// или снята с каталога.
func (r *Repository) GetBookableService(ctx context.Context, providerID, serviceID int64) (*domain.BookableService, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := bookableSelect().
		Where(squirrel.Eq{"ps.provider_id": providerID, "s.id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBookableService - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.BookableService
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ServiceID,
		&svc.Code,
		&svc.Name,
		&svc.Description,
		&svc.Icon,
		&svc.Category,
		&svc.DurationMinutes,
		&svc.Price,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProviderServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookableService - scan row: %v", ErrScanRow, err)
	}

	return &svc, nil
}

// bookableSelect общий SELECT для бронируемых услуг мастера
func bookableSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"s.id",
		"s.code",
		"s.name",
		"s.description",
		"s.icon",
		"s.category",
		"COALESCE(ps.custom_duration, s.duration_minutes) AS duration_minutes",
		"COALESCE(ps.custom_price, s.price) AS price",
	).
		From("provider_services ps").
		Join("services s ON s.id = ps.service_id").
		Where(squirrel.Eq{"ps.is_enabled": true, "s.is_active": true})
}
