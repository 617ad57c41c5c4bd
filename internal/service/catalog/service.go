package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	catalogRepo "github.com/nailsrdv/NRDV-BookingService/internal/infra/storage/catalog"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/catalog/models"
)

// Service сервис каталога услуг и привязок мастеров
type Service struct {
	repo   CatalogRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo CatalogRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListServices возвращает все активные услуги каталога.
// Публичный метод, без побочных эффектов.
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.repo.ListActiveServices(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrStoreUnavailable, err)
	}

	return models.FromDomainServiceList(services), nil
}

// ListBookableServices возвращает услуги мастера с эффективными ценой и
// длительностью (переопределение, если задано, иначе базовые значения).
// Публичный метод, без побочных эффектов.
func (s *Service) ListBookableServices(ctx context.Context, providerID int64) (*models.BookableServiceListResponse, error) {
	services, err := s.repo.ListBookableServices(ctx, providerID)
	if err != nil {
		s.logger.Error("ListBookableServices: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListBookableServices - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("ListBookableServices: provider=%d offers %d services", providerID, len(services))
	return models.FromDomainBookableList(services), nil
}

// SetProviderService создает или обновляет привязку услуги к мастеру.
// Доступно только самому мастеру.
func (s *Service) SetProviderService(ctx context.Context, req *models.SetProviderServiceRequest) (*models.ProviderServiceResponse, error) {
	s.logger.Info("SetProviderService: provider=%d, service=%d, enabled=%t",
		req.ProviderID, req.ServiceID, req.IsEnabled)

	// Привязку меняет только сам мастер
	if !req.Actor.IsProvider() || req.Actor.ID != req.ProviderID {
		s.logger.Warn("SetProviderService: actor id=%d role=%s has no rights over provider=%d",
			req.Actor.ID, req.Actor.Role, req.ProviderID)
		return nil, ErrForbidden
	}

	// Переопределенная длительность ограничена рабочими рамками,
	// цена не может быть отрицательной
	if req.CustomDuration != nil &&
		(*req.CustomDuration < domain.MinDurationMinutes || *req.CustomDuration > domain.MaxDurationMinutes) {
		s.logger.Warn("SetProviderService: invalid custom duration %d", *req.CustomDuration)
		return nil, fmt.Errorf("%w: custom duration must be between %d and %d minutes",
			ErrInvalidValue, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if req.CustomPrice != nil && *req.CustomPrice < 0 {
		s.logger.Warn("SetProviderService: invalid custom price %f", *req.CustomPrice)
		return nil, fmt.Errorf("%w: custom price must not be negative", ErrInvalidValue)
	}

	// Услуга должна существовать в каталоге
	if _, err := s.repo.GetServiceByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("SetProviderService: service id=%d not found", req.ServiceID)
			return nil, ErrInvalidService
		}
		s.logger.Error("SetProviderService: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: SetProviderService - repository error: %v", ErrStoreUnavailable, err)
	}

	ps := &domain.ProviderService{
		ProviderID:     req.ProviderID,
		ServiceID:      req.ServiceID,
		CustomPrice:    req.CustomPrice,
		CustomDuration: req.CustomDuration,
		IsEnabled:      req.IsEnabled,
	}

	created, err := s.repo.UpsertProviderService(ctx, ps)
	if err != nil {
		s.logger.Error("SetProviderService: repository error: %v", err)
		return nil, fmt.Errorf("%w: SetProviderService - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("SetProviderService: upserted provider service id=%d", created.ID)
	return models.FromDomainProviderService(created), nil
}
