package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	catalogRepo "github.com/nailsrdv/NRDV-BookingService/internal/infra/storage/catalog"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/catalog/models"
	"github.com/nailsrdv/NRDV-BookingService/pkg/ptr"
)

type fakeRepo struct {
	listActiveServicesFn    func(ctx context.Context) ([]*domain.Service, error)
	getServiceByIDFn        func(ctx context.Context, id int64) (*domain.Service, error)
	upsertProviderServiceFn func(ctx context.Context, ps *domain.ProviderService) (*domain.ProviderService, error)
	listBookableServicesFn  func(ctx context.Context, providerID int64) ([]*domain.BookableService, error)
}

func (f *fakeRepo) ListActiveServices(ctx context.Context) ([]*domain.Service, error) {
	return f.listActiveServicesFn(ctx)
}

func (f *fakeRepo) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	return f.getServiceByIDFn(ctx, id)
}

func (f *fakeRepo) UpsertProviderService(ctx context.Context, ps *domain.ProviderService) (*domain.ProviderService, error) {
	return f.upsertProviderServiceFn(ctx, ps)
}

func (f *fakeRepo) ListBookableServices(ctx context.Context, providerID int64) ([]*domain.BookableService, error) {
	return f.listBookableServicesFn(ctx, providerID)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestListServices(t *testing.T) {
	repo := &fakeRepo{
		listActiveServicesFn: func(ctx context.Context) ([]*domain.Service, error) {
			return []*domain.Service{
				{ID: 1, Code: "manicure_gel", Name: "Manucure gel", DurationMinutes: 60, Price: 45},
				{ID: 2, Code: "nail_art", Name: "Nail art", DurationMinutes: 90, Price: 70},
			}, nil
		},
	}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Services, 2)
	assert.Equal(t, "manicure_gel", resp.Services[0].Code)
	assert.Equal(t, float64(70), resp.Services[1].Price)
}

func TestListServices_StoreUnavailable(t *testing.T) {
	repo := &fakeRepo{
		listActiveServicesFn: func(ctx context.Context) ([]*domain.Service, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewService(repo, nopLogger{})

	_, err := svc.ListServices(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestListBookableServices(t *testing.T) {
	repo := &fakeRepo{
		listBookableServicesFn: func(ctx context.Context, providerID int64) ([]*domain.BookableService, error) {
			assert.Equal(t, int64(7), providerID)
			return []*domain.BookableService{
				{ServiceID: 1, Code: "manicure_gel", DurationMinutes: 45, Price: 50},
			}, nil
		},
	}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.ListBookableServices(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, 45, resp.Services[0].DurationMinutes)
	assert.Equal(t, float64(50), resp.Services[0].Price)
}

func TestSetProviderService(t *testing.T) {
	repo := &fakeRepo{
		getServiceByIDFn: func(ctx context.Context, id int64) (*domain.Service, error) {
			return &domain.Service{ID: id, DurationMinutes: 60, Price: 45}, nil
		},
		upsertProviderServiceFn: func(ctx context.Context, ps *domain.ProviderService) (*domain.ProviderService, error) {
			ps.ID = 11
			return ps, nil
		},
	}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.SetProviderService(context.Background(), &models.SetProviderServiceRequest{
		ProviderID:     7,
		ServiceID:      1,
		IsEnabled:      true,
		CustomPrice:    ptr.Ptr(55.0),
		CustomDuration: ptr.Ptr(75),
		Actor:          domain.Actor{ID: 7, Role: domain.RoleProvider},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, 55.0, *resp.CustomPrice)
	assert.Equal(t, 75, *resp.CustomDuration)
}

func TestSetProviderService_Forbidden(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	tests := []struct {
		name  string
		actor domain.Actor
	}{
		{"client cannot manage provider services", domain.Actor{ID: 7, Role: domain.RoleClient}},
		{"provider cannot manage another provider", domain.Actor{ID: 8, Role: domain.RoleProvider}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetProviderService(context.Background(), &models.SetProviderServiceRequest{
				ProviderID: 7,
				ServiceID:  1,
				IsEnabled:  true,
				Actor:      tt.actor,
			})
			assert.ErrorIs(t, err, ErrForbidden)
		})
	}
}

func TestSetProviderService_InvalidOverrides(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})
	actor := domain.Actor{ID: 7, Role: domain.RoleProvider}

	_, err := svc.SetProviderService(context.Background(), &models.SetProviderServiceRequest{
		ProviderID:     7,
		ServiceID:      1,
		CustomDuration: ptr.Ptr(0),
		Actor:          actor,
	})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = svc.SetProviderService(context.Background(), &models.SetProviderServiceRequest{
		ProviderID:     7,
		ServiceID:      1,
		CustomDuration: ptr.Ptr(domain.MaxDurationMinutes + 1),
		Actor:          actor,
	})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = svc.SetProviderService(context.Background(), &models.SetProviderServiceRequest{
		ProviderID:  7,
		ServiceID:   1,
		CustomPrice: ptr.Ptr(-1.0),
		Actor:       actor,
	})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestSetProviderService_UnknownService(t *testing.T) {
	repo := &fakeRepo{
		getServiceByIDFn: func(ctx context.Context, id int64) (*domain.Service, error) {
			return nil, catalogRepo.ErrServiceNotFound
		},
	}
	svc := NewService(repo, nopLogger{})

	_, err := svc.SetProviderService(context.Background(), &models.SetProviderServiceRequest{
		ProviderID: 7,
		ServiceID:  999,
		IsEnabled:  true,
		Actor:      domain.Actor{ID: 7, Role: domain.RoleProvider},
	})
	assert.ErrorIs(t, err, ErrInvalidService)
}
