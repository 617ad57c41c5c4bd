package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	appointmentRepo "github.com/nailsrdv/NRDV-BookingService/internal/infra/storage/appointment"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/appointments/models"
	"github.com/nailsrdv/NRDV-BookingService/pkg/ptr"
)

type fakeRepo struct {
	appointments map[int64]*domain.Appointment
	listFn       func(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	getByIDFn    func(ctx context.Context, id int64) (*domain.Appointment, error)
}

func newFakeRepo(appointments ...*domain.Appointment) *fakeRepo {
	repo := &fakeRepo{appointments: make(map[int64]*domain.Appointment)}
	for _, appt := range appointments {
		repo.appointments[appt.ID] = appt
	}
	return repo
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) error {
	appt, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	if appt.Status != from {
		return appointmentRepo.ErrStatusConflict
	}
	appt.Status = to
	return nil
}

func (f *fakeRepo) Cancel(ctx context.Context, id int64, from domain.AppointmentStatus, reason *string) error {
	appt, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	if appt.Status != from {
		return appointmentRepo.ErrStatusConflict
	}
	now := time.Now()
	appt.Status = domain.StatusCancelled
	appt.CancellationReason = reason
	appt.CancelledAt = &now
	return nil
}

func (f *fakeRepo) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, filter)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)

func pendingAppointment(id int64) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		ProviderID:      7,
		UserID:          ptr.Ptr(int64(42)),
		ServiceID:       1,
		ServiceName:     "Manucure gel",
		Date:            time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Price:           45,
		Status:          domain.StatusPending,
	}
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, fixedTime{testNow}, nopLogger{})
}

func TestTransition_ProviderConfirms(t *testing.T) {
	repo := newFakeRepo(pendingAppointment(1))
	svc := newTestService(repo)

	resp, err := svc.Transition(context.Background(), &models.TransitionRequest{
		AppointmentID: 1,
		TargetStatus:  domain.StatusConfirmed,
		Actor:         domain.Actor{ID: 7, Role: domain.RoleProvider},
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "11:00", resp.EndTime)
}

func TestTransition_ClientCancelsOwn(t *testing.T) {
	repo := newFakeRepo(pendingAppointment(1))
	svc := newTestService(repo)

	resp, err := svc.Transition(context.Background(), &models.TransitionRequest{
		AppointmentID: 1,
		TargetStatus:  domain.StatusCancelled,
		Reason:        ptr.Ptr("empêchement"),
		Actor:         domain.Actor{ID: 42, Role: domain.RoleClient},
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, "empêchement", *resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)
}

func TestTransition_ConcurrentTransitionKeepsTerminalState(t *testing.T) {
	// Хранилище уже в completed, но актор действует по устаревшему снимку
	// confirmed (второй из двух конкурентных переходов): условное
	// обновление отклоняет перезапись финального состояния
	stored := pendingAppointment(1)
	stored.Status = domain.StatusCompleted
	repo := newFakeRepo(stored)
	repo.getByIDFn = func(ctx context.Context, id int64) (*domain.Appointment, error) {
		stale := *stored
		stale.Status = domain.StatusConfirmed
		return &stale, nil
	}
	svc := newTestService(repo)

	_, err := svc.Transition(context.Background(), &models.TransitionRequest{
		AppointmentID: 1,
		TargetStatus:  domain.StatusNoShow,
		Actor:         domain.Actor{ID: 7, Role: domain.RoleProvider},
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StatusCompleted, repo.appointments[1].Status)
}

func TestTransition_Forbidden(t *testing.T) {
	tests := []struct {
		name   string
		target domain.AppointmentStatus
		actor  domain.Actor
	}{
		{"client cannot confirm", domain.StatusConfirmed, domain.Actor{ID: 42, Role: domain.RoleClient}},
		{"other client cannot cancel", domain.StatusCancelled, domain.Actor{ID: 43, Role: domain.RoleClient}},
		{"other provider cannot confirm", domain.StatusConfirmed, domain.Actor{ID: 8, Role: domain.RoleProvider}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(pendingAppointment(1))
			svc := newTestService(repo)

			_, err := svc.Transition(context.Background(), &models.TransitionRequest{
				AppointmentID: 1,
				TargetStatus:  tt.target,
				Actor:         tt.actor,
			})
			assert.ErrorIs(t, err, ErrForbidden)
			assert.Equal(t, domain.StatusPending, repo.appointments[1].Status)
		})
	}
}

func TestTransition_LifecycleEdges(t *testing.T) {
	provider := domain.Actor{ID: 7, Role: domain.RoleProvider}

	tests := []struct {
		name    string
		from    domain.AppointmentStatus
		target  domain.AppointmentStatus
		wantErr error
	}{
		{"pending to confirmed", domain.StatusPending, domain.StatusConfirmed, nil},
		{"pending to cancelled", domain.StatusPending, domain.StatusCancelled, nil},
		{"pending to completed", domain.StatusPending, domain.StatusCompleted, ErrInvalidTransition},
		{"pending to no_show", domain.StatusPending, domain.StatusNoShow, ErrInvalidTransition},
		{"confirmed to completed", domain.StatusConfirmed, domain.StatusCompleted, nil},
		{"confirmed to no_show", domain.StatusConfirmed, domain.StatusNoShow, nil},
		{"confirmed to cancelled", domain.StatusConfirmed, domain.StatusCancelled, nil},
		{"confirmed to pending", domain.StatusConfirmed, domain.StatusPending, ErrInvalidTransition},
		{"completed is terminal", domain.StatusCompleted, domain.StatusCancelled, ErrInvalidTransition},
		{"cancelled is terminal", domain.StatusCancelled, domain.StatusConfirmed, ErrInvalidTransition},
		{"no_show is terminal", domain.StatusNoShow, domain.StatusCompleted, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt := pendingAppointment(1)
			appt.Status = tt.from
			svc := newTestService(newFakeRepo(appt))

			_, err := svc.Transition(context.Background(), &models.TransitionRequest{
				AppointmentID: 1,
				TargetStatus:  tt.target,
				Actor:         provider,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransition_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Transition(context.Background(), &models.TransitionRequest{
		AppointmentID: 999,
		TargetStatus:  domain.StatusConfirmed,
		Actor:         domain.Actor{ID: 7, Role: domain.RoleProvider},
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestTransition_UnknownStatus(t *testing.T) {
	svc := newTestService(newFakeRepo(pendingAppointment(1)))

	_, err := svc.Transition(context.Background(), &models.TransitionRequest{
		AppointmentID: 1,
		TargetStatus:  "postponed",
		Actor:         domain.Actor{ID: 7, Role: domain.RoleProvider},
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListProviderAppointments(t *testing.T) {
	var gotFilter domain.AppointmentsFilter
	repo := newFakeRepo()
	repo.listFn = func(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
		gotFilter = filter
		return []*domain.Appointment{pendingAppointment(1)}, nil
	}
	svc := newTestService(repo)

	status := domain.StatusConfirmed
	resp, err := svc.ListProviderAppointments(context.Background(), &models.ListProviderAppointmentsRequest{
		ProviderID: 7,
		Period:     domain.FilterUpcoming,
		Status:     &status,
		Actor:      domain.Actor{ID: 7, Role: domain.RoleProvider},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.NotNil(t, gotFilter.ProviderID)
	assert.Equal(t, int64(7), *gotFilter.ProviderID)
	assert.Nil(t, gotFilter.UserID)
	assert.Equal(t, domain.FilterUpcoming, gotFilter.Period)
	assert.Equal(t, testNow, gotFilter.Now)
}

func TestListProviderAppointments_DefaultsToAll(t *testing.T) {
	repo := newFakeRepo()
	repo.listFn = func(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
		assert.Equal(t, domain.FilterAll, filter.Period)
		return nil, nil
	}
	svc := newTestService(repo)

	_, err := svc.ListProviderAppointments(context.Background(), &models.ListProviderAppointmentsRequest{
		ProviderID: 7,
		Actor:      domain.Actor{ID: 7, Role: domain.RoleProvider},
	})
	require.NoError(t, err)
}

func TestListProviderAppointments_InvalidPeriod(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.ListProviderAppointments(context.Background(), &models.ListProviderAppointmentsRequest{
		ProviderID: 7,
		Period:     "yesterday",
		Actor:      domain.Actor{ID: 7, Role: domain.RoleProvider},
	})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestListUserAppointments(t *testing.T) {
	var gotFilter domain.AppointmentsFilter
	repo := newFakeRepo()
	repo.listFn = func(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
		gotFilter = filter
		return []*domain.Appointment{pendingAppointment(1)}, nil
	}
	svc := newTestService(repo)

	resp, err := svc.ListUserAppointments(context.Background(), &models.ListUserAppointmentsRequest{
		UserID: 42,
		Period: domain.FilterPast,
		Actor:  domain.Actor{ID: 42, Role: domain.RoleClient},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.NotNil(t, gotFilter.UserID)
	assert.Equal(t, int64(42), *gotFilter.UserID)
	assert.Nil(t, gotFilter.ProviderID)
}

func TestListUserAppointments_Forbidden(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.ListUserAppointments(context.Background(), &models.ListUserAppointmentsRequest{
		UserID: 42,
		Actor:  domain.Actor{ID: 43, Role: domain.RoleClient},
	})
	assert.ErrorIs(t, err, ErrForbidden)
}
