package create_appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	availabilityRepo "github.com/nailsrdv/NRDV-BookingService/internal/infra/storage/availability"
	catalogRepo "github.com/nailsrdv/NRDV-BookingService/internal/infra/storage/catalog"
	resolveSlotsUC "github.com/nailsrdv/NRDV-BookingService/internal/usecase/resolve_slots"
	"github.com/nailsrdv/NRDV-BookingService/pkg/ptr"
	"github.com/nailsrdv/NRDV-BookingService/pkg/types"
)

type fakeCatalogRepo struct {
	service *domain.BookableService
	err     error
}

func (f *fakeCatalogRepo) GetBookableService(ctx context.Context, providerID, serviceID int64) (*domain.BookableService, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

type fakeAvailabilityRepo struct {
	rule    *domain.AvailabilityRule
	ruleErr error
	blocked []*domain.BlockedSlot
}

func (f *fakeAvailabilityRepo) GetRuleForDay(ctx context.Context, providerID int64, day time.Weekday) (*domain.AvailabilityRule, error) {
	if f.ruleErr != nil {
		return nil, f.ruleErr
	}
	return f.rule, nil
}

func (f *fakeAvailabilityRepo) ListBlockedSlotsForDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.BlockedSlot, error) {
	return f.blocked, nil
}

// fakeAppointmentRepo хранит записи в памяти; защищен мьютексом для
// конкурентных тестов
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	nextID       int64
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	appt.ID = f.nextID
	appt.CreatedAt = time.Now()
	copied := *appt
	f.appointments = append(f.appointments, &copied)
	return appt, nil
}

func (f *fakeAppointmentRepo) GetActiveByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*domain.Appointment, 0)
	for _, appt := range f.appointments {
		if appt.ProviderID == providerID && appt.Date.Equal(date) && appt.IsActive() {
			copied := *appt
			result = append(result, &copied)
		}
	}
	return result, nil
}

// fakeTxManager сериализует транзакции глобальным мьютексом, имитируя
// поведение SERIALIZABLE с блокировкой строк
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fakeMetrics struct {
	mu        sync.Mutex
	created   map[string]int
	conflicts int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{created: make(map[string]int)}
}

func (f *fakeMetrics) IncAppointmentsCreated(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created[status]++
}

func (f *fakeMetrics) IncSlotConflicts() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conflicts++
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var (
	testNow  = time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC) // понедельник
	testDate = time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC) // следующий понедельник
)

type fixture struct {
	catalog      *fakeCatalogRepo
	availability *fakeAvailabilityRepo
	appointments *fakeAppointmentRepo
	metrics      *fakeMetrics
	uc           *UseCase
}

func newFixture(autoConfirm bool) *fixture {
	f := &fixture{
		catalog: &fakeCatalogRepo{
			service: &domain.BookableService{
				ServiceID:       1,
				Name:            "Manucure gel",
				DurationMinutes: 60,
				Price:           45,
			},
		},
		availability: &fakeAvailabilityRepo{
			rule: &domain.AvailabilityRule{
				ProviderID:  7,
				DayOfWeek:   time.Monday,
				StartTime:   "09:00",
				EndTime:     "18:00",
				IsAvailable: true,
			},
		},
		appointments: &fakeAppointmentRepo{},
		metrics:      newFakeMetrics(),
	}
	f.uc = NewUseCase(f.catalog, f.availability, f.appointments, &fakeTxManager{}, f.metrics, autoConfirm, nopLogger{})
	f.uc.timeProvider = fixedTime{testNow}
	return f
}

func clientRequest(startTime types.TimeString) *Request {
	return &Request{
		ProviderID: 7,
		ServiceID:  1,
		Date:       testDate,
		StartTime:  startTime,
		Actor:      domain.Actor{ID: 42, Role: domain.RoleClient},
	}
}

func TestExecute_CreatesPendingAppointment(t *testing.T) {
	f := newFixture(false)

	resp, err := f.uc.Execute(context.Background(), clientRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "11:00", resp.EndTime.String())
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 45.0, resp.Price)
	assert.Equal(t, "Manucure gel", resp.ServiceName)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, int64(42), *resp.UserID)
	assert.Equal(t, 1, f.metrics.created["pending"])
}

func TestExecute_AutoConfirm(t *testing.T) {
	f := newFixture(true)

	resp, err := f.uc.Execute(context.Background(), clientRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, 1, f.metrics.created["confirmed"])
}

func TestExecute_GuestBookingByProvider(t *testing.T) {
	f := newFixture(false)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ProviderID:  7,
		ServiceID:   1,
		Date:        testDate,
		StartTime:   "10:00",
		ClientName:  ptr.Ptr("Claire Dupont"),
		ClientPhone: ptr.Ptr("+33612345678"),
		Actor:       domain.Actor{ID: 7, Role: domain.RoleProvider},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.UserID)
	assert.Equal(t, "Claire Dupont", *resp.ClientName)
}

func TestExecute_GuestBookingRequiresIdentity(t *testing.T) {
	f := newFixture(false)

	_, err := f.uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		ServiceID:  1,
		Date:       testDate,
		StartTime:  "10:00",
		Actor:      domain.Actor{ID: 7, Role: domain.RoleProvider},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ProviderCannotBookForAnotherProvider(t *testing.T) {
	f := newFixture(false)

	_, err := f.uc.Execute(context.Background(), &Request{
		ProviderID:  7,
		ServiceID:   1,
		Date:        testDate,
		StartTime:   "10:00",
		ClientName:  ptr.Ptr("Claire Dupont"),
		ClientPhone: ptr.Ptr("+33612345678"),
		Actor:       domain.Actor{ID: 8, Role: domain.RoleProvider},
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture(false)

	_, err := f.uc.Execute(context.Background(), clientRequest("10:00"))
	require.NoError(t, err)

	// Точный дубль
	_, err = f.uc.Execute(context.Background(), clientRequest("10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Частичное пересечение: 10:30-11:30 против 10:00-11:00
	_, err = f.uc.Execute(context.Background(), clientRequest("10:30"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	assert.Equal(t, 2, f.metrics.conflicts)
}

func TestExecute_BackToBackAllowed(t *testing.T) {
	f := newFixture(false)

	_, err := f.uc.Execute(context.Background(), clientRequest("10:00"))
	require.NoError(t, err)

	// 11:00-12:00 граничит с 10:00-11:00 — это не конфликт
	_, err = f.uc.Execute(context.Background(), clientRequest("11:00"))
	assert.NoError(t, err)
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	f := newFixture(false)

	resp, err := f.uc.Execute(context.Background(), clientRequest("10:00"))
	require.NoError(t, err)

	f.appointments.mu.Lock()
	for _, appt := range f.appointments.appointments {
		if appt.ID == resp.ID {
			appt.Status = domain.StatusCancelled
		}
	}
	f.appointments.mu.Unlock()

	_, err = f.uc.Execute(context.Background(), clientRequest("10:00"))
	assert.NoError(t, err)
}

func TestExecute_SlotClosed(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
		start types.TimeString
	}{
		{
			name:  "before opening",
			setup: func(f *fixture) {},
			start: "08:00",
		},
		{
			name:  "extends past closing",
			setup: func(f *fixture) {},
			start: "17:30",
		},
		{
			name: "closed day",
			setup: func(f *fixture) {
				f.availability.rule.IsAvailable = false
			},
			start: "10:00",
		},
		{
			name: "no rule",
			setup: func(f *fixture) {
				f.availability.ruleErr = availabilityRepo.ErrRuleNotFound
			},
			start: "10:00",
		},
		{
			name: "full day block",
			setup: func(f *fixture) {
				f.availability.blocked = []*domain.BlockedSlot{
					{ProviderID: 7, Date: testDate, IsFullDay: true},
				}
			},
			start: "10:00",
		},
		{
			name: "intersects partial block",
			setup: func(f *fixture) {
				f.availability.blocked = []*domain.BlockedSlot{
					{
						ProviderID: 7,
						Date:       testDate,
						StartTime:  ptr.Ptr(types.TimeString("12:00")),
						EndTime:    ptr.Ptr(types.TimeString("14:00")),
					},
				}
			},
			start: "11:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(false)
			tt.setup(f)

			_, err := f.uc.Execute(context.Background(), clientRequest(tt.start))
			assert.ErrorIs(t, err, ErrSlotClosed)
		})
	}
}

func TestExecute_PastDate(t *testing.T) {
	f := newFixture(false)

	req := clientRequest("10:00")
	req.Date = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPastDate)

	// Сегодня, но время уже прошло (сейчас 08:00)
	req = clientRequest("07:00")
	req.Date = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestExecute_ServiceNotOffered(t *testing.T) {
	f := newFixture(false)
	f.catalog.err = catalogRepo.ErrProviderServiceNotFound

	_, err := f.uc.Execute(context.Background(), clientRequest("10:00"))
	assert.ErrorIs(t, err, ErrServiceNotOffered)
}

func TestExecute_ConcurrentRequestsSingleWinner(t *testing.T) {
	f := newFixture(false)

	const workers = 16
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := &Request{
				ProviderID: 7,
				ServiceID:  1,
				Date:       testDate,
				StartTime:  "10:00",
				Actor:      domain.Actor{ID: int64(100 + i), Role: domain.RoleClient},
			}
			_, errs[i] = f.uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrSlotTaken)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Len(t, f.appointments.appointments, 1)
	assert.Equal(t, 1, f.metrics.created["pending"])
	assert.Equal(t, workers-1, f.metrics.conflicts)
}

func TestResolveThenBookRoundTrip(t *testing.T) {
	f := newFixture(false)

	// Дата далеко в будущем: резолвер слотов использует реальные часы
	futureDate := time.Date(2030, 6, 17, 0, 0, 0, 0, time.UTC) // понедельник

	resolver := resolveSlotsUC.NewUseCase(f.catalog, f.availability, f.appointments, 30, nopLogger{})

	before, err := resolver.Execute(context.Background(), &resolveSlotsUC.Request{
		ProviderID: 7,
		ServiceID:  1,
		Date:       futureDate,
	})
	require.NoError(t, err)
	require.NotEmpty(t, before.Slots)
	assert.Equal(t, types.TimeString("09:00"), before.Slots[0].StartTime)

	// Бронируем первый предложенный слот
	req := clientRequest(before.Slots[0].StartTime)
	req.Date = futureDate
	_, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	after, err := resolver.Execute(context.Background(), &resolveSlotsUC.Request{
		ProviderID: 7,
		ServiceID:  1,
		Date:       futureDate,
	})
	require.NoError(t, err)

	// Занятый интервал и все пересекающиеся с ним старты исчезают из выдачи
	for _, slot := range after.Slots {
		assert.False(t, slot.StartTime.Equal("09:00"))
		assert.False(t, slot.StartTime.Equal("09:30"))
	}
	assert.Len(t, after.Slots, len(before.Slots)-2)
}

// abortingTxManager обрывает первые failures транзакций кодом
// serialization_failure, затем делегирует обычному менеджеру
type abortingTxManager struct {
	inner    fakeTxManager
	failures int
}

func (f *abortingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.failures > 0 {
		f.failures--
		return fmt.Errorf("txmanager: commit failed: %w", &pq.Error{Code: "40001"})
	}
	return f.inner.DoSerializable(ctx, fn)
}

func TestExecute_RetriesAfterSerializationFailure(t *testing.T) {
	f := newFixture(false)
	f.uc.txManager = &abortingTxManager{failures: 1}

	resp, err := f.uc.Execute(context.Background(), clientRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Len(t, f.appointments.appointments, 1)
	assert.Equal(t, 0, f.metrics.conflicts)
}

func TestExecute_PersistentSerializationFailureIsSlotTaken(t *testing.T) {
	f := newFixture(false)
	f.uc.txManager = &abortingTxManager{failures: 2}

	_, err := f.uc.Execute(context.Background(), clientRequest("10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, f.appointments.appointments)
	assert.Equal(t, 1, f.metrics.conflicts)
}
