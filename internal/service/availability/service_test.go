package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
	"github.com/nailsrdv/NRDV-BookingService/internal/service/availability/models"
	"github.com/nailsrdv/NRDV-BookingService/pkg/ptr"
)

type fakeRepo struct {
	upsertRuleFn           func(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	listRulesFn            func(ctx context.Context, providerID int64) ([]*domain.AvailabilityRule, error)
	createBlockedSlotFn    func(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error)
	deleteBlockedSlotFn    func(ctx context.Context, providerID, id int64) error
	listBlockedSlotsFromFn func(ctx context.Context, providerID int64, from time.Time) ([]*domain.BlockedSlot, error)
}

func (f *fakeRepo) UpsertRule(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	return f.upsertRuleFn(ctx, rule)
}

func (f *fakeRepo) ListRules(ctx context.Context, providerID int64) ([]*domain.AvailabilityRule, error) {
	return f.listRulesFn(ctx, providerID)
}

func (f *fakeRepo) CreateBlockedSlot(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	return f.createBlockedSlotFn(ctx, slot)
}

func (f *fakeRepo) DeleteBlockedSlot(ctx context.Context, providerID, id int64) error {
	return f.deleteBlockedSlotFn(ctx, providerID, id)
}

func (f *fakeRepo) ListBlockedSlotsFrom(ctx context.Context, providerID int64, from time.Time) ([]*domain.BlockedSlot, error) {
	return f.listBlockedSlotsFromFn(ctx, providerID, from)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC) // понедельник

func providerActor(id int64) domain.Actor {
	return domain.Actor{ID: id, Role: domain.RoleProvider}
}

func TestSetWeeklyRule(t *testing.T) {
	var saved *domain.AvailabilityRule
	repo := &fakeRepo{
		upsertRuleFn: func(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
			rule.ID = 3
			saved = rule
			return rule, nil
		},
	}
	svc := NewService(repo, fixedTime{testNow}, nopLogger{})

	resp, err := svc.SetWeeklyRule(context.Background(), &models.SetWeeklyRuleRequest{
		ProviderID:  7,
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "18:00",
		IsAvailable: true,
		Actor:       providerActor(7),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, time.Monday, saved.DayOfWeek)
}

func TestSetWeeklyRule_ClosedDayIgnoresWindow(t *testing.T) {
	repo := &fakeRepo{
		upsertRuleFn: func(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
			assert.True(t, rule.StartTime.IsZero())
			assert.True(t, rule.EndTime.IsZero())
			return rule, nil
		},
	}
	svc := NewService(repo, fixedTime{testNow}, nopLogger{})

	_, err := svc.SetWeeklyRule(context.Background(), &models.SetWeeklyRuleRequest{
		ProviderID:  7,
		DayOfWeek:   0,
		IsAvailable: false,
		Actor:       providerActor(7),
	})
	require.NoError(t, err)
}

func TestSetWeeklyRule_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{}, fixedTime{testNow}, nopLogger{})

	tests := []struct {
		name    string
		req     models.SetWeeklyRuleRequest
		wantErr error
	}{
		{
			name: "day of week out of range",
			req: models.SetWeeklyRuleRequest{
				ProviderID: 7, DayOfWeek: 7, StartTime: "09:00", EndTime: "18:00",
				IsAvailable: true, Actor: providerActor(7),
			},
			wantErr: ErrInvalidValue,
		},
		{
			name: "malformed start time",
			req: models.SetWeeklyRuleRequest{
				ProviderID: 7, DayOfWeek: 1, StartTime: "9h00", EndTime: "18:00",
				IsAvailable: true, Actor: providerActor(7),
			},
			wantErr: ErrInvalidValue,
		},
		{
			name: "start equals end",
			req: models.SetWeeklyRuleRequest{
				ProviderID: 7, DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00",
				IsAvailable: true, Actor: providerActor(7),
			},
			wantErr: ErrInvalidRange,
		},
		{
			name: "start after end",
			req: models.SetWeeklyRuleRequest{
				ProviderID: 7, DayOfWeek: 1, StartTime: "18:00", EndTime: "09:00",
				IsAvailable: true, Actor: providerActor(7),
			},
			wantErr: ErrInvalidRange,
		},
		{
			name: "another provider",
			req: models.SetWeeklyRuleRequest{
				ProviderID: 7, DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00",
				IsAvailable: true, Actor: providerActor(8),
			},
			wantErr: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetWeeklyRule(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListAvailability(t *testing.T) {
	repo := &fakeRepo{
		listRulesFn: func(ctx context.Context, providerID int64) ([]*domain.AvailabilityRule, error) {
			return []*domain.AvailabilityRule{
				{ID: 1, ProviderID: providerID, DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "18:00", IsAvailable: true},
			}, nil
		},
		listBlockedSlotsFromFn: func(ctx context.Context, providerID int64, from time.Time) ([]*domain.BlockedSlot, error) {
			assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), from)
			return []*domain.BlockedSlot{
				{ID: 5, ProviderID: providerID, Date: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), IsFullDay: true},
			}, nil
		},
	}
	svc := NewService(repo, fixedTime{testNow}, nopLogger{})

	resp, err := svc.ListAvailability(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, resp.Rules, 1)
	require.Len(t, resp.BlockedSlots, 1)
	assert.Equal(t, "2025-06-20", resp.BlockedSlots[0].Date)
	assert.True(t, resp.BlockedSlots[0].IsFullDay)
}

func TestAddBlockedSlot_FullDay(t *testing.T) {
	repo := &fakeRepo{
		createBlockedSlotFn: func(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error) {
			slot.ID = 9
			assert.True(t, slot.IsFullDay)
			assert.Nil(t, slot.StartTime)
			return slot, nil
		},
	}
	svc := NewService(repo, fixedTime{testNow}, nopLogger{})

	resp, err := svc.AddBlockedSlot(context.Background(), &models.AddBlockedSlotRequest{
		ProviderID: 7,
		Date:       "2025-07-01",
		IsFullDay:  true,
		Reason:     ptr.Ptr("congés"),
		Actor:      providerActor(7),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.ID)
	assert.Equal(t, "congés", *resp.Reason)
}

func TestAddBlockedSlot_Partial(t *testing.T) {
	repo := &fakeRepo{
		createBlockedSlotFn: func(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error) {
			slot.ID = 10
			require.NotNil(t, slot.StartTime)
			require.NotNil(t, slot.EndTime)
			assert.Equal(t, "12:00", slot.StartTime.String())
			return slot, nil
		},
	}
	svc := NewService(repo, fixedTime{testNow}, nopLogger{})

	_, err := svc.AddBlockedSlot(context.Background(), &models.AddBlockedSlotRequest{
		ProviderID: 7,
		Date:       "2025-06-16", // сегодня — допустимо
		StartTime:  ptr.Ptr("12:00"),
		EndTime:    ptr.Ptr("14:00"),
		Actor:      providerActor(7),
	})
	require.NoError(t, err)
}

func TestAddBlockedSlot_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{}, fixedTime{testNow}, nopLogger{})

	tests := []struct {
		name    string
		req     models.AddBlockedSlotRequest
		wantErr error
	}{
		{
			name: "past date",
			req: models.AddBlockedSlotRequest{
				ProviderID: 7, Date: "2025-06-15", IsFullDay: true, Actor: providerActor(7),
			},
			wantErr: ErrPastDate,
		},
		{
			name: "malformed date",
			req: models.AddBlockedSlotRequest{
				ProviderID: 7, Date: "15/06/2025", IsFullDay: true, Actor: providerActor(7),
			},
			wantErr: ErrInvalidValue,
		},
		{
			name: "partial block without times",
			req: models.AddBlockedSlotRequest{
				ProviderID: 7, Date: "2025-07-01", Actor: providerActor(7),
			},
			wantErr: ErrInvalidValue,
		},
		{
			name: "inverted window",
			req: models.AddBlockedSlotRequest{
				ProviderID: 7, Date: "2025-07-01",
				StartTime: ptr.Ptr("14:00"), EndTime: ptr.Ptr("12:00"),
				Actor: providerActor(7),
			},
			wantErr: ErrInvalidRange,
		},
		{
			name: "client actor",
			req: models.AddBlockedSlotRequest{
				ProviderID: 7, Date: "2025-07-01", IsFullDay: true,
				Actor: domain.Actor{ID: 7, Role: domain.RoleClient},
			},
			wantErr: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddBlockedSlot(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRemoveBlockedSlot_Idempotent(t *testing.T) {
	calls := 0
	repo := &fakeRepo{
		deleteBlockedSlotFn: func(ctx context.Context, providerID, id int64) error {
			calls++
			return nil
		},
	}
	svc := NewService(repo, fixedTime{testNow}, nopLogger{})

	req := &models.RemoveBlockedSlotRequest{ProviderID: 7, SlotID: 5, Actor: providerActor(7)}
	require.NoError(t, svc.RemoveBlockedSlot(context.Background(), req))
	require.NoError(t, svc.RemoveBlockedSlot(context.Background(), req))
	assert.Equal(t, 2, calls)
}

func TestRemoveBlockedSlot_ScopedToProvider(t *testing.T) {
	var gotProviderID, gotSlotID int64
	repo := &fakeRepo{
		deleteBlockedSlotFn: func(ctx context.Context, providerID, id int64) error {
			gotProviderID = providerID
			gotSlotID = id
			return nil
		},
	}
	svc := NewService(repo, fixedTime{testNow}, nopLogger{})

	// Удаление всегда ограничено мастером из запроса: чужой slot id
	// не затрагивает блокировки другого мастера
	require.NoError(t, svc.RemoveBlockedSlot(context.Background(), &models.RemoveBlockedSlotRequest{
		ProviderID: 7, SlotID: 99, Actor: providerActor(7),
	}))
	assert.Equal(t, int64(7), gotProviderID)
	assert.Equal(t, int64(99), gotSlotID)
}

func TestRemoveBlockedSlot_StoreUnavailable(t *testing.T) {
	repo := &fakeRepo{
		deleteBlockedSlotFn: func(ctx context.Context, providerID, id int64) error {
			return errors.New("connection refused")
		},
	}
	svc := NewService(repo, fixedTime{testNow}, nopLogger{})

	err := svc.RemoveBlockedSlot(context.Background(), &models.RemoveBlockedSlotRequest{
		ProviderID: 7, SlotID: 5, Actor: providerActor(7),
	})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
