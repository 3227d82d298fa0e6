package draft_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okadri/splitmate/internal/expense/draft"
	"github.com/okadri/splitmate/internal/expense/split"
)

// manualScheduler collects scheduled callbacks so tests fire the
// debounce on demand instead of waiting on real timers.
type manualScheduler struct {
	mu      sync.Mutex
	pending []*scheduledFn
}

type scheduledFn struct {
	fn        func()
	cancelled bool
}

func (m *manualScheduler) Schedule(_ time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &scheduledFn{fn: fn}
	m.pending = append(m.pending, s)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		s.cancelled = true
	}
}

// Fire runs every callback that was not cancelled, oldest first.
func (m *manualScheduler) Fire() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, s := range pending {
		if !s.cancelled {
			s.fn()
		}
	}
}

type fakeFinalizer struct {
	mu    sync.Mutex
	calls []draft.Finalization
	id    int64
	err   error
}

func (f *fakeFinalizer) CreateFromDraft(_ context.Context, fin draft.Finalization) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fin)
	return f.id, f.err
}

func newTestService(t *testing.T) (*draft.Service, *manualScheduler, *fakeFinalizer) {
	t.Helper()
	scheduler := &manualScheduler{}
	finalizer := &fakeFinalizer{id: 42}
	service := draft.NewService(
		draft.NewStore(),
		split.NewFactory(split.DefaultLimits()),
		split.NewValidator(0.01, 0.1),
		finalizer,
		100*time.Millisecond,
		scheduler.Schedule,
	)
	return service, scheduler, finalizer
}

func addParticipants(t *testing.T, service *draft.Service, id string, personIDs ...int64) *draft.Snapshot {
	t.Helper()
	var snapshot *draft.Snapshot
	var err error
	for _, pid := range personIDs {
		snapshot, err = service.AddParticipant(id, pid)
		require.NoError(t, err)
	}
	return snapshot
}

func TestService_Create(t *testing.T) {
	service, _, _ := newTestService(t)

	snapshot, err := service.Create(7, 100, "")
	require.NoError(t, err)

	assert.Equal(t, int64(7), snapshot.GroupID)
	assert.Equal(t, split.SplitTypeEqual, snapshot.Strategy)
	assert.Equal(t, 100.0, snapshot.Total)
	assert.Empty(t, snapshot.ParticipantIDs)
	assert.False(t, snapshot.Summary.Balanced)

	_, err = service.Create(7, 100, "FIBONACCI")
	assert.ErrorIs(t, err, split.ErrUnknownSplitType)
}

func TestService_AddParticipant(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.Create(1, 100, split.SplitTypeEqual)
	require.NoError(t, err)

	t.Run("FirstParticipantBecomesPayer", func(t *testing.T) {
		snapshot := addParticipants(t, service, created.ID, 10)
		assert.Equal(t, int64(10), snapshot.PayerID)
	})

	t.Run("FourWayEqualScenario", func(t *testing.T) {
		snapshot := addParticipants(t, service, created.ID, 20, 30, 40)

		require.Len(t, snapshot.Allocations, 4)
		for pid, a := range snapshot.Allocations {
			assert.Equal(t, 25.0, a.Amount, "participant %d", pid)
			assert.Equal(t, 25.0, a.Percentage, "participant %d", pid)
		}
		assert.True(t, snapshot.Summary.Balanced)
		assert.Equal(t, int64(10), snapshot.PayerID, "payer unchanged by later adds")
	})

	t.Run("AddingTwiceIsANoOp", func(t *testing.T) {
		snapshot := addParticipants(t, service, created.ID, 20)
		assert.Len(t, snapshot.ParticipantIDs, 4)
	})
}

func TestService_AddParticipant_StrategyDefaults(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.Create(1, 90, split.SplitTypeExact)
	require.NoError(t, err)

	snapshot := addParticipants(t, service, created.ID, 1, 2, 3)

	// The third join defaults to an even slice of the total at the
	// moment of joining.
	in := snapshot.Inputs[3]
	require.NotNil(t, in.Amount)
	assert.InDelta(t, 30.0, *in.Amount, 1e-9)
}

func TestService_RemoveParticipant(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.Create(1, 100, split.SplitTypeEqual)
	require.NoError(t, err)
	addParticipants(t, service, created.ID, 1, 2, 3)

	t.Run("RemovesAndPurgesInput", func(t *testing.T) {
		snapshot, blocked, err := service.RemoveParticipant(created.ID, 3)
		require.NoError(t, err)
		assert.False(t, blocked)
		assert.Equal(t, []int64{1, 2}, snapshot.ParticipantIDs)
		_, ok := snapshot.Inputs[3]
		assert.False(t, ok)
		_, ok = snapshot.Allocations[3]
		assert.False(t, ok)
	})

	t.Run("BlockedAtTwoParticipants", func(t *testing.T) {
		snapshot, blocked, err := service.RemoveParticipant(created.ID, 2)
		require.NoError(t, err)
		assert.True(t, blocked)
		assert.Equal(t, []int64{1, 2}, snapshot.ParticipantIDs, "state unchanged")
	})

	t.Run("UnknownParticipantIsANoOp", func(t *testing.T) {
		snapshot, blocked, err := service.RemoveParticipant(created.ID, 99)
		require.NoError(t, err)
		assert.False(t, blocked)
		assert.Len(t, snapshot.ParticipantIDs, 2)
	})
}

func TestService_RemoveParticipant_ReassignsPayer(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.Create(1, 100, split.SplitTypeEqual)
	require.NoError(t, err)
	addParticipants(t, service, created.ID, 5, 6, 7)

	snapshot, blocked, err := service.RemoveParticipant(created.ID, 5)
	require.NoError(t, err)
	require.False(t, blocked)
	assert.Contains(t, snapshot.ParticipantIDs, snapshot.PayerID)
	assert.NotEqual(t, int64(5), snapshot.PayerID)
}

func TestService_SelectPayer(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.Create(1, 100, split.SplitTypeEqual)
	require.NoError(t, err)
	addParticipants(t, service, created.ID, 1, 2)

	t.Run("ExistingParticipant", func(t *testing.T) {
		snapshot, err := service.SelectPayer(created.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), snapshot.PayerID)
		assert.Len(t, snapshot.ParticipantIDs, 2)
	})

	t.Run("AutoAddsUnknownPayer", func(t *testing.T) {
		snapshot, err := service.SelectPayer(created.ID, 9)
		require.NoError(t, err)
		assert.Equal(t, int64(9), snapshot.PayerID)
		assert.Contains(t, snapshot.ParticipantIDs, int64(9))
	})
}

func TestService_SetStrategy_ResetsInputs(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.Create(1, 90, split.SplitTypePercentage)
	require.NoError(t, err)
	addParticipants(t, service, created.ID, 1, 2, 3)

	// Custom percentages: 40 / 40 / 20.
	_, err = service.UpdateInput(created.ID, 1, "percentage", 40)
	require.NoError(t, err)
	_, err = service.UpdateInput(created.ID, 2, "percentage", 40)
	require.NoError(t, err)
	snapshot, err := service.UpdateInput(created.ID, 3, "percentage", 20)
	require.NoError(t, err)
	require.True(t, snapshot.Summary.Balanced)
	assert.InDelta(t, 36.0, snapshot.Allocations[1].Amount, 1e-9)
	assert.InDelta(t, 18.0, snapshot.Allocations[3].Amount, 1e-9)

	// Switching to SHARES discards the percentages outright.
	snapshot, err = service.SetStrategy(created.ID, split.SplitTypeShares)
	require.NoError(t, err)
	assert.Equal(t, split.SplitTypeShares, snapshot.Strategy)
	for pid, in := range snapshot.Inputs {
		require.NotNil(t, in.Shares, "participant %d", pid)
		assert.Equal(t, 1, *in.Shares, "participant %d", pid)
		assert.Nil(t, in.Percentage, "participant %d", pid)
	}
	for _, a := range snapshot.Allocations {
		assert.InDelta(t, 30.0, a.Amount, 1e-9)
	}
}

func TestService_UpdateInput(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.Create(1, 50, split.SplitTypeShares)
	require.NoError(t, err)
	addParticipants(t, service, created.ID, 1, 2)

	t.Run("SharesScenario", func(t *testing.T) {
		snapshot, err := service.UpdateInput(created.ID, 2, "shares", 3)
		require.NoError(t, err)
		assert.InDelta(t, 12.5, snapshot.Allocations[1].Amount, 1e-9)
		assert.InDelta(t, 37.5, snapshot.Allocations[2].Amount, 1e-9)
	})

	t.Run("SharesClamped", func(t *testing.T) {
		snapshot, err := service.UpdateInput(created.ID, 2, "shares", 50)
		require.NoError(t, err)
		require.NotNil(t, snapshot.Inputs[2].Shares)
		assert.Equal(t, 10, *snapshot.Inputs[2].Shares)

		snapshot, err = service.UpdateInput(created.ID, 2, "shares", -5)
		require.NoError(t, err)
		assert.Equal(t, 1, *snapshot.Inputs[2].Shares)
	})

	t.Run("PercentageClamped", func(t *testing.T) {
		snapshot, err := service.UpdateInput(created.ID, 1, "percentage", 150)
		require.NoError(t, err)
		require.NotNil(t, snapshot.Inputs[1].Percentage)
		assert.Equal(t, 100.0, *snapshot.Inputs[1].Percentage)
	})

	t.Run("UnknownField", func(t *testing.T) {
		_, err := service.UpdateInput(created.ID, 1, "karma", 3)
		assert.ErrorIs(t, err, draft.ErrUnknownInputField)
	})

	t.Run("UnknownParticipant", func(t *testing.T) {
		_, err := service.UpdateInput(created.ID, 99, "shares", 3)
		assert.ErrorIs(t, err, draft.ErrParticipantNotFound)
	})
}

func TestService_SetAmount_Debounce(t *testing.T) {
	service, scheduler, _ := newTestService(t)

	created, err := service.Create(1, 0, split.SplitTypeEqual)
	require.NoError(t, err)
	addParticipants(t, service, created.ID, 1, 2)

	t.Run("RecomputeWaitsForDebounce", func(t *testing.T) {
		snapshot, err := service.SetAmount(created.ID, "100")
		require.NoError(t, err)
		assert.Zero(t, snapshot.Total, "total unchanged until the debounce fires")
		assert.True(t, snapshot.PendingAmount)

		scheduler.Fire()

		snapshot, err = service.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, 100.0, snapshot.Total)
		assert.False(t, snapshot.PendingAmount)
		assert.InDelta(t, 50.0, snapshot.Allocations[1].Amount, 1e-9)
	})

	t.Run("LastKeystrokeWins", func(t *testing.T) {
		for _, raw := range []string{"2", "25", "250"} {
			_, err := service.SetAmount(created.ID, raw)
			require.NoError(t, err)
		}

		scheduler.Fire()

		snapshot, err := service.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, 250.0, snapshot.Total)
	})

	t.Run("JunkInputParsesToZero", func(t *testing.T) {
		_, err := service.SetAmount(created.ID, "12abc")
		require.NoError(t, err)
		scheduler.Fire()

		snapshot, err := service.Get(created.ID)
		require.NoError(t, err)
		assert.Zero(t, snapshot.Total)
		assert.Empty(t, snapshot.Allocations)
	})

	t.Run("StructuralEditFlushesPendingAmount", func(t *testing.T) {
		_, err := service.SetAmount(created.ID, "60")
		require.NoError(t, err)

		// No scheduler fire: adding a participant applies the
		// pending amount synchronously.
		snapshot, err := service.AddParticipant(created.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 60.0, snapshot.Total)
		assert.False(t, snapshot.PendingAmount)
		assert.InDelta(t, 20.0, snapshot.Allocations[3].Amount, 1e-9)

		// The superseded firing must not clobber the flushed state.
		scheduler.Fire()
		snapshot, err = service.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, 60.0, snapshot.Total)
	})
}

func TestService_Finalize(t *testing.T) {
	t.Run("UnbalancedDraftRefused", func(t *testing.T) {
		service, _, finalizer := newTestService(t)
		created, err := service.Create(1, 100, split.SplitTypeExact)
		require.NoError(t, err)
		addParticipants(t, service, created.ID, 1, 2)
		_, err = service.UpdateInput(created.ID, 1, "amount", 10)
		require.NoError(t, err)

		_, err = service.Finalize(context.Background(), created.ID, "dinner")
		assert.ErrorIs(t, err, draft.ErrUnbalanced)
		assert.Empty(t, finalizer.calls)
	})

	t.Run("BalancedDraftHandsOffAndDies", func(t *testing.T) {
		service, _, finalizer := newTestService(t)
		created, err := service.Create(1, 100, split.SplitTypeEqual)
		require.NoError(t, err)
		addParticipants(t, service, created.ID, 1, 2, 3, 4)

		expenseID, err := service.Finalize(context.Background(), created.ID, "dinner")
		require.NoError(t, err)
		assert.Equal(t, int64(42), expenseID)

		require.Len(t, finalizer.calls, 1)
		fin := finalizer.calls[0]
		assert.Equal(t, int64(1), fin.GroupID)
		assert.Equal(t, int64(1), fin.PayerID)
		assert.Equal(t, "dinner", fin.Description)
		assert.Equal(t, split.SplitTypeEqual, fin.SplitType)
		assert.Len(t, fin.Allocations, 4)

		_, err = service.Get(created.ID)
		assert.ErrorIs(t, err, draft.ErrDraftNotFound)
	})
}

func TestService_Cancel(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.Create(1, 100, split.SplitTypeEqual)
	require.NoError(t, err)

	require.NoError(t, service.Cancel(created.ID))

	_, err = service.Get(created.ID)
	assert.ErrorIs(t, err, draft.ErrDraftNotFound)
	assert.ErrorIs(t, service.Cancel(created.ID), draft.ErrDraftNotFound)
}
