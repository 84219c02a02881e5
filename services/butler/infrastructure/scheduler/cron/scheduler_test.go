package cron

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyamsoft/fridge/pkg/logger"
	"github.com/pyamsoft/fridge/services/butler/domain"
	"github.com/pyamsoft/fridge/services/butler/domain/models"
)

// gatedExecutor blocks each Execute until release is signalled.
type gatedExecutor struct {
	mu      sync.Mutex
	orders  []models.Order
	started chan struct{}
	release chan struct{}
}

func newGatedExecutor() *gatedExecutor {
	return &gatedExecutor{started: make(chan struct{}, 16), release: make(chan struct{}, 16)}
}

func (g *gatedExecutor) Execute(_ context.Context, order models.Order) error {
	g.mu.Lock()
	g.orders = append(g.orders, order)
	g.mu.Unlock()
	g.started <- struct{}{}
	<-g.release
	return nil
}

func (g *gatedExecutor) executed() []models.Order {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.Order(nil), g.orders...)
}

func waitStarted(t *testing.T, g *gatedExecutor) {
	t.Helper()
	select {
	case <-g.started:
	case <-time.After(2 * time.Second):
		t.Fatal("order did not start")
	}
}

func TestScheduler_PlaceOrderReplacesPending(t *testing.T) {
	exec := newGatedExecutor()
	s := New(exec, logger.Discard())
	s.Start(context.Background())

	hh := uuid.New()
	blocker := models.Order{Type: models.OrderNightly, HouseholdID: hh}
	require.NoError(t, s.PlaceOrder(context.Background(), blocker))
	waitStarted(t, exec)

	first := models.Order{Type: models.OrderItem, HouseholdID: hh}
	second := models.Order{Type: models.OrderItem, HouseholdID: hh, Force: true}
	require.NoError(t, s.PlaceOrder(context.Background(), first))
	require.NoError(t, s.PlaceOrder(context.Background(), second))

	exec.release <- struct{}{}
	waitStarted(t, exec)
	exec.release <- struct{}{}

	require.NoError(t, s.Stop(context.Background()))
	got := exec.executed()
	require.Len(t, got, 2)
	assert.Equal(t, models.OrderNightly, got[0].Type)
	assert.True(t, got[1].Force, "newer order with the same tag should win")
}

func TestScheduler_CancelOrderDropsQueued(t *testing.T) {
	exec := newGatedExecutor()
	s := New(exec, logger.Discard())
	s.Start(context.Background())

	hh := uuid.New()
	require.NoError(t, s.PlaceOrder(context.Background(), models.Order{Type: models.OrderNightly, HouseholdID: hh}))
	waitStarted(t, exec)

	queued := models.Order{Type: models.OrderItem, HouseholdID: hh}
	require.NoError(t, s.PlaceOrder(context.Background(), queued))
	require.NoError(t, s.CancelOrder(context.Background(), queued.Tag()))

	exec.release <- struct{}{}
	require.NoError(t, s.Stop(context.Background()))
	assert.Len(t, exec.executed(), 1)
}

func TestScheduler_ScheduleAndCancel(t *testing.T) {
	s := New(newGatedExecutor(), logger.Discard())
	hh := uuid.New()
	item := models.Order{Type: models.OrderItem, HouseholdID: hh}
	nightly := models.Order{Type: models.OrderNightly, HouseholdID: hh}

	require.NoError(t, s.ScheduleOrder(context.Background(), item, time.Hour))
	require.NoError(t, s.ScheduleOrder(context.Background(), item, 2*time.Hour))
	require.NoError(t, s.ScheduleOrder(context.Background(), nightly, time.Hour))
	assert.Len(t, s.cron.Entries(), 2, "rescheduling a tag replaces its entry")

	require.NoError(t, s.CancelOrder(context.Background(), item.Tag()))
	assert.Len(t, s.cron.Entries(), 1)

	require.NoError(t, s.CancelAll(context.Background()))
	assert.Empty(t, s.cron.Entries())
}

func TestScheduler_RejectsAfterStop(t *testing.T) {
	s := New(newGatedExecutor(), logger.Discard())
	s.Start(context.Background())
	require.NoError(t, s.Stop(context.Background()))

	err := s.PlaceOrder(context.Background(), models.Order{Type: models.OrderItem, HouseholdID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrSchedulerClosed)
}

func TestScheduler_RejectsInvalidOrder(t *testing.T) {
	s := New(newGatedExecutor(), logger.Discard())
	err := s.ScheduleOrder(context.Background(), models.Order{Type: models.OrderItem}, time.Hour)
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
}
