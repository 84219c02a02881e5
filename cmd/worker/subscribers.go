package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/app"
	"github.com/pyamsoft/fridge/pkg/config"
	"github.com/pyamsoft/fridge/pkg/logger"
	butlersvcs "github.com/pyamsoft/fridge/services/butler/application/services"
	butlerevents "github.com/pyamsoft/fridge/services/butler/domain/events"
	butlermodels "github.com/pyamsoft/fridge/services/butler/domain/models"
	fridgesvcs "github.com/pyamsoft/fridge/services/fridge/application/services"
	fridgeevents "github.com/pyamsoft/fridge/services/fridge/domain/events"
	fridgemodels "github.com/pyamsoft/fridge/services/fridge/domain/models"
)

const householdSyncInterval = 5 * time.Minute

type subscriber interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

type households interface {
	List(ctx context.Context) ([]*fridgemodels.Household, error)
}

type entryCache interface {
	InvalidateEntry(ctx context.Context, householdID, entryID uuid.UUID)
}

// worker turns fridge changes and placed orders into butler orders and keeps
// a periodic item and nightly order scheduled for every household.
type worker struct {
	bus        subscriber
	households households
	cache      entryCache
	scheduler  butlersvcs.Scheduler
	cfg        *config.Config
	log        logger.Logger

	mu        sync.Mutex
	scheduled map[uuid.UUID]bool
}

func newWorker(a *app.Application, fridge *fridgesvcs.Services, scheduler butlersvcs.Scheduler) *worker {
	return &worker{
		bus:        a.EventBus,
		households: fridge.Household,
		cache:      fridge.Item,
		scheduler:  scheduler,
		cfg:        a.Config,
		log:        a.Logger,
		scheduled:  make(map[uuid.UUID]bool),
	}
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func (w *worker) registerSubscribers(ctx context.Context) error {
	handlers := map[string]func(context.Context, *message.Message) error{
		fridgeevents.TopicItemChanged:  w.handleItemChanged,
		fridgeevents.TopicEntryChanged: w.handleEntryChanged,
		butlerevents.TopicOrderPlaced:  w.handleOrderPlaced,
	}

	topics := make([]string, 0, len(handlers))
	for topic, handler := range handlers {
		errCh, err := w.bus.Subscribe(ctx, topic, handler)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				w.log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
		topics = append(topics, topic)
	}

	w.log.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleItemChanged drops the entry's cached item list and asks the butler
// to look at the household again. Handlers must be idempotent; EventBus
// retries up to 3x on failure.
func (w *worker) handleItemChanged(ctx context.Context, msg *message.Message) error {
	var evt fridgeevents.ItemChangedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return err
	}
	w.cache.InvalidateEntry(ctx, evt.HouseholdID, evt.EntryID)
	return w.placeItemOrder(ctx, evt.HouseholdID)
}

func (w *worker) handleEntryChanged(ctx context.Context, msg *message.Message) error {
	var evt fridgeevents.EntryChangedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return err
	}
	w.cache.InvalidateEntry(ctx, evt.HouseholdID, evt.EntryID)
	return w.placeItemOrder(ctx, evt.HouseholdID)
}

func (w *worker) handleOrderPlaced(ctx context.Context, msg *message.Message) error {
	var evt butlerevents.OrderPlacedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return err
	}
	if err := evt.Order.Validate(); err != nil {
		// A malformed order will never succeed; ack it instead of retrying.
		w.log.WarnContext(ctx, "dropping invalid order", "event_id", evt.EventID, "error", err)
		return nil
	}
	if err := w.scheduler.PlaceOrder(ctx, evt.Order); err != nil {
		return fmt.Errorf("place %s: %w", evt.Order.Tag(), err)
	}
	w.log.InfoContext(ctx, "butler order placed", "tag", evt.Order.Tag(), "force", evt.Order.Force)
	return nil
}

func (w *worker) placeItemOrder(ctx context.Context, householdID uuid.UUID) error {
	order := butlermodels.Order{Type: butlermodels.OrderItem, HouseholdID: householdID}
	if err := w.scheduler.PlaceOrder(ctx, order); err != nil {
		return fmt.Errorf("place %s: %w", order.Tag(), err)
	}
	return nil
}

// syncHouseholds schedules the periodic orders of households seen for the
// first time. Already scheduled households are left alone so their timers
// are not reset.
func (w *worker) syncHouseholds(ctx context.Context) (int, error) {
	all, err := w.households.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list households: %w", err)
	}

	added := 0
	for _, hh := range all {
		w.mu.Lock()
		done := w.scheduled[hh.ID]
		w.mu.Unlock()
		if done {
			continue
		}

		periodic := []struct {
			order butlermodels.Order
			every time.Duration
		}{
			{butlermodels.Order{Type: butlermodels.OrderItem, HouseholdID: hh.ID}, w.cfg.ButlerItemPeriod},
			{butlermodels.Order{Type: butlermodels.OrderNightly, HouseholdID: hh.ID}, w.cfg.ButlerNightlyPeriod},
		}
		for _, p := range periodic {
			if err := w.scheduler.ScheduleOrder(ctx, p.order, p.every); err != nil {
				return added, fmt.Errorf("schedule %s: %w", p.order.Tag(), err)
			}
		}

		w.mu.Lock()
		w.scheduled[hh.ID] = true
		w.mu.Unlock()
		added++
	}
	return added, nil
}

// runHouseholdSync schedules periodic orders at startup and then picks up
// new households every few minutes until ctx is cancelled.
func (w *worker) runHouseholdSync(ctx context.Context) {
	ticker := time.NewTicker(householdSyncInterval)
	defer ticker.Stop()

	for {
		n, err := w.syncHouseholds(ctx)
		if err != nil {
			w.log.ErrorContext(ctx, "household sync failed", "error", err)
		} else if n > 0 {
			w.log.InfoContext(ctx, "periodic butler orders scheduled", "households", n)
		}

		select {
		case <-ctx.Done():
			w.log.Info("household sync shutting down")
			return
		case <-ticker.C:
		}
	}
}
