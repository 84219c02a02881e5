package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/pyamsoft/fridge/pkg/logger"
	"github.com/pyamsoft/fridge/pkg/preferences"
	"github.com/pyamsoft/fridge/services/butler/domain/models"
	butlersvcs "github.com/pyamsoft/fridge/services/butler/domain/services"
	fridgemodels "github.com/pyamsoft/fridge/services/fridge/domain/models"
	fridgesvcs "github.com/pyamsoft/fridge/services/fridge/domain/services"
)

// Runner turns a household's pantry state into reminders.
type Runner struct {
	pantry   Pantry
	settings SettingsStore
	notifier Notifier
	log      logger.Logger
	now      func() time.Time

	posted     metric.Int64Counter
	suppressed metric.Int64Counter
	executed   metric.Int64Counter
}

func NewRunner(pantry Pantry, settings SettingsStore, notifier Notifier, log logger.Logger) *Runner {
	meter := otel.Meter("butler")
	posted, _ := meter.Int64Counter("butler.notifications.posted",
		metric.WithDescription("Reminders delivered to a household"))
	suppressed, _ := meter.Int64Counter("butler.notifications.suppressed",
		metric.WithDescription("Reminders withheld by throttling or quiet hours"))
	executed, _ := meter.Int64Counter("butler.orders.executed",
		metric.WithDescription("Butler orders run by a scheduler"))

	return &Runner{
		pantry:     pantry,
		settings:   settings,
		notifier:   notifier,
		log:        log,
		now:        time.Now,
		posted:     posted,
		suppressed: suppressed,
		executed:   executed,
	}
}

// PolicyFromSettings builds the throttle policy for a household.
func PolicyFromSettings(s preferences.Settings) butlersvcs.Policy {
	return butlersvcs.Policy{
		Period:       s.NotificationPeriod(),
		DoNotDisturb: s.DoNotDisturb,
		QuietStart:   s.QuietStartHour,
		QuietEnd:     s.QuietEndHour,
	}
}

// Execute dispatches order to its runner.
func (r *Runner) Execute(ctx context.Context, order models.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	var err error
	switch order.Type {
	case models.OrderItem:
		err = r.RunItems(ctx, order.HouseholdID, order.Force)
	case models.OrderNightly:
		err = r.RunNightly(ctx, order.HouseholdID, order.Force)
	case models.OrderLocation:
		err = r.RunNearby(ctx, order.HouseholdID, order.Stores, order.Force)
	}

	outcome := "success"
	if err != nil {
		outcome = "failure"
		r.log.ErrorContext(ctx, "butler order failed", "tag", order.Tag(), "error", err)
	}
	r.executed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", string(order.Type)),
		attribute.String("outcome", outcome),
	))
	return err
}

// householdClock is the per-run view of a household: its local now and settings.
type householdClock struct {
	household *fridgemodels.Household
	now       time.Time
	settings  preferences.Settings
	policy    butlersvcs.Policy
}

func (r *Runner) clock(ctx context.Context, householdID uuid.UUID) (*householdClock, error) {
	h, err := r.pantry.Household(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("load household: %w", err)
	}
	settings, err := r.settings.Get(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &householdClock{
		household: h,
		now:       r.now().In(h.Location()),
		settings:  settings,
		policy:    PolicyFromSettings(settings),
	}, nil
}

func (r *Runner) decide(ctx context.Context, c *householdClock, kind models.Kind, force bool) (butlersvcs.Decision, error) {
	last, err := r.settings.LastNotified(ctx, c.household.ID, kind.String())
	if err != nil {
		return butlersvcs.Decision{}, fmt.Errorf("load last %s notification: %w", kind, err)
	}
	d := c.policy.Check(last, c.now, force)
	if !d.Allowed {
		r.suppressed.Add(ctx, 1, metric.WithAttributes(
			attribute.String("kind", kind.String()),
			attribute.String("reason", string(d.Reason)),
		))
		r.log.DebugContext(ctx, "butler reminder suppressed",
			"household_id", c.household.ID, "kind", kind, "reason", d.Reason)
	}
	return d, nil
}

func (r *Runner) post(ctx context.Context, c *householdClock, kind models.Kind, entryID *uuid.UUID, msg models.Message, reason butlersvcs.Reason) error {
	n := models.NewNotification(c.household.ID, kind, entryID, msg, c.now)
	if err := r.notifier.Post(ctx, n); err != nil {
		return fmt.Errorf("post %s notification: %w", kind, err)
	}
	r.posted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind.String()),
		attribute.String("reason", string(reason)),
	))
	r.log.InfoContext(ctx, "butler reminder posted",
		"household_id", c.household.ID, "kind", kind, "notification_id", n.ID)
	return nil
}

// RunItems posts needed, expiring and expired reminders for every live entry.
// Each kind is throttled once per run, not once per entry. A kind is marked
// notified as soon as its first reminder is posted, so entries left over by
// a failed run wait for the next period.
func (r *Runner) RunItems(ctx context.Context, householdID uuid.UUID, force bool) error {
	c, err := r.clock(ctx, householdID)
	if err != nil {
		return err
	}

	kinds := []models.Kind{models.KindNeeded, models.KindExpiring, models.KindExpired}
	decisions := make(map[models.Kind]butlersvcs.Decision, len(kinds))
	anyAllowed := false
	for _, k := range kinds {
		d, err := r.decide(ctx, c, k, force)
		if err != nil {
			return err
		}
		decisions[k] = d
		anyAllowed = anyAllowed || d.Allowed
	}
	if !anyAllowed {
		return nil
	}

	entries, err := r.pantry.Entries(ctx, householdID)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}

	rules := fridgesvcs.ExpirationRules{
		SoonDays:       c.settings.ExpiringSoonDays,
		SameDayExpired: c.settings.SameDayExpired,
	}
	today := fridgesvcs.Today(c.now, c.household.Location())
	fired := make(map[models.Kind]bool, len(kinds))

	for _, entry := range entries {
		items, err := r.pantry.Items(ctx, householdID, entry.ID)
		if err != nil {
			return fmt.Errorf("list items for entry %s: %w", entry.ID, err)
		}
		report := fridgesvcs.BuildReport(items, today, rules)
		name := entry.Name.String()
		entryID := entry.ID

		pending := []struct {
			kind  models.Kind
			items []*fridgemodels.Item
			build func(string, []string) models.Message
		}{
			{models.KindNeeded, report.Needed, butlersvcs.NeededMessage},
			{models.KindExpiring, report.ExpiringSoon, butlersvcs.ExpiringMessage},
			{models.KindExpired, report.Expired, butlersvcs.ExpiredMessage},
		}
		for _, p := range pending {
			d := decisions[p.kind]
			if !d.Allowed || len(p.items) == 0 {
				continue
			}
			if err := r.post(ctx, c, p.kind, &entryID, p.build(name, itemNames(p.items)), d.Reason); err != nil {
				return err
			}
			if fired[p.kind] {
				continue
			}
			// Marked on the first post so a failed run cannot repost on retry.
			if err := r.settings.MarkNotified(ctx, householdID, p.kind.String(), c.now); err != nil {
				return fmt.Errorf("mark %s notified: %w", p.kind, err)
			}
			fired[p.kind] = true
		}
	}
	return nil
}

// RunNightly posts the cleanup reminder when the household has food on hand.
// Unforced runs before NightlyHour local time do nothing.
func (r *Runner) RunNightly(ctx context.Context, householdID uuid.UUID, force bool) error {
	c, err := r.clock(ctx, householdID)
	if err != nil {
		return err
	}
	if !force && c.now.Hour() < butlersvcs.NightlyHour {
		return nil
	}
	d, err := r.decide(ctx, c, models.KindNightly, force)
	if err != nil || !d.Allowed {
		return err
	}

	have, _, err := r.countByPresence(ctx, householdID)
	if err != nil {
		return err
	}
	if have == 0 {
		return nil
	}
	if err := r.post(ctx, c, models.KindNightly, nil, butlersvcs.NightlyMessage(have), d.Reason); err != nil {
		return err
	}
	if err := r.settings.MarkNotified(ctx, householdID, models.KindNightly.String(), c.now); err != nil {
		return fmt.Errorf("mark nightly notified: %w", err)
	}
	return nil
}

// RunNearby posts a reminder when needed items exist and a store is close.
// With no stores or nothing needed, an open nearby reminder is withdrawn.
func (r *Runner) RunNearby(ctx context.Context, householdID uuid.UUID, stores []string, force bool) error {
	c, err := r.clock(ctx, householdID)
	if err != nil {
		return err
	}
	_, need, err := r.countByPresence(ctx, householdID)
	if err != nil {
		return err
	}
	if len(stores) == 0 || need == 0 {
		if err := r.notifier.Cancel(ctx, householdID, models.KindNearby); err != nil {
			return fmt.Errorf("cancel nearby notification: %w", err)
		}
		return nil
	}

	d, err := r.decide(ctx, c, models.KindNearby, force)
	if err != nil || !d.Allowed {
		return err
	}
	if err := r.post(ctx, c, models.KindNearby, nil, butlersvcs.NearbyMessage(stores, need), d.Reason); err != nil {
		return err
	}
	if err := r.settings.MarkNotified(ctx, householdID, models.KindNearby.String(), c.now); err != nil {
		return fmt.Errorf("mark nearby notified: %w", err)
	}
	return nil
}

func (r *Runner) countByPresence(ctx context.Context, householdID uuid.UUID) (have, need int, err error) {
	entries, err := r.pantry.Entries(ctx, householdID)
	if err != nil {
		return 0, 0, fmt.Errorf("list entries: %w", err)
	}
	for _, entry := range entries {
		items, err := r.pantry.Items(ctx, householdID, entry.ID)
		if err != nil {
			return 0, 0, fmt.Errorf("list items for entry %s: %w", entry.ID, err)
		}
		for _, item := range items {
			switch item.Presence {
			case fridgemodels.PresenceHave:
				have++
			case fridgemodels.PresenceNeed:
				need++
			}
		}
	}
	return have, need, nil
}

func itemNames(items []*fridgemodels.Item) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name.String()
	}
	return names
}
