// Package notifier delivers butler reminders outside the Postgres inbox.
package notifier

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/logger"
	"github.com/pyamsoft/fridge/services/butler/domain/models"
)

// Target is one delivery channel.
type Target interface {
	Post(ctx context.Context, n *models.Notification) error
	Cancel(ctx context.Context, householdID uuid.UUID, kind models.Kind) error
}

// Fanout delivers to a primary target and best-effort to the rest.
// Only a primary failure is returned; secondary failures are logged.
type Fanout struct {
	primary   Target
	secondary []Target
	log       logger.Logger
}

func NewFanout(log logger.Logger, primary Target, secondary ...Target) *Fanout {
	return &Fanout{primary: primary, secondary: secondary, log: log}
}

func (f *Fanout) Post(ctx context.Context, n *models.Notification) error {
	if err := f.primary.Post(ctx, n); err != nil {
		return err
	}
	var errs []error
	for _, t := range f.secondary {
		errs = append(errs, t.Post(ctx, n))
	}
	if err := errors.Join(errs...); err != nil {
		f.log.WarnContext(ctx, "secondary notifier failed", "notification_id", n.ID, "error", err)
	}
	return nil
}

func (f *Fanout) Cancel(ctx context.Context, householdID uuid.UUID, kind models.Kind) error {
	if err := f.primary.Cancel(ctx, householdID, kind); err != nil {
		return err
	}
	for _, t := range f.secondary {
		if err := t.Cancel(ctx, householdID, kind); err != nil {
			f.log.WarnContext(ctx, "secondary notifier cancel failed", "kind", kind, "error", err)
		}
	}
	return nil
}
