package notifier

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/pyamsoft/fridge/pkg/logger"
	"github.com/pyamsoft/fridge/services/butler/domain/models"
)

func notification() *models.Notification {
	return &models.Notification{
		ID:          uuid.New(),
		HouseholdID: uuid.New(),
		Kind:        models.KindExpired,
		Title:       "Expiration warning for My Fridge",
		Body:        "2 items have passed expiration!",
	}
}

func TestEmail_Post(t *testing.T) {
	var gotFrom string
	var gotTo []string
	var raw bytes.Buffer
	sender := gomail.SendFunc(func(from string, to []string, msg io.WriterTo) error {
		gotFrom, gotTo = from, to
		_, err := msg.WriteTo(&raw)
		return err
	})

	e := NewEmailWithSender(sender, "butler@example.com", "home@example.com")
	require.NoError(t, e.Post(context.Background(), notification()))

	assert.Equal(t, "butler@example.com", gotFrom)
	assert.Equal(t, []string{"home@example.com"}, gotTo)
	assert.Contains(t, raw.String(), "Subject: Expiration warning for My Fridge")
	assert.Contains(t, raw.String(), "2 items have passed expiration!")
}

func TestEmail_PostError(t *testing.T) {
	sender := gomail.SendFunc(func(string, []string, io.WriterTo) error { return errors.New("smtp down") })
	e := NewEmailWithSender(sender, "a@example.com", "b@example.com")
	assert.ErrorContains(t, e.Post(context.Background(), notification()), "smtp down")
}

type recordingTarget struct {
	posted    int
	cancelled int
	err       error
}

func (r *recordingTarget) Post(context.Context, *models.Notification) error {
	r.posted++
	return r.err
}

func (r *recordingTarget) Cancel(context.Context, uuid.UUID, models.Kind) error {
	r.cancelled++
	return r.err
}

func TestFanout(t *testing.T) {
	primary := &recordingTarget{}
	broken := &recordingTarget{err: errors.New("boom")}
	ok := &recordingTarget{}
	f := NewFanout(logger.Discard(), primary, broken, ok)

	require.NoError(t, f.Post(context.Background(), notification()))
	require.NoError(t, f.Cancel(context.Background(), uuid.New(), models.KindNearby))

	assert.Equal(t, 1, primary.posted)
	assert.Equal(t, 1, broken.posted)
	assert.Equal(t, 1, ok.posted)
	assert.Equal(t, 1, ok.cancelled)
}

func TestFanout_PrimaryFailureStops(t *testing.T) {
	primary := &recordingTarget{err: errors.New("db down")}
	secondary := &recordingTarget{}
	f := NewFanout(logger.Discard(), primary, secondary)

	assert.Error(t, f.Post(context.Background(), notification()))
	assert.Equal(t, 0, secondary.posted)
}
