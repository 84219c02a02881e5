package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyamsoft/fridge/pkg/auth"
	"github.com/pyamsoft/fridge/pkg/preferences"
	"github.com/pyamsoft/fridge/services/butler/application/handlers"
	butlersvcs "github.com/pyamsoft/fridge/services/butler/application/services"
	butlerevents "github.com/pyamsoft/fridge/services/butler/domain/events"
)

type capturePublisher struct {
	topic string
	msgs  []*message.Message
}

func (p *capturePublisher) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	p.topic = topic
	p.msgs = append(p.msgs, msgs...)
	return nil
}

type memSettings struct {
	saved   map[uuid.UUID]preferences.Settings
	cleared int
}

func (m *memSettings) Get(_ context.Context, hh uuid.UUID) (preferences.Settings, error) {
	if s, ok := m.saved[hh]; ok {
		return s, nil
	}
	return preferences.Defaults(), nil
}

func (m *memSettings) Save(_ context.Context, hh uuid.UUID, s preferences.Settings) error {
	m.saved[hh] = s
	return nil
}

func (m *memSettings) LastNotified(context.Context, uuid.UUID, string) (time.Time, error) {
	return time.Time{}, nil
}

func (m *memSettings) MarkNotified(context.Context, uuid.UUID, string, time.Time) error {
	return nil
}

func (m *memSettings) ClearNotified(context.Context, uuid.UUID) error {
	m.cleared++
	return nil
}

type testEnv struct {
	router    http.Handler
	publisher *capturePublisher
	settings  *memSettings
	household uuid.UUID
}

func newEnv() *testEnv {
	env := &testEnv{
		publisher: &capturePublisher{},
		settings:  &memSettings{saved: map[uuid.UUID]preferences.Settings{}},
		household: uuid.New(),
	}
	svcs := &butlersvcs.Services{
		Orders:   butlersvcs.NewOrderService(env.publisher),
		Settings: butlersvcs.NewSettingsService(env.settings),
	}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Anonymous") == "" {
				r = r.WithContext(auth.WithHouseholdID(r.Context(), env.household))
			}
			next.ServeHTTP(w, r)
		})
	})
	settings := handlers.NewSettingsHandler(svcs)
	r.Get("/settings", settings.Get)
	r.Put("/settings", settings.Put)
	notifications := handlers.NewNotificationHandler(svcs)
	r.Get("/notifications", notifications.List)
	r.Post("/notifications/{id}/read", notifications.MarkRead)
	r.Delete("/notifications/{id}", notifications.Dismiss)
	r.Post("/butler/orders", handlers.NewPostOrderHandler(svcs).Execute)
	env.router = r
	return env
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestPostOrder_PublishesOrder(t *testing.T) {
	env := newEnv()

	w := env.do(http.MethodPost, "/butler/orders", `{"type":"item","force":true}`)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var resp handlers.OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "butler-item-"+env.household.String(), resp.Tag)

	require.Len(t, env.publisher.msgs, 1)
	assert.Equal(t, butlerevents.TopicOrderPlaced, env.publisher.topic)
	var evt butlerevents.OrderPlacedEvent
	require.NoError(t, json.Unmarshal(env.publisher.msgs[0].Payload, &evt))
	assert.Equal(t, env.household, evt.Order.HouseholdID)
	assert.True(t, evt.Order.Force)
	assert.Equal(t, evt.EventID.String(), env.publisher.msgs[0].Metadata.Get("event_id"))
}

func TestPostOrder_Rejections(t *testing.T) {
	env := newEnv()
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"unknown type", `{"type":"reboot"}`, http.StatusUnprocessableEntity},
		{"blank store", `{"type":"location","stores":[" "]}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/butler/orders", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
	assert.Empty(t, env.publisher.msgs)
}

func TestSettings_RoundTrip(t *testing.T) {
	env := newEnv()

	w := env.do(http.MethodGet, "/settings", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got handlers.SettingsBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, preferences.DefaultNotificationPeriodHours, got.NotificationPeriodHours)

	got.ExpiringSoonDays = 3
	got.SameDayExpired = true
	body, err := json.Marshal(got)
	require.NoError(t, err)
	w = env.do(http.MethodPut, "/settings", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	saved := env.settings.saved[env.household]
	assert.Equal(t, 3, saved.ExpiringSoonDays)
	assert.True(t, saved.SameDayExpired)
	assert.Zero(t, env.settings.cleared, "unchanged period keeps throttle state")

	got.NotificationPeriodHours = 6
	body, err = json.Marshal(got)
	require.NoError(t, err)
	w = env.do(http.MethodPut, "/settings", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, env.settings.cleared)
}

func TestSettings_RejectsOutOfRange(t *testing.T) {
	env := newEnv()
	body := `{"expiring_soon_days":31,"notification_period_hours":2,"quiet_start_hour":22,"quiet_end_hour":7,"nearby_range_meters":1600}`

	w := env.do(http.MethodPut, "/settings", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, env.settings.saved)
}

func TestNotifications_Rejections(t *testing.T) {
	env := newEnv()

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/notifications?unread=perhaps", "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPost, "/notifications/nope/read", "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodDelete, "/notifications/nope", "").Code)
}

func TestButlerHandlers_RequireHousehold(t *testing.T) {
	env := newEnv()
	for _, path := range []string{"/settings", "/notifications"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("X-Anonymous", "1")
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
