package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pyamsoft/fridge/pkg/auth"
	"github.com/pyamsoft/fridge/pkg/httpx"
	"github.com/pyamsoft/fridge/pkg/preferences"
	butlerdomain "github.com/pyamsoft/fridge/services/butler/domain"
	fridgedomain "github.com/pyamsoft/fridge/services/fridge/domain"
	locatordomain "github.com/pyamsoft/fridge/services/locator/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrItemNotFound", fridgedomain.ErrItemNotFound, http.StatusNotFound},
		{"ErrHouseholdNotFound", fridgedomain.ErrHouseholdNotFound, http.StatusNotFound},
		{"ErrNotificationNotFound", butlerdomain.ErrNotificationNotFound, http.StatusNotFound},
		{"ErrZoneNotFound", locatordomain.ErrZoneNotFound, http.StatusNotFound},
		{"ErrEntryAlreadyExists", fridgedomain.ErrEntryAlreadyExists, http.StatusConflict},
		{"ErrItemNotReal", fridgedomain.ErrItemNotReal, http.StatusConflict},
		{"ErrEntryArchived", fridgedomain.ErrEntryArchived, http.StatusConflict},
		{"ErrInvalidName", fridgedomain.ErrInvalidName, http.StatusUnprocessableEntity},
		{"ErrInvalidOrder", butlerdomain.ErrInvalidOrder, http.StatusUnprocessableEntity},
		{"ErrInvalidSettings", preferences.ErrInvalidSettings, http.StatusUnprocessableEntity},
		{"ErrInvalidBoundingBox", locatordomain.ErrInvalidBoundingBox, http.StatusUnprocessableEntity},
		{"ErrBadParam", httpx.ErrBadParam, http.StatusBadRequest},
		{"ErrHouseholdIDNotFound", auth.ErrHouseholdIDNotFound, http.StatusUnauthorized},
		{"ErrOverpassUnavailable", locatordomain.ErrOverpassUnavailable, http.StatusBadGateway},
		{"ErrSchedulerClosed", butlerdomain.ErrSchedulerClosed, http.StatusServiceUnavailable},
		{"wrapped ErrEntryNotFound", fmt.Errorf("get entry: %w", fridgedomain.ErrEntryNotFound), http.StatusNotFound},
		{"wrapped ErrInvalidCount", fmt.Errorf("%w: -1", fridgedomain.ErrInvalidCount), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, fridgedomain.ErrItemNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != fridgedomain.ErrItemNotFound.Error() {
		t.Fatalf("unexpected error message %q", body["error"])
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, fridgedomain.ErrItemNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}

func TestWriteError_ProductionHidesInternalDetails(t *testing.T) {
	SetProduction(true)
	t.Cleanup(func() { SetProduction(false) })

	w := httptest.NewRecorder()
	WriteError(w, fmt.Errorf("select entries: %w", errors.New("connection refused")))
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("internal error leaked: %q", body["error"])
	}

	w = httptest.NewRecorder()
	WriteError(w, fridgedomain.ErrEntryNotFound)
	body = map[string]string{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != fridgedomain.ErrEntryNotFound.Error() {
		t.Fatalf("4xx message should be kept, got %q", body["error"])
	}
}
