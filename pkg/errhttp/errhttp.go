// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/pyamsoft/fridge/pkg/auth"
	"github.com/pyamsoft/fridge/pkg/httpx"
	"github.com/pyamsoft/fridge/pkg/preferences"
	butlerdomain "github.com/pyamsoft/fridge/services/butler/domain"
	fridgedomain "github.com/pyamsoft/fridge/services/fridge/domain"
	locatordomain "github.com/pyamsoft/fridge/services/locator/domain"
)

var production atomic.Bool

// SetProduction hides 5xx error details from clients when on is true.
func SetProduction(on bool) {
	production.Store(on)
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, production.Load()))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, fridgedomain.ErrHouseholdNotFound),
		errors.Is(err, fridgedomain.ErrEntryNotFound),
		errors.Is(err, fridgedomain.ErrItemNotFound),
		errors.Is(err, fridgedomain.ErrCategoryNotFound),
		errors.Is(err, butlerdomain.ErrNotificationNotFound),
		errors.Is(err, locatordomain.ErrStoreNotFound),
		errors.Is(err, locatordomain.ErrZoneNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, fridgedomain.ErrEntryAlreadyExists),
		errors.Is(err, fridgedomain.ErrItemNotReal),
		errors.Is(err, fridgedomain.ErrEntryArchived):
		return http.StatusConflict // 409
	case errors.Is(err, fridgedomain.ErrInvalidName),
		errors.Is(err, fridgedomain.ErrInvalidCount),
		errors.Is(err, fridgedomain.ErrInvalidPresence),
		errors.Is(err, fridgedomain.ErrInvalidTimezone),
		errors.Is(err, butlerdomain.ErrInvalidKind),
		errors.Is(err, butlerdomain.ErrInvalidOrder),
		errors.Is(err, locatordomain.ErrInvalidBoundingBox),
		errors.Is(err, locatordomain.ErrInvalidCoordinate),
		errors.Is(err, preferences.ErrInvalidSettings):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, httpx.ErrBadParam):
		return http.StatusBadRequest // 400
	case errors.Is(err, auth.ErrHouseholdIDNotFound):
		return http.StatusUnauthorized // 401
	case errors.Is(err, locatordomain.ErrOverpassUnavailable):
		return http.StatusBadGateway // 502
	case errors.Is(err, butlerdomain.ErrSchedulerClosed):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
