package auth

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/pyamsoft/fridge/pkg/httpx"
	"github.com/pyamsoft/fridge/pkg/logger"
)

const sessionName = "fridge_session"
const sessionHouseholdIDKey = "household_id"

// RequireAuth is a chi middleware that enforces authentication via session cookies.
// It reads the session cookie, extracts the household ID, and injects it into the
// request context. Returns 401 Unauthorized if the session is missing, invalid,
// or lacks a valid household_id.
//
// After this middleware, handlers can safely call auth.HouseholdIDFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			raw, ok := session.Values[sessionHouseholdIDKey].(string)
			if !ok || raw == "" {
				log.WarnContext(r.Context(), "session missing household_id")
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			householdID, err := uuid.Parse(raw)
			if err != nil {
				log.WarnContext(r.Context(), "invalid household_id in session", "household_id", raw, "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "invalid session data")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithHouseholdID(r.Context(), householdID)))
		})
	}
}

// StartSession binds householdID to the caller's session cookie.
func StartSession(store sessions.Store, w http.ResponseWriter, r *http.Request, householdID uuid.UUID) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		// A tampered cookie still yields a usable fresh session.
		session, err = store.New(r, sessionName)
		if err != nil {
			return fmt.Errorf("new session: %w", err)
		}
	}
	session.Values[sessionHouseholdIDKey] = householdID.String()
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// EndSession expires the caller's session cookie and its server-side state.
func EndSession(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("expire session: %w", err)
	}
	return nil
}
