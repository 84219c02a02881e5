package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

// ErrBadParam is wrapped by every path and query parsing failure.
var ErrBadParam = errors.New("invalid request parameter")

// Page holds limit/offset pagination values parsed from the query string.
type Page struct {
	Limit  int
	Offset int
}

// URLParamUUID parses the chi path parameter name as a UUID.
func URLParamUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a UUID", ErrBadParam, name)
	}
	return id, nil
}

// URLParamInt64 parses the chi path parameter name as a positive integer id.
func URLParamInt64(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrBadParam, name)
	}
	return id, nil
}

// PageFromQuery reads ?limit= and ?offset=. Limit defaults to 50 and is
// clamped to 1..100; offset defaults to 0 and must not be negative.
func PageFromQuery(r *http.Request) (Page, error) {
	p := Page{Limit: defaultPageLimit}
	q := r.URL.Query()
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Page{}, fmt.Errorf("%w: limit must be an integer", ErrBadParam)
		}
		p.Limit = min(max(n, 1), maxPageLimit)
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Page{}, fmt.Errorf("%w: offset must be a non-negative integer", ErrBadParam)
		}
		p.Offset = n
	}
	return p, nil
}

// QueryBool reads an optional boolean query parameter.
func QueryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", ErrBadParam, name)
	}
	return v, nil
}

// QueryFloat reads a required float query parameter.
func QueryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", ErrBadParam, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrBadParam, name)
	}
	return v, nil
}

// QueryFloatDefault reads an optional float query parameter, returning def when absent.
func QueryFloatDefault(r *http.Request, name string, def float64) (float64, error) {
	if r.URL.Query().Get(name) == "" {
		return def, nil
	}
	return QueryFloat(r, name)
}
