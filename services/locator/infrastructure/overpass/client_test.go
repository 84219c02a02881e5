package overpass

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyamsoft/fridge/pkg/logger"
	"github.com/pyamsoft/fridge/services/locator/domain"
	"github.com/pyamsoft/fridge/services/locator/domain/models"
	"github.com/pyamsoft/fridge/services/locator/domain/services"
)

const sample = `{
  "version": 0.6,
  "elements": [
    {"type": "node", "id": 11, "lat": 40.1, "lon": -74.1, "tags": {"shop": "supermarket", "name": "Corner Grocer"}},
    {"type": "way", "id": 22, "nodes": [1, 2, 3], "tags": {"shop": "supermarket", "name": "Big Market"}},
    {"type": "node", "id": 1, "lat": 40.0, "lon": -74.0},
    {"type": "node", "id": 2, "lat": 40.0, "lon": -74.01},
    {"type": "node", "id": 3, "lat": 40.01, "lon": -74.01}
  ]
}`

var box = models.BoundingBox{South: 39.9, West: -74.2, North: 40.2, East: -73.9}

func TestQuery(t *testing.T) {
	want := `[out:json][timeout:25];(` +
		`node["shop"="supermarket"](39.9,-74.2,40.2,-73.9);` +
		`way["shop"="supermarket"](39.9,-74.2,40.2,-73.9);` +
		`relation["shop"="supermarket"](39.9,-74.2,40.2,-73.9);` +
		`);out body;>;out body qt;`
	assert.Equal(t, want, Query(box))
}

func TestSupermarkets(t *testing.T) {
	var gotQuery, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostForm.Get("data")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sample))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), 0, logger.Discard())
	elements, err := c.Supermarkets(context.Background(), box)
	require.NoError(t, err)

	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, Query(box), gotQuery)
	require.Len(t, elements, 5)
	assert.Equal(t, services.Element{Type: "node", ID: 11, Lat: 40.1, Lon: -74.1, Name: "Corner Grocer"}, elements[0])
	assert.Equal(t, []int64{1, 2, 3}, elements[1].Nodes)
	assert.Equal(t, "Big Market", elements[1].Name)
}

func TestSupermarketsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), 0, logger.Discard())
	_, err := c.Supermarkets(context.Background(), box)
	require.ErrorIs(t, err, domain.ErrOverpassUnavailable)
}

func TestSupermarketsRejectsBadBox(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", http.DefaultClient, 0, logger.Discard())
	_, err := c.Supermarkets(context.Background(), models.BoundingBox{South: 1, North: 0, West: 0, East: 1})
	require.True(t, errors.Is(err, domain.ErrInvalidBoundingBox))
}

func TestSupermarketsThrottled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"elements": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), time.Hour, logger.Discard())
	_, err := c.Supermarkets(context.Background(), box)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Supermarkets(ctx, box)
	require.ErrorIs(t, err, domain.ErrOverpassUnavailable)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{"empty elements", `{"elements": []}`, 0, false},
		{"missing elements", `{"remark": "runtime error"}`, 0, true},
		{"not json", `<html>busy</html>`, 0, true},
		{"sample", sample, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.body))
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrOverpassUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}
