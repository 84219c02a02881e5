// Package overpass queries the OpenStreetMap Overpass API for supermarkets.
package overpass

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/pyamsoft/fridge/pkg/config"
	"github.com/pyamsoft/fridge/pkg/logger"
	"github.com/pyamsoft/fridge/services/locator/domain"
	"github.com/pyamsoft/fridge/services/locator/domain/models"
	"github.com/pyamsoft/fridge/services/locator/domain/services"
)

const maxResponseBytes = 8 << 20

// Client posts supermarket queries to an Overpass endpoint. Requests share a
// single limiter so bursts of refreshes do not hammer the public instance.
type Client struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
	log      logger.Logger
}

// New builds a client from the OVERPASS_* settings.
func New(cfg *config.Config, log logger.Logger) *Client {
	return NewClient(cfg.OverpassURL, &http.Client{
		Timeout:   cfg.OverpassTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}, cfg.OverpassInterval, log)
}

// NewClient allows at most one request per interval. A zero interval disables throttling.
func NewClient(endpoint string, hc *http.Client, interval time.Duration, log logger.Logger) *Client {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Client{
		endpoint: endpoint,
		http:     hc,
		limiter:  rate.NewLimiter(limit, 1),
		log:      log,
	}
}

// Query builds the Overpass QL for supermarkets inside box.
func Query(box models.BoundingBox) string {
	b := strings.Join([]string{
		formatDegrees(box.South),
		formatDegrees(box.West),
		formatDegrees(box.North),
		formatDegrees(box.East),
	}, ",")
	var q strings.Builder
	q.WriteString(`[out:json][timeout:25];(`)
	for _, kind := range []string{"node", "way", "relation"} {
		fmt.Fprintf(&q, `%s["shop"="supermarket"](%s);`, kind, b)
	}
	q.WriteString(`);out body;>;out body qt;`)
	return q.String()
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Supermarkets fetches every supermarket element in box.
func (c *Client) Supermarkets(ctx context.Context, box models.BoundingBox) ([]services.Element, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOverpassUnavailable, err)
	}

	form := url.Values{"data": {Query(box)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOverpassUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrOverpassUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.WarnContext(ctx, "overpass request failed", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrOverpassUnavailable, resp.StatusCode)
	}

	elements, err := Parse(body)
	if err != nil {
		return nil, err
	}
	c.log.DebugContext(ctx, "overpass query complete",
		"elements", len(elements),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return elements, nil
}

// Parse reads the "elements" array of an Overpass JSON document.
func Parse(body []byte) ([]services.Element, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: malformed response", domain.ErrOverpassUnavailable)
	}
	raw := gjson.GetBytes(body, "elements")
	if !raw.IsArray() {
		return nil, fmt.Errorf("%w: response has no elements", domain.ErrOverpassUnavailable)
	}

	out := make([]services.Element, 0, len(raw.Array()))
	raw.ForEach(func(_, el gjson.Result) bool {
		e := services.Element{
			Type: el.Get("type").String(),
			ID:   el.Get("id").Int(),
			Lat:  el.Get("lat").Float(),
			Lon:  el.Get("lon").Float(),
			Name: el.Get("tags.name").String(),
		}
		for _, n := range el.Get("nodes").Array() {
			e.Nodes = append(e.Nodes, n.Int())
		}
		out = append(out, e)
		return true
	})
	return out, nil
}
