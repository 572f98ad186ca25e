package weather

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/germanamz/toolservers/pkg/config"
	"github.com/germanamz/toolservers/pkg/tools/toolbox"
)

// maxBodyBytes bounds how much of an upstream response is read.
const maxBodyBytes = 8 << 20

// API paths relative to the base URL.
const (
	geocodePath  = "/geo/1.0/direct"
	currentPath  = "/data/2.5/weather"
	forecastPath = "/data/2.5/forecast"
)

// Location is a point on the globe.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Options are the optional presentation parameters of the weather endpoints.
// Empty fields fall back to the client defaults.
type Options struct {
	Units string
	Lang  string
}

// geocodeResult is one entry of the geocoding response.
type geocodeResult struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Client calls the OpenWeatherMap API. It is safe for concurrent use; the
// configuration it holds is never modified.
type Client struct {
	cfg  *config.Weather
	http *http.Client
}

// NewClient creates a Client for cfg. A nil httpClient gets a client with
// cfg.Timeout.
func NewClient(cfg *config.Weather, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{cfg: cfg, http: httpClient}
}

// Geocode resolves a free-text place name to the coordinates of the first
// match.
func (c *Client) Geocode(ctx context.Context, query string) (Location, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", "1")

	body, err := c.get(ctx, geocodePath, q)
	if err != nil {
		return Location{}, err
	}

	var items []geocodeResult
	if err := json.Unmarshal(body, &items); err != nil {
		return Location{}, toolbox.Internal("parse failed: %v", err)
	}

	if len(items) == 0 {
		return Location{}, toolbox.NotFound("location not found")
	}

	return Location{Lat: items[0].Lat, Lon: items[0].Lon}, nil
}

// Current returns the current-weather document for loc, verbatim.
func (c *Client) Current(ctx context.Context, loc Location, opts Options) (json.RawMessage, error) {
	return c.getDocument(ctx, currentPath, loc, opts)
}

// Forecast returns the 5 day / 3 hour forecast document for loc, verbatim.
func (c *Client) Forecast(ctx context.Context, loc Location, opts Options) (json.RawMessage, error) {
	return c.getDocument(ctx, forecastPath, loc, opts)
}

func (c *Client) getDocument(ctx context.Context, path string, loc Location, opts Options) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(loc.Lon, 'f', -1, 64))

	if units := cmp.Or(opts.Units, c.cfg.Units); units != "" {
		q.Set("units", units)
	}

	if lang := cmp.Or(opts.Lang, c.cfg.Lang); lang != "" {
		q.Set("lang", lang)
	}

	body, err := c.get(ctx, path, q)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, toolbox.Internal("parse failed: response is not valid JSON")
	}

	return json.RawMessage(body), nil
}

// get performs one GET against the API with the credential attached and
// returns the body of a 2xx response. Every failure is a *toolbox.Error.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	query.Set("appid", c.cfg.APIKey)

	u := strings.TrimRight(c.cfg.BaseURL, "/") + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, toolbox.Internal("build request: %v", redact(err))
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req) //nolint:gosec // URL is built from trusted BaseURL config, not user input.
	if err != nil {
		return nil, toolbox.InvalidRequest("OpenWeatherMap API request failed: %w", redact(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if err := CheckStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, toolbox.InvalidRequest("OpenWeatherMap API request failed: %w", redact(err))
	}

	return body, nil
}

// redact strips the request URL, which carries the API key, from transport
// errors.
func redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", strings.ToLower(ue.Op), ue.Err)
	}

	return err
}
