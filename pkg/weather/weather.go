// Package weather provides tools backed by the OpenWeatherMap API: geocoding
// a place name, current conditions, and the 5 day / 3 hour forecast.
//
// Each tool performs exactly one outbound call. Upstream failures are mapped
// to tool error categories by [CheckStatus]; successful weather documents are
// forwarded to the caller unchanged.
package weather

import (
	"context"
	"encoding/json"

	"github.com/germanamz/toolservers/pkg/tools/toolbox"
)

const (
	// Name identifies the weather server on initialize.
	Name = "weather"
	// Instructions are advertised to clients on initialize.
	Instructions = "Get weather from your input location. Resolve a place name with get_location, then pass its lat/lon to get_current_weather or get_5day_3hour_forecast."
)

const coordinatesSchema = `{
	"type": "object",
	"properties": {
		"lat": {"type": "number", "minimum": -90, "maximum": 90, "description": "Latitude"},
		"lon": {"type": "number", "minimum": -180, "maximum": 180, "description": "Longitude"},
		"units": {"type": "string", "enum": ["standard", "metric", "imperial"], "description": "Units of measurement"},
		"lang": {"type": "string", "description": "Language code for descriptions, e.g. en or de"}
	},
	"required": ["lat", "lon"]
}`

// Tools returns a ToolBox with the weather tools bound to client. Options
// are passed to toolbox.New.
func Tools(client *Client, opts ...toolbox.Option) *toolbox.ToolBox {
	tb := toolbox.New(opts...)

	tb.Register(
		toolbox.Tool{
			Name:        "get_location",
			Description: "Get latitude and longitude of a location",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"location":{"type":"string","minLength":1,"description":"location name"}},"required":["location"]}`),
			Handler:     client.handleLocation,
		},
		toolbox.Tool{
			Name:        "get_current_weather",
			Description: "Get current location weather",
			InputSchema: json.RawMessage(coordinatesSchema),
			Handler:     client.handleCurrent,
		},
		toolbox.Tool{
			Name:        "get_5day_3hour_forecast",
			Description: "Get 5-day 3-hour forecast",
			InputSchema: json.RawMessage(coordinatesSchema),
			Handler:     client.handleForecast,
		},
	)

	return tb
}

// --- input types ---

type locationInput struct {
	Location string `json:"location"`
}

type coordinatesInput struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Units string  `json:"units"`
	Lang  string  `json:"lang"`
}

func (in coordinatesInput) location() Location { return Location{Lat: in.Lat, Lon: in.Lon} }

func (in coordinatesInput) options() Options { return Options{Units: in.Units, Lang: in.Lang} }

// --- handlers ---

func (c *Client) handleLocation(ctx context.Context, input json.RawMessage) (string, error) {
	var in locationInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", toolbox.InvalidRequest("get_location: invalid input: %v", err)
	}

	loc, err := c.Geocode(ctx, in.Location)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(loc)
	if err != nil {
		return "", toolbox.Internal("get_location: encode result: %v", err)
	}

	return string(data), nil
}

func (c *Client) handleCurrent(ctx context.Context, input json.RawMessage) (string, error) {
	var in coordinatesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", toolbox.InvalidRequest("get_current_weather: invalid input: %v", err)
	}

	doc, err := c.Current(ctx, in.location(), in.options())
	if err != nil {
		return "", err
	}

	return string(doc), nil
}

func (c *Client) handleForecast(ctx context.Context, input json.RawMessage) (string, error) {
	var in coordinatesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", toolbox.InvalidRequest("get_5day_3hour_forecast: invalid input: %v", err)
	}

	doc, err := c.Forecast(ctx, in.location(), in.options())
	if err != nil {
		return "", err
	}

	return string(doc), nil
}
