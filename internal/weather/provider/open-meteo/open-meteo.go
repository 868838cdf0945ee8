// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hectormalot/omgo"
	"github.com/sony/gobreaker"

	"github.com/wneessen/feelslike/internal/logger"
	"github.com/wneessen/feelslike/internal/weather"
)

const (
	name       = "open-meteo"
	apiTimeout = time.Second * 10

	metricTemperature = "temperature_2m"
	metricHumidity    = "relative_humidity_2m"
	metricWindSpeed   = "wind_speed_10m"
	metricCloudCover  = "cloud_cover"
)

var hourlyMetrics = []string{metricTemperature, metricHumidity, metricWindSpeed, metricCloudCover}

// ErrUnavailable is returned while the circuit breaker refuses requests.
var ErrUnavailable = errors.New("open-meteo API temporarily unavailable")

// forecaster is satisfied by omgo.Client.
type forecaster interface {
	Forecast(ctx context.Context, loc omgo.Location, opts *omgo.Options) (*omgo.Forecast, error)
}

type OpenMeteo struct {
	client  forecaster
	breaker *gobreaker.CircuitBreaker
	log     *logger.Logger
	now     func() time.Time
}

func New(log *logger.Logger) (*OpenMeteo, error) {
	client, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo client: %w", err)
	}
	return newWithClient(client, log)
}

func newWithClient(client forecaster, log *logger.Logger) (*OpenMeteo, error) {
	if client == nil {
		return nil, fmt.Errorf("forecast client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	o := &OpenMeteo{client: client, log: log, now: time.Now}
	o.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Hour,
		Timeout:     time.Minute * 5,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("weather provider state changed", slog.String("provider", name),
				slog.String("from", from.String()), slog.String("to", to.String()))
		},
	})
	return o, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

// GetWeather fetches the hourly forecast for coords. The record of the current hour becomes
// Data.Current, all later hours end up in Data.Forecast.
func (o *OpenMeteo) GetWeather(ctx context.Context, coords weather.Coordinate) (*weather.Data, error) {
	if err := coords.Validate(); err != nil {
		return nil, err
	}
	loc, err := omgo.NewLocation(coords.Lat, coords.Lon)
	if err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	opts := &omgo.Options{
		TemperatureUnit: "celsius",
		WindspeedUnit:   "ms",
		Timezone:        "UTC",
		HourlyMetrics:   hourlyMetrics,
	}

	res, err := o.breaker.Execute(func() (interface{}, error) {
		ctxFetch, cancelFetch := context.WithTimeout(ctx, apiTimeout)
		defer cancelFetch()
		return o.client.Forecast(ctxFetch, loc, opts)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve weather data from Open-Meteo API: %w", err)
	}

	forecast, ok := res.(*omgo.Forecast)
	if !ok || forecast == nil {
		return nil, fmt.Errorf("unexpected forecast result from Open-Meteo API")
	}
	return toData(forecast, coords, o.now())
}

func toData(fc *omgo.Forecast, coords weather.Coordinate, now time.Time) (*weather.Data, error) {
	series := make(map[string][]float64, len(hourlyMetrics))
	for _, metric := range hourlyMetrics {
		values, ok := fc.HourlyMetrics[metric]
		if !ok {
			return nil, fmt.Errorf("Open-Meteo response is missing metric %q", metric)
		}
		if len(values) != len(fc.HourlyTimes) {
			return nil, fmt.Errorf("Open-Meteo metric %q has %d values for %d hours", metric, len(values),
				len(fc.HourlyTimes))
		}
		series[metric] = values
	}

	data := weather.NewData()
	data.GeneratedAt = now
	data.Coordinates = coords

	current := now.Truncate(time.Hour)
	for i, ts := range fc.HourlyTimes {
		switch {
		case ts.Equal(current):
			data.Current = &weather.Record{
				Time:        ts,
				Temperature: series[metricTemperature][i],
				Humidity:    percent(series[metricHumidity][i]),
				WindSpeed:   series[metricWindSpeed][i],
				Clouds:      percent(series[metricCloudCover][i]),
			}
		case ts.After(current):
			data.Forecast[weather.NewDayHour(ts)] = weather.Forecast{
				Time:        ts,
				Temperature: series[metricTemperature][i],
				Humidity:    percent(series[metricHumidity][i]),
				WindSpeed:   series[metricWindSpeed][i],
			}
		}
	}
	if data.Current == nil {
		return data, fmt.Errorf("Open-Meteo response has no data for %s", current.Format(time.RFC3339))
	}
	return data, nil
}

func percent(val float64) int {
	return int(math.Round(val))
}
