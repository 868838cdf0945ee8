// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hectormalot/omgo"

	"github.com/wneessen/feelslike/internal/logger"
	"github.com/wneessen/feelslike/internal/weather"
)

const (
	testLat = 50.95099552
	testLon = 6.929531592
)

var testNow = time.Date(2025, 6, 21, 12, 34, 0, 0, time.UTC)

type mockForecaster struct {
	forecast *omgo.Forecast
	err      error
	calls    int
	opts     *omgo.Options
}

func (m *mockForecaster) Forecast(_ context.Context, _ omgo.Location, opts *omgo.Options) (*omgo.Forecast, error) {
	m.calls++
	m.opts = opts
	return m.forecast, m.err
}

func TestNew(t *testing.T) {
	t.Run("new provider succeeds", func(t *testing.T) {
		var client weather.Provider
		client, err := New(testLogger())
		if err != nil {
			t.Fatalf("failed to create client: %s", err)
		}
		if client.Name() != name {
			t.Errorf("expected name to be %q, got %q", name, client.Name())
		}
	})
	t.Run("nil logger fails", func(t *testing.T) {
		if _, err := New(nil); err == nil {
			t.Fatal("expected provider creation to fail")
		}
	})
	t.Run("nil client fails", func(t *testing.T) {
		if _, err := newWithClient(nil, testLogger()); err == nil {
			t.Fatal("expected provider creation to fail")
		}
	})
}

func TestOpenMeteo_GetWeather(t *testing.T) {
	coords := weather.Coordinate{Lat: testLat, Lon: testLon}
	t.Run("current hour and forecast are mapped", func(t *testing.T) {
		mock := &mockForecaster{forecast: testForecast()}
		provider := testProvider(t, mock)

		data, err := provider.GetWeather(t.Context(), coords)
		if err != nil {
			t.Fatalf("failed to get weather: %s", err)
		}
		if mock.opts.WindspeedUnit != "ms" || mock.opts.TemperatureUnit != "celsius" {
			t.Errorf("unexpected units requested: %s/%s", mock.opts.TemperatureUnit, mock.opts.WindspeedUnit)
		}
		if data.Current == nil {
			t.Fatal("expected current record to be set")
		}
		if data.Current.Temperature != 20.5 {
			t.Errorf("expected current temperature to be 20.5, got %f", data.Current.Temperature)
		}
		if data.Current.Humidity != 51 {
			t.Errorf("expected humidity to be rounded to 51, got %d", data.Current.Humidity)
		}
		if data.Current.Clouds != 75 {
			t.Errorf("expected clouds to be 75, got %d", data.Current.Clouds)
		}
		if data.Current.WindSpeed != 2.1 {
			t.Errorf("expected wind speed to be 2.1, got %f", data.Current.WindSpeed)
		}
		if len(data.Forecast) != 2 {
			t.Fatalf("expected 2 forecast entries, got %d", len(data.Forecast))
		}
		fc, ok := data.Forecast[weather.NewDayHour(testNow.Add(time.Hour))]
		if !ok {
			t.Fatal("expected forecast for the next hour")
		}
		if fc.Temperature != 21.0 || fc.Humidity != 48 {
			t.Errorf("unexpected forecast values: %+v", fc)
		}
		if data.Coordinates != coords {
			t.Errorf("expected coordinates %v, got %v", coords, data.Coordinates)
		}
		if !data.GeneratedAt.Equal(testNow) {
			t.Errorf("expected generated at %s, got %s", testNow, data.GeneratedAt)
		}
	})
	t.Run("invalid coordinates fail without request", func(t *testing.T) {
		mock := &mockForecaster{forecast: testForecast()}
		provider := testProvider(t, mock)
		if _, err := provider.GetWeather(t.Context(), weather.Coordinate{Lat: 91}); err == nil {
			t.Fatal("expected request to fail")
		}
		if mock.calls != 0 {
			t.Errorf("expected no API calls, got %d", mock.calls)
		}
	})
	t.Run("client error is wrapped", func(t *testing.T) {
		clientErr := errors.New("connection refused")
		provider := testProvider(t, &mockForecaster{err: clientErr})
		_, err := provider.GetWeather(t.Context(), coords)
		if !errors.Is(err, clientErr) {
			t.Errorf("expected error to wrap %q, got %v", clientErr, err)
		}
	})
	t.Run("nil forecast fails", func(t *testing.T) {
		provider := testProvider(t, &mockForecaster{})
		if _, err := provider.GetWeather(t.Context(), coords); err == nil {
			t.Fatal("expected request to fail")
		}
	})
	t.Run("circuit opens after consecutive failures", func(t *testing.T) {
		mock := &mockForecaster{err: errors.New("server error")}
		provider := testProvider(t, mock)
		for i := 0; i < 3; i++ {
			if _, err := provider.GetWeather(t.Context(), coords); err == nil {
				t.Fatal("expected request to fail")
			}
		}
		_, err := provider.GetWeather(t.Context(), coords)
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected error to be %q, got %v", ErrUnavailable, err)
		}
		if mock.calls != 3 {
			t.Errorf("expected 3 API calls, got %d", mock.calls)
		}
	})
}

func TestToData(t *testing.T) {
	coords := weather.Coordinate{Lat: testLat, Lon: testLon}
	t.Run("missing metric fails", func(t *testing.T) {
		fc := testForecast()
		delete(fc.HourlyMetrics, metricCloudCover)
		if _, err := toData(fc, coords, testNow); err == nil {
			t.Fatal("expected conversion to fail")
		}
	})
	t.Run("metric length mismatch fails", func(t *testing.T) {
		fc := testForecast()
		fc.HourlyMetrics[metricHumidity] = fc.HourlyMetrics[metricHumidity][:1]
		if _, err := toData(fc, coords, testNow); err == nil {
			t.Fatal("expected conversion to fail")
		}
	})
	t.Run("missing current hour fails", func(t *testing.T) {
		if _, err := toData(testForecast(), coords, testNow.Add(24*time.Hour)); err == nil {
			t.Fatal("expected conversion to fail")
		}
	})
}

func testForecast() *omgo.Forecast {
	hour := testNow.Truncate(time.Hour)
	return &omgo.Forecast{
		Latitude:  testLat,
		Longitude: testLon,
		HourlyTimes: []time.Time{
			hour.Add(-time.Hour), hour, hour.Add(time.Hour), hour.Add(2 * time.Hour),
		},
		HourlyMetrics: map[string][]float64{
			metricTemperature: {19.0, 20.5, 21.0, 21.4},
			metricHumidity:    {55, 50.6, 48, 47},
			metricWindSpeed:   {1.8, 2.1, 2.4, 3.0},
			metricCloudCover:  {100, 75, 50, 20},
		},
	}
}

func testProvider(t *testing.T, client forecaster) *OpenMeteo {
	t.Helper()
	provider, err := newWithClient(client, testLogger())
	if err != nil {
		t.Fatalf("failed to create provider: %s", err)
	}
	provider.now = func() time.Time { return testNow }
	return provider
}

func testLogger() *logger.Logger {
	return logger.NewLogger(slog.LevelError, io.Discard)
}
