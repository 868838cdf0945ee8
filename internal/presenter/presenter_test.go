// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/wneessen/feelslike/internal/i18n"
	"github.com/wneessen/feelslike/internal/logger"
	"github.com/wneessen/feelslike/internal/preferences"
	"github.com/wneessen/feelslike/internal/temperature"
	"github.com/wneessen/feelslike/internal/weather"
)

var (
	now    = time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC)
	coords = weather.Coordinate{Lat: 50.95099552, Lon: 6.929531592}
)

func TestNew(t *testing.T) {
	calc, tr := testDeps(t, string(preferences.MeasuredOnly), "celsius")
	t.Run("creating a new presenter succeeds", func(t *testing.T) {
		if _, err := New(calc, tr, 3); err != nil {
			t.Fatalf("failed to create presenter: %s", err)
		}
	})
	t.Run("missing calculator fails", func(t *testing.T) {
		if _, err := New(nil, tr, 3); err == nil {
			t.Fatal("expected presenter creation to fail")
		}
	})
	t.Run("missing translator fails", func(t *testing.T) {
		if _, err := New(calc, nil, 3); err == nil {
			t.Fatal("expected presenter creation to fail")
		}
	})
	t.Run("negative forecast hours fail", func(t *testing.T) {
		if _, err := New(calc, tr, -1); err == nil {
			t.Fatal("expected presenter creation to fail")
		}
	})
}

func TestPresenter_BuildContext(t *testing.T) {
	t.Run("nil data yields empty context", func(t *testing.T) {
		p := testPresenter(t, string(preferences.MeasuredAppearancePrimaryMeasured), "celsius", 3)
		ctx := p.BuildContext(nil, now)
		if ctx.Temperature != "" || ctx.SecondTemperature != "" || len(ctx.Forecast) != 0 {
			t.Errorf("expected empty context, got %+v", ctx)
		}
		if ctx.Unit != "°C" {
			t.Errorf("expected unit to be %q, got %q", "°C", ctx.Unit)
		}
	})
	t.Run("primary measured with apparent second value", func(t *testing.T) {
		p := testPresenter(t, string(preferences.MeasuredAppearancePrimaryMeasured), "celsius", 2)
		ctx := p.BuildContext(testData(), now)

		if ctx.Temperature != "20°C" {
			t.Errorf("expected temperature to be %q, got %q", "20°C", ctx.Temperature)
		}
		if ctx.SecondTemperature != "~18°C" {
			t.Errorf("expected second temperature to be %q, got %q", "~18°C", ctx.SecondTemperature)
		}
		if ctx.SecondLabel != "Feels like ~18°C" {
			t.Errorf("expected second label to be %q, got %q", "Feels like ~18°C", ctx.SecondLabel)
		}
		if ctx.Latitude != coords.Lat || ctx.Longitude != coords.Lon {
			t.Errorf("expected coordinates %v, got %f/%f", coords, ctx.Latitude, ctx.Longitude)
		}
		if ctx.Humidity != 50 || ctx.WindSpeed != 2 {
			t.Errorf("unexpected humidity/wind speed: %d/%f", ctx.Humidity, ctx.WindSpeed)
		}
		if ctx.UpdatedAgo == "" {
			t.Error("expected updated ago string to be set")
		}
		if len(ctx.Forecast) != 2 {
			t.Fatalf("expected 2 forecast entries, got %d", len(ctx.Forecast))
		}
		if ctx.Forecast[0].Temperature != "+3°C" {
			t.Errorf("expected first forecast to be %q, got %q", "+3°C", ctx.Forecast[0].Temperature)
		}
		if ctx.Forecast[1].Temperature != "-1°C" {
			t.Errorf("expected second forecast to be %q, got %q", "-1°C", ctx.Forecast[1].Temperature)
		}
		if !ctx.Forecast[0].Time.Before(ctx.Forecast[1].Time) {
			t.Error("expected forecast entries to be ordered by time")
		}
		if ctx.Forecast[0].Value != 3.2 {
			t.Errorf("expected first forecast value to be 3.2, got %f", ctx.Forecast[0].Value)
		}
	})
	t.Run("measured only in fahrenheit suppresses second value", func(t *testing.T) {
		p := testPresenter(t, string(preferences.MeasuredOnly), "fahrenheit", 3)
		ctx := p.BuildContext(testData(), now)
		if ctx.Temperature != "68°F" {
			t.Errorf("expected temperature to be %q, got %q", "68°F", ctx.Temperature)
		}
		if ctx.SecondTemperature != "" || ctx.SecondLabel != "" {
			t.Errorf("expected second temperature to be suppressed, got %q/%q", ctx.SecondTemperature,
				ctx.SecondLabel)
		}
		if ctx.Unit != "°F" {
			t.Errorf("expected unit to be %q, got %q", "°F", ctx.Unit)
		}
		if len(ctx.Forecast) != 3 {
			t.Errorf("expected 3 forecast entries, got %d", len(ctx.Forecast))
		}
	})
	t.Run("missing current record keeps forecast", func(t *testing.T) {
		p := testPresenter(t, string(preferences.AppearanceOnly), "celsius", 1)
		data := testData()
		data.Current = nil
		ctx := p.BuildContext(data, now)
		if ctx.Temperature != "" {
			t.Errorf("expected empty temperature, got %q", ctx.Temperature)
		}
		if len(ctx.Forecast) != 1 {
			t.Errorf("expected 1 forecast entry, got %d", len(ctx.Forecast))
		}
	})
	t.Run("sunrise and sunset are computed for the location", func(t *testing.T) {
		p := testPresenter(t, string(preferences.MeasuredOnly), "celsius", 3)
		ctx := p.BuildContext(testData(), now)
		if ctx.SunriseTime.IsZero() || ctx.SunsetTime.IsZero() {
			t.Fatal("expected sunrise and sunset to be set")
		}
		if !ctx.SunriseTime.Before(ctx.SunsetTime) {
			t.Errorf("expected sunrise %s before sunset %s", ctx.SunriseTime, ctx.SunsetTime)
		}
		if !ctx.IsDaytime {
			t.Error("expected noon to be daytime")
		}
		night := p.BuildContext(testData(), now.Add(-11*time.Hour))
		if night.IsDaytime {
			t.Error("expected 01:00 UTC to be nighttime")
		}
	})
}

func testData() *weather.Data {
	data := weather.NewData()
	data.GeneratedAt = now.Add(-5 * time.Minute)
	data.Coordinates = coords
	data.Current = &weather.Record{
		Time:        now,
		Temperature: 20,
		Humidity:    50,
		WindSpeed:   2,
		Clouds:      40,
	}
	for i, temp := range []float64{12, 3.2, -1.0, 5, 7} {
		ts := now.Add(time.Duration(i) * time.Hour)
		data.Forecast[weather.NewDayHour(ts)] = weather.Forecast{
			Time:        ts,
			Temperature: temp,
			Humidity:    50,
			WindSpeed:   0,
		}
	}
	return data
}

func testPresenter(t *testing.T, tt, units string, hours int) *Presenter {
	t.Helper()
	calc, tr := testDeps(t, tt, units)
	p, err := New(calc, tr, hours)
	if err != nil {
		t.Fatalf("failed to create presenter: %s", err)
	}
	return p
}

func testDeps(t *testing.T, tt, units string) (*temperature.Calculator, *i18n.Translator) {
	t.Helper()
	tr, err := i18n.New("en")
	if err != nil {
		t.Fatalf("failed to create translator: %s", err)
	}
	mem := preferences.NewMemory()
	mem.Set(preferences.KeyTemperatureType, tt)
	mem.Set(preferences.KeyTemperatureUnits, units)
	calc, err := temperature.New(mem, tr, logger.NewLogger(slog.LevelError, io.Discard))
	if err != nil {
		t.Fatalf("failed to create calculator: %s", err)
	}
	return calc, tr
}
