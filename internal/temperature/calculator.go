// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package temperature computes apparent temperatures and renders temperatures for display
// according to the user's unit and temperature type preferences.
package temperature

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/wneessen/feelslike/internal/i18n"
	"github.com/wneessen/feelslike/internal/logger"
	"github.com/wneessen/feelslike/internal/preferences"
	"github.com/wneessen/feelslike/internal/weather"
)

const (
	GlyphCelsius    = "°C"
	GlyphFahrenheit = "°F"

	SignApparent = "~"
	SignPositive = "+"

	labelApparent = "Feels like %s"
	labelMeasured = "Measured %s"
)

type slot int

const (
	slotPrimary slot = iota
	slotSecond
)

type displayRule struct {
	useApparent bool
	sign        string
	suppressed  bool
}

// displayRules maps each temperature type to the rule for the primary and the second value.
var displayRules = map[preferences.TemperatureType][2]displayRule{
	preferences.MeasuredOnly: {
		{},
		{suppressed: true},
	},
	preferences.AppearanceOnly: {
		{useApparent: true, sign: SignApparent},
		{suppressed: true},
	},
	preferences.MeasuredAppearancePrimaryMeasured: {
		{},
		{useApparent: true, sign: SignApparent},
	},
	preferences.MeasuredAppearancePrimaryAppearance: {
		{useApparent: true, sign: SignApparent},
		{},
	},
}

// Calculator formats temperatures using the preferences read from its store on every call.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	prefs  preferences.Store
	t      *i18n.Translator
	logger *logger.Logger
	solar  bool
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithSolarIrradiation makes the weather record formatters use
// ApparentTemperatureWithSolarIrradiation. Forecast values are not affected.
func WithSolarIrradiation() Option {
	return func(c *Calculator) {
		c.solar = true
	}
}

func New(prefs preferences.Store, t *i18n.Translator, log *logger.Logger, opts ...Option) (*Calculator, error) {
	if prefs == nil {
		return nil, fmt.Errorf("preference store is required")
	}
	if t == nil {
		return nil, fmt.Errorf("translator is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	calc := &Calculator{prefs: prefs, t: t, logger: log}
	for _, opt := range opts {
		opt(calc)
	}
	return calc, nil
}

// SecondTemperatureLabel returns the localized label for the second temperature, e.g.
// "Feels like ~21°C". It returns false if rec is nil or the temperature type shows only one
// value.
func (c *Calculator) SecondTemperatureLabel(rec *weather.Record, latitude float64, ts time.Time) (string, bool) {
	if rec == nil {
		return "", false
	}
	snap := c.snapshot()
	rule := ruleFor(snap.Type, slotSecond)
	if rule.suppressed {
		return "", false
	}
	value, ok := c.format(c.recordValue(rec, rule, latitude, ts), rule, snap, false)
	if !ok {
		return "", false
	}

	label := labelMeasured
	if rule.useApparent {
		label = labelApparent
	}
	return c.t.Getf(label, value), true
}

// SecondTemperatureValue returns the second temperature, e.g. "~21°C". It returns false if
// rec is nil or the temperature type shows only one value.
func (c *Calculator) SecondTemperatureValue(rec *weather.Record, latitude float64, ts time.Time) (string, bool) {
	if rec == nil {
		return "", false
	}
	snap := c.snapshot()
	rule := ruleFor(snap.Type, slotSecond)
	if rule.suppressed {
		return "", false
	}
	return c.format(c.recordValue(rec, rule, latitude, ts), rule, snap, false)
}

// TemperatureValue returns the primary temperature of rec. It returns false only if rec is
// nil or the value cannot be rendered.
func (c *Calculator) TemperatureValue(rec *weather.Record, latitude float64, ts time.Time) (string, bool) {
	if rec == nil {
		return "", false
	}
	snap := c.snapshot()
	rule := ruleFor(snap.Type, slotPrimary)
	return c.format(c.recordValue(rec, rule, latitude, ts), rule, snap, false)
}

// ForecastedTemperatureValue returns the primary temperature of fc. Positive values carry a
// leading "+".
func (c *Calculator) ForecastedTemperatureValue(fc *weather.Forecast) (string, bool) {
	if fc == nil {
		return "", false
	}
	snap := c.snapshot()
	rule := ruleFor(snap.Type, slotPrimary)
	return c.format(forecastValue(fc, rule), rule, snap, true)
}

// UnitGlyph returns the glyph of the configured temperature unit.
func (c *Calculator) UnitGlyph() string {
	return unitGlyph(preferences.Load(c.prefs))
}

// DisplayTemperature returns the primary temperature of fc in the configured unit, without
// rounding. It returns 0 if fc is nil.
func (c *Calculator) DisplayTemperature(fc *weather.Forecast) float64 {
	if fc == nil {
		return 0
	}
	snap := c.snapshot()
	value := forecastValue(fc, ruleFor(snap.Type, slotPrimary))
	if snap.Fahrenheit() {
		return CelsiusToFahrenheit(value)
	}
	return value
}

func (c *Calculator) snapshot() preferences.Snapshot {
	snap := preferences.Load(c.prefs)
	if !snap.Known {
		c.logger.Debug("unrecognized temperature type, showing measured temperature",
			slog.String("temperature_type", snap.RawType))
	}
	return snap
}

func (c *Calculator) recordValue(rec *weather.Record, rule displayRule, latitude float64, ts time.Time) float64 {
	switch {
	case !rule.useApparent:
		return rec.Temperature
	case c.solar:
		return ApparentTemperatureWithSolarIrradiation(rec.Temperature, rec.Humidity, rec.WindSpeed,
			rec.Clouds, latitude, ts)
	default:
		return ApparentTemperature(rec.Temperature, rec.Humidity, rec.WindSpeed)
	}
}

func (c *Calculator) format(value float64, rule displayRule, snap preferences.Snapshot, signPositive bool) (string, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		c.logger.Debug("temperature is not a finite number, skipping output", slog.Float64("value", value))
		return "", false
	}
	// The positive sign follows the Celsius value, whatever the display unit.
	sign := rule.sign
	if signPositive && roundHalfUp(value) > 0 {
		sign += SignPositive
	}
	if snap.Fahrenheit() {
		value = CelsiusToFahrenheit(value)
	}
	return sign + c.t.FormatInt(roundHalfUp(value)) + unitGlyph(snap), true
}

func forecastValue(fc *weather.Forecast, rule displayRule) float64 {
	if !rule.useApparent {
		return fc.Temperature
	}
	return ApparentTemperature(fc.Temperature, fc.Humidity, fc.WindSpeed)
}

func ruleFor(tt preferences.TemperatureType, s slot) displayRule {
	rules, ok := displayRules[tt]
	if !ok {
		rules = displayRules[preferences.MeasuredOnly]
	}
	return rules[s]
}

func unitGlyph(snap preferences.Snapshot) string {
	if snap.Fahrenheit() {
		return GlyphFahrenheit
	}
	return GlyphCelsius
}
