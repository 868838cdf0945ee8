// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/wneessen/feelslike/internal/i18n"
	"github.com/wneessen/feelslike/internal/temperature"
	"github.com/wneessen/feelslike/internal/weather"
)

// ForecastView is a single forecast entry prepared for the templates.
type ForecastView struct {
	Time        time.Time
	Temperature string
	Value       float64
}

type TemplateContext struct {
	Latitude  float64
	Longitude float64

	Temperature       string
	SecondTemperature string
	SecondLabel       string
	Unit              string
	Humidity          int
	WindSpeed         float64
	WindChill         float64

	UpdateTime  time.Time
	UpdatedAgo  string
	SunriseTime time.Time
	SunsetTime  time.Time
	IsDaytime   bool

	Forecast []ForecastView
}

type Presenter struct {
	calc  *temperature.Calculator
	t     *i18n.Translator
	hours int
}

func New(calc *temperature.Calculator, t *i18n.Translator, forecastHours int) (*Presenter, error) {
	if calc == nil {
		return nil, fmt.Errorf("temperature calculator is required")
	}
	if t == nil {
		return nil, fmt.Errorf("translator is required")
	}
	if forecastHours < 0 {
		return nil, fmt.Errorf("invalid number of forecast hours: %d", forecastHours)
	}
	return &Presenter{calc: calc, t: t, hours: forecastHours}, nil
}

// BuildContext renders data as seen at now. A nil data or a missing current record yields a
// context with empty temperature strings.
func (p *Presenter) BuildContext(data *weather.Data, now time.Time) TemplateContext {
	ctx := TemplateContext{Unit: p.calc.UnitGlyph()}
	if data == nil {
		return ctx
	}

	lat, lon := data.Coordinates.Lat, data.Coordinates.Lon
	ctx.Latitude = lat
	ctx.Longitude = lon
	ctx.UpdateTime = data.GeneratedAt
	if !data.GeneratedAt.IsZero() {
		ctx.UpdatedAgo = p.t.NaturalTime(data.GeneratedAt)
	}

	ctx.SunriseTime, ctx.SunsetTime = sunrise.SunriseSunset(lat, lon, now.Year(), now.Month(), now.Day())
	ctx.IsDaytime = now.After(ctx.SunriseTime) && now.Before(ctx.SunsetTime)

	if rec := data.Current; rec != nil {
		ctx.Temperature, _ = p.calc.TemperatureValue(rec, lat, now)
		ctx.SecondTemperature, _ = p.calc.SecondTemperatureValue(rec, lat, now)
		ctx.SecondLabel, _ = p.calc.SecondTemperatureLabel(rec, lat, now)
		ctx.Humidity = rec.Humidity
		ctx.WindSpeed = rec.WindSpeed
		ctx.WindChill = temperature.CanadianWindChill(rec.Temperature, rec.WindSpeed)
	}

	for _, fc := range data.Upcoming(now, p.hours) {
		val, ok := p.calc.ForecastedTemperatureValue(&fc)
		if !ok {
			continue
		}
		ctx.Forecast = append(ctx.Forecast, ForecastView{
			Time:        fc.Time,
			Temperature: val,
			Value:       p.calc.DisplayTemperature(&fc),
		})
	}
	return ctx
}
