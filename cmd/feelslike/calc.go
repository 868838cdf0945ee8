// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/wneessen/feelslike/internal/config"
	"github.com/wneessen/feelslike/internal/i18n"
	"github.com/wneessen/feelslike/internal/logger"
	"github.com/wneessen/feelslike/internal/preferences"
	"github.com/wneessen/feelslike/internal/temperature"
	"github.com/wneessen/feelslike/internal/weather"
)

const (
	labelWidth = 28
	valueWidth = 10
	emptyValue = "-"
)

type calcInput struct {
	Temperature float64
	Humidity    int
	WindSpeed   float64
	Clouds      int
	Latitude    float64
	Time        time.Time
}

func newCalcCmd(a *app) *cobra.Command {
	var (
		in      calcInput
		tsValue string
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate apparent temperatures and show them for every temperature type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ts, err := parseCalcTime(tsValue)
			if err != nil {
				return err
			}
			in.Time = ts
			return runCalc(cmd.OutOrStdout(), a.conf, a.log, a.t, in)
		},
	}
	cmd.Flags().Float64Var(&in.Temperature, "temp", 0, "measured dry bulb temperature in °C")
	cmd.Flags().IntVar(&in.Humidity, "humidity", 0, "relative humidity in percent")
	cmd.Flags().Float64Var(&in.WindSpeed, "wind", 0, "wind speed in m/s")
	cmd.Flags().IntVar(&in.Clouds, "clouds", 0, "cloudiness factor used by the solar formula")
	cmd.Flags().Float64Var(&in.Latitude, "lat", 0, "latitude used by the solar formula")
	cmd.Flags().StringVar(&tsValue, "time", "", "time of the measurement in RFC 3339 format (default: now)")
	_ = cmd.MarkFlagRequired("temp")
	_ = cmd.MarkFlagRequired("humidity")
	_ = cmd.MarkFlagRequired("wind")
	return cmd
}

// parseCalcTime parses an RFC 3339 time into the host's local zone. An empty value means now.
func parseCalcTime(val string) (time.Time, error) {
	if val == "" {
		return time.Now(), nil
	}
	ts, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", val, err)
	}
	return ts.Local(), nil
}

func (in calcInput) validate() error {
	if !finite(in.Temperature, in.WindSpeed, in.Latitude) {
		return fmt.Errorf("temperature, wind speed and latitude must be finite numbers")
	}
	if in.Humidity < 0 || in.Humidity > 100 {
		return fmt.Errorf("invalid humidity: %d", in.Humidity)
	}
	if in.WindSpeed < 0 {
		return fmt.Errorf("invalid wind speed: %f", in.WindSpeed)
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		return fmt.Errorf("invalid latitude: %f", in.Latitude)
	}
	return nil
}

// runCalc prints the raw formula results followed by one row per temperature type with the
// primary, second and forecast strings as they would be displayed.
func runCalc(w io.Writer, conf *config.Config, log *logger.Logger, t *i18n.Translator, in calcInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	apparent := temperature.ApparentTemperature(in.Temperature, in.Humidity, in.WindSpeed)
	solar := temperature.ApparentTemperatureWithSolarIrradiation(in.Temperature, in.Humidity, in.WindSpeed,
		in.Clouds, in.Latitude, in.Time)
	rows := [][2]string{
		{t.Get("Temperature"), fmt.Sprintf("%.2f", in.Temperature)},
		{t.Get("Feels like"), fmt.Sprintf("%.2f", apparent)},
		{t.Get("Feels like") + " (solar)", fmt.Sprintf("%.2f", solar)},
		{t.Get("Wind chill"), fmt.Sprintf("%.2f", temperature.CanadianWindChill(in.Temperature, in.WindSpeed))},
		{"Zenith angle", fmt.Sprintf("%.4f", temperature.ZenithAngle(in.Latitude, in.Time))},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s%s\n", runewidth.FillRight(row[0]+":", labelWidth), row[1]); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	var opts []temperature.Option
	if conf.Temperature.SolarIrradiation {
		opts = append(opts, temperature.WithSolarIrradiation())
	}
	rec := &weather.Record{
		Time:        in.Time,
		Temperature: in.Temperature,
		Humidity:    in.Humidity,
		WindSpeed:   in.WindSpeed,
		Clouds:      in.Clouds,
	}
	fc := &weather.Forecast{
		Time:        in.Time,
		Temperature: in.Temperature,
		Humidity:    in.Humidity,
		WindSpeed:   in.WindSpeed,
	}

	typeWidth := 0
	for _, tt := range preferences.TemperatureTypes {
		typeWidth = max(typeWidth, runewidth.StringWidth(string(tt)))
	}
	typeWidth += 2
	header := runewidth.FillRight("TYPE", typeWidth) + runewidth.FillRight("PRIMARY", valueWidth) +
		runewidth.FillRight("SECOND", valueWidth) + "FORECAST"
	if _, err := fmt.Fprintln(w, header); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	for _, tt := range preferences.TemperatureTypes {
		mem := preferences.NewMemory()
		mem.Set(preferences.KeyTemperatureType, string(tt))
		mem.Set(preferences.KeyTemperatureUnits, conf.Temperature.Units)
		calc, err := temperature.New(mem, t, log, opts...)
		if err != nil {
			return fmt.Errorf("failed to create temperature calculator: %w", err)
		}

		primary := valueOrEmpty(calc.TemperatureValue(rec, in.Latitude, in.Time))
		second := valueOrEmpty(calc.SecondTemperatureValue(rec, in.Latitude, in.Time))
		forecast := valueOrEmpty(calc.ForecastedTemperatureValue(fc))
		line := runewidth.FillRight(string(tt), typeWidth) + runewidth.FillRight(primary, valueWidth) +
			runewidth.FillRight(second, valueWidth) + forecast
		if _, err = fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func valueOrEmpty(val string, ok bool) string {
	if !ok || val == "" {
		return emptyValue
	}
	return val
}

// finite reports whether all values are usable numbers.
func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
