// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package temperature

import (
	"math"
	"time"
)

const (
	// SolarConstant is the solar irradiance at the top of the atmosphere in W/m².
	SolarConstant = 1395

	TransmissionClearDay = 0.81
	TransmissionCloudy   = 0.62
)

// vaporPressure returns the water vapour pressure in hPa for the given dry-bulb temperature
// in °C and relative humidity in percent.
func vaporPressure(dryBulb float64, humidity int) float64 {
	return float64(humidity) / 100 * 6.105 * math.Exp((17.27*dryBulb)/(237.7+dryBulb))
}

// ApparentTemperature returns the apparent temperature in °C for a dry-bulb temperature in °C,
// relative humidity in percent and wind speed in m/s, ignoring solar irradiation.
func ApparentTemperature(dryBulb float64, humidity int, windSpeed float64) float64 {
	e := vaporPressure(dryBulb, humidity)
	return dryBulb + (0.33 * e) - (0.70 * windSpeed) - 4.00
}

// ApparentTemperatureWithSolarIrradiation extends ApparentTemperature with an estimate of the
// absorbed solar radiation. cloudiness is applied as a raw multiplier to the blend between
// the cloudy and the clear-day transmission coefficient.
func ApparentTemperatureWithSolarIrradiation(dryBulb float64, humidity int, windSpeed float64,
	cloudiness int, latitude float64, ts time.Time,
) float64 {
	e := vaporPressure(dryBulb, humidity)
	cosZenith := math.Cos(ZenithAngle(latitude, ts))
	transmission := TransmissionCloudy + (TransmissionClearDay-TransmissionCloudy)*float64(cloudiness)
	q := (SolarConstant * cosZenith * math.Pow(transmission, 1/cosZenith)) / 16
	return dryBulb + (0.348 * e) - (0.70 * windSpeed) + ((0.70 * math.Abs(q)) / (windSpeed + 10)) - 4.25
}

// ZenithAngle returns the solar zenith angle estimate used by the solar irradiation formula.
// Day of year, hour and minute are read in the location of ts. Angles are fed to the
// trigonometric functions unconverted.
func ZenithAngle(latitude float64, ts time.Time) float64 {
	dayOfYear := float64(ts.YearDay())
	declination := -23.44 * math.Cos(360.0/365.0*(9+dayOfYear))
	hourAngle := float64(ts.Hour())*(360.0/24.0) + float64(ts.Minute())*(360.0/1440.0)
	return math.Acos(math.Sin(latitude)*math.Sin(declination)) +
		(math.Cos(latitude)*math.Cos(declination) + math.Cos(hourAngle))
}

// CanadianWindChill returns the wind chill index for a dry-bulb temperature in °C and a wind
// speed as used by the Canadian standard formula.
func CanadianWindChill(dryBulb, windSpeed float64) float64 {
	w := math.Pow(windSpeed, 0.16)
	return 13.12 + (0.6215 * dryBulb) - (13.37 * w) + (0.486 * dryBulb * w)
}

// CelsiusToFahrenheit converts a temperature from °C to °F.
func CelsiusToFahrenheit(c float64) float64 {
	return c*1.8 + 32
}

// roundHalfUp rounds v to the nearest integer, with halves rounded towards positive infinity.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
