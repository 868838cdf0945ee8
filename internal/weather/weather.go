// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Provider is implemented by each weather API backend.
type Provider interface {
	Name() string
	GetWeather(ctx context.Context, coords Coordinate) (*Data, error)
}

// Coordinate is a geographic position in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Data is the result of a single provider request.
type Data struct {
	GeneratedAt time.Time
	Coordinates Coordinate

	Current  *Record
	Forecast map[DayHour]Forecast
}

// Record is a measured weather observation. Temperatures are in °C, wind speed in m/s.
type Record struct {
	Time        time.Time
	Temperature float64
	Humidity    int
	WindSpeed   float64
	// Clouds is the cloud cover as reported by the provider, in percent.
	Clouds int
}

// Forecast is a forecasted weather value for a single hour.
type Forecast struct {
	Time        time.Time
	Temperature float64
	Humidity    int
	WindSpeed   float64
}

type DayHour int64

func NewData() *Data {
	return &Data{
		Forecast: make(map[DayHour]Forecast),
	}
}

func NewDayHour(t time.Time) DayHour {
	return DayHour(t.Truncate(time.Hour).Unix())
}

func (t DayHour) Time() time.Time {
	return time.Unix(int64(t), 0)
}

// Upcoming returns up to hours forecasts strictly after from, ordered by time.
func (d *Data) Upcoming(from time.Time, hours int) []Forecast {
	list := make([]Forecast, 0, len(d.Forecast))
	for _, fc := range d.Forecast {
		if fc.Time.After(from) {
			list = append(list, fc)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Time.Before(list[j].Time)
	})
	if len(list) > hours {
		list = list[:hours]
	}
	return list
}

// Validate checks that c lies within the valid latitude and longitude ranges.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("invalid latitude: %f", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("invalid longitude: %f", c.Lon)
	}
	return nil
}
