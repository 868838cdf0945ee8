// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/wneessen/feelslike/internal/logger"
	"github.com/wneessen/feelslike/internal/weather"
)

func (s *Service) fetchWeather(ctx context.Context) {
	coords := weather.Coordinate{
		Lat: s.config.Location.Latitude,
		Lon: s.config.Location.Longitude,
	}
	data, err := s.weatherProv.GetWeather(ctx, coords)
	if err != nil {
		s.logger.Error("failed to fetch weather data", logger.Err(err),
			slog.String("source", s.weatherProv.Name()))
		return
	}

	s.weatherLock.Lock()
	s.weather = data
	s.weatherLock.Unlock()
	s.logger.Debug("weather data updated", slog.Time("generated_at", data.GeneratedAt))

	s.printWeather(ctx)
}
