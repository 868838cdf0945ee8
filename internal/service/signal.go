// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/wneessen/feelslike/internal/preferences"
)

type signalSource interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

type stdLibSignalSource struct{}

func (stdLibSignalSource) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (stdLibSignalSource) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}

// HandleSignals swaps the primary and the second temperature whenever a signal is received
// and prints the weather right away.
func (s *Service) HandleSignals(ctx context.Context, sigChan chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sigChan:
			s.prefs.Update(preferences.KeyTemperatureType, preferences.DefaultTemperatureType,
				preferences.SwapPrimary)
			s.logger.Debug("swapped primary temperature", slog.String("temperature_type",
				s.prefs.GetString(preferences.KeyTemperatureType, preferences.DefaultTemperatureType)))
			s.printWeather(ctx)
		}
	}
}
