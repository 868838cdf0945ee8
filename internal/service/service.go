// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/wneessen/feelslike/internal/config"
	"github.com/wneessen/feelslike/internal/i18n"
	"github.com/wneessen/feelslike/internal/logger"
	"github.com/wneessen/feelslike/internal/preferences"
	"github.com/wneessen/feelslike/internal/presenter"
	"github.com/wneessen/feelslike/internal/temperature"
	"github.com/wneessen/feelslike/internal/template"
	"github.com/wneessen/feelslike/internal/weather"
)

const (
	OutputClass   = "feelslike"
	MeasuredClass = "measured"
	ApparentClass = "apparent"
)

type outputData struct {
	Text    string   `json:"text"`
	Tooltip string   `json:"tooltip"`
	Classes []string `json:"class"`
}

type Service struct {
	SignalSrc signalSource

	config      *config.Config
	logger      *logger.Logger
	t           *i18n.Translator
	prefs       *preferences.Memory
	presenter   *presenter.Presenter
	scheduler   gocron.Scheduler
	templates   *template.Templates
	weatherProv weather.Provider
	now         func() time.Time

	outputLock sync.Mutex
	output     io.Writer

	weatherLock sync.RWMutex
	weather     *weather.Data
}

func New(conf *config.Config, log *logger.Logger, t *i18n.Translator) (*Service, error) {
	if conf == nil {
		return nil, fmt.Errorf("config is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if t == nil {
		return nil, fmt.Errorf("translator is required")
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	tpls, err := template.New(conf, t)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	// Seeded from the config, HandleSignals changes the type at runtime.
	prefs := preferences.NewMemoryFrom(conf)
	var opts []temperature.Option
	if conf.Temperature.SolarIrradiation {
		opts = append(opts, temperature.WithSolarIrradiation())
	}
	calc, err := temperature.New(prefs, t, log, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create temperature calculator: %w", err)
	}
	pres, err := presenter.New(calc, t, int(conf.Weather.ForecastHours)) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	return &Service{
		SignalSrc: stdLibSignalSource{},
		config:    conf,
		logger:    log,
		t:         t,
		prefs:     prefs,
		presenter: pres,
		scheduler: scheduler,
		templates: tpls,
		now:       time.Now,
		output:    os.Stdout,
	}, nil
}

func (s *Service) Run(ctx context.Context) error {
	if s.weatherProv == nil {
		provider, err := s.selectWeatherProvider()
		if err != nil {
			return fmt.Errorf("failed to create weather provider: %w", err)
		}
		s.weatherProv = provider
	}
	s.logger.Info(s.t.Get("starting feelslike service"), slog.String("provider", s.weatherProv.Name()),
		slog.String("language", s.t.Language().String()))

	if err := s.createScheduledJob(ctx, s.config.Intervals.Output, s.printWeather,
		"weatherdata_output_job"); err != nil {
		return err
	}
	if err := s.createScheduledJob(ctx, s.config.Intervals.WeatherUpdate, s.fetchWeather,
		"weather_update_job", gocron.WithStartAt(gocron.WithStartImmediately())); err != nil {
		return err
	}
	s.scheduler.Start()

	sigChan := make(chan os.Signal, 1)
	s.SignalSrc.Notify(sigChan, syscall.SIGUSR1)
	defer s.SignalSrc.Stop(sigChan)
	go s.HandleSignals(ctx, sigChan)

	<-ctx.Done()
	s.logger.Info(s.t.Get("shutting down feelslike service"))
	return s.scheduler.Shutdown()
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string, opts ...gocron.JobOption,
) error {
	opts = append([]gocron.JobOption{
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	}, opts...)
	if _, err := s.scheduler.NewJob(gocron.DurationJob(interval), gocron.NewTask(task), opts...); err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

// printWeather renders the latest weather data with the configured templates and writes it as
// a single JSON line to the output.
func (s *Service) printWeather(context.Context) {
	s.weatherLock.RLock()
	data := s.weather
	s.weatherLock.RUnlock()
	if data == nil {
		s.logger.Debug("no weather data available yet")
		return
	}

	tplCtx := s.presenter.BuildContext(data, s.now())
	textBuf := bytes.NewBuffer(nil)
	if err := s.templates.Text.Execute(textBuf, tplCtx); err != nil {
		s.logger.Error("failed to render text template", logger.Err(err))
		return
	}
	tooltipBuf := bytes.NewBuffer(nil)
	if err := s.templates.Tooltip.Execute(tooltipBuf, tplCtx); err != nil {
		s.logger.Error("failed to render tooltip template", logger.Err(err))
		return
	}

	output := outputData{
		Text:    textBuf.String(),
		Tooltip: tooltipBuf.String(),
		Classes: []string{OutputClass, s.primaryClass()},
	}

	s.outputLock.Lock()
	defer s.outputLock.Unlock()
	if err := json.NewEncoder(s.output).Encode(output); err != nil {
		s.logger.Error("failed to encode weather data", logger.Err(err))
	}
}

// primaryClass names the kind of temperature currently shown as the primary value.
func (s *Service) primaryClass() string {
	switch preferences.Load(s.prefs).Type {
	case preferences.AppearanceOnly, preferences.MeasuredAppearancePrimaryAppearance:
		return ApparentClass
	default:
		return MeasuredClass
	}
}
