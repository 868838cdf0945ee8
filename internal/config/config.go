// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kkyr/fig"

	"github.com/wneessen/feelslike/internal/preferences"
)

const (
	configEnv         = "FEELSLIKE"
	dotEnvFile        = ".env"
	DefaultTextTpl    = "{{.Temperature}}"
	DefaultTooltipTpl = "{{loc \"temp\"}}: {{.Temperature}}" +
		"{{if .SecondLabel}}\n{{.SecondLabel}}{{end}}\n" +
		"{{loc \"sunrise\"}}: {{timeFormat .SunriseTime \"15:04\"}}\n" +
		"{{loc \"sunset\"}}: {{timeFormat .SunsetTime \"15:04\"}}\n" +
		"{{range .Forecast}}\n{{timeFormat .Time \"15:04\"}}  {{pad .Temperature 8}}{{end}}\n" +
		"{{loc \"updated\"}}: {{.UpdatedAgo}}"
)

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Temperature struct {
		// Allowed values: measured_only, appearance_only, measured_appearance_primary_measured,
		// measured_appearance_primary_appearance. Other values fall back to measured_only.
		Type string `fig:"type" default:"measured_only"`
		// Any value containing "fahrenheit" selects Fahrenheit.
		Units            string `fig:"units" default:"celsius"`
		SolarIrradiation bool   `fig:"solar_irradiation"`
	} `fig:"temperature"`

	Location struct {
		Latitude  float64 `fig:"latitude"`
		Longitude float64 `fig:"longitude"`
	} `fig:"location"`

	Weather struct {
		// Allowed value: open-meteo
		Provider string `fig:"provider" default:"open-meteo"`
		// Allowed value: 1 to 24
		ForecastHours uint `fig:"forecast_hours" default:"3"`
	} `fig:"weather"`

	Intervals struct {
		WeatherUpdate time.Duration `fig:"weather_update" default:"15m"`
		Output        time.Duration `fig:"output" default:"30s"`
	} `fig:"intervals"`

	Templates struct {
		Text    string `fig:"text"`
		Tooltip string `fig:"tooltip"`
	} `fig:"templates"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = loadDotEnv(); err != nil {
		return conf, err
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := loadDotEnv(); err != nil {
		return conf, err
	}
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("invalid latitude: %f", c.Location.Latitude)
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("invalid longitude: %f", c.Location.Longitude)
	}
	if c.Weather.ForecastHours < 1 || c.Weather.ForecastHours > 24 {
		return fmt.Errorf("invalid forcast hours: %d", c.Weather.ForecastHours)
	}
	if c.Intervals.WeatherUpdate <= 0 || c.Intervals.Output <= 0 {
		return fmt.Errorf("intervals must be positive")
	}
	if c.Templates.Text == "" {
		c.Templates.Text = DefaultTextTpl
	}
	if c.Templates.Tooltip == "" {
		c.Templates.Tooltip = DefaultTooltipTpl
	}

	return nil
}

// GetString returns the configured value for a preference key, or def if the key is unknown
// or empty.
func (c *Config) GetString(key, def string) string {
	var val string
	switch key {
	case preferences.KeyTemperatureType:
		val = c.Temperature.Type
	case preferences.KeyTemperatureUnits:
		val = c.Temperature.Units
	}
	if val == "" {
		return def
	}
	return val
}

// loadDotEnv populates the environment from a .env file in the working directory, if present.
// Variables that are already set are not overridden.
func loadDotEnv() error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s file: %w", dotEnvFile, err)
	}
	return nil
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
