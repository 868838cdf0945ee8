// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package main implements the feelslike command line tool and waybar module.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wneessen/feelslike/internal/config"
	"github.com/wneessen/feelslike/internal/i18n"
	"github.com/wneessen/feelslike/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds the dependencies shared by all sub commands.
type app struct {
	confPath string

	conf *config.Config
	log  *logger.Logger
	t    *i18n.Translator
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := new(app)
	rootCmd := &cobra.Command{
		Use:           "feelslike",
		Short:         "Apparent temperature calculator and waybar module",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.init()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.confPath, "config", "c", "", "path to the config file")
	rootCmd.AddCommand(newCalcCmd(a), newWaybarCmd(a))
	return rootCmd
}

// init loads the config and sets up logging and translations. Errors are logged before they
// are returned, since cobra is told to stay silent.
func (a *app) init() error {
	log := logger.New(slog.LevelError)
	conf, err := loadConfig(a.confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		return err
	}
	a.conf = conf
	a.log = logger.New(conf.LogLevel)

	a.t, err = i18n.New(conf.Locale)
	if err != nil {
		a.log.Error("failed to initialize localizer", logger.Err(err))
		return err
	}
	return nil
}

// loadConfig reads the config from confPath if given, from the default location if a file
// exists there, and from the environment otherwise.
func loadConfig(confPath string) (*config.Config, error) {
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		return config.NewFromFile(path, file)
	}
	return config.New()
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "feelslike", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
