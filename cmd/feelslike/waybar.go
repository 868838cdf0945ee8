// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wneessen/feelslike/internal/logger"
	"github.com/wneessen/feelslike/internal/service"
)

func newWaybarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "waybar",
		Short: "Run as a waybar custom module printing JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			serv, err := service.New(a.conf, a.log, a.t)
			if err != nil {
				a.log.Error("failed to initialize feelslike service", logger.Err(err))
				return err
			}
			a.log.Debug("service initialized", slog.String("version", version),
				slog.String("commit", commit), slog.String("date", date))
			if err = serv.Run(cmd.Context()); err != nil {
				a.log.Error("failed to run feelslike service", logger.Err(err))
				return err
			}
			return nil
		},
	}
}
