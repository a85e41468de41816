/*
 * Copyright (C) 2020-2026, IrineSistiana
 *
 * This file is part of seqlist.
 *
 * seqlist is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * seqlist is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package coremain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pmkol/seqlist/mlog"
)

var svcCfg = &service.Config{
	Name:        "seqlist",
	DisplayName: "seqlist",
	Description: "A sorted sequence api server.",
}

// svc is set by initService for the service subcommands.
var svc service.Service

type serverService struct {
	f *serverFlags

	cancel context.CancelFunc
	done   chan error
}

func (ss *serverService) Start(s service.Service) error {
	mlog.L().Info("starting service", zap.String("platform", s.Platform()))
	ctx, cancel := context.WithCancel(context.Background())
	ss.cancel = cancel
	ss.done = make(chan error, 1)
	go func() {
		err := StartServer(ctx, ss.f)
		ss.done <- err
		if err != nil {
			mlog.L().Error("server exited", zap.Error(err))
			os.Exit(1)
		}
	}()
	return nil
}

func (ss *serverService) Stop(s service.Service) error {
	mlog.L().Info("service is shutting down")
	if ss.cancel == nil {
		return nil
	}
	ss.cancel()
	return <-ss.done
}

func initService(_ *cobra.Command, _ []string) error {
	s, err := service.New(&serverService{}, svcCfg)
	if err != nil {
		return fmt.Errorf("cannot init service, %w", err)
	}
	svc = s
	return nil
}

func newSvcInstallCmd() *cobra.Command {
	sf := new(serverFlags)
	c := &cobra.Command{
		Use:   "install [-d working_dir] [-c config_file]",
		Short: "Install seqlist as a system service.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(sf.dir) == 0 {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get current working directory, %w", err)
				}
				sf.dir = wd
			}
			if !filepath.IsAbs(sf.dir) {
				abs, err := filepath.Abs(sf.dir)
				if err != nil {
					return fmt.Errorf("cannot resolve working dir, %w", err)
				}
				sf.dir = abs
			}
			svcCfg.Arguments = serviceArgs(sf)
			s, err := service.New(&serverService{f: sf}, svcCfg)
			if err != nil {
				return fmt.Errorf("cannot init service, %w", err)
			}
			return s.Install()
		},
		SilenceUsage: true,
	}
	c.Flags().StringVarP(&sf.dir, "dir", "d", "", "working dir")
	c.Flags().StringVarP(&sf.c, "config", "c", "", "config path")
	return c
}

// serviceArgs are the arguments the service manager passes to seqlist.
func serviceArgs(sf *serverFlags) []string {
	args := []string{"start", "--as-service", "-d", sf.dir}
	if len(sf.c) > 0 {
		args = append(args, "-c", sf.c)
	}
	return args
}

func newSvcUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Uninstall seqlist from system service.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return svc.Uninstall()
		},
		SilenceUsage: true,
	}
}

func newSvcStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start seqlist system service.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return svc.Start()
		},
		SilenceUsage: true,
	}
}

func newSvcStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop seqlist system service.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return svc.Stop()
		},
		SilenceUsage: true,
	}
}

func newSvcRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart seqlist system service.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return svc.Restart()
		},
		SilenceUsage: true,
	}
}

func newSvcStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Status of seqlist system service.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := svc.Status()
			if err != nil {
				if errors.Is(err, service.ErrNotInstalled) {
					fmt.Fprintln(cmd.OutOrStdout(), "not installed")
					return nil
				}
				return fmt.Errorf("cannot get service status, %w", err)
			}
			var out string
			switch s {
			case service.StatusRunning:
				out = "running"
			case service.StatusStopped:
				out = "stopped"
			default:
				out = "unknown"
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
		SilenceUsage: true,
	}
}
