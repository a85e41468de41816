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
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"strings"
	"syscall"

	"github.com/go-viper/mapstructure/v2"
	"github.com/kardianos/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pmkol/seqlist/mlog"
	"github.com/pmkol/seqlist/pkg/script"
)

// Version is set by ldflags at build time.
var Version = "dev"

type serverFlags struct {
	c         string
	dir       string
	cpu       int
	asService bool
}

type evalFlags struct {
	c     string
	check bool
}

var rootCmd = &cobra.Command{
	Use: "seqlist",
}

func init() {
	sf := new(serverFlags)
	startCmd := &cobra.Command{
		Use:   "start [-c config_file] [-d working_dir]",
		Short: "Start seqlist api server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sf.asService {
				svc, err := service.New(&serverService{f: sf}, svcCfg)
				if err != nil {
					return fmt.Errorf("failed to init service, %w", err)
				}
				return svc.Run()
			}
			return StartServer(cmd.Context(), sf)
		},
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
	}
	rootCmd.AddCommand(startCmd)
	fs := startCmd.Flags()
	fs.StringVarP(&sf.c, "config", "c", "", "config file")
	fs.StringVarP(&sf.dir, "dir", "d", "", "working dir")
	fs.IntVar(&sf.cpu, "cpu", 0, "set runtime.GOMAXPROCS")
	fs.BoolVar(&sf.asService, "as-service", false, "start as a service")
	fs.MarkHidden("as-service")

	serviceCmd := &cobra.Command{
		Use:   "service",
		Short: "Manage seqlist as a system service.",
	}
	serviceCmd.PersistentPreRunE = initService
	serviceCmd.AddCommand(
		newSvcInstallCmd(),
		newSvcUninstallCmd(),
		newSvcStartCmd(),
		newSvcStopCmd(),
		newSvcRestartCmd(),
		newSvcStatusCmd(),
	)
	rootCmd.AddCommand(serviceCmd)

	ef := new(evalFlags)
	evalCmd := &cobra.Command{
		Use:   "eval [-c config_file] [--check] script_file",
		Short: "Run a script and print its results as json lines.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Eval(cmd.Context(), ef, args[0], cmd.OutOrStdout())
		},
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
	}
	rootCmd.AddCommand(evalCmd)
	efs := evalCmd.Flags()
	efs.StringVarP(&ef.c, "config", "c", "", "config file, its store and sequences are used by the script")
	efs.BoolVar(&ef.check, "check", false, "validate every touched sequence after each step")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print out version info and exit.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	})
}

func AddSubCmd(c *cobra.Command) {
	rootCmd.AddCommand(c)
}

func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func StartServer(ctx context.Context, sf *serverFlags) error {
	if sf.cpu > 0 {
		runtime.GOMAXPROCS(sf.cpu)
	}

	if len(sf.dir) > 0 {
		err := os.Chdir(sf.dir)
		if err != nil {
			return fmt.Errorf("failed to change the current working directory, %w", err)
		}
		mlog.L().Info("working directory changed", zap.String("path", sf.dir))
	}

	cfg, err := loadConfigWithInclude(sf.c)
	if err != nil {
		return err
	}

	if err := RunSeqlist(ctx, cfg); err != nil {
		return fmt.Errorf("seqlist exited, %w", err)
	}
	return nil
}

// Eval runs the script file against a store built from the optional
// config file.
func Eval(ctx context.Context, ef *evalFlags, scriptFile string, out io.Writer) error {
	cfg := new(Config)
	if len(ef.c) > 0 {
		var err error
		if cfg, err = loadConfigWithInclude(ef.c); err != nil {
			return err
		}
	}
	lg, err := mlog.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	store, err := newStore(&cfg.Store, lg)
	if err != nil {
		return fmt.Errorf("failed to init store, %w", err)
	}
	defer store.Close()
	if err := seedSequences(store, cfg, lg); err != nil {
		return err
	}

	sc, err := script.LoadFile(scriptFile)
	if err != nil {
		return err
	}
	r, err := script.NewRunner(script.RunnerOpts{
		Store:  store,
		Out:    out,
		Check:  ef.check,
		Logger: lg.Named("script"),
	})
	if err != nil {
		return err
	}
	return r.Run(ctx, sc)
}

func loadConfigWithInclude(filePath string) (*Config, error) {
	cfg, fileUsed, err := loadConfig(filePath)
	if err != nil {
		return nil, fmt.Errorf("fail to load config, %w", err)
	}
	if err := mergeInclude(cfg, 0, []string{fileUsed}); err != nil {
		return nil, fmt.Errorf("failed to load sub config file, %w", err)
	}
	return cfg, nil
}

// loadConfig load a config from a file. If filePath is empty, it will
// automatically search and load a file which name start with "config".
func loadConfig(filePath string) (*Config, string, error) {
	v := viper.New()

	if len(filePath) > 0 {
		v.SetConfigFile(filePath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	decoderOpt := func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
		cfg.TagName = "yaml"
		cfg.WeaklyTypedInput = true
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg, decoderOpt); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, v.ConfigFileUsed(), nil
}

// mergeInclude merges the sequences of included files into cfg. A sequence
// defined twice is an error.
func mergeInclude(cfg *Config, depth int, paths []string) error {
	depth++
	if depth > 8 {
		return fmt.Errorf("maximum include depth reached, include path is %s", strings.Join(paths, " -> "))
	}

	for _, subCfgFile := range cfg.Include {
		subPaths := append(slices.Clone(paths), subCfgFile)
		mlog.L().Info("reading sub config", zap.String("file", subCfgFile))
		subCfg, _, err := loadConfig(subCfgFile)
		if err != nil {
			return fmt.Errorf("failed to load sub config, %w", err)
		}
		if err := mergeInclude(subCfg, depth, subPaths); err != nil {
			return err
		}

		if cfg.Sequences == nil && len(subCfg.Sequences) > 0 {
			cfg.Sequences = make(map[string]script.SeqDef, len(subCfg.Sequences))
		}
		for name, def := range subCfg.Sequences {
			if _, dup := cfg.Sequences[name]; dup {
				return fmt.Errorf("duplicated sequence %s in %s", name, subCfgFile)
			}
			cfg.Sequences[name] = def
		}
	}
	return nil
}
