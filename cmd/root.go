/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gogeo/utils"
)

// app carries the state shared by every sub command of one invocation.
type app struct {
	v       *viper.Viper
	log     zerolog.Logger
	stderr  io.Writer
	profile interface{ Stop() }
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{v: viper.New(), stderr: os.Stderr}
	rootCmd := &cobra.Command{
		Use:   "gogeo",
		Short: "Check, format and export Gmsh .geo geometry scripts",
		Long: `gogeo reads the planar geometry scripts consumed by the Gmsh mesher:
points, lines, circular arcs, line loops, plane surfaces, physical groups
and Mesh.* options.

It resolves references, checks that loops are closed, simple and planar,
that arcs are circular and that mesh options are in range, and it rewrites
scripts in a canonical order or exports them as YAML or JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.stderr = cmd.ErrOrStderr()
			if err := a.initConfig(cmd); err != nil {
				return err
			}
			utils.ConfigureLogger(utils.LogConfig{
				Level:  a.v.GetString("log-level"),
				Format: a.v.GetString("log-format"),
				Output: a.stderr,
			})
			a.log = utils.Logger(cmd.Name())
			return a.startProfile()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.gogeo.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn or error (env GOGEO_LOG_LEVEL)")
	flags.String("log-format", "console", "log format: console or json")
	flags.String("profile", "none", "write a profile of the run to the current directory: cpu, mem or none")
	for _, name := range []string{"log-level", "log-format", "profile"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(
		newCheckCmd(a),
		newFmtCmd(a),
		newExportCmd(a),
		newInfoCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return rootCmd, a
}

// initConfig reads the config file and environment. A missing default config
// file is not an error.
func (a *app) initConfig(cmd *cobra.Command) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.SetConfigName(".gogeo")
		a.v.SetConfigType("yaml")
	}
	a.v.SetEnvPrefix("GOGEO")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func (a *app) startProfile() error {
	switch mode := a.v.GetString("profile"); mode {
	case "", "none":
	case "cpu":
		a.profile = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
	case "mem":
		a.profile = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
	default:
		return fmt.Errorf("unknown profile mode %q, want cpu, mem or none", mode)
	}
	return nil
}

func (a *app) stopProfile() {
	if a.profile != nil {
		a.profile.Stop()
		a.profile = nil
	}
}

// errFailed is returned after a command has already reported its problems.
var errFailed = errors.New("problems found")

// run executes one command line and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd, a := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.ExecuteContext(ctx)
	a.stopProfile()
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(stderr, "error:", err)
		}
		return 1
	}
	return 0
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
