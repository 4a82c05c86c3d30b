// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/dblohm7/winrt/cmd/rtinspect/internal/config"
	"github.com/dblohm7/winrt/cmd/rtinspect/internal/report"
	"github.com/dblohm7/winrt/cmd/rtinspect/internal/server"
	"github.com/dblohm7/winrt/com"
	"github.com/dblohm7/winrt/rt"
)

// options holds the command line flags.
type options struct {
	ConfigPath string
	Apartment  string
	Output     string
	Probes     []string
	Verbose    bool
}

func (o *options) setFlags(flags *flag.FlagSet) {
	flags.StringVarP(&o.ConfigPath, "config", "c", config.DefaultFile, "Configuration file. It is optional unless this flag is set")
	flags.StringVar(&o.Apartment, "apartment", "", "The apartment to initialize the runtime in, sta or mta")
	flags.StringVarP(&o.Output, "output", "o", "", "The report format, text or yaml")
	flags.StringSliceVar(&o.Probes, "probe", nil, "Additional interface IDs to query each instance for")
	flags.BoolVarP(&o.Verbose, "verbose", "v", false, "Log reference counting and activation details")
}

func buildRoot() *cobra.Command {
	o := &options{}
	rootCmd := &cobra.Command{
		Use:           "rtinspect [flags] [class...]",
		Short:         "Inspect Windows Runtime classes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := o.settings(cmd.Flags(), args)
			if err != nil {
				return err
			}

			logger, err := newLogger(o.Verbose)
			if err != nil {
				return errors.Wrap(err, "creating logger")
			}
			defer func() { _ = logger.Sync() }()
			com.SetLogger(logger)
			defer com.SetLogger(nil)

			return run(cmd.OutOrStdout(), logger, settings)
		},
	}

	o.setFlags(rootCmd.Flags())
	return rootCmd
}

// settings merges the configuration file with the command line, which takes
// precedence.
func (o *options) settings(flags *flag.FlagSet, args []string) (*config.Resolved, error) {
	cfg, err := config.Load(o.ConfigPath, flags.Changed("config"))
	if err != nil {
		return nil, err
	}

	if flags.Changed("apartment") {
		cfg.Apartment = o.Apartment
	}
	if flags.Changed("output") {
		cfg.Output = o.Output
	}
	if len(args) > 0 {
		cfg.Classes = args
	}
	cfg.Probes = append(cfg.Probes, o.Probes...)

	return cfg.Resolve()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func run(w io.Writer, logger *zap.Logger, settings *config.Resolved) error {
	logger.Debug("initializing runtime", zap.Stringer("apartment", settings.Apartment))
	rc, err := rt.Init(settings.Apartment)
	if err != nil {
		return errors.Wrapf(err, "initializing the runtime in the %v apartment", settings.Apartment)
	}
	defer rc.Uninit()

	r := &report.Report{Apartment: settings.Apartment.String()}
	for _, class := range settings.Classes {
		r.Classes = append(r.Classes, inspectClass(logger, class, settings.Probes))
	}

	if err := report.Write(w, r, settings.Output); err != nil {
		return err
	}
	if n := r.Failed(); n > 0 {
		return errors.Errorf("%d of %d classes could not be inspected", n, len(r.Classes))
	}
	return nil
}

func inspectClass(logger *zap.Logger, class string, probes []*com.IID) report.Class {
	reg, err := server.Lookup(class)
	if err != nil {
		logger.Debug("no activation registration", zap.String("class", class), zap.Error(err))
	}

	logger.Debug("activating", zap.String("class", class))
	p, err := rt.ActivateInstance[rt.IInspectable](class)
	if err != nil {
		logger.Debug("activation failed", zap.String("class", class), zap.Error(err))
		c := report.Failure(class, errors.Wrap(err, "activating"))
		c.Server = reg
		return c
	}
	defer p.Release()

	c := report.Inspect(class, p, probes)
	c.Server = reg
	return c
}
