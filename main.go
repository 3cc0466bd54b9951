package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/violenttestpen/lightbench/bench"
	"github.com/violenttestpen/lightbench/config"
	"github.com/violenttestpen/lightbench/report"
	"github.com/violenttestpen/lightbench/samples"
)

var configFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Debugf("%+v", err)
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()

	root := &cobra.Command{
		Use:           "lightbench",
		Short:         "Quick in-process micro-benchmarks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file (default ./lightbench.yaml)")

	run := &cobra.Command{
		Use:   "run [target...]",
		Short: "Benchmark built-in targets (all of them when none is named)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read(v, configFile)
			if err != nil {
				return err
			}
			return runTargets(cmd.Context(), cfg, args)
		},
	}
	flags := run.Flags()
	flags.UintP("iterations", "n", 1000, "Number of timed invocations per operation")
	flags.StringP("unit", "u", "ms", "Time unit: ns, ticks, ms or s")
	flags.Int("warmup", bench.DefaultWarmup, "Number of untimed invocations before measuring")
	flags.Uint("progress-interval", bench.DefaultProgressInterval, "Iterations between progress reports")
	flags.Bool("continue-on-error", false, "Skip failing operations instead of aborting")
	flags.Bool("no-color", false, "Disable coloured output")
	flags.String("log-level", "info", "Diagnostics level: trace, debug, info, warn or error")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file after the run")
	bindFlags(v, run, map[string]string{
		"iterations":        "iterations",
		"unit":              "unit",
		"warmup":            "warmup",
		"progress-interval": "progressInterval",
		"continue-on-error": "continueOnError",
		"no-color":          "output.noColor",
		"log-level":         "logging.level",
		"metrics-file":      "output.prometheus.textfile",
	})

	list := &cobra.Command{
		Use:   "list",
		Short: "List built-in targets and their operations",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range samples.Names() {
				target, _ := samples.Lookup(name)
				ops := make([]string, 0)
				for _, op := range target.Operations() {
					ops = append(ops, op.Name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", color.CyanString(name), strings.Join(ops, ", "))
			}
		},
	}

	root.AddCommand(run, list)
	return root
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for flag, key := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func runTargets(ctx context.Context, cfg *config.Config, names []string) error {
	logrus.SetLevel(cfg.LogLevel())
	color.NoColor = color.NoColor || cfg.Output.NoColor

	unit, err := cfg.TimeUnit()
	if err != nil {
		return err
	}

	if len(names) == 0 {
		names = samples.Names()
	}
	targets := make([]bench.Target, len(names))
	for i, name := range names {
		target, ok := samples.Lookup(name)
		if !ok {
			return errors.Errorf("unknown target %q (see 'lightbench list')", name)
		}
		targets[i] = target
	}

	console := report.NewConsole(nil)
	reporters := []bench.Reporter{console}

	var metrics *report.Prometheus
	if cfg.Output.Prometheus.Textfile != "" {
		if metrics, err = report.NewPrometheus(nil, cfg.Output.Prometheus.Namespace); err != nil {
			return err
		}
		reporters = append(reporters, metrics)
	}

	if influx := cfg.Output.InfluxDB; influx.Enabled {
		sink := report.NewInfluxDB(influx.Host, influx.Token, influx.Org, influx.Bucket, logrus.StandardLogger())
		defer sink.Close()
		reporters = append(reporters, sink)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var runErr error
	for i, target := range targets {
		if ctx.Err() != nil {
			break
		}
		console.Header(i+1, names[i])

		runner, err := bench.New(target, cfg.Iterations,
			bench.WithUnit(unit),
			bench.WithWarmup(cfg.Warmup),
			bench.WithProgressInterval(cfg.ProgressInterval),
			bench.WithContinueOnError(cfg.ContinueOnError),
			bench.WithReporter(bench.Reporters(reporters...)),
		)
		if err != nil {
			return err
		}
		if _, err := runner.Run(ctx); err != nil {
			runErr = errors.Wrapf(err, "benchmarking %s", names[i])
			break
		}
		fmt.Println()
	}

	if metrics != nil {
		if err := metrics.WriteTextfile(cfg.Output.Prometheus.Textfile); err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}
