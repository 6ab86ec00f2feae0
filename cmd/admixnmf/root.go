// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/admixnmf/admix"
	"github.com/katalvlaran/admixnmf/config"
	"github.com/katalvlaran/admixnmf/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath  string
	logLevel    string
	jsonLogs    bool
	metricsPath string
}

// runFlags mirror config.RunConfig; only flags set on the command line
// override the file.
type runFlags struct {
	k         int
	alpha     float64
	maxIter   int
	tolerance float64
	seed      uint64
	batches   int
	threads   int
	indf      string
	likes     string
	out       string
	searchEnd float64
	depth     int
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "admixnmf",
		Short:         "Admixture estimation by regularized non-negative matrix factorization",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(g)
		},
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "YAML run configuration")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "log level (debug shows every iteration)")
	root.PersistentFlags().BoolVar(&g.jsonLogs, "json", false, "emit JSON logs instead of console output")
	root.PersistentFlags().StringVar(&g.metricsPath, "metrics-file", "", "write Prometheus metrics to this textfile on exit")

	root.AddCommand(fitCmd(g))
	root.AddCommand(searchCmd(g))

	return root
}

func setupLogging(g *globalFlags) error {
	lvl, err := zerolog.ParseLevel(g.logLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	if !g.jsonLogs {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	return nil
}

func bindRunFlags(cmd *cobra.Command, f *runFlags) {
	fl := cmd.Flags()
	fl.IntVarP(&f.k, "k", "K", 0, "number of ancestral components")
	fl.Float64Var(&f.alpha, "alpha", admix.DefaultAlpha, "regularization strength on Q")
	fl.IntVar(&f.maxIter, "iter", admix.DefaultMaxIter, "maximum outer iterations")
	fl.Float64Var(&f.tolerance, "tole", admix.DefaultTolerance, "Q-RMSD convergence tolerance")
	fl.Uint64Var(&f.seed, "seed", admix.DefaultSeed, "random seed")
	fl.IntVar(&f.batches, "batch", admix.DefaultBatches, "number of site batches")
	fl.IntVarP(&f.threads, "threads", "t", admix.DefaultThreads, "individual chunks for the final reductions")
	fl.StringVar(&f.indf, "indf", "", "individual allele frequencies (m×n text matrix)")
	fl.StringVar(&f.likes, "likes", "", "genotype likelihoods (3m×n text matrix)")
	fl.StringVarP(&f.out, "out", "o", "", "output prefix")
}

// resolve merges the config file (if any) with the flags that were set.
func resolve(cmd *cobra.Command, g *globalFlags, f *runFlags) (*config.RunConfig, error) {
	c := config.Default()
	if g.configPath != "" {
		var err error
		if c, err = config.Load(g.configPath); err != nil {
			return nil, err
		}
	}
	fl := cmd.Flags()
	set := func(name string, apply func()) {
		if fl.Changed(name) {
			apply()
		}
	}
	set("k", func() { c.K = f.k })
	set("alpha", func() { c.Alpha = f.alpha })
	set("iter", func() { c.MaxIter = f.maxIter })
	set("tole", func() { c.Tolerance = f.tolerance })
	set("seed", func() { c.Seed = f.seed })
	set("batch", func() { c.Batches = f.batches })
	set("threads", func() { c.Threads = f.threads })
	set("indf", func() { c.Input.Frequencies = f.indf })
	set("likes", func() { c.Input.Likelihoods = f.likes })
	set("out", func() { c.Output.Prefix = f.out })
	set("aend", func() { c.Search.End = f.searchEnd })
	set("depth", func() { c.Search.Depth = f.depth })

	if c.Input.Frequencies == "" || c.Input.Likelihoods == "" {
		return nil, fmt.Errorf("%w: both --indf and --likes are required", config.ErrInvalidConfig)
	}

	return c, c.Validate()
}

// session is the per-invocation context: run id, logger, observers.
type session struct {
	id      string
	log     zerolog.Logger
	reg     *prometheus.Registry
	metrics *telemetry.Metrics
	g       *globalFlags
}

func newSession(g *globalFlags) (*session, error) {
	s := &session{id: uuid.NewString(), g: g, reg: prometheus.NewRegistry()}
	s.log = log.With().Str("run_id", s.id).Logger()
	var err error
	if s.metrics, err = telemetry.NewMetrics(s.reg); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *session) observer() admix.Observer {
	return admix.Observers(telemetry.NewLogObserver(s.log), s.metrics)
}

// close flushes metrics when requested.
func (s *session) close() error {
	if s.g.metricsPath == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(s.g.metricsPath, s.reg); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	s.log.Info().Str("path", s.g.metricsPath).Msg("metrics written")

	return nil
}
