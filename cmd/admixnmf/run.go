// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/admixnmf/admix"
	"github.com/katalvlaran/admixnmf/config"
	"github.com/katalvlaran/admixnmf/matrix"
	"github.com/spf13/cobra"
)

// outputPrecision is the number of decimals written for Q and F.
const outputPrecision = 6

func fitCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Estimate Q and F at a fixed alpha",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolve(cmd, g, f)
			if err != nil {
				return err
			}
			return runFit(g, c)
		},
	}
	bindRunFlags(cmd, f)

	return cmd
}

func searchCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search alpha in [0, aend] for the highest log-likelihood",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolve(cmd, g, f)
			if err != nil {
				return err
			}
			if !c.SearchEnabled() {
				return fmt.Errorf("%w: --aend must be > 0", config.ErrInvalidConfig)
			}
			return runSearch(g, c)
		},
	}
	bindRunFlags(cmd, f)
	cmd.Flags().Float64Var(&f.searchEnd, "aend", 0, "upper bound of the alpha search")
	cmd.Flags().IntVar(&f.depth, "depth", 5, "alpha search rounds")

	return cmd
}

func runFit(g *globalFlags, c *config.RunConfig) error {
	s, err := newSession(g)
	if err != nil {
		return err
	}
	X, likes, err := readInputs(c)
	if err != nil {
		return err
	}
	opts, err := c.Options(admix.WithObserver(s.observer()))
	if err != nil {
		return err
	}
	res, err := admix.Fit(X, likes, c.K, opts...)
	if err != nil {
		return err
	}
	if err = writeFactors(c.Output.Prefix, res); err != nil {
		return err
	}
	s.log.Info().Int("k", c.K).Float64("alpha", res.Alpha).
		Float64("log_likelihood", res.LogLikelihood).Int("iterations", res.Iterations).
		Bool("converged", res.Converged).Str("prefix", c.Output.Prefix).Msg("fit done")

	return s.close()
}

func runSearch(g *globalFlags, c *config.RunConfig) error {
	s, err := newSession(g)
	if err != nil {
		return err
	}
	X, likes, err := readInputs(c)
	if err != nil {
		return err
	}
	opts, err := c.Options(admix.WithObserver(s.observer()))
	if err != nil {
		return err
	}
	out, err := admix.AlphaSearch(X, likes, c.K, c.Search.End, c.Search.Depth, opts...)
	if err != nil {
		return err
	}
	if err = writeFactors(c.Output.Prefix, out.Best); err != nil {
		return err
	}
	s.log.Info().Int("k", c.K).Float64("alpha", out.Alpha).Int("trials", len(out.Trials)).
		Float64("log_likelihood", out.Best.LogLikelihood).Str("prefix", c.Output.Prefix).Msg("search done")

	return s.close()
}

func readInputs(c *config.RunConfig) (X, likes *matrix.Dense, err error) {
	if X, err = readMatrix(c.Input.Frequencies); err != nil {
		return nil, nil, err
	}
	if likes, err = readMatrix(c.Input.Likelihoods); err != nil {
		return nil, nil, err
	}

	return X, likes, nil
}

func readMatrix(path string) (*matrix.Dense, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	m, err := matrix.ReadText(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// writeFactors writes <prefix>.q and <prefix>.f.
func writeFactors(prefix string, res *admix.Result) error {
	for _, out := range []struct {
		ext string
		m   *matrix.Dense
	}{{".q", res.Q}, {".f", res.F}} {
		if err := writeMatrix(prefix+out.ext, out.m); err != nil {
			return err
		}
	}

	return nil
}

func writeMatrix(path string, m *matrix.Dense) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fh.Close(); err == nil {
			err = cerr
		}
	}()

	return matrix.WriteText(fh, m, outputPrecision)
}
