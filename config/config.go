// SPDX-License-Identifier: MIT

// Package config loads and validates YAML run configurations and turns them
// into admix options. Validation happens here so that bad user input surfaces
// as ErrInvalidConfig instead of an option panic.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/katalvlaran/admixnmf/admix"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig reports a configuration value outside its domain.
var ErrInvalidConfig = errors.New("config: invalid")

// RunConfig is one estimation run.
//
//	k: 3
//	alpha: 0
//	max_iter: 100
//	tolerance: 5.0e-5
//	seed: 0
//	batches: 5
//	threads: 4
//	accel:
//	  base: 2
//	  early_exit_ratio: 0.1
//	search:
//	  end: 20
//	  depth: 5
//	input:
//	  frequencies: indf.txt
//	  likelihoods: likes.txt
//	output:
//	  prefix: run1
type RunConfig struct {
	K         int     `yaml:"k"`
	Alpha     float64 `yaml:"alpha"`
	MaxIter   int     `yaml:"max_iter"`
	Tolerance float64 `yaml:"tolerance"`
	Seed      uint64  `yaml:"seed"`
	Batches   int     `yaml:"batches"`
	Threads   int     `yaml:"threads"`

	Accel struct {
		Base           int     `yaml:"base"`
		EarlyExitRatio float64 `yaml:"early_exit_ratio"`
	} `yaml:"accel"`

	Search struct {
		End   float64 `yaml:"end"`
		Depth int     `yaml:"depth"`
	} `yaml:"search"`

	Input struct {
		Frequencies string `yaml:"frequencies"`
		Likelihoods string `yaml:"likelihoods"`
	} `yaml:"input"`

	Output struct {
		Prefix string `yaml:"prefix"`
	} `yaml:"output"`
}

// Default returns the library defaults (K and the paths stay unset).
func Default() *RunConfig {
	c := &RunConfig{
		Alpha:     admix.DefaultAlpha,
		MaxIter:   admix.DefaultMaxIter,
		Tolerance: admix.DefaultTolerance,
		Seed:      admix.DefaultSeed,
		Batches:   admix.DefaultBatches,
		Threads:   admix.DefaultThreads,
	}
	c.Accel.Base = admix.DefaultAccelBase
	c.Accel.EarlyExitRatio = admix.DefaultEarlyExitRatio
	c.Search.Depth = 5
	c.Output.Prefix = "admixnmf"

	return c
}

// Load reads and parses the YAML file at path.
func Load(path string) (*RunConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(b)
}

// Parse decodes YAML over Default(); keys absent from b keep their defaults.
// Unknown keys are rejected; an empty document yields the defaults.
func Parse(b []byte) (*RunConfig, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	return c, nil
}

// Validate checks every field against the domain admix accepts.
// K is checked only for positivity; the upper bound depends on the data.
func (c *RunConfig) Validate() error {
	switch {
	case c.K < 1:
		return invalid("k", c.K)
	case !finiteNonNeg(c.Alpha):
		return invalid("alpha", c.Alpha)
	case c.MaxIter < 1:
		return invalid("max_iter", c.MaxIter)
	case !finiteNonNeg(c.Tolerance):
		return invalid("tolerance", c.Tolerance)
	case c.Batches < 1:
		return invalid("batches", c.Batches)
	case c.Threads < 1:
		return invalid("threads", c.Threads)
	case c.Accel.Base < 1:
		return invalid("accel.base", c.Accel.Base)
	case !finiteNonNeg(c.Accel.EarlyExitRatio):
		return invalid("accel.early_exit_ratio", c.Accel.EarlyExitRatio)
	case !finiteNonNeg(c.Search.End):
		return invalid("search.end", c.Search.End)
	case c.Search.End > 0 && c.Search.Depth < 1:
		return invalid("search.depth", c.Search.Depth)
	}

	return nil
}

// SearchEnabled reports whether an alpha search is configured.
func (c *RunConfig) SearchEnabled() bool { return c.Search.End > 0 }

// Options validates c and converts it into admix options.
// Extra options are appended after the configured ones.
func (c *RunConfig) Options(extra ...admix.Option) ([]admix.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts := []admix.Option{
		admix.WithAlpha(c.Alpha),
		admix.WithMaxIter(c.MaxIter),
		admix.WithTolerance(c.Tolerance),
		admix.WithSeed(c.Seed),
		admix.WithBatches(c.Batches),
		admix.WithThreads(c.Threads),
		admix.WithAccelBase(c.Accel.Base),
		admix.WithEarlyExitRatio(c.Accel.EarlyExitRatio),
	}

	return append(opts, extra...), nil
}

func invalid(field string, v any) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidConfig, field, v)
}

func finiteNonNeg(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
