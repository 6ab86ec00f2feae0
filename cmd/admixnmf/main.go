// SPDX-License-Identifier: MIT

// Command admixnmf estimates admixture proportions and ancestral allele
// frequencies from text matrices of individual allele frequencies and
// genotype likelihoods.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("admixnmf failed")
		os.Exit(1)
	}
}
