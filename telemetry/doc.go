// SPDX-License-Identifier: MIT

// Package telemetry turns admix progress events into structured logs
// (zerolog) and Prometheus metrics. Both types implement admix.Observer and
// can be combined with admix.Observers.
package telemetry
