//
// config.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.

// Package party wires the core circuit/garble/evaluate/ot/transport
// packages into the two-party "who has the larger number" application:
// Alice garbles and sends, Bob receives and evaluates, both decode and
// print the same result. This is the application-layer wrapper spec.md
// §1 treats as an external collaborator.
package party

import (
	"log/slog"

	"github.com/cockroachdb/errors"
)

// ErrConfiguration is returned for an invalid combination of CLI flags
// or inconsistent circuit/input widths, spec.md §7's "configuration"
// error kind.
var ErrConfiguration = errors.New("party: invalid configuration")

// Role is which of the two participants this process plays.
type Role string

// The two roles a Config may select.
const (
	Alice Role = "alice"
	Bob   Role = "bob"
)

// Config is a run configuration. NewConfig checks every required field
// at once, so a Config it returns is never half-initialized (spec.md
// §9's "stateful half-initialized configuration" design note). The
// fields are exported; a Config written as a struct literal, as the
// tests do, skips those checks.
type Config struct {
	Role              Role
	CircuitPath       string
	InputFile         string
	Addr              string
	ObliviousTransfer bool
	Verify            bool
	Logger            *slog.Logger
}

// NewConfig validates and builds a Config from already-parsed CLI
// inputs. logger must not be nil.
func NewConfig(role Role, circuitPath, inputFile, addr string, obliviousTransfer, verify bool, logger *slog.Logger) (*Config, error) {
	if role != Alice && role != Bob {
		return nil, errors.Wrapf(ErrConfiguration, "unknown party %q, must be %q or %q", role, Alice, Bob)
	}
	if circuitPath == "" {
		return nil, errors.Wrap(ErrConfiguration, "circuit file not specified")
	}
	if inputFile == "" {
		return nil, errors.Wrap(ErrConfiguration, "input file not specified")
	}
	if addr == "" {
		return nil, errors.Wrap(ErrConfiguration, "network address not specified")
	}
	if logger == nil {
		return nil, errors.Wrap(ErrConfiguration, "logger not specified")
	}
	return &Config{
		Role:              role,
		CircuitPath:       circuitPath,
		InputFile:         inputFile,
		Addr:              addr,
		ObliviousTransfer: obliviousTransfer,
		Verify:            verify,
		Logger:            logger,
	}, nil
}
