//
// main.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.

// Command yaocmp runs one side of the two-party "who has the larger
// number" secure comparison: party alice garbles a signed comparator
// circuit and ships it to party bob, who evaluates it via oblivious
// transfer and reports the result back.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/5tefan543/yaocmp/circuit"
	"github.com/5tefan543/yaocmp/evaluate"
	"github.com/5tefan543/yaocmp/garble"
	"github.com/5tefan543/yaocmp/gencircuit"
	"github.com/5tefan543/yaocmp/group"
	"github.com/5tefan543/yaocmp/ot"
	"github.com/5tefan543/yaocmp/party"
	"github.com/5tefan543/yaocmp/symmetric"
	"github.com/5tefan543/yaocmp/transport"
)

// Exit codes, categorized by error kind, per spec.md §7.
const (
	exitOK = iota
	exitUsage
	exitConfiguration
	exitIOParse
	exitCircuitValidation
	exitTransport
	exitProtocol
	exitCryptographic
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) > 0 && args[0] == "generate" {
		return runGenerate(args[1:])
	}

	fs := flag.NewFlagSet("yaocmp", flag.ContinueOnError)
	circuitPath := fs.String("circuit", "", "circuit artifact JSON file")
	addr := fs.String("addr", "localhost:8839", "network address bob listens on and alice dials")
	inputFile := fs.String("input", "", "comma-separated decimal input file")
	otherInputFile := fs.String("verify-against", "", "the other party's input file, used only with --verify")
	noOT := fs.Bool("no-oblivious-transfer", false, "disable oblivious transfer (debug only, no input privacy)")
	verify := fs.Bool("verify", false, "cross-check the protocol result against a plaintext comparison")
	logLevel := fs.String("loglevel", "info", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: yaocmp {alice|bob} --circuit FILE --input FILE [flags]")
		return exitUsage
	}

	logger := newLogger(*logLevel)
	role := party.Role(fs.Arg(0))

	cfg, err := party.NewConfig(role, *circuitPath, *inputFile, *addr, !*noOT, *verify, logger)
	if err != nil {
		logger.Error("configuration error", "error", err)
		return exitConfiguration
	}

	circ, err := circuit.Parse(cfg.CircuitPath)
	if err != nil {
		logger.Error("failed to load circuit", "error", err)
		return classify(err)
	}

	input, err := party.ScaleInput(cfg.InputFile, len(circ.Alice))
	if err != nil {
		logger.Error("failed to parse input file", "error", err)
		return classify(err)
	}

	var outBits map[circuit.WireID]byte
	var runErr error
	switch cfg.Role {
	case party.Alice:
		ch, dialErr := transport.Dial(cfg.Addr)
		if dialErr != nil {
			logger.Error("failed to connect to bob", "error", dialErr)
			return exitTransport
		}
		defer ch.Close()
		outBits, runErr = party.RunAlice(ch, circ, input.Bits, cfg)
	case party.Bob:
		ln, listenErr := transport.Listen(cfg.Addr)
		if listenErr != nil {
			logger.Error("failed to listen", "error", listenErr)
			return exitTransport
		}
		defer ln.Close()
		ch, acceptErr := ln.Accept()
		if acceptErr != nil {
			logger.Error("failed to accept connection from alice", "error", acceptErr)
			return exitTransport
		}
		defer ch.Close()
		outBits, runErr = party.RunBob(ch, input.Bits, cfg)
	}
	if runErr != nil {
		logger.Error("protocol run failed", "error", runErr)
		return classify(runErr)
	}

	outcome, err := party.DecodeOutcome(circ.Out, outBits)
	if err != nil {
		logger.Error("failed to decode outcome", "error", err)
		return exitProtocol
	}
	fmt.Println(party.Describe(cfg.Role, outcome, input.Max))

	if cfg.Verify {
		if *otherInputFile == "" {
			logger.Error("--verify requires --verify-against")
			return exitConfiguration
		}
		if err := party.Verify(cfg.Role, outcome, input.Max, *otherInputFile); err != nil {
			logger.Error("verification failed", "error", err)
			return exitProtocol
		}
		fmt.Println("verification successful")
	}

	return exitOK
}

func runGenerate(args []string) int {
	fs := flag.NewFlagSet("yaocmp generate", flag.ContinueOnError)
	bits := fs.Int("bits", 32, "bit width of the signed comparator circuit")
	out := fs.String("out", "", "output circuit JSON file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	circ, err := gencircuit.SignedComparator(*bits)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generating circuit: %v\n", err)
		return exitCircuitValidation
	}

	if *out == "" {
		if err := circuit.WriteTo(os.Stdout, "cmp", circ); err != nil {
			fmt.Fprintf(os.Stderr, "writing circuit: %v\n", err)
			return exitIOParse
		}
		return exitOK
	}
	if err := circuit.Write(*out, "cmp", circ); err != nil {
		fmt.Fprintf(os.Stderr, "writing circuit: %v\n", err)
		return exitIOParse
	}
	return exitOK
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// classify maps a wrapped error to the CLI's categorized exit code,
// per spec.md §7. Secrets (labels, exponents) are never included in
// logged error values to begin with, so no redaction is needed here.
func classify(err error) int {
	switch {
	case errors.Is(err, circuit.ErrValidation):
		return exitCircuitValidation
	case errors.Is(err, party.ErrParse):
		return exitIOParse
	case errors.Is(err, party.ErrConfiguration):
		return exitConfiguration
	case errors.Is(err, party.ErrProtocol), errors.Is(err, party.ErrVerification),
		errors.Is(err, evaluate.ErrProtocolInvariant),
		errors.Is(err, ot.ErrLengthMismatch), errors.Is(err, group.ErrInvalidElement):
		return exitProtocol
	case errors.Is(err, transport.ErrClosed), errors.Is(err, transport.ErrFraming):
		return exitTransport
	case errors.Is(err, evaluate.ErrCryptographic), errors.Is(err, symmetric.ErrAuth),
		errors.Is(err, garble.ErrGarbling):
		return exitCryptographic
	default:
		return exitCryptographic
	}
}
