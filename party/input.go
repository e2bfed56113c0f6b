//
// input.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.

package party

import (
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrParse is returned for a malformed input file, spec.md §7's
// "io-parse" error kind.
var ErrParse = errors.New("party: malformed input file")

// InputData is the result of reading and scaling one participant's
// input file: the raw decimal numbers, their maximum, and that maximum
// scaled and represented as a bits-wide two's-complement bit array
// (most significant bit first), exactly as
// original_source/src/protocol_manager.py's init_protocol_data
// computes it.
type InputData struct {
	Values  []float64
	Max     float64
	Scaled  int64
	Bits    []byte
}

// ReadInputFile parses a UTF-8 file of comma-separated decimal numbers
// (integers or one-decimal fixed-point values).
func ReadInputFile(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "party: reading input file %q", path)
	}
	fields := strings.Split(strings.TrimSpace(string(data)), ",")
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrParse, "invalid number %q: %v", f, err)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, errors.Wrap(ErrParse, "no valid inputs found in file")
	}
	return values, nil
}

// ScaleInput reads path, takes the maximum of the numbers it contains,
// scales it by 10 (so that one-decimal fixed-point inputs like 9.9
// become the integer 99), and represents the result as a width-bit
// two's-complement bit array, most significant bit first -- the
// ordering gencircuit.SignedComparator's wire numbering expects.
func ScaleInput(path string, width int) (*InputData, error) {
	values, err := ReadInputFile(path)
	if err != nil {
		return nil, err
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}

	scaled := int64(max * 10)
	if scaled < 0 {
		scaled += int64(1) << uint(width)
	}
	if scaled < 0 || scaled >= (int64(1)<<uint(width)) {
		return nil, errors.Wrapf(ErrConfiguration,
			"scaled input %d does not fit in %d bits", scaled, width)
	}

	bits := make([]byte, width)
	for i := 0; i < width; i++ {
		shift := uint(width - 1 - i)
		bits[i] = byte((scaled >> shift) & 1)
	}

	return &InputData{Values: values, Max: max, Scaled: scaled, Bits: bits}, nil
}
