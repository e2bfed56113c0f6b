//
// result.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.

package party

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/5tefan543/yaocmp/circuit"
)

// Outcome is the three-way result of comparing Alice's and Bob's
// maximum inputs, decoded from the comparator circuit's two output
// bits.
type Outcome int

// The three outcomes gencircuit.SignedComparator's output bits encode:
// (bobGreater, notEqual) = (1,1) BobGreater, (0,1) AliceGreater,
// (0,0)/(1,0) Equal.
const (
	Equal Outcome = iota
	BobGreater
	AliceGreater
)

func (o Outcome) String() string {
	switch o {
	case Equal:
		return "equal"
	case BobGreater:
		return "bob greater"
	case AliceGreater:
		return "alice greater"
	default:
		return "unknown"
	}
}

// DecodeOutcome turns the comparator's two decoded output bits into an
// Outcome. out must be the circuit's declared output-wire list, in the
// (bobGreater, notEqual) order gencircuit.SignedComparator emits.
func DecodeOutcome(out []circuit.WireID, bits map[circuit.WireID]byte) (Outcome, error) {
	if len(out) != 2 {
		return 0, errors.Wrapf(ErrProtocol, "expected 2 output wires, got %d", len(out))
	}
	bobGreater, ok := bits[out[0]]
	if !ok {
		return 0, errors.Wrapf(ErrProtocol, "missing output bit for wire %d", out[0])
	}
	notEqual, ok := bits[out[1]]
	if !ok {
		return 0, errors.Wrapf(ErrProtocol, "missing output bit for wire %d", out[1])
	}
	if notEqual == 0 {
		return Equal, nil
	}
	if bobGreater == 1 {
		return BobGreater, nil
	}
	return AliceGreater, nil
}

// Describe renders Outcome from role's perspective, matching
// original_source/src/protocol_manager.py's print_protocol_result.
func Describe(role Role, o Outcome, localMax float64) string {
	switch o {
	case Equal:
		return "The other party has the same maximum input."
	case BobGreater:
		if role == Alice {
			return "Bob has a larger maximum input."
		}
		return fmt.Sprintf("I have the global maximum input: %v", localMax)
	case AliceGreater:
		if role == Alice {
			return fmt.Sprintf("I have the global maximum input: %v", localMax)
		}
		return "Alice has a larger maximum input."
	default:
		return "unrecognized outcome"
	}
}
