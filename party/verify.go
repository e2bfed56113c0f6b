//
// verify.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.

package party

import (
	"github.com/cockroachdb/errors"
)

// ErrVerification is returned when --verify's plaintext cross-check
// disagrees with the protocol's outcome.
var ErrVerification = errors.New("party: verification failed")

// Verify re-derives Outcome from role's own (already-known) maximum
// and otherInputFile, the other participant's input file read in the
// clear, and confirms it agrees with the protocol-derived outcome.
// This mirrors original_source/src/protocol_manager.py's
// verify_result, which exists purely to sanity-check the demo and
// requires both parties' plaintext input files to be locally
// readable -- it offers no privacy and is gated behind --verify.
func Verify(role Role, o Outcome, localMax float64, otherInputFile string) error {
	other, err := ReadInputFile(otherInputFile)
	if err != nil {
		return errors.Wrap(err, "party: verify")
	}
	otherMax := other[0]
	for _, v := range other[1:] {
		if v > otherMax {
			otherMax = v
		}
	}

	var failed bool
	switch o {
	case Equal:
		failed = localMax != otherMax
	case BobGreater:
		if role == Alice {
			failed = localMax >= otherMax
		} else {
			failed = localMax <= otherMax
		}
	case AliceGreater:
		if role == Alice {
			failed = localMax <= otherMax
		} else {
			failed = localMax >= otherMax
		}
	}
	if failed {
		return errors.Wrapf(ErrVerification,
			"role=%s outcome=%s localMax=%v otherMax=%v", role, o, localMax, otherMax)
	}
	return nil
}
