//
// protocol.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.

package party

import (
	"github.com/cockroachdb/errors"

	"github.com/5tefan543/yaocmp/circuit"
)

// ErrProtocol is returned when a peer's message violates the expected
// message sequence or names a wire the circuit does not declare.
var ErrProtocol = errors.New("party: protocol violation")

// packLabelSigma flattens a (label, sigma) pair the OT sender offers
// into a single fixed-length byte string, so both of a sender's two
// messages have the equal length spec.md §3 requires.
func packLabelSigma(label []byte, sigma byte) []byte {
	return append(append([]byte{}, label...), sigma)
}

// unpackLabelSigma is the inverse of packLabelSigma.
func unpackLabelSigma(b []byte) (label []byte, sigma byte, err error) {
	if len(b) < 1 {
		return nil, 0, errors.Wrap(ErrProtocol, "empty OT payload")
	}
	return b[:len(b)-1], b[len(b)-1], nil
}

// bitAt returns bits[i] or an error if i is out of range, used when
// walking a circuit's Bob wires alongside the evaluator's own input
// bit array.
func bitAt(bits []byte, i int, wire circuit.WireID) (byte, error) {
	if i < 0 || i >= len(bits) {
		return 0, errors.Wrapf(ErrConfiguration,
			"no input bit supplied for evaluator wire %d (position %d)", wire, i)
	}
	return bits[i], nil
}
