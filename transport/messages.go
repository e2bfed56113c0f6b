//
// messages.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.

package transport

import (
	"math/big"

	"github.com/5tefan543/yaocmp/circuit"
	"github.com/5tefan543/yaocmp/garble"
)

// CircuitPackage is the garbler's first message: the circuit skeleton,
// the garbled tables (one per gate, same order as the circuit's gate
// list), and the output-wire permutation bits (the decoding table).
type CircuitPackage struct {
	Circuit *circuit.Circuit
	Tables  []garble.GarbledTable
	OutputP map[circuit.WireID]byte
}

// Ack acknowledges receipt of a CircuitPackage.
type Ack struct{}

// GarblerInputLabels carries the garbler's own input-wire labels and
// signal bits, sent in the clear (the labels are already blinded by
// garbling).
type GarblerInputLabels struct {
	Labels map[circuit.WireID][]byte
	Sigmas map[circuit.WireID]byte
}

// GroupParams announces the Diffie-Hellman group the oblivious
// transfers in this run will use.
type GroupParams struct {
	P, Q, G *big.Int
}

// OTStart names the evaluator-input wire the next OT instance will
// deliver a label for.
type OTStart struct {
	Wire circuit.WireID
}

// OTCommit is the sender's first message of one OT instance: C = g^r.
type OTCommit struct {
	C *big.Int
}

// OTChoice is the chooser's response: H, which hides the selection bit
// from the sender.
type OTChoice struct {
	H *big.Int
}

// OTCiphertexts is the sender's final message of one OT instance.
type OTCiphertexts struct {
	C1     *big.Int
	E0, E1 []byte
}

// Evaluation carries the evaluator's signal bit for every output wire
// back to the garbler.
type Evaluation struct {
	Sigma map[circuit.WireID]byte
}

// ClearInputPairs is sent instead of GroupParams/OT frames when the OT
// subprotocol is disabled (a test/debug mode per spec.md §6): the
// garbler ships both labeled values for every evaluator-input wire and
// the evaluator selects by its own bit. This mode gives up input
// privacy and exists purely for verification.
type ClearInputPairs struct {
	Pairs map[circuit.WireID]garble.LabeledPair
}

// DecodedResult is the garbler's final message: the decoded logical
// output bits, sent back to the evaluator as an application-layer
// convenience (spec.md §9's Open Question -- the core protocol does
// not require this, but both participants in this application print
// the same decoded result).
type DecodedResult struct {
	Bits map[circuit.WireID]byte
}
