//
// gencircuit.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.

// Package gencircuit builds the comparator circuits the yaocmp
// application evaluates: a fixed-width signed (two's-complement)
// "who is greater" comparator over Alice's and Bob's inputs.
package gencircuit

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/5tefan543/yaocmp/circuit"
)

// ErrBits is returned when a caller asks for a comparator narrower
// than this package supports.
var ErrBits = errors.New("gencircuit: bit width must be at least 2")

// SignedComparator builds a bits-wide signed two's-complement
// comparator circuit. Wire 1..bits are Alice's input bits (wire 1 is
// the sign bit, most significant), wire bits+1..2*bits are Bob's, in
// the same most-significant-first order. The circuit declares exactly
// two output wires: the first is 1 iff Bob's value is strictly
// greater than Alice's, the second is 1 iff the two values differ
// (the "equality check failed" bit). This matches the original
// generate_cmp_signed_circuit.py convention: (1,1) Bob greater,
// (0,1) Alice greater, (0,0) equal.
//
// Two's-complement values compare the same way as unsigned values
// once the sign bit of both operands is flipped, so the circuit flips
// bit 0 of each input and then runs a standard most-significant-bit-
// first unsigned comparator over the transformed bits.
func SignedComparator(bits int) (*circuit.Circuit, error) {
	if bits < 2 {
		return nil, errors.Wrapf(ErrBits, "got %d", bits)
	}

	alice := make([]circuit.WireID, bits)
	bob := make([]circuit.WireID, bits)
	for i := 0; i < bits; i++ {
		alice[i] = circuit.WireID(i + 1)
		bob[i] = circuit.WireID(bits + i + 1)
	}

	b := &builder{next: circuit.WireID(2*bits + 1)}

	aBit := make([]circuit.WireID, bits)
	bBit := make([]circuit.WireID, bits)
	aBit[0] = b.gate(circuit.NOT, alice[0])
	bBit[0] = b.gate(circuit.NOT, bob[0])
	for i := 1; i < bits; i++ {
		aBit[i] = alice[i]
		bBit[i] = bob[i]
	}

	eq := make([]circuit.WireID, bits)
	gt := make([]circuit.WireID, bits)
	for i := 0; i < bits; i++ {
		eq[i] = b.gate(circuit.XNOR, aBit[i], bBit[i])
		notA := b.gate(circuit.NOT, aBit[i])
		gt[i] = b.gate(circuit.AND, notA, bBit[i])
	}

	prefixEq := eq[0]
	bobGreater := gt[0]
	for i := 1; i < bits; i++ {
		term := b.gate(circuit.AND, prefixEq, gt[i])
		bobGreater = b.gate(circuit.OR, bobGreater, term)
		prefixEq = b.gate(circuit.AND, prefixEq, eq[i])
	}
	notEqual := b.gate(circuit.NOT, prefixEq)

	c := &circuit.Circuit{
		Name:  "cmp",
		ID:    fmt.Sprintf("%d-bit CMP signed (two's complement)", bits),
		Alice: alice,
		Bob:   bob,
		Out:   []circuit.WireID{bobGreater, notEqual},
		Gates: b.gates,
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "gencircuit: generated circuit failed validation")
	}
	return c, nil
}

// builder assigns strictly ascending gate-output wire IDs as gates are
// appended, matching the topological order circuit.Validate requires.
type builder struct {
	next  circuit.WireID
	gates []circuit.Gate
}

func (b *builder) gate(t circuit.GateType, in ...circuit.WireID) circuit.WireID {
	id := b.next
	b.next++
	b.gates = append(b.gates, circuit.Gate{ID: id, Type: t, In: in})
	return id
}
