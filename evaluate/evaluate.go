//
// evaluate.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package evaluate implements the evaluator's side of the protocol:
// label propagation through the gate DAG in ascending wire-ID order,
// decrypting exactly the garbled-table row the held signal bits select.
package evaluate

import (
	"github.com/cockroachdb/errors"

	"github.com/5tefan543/yaocmp/circuit"
	"github.com/5tefan543/yaocmp/garble"
	"github.com/5tefan543/yaocmp/symmetric"
)

// ErrProtocolInvariant is returned when a wire's label is referenced by
// a gate before it has been seeded or computed; spec.md §7's
// "protocol-invariant" error kind.
var ErrProtocolInvariant = errors.New("evaluate: missing wire label")

// ErrCryptographic is returned when a garbled-table row fails to
// authenticate under the held label pair.
var ErrCryptographic = errors.New("evaluate: garbled row authentication failed")

// LabeledValue is the single (label, sigma) pair the evaluator holds
// for one wire: the label it was given (by the garbler in the clear or
// via oblivious transfer) or recovered from a gate decryption, and the
// external signal bit it carries.
type LabeledValue struct {
	Label []byte
	Sigma byte
}

// Evaluator holds the evaluator's view of every wire it has touched:
// exactly one (label, sigma) pair, never the pair of labels the
// garbler holds.
type Evaluator struct {
	circ   *circuit.Circuit
	values map[circuit.WireID]LabeledValue
}

// New creates an evaluator for circ. Seed must be called for every
// input wire before Evaluate.
func New(circ *circuit.Circuit) *Evaluator {
	return &Evaluator{
		circ:   circ,
		values: make(map[circuit.WireID]LabeledValue, circ.NumWires()),
	}
}

// Seed records the held label and signal bit for an input wire w,
// whether it arrived in the clear (the garbler's own inputs) or via
// oblivious transfer (the evaluator's own inputs).
func (e *Evaluator) Seed(w circuit.WireID, label []byte, sigma byte) {
	e.values[w] = LabeledValue{Label: label, Sigma: sigma}
}

// Evaluate walks the circuit's gates in ascending ID order, decrypting
// each gate's garbled table at the row its input signal bits select,
// and returns the signal bit held for every declared output wire.
func (e *Evaluator) Evaluate(a *garble.Artifact) (map[circuit.WireID]byte, error) {
	if len(a.Tables) != len(e.circ.Gates) {
		return nil, errors.Wrapf(ErrProtocolInvariant,
			"got %d garbled tables for %d gates", len(a.Tables), len(e.circ.Gates))
	}
	for i, gate := range e.circ.Gates {
		table := a.Tables[i]
		var label []byte
		var sigma byte
		var err error
		if gate.Type.Arity() == 1 {
			label, sigma, err = e.evalUnary(gate, table)
		} else {
			label, sigma, err = e.evalBinary(gate, table)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "evaluating gate %d", gate.ID)
		}
		e.values[gate.ID] = LabeledValue{Label: label, Sigma: sigma}
	}

	out := make(map[circuit.WireID]byte, len(e.circ.Out))
	for _, w := range e.circ.Out {
		lv, ok := e.values[w]
		if !ok {
			return nil, errors.Wrapf(ErrProtocolInvariant, "no value for output wire %d", w)
		}
		out[w] = lv.Sigma
	}
	return out, nil
}

func (e *Evaluator) evalUnary(gate circuit.Gate, table garble.GarbledTable) (label []byte, sigma byte, err error) {
	in, ok := e.values[gate.In[0]]
	if !ok {
		return nil, 0, errors.Wrapf(ErrProtocolInvariant, "no value for input wire %d", gate.In[0])
	}
	if int(in.Sigma) >= len(table.Rows) {
		return nil, 0, errors.Wrapf(ErrProtocolInvariant, "signal bit %d out of range for gate %d", in.Sigma, gate.ID)
	}
	payload, err := symmetric.Dec(in.Label, table.Rows[in.Sigma])
	if err != nil {
		return nil, 0, errors.Wrapf(ErrCryptographic, "gate %d: %v", gate.ID, err)
	}
	return symmetric.UnpackPayload(payload)
}

func (e *Evaluator) evalBinary(gate circuit.Gate, table garble.GarbledTable) (label []byte, sigma byte, err error) {
	in1, ok := e.values[gate.In[0]]
	if !ok {
		return nil, 0, errors.Wrapf(ErrProtocolInvariant, "no value for input wire %d", gate.In[0])
	}
	in2, ok := e.values[gate.In[1]]
	if !ok {
		return nil, 0, errors.Wrapf(ErrProtocolInvariant, "no value for input wire %d", gate.In[1])
	}
	idx := int(in1.Sigma)*2 + int(in2.Sigma)
	if idx >= len(table.Rows) {
		return nil, 0, errors.Wrapf(ErrProtocolInvariant, "row index %d out of range for gate %d", idx, gate.ID)
	}
	// Rows were nested outer(in1) -> inner(in2) -> payload at garbling
	// time; unwind in the same order.
	inner, err := symmetric.Dec(in1.Label, table.Rows[idx])
	if err != nil {
		return nil, 0, errors.Wrapf(ErrCryptographic, "gate %d outer: %v", gate.ID, err)
	}
	payload, err := symmetric.Dec(in2.Label, inner)
	if err != nil {
		return nil, 0, errors.Wrapf(ErrCryptographic, "gate %d inner: %v", gate.ID, err)
	}
	return symmetric.UnpackPayload(payload)
}
