//
// garble.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package garble implements the garbler's side of the protocol: dual
// random wire labels, point-and-permute bit assignment, and nested
// authenticated encryption of garbled truth-table rows. It
// deliberately does not use a free-XOR global offset: every wire gets
// two independently sampled labels, per spec.md's Non-goals excluding
// free-XOR/half-gates optimizations.
package garble

import (
	"crypto/rand"

	"github.com/cockroachdb/errors"

	"github.com/5tefan543/yaocmp/circuit"
	"github.com/5tefan543/yaocmp/symmetric"
)

// LabelWidth is the length, in bytes, of a wire label.
const LabelWidth = 16

// ErrGarbling is the sentinel wrapped by any failure while building an
// artifact.
var ErrGarbling = errors.New("garble: garbling failed")

// LabelPair holds the two candidate labels for a wire, K_w^0 and K_w^1,
// and the wire's permutation bit p_w.
type LabelPair struct {
	K0, K1 []byte
	P      byte
}

// GarbledTable is one gate's encrypted truth table, indexed by the
// signal-bit pair (sigma1, sigma2) packed as sigma1*2+sigma2. NOT gates
// populate only index 0 and 1.
type GarbledTable struct {
	Rows [][]byte
}

// Artifact is what the garbler ships to the evaluator: the circuit
// itself, one GarbledTable per gate (same order as circuit.Gates), and
// the permutation bits of the output wires (the decoding table).
type Artifact struct {
	Circuit *circuit.Circuit
	Tables  []GarbledTable
	OutputP map[circuit.WireID]byte
}

// Garbler holds the per-wire label pairs and permutation bits for one
// protocol run.
type Garbler struct {
	circ *circuit.Circuit
	keys map[circuit.WireID]LabelPair
}

// New samples fresh labels and a fresh permutation bit for every input
// and gate-output wire of circ, per spec.md §4.D.
func New(circ *circuit.Circuit) (*Garbler, error) {
	if err := circ.Validate(); err != nil {
		return nil, errors.Wrap(err, "garble: New")
	}
	g := &Garbler{
		circ: circ,
		keys: make(map[circuit.WireID]LabelPair, circ.NumWires()),
	}
	for _, w := range circ.AllWireIDs() {
		pair, err := randomLabelPair()
		if err != nil {
			return nil, errors.Wrapf(err, "garble: sampling labels for wire %d", w)
		}
		g.keys[w] = pair
	}
	return g, nil
}

func randomLabelPair() (LabelPair, error) {
	k0 := make([]byte, LabelWidth)
	k1 := make([]byte, LabelWidth)
	if _, err := rand.Read(k0); err != nil {
		return LabelPair{}, err
	}
	if _, err := rand.Read(k1); err != nil {
		return LabelPair{}, err
	}
	pbit := make([]byte, 1)
	if _, err := rand.Read(pbit); err != nil {
		return LabelPair{}, err
	}
	return LabelPair{K0: k0, K1: k1, P: pbit[0] & 1}, nil
}

func (lp LabelPair) label(bit byte) []byte {
	if bit == 0 {
		return lp.K0
	}
	return lp.K1
}

func (lp LabelPair) sigma(bit byte) byte {
	return bit ^ lp.P
}

// Garble builds the garbled artifact: one GarbledTable per gate, rows
// encrypted under a nested authenticated-encryption scheme and indexed
// by the input wires' signal bits, per spec.md §4.D and §9.
func (g *Garbler) Garble() (*Artifact, error) {
	tables := make([]GarbledTable, len(g.circ.Gates))
	for i, gate := range g.circ.Gates {
		out, ok := g.keys[gate.ID]
		if !ok {
			return nil, errors.Wrapf(ErrGarbling, "no labels for gate output wire %d", gate.ID)
		}
		if gate.Type.Arity() == 1 {
			table, err := g.garbleUnary(gate, out)
			if err != nil {
				return nil, errors.Wrapf(err, "garbling gate %d", gate.ID)
			}
			tables[i] = table
			continue
		}
		table, err := g.garbleBinary(gate, out)
		if err != nil {
			return nil, errors.Wrapf(err, "garbling gate %d", gate.ID)
		}
		tables[i] = table
	}

	outputP := make(map[circuit.WireID]byte, len(g.circ.Out))
	for _, w := range g.circ.Out {
		lp, ok := g.keys[w]
		if !ok {
			return nil, errors.Wrapf(ErrGarbling, "no labels for output wire %d", w)
		}
		outputP[w] = lp.P
	}

	return &Artifact{
		Circuit: g.circ,
		Tables:  tables,
		OutputP: outputP,
	}, nil
}

func (g *Garbler) garbleUnary(gate circuit.Gate, out LabelPair) (GarbledTable, error) {
	in, ok := g.keys[gate.In[0]]
	if !ok {
		return GarbledTable{}, errors.Wrapf(ErrGarbling, "no labels for input wire %d", gate.In[0])
	}
	rows := make([][]byte, 2)
	for b1 := byte(0); b1 < 2; b1++ {
		b3 := gate.Type.Eval(b1, 0)
		payload := symmetric.PackPayload(out.label(b3), out.sigma(b3))
		ct, err := symmetric.Enc(in.label(b1), payload)
		if err != nil {
			return GarbledTable{}, err
		}
		rows[in.sigma(b1)] = ct
	}
	return GarbledTable{Rows: rows}, nil
}

func (g *Garbler) garbleBinary(gate circuit.Gate, out LabelPair) (GarbledTable, error) {
	in1, ok := g.keys[gate.In[0]]
	if !ok {
		return GarbledTable{}, errors.Wrapf(ErrGarbling, "no labels for input wire %d", gate.In[0])
	}
	in2, ok := g.keys[gate.In[1]]
	if !ok {
		return GarbledTable{}, errors.Wrapf(ErrGarbling, "no labels for input wire %d", gate.In[1])
	}

	rows := make([][]byte, 4)
	for b1 := byte(0); b1 < 2; b1++ {
		for b2 := byte(0); b2 < 2; b2++ {
			b3 := gate.Type.Eval(b1, b2)
			payload := symmetric.PackPayload(out.label(b3), out.sigma(b3))
			inner, err := symmetric.Enc(in2.label(b2), payload)
			if err != nil {
				return GarbledTable{}, err
			}
			outer, err := symmetric.Enc(in1.label(b1), inner)
			if err != nil {
				return GarbledTable{}, err
			}
			idx := int(in1.sigma(b1))*2 + int(in2.sigma(b2))
			rows[idx] = outer
		}
	}
	return GarbledTable{Rows: rows}, nil
}

// InputLabelsForOwnWires returns, for each of the garbler's own input
// wires (in circ.Alice order), the label and signal bit corresponding
// to bits[i]. This is what the garbler ships to the evaluator in the
// clear, per spec.md §4.D.
func (g *Garbler) InputLabelsForOwnWires(bits []byte) (map[circuit.WireID][]byte, map[circuit.WireID]byte, error) {
	alice := g.circ.Alice
	if len(bits) != len(alice) {
		return nil, nil, errors.Wrapf(ErrGarbling,
			"got %d bits for %d garbler input wires", len(bits), len(alice))
	}
	labels := make(map[circuit.WireID][]byte, len(alice))
	sigmas := make(map[circuit.WireID]byte, len(alice))
	for i, w := range alice {
		lp, ok := g.keys[w]
		if !ok {
			return nil, nil, errors.Wrapf(ErrGarbling, "no labels for wire %d", w)
		}
		labels[w] = lp.label(bits[i])
		sigmas[w] = lp.sigma(bits[i])
	}
	return labels, sigmas, nil
}

// LabeledPair is one OT offer for an evaluator-input wire: the label
// and signal bit for logical 0 and for logical 1.
type LabeledPair struct {
	Zero, One struct {
		Label []byte
		Sigma byte
	}
}

// InputLabelPairsForPeerWires returns, for each of the evaluator's
// input wires, the (label, sigma) pair for both logical values. These
// feed the OT sender; exactly one element of each pair is released to
// the evaluator.
func (g *Garbler) InputLabelPairsForPeerWires() (map[circuit.WireID]LabeledPair, error) {
	bob := g.circ.Bob
	out := make(map[circuit.WireID]LabeledPair, len(bob))
	for _, w := range bob {
		lp, ok := g.keys[w]
		if !ok {
			return nil, errors.Wrapf(ErrGarbling, "no labels for wire %d", w)
		}
		var pair LabeledPair
		pair.Zero.Label = lp.label(0)
		pair.Zero.Sigma = lp.sigma(0)
		pair.One.Label = lp.label(1)
		pair.One.Sigma = lp.sigma(1)
		out[w] = pair
	}
	return out, nil
}

// Decode recovers the logical output bits from the evaluator's signal
// bits, using the permutation bits recorded in a.OutputP: b = sigma XOR
// p_out.
func Decode(a *Artifact, sigma map[circuit.WireID]byte) (map[circuit.WireID]byte, error) {
	out := make(map[circuit.WireID]byte, len(a.Circuit.Out))
	for _, w := range a.Circuit.Out {
		s, ok := sigma[w]
		if !ok {
			return nil, errors.Wrapf(ErrGarbling, "missing evaluator signal bit for output wire %d", w)
		}
		p, ok := a.OutputP[w]
		if !ok {
			return nil, errors.Wrapf(ErrGarbling, "missing permutation bit for output wire %d", w)
		}
		out[w] = s ^ p
	}
	return out, nil
}
