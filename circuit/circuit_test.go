//
// circuit_test.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import "testing"

func validXORCircuit() *Circuit {
	return &Circuit{
		Name:  "test",
		ID:    "xor1",
		Alice: []WireID{1},
		Bob:   []WireID{2},
		Out:   []WireID{3},
		Gates: []Gate{
			{ID: 3, Type: XOR, In: []WireID{1, 2}},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	if err := validXORCircuit().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsArityMismatch(t *testing.T) {
	c := validXORCircuit()
	c.Gates[0].Type = NOT
	if err := c.Validate(); err == nil {
		t.Fatal("expected arity mismatch to be rejected")
	}
}

func TestValidateRejectsForwardReference(t *testing.T) {
	c := &Circuit{
		Alice: []WireID{1},
		Bob:   []WireID{2},
		Out:   []WireID{4},
		Gates: []Gate{
			{ID: 3, Type: AND, In: []WireID{1, 4}},
			{ID: 4, Type: NOT, In: []WireID{1}},
		},
	}
	if err := c.Validate(); err == nil {
		t.Fatal("expected forward reference to a not-yet-defined wire to be rejected")
	}
}

func TestValidateRejectsUnknownOutput(t *testing.T) {
	c := validXORCircuit()
	c.Out = []WireID{99}
	if err := c.Validate(); err == nil {
		t.Fatal("expected unknown output wire to be rejected")
	}
}

func TestValidateRejectsNonAscendingGateIDs(t *testing.T) {
	c := &Circuit{
		Alice: []WireID{1},
		Bob:   []WireID{2},
		Out:   []WireID{3, 4},
		Gates: []Gate{
			{ID: 4, Type: AND, In: []WireID{1, 2}},
			{ID: 3, Type: OR, In: []WireID{1, 2}},
		},
	}
	if err := c.Validate(); err == nil {
		t.Fatal("expected non-ascending gate IDs to be rejected")
	}
}

func TestGateTypeEval(t *testing.T) {
	cases := []struct {
		t    GateType
		a, b byte
		want byte
	}{
		{AND, 0, 0, 0}, {AND, 1, 1, 1}, {AND, 1, 0, 0},
		{OR, 0, 0, 0}, {OR, 1, 0, 1},
		{XOR, 1, 1, 0}, {XOR, 1, 0, 1},
		{XNOR, 1, 1, 1}, {XNOR, 1, 0, 0},
		{NAND, 1, 1, 0}, {NAND, 0, 0, 1},
		{NOR, 0, 0, 1}, {NOR, 1, 0, 0},
		{NOT, 0, 0, 1}, {NOT, 1, 0, 0},
	}
	for _, c := range cases {
		got := c.t.Eval(c.a, c.b)
		if got != c.want {
			t.Errorf("%s.Eval(%d,%d) = %d, want %d", c.t, c.a, c.b, got, c.want)
		}
	}
}

func TestNumWiresAndAllWireIDs(t *testing.T) {
	c := validXORCircuit()
	if c.NumWires() != 3 {
		t.Fatalf("NumWires() = %d, want 3", c.NumWires())
	}
	ids := c.AllWireIDs()
	want := []WireID{1, 2, 3}
	if len(ids) != len(want) {
		t.Fatalf("AllWireIDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("AllWireIDs()[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}
