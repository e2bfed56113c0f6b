//
// garble_test.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"bytes"
	"testing"

	"github.com/5tefan543/yaocmp/circuit"
	"github.com/5tefan543/yaocmp/symmetric"
)

// xorCircuit is a single XOR gate: wire 1 is alice's input, wire 2 is
// bob's, wire 3 is the (sole) output.
func xorCircuit() *circuit.Circuit {
	return &circuit.Circuit{
		Name:  "xor",
		ID:    "xor",
		Alice: []circuit.WireID{1},
		Bob:   []circuit.WireID{2},
		Out:   []circuit.WireID{3},
		Gates: []circuit.Gate{
			{ID: 3, Type: circuit.XOR, In: []circuit.WireID{1, 2}},
		},
	}
}

func notCircuit() *circuit.Circuit {
	return &circuit.Circuit{
		Name:  "not",
		ID:    "not",
		Alice: []circuit.WireID{1},
		Bob:   []circuit.WireID{2},
		Out:   []circuit.WireID{3, 4},
		Gates: []circuit.Gate{
			{ID: 3, Type: circuit.NOT, In: []circuit.WireID{1}},
			{ID: 4, Type: circuit.XOR, In: []circuit.WireID{3, 2}},
		},
	}
}

// decryptRow decrypts a single binary garbled row the way the evaluator
// would: unwind the nested AEAD using the two input labels in order.
func decryptRow(t *testing.T, row []byte, k1, k2 []byte) (label []byte, sigma byte) {
	t.Helper()
	inner, err := symmetric.Dec(k1, row)
	if err != nil {
		t.Fatalf("outer Dec: %v", err)
	}
	payload, err := symmetric.Dec(k2, inner)
	if err != nil {
		t.Fatalf("inner Dec: %v", err)
	}
	label, sigma, err = symmetric.UnpackPayload(payload)
	if err != nil {
		t.Fatalf("UnpackPayload: %v", err)
	}
	return label, sigma
}

func TestGarbleBinaryGateAllRowsDecryptConsistently(t *testing.T) {
	circ := xorCircuit()
	g, err := New(circ)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	artifact, err := g.Garble()
	if err != nil {
		t.Fatalf("Garble: %v", err)
	}

	aliceLP := g.keys[1]
	bobLP := g.keys[2]
	outLP := g.keys[3]
	table := artifact.Tables[0]

	for b1 := byte(0); b1 < 2; b1++ {
		for b2 := byte(0); b2 < 2; b2++ {
			idx := int(aliceLP.sigma(b1))*2 + int(bobLP.sigma(b2))
			label, sigma := decryptRow(t, table.Rows[idx], aliceLP.label(b1), bobLP.label(b2))

			wantB3 := b1 ^ b2
			if !bytes.Equal(label, outLP.label(wantB3)) {
				t.Fatalf("b1=%d b2=%d: label mismatch", b1, b2)
			}
			if sigma != outLP.sigma(wantB3) {
				t.Fatalf("b1=%d b2=%d: sigma = %d, want %d", b1, b2, sigma, outLP.sigma(wantB3))
			}
		}
	}
}

func TestGarbleWrongRowFailsToDecrypt(t *testing.T) {
	circ := xorCircuit()
	g, err := New(circ)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	artifact, err := g.Garble()
	if err != nil {
		t.Fatalf("Garble: %v", err)
	}

	aliceLP := g.keys[1]
	bobLP := g.keys[2]
	table := artifact.Tables[0]

	// Row (sigma1=0,sigma2=0) was sealed under each input's label for
	// the bit whose signal is 0, that is bit P. Decrypting it with the
	// other label of either input must fail to authenticate.
	row00 := table.Rows[0]
	_, err = symmetric.Dec(aliceLP.label(1^aliceLP.P), row00)
	if err == nil {
		t.Fatal("expected outer Dec with the wrong label to fail")
	}
	inner, err := symmetric.Dec(aliceLP.label(aliceLP.P), row00)
	if err != nil {
		t.Fatalf("outer Dec with the right label: %v", err)
	}
	if _, err := symmetric.Dec(bobLP.label(1^bobLP.P), inner); err == nil {
		t.Fatal("expected inner Dec with the wrong label to fail")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	circ := notCircuit()
	g, err := New(circ)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	artifact, err := g.Garble()
	if err != nil {
		t.Fatalf("Garble: %v", err)
	}

	a1 := byte(1)
	b2 := byte(0)
	notLP := g.keys[3]
	xorLP := g.keys[4]

	b3 := circ.Gates[0].Type.Eval(a1, 0)
	b4 := circ.Gates[1].Type.Eval(b3, b2)

	sigma := map[circuit.WireID]byte{
		3: notLP.sigma(b3),
		4: xorLP.sigma(b4),
	}

	decoded, err := Decode(artifact, sigma)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded[3] != b3 {
		t.Fatalf("decoded[3] = %d, want %d", decoded[3], b3)
	}
	if decoded[4] != b4 {
		t.Fatalf("decoded[4] = %d, want %d", decoded[4], b4)
	}
}

func TestInputLabelsForOwnWiresLengthMismatch(t *testing.T) {
	g, err := New(xorCircuit())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, _, err := g.InputLabelsForOwnWires([]byte{0, 1}); err == nil {
		t.Fatal("expected a bit-count mismatch to be rejected")
	}
}

func TestInputLabelPairsForPeerWiresDistinctLabels(t *testing.T) {
	g, err := New(xorCircuit())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pairs, err := g.InputLabelPairsForPeerWires()
	if err != nil {
		t.Fatalf("InputLabelPairsForPeerWires: %v", err)
	}
	pair, ok := pairs[2]
	if !ok {
		t.Fatal("missing pair for bob's wire 2")
	}
	if bytes.Equal(pair.Zero.Label, pair.One.Label) {
		t.Fatal("the two OT candidate labels must not be equal")
	}
	if pair.Zero.Sigma == pair.One.Sigma {
		t.Fatal("the two OT candidate signal bits must differ")
	}
}
