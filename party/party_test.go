//
// party_test.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.

package party

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/5tefan543/yaocmp/circuit"
	"github.com/5tefan543/yaocmp/gencircuit"
	"github.com/5tefan543/yaocmp/transport"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeInputFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// runBoth drives one full Alice/Bob run over an in-process pipe and
// returns each side's decoded output bits as a slice in circuit.Out
// order.
func runBoth(t *testing.T, circ *circuit.Circuit, aliceBits, bobBits []byte, useOT bool) (alice, bob []byte) {
	t.Helper()
	cfgAlice := &Config{Role: Alice, ObliviousTransfer: useOT, Logger: testLogger()}
	cfgBob := &Config{Role: Bob, ObliviousTransfer: useOT, Logger: testLogger()}
	chA, chB := transport.Pipe()
	defer chA.Close()
	defer chB.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	var aliceErr, bobErr error
	var aliceOut, bobOut map[circuit.WireID]byte

	go func() {
		defer wg.Done()
		aliceOut, aliceErr = RunAlice(chA, circ, aliceBits, cfgAlice)
	}()
	go func() {
		defer wg.Done()
		bobOut, bobErr = RunBob(chB, bobBits, cfgBob)
	}()
	wg.Wait()

	if aliceErr != nil {
		t.Fatalf("RunAlice (useOT=%v): %v", useOT, aliceErr)
	}
	if bobErr != nil {
		t.Fatalf("RunBob (useOT=%v): %v", useOT, bobErr)
	}

	alice = make([]byte, len(circ.Out))
	bob = make([]byte, len(circ.Out))
	for i, w := range circ.Out {
		alice[i] = aliceOut[w]
		bob[i] = bobOut[w]
	}
	return alice, bob
}

func TestPartyEndToEndScenarios(t *testing.T) {
	circ, err := gencircuit.SignedComparator(32)
	if err != nil {
		t.Fatalf("SignedComparator: %v", err)
	}
	dir := t.TempDir()

	cases := []struct {
		name          string
		aliceContent  string
		bobContent    string
		wantBobGreat  byte
		wantNotEqual  byte
	}{
		{"bob greater", "1,2,3", "4,5,6", 1, 1},
		{"alice greater", "4,5,6", "1,2,3", 0, 1},
		{"equal", "4,5,6", "4,5,6", 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			aliceFile := writeInputFile(t, dir, c.name+"-alice.txt", c.aliceContent)
			bobFile := writeInputFile(t, dir, c.name+"-bob.txt", c.bobContent)

			aliceInput, err := ScaleInput(aliceFile, 32)
			if err != nil {
				t.Fatalf("ScaleInput(alice): %v", err)
			}
			bobInput, err := ScaleInput(bobFile, 32)
			if err != nil {
				t.Fatalf("ScaleInput(bob): %v", err)
			}

			for _, useOT := range []bool{true, false} {
				alice, bob := runBoth(t, circ, aliceInput.Bits, bobInput.Bits, useOT)
				if alice[0] != c.wantBobGreat || alice[1] != c.wantNotEqual {
					t.Errorf("useOT=%v: alice decoded %v, want [%d,%d]", useOT, alice, c.wantBobGreat, c.wantNotEqual)
				}
				if bob[0] != c.wantBobGreat || bob[1] != c.wantNotEqual {
					t.Errorf("useOT=%v: bob decoded %v, want [%d,%d]", useOT, bob, c.wantBobGreat, c.wantNotEqual)
				}

				outcome, err := DecodeOutcome(circ.Out, aliceOutMap(alice, circ.Out))
				if err != nil {
					t.Fatalf("DecodeOutcome: %v", err)
				}
				_ = Describe(Alice, outcome, aliceInput.Max)
			}
		})
	}
}

func aliceOutMap(bits []byte, out []circuit.WireID) map[circuit.WireID]byte {
	m := make(map[circuit.WireID]byte, len(out))
	for i, w := range out {
		m[w] = bits[i]
	}
	return m
}

func TestScaleInputFixedPoint(t *testing.T) {
	dir := t.TempDir()
	path := writeInputFile(t, dir, "in.txt", "9.9,9.8")
	got, err := ScaleInput(path, 16)
	if err != nil {
		t.Fatalf("ScaleInput: %v", err)
	}
	if got.Scaled != 99 {
		t.Errorf("scaled = %d, want 99", got.Scaled)
	}
}

func TestScaleInputNegative(t *testing.T) {
	dir := t.TempDir()
	path := writeInputFile(t, dir, "in.txt", "-9.7")
	got, err := ScaleInput(path, 16)
	if err != nil {
		t.Fatalf("ScaleInput: %v", err)
	}
	want := int64(1<<16) - 97
	if got.Scaled != want {
		t.Errorf("scaled = %d, want %d", got.Scaled, want)
	}
}

func TestNewConfigRejectsUnknownRole(t *testing.T) {
	if _, err := NewConfig("carol", "c.json", "in.txt", "localhost:0", true, false, testLogger()); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestVerifyDetectsMismatch(t *testing.T) {
	dir := t.TempDir()
	otherFile := writeInputFile(t, dir, "other.txt", "1,2,3")
	if err := Verify(Alice, BobGreater, 6, otherFile); err == nil {
		t.Fatal("expected verification failure: alice claims 6 > other's 3 but outcome says bob greater")
	}
	if err := Verify(Alice, AliceGreater, 6, otherFile); err != nil {
		t.Errorf("unexpected verification failure: %v", err)
	}
}
