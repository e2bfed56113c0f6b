//
// ot_test.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/5tefan543/yaocmp/group"
)

func runOT(t *testing.T, grp *group.Group, bit byte, m0, m1 []byte) []byte {
	t.Helper()

	sender, err := NewSender(grp)
	if err != nil {
		t.Fatalf("NewSender: %v", err)
	}
	chooser, err := NewChooser(grp, bit)
	if err != nil {
		t.Fatalf("NewChooser: %v", err)
	}

	c := sender.Commit()
	h, err := chooser.Choose(c)
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	c1, e0, e1, err := sender.Transfer(h, m0, m1)
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	mb, err := chooser.Open(c1, e0, e1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return mb
}

func TestOTCorrectnessBothBits(t *testing.T) {
	grp := group.NewTest()
	m0 := []byte("message-zero----")
	m1 := []byte("message-one-----")

	got0 := runOT(t, grp, 0, m0, m1)
	if !bytes.Equal(got0, m0) {
		t.Fatalf("bit=0: got %x, want %x", got0, m0)
	}

	got1 := runOT(t, grp, 1, m0, m1)
	if !bytes.Equal(got1, m1) {
		t.Fatalf("bit=1: got %x, want %x", got1, m1)
	}
}

func TestOTRejectsUnequalLengths(t *testing.T) {
	grp := group.NewTest()
	sender, _ := NewSender(grp)
	chooser, _ := NewChooser(grp, 0)

	h, err := chooser.Choose(sender.Commit())
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	_, _, _, err = sender.Transfer(h, []byte("short"), []byte("longer message"))
	if err == nil {
		t.Fatal("expected unequal-length messages to be rejected")
	}
}

// TestOTInputHiding checks property 4 of spec.md §8: H0*H1 == C always
// holds, so a sender observing only H cannot distinguish bit=0 from
// bit=1, and that H itself ranges over many distinct values rather than
// collapsing to a small set that would leak the bit.
func TestOTInputHiding(t *testing.T) {
	grp := group.NewTest()

	const trials = 200
	seen0 := make(map[string]bool)
	seen1 := make(map[string]bool)

	for i := 0; i < trials; i++ {
		sender, err := NewSender(grp)
		if err != nil {
			t.Fatalf("NewSender: %v", err)
		}
		c := sender.Commit()

		chooser0, _ := NewChooser(grp, 0)
		h0, err := chooser0.Choose(c)
		if err != nil {
			t.Fatalf("Choose(0): %v", err)
		}
		chooser1, _ := NewChooser(grp, 1)
		h1, err := chooser1.Choose(c)
		if err != nil {
			t.Fatalf("Choose(1): %v", err)
		}

		// H0 * H1 must equal C regardless of which bit produced which H,
		// which is exactly why a sender cannot tell them apart.
		product := grp.Mul(h0, h1)
		if product.Cmp(c) != 0 {
			t.Fatalf("H0*H1 = %v, want C = %v", product, c)
		}

		seen0[h0.String()] = true
		seen1[h1.String()] = true
	}

	// The order-q subgroup has q-1 non-identity elements; over this many
	// trials H for each bit should reach every one of them.
	want := int(grp.Q.Int64()) - 1
	if len(seen0) < want {
		t.Fatalf("H for bit=0 only took %d distinct values over %d trials, want %d", len(seen0), trials, want)
	}
	if len(seen1) < want {
		t.Fatalf("H for bit=1 only took %d distinct values over %d trials, want %d", len(seen1), trials, want)
	}
}

func TestOTRejectsOutOfRangeCommitment(t *testing.T) {
	grp := group.NewTest()
	chooser, _ := NewChooser(grp, 0)
	_, err := chooser.Choose(new(big.Int).Set(grp.P))
	if err == nil {
		t.Fatal("expected out-of-range commitment to be rejected")
	}
}
