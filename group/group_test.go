//
// group_test.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package group

import (
	"math/big"
	"testing"
)

func TestExponentRange(t *testing.T) {
	grp := NewTest()
	for i := 0; i < 200; i++ {
		x, err := grp.RandomExponent()
		if err != nil {
			t.Fatalf("RandomExponent: %v", err)
		}
		if x.Sign() <= 0 || x.Cmp(grp.Q) >= 0 {
			t.Fatalf("exponent %v out of range [1,%v)", x, grp.Q)
		}
	}
}

func TestMulInverse(t *testing.T) {
	grp := NewTest()
	a := grp.GPow(big.NewInt(3))
	inv := grp.Inverse(a)
	got := grp.Mul(a, inv)
	if got.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("a * a^-1 = %v, want 1", got)
	}
}

func TestPowHomomorphism(t *testing.T) {
	grp := NewTest()
	x := big.NewInt(3)
	y := big.NewInt(4)

	lhs := grp.GPow(new(big.Int).Add(x, y))
	rhs := grp.Mul(grp.GPow(x), grp.GPow(y))
	if lhs.Cmp(rhs) != 0 {
		t.Fatalf("g^(x+y) = %v, g^x*g^y = %v", lhs, rhs)
	}
}

func TestValidate(t *testing.T) {
	grp := NewTest()

	if err := grp.Validate(big.NewInt(1)); err == nil {
		t.Fatal("expected identity element to be rejected")
	}
	if err := grp.Validate(new(big.Int).Set(grp.P)); err == nil {
		t.Fatal("expected out-of-range element to be rejected")
	}
	if err := grp.Validate(grp.G); err != nil {
		t.Fatalf("expected generator to validate, got %v", err)
	}
}

func TestGeneratorOrder(t *testing.T) {
	grp := NewTest()
	one := grp.GPow(grp.Q)
	if one.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("g^q = %v, want 1 (g should have order q)", one)
	}
}
