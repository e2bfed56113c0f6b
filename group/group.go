//
// group.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package group implements modular arithmetic over the order-q subgroup
// of quadratic residues of a safe prime p = 2q+1. It is the prime-order
// group the oblivious-transfer subprotocol runs in.
package group

import (
	"crypto/rand"
	"math/big"

	"github.com/cockroachdb/errors"
)

// ErrInvalidElement is returned when a group element received from a
// peer is out of range or otherwise fails validation.
var ErrInvalidElement = errors.New("group: invalid element")

// rfc3526Group14Hex is the 2048-bit MODP safe prime from RFC 3526,
// Group 14: p = 2q+1 with q prime.
const rfc3526Group14Hex = "" +
	"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC7" +
	"4020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F14" +
	"374FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B" +
	"7EDEE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163" +
	"BF0598DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208" +
	"552BB9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E" +
	"36CE3BE39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF69" +
	"5581718 3995497CEA956AE515D2261898FA051015728E5A8AACAA68FFFFFFFF" +
	"FFFFFFFF"

// Group is a cyclic group of prime order q, the subgroup of quadratic
// residues modulo the safe prime p = 2q+1, with fixed generator g.
type Group struct {
	P *big.Int
	Q *big.Int
	G *big.Int
}

// New2048 returns the default >=2048-bit group used in production runs.
func New2048() *Group {
	clean := make([]byte, 0, len(rfc3526Group14Hex))
	for _, r := range rfc3526Group14Hex {
		if r == ' ' || r == '\n' || r == '\t' {
			continue
		}
		clean = append(clean, byte(r))
	}
	p, ok := new(big.Int).SetString(string(clean), 16)
	if !ok {
		panic("group: invalid embedded safe prime")
	}
	return fromSafePrime(p)
}

// NewTest returns a small group suitable only for unit tests; p=23,
// q=11, both prime, g=4 generates the order-11 subgroup of QRs mod 23.
func NewTest() *Group {
	return fromSafePrime(big.NewInt(23))
}

func fromSafePrime(p *big.Int) *Group {
	q := new(big.Int).Sub(p, big.NewInt(1))
	q.Rsh(q, 1)
	// g=4 is a quadratic residue (4 = 2^2) and therefore, being
	// non-identity, generates the order-q subgroup of QRs mod p.
	g := big.NewInt(4)
	return &Group{P: p, Q: q, G: g}
}

// RandomExponent samples a uniform exponent in [1, q-1].
func (grp *Group) RandomExponent() (*big.Int, error) {
	// rand.Int draws from [0, q-2], shift into [1, q-1].
	qMinus1 := new(big.Int).Sub(grp.Q, big.NewInt(1))
	x, err := rand.Int(rand.Reader, qMinus1)
	if err != nil {
		return nil, errors.Wrap(err, "group: sampling random exponent")
	}
	return x.Add(x, big.NewInt(1)), nil
}

// GPow computes g^x mod p.
func (grp *Group) GPow(x *big.Int) *big.Int {
	return grp.Pow(grp.G, x)
}

// Pow computes a^x mod p, canonicalized to [0, p-1].
func (grp *Group) Pow(a, x *big.Int) *big.Int {
	return new(big.Int).Exp(a, x, grp.P)
}

// Mul computes a*b mod p.
func (grp *Group) Mul(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, grp.P)
}

// Inverse computes a^-1 mod p via Fermat's little theorem (p is prime).
func (grp *Group) Inverse(a *big.Int) *big.Int {
	exp := new(big.Int).Sub(grp.P, big.NewInt(2))
	return grp.Pow(a, exp)
}

// Validate checks that a is a canonical, in-range, non-identity element
// of Z_p. It does not test subgroup membership (the protocol in ot does
// that implicitly by construction), only the range and identity checks
// spec.md §4.F requires before use.
func (grp *Group) Validate(a *big.Int) error {
	if a == nil || a.Sign() <= 0 || a.Cmp(grp.P) >= 0 {
		return errors.Wrapf(ErrInvalidElement, "value out of range [1,p)")
	}
	if a.Cmp(big.NewInt(1)) == 0 {
		return errors.Wrapf(ErrInvalidElement, "unexpected identity element")
	}
	return nil
}
