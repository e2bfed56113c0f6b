//
// ot.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.

// Package ot implements 1-out-of-2 oblivious transfer using the
// Diffie-Hellman based protocol attributed to Nigel Smart's
// "Cryptography Made Simple" (the same scheme the reference
// implementation's garbled_circuit/ot.py follows). It assumes an
// honest-but-curious adversary: spec.md's Non-goals exclude malicious
// security and OT extensions.
package ot

import (
	"math/big"

	"github.com/cockroachdb/errors"

	"github.com/5tefan543/yaocmp/group"
	"github.com/5tefan543/yaocmp/symmetric"
)

// ErrLengthMismatch is returned when the sender's two messages are not
// the same length; spec.md §3 requires the sender to pad them equal.
var ErrLengthMismatch = errors.New("ot: m0 and m1 must have equal length")

// ErrInvalidElement is returned when a peer-supplied group element
// fails validation (spec.md §4.F, §7 "protocol-invariant").
var ErrInvalidElement = group.ErrInvalidElement

// Sender is the garbler's side of one OT instance: it holds the two
// candidate messages and offers exactly one, chosen by the chooser,
// without learning which.
type Sender struct {
	grp *group.Group
	r   *big.Int
	c   *big.Int
}

// NewSender starts a new OT instance over grp. Step 1 of spec.md §4.F:
// sample r and commit to C = g^r.
func NewSender(grp *group.Group) (*Sender, error) {
	r, err := grp.RandomExponent()
	if err != nil {
		return nil, errors.Wrap(err, "ot: sender sampling r")
	}
	return &Sender{
		grp: grp,
		r:   r,
		c:   grp.GPow(r),
	}, nil
}

// Commit returns C = g^r, to be sent to the chooser.
func (s *Sender) Commit() *big.Int {
	return new(big.Int).Set(s.c)
}

// Transfer completes step 3 of spec.md §4.F given the chooser's H
// (conventionally H0) received in response to Commit. It returns the
// sender's second commitment C1 = g^k and the two encrypted messages.
func (s *Sender) Transfer(h0 *big.Int, m0, m1 []byte) (c1 *big.Int, e0, e1 []byte, err error) {
	if len(m0) != len(m1) {
		return nil, nil, nil, errors.Wrapf(ErrLengthMismatch,
			"len(m0)=%d len(m1)=%d", len(m0), len(m1))
	}
	if err := s.grp.Validate(h0); err != nil {
		return nil, nil, nil, errors.Wrap(err, "ot: sender validating h0")
	}

	h1 := s.grp.Mul(s.c, s.grp.Inverse(h0))

	k, err := s.grp.RandomExponent()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "ot: sender sampling k")
	}
	c1 = s.grp.GPow(k)

	pad0 := symmetric.KDF(s.grp.Pow(h0, k).Bytes(), len(m0))
	pad1 := symmetric.KDF(s.grp.Pow(h1, k).Bytes(), len(m1))

	e0, err = symmetric.Xor(m0, pad0)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "ot: sender masking m0")
	}
	e1, err = symmetric.Xor(m1, pad1)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "ot: sender masking m1")
	}
	return c1, e0, e1, nil
}

// Chooser is the evaluator's side of one OT instance: it holds the
// selection bit and learns exactly the one message it chose.
type Chooser struct {
	grp *group.Group
	bit byte
	x   *big.Int
}

// NewChooser prepares a chooser for selection bit bit (0 or 1).
func NewChooser(grp *group.Group, bit byte) (*Chooser, error) {
	if bit != 0 && bit != 1 {
		return nil, errors.Newf("ot: invalid selection bit %d", bit)
	}
	return &Chooser{grp: grp, bit: bit}, nil
}

// Choose completes step 2 of spec.md §4.F given the sender's commitment
// c. It returns H, the value the chooser sends back: H=X if bit=0,
// H=C*X^-1 if bit=1, so the sender cannot distinguish the two cases.
// For bit=1, x is sampled again whenever H would be the identity, which
// the sender's validation rejects.
func (ch *Chooser) Choose(c *big.Int) (*big.Int, error) {
	if err := ch.grp.Validate(c); err != nil {
		return nil, errors.Wrap(err, "ot: chooser validating c")
	}
	for {
		x, err := ch.grp.RandomExponent()
		if err != nil {
			return nil, errors.Wrap(err, "ot: chooser sampling x")
		}
		ch.x = x

		xPow := ch.grp.GPow(x)
		if ch.bit == 0 {
			return xPow, nil
		}
		h := ch.grp.Mul(c, ch.grp.Inverse(xPow))
		if h.Cmp(big.NewInt(1)) != 0 {
			return h, nil
		}
	}
}

// Open completes step 4 of spec.md §4.F: given the sender's second
// commitment and the two masked messages, recover exactly m_bit.
func (ch *Chooser) Open(c1 *big.Int, e0, e1 []byte) ([]byte, error) {
	if err := ch.grp.Validate(c1); err != nil {
		return nil, errors.Wrap(err, "ot: chooser validating c1")
	}
	e := e0
	if ch.bit == 1 {
		e = e1
	}
	pad := symmetric.KDF(ch.grp.Pow(c1, ch.x).Bytes(), len(e))
	return symmetric.Xor(e, pad)
}
