//
// symmetric.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package symmetric implements the symmetric-key primitives the garbler
// and evaluator use: an extendable-output key-derivation function, a
// fixed-size authenticated encryption scheme for garbled-table rows, and
// byte-wise XOR for the oblivious-transfer pad.
package symmetric

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/sha3"
)

// ErrAuth is returned when Dec fails to authenticate a ciphertext,
// meaning it was decrypted with the wrong key.
var ErrAuth = errors.New("symmetric: authentication failed")

// ErrLengthMismatch is returned by Xor when its operands are not the
// same length.
var ErrLengthMismatch = errors.New("symmetric: length mismatch")

// KDF derives an n-byte pseudo-random string from secret using SHAKE-256,
// the extendable-output hash spec.md §4.B calls for.
func KDF(secret []byte, n int) []byte {
	h := sha3.NewShake256()
	// Unkeyed Write never errors for sha3's XOF implementation.
	_, _ = h.Write(secret)
	out := make([]byte, n)
	_, _ = h.Read(out)
	return out
}

// Enc authenticated-encrypts plaintext under key, using AES-GCM with a
// fresh random nonce that is prepended to the returned ciphertext. A
// wire label keys every garbled row and gate its wire feeds (see
// garble.Garbler), so the nonce is what keeps each encryption unique.
func Enc(key, plaintext []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, errors.Wrap(err, "symmetric: Enc")
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.Wrap(err, "symmetric: Enc nonce")
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Dec authenticated-decrypts a ciphertext produced by Enc. It returns
// ErrAuth (wrapped) if key does not match the key Enc was called with.
func Dec(key, ciphertext []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, errors.Wrap(err, "symmetric: Dec")
	}
	n := aead.NonceSize()
	if len(ciphertext) < n {
		return nil, errors.Wrap(ErrAuth, "Dec: ciphertext shorter than nonce")
	}
	plaintext, err := aead.Open(nil, ciphertext[:n], ciphertext[n:], nil)
	if err != nil {
		return nil, errors.Wrapf(ErrAuth, "Dec: %v", err)
	}
	return plaintext, nil
}

// PackPayload encodes a (label, sigma) pair -- the payload a garbled
// table row decrypts to -- into a flat byte string.
func PackPayload(label []byte, sigma byte) []byte {
	return append(append([]byte{}, label...), sigma)
}

// UnpackPayload is the inverse of PackPayload. It returns ErrAuth if
// payload is empty; a one-byte payload yields an empty label.
func UnpackPayload(payload []byte) (label []byte, sigma byte, err error) {
	if len(payload) < 1 {
		return nil, 0, errors.Wrap(ErrAuth, "UnpackPayload: empty payload")
	}
	return payload[:len(payload)-1], payload[len(payload)-1], nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	derived := KDF(key, 32)
	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Xor computes the byte-wise XOR of a and b, which must have equal
// length.
func Xor(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, errors.Wrapf(ErrLengthMismatch, "got %d and %d bytes",
			len(a), len(b))
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}
