//
// transport.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.

// Package transport implements the framed request/response message
// channel the garbler and evaluator use to exchange protocol frames.
// A Frame is a tagged union: a Kind plus a gob-encoded payload whose
// concrete type is determined by Kind. Two Channel implementations are
// provided: Pipe, a pair of connected in-process channels for tests,
// and Dial/Listen, a length-prefixed framing over TCP.
package transport

import (
	"bytes"
	"encoding/gob"

	"github.com/cockroachdb/errors"
)

// ErrClosed is returned by Send/Receive once the channel has been
// closed, and wraps any I/O error observed on a closed connection.
var ErrClosed = errors.New("transport: channel closed")

// ErrFraming is returned when a received frame cannot be decoded into
// its expected payload type.
var ErrFraming = errors.New("transport: framing error")

// Kind tags the payload carried by a Frame.
type Kind byte

// The frame kinds of spec.md §6's wire protocol, plus the OT-disabled
// debug variant.
const (
	KindCircuitPackage Kind = iota
	KindAck
	KindGarblerInputLabels
	KindGroupParams
	KindOTStart
	KindOTCommit
	KindOTChoice
	KindOTCiphertexts
	KindEvaluation
	KindClearInputPairs
	KindDecodedResult
)

func (k Kind) String() string {
	switch k {
	case KindCircuitPackage:
		return "CircuitPackage"
	case KindAck:
		return "Ack"
	case KindGarblerInputLabels:
		return "GarblerInputLabels"
	case KindGroupParams:
		return "GroupParams"
	case KindOTStart:
		return "OTStart"
	case KindOTCommit:
		return "OTCommit"
	case KindOTChoice:
		return "OTChoice"
	case KindOTCiphertexts:
		return "OTCiphertexts"
	case KindEvaluation:
		return "Evaluation"
	case KindClearInputPairs:
		return "ClearInputPairs"
	case KindDecodedResult:
		return "DecodedResult"
	default:
		return "Unknown"
	}
}

// Frame is one message on the wire: a kind tag and its gob-encoded
// payload.
type Frame struct {
	Kind    Kind
	Payload []byte
}

// Channel is a synchronous, strictly-FIFO-per-direction message
// channel between the garbler and the evaluator, per spec.md §4.G.
type Channel interface {
	Send(f Frame) error
	Receive() (Frame, error)
	SendAndWait(f Frame) (Frame, error)
	Poll() (<-chan Frame, error)
	Close() error
}

// Encode builds a Frame of the given kind carrying the gob encoding of
// v.
func Encode(kind Kind, v interface{}) (Frame, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return Frame{}, errors.Wrapf(err, "transport: encoding %s frame", kind)
	}
	return Frame{Kind: kind, Payload: buf.Bytes()}, nil
}

// Decode unmarshals f's payload into v, which must be a pointer to the
// payload type associated with f.Kind.
func Decode(f Frame, v interface{}) error {
	if err := gob.NewDecoder(bytes.NewReader(f.Payload)).Decode(v); err != nil {
		return errors.Wrapf(ErrFraming, "decoding %s frame: %v", f.Kind, err)
	}
	return nil
}
