//
// alice.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.

package party

import (
	"github.com/cockroachdb/errors"

	"github.com/5tefan543/yaocmp/circuit"
	"github.com/5tefan543/yaocmp/garble"
	"github.com/5tefan543/yaocmp/group"
	"github.com/5tefan543/yaocmp/ot"
	"github.com/5tefan543/yaocmp/transport"
)

// RunAlice plays the garbler's role of the protocol over ch: it
// garbles circ, ships the garbled artifact and its own input labels,
// drives the sender side of one oblivious transfer per evaluator-input
// wire (or, with OT disabled, ships both label pairs in the clear),
// and finally decodes and returns the evaluator's result. Grounded in
// original_source/src/alice.py's YaoGarbler.start/evaluate.
func RunAlice(ch transport.Channel, circ *circuit.Circuit, aliceBits []byte, cfg *Config) (map[circuit.WireID]byte, error) {
	log := cfg.Logger
	log.Info("alice: garbling circuit", "circuit", circ.ID)

	g, err := garble.New(circ)
	if err != nil {
		return nil, errors.Wrap(err, "party: alice garbling")
	}
	artifact, err := g.Garble()
	if err != nil {
		return nil, errors.Wrap(err, "party: alice garbling")
	}

	pkgFrame, err := transport.Encode(transport.KindCircuitPackage, transport.CircuitPackage{
		Circuit: artifact.Circuit,
		Tables:  artifact.Tables,
		OutputP: artifact.OutputP,
	})
	if err != nil {
		return nil, errors.Wrap(err, "party: alice encoding circuit package")
	}
	ackFrame, err := ch.SendAndWait(pkgFrame)
	if err != nil {
		return nil, errors.Wrap(err, "party: alice sending circuit package")
	}
	if ackFrame.Kind != transport.KindAck {
		return nil, errors.Wrapf(ErrProtocol, "expected Ack, got %s", ackFrame.Kind)
	}
	log.Debug("alice: circuit package acknowledged")

	labels, sigmas, err := g.InputLabelsForOwnWires(aliceBits)
	if err != nil {
		return nil, errors.Wrap(err, "party: alice's own input labels")
	}
	labelsFrame, err := transport.Encode(transport.KindGarblerInputLabels, transport.GarblerInputLabels{
		Labels: labels,
		Sigmas: sigmas,
	})
	if err != nil {
		return nil, errors.Wrap(err, "party: alice encoding input labels")
	}
	if err := ch.Send(labelsFrame); err != nil {
		return nil, errors.Wrap(err, "party: alice sending input labels")
	}

	peerPairs, err := g.InputLabelPairsForPeerWires()
	if err != nil {
		return nil, errors.Wrap(err, "party: alice's peer input label pairs")
	}

	if cfg.ObliviousTransfer {
		if err := aliceRunOT(ch, circ, peerPairs); err != nil {
			return nil, err
		}
	} else {
		log.Warn("alice: oblivious transfer disabled, shipping both labels in the clear")
		clearFrame, err := transport.Encode(transport.KindClearInputPairs, transport.ClearInputPairs{Pairs: peerPairs})
		if err != nil {
			return nil, errors.Wrap(err, "party: alice encoding clear input pairs")
		}
		if err := ch.Send(clearFrame); err != nil {
			return nil, errors.Wrap(err, "party: alice sending clear input pairs")
		}
	}

	evalFrame, err := ch.Receive()
	if err != nil {
		return nil, errors.Wrap(err, "party: alice awaiting evaluation")
	}
	if evalFrame.Kind != transport.KindEvaluation {
		return nil, errors.Wrapf(ErrProtocol, "expected Evaluation, got %s", evalFrame.Kind)
	}
	var ev transport.Evaluation
	if err := transport.Decode(evalFrame, &ev); err != nil {
		return nil, errors.Wrap(err, "party: alice decoding evaluation")
	}

	bits, err := garble.Decode(artifact, ev.Sigma)
	if err != nil {
		return nil, errors.Wrap(err, "party: alice decoding output")
	}

	resultFrame, err := transport.Encode(transport.KindDecodedResult, transport.DecodedResult{Bits: bits})
	if err != nil {
		return nil, errors.Wrap(err, "party: alice encoding decoded result")
	}
	if err := ch.Send(resultFrame); err != nil {
		return nil, errors.Wrap(err, "party: alice sending decoded result")
	}

	log.Info("alice: protocol complete", "output", bits)
	return bits, nil
}

// aliceRunOT drives, in circ.Bob order, one OT sender instance per
// evaluator-owned input wire.
func aliceRunOT(ch transport.Channel, circ *circuit.Circuit, peerPairs map[circuit.WireID]garble.LabeledPair) error {
	grp := group.New2048()
	groupFrame, err := transport.Encode(transport.KindGroupParams, transport.GroupParams{P: grp.P, Q: grp.Q, G: grp.G})
	if err != nil {
		return errors.Wrap(err, "party: alice encoding group params")
	}
	if err := ch.Send(groupFrame); err != nil {
		return errors.Wrap(err, "party: alice sending group params")
	}

	for _, w := range circ.Bob {
		startFrame, err := ch.Receive()
		if err != nil {
			return errors.Wrap(err, "party: alice awaiting OTStart")
		}
		if startFrame.Kind != transport.KindOTStart {
			return errors.Wrapf(ErrProtocol, "expected OTStart, got %s", startFrame.Kind)
		}
		var start transport.OTStart
		if err := transport.Decode(startFrame, &start); err != nil {
			return errors.Wrap(err, "party: alice decoding OTStart")
		}
		if start.Wire != w {
			return errors.Wrapf(ErrProtocol, "OTStart named wire %d, expected %d", start.Wire, w)
		}

		sender, err := ot.NewSender(grp)
		if err != nil {
			return errors.Wrapf(err, "party: alice starting OT for wire %d", w)
		}
		commitFrame, err := transport.Encode(transport.KindOTCommit, transport.OTCommit{C: sender.Commit()})
		if err != nil {
			return errors.Wrap(err, "party: alice encoding OTCommit")
		}
		choiceFrame, err := ch.SendAndWait(commitFrame)
		if err != nil {
			return errors.Wrapf(err, "party: alice OT commit for wire %d", w)
		}
		if choiceFrame.Kind != transport.KindOTChoice {
			return errors.Wrapf(ErrProtocol, "expected OTChoice, got %s", choiceFrame.Kind)
		}
		var choice transport.OTChoice
		if err := transport.Decode(choiceFrame, &choice); err != nil {
			return errors.Wrap(err, "party: alice decoding OTChoice")
		}

		pair := peerPairs[w]
		m0 := packLabelSigma(pair.Zero.Label, pair.Zero.Sigma)
		m1 := packLabelSigma(pair.One.Label, pair.One.Sigma)
		c1, e0, e1, err := sender.Transfer(choice.H, m0, m1)
		if err != nil {
			return errors.Wrapf(err, "party: alice OT transfer for wire %d", w)
		}
		ctFrame, err := transport.Encode(transport.KindOTCiphertexts, transport.OTCiphertexts{C1: c1, E0: e0, E1: e1})
		if err != nil {
			return errors.Wrap(err, "party: alice encoding OTCiphertexts")
		}
		if err := ch.Send(ctFrame); err != nil {
			return errors.Wrapf(err, "party: alice sending OT ciphertexts for wire %d", w)
		}
	}
	return nil
}
