//
// bob.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.

package party

import (
	"github.com/cockroachdb/errors"

	"github.com/5tefan543/yaocmp/circuit"
	"github.com/5tefan543/yaocmp/evaluate"
	"github.com/5tefan543/yaocmp/garble"
	"github.com/5tefan543/yaocmp/group"
	"github.com/5tefan543/yaocmp/ot"
	"github.com/5tefan543/yaocmp/transport"
)

// RunBob plays the evaluator's role of the protocol over ch: it
// receives the garbled artifact and the garbler's input labels, drives
// the chooser side of one oblivious transfer per its own input wire
// (or reads both label pairs in the clear, with OT disabled),
// evaluates the circuit, and returns the decoded output it receives
// back from the garbler. Grounded in original_source/src/bob.py's
// Bob.listen/send_evaluation.
func RunBob(ch transport.Channel, bobBits []byte, cfg *Config) (map[circuit.WireID]byte, error) {
	log := cfg.Logger

	pkgFrame, err := ch.Receive()
	if err != nil {
		return nil, errors.Wrap(err, "party: bob awaiting circuit package")
	}
	if pkgFrame.Kind != transport.KindCircuitPackage {
		return nil, errors.Wrapf(ErrProtocol, "expected CircuitPackage, got %s", pkgFrame.Kind)
	}
	var pkg transport.CircuitPackage
	if err := transport.Decode(pkgFrame, &pkg); err != nil {
		return nil, errors.Wrap(err, "party: bob decoding circuit package")
	}
	if err := pkg.Circuit.Validate(); err != nil {
		return nil, errors.Wrap(err, "party: bob validating received circuit")
	}
	if len(bobBits) != len(pkg.Circuit.Bob) {
		return nil, errors.Wrapf(ErrConfiguration,
			"have %d input bits for %d evaluator input wires", len(bobBits), len(pkg.Circuit.Bob))
	}
	log.Info("bob: received circuit package", "circuit", pkg.Circuit.ID)

	ackFrame, err := transport.Encode(transport.KindAck, transport.Ack{})
	if err != nil {
		return nil, errors.Wrap(err, "party: bob encoding ack")
	}
	if err := ch.Send(ackFrame); err != nil {
		return nil, errors.Wrap(err, "party: bob acknowledging circuit package")
	}

	labelsFrame, err := ch.Receive()
	if err != nil {
		return nil, errors.Wrap(err, "party: bob awaiting garbler input labels")
	}
	if labelsFrame.Kind != transport.KindGarblerInputLabels {
		return nil, errors.Wrapf(ErrProtocol, "expected GarblerInputLabels, got %s", labelsFrame.Kind)
	}
	var aliceLabels transport.GarblerInputLabels
	if err := transport.Decode(labelsFrame, &aliceLabels); err != nil {
		return nil, errors.Wrap(err, "party: bob decoding garbler input labels")
	}

	ev := evaluate.New(pkg.Circuit)
	for w, label := range aliceLabels.Labels {
		ev.Seed(w, label, aliceLabels.Sigmas[w])
	}

	if cfg.ObliviousTransfer {
		if err := bobRunOT(ch, pkg.Circuit, bobBits, ev); err != nil {
			return nil, err
		}
	} else {
		log.Warn("bob: oblivious transfer disabled, reading both labels in the clear")
		clearFrame, err := ch.Receive()
		if err != nil {
			return nil, errors.Wrap(err, "party: bob awaiting clear input pairs")
		}
		if clearFrame.Kind != transport.KindClearInputPairs {
			return nil, errors.Wrapf(ErrProtocol, "expected ClearInputPairs, got %s", clearFrame.Kind)
		}
		var clear transport.ClearInputPairs
		if err := transport.Decode(clearFrame, &clear); err != nil {
			return nil, errors.Wrap(err, "party: bob decoding clear input pairs")
		}
		for i, w := range pkg.Circuit.Bob {
			bit, err := bitAt(bobBits, i, w)
			if err != nil {
				return nil, err
			}
			pair, ok := clear.Pairs[w]
			if !ok {
				return nil, errors.Wrapf(ErrProtocol, "no clear label pair for wire %d", w)
			}
			if bit == 0 {
				ev.Seed(w, pair.Zero.Label, pair.Zero.Sigma)
			} else {
				ev.Seed(w, pair.One.Label, pair.One.Sigma)
			}
		}
	}

	artifact := &garble.Artifact{Circuit: pkg.Circuit, Tables: pkg.Tables, OutputP: pkg.OutputP}
	sigma, err := ev.Evaluate(artifact)
	if err != nil {
		return nil, errors.Wrap(err, "party: bob evaluating circuit")
	}

	evalFrame, err := transport.Encode(transport.KindEvaluation, transport.Evaluation{Sigma: sigma})
	if err != nil {
		return nil, errors.Wrap(err, "party: bob encoding evaluation")
	}
	if err := ch.Send(evalFrame); err != nil {
		return nil, errors.Wrap(err, "party: bob sending evaluation")
	}

	resultFrame, err := ch.Receive()
	if err != nil {
		return nil, errors.Wrap(err, "party: bob awaiting decoded result")
	}
	if resultFrame.Kind != transport.KindDecodedResult {
		return nil, errors.Wrapf(ErrProtocol, "expected DecodedResult, got %s", resultFrame.Kind)
	}
	var result transport.DecodedResult
	if err := transport.Decode(resultFrame, &result); err != nil {
		return nil, errors.Wrap(err, "party: bob decoding result")
	}

	log.Info("bob: protocol complete", "output", result.Bits)
	return result.Bits, nil
}

// bobRunOT drives, in circ.Bob order matching the garbler's side, one
// OT chooser instance per own input wire.
func bobRunOT(ch transport.Channel, circ *circuit.Circuit, bobBits []byte, ev *evaluate.Evaluator) error {
	groupFrame, err := ch.Receive()
	if err != nil {
		return errors.Wrap(err, "party: bob awaiting group params")
	}
	if groupFrame.Kind != transport.KindGroupParams {
		return errors.Wrapf(ErrProtocol, "expected GroupParams, got %s", groupFrame.Kind)
	}
	var gp transport.GroupParams
	if err := transport.Decode(groupFrame, &gp); err != nil {
		return errors.Wrap(err, "party: bob decoding group params")
	}
	grp := &group.Group{P: gp.P, Q: gp.Q, G: gp.G}

	for i, w := range circ.Bob {
		bit, err := bitAt(bobBits, i, w)
		if err != nil {
			return err
		}

		startFrame, err := transport.Encode(transport.KindOTStart, transport.OTStart{Wire: w})
		if err != nil {
			return errors.Wrap(err, "party: bob encoding OTStart")
		}
		commitFrame, err := ch.SendAndWait(startFrame)
		if err != nil {
			return errors.Wrapf(err, "party: bob starting OT for wire %d", w)
		}
		if commitFrame.Kind != transport.KindOTCommit {
			return errors.Wrapf(ErrProtocol, "expected OTCommit, got %s", commitFrame.Kind)
		}
		var commit transport.OTCommit
		if err := transport.Decode(commitFrame, &commit); err != nil {
			return errors.Wrap(err, "party: bob decoding OTCommit")
		}

		chooser, err := ot.NewChooser(grp, bit)
		if err != nil {
			return errors.Wrapf(err, "party: bob creating OT chooser for wire %d", w)
		}
		h, err := chooser.Choose(commit.C)
		if err != nil {
			return errors.Wrapf(err, "party: bob OT choice for wire %d", w)
		}
		choiceFrame, err := transport.Encode(transport.KindOTChoice, transport.OTChoice{H: h})
		if err != nil {
			return errors.Wrap(err, "party: bob encoding OTChoice")
		}
		if err := ch.Send(choiceFrame); err != nil {
			return errors.Wrapf(err, "party: bob sending OT choice for wire %d", w)
		}

		ctFrame, err := ch.Receive()
		if err != nil {
			return errors.Wrapf(err, "party: bob awaiting OT ciphertexts for wire %d", w)
		}
		if ctFrame.Kind != transport.KindOTCiphertexts {
			return errors.Wrapf(ErrProtocol, "expected OTCiphertexts, got %s", ctFrame.Kind)
		}
		var ct transport.OTCiphertexts
		if err := transport.Decode(ctFrame, &ct); err != nil {
			return errors.Wrap(err, "party: bob decoding OT ciphertexts")
		}
		m, err := chooser.Open(ct.C1, ct.E0, ct.E1)
		if err != nil {
			return errors.Wrapf(err, "party: bob opening OT for wire %d", w)
		}
		label, sigma, err := unpackLabelSigma(m)
		if err != nil {
			return errors.Wrapf(err, "party: bob unpacking OT result for wire %d", w)
		}
		ev.Seed(w, label, sigma)
	}
	return nil
}
