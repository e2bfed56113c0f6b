//
// parser.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"encoding/json"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// jsonFile mirrors the top-level circuit artifact format of spec.md §6:
// { "name": str, "circuits": [Circuit] }.
type jsonFile struct {
	Name     string        `json:"name"`
	Circuits []jsonCircuit `json:"circuits"`
}

type jsonCircuit struct {
	ID    string    `json:"id"`
	Alice []WireID  `json:"alice"`
	Bob   []WireID  `json:"bob"`
	Out   []WireID  `json:"out"`
	Gates []jsonGate `json:"gates"`
}

type jsonGate struct {
	ID   WireID   `json:"id"`
	Type string   `json:"type"`
	In   []WireID `json:"in"`
}

// Parse loads and validates the single circuit contained in an artifact
// file. The current implementation supports exactly one circuit per
// file, matching the reference application's "current implementation
// only supports one circuit at a time" restriction.
func Parse(path string) (*Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "circuit: opening %q", path)
	}
	defer f.Close()

	c, err := ParseReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "circuit: parsing %q", path)
	}
	return c, nil
}

// ParseReader loads and validates a circuit artifact from r.
func ParseReader(r io.Reader) (*Circuit, error) {
	var file jsonFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&file); err != nil {
		return nil, errors.Wrap(err, "circuit: invalid JSON")
	}
	if len(file.Circuits) != 1 {
		return nil, errors.Wrapf(ErrValidation,
			"expected exactly one circuit, found %d", len(file.Circuits))
	}
	jc := file.Circuits[0]

	gates := make([]Gate, len(jc.Gates))
	for i, jg := range jc.Gates {
		t, err := parseGateType(jg.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
		gates[i] = Gate{ID: jg.ID, Type: t, In: jg.In}
	}

	c := &Circuit{
		Name:  file.Name,
		ID:    jc.ID,
		Alice: jc.Alice,
		Bob:   jc.Bob,
		Out:   jc.Out,
		Gates: gates,
	}
	if len(c.Alice) != len(c.Bob) {
		return nil, errors.Wrapf(ErrValidation,
			"alice has %d input wires, bob has %d; comparator circuits require equal widths",
			len(c.Alice), len(c.Bob))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Write serializes the circuit to the JSON artifact format and writes
// it to path.
func Write(path string, name string, c *Circuit) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "circuit: creating %q", path)
	}
	defer f.Close()
	return WriteTo(f, name, c)
}

// WriteTo serializes the circuit to w.
func WriteTo(w io.Writer, name string, c *Circuit) error {
	jc := jsonCircuit{
		ID:    c.ID,
		Alice: c.Alice,
		Bob:   c.Bob,
		Out:   c.Out,
		Gates: make([]jsonGate, len(c.Gates)),
	}
	for i, g := range c.Gates {
		jc.Gates[i] = jsonGate{ID: g.ID, Type: g.Type.String(), In: g.In}
	}
	file := jsonFile{Name: name, Circuits: []jsonCircuit{jc}}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(file); err != nil {
		return errors.Wrap(err, "circuit: encoding JSON")
	}
	return nil
}
