package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mehinger01/garage-layout-planner/pkg/errors"
)

// planFile is the JSON interchange shape: openings grouped by kind under
// "features", the way the intake tooling writes layout files.
type planFile struct {
	Envelope Envelope `json:"envelope"`
	Features struct {
		GarageDoor      *Opening  `json:"garageDoor"`
		EntryDoors      []Opening `json:"entryDoors"`
		Windows         []Opening `json:"windows"`
		ElectricalPanel *Opening  `json:"electricalPanel"`
	} `json:"features"`
	Openings []Opening `json:"openings"`
	Zones    []Zone    `json:"zones"`
}

// ReadJSON decodes a plan from JSON. Both the grouped "features" shape and
// a flat "openings" list are accepted; grouped openings get their kind
// assigned from the group they came from.
func ReadJSON(r io.Reader) (*Plan, error) {
	var pf planFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&pf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode plan JSON")
	}
	return pf.toPlan(), nil
}

func (pf *planFile) toPlan() *Plan {
	p := &Plan{Envelope: pf.Envelope, Zones: pf.Zones}
	p.Openings = append(p.Openings, pf.Openings...)
	if gd := pf.Features.GarageDoor; gd != nil {
		gd.Kind = OpeningGarageDoor
		p.Openings = append(p.Openings, *gd)
	}
	for _, d := range pf.Features.EntryDoors {
		d.Kind = OpeningEntryDoor
		p.Openings = append(p.Openings, d)
	}
	for _, w := range pf.Features.Windows {
		w.Kind = OpeningWindow
		p.Openings = append(p.Openings, w)
	}
	if ep := pf.Features.ElectricalPanel; ep != nil {
		ep.Kind = OpeningElectricalPanel
		p.Openings = append(p.Openings, *ep)
	}
	p.normalize()
	return p
}

// normalize snaps wall values to the cardinal enum and fills default colors.
func (p *Plan) normalize() {
	for i := range p.Openings {
		p.Openings[i].Wall = ParseWall(string(p.Openings[i].Wall))
	}
	for i := range p.Zones {
		z := &p.Zones[i]
		z.Wall = ParseWall(string(z.Wall))
		if z.Color == "" {
			z.Color = z.Type.Info().Color
		}
	}
}

// ReadTOML decodes a plan from TOML.
func ReadTOML(r io.Reader) (*Plan, error) {
	var p Plan
	if _, err := toml.NewDecoder(r).Decode(&p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode plan TOML")
	}
	p.normalize()
	return &p, nil
}

// LoadFile reads a plan from path, dispatching on the file extension:
// .toml decodes as TOML, everything else as JSON.
func LoadFile(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "plan file not found: %s", path)
		}
		return nil, fmt.Errorf("open plan: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ReadTOML(f)
	}
	return ReadJSON(f)
}

// WriteJSON encodes a plan as indented JSON with a flat openings list.
// The output can be re-read with [ReadJSON].
func WriteJSON(p *Plan, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return nil
}
