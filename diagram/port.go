// SPDX-License-Identifier: MIT

package diagram

import "fmt"

// Direction is the signal direction of a Port.
type Direction int

const (
	DirNone Direction = iota // non-directional (e.g. electrical terminal)
	DirIn
	DirOut
)

func (d Direction) String() string {
	switch d {
	case DirIn:
		return "in"
	case DirOut:
		return "out"
	default:
		return "none"
	}
}

// Level is the structural level of a Port-to-Wire connection.
type Level int

const (
	// LevelSibling connects a Wire owned by P to a Port of one of P's children.
	LevelSibling Level = iota
	// LevelBoundary connects a Wire owned by P to one of P's own Ports.
	LevelBoundary
)

const (
	levelSiblingText  = "sibling"
	levelBoundaryText = "boundary"
)

func (l Level) String() string {
	if l == LevelBoundary {
		return levelBoundaryText
	}
	return levelSiblingText
}

// ParseLevel is the inverse of Level.String.
func ParseLevel(s string) (Level, error) {
	switch s {
	case levelSiblingText:
		return LevelSibling, nil
	case levelBoundaryText:
		return LevelBoundary, nil
	}
	return 0, fmt.Errorf("ParseLevel(%q): %w", s, ErrLevelViolation)
}

// Port is a named, typed, directional attachment point owned by exactly one
// System. A Port never connects itself; Wire.ConnectPort does.
//
// The two connection slots hold wire names, resolved on demand against the
// owner's parent (sibling slot) or the owner itself (boundary slot).
type Port struct {
	name      string
	ptype     string
	direction Direction
	owner     *System

	wire         string // sibling-level wire, owned by owner.parent
	internalWire string // boundary-level wire, owned by owner
}

// NewPort returns a non-directional port. An empty ptype is a wildcard.
func NewPort(name, ptype string) *Port {
	return &Port{name: name, ptype: ptype, direction: DirNone}
}

// NewInputPort returns a signal input port.
func NewInputPort(name, ptype string) *Port {
	return &Port{name: name, ptype: ptype, direction: DirIn}
}

// NewOutputPort returns a signal output port.
func NewOutputPort(name, ptype string) *Port {
	return &Port{name: name, ptype: ptype, direction: DirOut}
}

// NewPortWithDirection dispatches to the constructor matching d.
func NewPortWithDirection(name, ptype string, d Direction) *Port {
	return &Port{name: name, ptype: ptype, direction: d}
}

func (p *Port) Name() string { return p.name }
func (p *Port) Type() string { return p.ptype }
func (p *Port) Direction() Direction { return p.direction }
func (p *Port) Owner() *System { return p.owner }

// TypeName returns the fully-qualified concrete port type used in
// serialized trees.
func (p *Port) TypeName() string {
	switch p.direction {
	case DirIn:
		return "sysdiag.InputPort"
	case DirOut:
		return "sysdiag.OutputPort"
	default:
		return "sysdiag.Port"
	}
}

// ParsePortTypeName maps a serialized port type name to its Direction.
func ParsePortTypeName(name string) (Direction, error) {
	switch name {
	case "sysdiag.Port":
		return DirNone, nil
	case "sysdiag.InputPort":
		return DirIn, nil
	case "sysdiag.OutputPort":
		return DirOut, nil
	}
	return 0, fmt.Errorf("ParsePortTypeName(%q): %w", name, ErrUnknownBlockKind)
}

// Wire returns the sibling-level wire, or nil when the slot is empty.
func (p *Port) Wire() *Wire {
	if p.wire == "" || p.owner == nil || p.owner.parent == nil {
		return nil
	}
	return p.owner.parent.Wire(p.wire)
}

// InternalWire returns the boundary-level wire, or nil when the slot is empty.
func (p *Port) InternalWire() *Wire {
	if p.internalWire == "" || p.owner == nil {
		return nil
	}
	return p.owner.Wire(p.internalWire)
}

// WireAt returns the wire held in the slot for level.
func (p *Port) WireAt(level Level) *Wire {
	if level == LevelBoundary {
		return p.InternalWire()
	}
	return p.Wire()
}

// IsConnected reports whether the slot for level is occupied.
func (p *Port) IsConnected(level Level) bool {
	if level == LevelBoundary {
		return p.internalWire != ""
	}
	return p.wire != ""
}

// InUse reports whether either slot is occupied.
func (p *Port) InUse() bool {
	return p.wire != "" || p.internalWire != ""
}

// Similar compares class (direction), type and name. Connection state and
// owner are ignored.
func (p *Port) Similar(other *Port) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.direction == other.direction && p.ptype == other.ptype && p.name == other.name
}

func (p *Port) setSlot(level Level, wire string) {
	if level == LevelBoundary {
		p.internalWire = wire
		return
	}
	p.wire = wire
}

func (p *Port) slot(level Level) string {
	if level == LevelBoundary {
		return p.internalWire
	}
	return p.wire
}

func (p *Port) String() string {
	return fmt.Sprintf("%s(%q, %q)", p.TypeName(), p.name, p.ptype)
}
