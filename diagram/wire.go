// SPDX-License-Identifier: MIT
// File: wire.go
// Role: Wire / SignalWire connection protocol.
//
// Connection checks run in a fixed order so that callers observe the same
// error for the same violation:
//  1. slot free at the requested level        (ErrAlreadyConnected)
//  2. level consistent with the structure     (ErrLevelViolation)
//  3. type compatible                         (ErrTypeMismatch)
//  4. signal wires: direction and one source  (ErrWrongDirection, ErrMultiSource)
//
// Re-connecting a port already attached to the same wire at the same level
// is a no-op.

package diagram

import "fmt"

// WireKind distinguishes plain buses from signal wires.
type WireKind int

const (
	PlainWire  WireKind = iota // any ports, no direction discipline
	SignalWire                 // directional ports, single signal source
)

func (k WireKind) String() string {
	if k == SignalWire {
		return "signal"
	}
	return "plain"
}

// TypeName returns the fully-qualified concrete wire type used in
// serialized trees.
func (k WireKind) TypeName() string {
	if k == SignalWire {
		return "sysdiag.SignalWire"
	}
	return "sysdiag.Wire"
}

// ParseWireTypeName is the inverse of WireKind.TypeName.
func ParseWireTypeName(name string) (WireKind, error) {
	switch name {
	case "sysdiag.Wire":
		return PlainWire, nil
	case "sysdiag.SignalWire":
		return SignalWire, nil
	}
	return 0, fmt.Errorf("ParseWireTypeName(%q): %w", name, ErrUnknownBlockKind)
}

// Wire is a typed bus owned by a System. It connects ports of the owner's
// children (sibling level) and ports of the owner itself (boundary level).
type Wire struct {
	name  string
	wtype string
	kind  WireKind
	owner *System
	ports []*Port
}

// NewWire returns an unattached plain wire. An empty wtype accepts any port.
func NewWire(name, wtype string) *Wire {
	return &Wire{name: name, wtype: wtype, kind: PlainWire}
}

// NewSignalWire returns an unattached signal wire.
func NewSignalWire(name, wtype string) *Wire {
	return &Wire{name: name, wtype: wtype, kind: SignalWire}
}

// NewWireOfKind dispatches on kind.
func NewWireOfKind(kind WireKind, name, wtype string) *Wire {
	return &Wire{name: name, wtype: wtype, kind: kind}
}

func (w *Wire) Name() string { return w.name }
func (w *Wire) Type() string { return w.wtype }
func (w *Wire) Kind() WireKind { return w.kind }
func (w *Wire) Owner() *System { return w.owner }
func (w *Wire) TypeName() string { return w.kind.TypeName() }

// Ports returns a copy of the connected ports in connection order.
func (w *Wire) Ports() []*Port {
	out := make([]*Port, len(w.ports))
	copy(out, w.ports)
	return out
}

// LevelOf recomputes the connection level of p from structural position.
// ok is false when p is attached to neither level of w's owner.
func (w *Wire) LevelOf(p *Port) (level Level, ok bool) {
	if w.owner == nil || p.owner == nil {
		return 0, false
	}
	if p.owner.parent == w.owner {
		return LevelSibling, true
	}
	if p.owner == w.owner {
		return LevelBoundary, true
	}
	return 0, false
}

// IsSource reports whether p would act as the signal source of w when
// connected at level: an output seen from outside, or an input seen from
// inside its own System.
func IsSource(p *Port, level Level) bool {
	if level == LevelSibling {
		return p.direction == DirOut
	}
	return p.direction == DirIn
}

// IsConnectAllowed reports whether ConnectPort(p, level) would succeed.
func (w *Wire) IsConnectAllowed(p *Port, level Level) bool {
	return w.CheckConnect(p, level) == nil
}

// CheckConnect validates a prospective connection and returns the first
// violated rule, or nil. A port already on this wire at this level passes.
func (w *Wire) CheckConnect(p *Port, level Level) error {
	if p == nil {
		return fmt.Errorf("CheckConnect(%q): nil port: %w", w.name, ErrNotFound)
	}
	if w.holds(p, level) {
		return nil
	}

	// 1) slot must be free
	if p.IsConnected(level) {
		return fmt.Errorf("CheckConnect(%q, %q, %s): %w", w.name, p.name, level, ErrAlreadyConnected)
	}

	// 2) structural level
	if !w.levelConsistent(p, level) {
		return fmt.Errorf("CheckConnect(%q, %q, %s): %w", w.name, p.name, level, ErrLevelViolation)
	}

	// 3) type compatibility (an untyped wire accepts anything)
	if w.wtype != "" && p.ptype != w.wtype {
		return fmt.Errorf("CheckConnect(%q, %q): wire %q vs port %q: %w",
			w.name, p.name, w.wtype, p.ptype, ErrTypeMismatch)
	}

	if w.kind != SignalWire {
		return nil
	}

	// 4) signal discipline
	if p.direction != DirIn && p.direction != DirOut {
		return fmt.Errorf("CheckConnect(%q, %q): %w", w.name, p.name, ErrWrongDirection)
	}
	if IsSource(p, level) {
		if src := w.Source(); src != nil {
			return fmt.Errorf("CheckConnect(%q, %q): source %q: %w", w.name, p.name, src.name, ErrMultiSource)
		}
	}

	return nil
}

// ConnectPort attaches p to w at level after CheckConnect. Connecting a
// port that is already on w at that level changes nothing.
func (w *Wire) ConnectPort(p *Port, level Level) error {
	if err := w.CheckConnect(p, level); err != nil {
		return err
	}
	if w.holds(p, level) {
		return nil
	}
	p.setSlot(level, w.name)
	w.ports = append(w.ports, p)

	return nil
}

// Source returns the signal source currently connected to w, or nil.
func (w *Wire) Source() *Port {
	for _, q := range w.ports {
		if level, ok := w.LevelOf(q); ok && IsSource(q, level) {
			return q
		}
	}
	return nil
}

// Sinks returns the connected ports that are not the signal source, in
// connection order.
func (w *Wire) Sinks() []*Port {
	var out []*Port
	for _, q := range w.ports {
		if level, ok := w.LevelOf(q); ok && !IsSource(q, level) {
			out = append(out, q)
		}
	}
	return out
}

// Triplet is the name-addressed form of one wire connection.
type Triplet struct {
	Level  Level
	System string // name of the port's owner
	Port   string
}

// ConnectionTriplets lists (level, owner name, port name) for each
// connected port, levels recomputed from structure.
func (w *Wire) ConnectionTriplets() []Triplet {
	out := make([]Triplet, 0, len(w.ports))
	for _, p := range w.ports {
		level, _ := w.LevelOf(p)
		out = append(out, Triplet{Level: level, System: p.owner.name, Port: p.name})
	}
	return out
}

// Similar compares kind, name, type and the full connection signature.
func (w *Wire) Similar(other *Wire) bool {
	if w == nil || other == nil {
		return w == other
	}
	if w.kind != other.kind || w.name != other.name || w.wtype != other.wtype {
		return false
	}
	a, b := w.ConnectionTriplets(), other.ConnectionTriplets()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (w *Wire) holds(p *Port, level Level) bool {
	if p.slot(level) != w.name || !w.levelConsistent(p, level) {
		return false
	}
	for _, q := range w.ports {
		if q == p {
			return true
		}
	}
	return false
}

func (w *Wire) levelConsistent(p *Port, level Level) bool {
	if w.owner == nil || p.owner == nil {
		return false
	}
	if level == LevelSibling {
		return p.owner.parent == w.owner
	}
	return p.owner == w.owner
}

func (w *Wire) String() string {
	return fmt.Sprintf("%s(%q, %q)", w.TypeName(), w.name, w.wtype)
}
