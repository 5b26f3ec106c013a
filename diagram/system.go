// SPDX-License-Identifier: MIT
// File: system.go
// Role: System tree node: ownership of ports, subsystems and wires.
//
// Concurrency:
//   - A System is not safe for concurrent mutation. Readers (codec,
//     transfer, matrix, flowgraph) may share a frozen diagram; callers
//     serialize writes externally.
//
// Determinism:
//   - Ports, Subsystems and Wires are kept in insertion order; equality and
//     serialization depend on that order.

package diagram

import (
	"fmt"
	"strings"
)

// System is a node of the diagram tree: either a leaf block or a composite
// of subsystems interconnected by wires.
type System struct {
	name   string
	kind   Kind
	parent *System

	ports        []*Port
	defaultPorts map[string]struct{} // names of ports created by the block constructor
	subsystems   []*System
	wires        []*Wire
	params       Params
}

// NewSystem returns a standalone generic System with no ports.
func NewSystem(name string) *System {
	return NewSystemOfKind(KindSystem, name)
}

// NewSystemOfKind returns a standalone System tagged with kind. Block
// constructors in the catalog add their default ports afterwards.
func NewSystemOfKind(kind Kind, name string) *System {
	return &System{
		name:         name,
		kind:         kind,
		defaultPorts: make(map[string]struct{}),
		params:       make(Params),
	}
}

func (s *System) Name() string { return s.name }
func (s *System) Kind() Kind { return s.kind }
func (s *System) Parent() *System { return s.parent }

// TypeName returns the fully-qualified concrete type name of the block kind.
func (s *System) TypeName() string { return s.kind.TypeName() }

// Ports returns a copy of the ports in insertion order.
func (s *System) Ports() []*Port {
	out := make([]*Port, len(s.ports))
	copy(out, s.ports)
	return out
}

// PortsByDirection returns the ports with direction d, in order.
func (s *System) PortsByDirection(d Direction) []*Port {
	var out []*Port
	for _, p := range s.ports {
		if p.direction == d {
			out = append(out, p)
		}
	}
	return out
}

// InputPorts is PortsByDirection(DirIn).
func (s *System) InputPorts() []*Port { return s.PortsByDirection(DirIn) }

// OutputPorts is PortsByDirection(DirOut).
func (s *System) OutputPorts() []*Port { return s.PortsByDirection(DirOut) }

// Subsystems returns a copy of the child Systems in insertion order.
func (s *System) Subsystems() []*System {
	out := make([]*System, len(s.subsystems))
	copy(out, s.subsystems)
	return out
}

// Wires returns a copy of the wires in insertion order.
func (s *System) Wires() []*Wire {
	out := make([]*Wire, len(s.wires))
	copy(out, s.wires)
	return out
}

// Port returns the port called name, or nil.
func (s *System) Port(name string) *Port {
	for _, p := range s.ports {
		if p.name == name {
			return p
		}
	}
	return nil
}

// Subsystem returns the direct child called name, or nil.
func (s *System) Subsystem(name string) *System {
	for _, c := range s.subsystems {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Wire returns the wire called name, or nil.
func (s *System) Wire(name string) *Wire {
	for _, w := range s.wires {
		if w.name == name {
			return w
		}
	}
	return nil
}

// LookupPort is Port with an ErrNotFound error instead of nil.
func (s *System) LookupPort(name string) (*Port, error) {
	if p := s.Port(name); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("LookupPort(%q in %q): %w", name, s.name, ErrNotFound)
}

// IsDefaultPort reports whether p was created by the block constructor.
func (s *System) IsDefaultPort(p *Port) bool {
	if p == nil || p.owner != s {
		return false
	}
	_, ok := s.defaultPorts[p.name]
	return ok
}

// AddPort attaches p to s.
func (s *System) AddPort(p *Port) error {
	return s.addPort(p, false)
}

// AddDefaultPort attaches p to s and marks it as constructor-created, so
// serialization skips it and deserialization relies on the constructor.
func (s *System) AddDefaultPort(p *Port) error {
	return s.addPort(p, true)
}

func (s *System) addPort(p *Port, isDefault bool) error {
	if p.owner != nil {
		return fmt.Errorf("AddPort(%q): owned by %q: %w", p.name, p.owner.name, ErrAlreadyAttached)
	}
	if s.Port(p.name) != nil {
		return fmt.Errorf("AddPort(%q in %q): %w", p.name, s.name, ErrNameConflict)
	}
	p.owner = s
	s.ports = append(s.ports, p)
	if isDefault {
		s.defaultPorts[p.name] = struct{}{}
	}

	return nil
}

// RemovePort detaches p from s. A port with an occupied slot is refused:
// disconnect-then-remove is not provided.
func (s *System) RemovePort(p *Port) error {
	idx := -1
	for i, q := range s.ports {
		if q == p {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("RemovePort(%q in %q): %w", portName(p), s.name, ErrNotFound)
	}
	if p.InUse() {
		return fmt.Errorf("RemovePort(%q in %q): %w: %w", p.name, s.name, ErrPortInUse, ErrUnsupported)
	}

	s.ports = append(s.ports[:idx], s.ports[idx+1:]...)
	delete(s.defaultPorts, p.name)
	p.owner = nil

	return nil
}

// AddSubsystem attaches child under s.
func (s *System) AddSubsystem(child *System) error {
	if child.parent != nil {
		return fmt.Errorf("AddSubsystem(%q): parent %q: %w", child.name, child.parent.name, ErrAlreadyAttached)
	}
	for a := s; a != nil; a = a.parent {
		if a == child {
			return fmt.Errorf("AddSubsystem(%q in %q): %w", child.name, s.name, ErrCyclicHierarchy)
		}
	}
	if s.Subsystem(child.name) != nil {
		return fmt.Errorf("AddSubsystem(%q in %q): %w", child.name, s.name, ErrNameConflict)
	}
	child.parent = s
	s.subsystems = append(s.subsystems, child)

	return nil
}

// RemoveSubsystem detaches child from s. It fails with ErrPortInUse while
// any of child's ports is still wired at sibling level.
func (s *System) RemoveSubsystem(child *System) error {
	idx := -1
	for i, c := range s.subsystems {
		if c == child {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("RemoveSubsystem(%q): %w", sysName(child), ErrNotFound)
	}
	for _, p := range child.ports {
		if p.IsConnected(LevelSibling) {
			return fmt.Errorf("RemoveSubsystem(%q): port %q: %w", child.name, p.name, ErrPortInUse)
		}
	}

	s.subsystems = append(s.subsystems[:idx], s.subsystems[idx+1:]...)
	child.parent = nil

	return nil
}

// AddWire attaches w to s; s becomes the wire's owner.
func (s *System) AddWire(w *Wire) error {
	if w.owner != nil {
		return fmt.Errorf("AddWire(%q): owned by %q: %w", w.name, w.owner.name, ErrAlreadyAttached)
	}
	if s.Wire(w.name) != nil {
		return fmt.Errorf("AddWire(%q in %q): %w", w.name, s.name, ErrNameConflict)
	}
	w.owner = s
	s.wires = append(s.wires, w)

	return nil
}

// AllocateName returns a free name in the subsystem or wire namespace of s.
func (s *System) AllocateName(category Category, base string) (string, error) {
	var existing []string
	switch category {
	case CategorySubsystem:
		for _, c := range s.subsystems {
			existing = append(existing, c.name)
		}
	case CategoryWire:
		for _, w := range s.wires {
			existing = append(existing, w.name)
		}
	default:
		return "", fmt.Errorf("AllocateName(%s): %w", category, ErrInvalidCategory)
	}

	return AllocateName(existing, base)
}

// IsEmpty reports whether s has neither subsystems nor wires.
func (s *System) IsEmpty() bool {
	return len(s.subsystems) == 0 && len(s.wires) == 0
}

// Path returns the slash-separated names from the root down to s.
func (s *System) Path() string {
	if s.parent == nil {
		return s.name
	}
	return s.parent.Path() + "/" + s.name
}

func (s *System) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q", s.TypeName(), s.name)
	if s.parent != nil {
		fmt.Fprintf(&b, "\nParent: %q", s.parent.name)
	}
	if len(s.params) > 0 {
		fmt.Fprintf(&b, "\nParameters: %v", map[string]any(s.params))
	}
	if len(s.ports) > 0 {
		fmt.Fprintf(&b, "\nPorts: %v", s.ports)
	}
	if len(s.subsystems) > 0 {
		names := make([]string, len(s.subsystems))
		for i, c := range s.subsystems {
			names[i] = c.name
		}
		fmt.Fprintf(&b, "\nSubsystems: %v", names)
	}
	if len(s.wires) > 0 {
		fmt.Fprintf(&b, "\nWires: %v", s.wires)
	}
	return b.String()
}

func portName(p *Port) string {
	if p == nil {
		return "<nil>"
	}
	return p.name
}

func sysName(s *System) string {
	if s == nil {
		return "<nil>"
	}
	return s.name
}
