// SPDX-License-Identifier: MIT

// Package diagram defines the hierarchical block-diagram data model:
// System, Port and Wire, together with the connection protocol, naming,
// structural equality and the connection resolver.
//
// A System is a tree node. It owns, in insertion order:
//
//   - Ports:      named, typed, directional attachment points;
//   - Subsystems: child Systems (each attached to at most one parent);
//   - Wires:      typed buses connecting ports.
//
// A Wire owned by P may connect ports at two structural levels:
//
//	sibling  — a port of one of P's children (port.Owner().Parent() == P)
//	boundary — one of P's own ports           (port.Owner() == P)
//
// A Port therefore has two independent slots: Wire() for the sibling-level
// connection seen from its owner's parent, and InternalWire() for the
// boundary-level connection used when the owner is itself decomposed.
// Slots store wire names and are resolved by lookup, so the model has no
// back-pointer cycles between ports and wires.
//
// Signal wires (SignalWire kind) accept only directional ports and at most
// one signal source: an output port at sibling level or an input port at
// boundary level.
//
// Example:
//
//	root := diagram.NewSystem("root")
//	a := diagram.NewSystem("a")
//	_ = a.AddPort(diagram.NewOutputPort("out", ""))
//	b := diagram.NewSystem("b")
//	_ = b.AddPort(diagram.NewInputPort("in", ""))
//	_ = root.AddSubsystem(a)
//	_ = root.AddSubsystem(b)
//	w, err := diagram.Connect(a, b, "out", "in", diagram.SignalWire)
//
// The package performs no locking; see the concurrency note in system.go.
package diagram
