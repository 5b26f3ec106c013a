// SPDX-License-Identifier: MIT

package diagram

import "fmt"

// wireBaseName is the base passed to the allocator for resolver-created wires.
const wireBaseName = "W"

// Connect wires srcPort of src to dstPort of dst at sibling level and
// returns the wire used.
//
// Implementation:
//   - Stage 1: Resolve both ports by name (ErrNotFound).
//   - Stage 2: Require a common parent (ErrNoCommonParent).
//   - Stage 3: Pick the wire: the source port's sibling wire if any, else the
//     destination's, else a new wire of kind named by the parent's allocator
//     (base "W"), typed from the source port and owned by the parent.
//   - Stage 4: Connect both ports; each connect re-validates and is a no-op
//     when the port is already on that wire.
//
// When both ports already sit on different wires the source's wire wins and
// connecting the destination fails with ErrAlreadyConnected.
func Connect(src, dst *System, srcPort, dstPort string, kind WireKind) (*Wire, error) {
	sp, err := src.LookupPort(srcPort)
	if err != nil {
		return nil, fmt.Errorf("Connect: %w", err)
	}
	dp, err := dst.LookupPort(dstPort)
	if err != nil {
		return nil, fmt.Errorf("Connect: %w", err)
	}

	parent := src.parent
	if parent == nil || dst.parent != parent {
		return nil, fmt.Errorf("Connect(%q, %q): %w", src.name, dst.name, ErrNoCommonParent)
	}

	var w *Wire
	switch {
	case sp.Wire() != nil:
		w = sp.Wire()
	case dp.Wire() != nil:
		w = dp.Wire()
	default:
		name, err := parent.AllocateName(CategoryWire, wireBaseName)
		if err != nil {
			return nil, fmt.Errorf("Connect: %w", err)
		}
		w = NewWireOfKind(kind, name, sp.ptype)
		// Validate before attaching so a refused connection leaves no orphan wire.
		if err = w.precheck(parent, sp, dp); err != nil {
			return nil, fmt.Errorf("Connect(%q.%q, %q.%q): %w", src.name, srcPort, dst.name, dstPort, err)
		}
		if err = parent.AddWire(w); err != nil {
			return nil, fmt.Errorf("Connect: %w", err)
		}
	}

	if err = w.ConnectPort(sp, LevelSibling); err != nil {
		return nil, fmt.Errorf("Connect(%q.%q): %w", src.name, srcPort, err)
	}
	if err = w.ConnectPort(dp, LevelSibling); err != nil {
		return nil, fmt.Errorf("Connect(%q.%q): %w", dst.name, dstPort, err)
	}

	return w, nil
}

// precheck runs the connection protocol for a fresh wire as if it were
// already owned by parent.
func (w *Wire) precheck(parent *System, ports ...*Port) error {
	w.owner = parent
	defer func() { w.owner = nil }()

	var sources int
	for _, p := range ports {
		if err := w.CheckConnect(p, LevelSibling); err != nil {
			return err
		}
		if w.kind == SignalWire && IsSource(p, LevelSibling) {
			sources++
		}
	}
	if sources > 1 {
		return ErrMultiSource
	}
	return nil
}
