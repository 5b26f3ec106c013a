// SPDX-License-Identifier: MIT

package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/sysdiag/blocks"
	"github.com/katalvlaran/sysdiag/diagram"
)

// Sentinel errors.
var (
	// ErrUnknownClass indicates a __class__ value with no known type.
	ErrUnknownClass = errors.New("codec: unknown class")

	// ErrBadDiscriminator indicates a missing or unexpected __sysdiagclass__.
	ErrBadDiscriminator = errors.New("codec: bad __sysdiagclass__")

	// ErrDanglingConnection indicates a wire triplet naming no port.
	ErrDanglingConnection = errors.New("codec: dangling wire connection")
)

// Unmarshal rebuilds a System from its JSON form.
func Unmarshal(data []byte) (*diagram.System, error) {
	var n SystemNode
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("codec: Unmarshal: %w", err)
	}
	return Decode(&n)
}

// UnmarshalYAML rebuilds a System from its YAML form.
func UnmarshalYAML(data []byte) (*diagram.System, error) {
	var n SystemNode
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("codec: UnmarshalYAML: %w", err)
	}
	return Decode(&n)
}

// DecodeAny reads a JSON node of any entity and returns *diagram.System,
// *diagram.Wire or *diagram.Port according to its __sysdiagclass__. A
// standalone wire cannot carry connections.
func DecodeAny(data []byte) (any, error) {
	var head struct {
		SysdiagClass string `json:"__sysdiagclass__"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("codec: DecodeAny: %w", err)
	}
	switch head.SysdiagClass {
	case ClassSystem:
		return Unmarshal(data)
	case ClassWire:
		var n WireNode
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, fmt.Errorf("codec: DecodeAny: %w", err)
		}
		if len(n.Connections) > 0 {
			return nil, fmt.Errorf("DecodeAny(wire %q): no owner to resolve connections: %w", n.Name, ErrDanglingConnection)
		}
		return decodeWire(&n)
	case ClassPort:
		var n PortNode
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, fmt.Errorf("codec: DecodeAny: %w", err)
		}
		return DecodePort(&n)
	}
	return nil, fmt.Errorf("DecodeAny(%q): %w", head.SysdiagClass, ErrBadDiscriminator)
}

// Decode rebuilds a System from n.
//
// Implementation:
//   - Stage 1: blocks.New(kind, name) regenerates the default ports.
//   - Stage 2: Assign params, then blocks.Conform re-shapes parameter-driven
//     ports (summation inputs).
//   - Stage 3: Add the persisted ports, then subsystems (recursively).
//   - Stage 4: Add wires and re-wire each triplet by name; every port it
//     names must exist by now.
func Decode(n *SystemNode) (*diagram.System, error) {
	if n.SysdiagClass != ClassSystem {
		return nil, fmt.Errorf("Decode(%q): %q: %w", n.Name, n.SysdiagClass, ErrBadDiscriminator)
	}
	kind, err := diagram.ParseTypeName(n.Class)
	if err != nil {
		return nil, fmt.Errorf("Decode(%q): %w: %w", n.Name, ErrUnknownClass, err)
	}
	sys, err := blocks.New(kind, n.Name)
	if err != nil {
		return nil, fmt.Errorf("Decode(%q): %w", n.Name, err)
	}
	if err = sys.SetParams(n.Params); err != nil {
		return nil, fmt.Errorf("Decode(%q): %w", n.Name, err)
	}
	if err = blocks.Conform(sys); err != nil {
		return nil, fmt.Errorf("Decode(%q): %w", n.Name, err)
	}

	for _, pn := range n.Ports {
		p, err := DecodePort(pn)
		if err != nil {
			return nil, fmt.Errorf("Decode(%q): %w", n.Name, err)
		}
		if err = sys.AddPort(p); err != nil {
			return nil, fmt.Errorf("Decode(%q): %w", n.Name, err)
		}
	}
	for _, cn := range n.Subsystems {
		child, err := Decode(cn)
		if err != nil {
			return nil, err
		}
		if err = sys.AddSubsystem(child); err != nil {
			return nil, fmt.Errorf("Decode(%q): %w", n.Name, err)
		}
	}
	for _, wn := range n.Wires {
		if err = decodeWireInto(sys, wn); err != nil {
			return nil, fmt.Errorf("Decode(%q): %w", n.Name, err)
		}
	}
	return sys, nil
}

// DecodePort rebuilds an unattached Port.
func DecodePort(n *PortNode) (*diagram.Port, error) {
	if n.SysdiagClass != ClassPort {
		return nil, fmt.Errorf("DecodePort(%q): %q: %w", n.Name, n.SysdiagClass, ErrBadDiscriminator)
	}
	dir, err := diagram.ParsePortTypeName(n.Class)
	if err != nil {
		return nil, fmt.Errorf("DecodePort(%q): %w: %w", n.Name, ErrUnknownClass, err)
	}
	return diagram.NewPortWithDirection(n.Name, n.Type, dir), nil
}

func decodeWire(n *WireNode) (*diagram.Wire, error) {
	if n.SysdiagClass != ClassWire {
		return nil, fmt.Errorf("decodeWire(%q): %q: %w", n.Name, n.SysdiagClass, ErrBadDiscriminator)
	}
	kind, err := diagram.ParseWireTypeName(n.Class)
	if err != nil {
		return nil, fmt.Errorf("decodeWire(%q): %w: %w", n.Name, ErrUnknownClass, err)
	}
	return diagram.NewWireOfKind(kind, n.Name, n.Type), nil
}

func decodeWireInto(sys *diagram.System, n *WireNode) error {
	w, err := decodeWire(n)
	if err != nil {
		return err
	}
	if err = sys.AddWire(w); err != nil {
		return err
	}
	for _, c := range n.Connections {
		level, err := diagram.ParseLevel(c.Level)
		if err != nil {
			return fmt.Errorf("wire %q: %w: %w", n.Name, ErrDanglingConnection, err)
		}
		p := resolve(sys, level, c)
		if p == nil {
			return fmt.Errorf("wire %q: %v: %w", n.Name, c.triple(), ErrDanglingConnection)
		}
		if err = w.ConnectPort(p, level); err != nil {
			return fmt.Errorf("wire %q: %w", n.Name, err)
		}
	}
	return nil
}

func resolve(sys *diagram.System, level diagram.Level, c Connection) *diagram.Port {
	if level == diagram.LevelBoundary {
		if c.System != sys.Name() {
			return nil
		}
		return sys.Port(c.Port)
	}
	child := sys.Subsystem(c.System)
	if child == nil {
		return nil
	}
	return child.Port(c.Port)
}
