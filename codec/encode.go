// SPDX-License-Identifier: MIT

package codec

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/sysdiag/diagram"
)

// Encode converts sys and its whole subtree into nodes.
func Encode(sys *diagram.System) *SystemNode {
	n := &SystemNode{
		Class:        sys.TypeName(),
		SysdiagClass: ClassSystem,
		Name:         sys.Name(),
		Params:       map[string]any(sys.Params()),
		Ports:        []*PortNode{},
		Subsystems:   []*SystemNode{},
		Wires:        []*WireNode{},
	}
	for _, p := range sys.Ports() {
		if !sys.IsDefaultPort(p) {
			n.Ports = append(n.Ports, EncodePort(p))
		}
	}
	for _, c := range sys.Subsystems() {
		n.Subsystems = append(n.Subsystems, Encode(c))
	}
	for _, w := range sys.Wires() {
		n.Wires = append(n.Wires, EncodeWire(w))
	}
	return n
}

// EncodeWire converts w with its connection triplets.
func EncodeWire(w *diagram.Wire) *WireNode {
	n := &WireNode{
		Class:        w.TypeName(),
		SysdiagClass: ClassWire,
		Name:         w.Name(),
		Type:         w.Type(),
		Connections:  []Connection{},
	}
	for _, t := range w.ConnectionTriplets() {
		n.Connections = append(n.Connections, connectionOf(t))
	}
	return n
}

// EncodePort converts p.
func EncodePort(p *diagram.Port) *PortNode {
	return &PortNode{
		Class:        p.TypeName(),
		SysdiagClass: ClassPort,
		Name:         p.Name(),
		Type:         p.Type(),
	}
}

// Marshal returns the indented JSON form of sys.
func Marshal(sys *diagram.System) ([]byte, error) {
	return json.MarshalIndent(Encode(sys), "", "  ")
}

// MarshalYAML returns the YAML form of sys.
func MarshalYAML(sys *diagram.System) ([]byte, error) {
	return yaml.Marshal(Encode(sys))
}
