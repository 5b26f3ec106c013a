// SPDX-License-Identifier: MIT
// Package: sysdiag/codec
//
// node.go — the persisted tree.
//
// Every node carries two tags:
//   - __sysdiagclass__: which entity it is ("System", "Wire", "Port");
//   - __class__: the concrete type to rebuild ("blocks.Summation", ...).
//
// Wires reference ports by name through [level, system, port] triplets,
// never by position or pointer, so decoding needs no forward references.

package codec

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/sysdiag/diagram"
)

// Discriminator values.
const (
	ClassSystem = "System"
	ClassWire   = "Wire"
	ClassPort   = "Port"
)

// PortNode is the persisted form of a Port.
type PortNode struct {
	Class        string `json:"__class__" yaml:"__class__"`
	SysdiagClass string `json:"__sysdiagclass__" yaml:"__sysdiagclass__"`
	Name         string `json:"name" yaml:"name"`
	Type         string `json:"type" yaml:"type"`
}

// WireNode is the persisted form of a Wire.
type WireNode struct {
	Class        string       `json:"__class__" yaml:"__class__"`
	SysdiagClass string       `json:"__sysdiagclass__" yaml:"__sysdiagclass__"`
	Name         string       `json:"name" yaml:"name"`
	Type         string       `json:"type" yaml:"type"`
	Connections  []Connection `json:"connections" yaml:"connections"`
}

// SystemNode is the persisted form of a System. Ports lists only the ports
// the block constructor does not create.
type SystemNode struct {
	Class        string         `json:"__class__" yaml:"__class__"`
	SysdiagClass string         `json:"__sysdiagclass__" yaml:"__sysdiagclass__"`
	Name         string         `json:"name" yaml:"name"`
	Params       map[string]any `json:"params" yaml:"params"`
	Ports        []*PortNode    `json:"ports" yaml:"ports"`
	Subsystems   []*SystemNode  `json:"subsystems" yaml:"subsystems"`
	Wires        []*WireNode    `json:"wires" yaml:"wires"`
}

// Connection is one wire endpoint, persisted as [level, system, port].
type Connection struct {
	Level  string // "sibling" or "boundary"
	System string
	Port   string
}

func (c Connection) triple() []string { return []string{c.Level, c.System, c.Port} }

func (c *Connection) setTriple(parts []string) error {
	if len(parts) != 3 {
		return fmt.Errorf("connection %v: want 3 elements: %w", parts, ErrDanglingConnection)
	}
	c.Level, c.System, c.Port = parts[0], parts[1], parts[2]
	return nil
}

func (c Connection) MarshalJSON() ([]byte, error) { return json.Marshal(c.triple()) }

func (c *Connection) UnmarshalJSON(data []byte) error {
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	return c.setTriple(parts)
}

func (c Connection) MarshalYAML() (any, error) { return c.triple(), nil }

func (c *Connection) UnmarshalYAML(value *yaml.Node) error {
	var parts []string
	if err := value.Decode(&parts); err != nil {
		return err
	}
	return c.setTriple(parts)
}

func connectionOf(t diagram.Triplet) Connection {
	return Connection{Level: t.Level.String(), System: t.System, Port: t.Port}
}
