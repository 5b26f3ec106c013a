// SPDX-License-Identifier: MIT

package hcldiag

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/katalvlaran/sysdiag/blocks"
	"github.com/katalvlaran/sysdiag/diagram"
)

// selfRef names the enclosing system in a port reference.
const selfRef = "self"

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "system", LabelNames: []string{"name"}},
	},
}

var systemSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "block", LabelNames: []string{"kind", "name"}},
		{Type: "system", LabelNames: []string{"name"}},
		{Type: "input", LabelNames: []string{"name"}},
		{Type: "output", LabelNames: []string{"name"}},
		{Type: "port", LabelNames: []string{"name"}},
		{Type: "wire", LabelNames: []string{"name"}},
		{Type: "connect"},
	},
}

type portBody struct {
	Type string `hcl:"type,optional"`
}

type connectBody struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
	Kind string `hcl:"kind,optional"`
}

type wireBody struct {
	Type  string   `hcl:"type,optional"`
	Kind  string   `hcl:"kind,optional"`
	Ports []string `hcl:"ports,optional"`
}

// buildSystem turns one `system` block into a composite System.
//
// Implementation:
//   - Stage 1: Ports, catalog blocks and nested systems, in source order.
//   - Stage 2: Wires and connections, in source order, once every child
//     they may reference exists.
func buildSystem(block *hcl.Block) (*diagram.System, error) {
	sys := diagram.NewSystem(block.Labels[0])
	content, diags := block.Body.Content(systemSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("system %q: %w: %w", sys.Name(), ErrSyntax, diags)
	}

	// Stage 1: structure
	for _, b := range content.Blocks {
		var err error
		switch b.Type {
		case "block":
			err = addBlock(sys, b)
		case "system":
			var child *diagram.System
			if child, err = buildSystem(b); err == nil {
				err = sys.AddSubsystem(child)
			}
		case "input", "output", "port":
			err = addPort(sys, b)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.DefRange, err)
		}
	}

	// Stage 2: connectivity
	for _, b := range content.Blocks {
		var err error
		switch b.Type {
		case "wire":
			err = addWire(sys, b)
		case "connect":
			err = addConnect(sys, b)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.DefRange, err)
		}
	}

	return sys, nil
}

func addBlock(sys *diagram.System, b *hcl.Block) error {
	keyword, name := b.Labels[0], b.Labels[1]
	kind, err := diagram.ParseKeyword(keyword)
	if err != nil {
		return fmt.Errorf("block %q: %w: %w", name, ErrUnknownKeyword, err)
	}
	child, err := blocks.New(kind, name)
	if err != nil {
		return err
	}
	params, err := attributeParams(b.Body)
	if err != nil {
		return fmt.Errorf("block %q: %w", name, err)
	}
	if err = child.SetParams(params); err != nil {
		return fmt.Errorf("block %q: %w: %w", name, ErrBadValue, err)
	}
	if err = blocks.Conform(child); err != nil {
		return fmt.Errorf("block %q: %w", name, err)
	}
	return sys.AddSubsystem(child)
}

func addPort(sys *diagram.System, b *hcl.Block) error {
	var body portBody
	if diags := gohcl.DecodeBody(b.Body, nil, &body); diags.HasErrors() {
		return fmt.Errorf("%s %q: %w: %w", b.Type, b.Labels[0], ErrSyntax, diags)
	}
	var p *diagram.Port
	switch b.Type {
	case "input":
		p = diagram.NewInputPort(b.Labels[0], body.Type)
	case "output":
		p = diagram.NewOutputPort(b.Labels[0], body.Type)
	default:
		p = diagram.NewPort(b.Labels[0], body.Type)
	}
	return sys.AddPort(p)
}

func addConnect(sys *diagram.System, b *hcl.Block) error {
	var body connectBody
	if diags := gohcl.DecodeBody(b.Body, nil, &body); diags.HasErrors() {
		return fmt.Errorf("connect: %w: %w", ErrSyntax, diags)
	}
	kind, err := parseWireKind(body.Kind)
	if err != nil {
		return err
	}
	src, srcPort, err := childRef(sys, body.From)
	if err != nil {
		return err
	}
	dst, dstPort, err := childRef(sys, body.To)
	if err != nil {
		return err
	}
	_, err = diagram.Connect(src, dst, srcPort, dstPort, kind)
	return err
}

func addWire(sys *diagram.System, b *hcl.Block) error {
	var body wireBody
	if diags := gohcl.DecodeBody(b.Body, nil, &body); diags.HasErrors() {
		return fmt.Errorf("wire %q: %w: %w", b.Labels[0], ErrSyntax, diags)
	}
	kind, err := parseWireKind(body.Kind)
	if err != nil {
		return err
	}
	w := diagram.NewWireOfKind(kind, b.Labels[0], body.Type)
	if err = sys.AddWire(w); err != nil {
		return err
	}
	for _, ref := range body.Ports {
		p, level, err := portRef(sys, ref)
		if err != nil {
			return fmt.Errorf("wire %q: %w", w.Name(), err)
		}
		if err = w.ConnectPort(p, level); err != nil {
			return fmt.Errorf("wire %q: %s: %w", w.Name(), ref, err)
		}
	}
	return nil
}

func parseWireKind(s string) (diagram.WireKind, error) {
	switch s {
	case "", diagram.SignalWire.String():
		return diagram.SignalWire, nil
	case diagram.PlainWire.String():
		return diagram.PlainWire, nil
	}
	return 0, fmt.Errorf("wire kind %q: %w", s, ErrBadValue)
}

func splitRef(ref string) (owner, port string, err error) {
	owner, port, ok := strings.Cut(ref, ".")
	if !ok || owner == "" || port == "" {
		return "", "", fmt.Errorf("%q: want <system>.<port>: %w", ref, ErrBadReference)
	}
	return owner, port, nil
}

// childRef resolves "<child>.<port>" to the child and the port name.
func childRef(sys *diagram.System, ref string) (*diagram.System, string, error) {
	owner, port, err := splitRef(ref)
	if err != nil {
		return nil, "", err
	}
	child := sys.Subsystem(owner)
	if child == nil {
		return nil, "", fmt.Errorf("%q: no subsystem %q in %q: %w", ref, owner, sys.Name(), ErrBadReference)
	}
	return child, port, nil
}

// portRef resolves "self.<port>" at boundary level or "<child>.<port>" at
// sibling level.
func portRef(sys *diagram.System, ref string) (*diagram.Port, diagram.Level, error) {
	owner, port, err := splitRef(ref)
	if err != nil {
		return nil, 0, err
	}
	level, target := diagram.LevelSibling, sys.Subsystem(owner)
	if owner == selfRef {
		level, target = diagram.LevelBoundary, sys
	}
	if target == nil {
		return nil, 0, fmt.Errorf("%q: no subsystem %q in %q: %w", ref, owner, sys.Name(), ErrBadReference)
	}
	p := target.Port(port)
	if p == nil {
		return nil, 0, fmt.Errorf("%q: no port %q: %w", ref, port, ErrBadReference)
	}
	return p, level, nil
}
