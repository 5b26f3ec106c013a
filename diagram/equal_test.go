// SPDX-License-Identifier: MIT

package diagram_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sysdiag/diagram"
)

func TestSystem_Equal(t *testing.T) {
	a, _ := closedLoop(t)
	b, _ := closedLoop(t)
	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(nil))

	// parameters
	require.NoError(t, b.Subsystem("c").SetParam("K", 2.0))
	assert.False(t, a.Equal(b))
	require.NoError(t, a.Subsystem("c").SetParam("K", 2.0))
	assert.True(t, a.Equal(b))

	// ports
	require.NoError(t, b.AddPort(diagram.NewInputPort("u", "")))
	assert.False(t, a.Equal(b))
	require.NoError(t, a.AddPort(diagram.NewOutputPort("u", "")))
	assert.False(t, a.Equal(b)) // same name, different direction
}

func TestSystem_EqualIgnoresParent(t *testing.T) {
	a := block(t, "x", []string{"in"}, nil)
	b := block(t, "x", []string{"in"}, nil)
	require.NoError(t, diagram.NewSystem("holder").AddSubsystem(b))
	assert.True(t, a.Equal(b))
}

func TestSystem_EqualWireConnections(t *testing.T) {
	build := func(dst string) *diagram.System {
		root := diagram.NewSystem("root")
		a := block(t, "a", nil, []string{"out"})
		b := block(t, "b", []string{"in", "in2"}, nil)
		require.NoError(t, root.AddSubsystem(a))
		require.NoError(t, root.AddSubsystem(b))
		_, err := diagram.Connect(a, b, "out", dst, diagram.SignalWire)
		require.NoError(t, err)
		return root
	}
	assert.True(t, build("in").Equal(build("in")))
	assert.False(t, build("in").Equal(build("in2")))
}

func TestSystem_EqualKind(t *testing.T) {
	a := diagram.NewSystemOfKind(diagram.KindSISO, "g")
	b := diagram.NewSystem("g")
	assert.False(t, a.Equal(b))
}

func TestSystem_EqualDetectsSingleChange(t *testing.T) {
	type variant struct {
		wireName string
		wireType string
		wireKind diagram.WireKind
		spares   []string // unwired subsystems after a and b
	}
	base := variant{wireName: "w", wireType: "", wireKind: diagram.SignalWire, spares: []string{"c"}}
	build := func(t *testing.T, v variant) *diagram.System {
		t.Helper()
		root := diagram.NewSystem("root")
		a := diagram.NewSystem("a")
		require.NoError(t, a.AddPort(diagram.NewOutputPort("out", "sig")))
		b := diagram.NewSystem("b")
		require.NoError(t, b.AddPort(diagram.NewInputPort("in", "sig")))
		require.NoError(t, root.AddSubsystem(a))
		require.NoError(t, root.AddSubsystem(b))
		for _, name := range v.spares {
			require.NoError(t, root.AddSubsystem(block(t, name, []string{"in"}, nil)))
		}
		w := diagram.NewWireOfKind(v.wireKind, v.wireName, v.wireType)
		require.NoError(t, root.AddWire(w))
		require.NoError(t, w.ConnectPort(a.Port("out"), diagram.LevelSibling))
		require.NoError(t, w.ConnectPort(b.Port("in"), diagram.LevelSibling))
		return root
	}
	require.True(t, build(t, base).Equal(build(t, base)))

	tests := []struct {
		name   string
		mutate func(v *variant)
	}{
		{"rename wire", func(v *variant) { v.wireName = "w2" }},
		{"wire type", func(v *variant) { v.wireType = "sig" }},
		{"wire kind", func(v *variant) { v.wireKind = diagram.PlainWire }},
		{"rename subsystem", func(v *variant) { v.spares = []string{"d"} }},
		{"add subsystem", func(v *variant) { v.spares = []string{"c", "d"} }},
		{"remove subsystem", func(v *variant) { v.spares = nil }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := base
			v.spares = append([]string(nil), base.spares...)
			tc.mutate(&v)
			changed := build(t, v)
			assert.False(t, build(t, base).Equal(changed))
			assert.False(t, changed.Equal(build(t, base)))
		})
	}
}
