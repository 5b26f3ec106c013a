// SPDX-License-Identifier: MIT

package diagram_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sysdiag/diagram"
)

func TestConnect_ClosedLoopWireReuse(t *testing.T) {
	root, wires := closedLoop(t)

	// p.out already drives the feedback wire, so the sink joins it
	assert.Same(t, wires[3], wires[4])
	assert.Len(t, root.Wires(), 4)

	names := make([]string, 0, 4)
	for _, w := range root.Wires() {
		names = append(names, w.Name())
		assert.Equal(t, diagram.SignalWire, w.Kind())
	}
	assert.Equal(t, []string{"W", "W0", "W1", "W2"}, names)

	fb := wires[3]
	assert.Same(t, root.Subsystem("p").Port("out"), fb.Source())
	assert.Len(t, fb.Sinks(), 2)
}

func TestConnect_Idempotent(t *testing.T) {
	root := diagram.NewSystem("root")
	a := block(t, "a", nil, []string{"out"})
	b := block(t, "b", []string{"in"}, nil)
	require.NoError(t, root.AddSubsystem(a))
	require.NoError(t, root.AddSubsystem(b))

	w1, err := diagram.Connect(a, b, "out", "in", diagram.SignalWire)
	require.NoError(t, err)
	w2, err := diagram.Connect(a, b, "out", "in", diagram.SignalWire)
	require.NoError(t, err)
	assert.Same(t, w1, w2)
	assert.Len(t, root.Wires(), 1)
	assert.Len(t, w1.Ports(), 2)
}

func TestConnect_BothPortsWiredPicksSourceWire(t *testing.T) {
	root := diagram.NewSystem("root")
	a := block(t, "a", nil, []string{"out"})
	b := block(t, "b", []string{"in"}, nil)
	c := block(t, "c", nil, []string{"out"})
	d := block(t, "d", []string{"in"}, nil)
	for _, s := range []*diagram.System{a, b, c, d} {
		require.NoError(t, root.AddSubsystem(s))
	}
	_, err := diagram.Connect(a, b, "out", "in", diagram.SignalWire)
	require.NoError(t, err)
	_, err = diagram.Connect(c, d, "out", "in", diagram.SignalWire)
	require.NoError(t, err)

	// a's wire is chosen; d is already on another wire
	_, err = diagram.Connect(a, d, "out", "in", diagram.SignalWire)
	assert.ErrorIs(t, err, diagram.ErrAlreadyConnected)
	assert.Len(t, root.Wires(), 2)
}

func TestConnect_NoCommonParent(t *testing.T) {
	r1 := diagram.NewSystem("r1")
	r2 := diagram.NewSystem("r2")
	a := block(t, "a", nil, []string{"out"})
	b := block(t, "b", []string{"in"}, nil)
	require.NoError(t, r1.AddSubsystem(a))
	require.NoError(t, r2.AddSubsystem(b))

	_, err := diagram.Connect(a, b, "out", "in", diagram.SignalWire)
	assert.ErrorIs(t, err, diagram.ErrNoCommonParent)

	lone := block(t, "lone", []string{"in"}, []string{"out"})
	_, err = diagram.Connect(lone, lone, "out", "in", diagram.SignalWire)
	assert.ErrorIs(t, err, diagram.ErrNoCommonParent)
}

func TestConnect_UnknownPort(t *testing.T) {
	root, _ := closedLoop(t)
	_, err := diagram.Connect(root.Subsystem("src"), root.Subsystem("sink"), "nope", "in", diagram.SignalWire)
	assert.ErrorIs(t, err, diagram.ErrNotFound)
}

func TestConnect_RefusedLeavesNoWire(t *testing.T) {
	root := diagram.NewSystem("root")
	a := block(t, "a", nil, []string{"out"})
	b := block(t, "b", nil, []string{"out"})
	require.NoError(t, root.AddSubsystem(a))
	require.NoError(t, root.AddSubsystem(b))

	_, err := diagram.Connect(a, b, "out", "out", diagram.SignalWire)
	assert.ErrorIs(t, err, diagram.ErrMultiSource)
	assert.Empty(t, root.Wires())
	assert.False(t, a.Port("out").InUse())

	// a plain wire does not care about direction
	w, err := diagram.Connect(a, b, "out", "out", diagram.PlainWire)
	require.NoError(t, err)
	assert.Equal(t, diagram.PlainWire, w.Kind())
}

func TestConnect_TypeFromSourcePort(t *testing.T) {
	root := diagram.NewSystem("root")
	a := diagram.NewSystem("a")
	b := diagram.NewSystem("b")
	require.NoError(t, a.AddPort(diagram.NewPort("p", "elec")))
	require.NoError(t, b.AddPort(diagram.NewPort("p", "elec")))
	require.NoError(t, b.AddPort(diagram.NewPort("h", "hydro")))
	require.NoError(t, root.AddSubsystem(a))
	require.NoError(t, root.AddSubsystem(b))

	w, err := diagram.Connect(a, b, "p", "p", diagram.PlainWire)
	require.NoError(t, err)
	assert.Equal(t, "elec", w.Type())

	_, err = diagram.Connect(a, b, "p", "h", diagram.PlainWire)
	assert.ErrorIs(t, err, diagram.ErrTypeMismatch)
}
