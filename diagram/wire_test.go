// SPDX-License-Identifier: MIT

package diagram_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sysdiag/diagram"
)

func TestWire_TypeMismatch(t *testing.T) {
	root := diagram.NewSystem("root")
	a := diagram.NewSystem("a")
	require.NoError(t, a.AddPort(diagram.NewPort("p", "elec")))
	require.NoError(t, a.AddPort(diagram.NewPort("q", "hydro")))
	require.NoError(t, root.AddSubsystem(a))

	w := diagram.NewWire("w", "elec")
	require.NoError(t, root.AddWire(w))

	assert.NoError(t, w.ConnectPort(a.Port("p"), diagram.LevelSibling))
	err := w.ConnectPort(a.Port("q"), diagram.LevelSibling)
	assert.ErrorIs(t, err, diagram.ErrTypeMismatch)
	assert.False(t, a.Port("q").InUse()) // refused connect leaves the slot empty
	assert.Len(t, w.Ports(), 1)
}

func TestWire_UntypedAcceptsAnyType(t *testing.T) {
	root := diagram.NewSystem("root")
	a := diagram.NewSystem("a")
	require.NoError(t, a.AddPort(diagram.NewPort("p", "elec")))
	require.NoError(t, a.AddPort(diagram.NewPort("q", "hydro")))
	require.NoError(t, root.AddSubsystem(a))

	w := diagram.NewWire("w", "")
	require.NoError(t, root.AddWire(w))
	assert.NoError(t, w.ConnectPort(a.Port("p"), diagram.LevelSibling))
	assert.NoError(t, w.ConnectPort(a.Port("q"), diagram.LevelSibling))
	assert.Same(t, w, a.Port("q").Wire())
}

func TestSignalWire_SingleSourceManySinks(t *testing.T) {
	root := diagram.NewSystem("root")
	a := block(t, "a", nil, []string{"out"})
	b := block(t, "b", nil, []string{"out"})
	c := block(t, "c", []string{"in"}, nil)
	d := block(t, "d", []string{"in"}, nil)
	for _, s := range []*diagram.System{a, b, c, d} {
		require.NoError(t, root.AddSubsystem(s))
	}
	w := diagram.NewSignalWire("s", "")
	require.NoError(t, root.AddWire(w))

	require.NoError(t, w.ConnectPort(a.Port("out"), diagram.LevelSibling))
	require.NoError(t, w.ConnectPort(c.Port("in"), diagram.LevelSibling))
	require.NoError(t, w.ConnectPort(d.Port("in"), diagram.LevelSibling))

	err := w.ConnectPort(b.Port("out"), diagram.LevelSibling)
	assert.ErrorIs(t, err, diagram.ErrMultiSource)

	assert.Same(t, a.Port("out"), w.Source())
	assert.Equal(t, []*diagram.Port{c.Port("in"), d.Port("in")}, w.Sinks())
}

func TestSignalWire_RejectsNonDirectionalPort(t *testing.T) {
	root := diagram.NewSystem("root")
	a := diagram.NewSystem("a")
	require.NoError(t, a.AddPort(diagram.NewPort("p", "")))
	require.NoError(t, root.AddSubsystem(a))
	w := diagram.NewSignalWire("s", "")
	require.NoError(t, root.AddWire(w))

	assert.ErrorIs(t, w.ConnectPort(a.Port("p"), diagram.LevelSibling), diagram.ErrWrongDirection)
	assert.False(t, w.IsConnectAllowed(a.Port("p"), diagram.LevelSibling))
}

func TestWire_ReconnectIsNoOp(t *testing.T) {
	root := diagram.NewSystem("root")
	a := block(t, "a", nil, []string{"out"})
	require.NoError(t, root.AddSubsystem(a))
	w := diagram.NewSignalWire("s", "")
	require.NoError(t, root.AddWire(w))

	require.NoError(t, w.ConnectPort(a.Port("out"), diagram.LevelSibling))
	require.NoError(t, w.ConnectPort(a.Port("out"), diagram.LevelSibling)) // idempotent
	assert.Len(t, w.Ports(), 1)

	other := diagram.NewSignalWire("t", "")
	require.NoError(t, root.AddWire(other))
	assert.ErrorIs(t, other.ConnectPort(a.Port("out"), diagram.LevelSibling), diagram.ErrAlreadyConnected)
}

func TestWire_BoundaryLevel(t *testing.T) {
	comp := block(t, "comp", []string{"u"}, []string{"y"})
	inner := block(t, "inner", []string{"in"}, []string{"out"})
	require.NoError(t, comp.AddSubsystem(inner))

	wu := diagram.NewSignalWire("wu", "")
	wy := diagram.NewSignalWire("wy", "")
	require.NoError(t, comp.AddWire(wu))
	require.NoError(t, comp.AddWire(wy))

	// the composite's input drives the inner wire
	require.NoError(t, wu.ConnectPort(comp.Port("u"), diagram.LevelBoundary))
	require.NoError(t, wu.ConnectPort(inner.Port("in"), diagram.LevelSibling))
	require.NoError(t, wy.ConnectPort(inner.Port("out"), diagram.LevelSibling))
	require.NoError(t, wy.ConnectPort(comp.Port("y"), diagram.LevelBoundary))

	assert.Same(t, comp.Port("u"), wu.Source())
	assert.Same(t, inner.Port("out"), wy.Source())
	assert.Same(t, wu, comp.Port("u").InternalWire())
	assert.Nil(t, comp.Port("u").Wire()) // sibling slot still free
	assert.False(t, comp.Port("u").IsConnected(diagram.LevelSibling))

	assert.Equal(t, []diagram.Triplet{
		{Level: diagram.LevelBoundary, System: "comp", Port: "u"},
		{Level: diagram.LevelSibling, System: "inner", Port: "in"},
	}, wu.ConnectionTriplets())
}

func TestWire_LevelViolation(t *testing.T) {
	comp := block(t, "comp", []string{"u"}, nil)
	w := diagram.NewSignalWire("w", "")
	require.NoError(t, comp.AddWire(w))

	// comp's own port can only reach comp's wire from inside
	err := w.ConnectPort(comp.Port("u"), diagram.LevelSibling)
	assert.ErrorIs(t, err, diagram.ErrLevelViolation)

	// a port of an unrelated System matches neither level
	stray := block(t, "stray", []string{"in"}, nil)
	assert.ErrorIs(t, w.ConnectPort(stray.Port("in"), diagram.LevelBoundary), diagram.ErrLevelViolation)
}

func TestParseLevel(t *testing.T) {
	for _, l := range []diagram.Level{diagram.LevelSibling, diagram.LevelBoundary} {
		got, err := diagram.ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
	_, err := diagram.ParseLevel("upstairs")
	assert.Error(t, err)
}
