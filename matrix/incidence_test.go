// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sysdiag/blocks"
	"github.com/katalvlaran/sysdiag/diagram"
	"github.com/katalvlaran/sysdiag/matrix"
)

// closedLoop: src -> compare -> controller -> plant -> y, plant fed back to compare.in1.
func closedLoop(t *testing.T) *diagram.System {
	t.Helper()
	root := diagram.NewSystem("top")
	comp, err := blocks.NewSummation("compare", []string{"+", "-"})
	require.NoError(t, err)
	src, ctrl, plant, y := blocks.NewSource("src"), blocks.NewSISO("controller"), blocks.NewSISO("plant"), blocks.NewSink("y")
	for _, s := range []*diagram.System{src, comp, ctrl, plant, y} {
		require.NoError(t, root.AddSubsystem(s))
	}
	for _, c := range [][4]any{
		{src, comp, "", "in0"},
		{comp, ctrl, "", ""},
		{ctrl, plant, "", ""},
		{plant, comp, "", "in1"},
		{plant, y, "", ""},
	} {
		_, err = blocks.ConnectSignal(c[0].(*diagram.System), c[1].(*diagram.System), c[2].(string), c[3].(string))
		require.NoError(t, err)
	}
	return root
}

func TestIncidenceClosedLoop(t *testing.T) {
	inc, err := matrix.NewIncidence(closedLoop(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"src", "compare", "controller", "plant", "y"}, inc.Systems)
	assert.Equal(t, []string{"W", "W0", "W1", "W2"}, inc.Wires)
	assert.Equal(t, 5, inc.Mat.Rows())
	assert.Equal(t, 4, inc.Mat.Cols())

	col, err := inc.WireIncidence("W2")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0, -1, 1}, col) // plant feeds compare and y

	row, err := inc.SystemIncidence("compare")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -1, 0, 1}, row)

	_, ok := inc.BoundaryIncidence()
	assert.False(t, ok)
}

func TestIncidenceBoundaryRow(t *testing.T) {
	inner := diagram.NewSystem("inner")
	require.NoError(t, inner.AddPort(diagram.NewInputPort("u", "")))
	require.NoError(t, inner.AddPort(diagram.NewOutputPort("y", "")))
	g := blocks.NewSISO("g")
	require.NoError(t, inner.AddSubsystem(g))
	for _, c := range []struct {
		wire, self, child string
	}{{"U", "u", "in"}, {"Y", "y", "out"}} {
		w := diagram.NewSignalWire(c.wire, "")
		require.NoError(t, inner.AddWire(w))
		require.NoError(t, w.ConnectPort(inner.Port(c.self), diagram.LevelBoundary))
		require.NoError(t, w.ConnectPort(g.Port(c.child), diagram.LevelSibling))
	}

	inc, err := matrix.NewIncidence(inner)
	require.NoError(t, err)
	assert.Equal(t, []string{"g", "inner"}, inc.Systems)

	b, ok := inc.BoundaryIncidence()
	require.True(t, ok)
	assert.Equal(t, []float64{-1, 1}, b) // boundary input drives U, boundary output reads Y

	row, err := inc.SystemIncidence("inner")
	require.NoError(t, err)
	assert.Equal(t, b, row)
	row, err = inc.SystemIncidence("g")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -1}, row)
}

func TestIncidenceElectrical(t *testing.T) {
	root := diagram.NewSystem("rc")
	r, c := blocks.NewResistor("r", 220), blocks.NewCapacitor("c", 1e-6)
	require.NoError(t, root.AddSubsystem(r))
	require.NoError(t, root.AddSubsystem(c))
	_, err := blocks.ConnectElec(r, c, blocks.PortN, blocks.PortP)
	require.NoError(t, err)

	inc, err := matrix.NewIncidence(root)
	require.NoError(t, err)
	col, err := inc.WireIncidence("W")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, col)
}

func TestIncidenceErrors(t *testing.T) {
	_, err := matrix.NewIncidence(nil)
	assert.ErrorIs(t, err, matrix.ErrNilSystem)

	_, err = matrix.NewIncidence(diagram.NewSystem("empty"))
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	inc, err := matrix.NewIncidence(closedLoop(t))
	require.NoError(t, err)
	_, err = inc.SystemIncidence("top") // no boundary row
	assert.ErrorIs(t, err, matrix.ErrUnknownSystem)
	_, err = inc.WireIncidence("nope")
	assert.ErrorIs(t, err, matrix.ErrUnknownWire)
}

func TestDense(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 4.5))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 4.5, v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
	assert.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrIndexOutOfBounds)
	_, err = m.Row(5)
	assert.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
	_, err = m.Col(3)
	assert.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)

	cl := m.Clone()
	require.NoError(t, cl.Set(1, 2, 0))
	v, _ = m.At(1, 2)
	assert.Equal(t, 4.5, v) // clone is independent
	assert.Equal(t, "[0, 0, 0]\n[0, 0, 4.5]\n", m.String())
}
