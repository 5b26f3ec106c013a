// SPDX-License-Identifier: MIT

package diagram_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sysdiag/diagram"
)

// block builds a generic System with the given input and output port names.
func block(t *testing.T, name string, ins, outs []string) *diagram.System {
	t.Helper()
	s := diagram.NewSystem(name)
	for _, in := range ins {
		require.NoError(t, s.AddPort(diagram.NewInputPort(in, "")))
	}
	for _, out := range outs {
		require.NoError(t, s.AddPort(diagram.NewOutputPort(out, "")))
	}
	return s
}

// closedLoop builds src -> sum -> c -> p -> sink with p fed back into sum.in1.
// It returns the root and the five wires returned by Connect, in call order.
func closedLoop(t *testing.T) (*diagram.System, []*diagram.Wire) {
	t.Helper()
	root := diagram.NewSystem("root")
	src := block(t, "src", nil, []string{"out"})
	sum := block(t, "sum", []string{"in0", "in1"}, []string{"out"})
	c := block(t, "c", []string{"in"}, []string{"out"})
	p := block(t, "p", []string{"in"}, []string{"out"})
	sink := block(t, "sink", []string{"in"}, nil)
	for _, s := range []*diagram.System{src, sum, c, p, sink} {
		require.NoError(t, root.AddSubsystem(s))
	}

	steps := []struct {
		a, b         *diagram.System
		aPort, bPort string
	}{
		{src, sum, "out", "in0"},
		{sum, c, "out", "in"},
		{c, p, "out", "in"},
		{p, sum, "out", "in1"},
		{p, sink, "out", "in"},
	}
	wires := make([]*diagram.Wire, 0, len(steps))
	for _, st := range steps {
		w, err := diagram.Connect(st.a, st.b, st.aPort, st.bPort, diagram.SignalWire)
		require.NoError(t, err)
		wires = append(wires, w)
	}
	return root, wires
}
