// SPDX-License-Identifier: MIT

package transfer_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sysdiag/blocks"
	"github.com/katalvlaran/sysdiag/diagram"
	"github.com/katalvlaran/sysdiag/symbolic"
	"github.com/katalvlaran/sysdiag/transfer"
)

const (
	gainK = 2.0
	gainT = 0.2
)

// closedLoop builds src -> compare -> controller -> plant -> y with the plant
// output fed back into compare.in1. ctrl and plant are supplied by the caller.
func closedLoop(t *testing.T, ctrl, plant *diagram.System) *diagram.System {
	t.Helper()
	root := diagram.NewSystem("top")
	src := blocks.NewSource("src")
	comp, err := blocks.NewSummation("compare", []string{"+", "-"})
	require.NoError(t, err)
	sink := blocks.NewSink("y")
	for _, s := range []*diagram.System{src, comp, ctrl, plant, sink} {
		require.NoError(t, root.AddSubsystem(s))
	}
	w0, err := blocks.ConnectSignal(src, comp, "", "in0")
	require.NoError(t, err)
	_, err = blocks.ConnectSignal(comp, ctrl, "", "")
	require.NoError(t, err)
	_, err = blocks.ConnectSignal(ctrl, plant, "", "")
	require.NoError(t, err)
	w3, err := blocks.ConnectSignal(plant, comp, "", "in1")
	require.NoError(t, err)
	w4, err := blocks.ConnectSignal(plant, sink, "", "")
	require.NoError(t, err)
	require.NotSame(t, w0, w3)
	require.Same(t, w3, w4)
	return root
}

func piLoop(t *testing.T) *diagram.System {
	return closedLoop(t,
		blocks.NewTransferFunction("controller", []float64{1, gainK * gainT}, []float64{0, gainT}),
		blocks.NewTransferFunction("plant", []float64{1}, []float64{0, 1}))
}

func eval(t *testing.T, e symbolic.Expr, at map[string]float64) float64 {
	t.Helper()
	v, err := e.Eval(at)
	require.NoError(t, err)
	return v
}

func TestSolve_ClosedLoopPI(t *testing.T) {
	res, err := transfer.Solve(piLoop(t), transfer.WithDepth(1))
	require.NoError(t, err)

	require.Len(t, res.Outputs, 1)
	assert.Equal(t, "Y_y", res.Outputs[0].Var)
	require.Len(t, res.Inputs, 1)
	assert.Equal(t, "U_src", res.Inputs[0].String())
	assert.Empty(t, res.Diagnostics)

	// Y/U = (1 + K·Ti·s) / (Ti·s² + K·Ti·s + 1)
	y := res.Outputs[0].Expr
	assert.Equal(t, []string{"U_src", "s"}, y.Symbols())
	for _, s := range []float64{0.5, 1, 2, 7} {
		want := (1 + gainK*gainT*s) / (gainT*s*s + gainK*gainT*s + 1)
		assert.InDelta(t, want, eval(t, y, map[string]float64{"s": s, "U_src": 1}), 1e-12, "s=%v", s)
	}

	assert.Equal(t, [][]string{{"compare", "controller", "plant", "compare"}}, res.Loops)
}

func TestSolve_ClosedLoopGenericGains(t *testing.T) {
	res, err := transfer.Solve(closedLoop(t, blocks.NewSISO("controller"), blocks.NewSISO("plant")))
	require.NoError(t, err)

	y, ok := res.Output("Y_y")
	require.True(t, ok)
	assert.Equal(t, []string{"TF_controller", "TF_plant", "U_src"}, y.Symbols())

	// C·P / (1 + C·P)
	got := eval(t, y, map[string]float64{"TF_controller": 2, "TF_plant": 3, "U_src": 1})
	assert.InDelta(t, 6.0/7.0, got, 1e-12)
}

func TestSolve_DepthOneMatchesUnlimited(t *testing.T) {
	one, err := transfer.Solve(piLoop(t), transfer.WithDepth(1))
	require.NoError(t, err)
	all, err := transfer.Solve(piLoop(t), transfer.WithUnlimitedDepth())
	require.NoError(t, err)

	require.Equal(t, len(one.Outputs), len(all.Outputs))
	for i := range one.Outputs {
		assert.Equal(t, one.Outputs[i].Var, all.Outputs[i].Var)
		assert.True(t, one.Outputs[i].Expr.Equal(all.Outputs[i].Expr), "%s vs %s", one.Outputs[i].Expr, all.Outputs[i].Expr)
	}
}

func TestSolve_DepthZeroBlocks(t *testing.T) {
	tf := blocks.NewTransferFunction("c", []float64{1, 0.4}, []float64{0, 0.2})
	res, err := transfer.Solve(tf, transfer.WithDepth(0))
	require.NoError(t, err)
	require.Len(t, res.Outputs, 1)
	assert.Equal(t, "Y_c_out", res.Outputs[0].Var)
	assert.Equal(t, "U_c_in", res.Inputs[0].String())
	assert.InDelta(t, 1.4/0.2, eval(t, res.Outputs[0].Expr, map[string]float64{"s": 1, "U_c_in": 1}), 1e-12)

	sum, err := blocks.NewSummation("sum", []string{"+", "-", "+"})
	require.NoError(t, err)
	res, err = transfer.Solve(sum, transfer.WithDepth(0))
	require.NoError(t, err)
	assert.Equal(t, "U_sum_in0 - U_sum_in1 + U_sum_in2", res.Outputs[0].Expr.String())

	// the top-level System itself at depth 0 is a generic block
	res, err = transfer.Solve(piLoop(t), transfer.WithDepth(0))
	require.NoError(t, err)
	assert.Empty(t, res.Outputs)
	assert.Nil(t, res.Loops)
}

func TestSolve_EmptySISOAnyDepth(t *testing.T) {
	for _, opt := range []transfer.Option{transfer.WithDepth(0), transfer.WithDepth(3), transfer.WithUnlimitedDepth()} {
		res, err := transfer.Solve(blocks.NewSISO("g"), opt)
		require.NoError(t, err)
		require.Len(t, res.Outputs, 1)
		assert.Equal(t, "Y_g_out", res.Outputs[0].Var)
		assert.Equal(t, "TF_g*U_g_in", res.Outputs[0].Expr.String())
	}
}

func TestSolve_WithInputs(t *testing.T) {
	res, err := transfer.Solve(blocks.NewSISO("g"), transfer.WithInputs(symbolic.Sym("x")))
	require.NoError(t, err)
	assert.Equal(t, "TF_g*x", res.Outputs[0].Expr.String())

	_, err = transfer.Solve(blocks.NewSISO("g"), transfer.WithInputs())
	assert.ErrorIs(t, err, transfer.ErrPortArity)
}

// nested builds src -> inner(u -> g -> y) -> out.
func nested(t *testing.T) *diagram.System {
	t.Helper()
	inner := diagram.NewSystem("inner")
	require.NoError(t, inner.AddPort(diagram.NewInputPort("u", "")))
	require.NoError(t, inner.AddPort(diagram.NewOutputPort("y", "")))
	g := blocks.NewSISO("g")
	require.NoError(t, inner.AddSubsystem(g))
	wu := diagram.NewSignalWire("W", "")
	wy := diagram.NewSignalWire("W0", "")
	require.NoError(t, inner.AddWire(wu))
	require.NoError(t, inner.AddWire(wy))
	require.NoError(t, wu.ConnectPort(inner.Port("u"), diagram.LevelBoundary))
	require.NoError(t, wu.ConnectPort(g.Port("in"), diagram.LevelSibling))
	require.NoError(t, wy.ConnectPort(g.Port("out"), diagram.LevelSibling))
	require.NoError(t, wy.ConnectPort(inner.Port("y"), diagram.LevelBoundary))

	root := diagram.NewSystem("top")
	src, out := blocks.NewSource("src"), blocks.NewSink("out")
	for _, s := range []*diagram.System{src, inner, out} {
		require.NoError(t, root.AddSubsystem(s))
	}
	_, err := blocks.ConnectSignal(src, inner, "", "u")
	require.NoError(t, err)
	_, err = blocks.ConnectSignal(inner, out, "y", "")
	require.NoError(t, err)
	return root
}

func TestSolve_NestedComposite(t *testing.T) {
	res, err := transfer.Solve(nested(t))
	require.NoError(t, err)
	y, ok := res.Output("Y_out")
	require.True(t, ok)
	assert.Equal(t, "TF_inner.g*U_src", y.String())

	// stopping one level down treats the composite as a generic block
	res, err = transfer.Solve(nested(t), transfer.WithDepth(1))
	require.NoError(t, err)
	y, _ = res.Output("Y_out")
	assert.Equal(t, "TF_inner*U_src", y.String())
}

func TestSolve_InnerSinkAndSourcePropagate(t *testing.T) {
	comp := diagram.NewSystem("bench")
	src, sink := blocks.NewSource("gen"), blocks.NewSink("scope")
	require.NoError(t, comp.AddSubsystem(src))
	require.NoError(t, comp.AddSubsystem(sink))
	_, err := blocks.ConnectSignal(src, sink, "", "")
	require.NoError(t, err)

	root := diagram.NewSystem("top")
	require.NoError(t, root.AddSubsystem(comp))

	res, err := transfer.Solve(root)
	require.NoError(t, err)
	require.Len(t, res.Outputs, 1)
	assert.Equal(t, "Y_bench.scope", res.Outputs[0].Var)
	assert.Equal(t, "U_bench.gen", res.Outputs[0].Expr.String())
	require.Len(t, res.Inputs, 1)
	assert.Equal(t, "U_bench.gen", res.Inputs[0].String())
}

func TestSolve_Diagnostics(t *testing.T) {
	root := diagram.NewSystem("top")
	g, sink := blocks.NewSISO("g"), blocks.NewSink("y")
	require.NoError(t, root.AddSubsystem(g))
	require.NoError(t, root.AddSubsystem(sink))
	_, err := blocks.ConnectSignal(g, sink, "", "")
	require.NoError(t, err)
	require.NoError(t, root.AddWire(diagram.NewSignalWire("spare", "")))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	res, err := transfer.Solve(root, transfer.WithLogger(logger))
	require.NoError(t, err)

	require.Len(t, res.Diagnostics, 2)
	assert.Equal(t, "spare", res.Diagnostics[0].Wire)
	assert.Equal(t, "top/g", res.Diagnostics[1].System)
	assert.Equal(t, "in", res.Diagnostics[1].Port)

	y, ok := res.Output("Y_y")
	require.True(t, ok)
	assert.Equal(t, "TF_g*U_g_in", y.String())
	assert.Equal(t, "U_g_in", res.Inputs[0].String())

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestSolve_UnreachableWarning(t *testing.T) {
	root := piLoop(t)
	require.NoError(t, root.AddSubsystem(blocks.NewSISO("orphan")))
	res, err := transfer.Solve(root)
	require.NoError(t, err)

	var msgs []string
	for _, d := range res.Diagnostics {
		msgs = append(msgs, d.String())
	}
	assert.Contains(t, msgs, "top/orphan: not reachable from any signal source")
}

func TestSolve_Errors(t *testing.T) {
	sum, err := blocks.NewSummation("sum", []string{"+", "+"})
	require.NoError(t, err)
	require.NoError(t, sum.SetParam(blocks.ParamOps, []string{"+", "+", "+"}))
	_, err = transfer.Solve(sum, transfer.WithDepth(0))
	assert.ErrorIs(t, err, transfer.ErrPortArity)

	require.NoError(t, sum.SetParam(blocks.ParamOps, "++"))
	_, err = transfer.Solve(sum, transfer.WithDepth(0))
	assert.ErrorIs(t, err, transfer.ErrInvalidParams)

	_, err = transfer.Solve(nil)
	assert.ErrorIs(t, err, transfer.ErrNilSystem)

	// two sources driving one plain wire contradict each other
	root := diagram.NewSystem("top")
	a, b := blocks.NewSource("a"), blocks.NewSource("b")
	require.NoError(t, root.AddSubsystem(a))
	require.NoError(t, root.AddSubsystem(b))
	_, err = diagram.Connect(a, b, "out", "out", diagram.PlainWire)
	require.NoError(t, err)
	_, err = transfer.Solve(root)
	assert.ErrorIs(t, err, transfer.ErrUnsolvable)
	assert.ErrorIs(t, err, symbolic.ErrInconsistent)
}

func TestSolve_NameCollision(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) *diagram.System
		clash string
	}{
		{"sink vs own output", func(t *testing.T) *diagram.System {
			a := diagram.NewSystem("A")
			require.NoError(t, a.AddPort(diagram.NewOutputPort("b", "")))
			src, sink := blocks.NewSource("src"), blocks.NewSink("A_b")
			require.NoError(t, a.AddSubsystem(src))
			require.NoError(t, a.AddSubsystem(sink))
			w, err := blocks.ConnectSignal(src, sink, "", "")
			require.NoError(t, err)
			require.NoError(t, w.ConnectPort(a.Port("b"), diagram.LevelBoundary))
			return a
		}, "Y_A_b"},
		{"source vs own input", func(t *testing.T) *diagram.System {
			a := diagram.NewSystem("A")
			require.NoError(t, a.AddPort(diagram.NewInputPort("u", "")))
			require.NoError(t, a.AddSubsystem(blocks.NewSource("A_u")))
			return a
		}, "U_A_u"},
		{"source vs undriven wire", func(t *testing.T) *diagram.System {
			root := diagram.NewSystem("top")
			y := blocks.NewSink("y")
			require.NoError(t, root.AddSubsystem(blocks.NewSource("src")))
			require.NoError(t, root.AddSubsystem(y))
			w := diagram.NewSignalWire("src", "")
			require.NoError(t, root.AddWire(w))
			require.NoError(t, w.ConnectPort(y.Port(blocks.PortIn), diagram.LevelSibling))
			return root
		}, "U_src"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := transfer.Solve(tc.build(t))
			require.ErrorIs(t, err, transfer.ErrNameCollision)
			assert.Contains(t, err.Error(), tc.clash)
		})
	}
}

func TestBlockOutputs(t *testing.T) {
	x := symbolic.Sym("x")
	out, err := transfer.BlockOutputs(blocks.NewTransferFunction("tf", []float64{3}, []float64{1}), []symbolic.Expr{x})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "3*x", out[0].String())

	out, err = transfer.BlockOutputs(blocks.NewSource("u"), nil)
	require.NoError(t, err)
	assert.Equal(t, "U_u", out[0].String())

	out, err = transfer.BlockOutputs(blocks.NewSink("y"), []symbolic.Expr{x})
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = transfer.BlockOutputs(blocks.NewSISO("g"), nil)
	assert.ErrorIs(t, err, transfer.ErrPortArity)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { transfer.WithDepth(-1) })
	assert.Panics(t, func() { transfer.WithLogger(nil) })
	assert.Panics(t, func() { transfer.WithEliminator(nil) })
}
