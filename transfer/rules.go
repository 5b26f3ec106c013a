// SPDX-License-Identifier: MIT

package transfer

import (
	"fmt"

	"github.com/katalvlaran/sysdiag/blocks"
	"github.com/katalvlaran/sysdiag/diagram"
	"github.com/katalvlaran/sysdiag/symbolic"
)

// LaplaceVar is the transform variable of transfer function blocks.
const LaplaceVar = "s"

// BlockOutputs applies the per-kind equation rule of sys to inputs (one per
// input port) and returns one expression per output port. A Source yields
// its own fresh input symbol U_<name>.
func BlockOutputs(sys *diagram.System, inputs []symbolic.Expr) ([]symbolic.Expr, error) {
	if sys == nil {
		return nil, ErrNilSystem
	}
	if n := len(sys.InputPorts()); n != len(inputs) {
		return nil, fmt.Errorf("BlockOutputs(%q): %d inputs for %d ports: %w", sys.Name(), len(inputs), n, ErrPortArity)
	}
	out, _, err := blockRule(sys, "", inputs)
	return out, err
}

// blockRule returns the output expressions of sys and any free input it
// introduces. scope prefixes generated symbol names.
func blockRule(sys *diagram.System, scope string, inputs []symbolic.Expr) ([]symbolic.Expr, []symbolic.Expr, error) {
	outs := sys.OutputPorts()
	switch sys.Kind() {
	case diagram.KindSummation:
		e, err := sumRule(sys, inputs)
		if err != nil {
			return nil, nil, err
		}
		return repeat(e, len(outs)), nil, nil

	case diagram.KindTransferFunction:
		e, err := tfRule(sys, inputs)
		if err != nil {
			return nil, nil, err
		}
		return repeat(e, len(outs)), nil, nil

	case diagram.KindSource:
		u := symbolic.Sym("U_" + scope + sys.Name())
		return repeat(u, len(outs)), []symbolic.Expr{u}, nil

	case diagram.KindSink:
		return nil, nil, nil

	case diagram.KindSystem, diagram.KindSISO, diagram.KindDipole,
		diagram.KindResistor, diagram.KindCapacitor, diagram.KindInductor:
		return gainRule(sys, scope, inputs), nil, nil
	}
	return nil, nil, fmt.Errorf("blockRule(%q): %s: %w", sys.Name(), sys.Kind(), ErrUnknownBlockKind)
}

func repeat(e symbolic.Expr, n int) []symbolic.Expr {
	out := make([]symbolic.Expr, n)
	for i := range out {
		out[i] = e
	}
	return out
}

// sumRule: signed sum of the inputs following the "ops" parameter.
func sumRule(sys *diagram.System, inputs []symbolic.Expr) (symbolic.Expr, error) {
	ops, err := blocks.Operators(sys)
	if err != nil {
		return symbolic.Expr{}, fmt.Errorf("sumRule: %w: %w", ErrInvalidParams, err)
	}
	if len(ops) != len(inputs) {
		return symbolic.Expr{}, fmt.Errorf("sumRule(%q): %d operators for %d inputs: %w",
			sys.Name(), len(ops), len(inputs), ErrPortArity)
	}
	var sum symbolic.Expr
	for i, op := range ops {
		if op == "-" {
			sum = sum.Sub(inputs[i])
		} else {
			sum = sum.Add(inputs[i])
		}
	}
	return sum, nil
}

// tfRule: N(s)/D(s) * u with N(s) = sum(num[i] * s^i).
func tfRule(sys *diagram.System, inputs []symbolic.Expr) (symbolic.Expr, error) {
	if len(inputs) != 1 {
		return symbolic.Expr{}, fmt.Errorf("tfRule(%q): %d inputs: %w", sys.Name(), len(inputs), ErrPortArity)
	}
	num, err := blocks.Numerator(sys)
	if err != nil {
		return symbolic.Expr{}, fmt.Errorf("tfRule: %w: %w", ErrInvalidParams, err)
	}
	den, err := blocks.Denominator(sys)
	if err != nil {
		return symbolic.Expr{}, fmt.Errorf("tfRule: %w: %w", ErrInvalidParams, err)
	}
	n, err := symbolic.PolyIn(LaplaceVar, num)
	if err != nil {
		return symbolic.Expr{}, fmt.Errorf("tfRule: %w: %w", ErrInvalidParams, err)
	}
	d, err := symbolic.PolyIn(LaplaceVar, den)
	if err != nil {
		return symbolic.Expr{}, fmt.Errorf("tfRule: %w: %w", ErrInvalidParams, err)
	}
	tf, err := n.Div(d)
	if err != nil {
		return symbolic.Expr{}, fmt.Errorf("tfRule: %w: %w", ErrInvalidParams, err)
	}
	return tf.Mul(inputs[0]), nil
}

// gainRule: every output is sum(TF_x * u_i) with one gain symbol per
// input/output pair. A single-input single-output block uses one bare
// TF_<name> symbol.
func gainRule(sys *diagram.System, scope string, inputs []symbolic.Expr) []symbolic.Expr {
	ins, outs := sys.InputPorts(), sys.OutputPorts()
	base := "TF_" + scope + sys.Name()
	exprs := make([]symbolic.Expr, len(outs))
	for j, po := range outs {
		var e symbolic.Expr
		for i, pi := range ins {
			name := base
			if len(ins) > 1 || len(outs) > 1 {
				name = base + "_" + pi.Name() + "_" + po.Name()
			}
			e = e.Add(symbolic.Sym(name).Mul(inputs[i]))
		}
		exprs[j] = e
	}
	return exprs
}
