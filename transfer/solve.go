// SPDX-License-Identifier: MIT
// Package: sysdiag/transfer
//
// solve.go — hierarchical signal-flow traversal.
//
// Naming:
//   - U_<sys>_<port>, Y_<sys>_<port>: input and output ports of the solved
//     System (outputs of nested composites get their scope prefix).
//   - W_<scope><wire>: one unknown per connected wire of a composite level.
//   - U_<scope><source>, Y_<scope><sink>: free inputs and extra outputs.
//   - <scope> is the dotted path of composites below the solved System, so
//     equal names in different composites never collide.
//   - Names can still coincide inside one level (sink "A_b" and port b of
//     "A"); Solve refuses those with ErrNameCollision.
//
// Traversal order is fixed: wires, own input ports, own output ports, then
// subsystems, each in list order.

package transfer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/sysdiag/diagram"
	"github.com/katalvlaran/sysdiag/flowgraph"
	"github.com/katalvlaran/sysdiag/symbolic"
)

// Sentinel errors.
var (
	// ErrNilSystem indicates a nil System argument.
	ErrNilSystem = errors.New("transfer: system is nil")

	// ErrUnknownBlockKind is diagram.ErrUnknownBlockKind.
	ErrUnknownBlockKind = diagram.ErrUnknownBlockKind

	// ErrUnsolvable wraps the elimination engine's failure.
	ErrUnsolvable = errors.New("transfer: system cannot be solved")

	// ErrPortArity indicates an input count that does not match the ports.
	ErrPortArity = errors.New("transfer: input count does not match input ports")

	// ErrInvalidParams indicates block parameters the rule cannot use.
	ErrInvalidParams = errors.New("transfer: invalid block parameters")

	// ErrNameCollision indicates two distinct signals that map onto the same
	// variable name, e.g. a sink "A_b" next to output port b of System "A".
	ErrNameCollision = errors.New("transfer: variable name collision")
)

// Output is one solved output variable.
type Output struct {
	Var  string
	Expr symbolic.Expr
}

// Diagnostic is a non-fatal finding about the analysed diagram.
type Diagnostic struct {
	System  string // slash-separated path
	Port    string
	Wire    string
	Message string
}

func (d Diagnostic) String() string {
	s := d.System
	if d.Port != "" {
		s += "." + d.Port
	}
	if d.Wire != "" {
		s += " wire " + d.Wire
	}
	return s + ": " + d.Message
}

// Result of Solve.
type Result struct {
	// Outputs lists the solved System's output ports first, then the
	// outputs of every Sink met during traversal.
	Outputs []Output

	// Inputs lists the input port expressions, then every free input the
	// traversal introduced (sources, unconnected ports).
	Inputs []symbolic.Expr

	Diagnostics []Diagnostic

	// Loops are the feedback loops between the direct subsystems.
	Loops [][]string
}

// Output returns the expression bound to name.
func (r *Result) Output(name string) (symbolic.Expr, bool) {
	for _, o := range r.Outputs {
		if o.Var == name {
			return o.Expr, true
		}
	}
	return symbolic.Expr{}, false
}

// Solve computes the output expressions of sys in terms of its inputs.
//
// Implementation:
//   - Stage 1: Resolve inputs (WithInputs or U_<sys>_<port>) and check arity.
//   - Stage 2: At depth 0, or when sys has no inner structure, apply the
//     block rule of its kind.
//   - Stage 3: Otherwise bind wire, port and subsystem equations level by
//     level, solving composite children at depth-1, and eliminate.
//   - Stage 4: Report feedback loops and subsystems no signal reaches.
func Solve(sys *diagram.System, opts ...Option) (*Result, error) {
	if sys == nil {
		return nil, ErrNilSystem
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	inputs := o.inputs
	if !o.inputsSet {
		for _, p := range sys.InputPorts() {
			inputs = append(inputs, symbolic.Sym("U_"+sys.Name()+"_"+p.Name()))
		}
	}

	s := &solver{opts: o, log: o.logger}
	outputs, free, err := s.solve(sys, "", "", inputs, o.depth)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Outputs: outputs,
		Inputs:  append(append([]symbolic.Expr{}, inputs...), free...),
	}
	if o.depth != 0 && !sys.IsEmpty() {
		if err = s.analyseFlow(sys, res); err != nil {
			return nil, err
		}
	}
	res.Diagnostics = s.diags
	return res, nil
}

type solver struct {
	opts  options
	log   *slog.Logger
	diags []Diagnostic
}

func (s *solver) warn(sys *diagram.System, port, wire, msg string) {
	d := Diagnostic{System: sys.Path(), Port: port, Wire: wire, Message: msg}
	s.diags = append(s.diags, d)
	s.log.Warn(msg, "system", d.System, "port", port, "wire", wire)
}

// solve returns the outputs of sys (own ports, then sinks) and the free
// inputs created below it. scope prefixes names at the level where sys
// lives; inner prefixes names of its children.
func (s *solver) solve(sys *diagram.System, scope, inner string, inputs []symbolic.Expr, depth int) ([]Output, []symbolic.Expr, error) {
	if !sys.Kind().Valid() {
		return nil, nil, fmt.Errorf("Solve(%q): %s: %w", sys.Name(), sys.Kind(), ErrUnknownBlockKind)
	}
	ins, outs := sys.InputPorts(), sys.OutputPorts()
	if len(inputs) != len(ins) {
		return nil, nil, fmt.Errorf("Solve(%q): %d inputs for %d ports: %w", sys.Name(), len(inputs), len(ins), ErrPortArity)
	}
	s.log.Debug("solving", "system", sys.Path(), "depth", depth)

	if depth == 0 || sys.IsEmpty() {
		exprs, free, err := blockRule(sys, scope, inputs)
		if err != nil {
			return nil, nil, err
		}
		out := make([]Output, len(outs))
		for j, p := range outs {
			out[j] = Output{Var: outputVar(scope, sys, p), Expr: exprs[j]}
		}
		return out, free, nil
	}

	sub := depth - 1
	if depth == Unlimited {
		sub = Unlimited
	}
	lv := &level{
		solver: s,
		sys:    sys,
		inner:  inner,
		el:     s.opts.newEliminator(),
		wires:  make(map[string]symbolic.Expr),
		names:  make(map[string]struct{}),
	}
	for _, in := range inputs {
		for _, name := range in.Symbols() {
			lv.names[name] = struct{}{}
		}
	}
	lv.bindWires()
	lv.bindOwnInputs(inputs)
	own := lv.bindOwnOutputs(scope)
	for _, c := range sys.Subsystems() {
		if err := lv.bindChild(c, sub); err != nil {
			return nil, nil, err
		}
	}
	if lv.err != nil {
		return nil, nil, lv.err
	}

	sol, err := lv.el.Solve(lv.unknowns)
	if err != nil {
		return nil, nil, fmt.Errorf("Solve(%q): %w: %w", sys.Path(), ErrUnsolvable, err)
	}
	out := make([]Output, 0, len(own)+len(lv.sinks))
	for _, o := range own {
		if e, ok := sol[o.Var]; ok {
			o.Expr = e
		}
		out = append(out, o)
	}
	for _, v := range lv.sinks {
		out = append(out, Output{Var: v, Expr: sol[v]})
	}
	return out, lv.free, nil
}

func outputVar(scope string, sys *diagram.System, p *diagram.Port) string {
	return "Y_" + scope + sys.Name() + "_" + p.Name()
}

// level holds the equations of one composite being solved.
type level struct {
	*solver
	sys      *diagram.System
	inner    string
	el       symbolic.Eliminator
	wires    map[string]symbolic.Expr
	unknowns []string
	free     []symbolic.Expr
	sinks    []string
	names    map[string]struct{} // every variable name in use at this level
	err      error               // first collision
}

// claim reserves name at this level and records the first duplicate.
func (lv *level) claim(name string) {
	if _, dup := lv.names[name]; dup {
		if lv.err == nil {
			lv.err = fmt.Errorf("Solve(%q): %q: %w", lv.sys.Path(), name, ErrNameCollision)
		}
		return
	}
	lv.names[name] = struct{}{}
}

func (lv *level) unknown(name string) symbolic.Expr {
	lv.claim(name)
	lv.unknowns = append(lv.unknowns, name)
	return lv.el.Symbol(name)
}

func (lv *level) freeInput(name string) symbolic.Expr {
	lv.claim(name)
	u := lv.el.Symbol(name)
	lv.free = append(lv.free, u)
	return u
}

// bindWires creates W_<scope><wire> for every wire with connections. A
// wire with no signal source is tied to a free input.
func (lv *level) bindWires() {
	for _, w := range lv.sys.Wires() {
		if len(w.Ports()) == 0 {
			lv.warn(lv.sys, "", w.Name(), "wire has no connections")
			continue
		}
		v := lv.unknown("W_" + lv.inner + w.Name())
		lv.wires[w.Name()] = v
		if w.Source() == nil {
			lv.warn(lv.sys, "", w.Name(), "wire has no signal source")
			lv.el.Assert(v, lv.freeInput("U_"+lv.inner+w.Name()))
		}
	}
}

// wireOf returns the variable of w, if w is a wire of this level.
func (lv *level) wireOf(w *diagram.Wire) (symbolic.Expr, bool) {
	if w == nil {
		return symbolic.Expr{}, false
	}
	v, ok := lv.wires[w.Name()]
	return v, ok
}

func (lv *level) bindOwnInputs(inputs []symbolic.Expr) {
	for i, p := range lv.sys.InputPorts() {
		v, ok := lv.wireOf(p.InternalWire())
		if !ok {
			lv.warn(lv.sys, p.Name(), "", "input port not connected inside")
			continue
		}
		lv.el.Assert(v, inputs[i])
	}
}

// bindOwnOutputs returns one Output per own output port. Ports not driven
// from inside keep the zero expression.
func (lv *level) bindOwnOutputs(scope string) []Output {
	outs := lv.sys.OutputPorts()
	own := make([]Output, len(outs))
	for j, p := range outs {
		own[j].Var = outputVar(scope, lv.sys, p)
		v, ok := lv.wireOf(p.InternalWire())
		if !ok {
			lv.warn(lv.sys, p.Name(), "", "output port not driven inside")
			continue
		}
		lv.el.Assert(lv.unknown(own[j].Var), v)
	}
	return own
}

func (lv *level) bindChild(c *diagram.System, depth int) error {
	switch c.Kind() {
	case diagram.KindSource:
		u := lv.freeInput("U_" + lv.inner + c.Name())
		for _, p := range c.OutputPorts() {
			if v, ok := lv.wireOf(p.Wire()); ok {
				lv.el.Assert(v, u)
			} else {
				lv.warn(c, p.Name(), "", "source output not connected")
			}
		}
		return nil

	case diagram.KindSink:
		for _, p := range c.InputPorts() {
			v, ok := lv.wireOf(p.Wire())
			if !ok {
				lv.warn(c, p.Name(), "", "sink input not connected")
				continue
			}
			name := "Y_" + lv.inner + c.Name()
			lv.el.Assert(lv.unknown(name), v)
			lv.sinks = append(lv.sinks, name)
		}
		return nil
	}

	ins := c.InputPorts()
	args := make([]symbolic.Expr, len(ins))
	for i, p := range ins {
		if v, ok := lv.wireOf(p.Wire()); ok {
			args[i] = v
			continue
		}
		lv.warn(c, p.Name(), "", "input port not connected")
		args[i] = lv.freeInput("U_" + lv.inner + c.Name() + "_" + p.Name())
	}

	outputs, free, err := lv.solve(c, lv.inner, lv.inner+c.Name()+".", args, depth)
	if err != nil {
		return err
	}
	for _, u := range free {
		for _, name := range u.Symbols() {
			lv.claim(name)
		}
	}
	lv.free = append(lv.free, free...)

	outs := c.OutputPorts()
	for j, p := range outs {
		v, ok := lv.wireOf(p.Wire())
		if !ok {
			lv.warn(c, p.Name(), "", "output port not connected")
			continue
		}
		lv.el.Assert(v, outputs[j].Expr)
	}
	// sinks inside a composite child surface as extra outputs here
	for _, extra := range outputs[len(outs):] {
		lv.el.Assert(lv.unknown(extra.Var), extra.Expr)
		lv.sinks = append(lv.sinks, extra.Var)
	}
	return nil
}

// analyseFlow records feedback loops and warns about subsystems that no
// source or input port reaches.
func (s *solver) analyseFlow(sys *diagram.System, res *Result) error {
	g, err := flowgraph.FromSystem(sys)
	if err != nil {
		return err
	}
	if res.Loops, err = flowgraph.DetectCycles(g); err != nil {
		return err
	}
	roots := flowgraph.Roots(sys)
	if len(roots) == 0 {
		return nil
	}
	missed, err := flowgraph.Unreachable(g, roots...)
	if err != nil {
		return err
	}
	for _, name := range missed {
		s.warn(sys.Subsystem(name), "", "", "not reachable from any signal source")
	}
	return nil
}
