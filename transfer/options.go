// SPDX-License-Identifier: MIT

package transfer

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/sysdiag/symbolic"
)

// Unlimited is the depth value that recurses through every composite.
const Unlimited = -1

// Option configures Solve.
type Option func(*options)

type options struct {
	depth         int
	inputs        []symbolic.Expr
	inputsSet     bool
	newEliminator func() symbolic.Eliminator
	logger        *slog.Logger
}

func defaultOptions() options {
	return options{
		depth:         Unlimited,
		newEliminator: func() symbolic.Eliminator { return symbolic.NewLinearSystem() },
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithDepth bounds recursion: 0 applies the block rule to the solved System
// itself, d > 0 descends d levels of composites. Panics if d < 0.
func WithDepth(d int) Option {
	if d < 0 {
		panic("transfer: WithDepth: negative depth")
	}
	return func(o *options) { o.depth = d }
}

// WithUnlimitedDepth recurses until leaf blocks. This is the default.
func WithUnlimitedDepth() Option {
	return func(o *options) { o.depth = Unlimited }
}

// WithInputs supplies one expression per input port of the solved System
// instead of the default U_<system>_<port> symbols.
func WithInputs(exprs ...symbolic.Expr) Option {
	in := append([]symbolic.Expr{}, exprs...)
	return func(o *options) {
		o.inputs = in
		o.inputsSet = true
	}
}

// WithEliminator replaces the elimination engine. factory is called once
// per solved level. Panics on nil.
func WithEliminator(factory func() symbolic.Eliminator) Option {
	if factory == nil {
		panic("transfer: WithEliminator: nil factory")
	}
	return func(o *options) { o.newEliminator = factory }
}

// WithLogger routes traversal logs to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("transfer: WithLogger: nil logger")
	}
	return func(o *options) { o.logger = l }
}
