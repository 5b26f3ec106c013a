// SPDX-License-Identifier: MIT
// Package: sysdiag/blocks
//
// catalog.go — name-only constructors and parameter conformance for every
// diagram.Kind.
//
// The codec rebuilds a System through New(kind, name), which regenerates the
// block's default ports, then assigns the stored parameters and calls
// Conform so that parameter-driven ports (summation inputs) match them.

package blocks

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/sysdiag/diagram"
)

var (
	// ErrInvalidOperator indicates a summation operator other than "+" or "-".
	ErrInvalidOperator = errors.New("blocks: invalid summation operator")

	// ErrBadParam indicates a missing or mistyped block parameter.
	ErrBadParam = errors.New("blocks: bad parameter")

	// ErrWrongKind indicates a parameter accessor used on another block kind.
	ErrWrongKind = errors.New("blocks: wrong block kind")
)

// Parameter keys.
const (
	ParamNum        = "num"
	ParamDen        = "den"
	ParamOps        = "ops"
	ParamResistance = "R"
	ParamCapacity   = "C"
	ParamInductance = "L"
)

// Default port names.
const (
	PortIn  = "in"
	PortOut = "out"
	PortP   = "p"
	PortN   = "n"
)

// New builds a System of kind with its default ports and default
// parameters. This is the name-only constructor used by deserialization.
func New(kind diagram.Kind, name string) (*diagram.System, error) {
	switch kind {
	case diagram.KindSystem:
		return diagram.NewSystem(name), nil
	case diagram.KindSISO:
		return NewSISO(name), nil
	case diagram.KindTransferFunction:
		return NewTransferFunction(name, []float64{1}, []float64{1}), nil
	case diagram.KindSummation:
		return NewSummation(name, []string{"+", "+"})
	case diagram.KindSource:
		return NewSource(name), nil
	case diagram.KindSink:
		return NewSink(name), nil
	case diagram.KindDipole:
		return NewDipole(name), nil
	case diagram.KindResistor:
		return NewResistor(name, 1e3), nil
	case diagram.KindCapacitor:
		return NewCapacitor(name, 1e-6), nil
	case diagram.KindInductor:
		return NewInductor(name, 1e-3), nil
	}
	return nil, fmt.Errorf("New(%s, %q): %w", kind, name, diagram.ErrUnknownBlockKind)
}

// Conform validates the parameters of s against its kind and rebuilds the
// default ports its parameters drive: a summation ends up with exactly the
// ports NewSummation would give it for the same operators.
func Conform(s *diagram.System) error {
	switch s.Kind() {
	case diagram.KindTransferFunction:
		if _, err := Numerator(s); err != nil {
			return fmt.Errorf("Conform(%q): %w", s.Name(), err)
		}
		if _, err := Denominator(s); err != nil {
			return fmt.Errorf("Conform(%q): %w", s.Name(), err)
		}
	case diagram.KindSummation:
		ops, err := Operators(s)
		if err != nil {
			return fmt.Errorf("Conform(%q): %w", s.Name(), err)
		}
		if err = reshapeSummation(s, len(ops)); err != nil {
			return fmt.Errorf("Conform(%q): %w", s.Name(), err)
		}
	}
	return nil
}

// mustAdd is used by constructors on freshly built Systems where a name
// conflict cannot happen.
func mustAdd(s *diagram.System, p *diagram.Port) {
	if err := s.AddDefaultPort(p); err != nil {
		panic(fmt.Sprintf("blocks: default port %q on %q: %v", p.Name(), s.Name(), err))
	}
}

func mustParam(s *diagram.System, key string, v any) {
	if err := s.SetParam(key, v); err != nil {
		panic(fmt.Sprintf("blocks: default param %q on %q: %v", key, s.Name(), err))
	}
}
