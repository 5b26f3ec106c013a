// SPDX-License-Identifier: MIT

package blocks

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/katalvlaran/sysdiag/diagram"
)

// NewSISO returns a generic single-input single-output block with ports
// "in" and "out".
func NewSISO(name string) *diagram.System {
	s := diagram.NewSystemOfKind(diagram.KindSISO, name)
	addSISOPorts(s)
	return s
}

func addSISOPorts(s *diagram.System) {
	mustAdd(s, diagram.NewInputPort(PortIn, ""))
	mustAdd(s, diagram.NewOutputPort(PortOut, ""))
}

// NewTransferFunction returns a SISO block with Laplace transfer function
// num(s)/den(s). Coefficients are in ascending powers of s: num[i] is the
// coefficient of s^i.
func NewTransferFunction(name string, num, den []float64) *diagram.System {
	s := diagram.NewSystemOfKind(diagram.KindTransferFunction, name)
	addSISOPorts(s)
	mustParam(s, ParamNum, num)
	mustParam(s, ParamDen, den)
	return s
}

// NewSummation returns a block computing a signed sum of its inputs. One
// input port "in<i>" is created per operator; each operator is "+" or "-".
func NewSummation(name string, ops []string) (*diagram.System, error) {
	if err := checkOperators(ops); err != nil {
		return nil, fmt.Errorf("NewSummation(%q): %w", name, err)
	}
	s := diagram.NewSystemOfKind(diagram.KindSummation, name)
	for i := range ops {
		mustAdd(s, diagram.NewInputPort(summationInput(i), ""))
	}
	mustAdd(s, diagram.NewOutputPort(PortOut, ""))
	mustParam(s, ParamOps, ops)
	return s, nil
}

// reshapeSummation lays the default ports of s out as in0..in<n-1>, out.
// A wired default port fails with diagram.ErrPortInUse and an extra port
// holding one of those names with diagram.ErrNameConflict; s is left
// untouched on error.
func reshapeSummation(s *diagram.System, n int) error {
	want := make([]string, 0, n+1)
	for i := 0; i < n; i++ {
		want = append(want, summationInput(i))
	}
	want = append(want, PortOut)

	var have []*diagram.Port
	var haveNames []string
	for _, p := range s.Ports() {
		if s.IsDefaultPort(p) {
			have = append(have, p)
			haveNames = append(haveNames, p.Name())
		}
	}
	if slices.Equal(haveNames, want) {
		return nil
	}

	for _, p := range have {
		if p.InUse() {
			return fmt.Errorf("summation port %q: %w", p.Name(), diagram.ErrPortInUse)
		}
	}
	for _, name := range want {
		if p := s.Port(name); p != nil && !s.IsDefaultPort(p) {
			return fmt.Errorf("summation port %q: %w", name, diagram.ErrNameConflict)
		}
	}

	for _, p := range have {
		if err := s.RemovePort(p); err != nil {
			return err
		}
	}
	for i := 0; i < n; i++ {
		if err := s.AddDefaultPort(diagram.NewInputPort(summationInput(i), "")); err != nil {
			return err
		}
	}
	return s.AddDefaultPort(diagram.NewOutputPort(PortOut, ""))
}

func summationInput(i int) string {
	return PortIn + strconv.Itoa(i)
}

func checkOperators(ops []string) error {
	for i, op := range ops {
		if op != "+" && op != "-" {
			return fmt.Errorf("operator %d %q: %w", i, op, ErrInvalidOperator)
		}
	}
	return nil
}

// NewSource returns a signal source with a single output port "out".
func NewSource(name string) *diagram.System {
	s := diagram.NewSystemOfKind(diagram.KindSource, name)
	mustAdd(s, diagram.NewOutputPort(PortOut, ""))
	return s
}

// NewSink returns a signal sink with a single input port "in".
func NewSink(name string) *diagram.System {
	s := diagram.NewSystemOfKind(diagram.KindSink, name)
	mustAdd(s, diagram.NewInputPort(PortIn, ""))
	return s
}

// Numerator returns the "num" coefficients of a transfer function block.
func Numerator(s *diagram.System) ([]float64, error) {
	return coefficients(s, ParamNum)
}

// Denominator returns the "den" coefficients of a transfer function block.
// An all-zero denominator is rejected.
func Denominator(s *diagram.System) ([]float64, error) {
	den, err := coefficients(s, ParamDen)
	if err != nil {
		return nil, err
	}
	for _, c := range den {
		if c != 0 {
			return den, nil
		}
	}
	return nil, fmt.Errorf("Denominator(%q): zero polynomial: %w", s.Name(), ErrBadParam)
}

func coefficients(s *diagram.System, key string) ([]float64, error) {
	if s.Kind() != diagram.KindTransferFunction {
		return nil, fmt.Errorf("%s(%q): %s: %w", key, s.Name(), s.Kind(), ErrWrongKind)
	}
	v, ok := s.Param(key)
	if !ok {
		return nil, fmt.Errorf("%s(%q): missing: %w", key, s.Name(), ErrBadParam)
	}
	c, ok := v.([]float64)
	if !ok || len(c) == 0 {
		return nil, fmt.Errorf("%s(%q): %T: %w", key, s.Name(), v, ErrBadParam)
	}
	return append([]float64(nil), c...), nil
}

// Operators returns the "ops" list of a summation block.
func Operators(s *diagram.System) ([]string, error) {
	if s.Kind() != diagram.KindSummation {
		return nil, fmt.Errorf("Operators(%q): %s: %w", s.Name(), s.Kind(), ErrWrongKind)
	}
	v, ok := s.Param(ParamOps)
	if !ok {
		return nil, fmt.Errorf("Operators(%q): missing: %w", s.Name(), ErrBadParam)
	}
	var ops []string
	switch x := v.(type) {
	case []string:
		ops = append(ops, x...)
	case []float64:
		if len(x) != 0 {
			return nil, fmt.Errorf("Operators(%q): %T: %w", s.Name(), v, ErrBadParam)
		}
	default:
		return nil, fmt.Errorf("Operators(%q): %T: %w", s.Name(), v, ErrBadParam)
	}
	if err := checkOperators(ops); err != nil {
		return nil, fmt.Errorf("Operators(%q): %w", s.Name(), err)
	}
	return ops, nil
}

// ConnectSignal connects src to dst with a signal wire. Empty port names
// default to "out" on the source and "in" on the destination.
func ConnectSignal(src, dst *diagram.System, srcPort, dstPort string) (*diagram.Wire, error) {
	if srcPort == "" {
		srcPort = PortOut
	}
	if dstPort == "" {
		dstPort = PortIn
	}
	return diagram.Connect(src, dst, srcPort, dstPort, diagram.SignalWire)
}
