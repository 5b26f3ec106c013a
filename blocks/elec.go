// SPDX-License-Identifier: MIT

package blocks

import "github.com/katalvlaran/sysdiag/diagram"

// ElecType is the port and wire type of electrical terminals.
const ElecType = "elec"

// NewDipole returns a two-terminal electrical element with non-directional
// ports "p" and "n" of type "elec".
func NewDipole(name string) *diagram.System {
	return newDipole(diagram.KindDipole, name)
}

// NewResistor returns a dipole with resistance r (ohm) stored under "R".
func NewResistor(name string, r float64) *diagram.System {
	s := newDipole(diagram.KindResistor, name)
	mustParam(s, ParamResistance, r)
	return s
}

// NewCapacitor returns a dipole with capacitance c (farad) stored under "C".
func NewCapacitor(name string, c float64) *diagram.System {
	s := newDipole(diagram.KindCapacitor, name)
	mustParam(s, ParamCapacity, c)
	return s
}

// NewInductor returns a dipole with inductance l (henry) stored under "L".
func NewInductor(name string, l float64) *diagram.System {
	s := newDipole(diagram.KindInductor, name)
	mustParam(s, ParamInductance, l)
	return s
}

func newDipole(kind diagram.Kind, name string) *diagram.System {
	s := diagram.NewSystemOfKind(kind, name)
	mustAdd(s, diagram.NewPort(PortP, ElecType))
	mustAdd(s, diagram.NewPort(PortN, ElecType))
	return s
}

// ConnectElec connects two terminals with a plain wire typed "elec".
func ConnectElec(a, b *diagram.System, aPort, bPort string) (*diagram.Wire, error) {
	return diagram.Connect(a, b, aPort, bPort, diagram.PlainWire)
}
