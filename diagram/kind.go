// SPDX-License-Identifier: MIT

package diagram

import "fmt"

// Kind tags the concrete block kind of a System. The set is closed: code
// that needs per-kind behavior switches on it instead of relying on a
// type hierarchy.
type Kind int

const (
	KindSystem           Kind = iota // generic system, leaf or composite
	KindSISO                         // single input, single output block
	KindTransferFunction             // Laplace transfer function num(s)/den(s)
	KindSummation                    // signed sum of its inputs
	KindSource                       // signal source, one output
	KindSink                         // signal sink, one input
	KindDipole                       // generic electrical two-terminal element
	KindResistor
	KindCapacitor
	KindInductor
)

type kindInfo struct {
	typeName string // fully-qualified name used in serialized trees
	keyword  string // short name used in description files
}

var kindTable = map[Kind]kindInfo{
	KindSystem:           {"sysdiag.System", "system"},
	KindSISO:             {"blocks.SISOSystem", "siso"},
	KindTransferFunction: {"blocks.TransferFunction", "transfer_function"},
	KindSummation:        {"blocks.Summation", "summation"},
	KindSource:           {"blocks.Source", "source"},
	KindSink:             {"blocks.Sink", "sink"},
	KindDipole:           {"elec.Dipole", "dipole"},
	KindResistor:         {"elec.Resistor", "resistor"},
	KindCapacitor:        {"elec.Capacitor", "capacitor"},
	KindInductor:         {"elec.Inductor", "inductor"},
}

// Kinds returns every catalog kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindSystem, KindSISO, KindTransferFunction, KindSummation, KindSource,
		KindSink, KindDipole, KindResistor, KindCapacitor, KindInductor,
	}
}

// Valid reports whether k belongs to the catalog.
func (k Kind) Valid() bool {
	_, ok := kindTable[k]
	return ok
}

// TypeName returns the fully-qualified concrete type name, or "" for an
// unknown kind.
func (k Kind) TypeName() string {
	return kindTable[k].typeName
}

// Keyword returns the short lowercase name of the kind.
func (k Kind) Keyword() string {
	return kindTable[k].keyword
}

func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.keyword
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseTypeName maps a fully-qualified type name back to its Kind.
func ParseTypeName(name string) (Kind, error) {
	for k, info := range kindTable {
		if info.typeName == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("ParseTypeName(%q): %w", name, ErrUnknownBlockKind)
}

// ParseKeyword maps a short keyword ("summation", "sink", ...) to its Kind.
func ParseKeyword(keyword string) (Kind, error) {
	for k, info := range kindTable {
		if info.keyword == keyword {
			return k, nil
		}
	}
	return 0, fmt.Errorf("ParseKeyword(%q): %w", keyword, ErrUnknownBlockKind)
}
