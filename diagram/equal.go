// SPDX-License-Identifier: MIT

package diagram

// Equal reports structural equality: same kind, name and parameters, ports
// pairwise similar, wires pairwise similar (including their connection
// triplets) and subsystems pairwise equal, every list compared in order.
// The parent link is not compared.
//
// Equality is order-sensitive: two isomorphic diagrams whose ports or wires
// were added in a different order are not equal.
func (s *System) Equal(other *System) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.kind != other.kind || s.name != other.name {
		return false
	}
	if !s.params.Equal(other.params) {
		return false
	}

	if len(s.ports) != len(other.ports) {
		return false
	}
	for i := range s.ports {
		if !s.ports[i].Similar(other.ports[i]) {
			return false
		}
	}

	if len(s.wires) != len(other.wires) {
		return false
	}
	for i := range s.wires {
		if !s.wires[i].Similar(other.wires[i]) {
			return false
		}
	}

	if len(s.subsystems) != len(other.subsystems) {
		return false
	}
	for i := range s.subsystems {
		if !s.subsystems[i].Equal(other.subsystems[i]) {
			return false
		}
	}

	return true
}
