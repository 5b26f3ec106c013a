// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"github.com/katalvlaran/sysdiag/diagram"
)

// sourceMark is placed at the row of a wire's signal source.
const sourceMark = -1.0

// sinkMark is placed at the row of every other directional endpoint.
const sinkMark = +1.0

// plainMark is placed for a port with no direction.
const plainMark = +1.0

// Incidence is the subsystem-by-wire view of one System.
//
// Rows are the subsystems in list order, followed by one boundary row for
// the System's own ports when any of its wires reaches them. Columns are
// the System's wires in list order. A subsystem with several ports on the
// same wire accumulates their marks.
type Incidence struct {
	Mat      *Dense         // rows × wires
	Systems  []string       // row labels; the boundary row carries the System's name
	Wires    []string       // column labels
	boundary int            // boundary row index, -1 if absent
	rowIdx   map[string]int // child name → row
	colIdx   map[string]int // wire name → column
}

// NewIncidence builds the incidence matrix of sys.
// Stage 1 (Validate): sys must be non-nil.
// Stage 2 (Prepare): label rows and columns, adding the boundary row on demand.
// Stage 3 (Execute): mark each connected port.
// Returns ErrNilSystem, or ErrInvalidDimensions when sys has no rows or no wires.
// Complexity: O(S + W + P) for S subsystems, W wires and P connections.
func NewIncidence(sys *diagram.System) (*Incidence, error) {
	if sys == nil {
		return nil, ErrNilSystem
	}

	// Stage 2: labels
	children := sys.Subsystems()
	wires := sys.Wires()
	inc := &Incidence{
		Systems:  make([]string, 0, len(children)+1),
		Wires:    make([]string, 0, len(wires)),
		boundary: -1,
		rowIdx:   make(map[string]int, len(children)),
		colIdx:   make(map[string]int, len(wires)),
	}
	for i, c := range children {
		inc.Systems = append(inc.Systems, c.Name())
		inc.rowIdx[c.Name()] = i
	}
	for j, w := range wires {
		inc.Wires = append(inc.Wires, w.Name())
		inc.colIdx[w.Name()] = j
		for _, p := range w.Ports() {
			if p.Owner() == sys && inc.boundary < 0 {
				inc.boundary = len(inc.Systems)
				inc.Systems = append(inc.Systems, sys.Name())
			}
		}
	}

	mat, err := NewDense(len(inc.Systems), len(inc.Wires))
	if err != nil {
		return nil, fmt.Errorf("NewIncidence(%q): %w", sys.Name(), err)
	}
	inc.Mat = mat

	// Stage 3: marks
	for j, w := range wires {
		for _, p := range w.Ports() {
			row := inc.boundary
			if p.Owner() != sys {
				row = inc.rowIdx[p.Owner().Name()]
			}
			mat.add(row, j, mark(w, p))
		}
	}

	return inc, nil
}

func mark(w *diagram.Wire, p *diagram.Port) float64 {
	if p.Direction() == diagram.DirNone {
		return plainMark
	}
	level, _ := w.LevelOf(p)
	if diagram.IsSource(p, level) {
		return sourceMark
	}
	return sinkMark
}

// SystemIncidence returns the row of the named subsystem. The System's own
// name addresses the boundary row unless a subsystem shares it.
func (inc *Incidence) SystemIncidence(name string) ([]float64, error) {
	row, ok := inc.rowIdx[name]
	if !ok {
		if inc.boundary < 0 || inc.Systems[inc.boundary] != name {
			return nil, fmt.Errorf("SystemIncidence(%q): %w", name, ErrUnknownSystem)
		}
		row = inc.boundary
	}

	return inc.Mat.Row(row)
}

// BoundaryIncidence returns the boundary row, if there is one.
func (inc *Incidence) BoundaryIncidence() ([]float64, bool) {
	if inc.boundary < 0 {
		return nil, false
	}
	row, _ := inc.Mat.Row(inc.boundary)

	return row, true
}

// WireIncidence returns the column of the named wire.
func (inc *Incidence) WireIncidence(name string) ([]float64, error) {
	col, ok := inc.colIdx[name]
	if !ok {
		return nil, fmt.Errorf("WireIncidence(%q): %w", name, ErrUnknownWire)
	}

	return inc.Mat.Col(col)
}

// String prints the matrix with its row labels.
func (inc *Incidence) String() string {
	return fmt.Sprintf("%v\n%v\n%s", inc.Wires, inc.Systems, inc.Mat)
}
