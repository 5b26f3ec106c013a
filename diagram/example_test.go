// SPDX-License-Identifier: MIT

package diagram_test

import (
	"fmt"

	"github.com/katalvlaran/sysdiag/diagram"
)

// ExampleConnect wires two siblings and shows the allocated wire name.
func ExampleConnect() {
	root := diagram.NewSystem("root")
	a := diagram.NewSystem("a")
	_ = a.AddPort(diagram.NewOutputPort("out", ""))
	b := diagram.NewSystem("b")
	_ = b.AddPort(diagram.NewInputPort("in", ""))
	_ = root.AddSubsystem(a)
	_ = root.AddSubsystem(b)

	w, err := diagram.Connect(a, b, "out", "in", diagram.SignalWire)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(w.Name(), w.Source().Name(), len(w.Sinks()))
	// Output: W out 1
}
