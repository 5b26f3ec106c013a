// SPDX-License-Identifier: MIT

// Package sysdiag models hierarchical block diagrams: systems with typed
// ports, wired together inside parent systems, persisted as name-addressed
// trees and analysed into symbolic transfer functions.
//
// What is in the box?
//
//	diagram/   — System, Port, Wire/SignalWire, name allocation, Connect
//	blocks/    — the block catalog: SISO, transfer function, summation,
//	             source, sink and electrical dipoles
//	codec/     — JSON and YAML persistence with round-trip equality
//	symbolic/  — exact rational functions and linear elimination
//	transfer/  — signal-flow solver producing transfer functions
//	flowgraph/ — signal-flow graph, feedback loops, reachability
//	matrix/    — subsystem × wire incidence matrix
//	hcldiag/   — diagrams described in HCL files
//
// Quick example (a PI loop around an integrator):
//
//	root := diagram.NewSystem("CL control")
//	cmp, _ := blocks.NewSummation("compare", []string{"+", "-"})
//	ctrl := blocks.NewTransferFunction("controller", []float64{1, 0.4}, []float64{0, 0.2})
//	plant := blocks.NewTransferFunction("plant", []float64{1}, []float64{0, 1})
//	...
//	blocks.ConnectSignal(plant, cmp, "", "in1")
//	res, _ := transfer.Solve(root)
//
// The data model is single-writer; concurrent read-only analysis of a
// diagram that is no longer being edited is safe.
package sysdiag
