// SPDX-License-Identifier: MIT

// Package blocks is the block catalog: constructors that create Systems of
// a given diagram.Kind with their default ports and parameters.
//
// Signal-processing blocks: SISO, TransferFunction, Summation, Source, Sink.
// Electrical elements: Dipole, Resistor, Capacitor, Inductor.
//
// The catalog contributes parameter storage only; equation rules live in
// package transfer and dispatch on the Kind tag.
package blocks
