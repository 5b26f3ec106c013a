// SPDX-License-Identifier: MIT

// Package flowgraph turns one level of a block diagram into a directed
// graph of subsystem names and analyses it.
//
//   - FromSystem: vertices are subsystems, edges follow signal wires from
//     the wire's source System to each sink System.
//   - DetectCycles: feedback loops, canonicalized by Booth's minimal
//     rotation so the output is deterministic.
//   - Reachable / Unreachable: breadth-first reachability from root
//     Systems (see Roots), used to flag blocks no signal can reach.
//
// Graph is a snapshot: later edits to the diagram are not reflected.
package flowgraph
