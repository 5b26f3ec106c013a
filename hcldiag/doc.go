// SPDX-License-Identifier: MIT

// Package hcldiag builds diagrams from HCL description files.
//
//	system "CL control" {
//	  block "source" "src" {}
//	  block "summation" "compare" {
//	    ops = ["+", "-"]
//	  }
//	  block "transfer_function" "controller" {
//	    num = [1, 0.4]
//	    den = [0, 0.2]
//	  }
//	  system "inner" {
//	    input "u" {}
//	    output "y" {}
//	    wire "through" {
//	      ports = ["self.u", "self.y"]
//	    }
//	  }
//	  connect {
//	    from = "src.out"
//	    to   = "compare.in0"
//	  }
//	}
//
// A `block` takes a catalog keyword and a name; its attributes become
// parameters. `system` nests a composite whose ports come from `input`,
// `output` and `port` blocks. `connect` goes through diagram.Connect, so
// wires are named and reused exactly as in code; `wire` declares a wire
// explicitly, where "self.<port>" is a boundary connection. Both default
// to signal wires; `kind = "plain"` selects a plain one.
package hcldiag
