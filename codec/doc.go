// SPDX-License-Identifier: MIT

// Package codec persists diagrams as a tree of tagged maps, in JSON
// (encoding/json) or YAML (gopkg.in/yaml.v3).
//
// A System node looks like:
//
//	{
//	  "__class__": "blocks.Summation",
//	  "__sysdiagclass__": "System",
//	  "name": "compare",
//	  "params": {"ops": ["+", "-"]},
//	  "ports": [],
//	  "subsystems": [],
//	  "wires": []
//	}
//
// and a wire lists its endpoints as ["sibling", "plant", "out"] or
// ["boundary", "<owner>", "u"]. Decoding rebuilds each System through the
// block catalog, so default ports are never persisted.
//
// Round trip: Unmarshal(Marshal(s)) is Equal to s for every diagram built
// through the diagram and blocks APIs.
package codec
