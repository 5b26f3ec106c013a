// SPDX-License-Identifier: MIT

package diagram

import (
	"fmt"
	"strconv"
	"strings"
)

// Category selects the sibling namespace used by System.AllocateName.
type Category int

const (
	CategorySubsystem Category = iota
	CategoryWire
)

func (c Category) String() string {
	switch c {
	case CategorySubsystem:
		return "subsystem"
	case CategoryWire:
		return "wire"
	default:
		return "category(" + strconv.Itoa(int(c)) + ")"
	}
}

// AllocateName returns a name that does not collide with existing.
//
// base is returned unchanged when it is free; otherwise the first of
// base+"0", base+"1", ... that is free. A blank base yields ErrInvalidName.
//
// Complexity: O(n + k) where n = len(existing) and k the number of candidates tried.
func AllocateName(existing []string, base string) (string, error) {
	if strings.TrimSpace(base) == "" {
		return "", fmt.Errorf("AllocateName(%q): %w", base, ErrInvalidName)
	}

	taken := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		taken[name] = struct{}{}
	}
	if _, ok := taken[base]; !ok {
		return base, nil
	}

	// At most len(existing) candidates can collide, so this loop terminates.
	for i := 0; ; i++ {
		candidate := base + strconv.Itoa(i)
		if _, ok := taken[candidate]; !ok {
			return candidate, nil
		}
	}
}
