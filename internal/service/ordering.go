package service

import "fmt"

// Sibling ordering uses sparse integer positions. Creating without an
// explicit position appends after the current maximum; moves overwrite the
// target position without renumbering siblings, which can leave duplicates.
// That is tolerated: display order is always (position, created_at), so ties
// resolve deterministically. Two concurrent moves on the same parent can
// both land; the tie-break keeps the listing stable.

// resolvePosition validates the caller-supplied position or appends when
// none was given. maxPosition is -1 for an empty sibling set, so the first
// item lands at 0.
func resolvePosition(requested *int, maxPosition int) (int, error) {
	if requested == nil {
		return maxPosition + 1, nil
	}
	if *requested < 0 {
		return 0, fmt.Errorf("position must not be negative: %w", ErrInvalidInput)
	}
	return *requested, nil
}
