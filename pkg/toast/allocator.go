package toast

import "slices"

// Allocate returns the smallest positive integer not present in ids.
//
// It reads only its argument, so callers must pass the ids that are
// visible at the moment of allocation rather than a snapshot captured
// earlier. The input slice is not modified.
func Allocate(ids []int) int {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	candidate := 1
	for _, id := range sorted {
		switch {
		case id < candidate:
			// non-positive values and duplicates
			continue
		case id == candidate:
			candidate++
		default:
			return candidate
		}
	}
	return candidate
}
