package entities

import (
	"cmp"
	"strings"
)

// Comparator orders two visitors the way slices.SortStableFunc expects:
// negative when a sorts first, zero when tied, positive otherwise.
type Comparator func(a, b *Visitor) int

// CompareVisitors is the default visitor ordering: name (case-insensitive),
// then age ascending, then membership level (case-sensitive). A nil visitor
// sorts before any non-nil one.
func CompareVisitors(a, b *Visitor) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if c := strings.Compare(strings.ToLower(a.name), strings.ToLower(b.name)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.age, b.age); c != 0 {
		return c
	}
	return strings.Compare(a.membershipLevel, b.membershipLevel)
}
