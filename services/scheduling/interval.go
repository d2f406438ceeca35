package scheduling

import "time"

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect: s1 < e2 AND e1 > s2. Touching intervals (one ends exactly when
// the other starts) do not overlap; any non-zero intersection does.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}
