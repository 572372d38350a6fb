// Package aggregate reduces the samples that fall into one heatmap cell to a
// single value. Missing and non-finite values never contribute, and an empty
// input is reported as absent rather than as zero.
package aggregate

import "strings"

// Kind names a reduction over the values of one bucket.
type Kind string

const (
	// Mean is the arithmetic mean.
	Mean Kind = "mean"
	// Sum is the total.
	Sum Kind = "sum"
	// Count is the number of contributing values.
	Count Kind = "count"
	// Min is the smallest value.
	Min Kind = "min"
	// Max is the largest value.
	Max Kind = "max"
	// First is the value with the earliest timestamp.
	First Kind = "first"
	// Last is the value with the latest timestamp.
	Last Kind = "last"
)

// DefaultKind is used when no aggregation is configured or the name is unknown.
const DefaultKind = Mean

var allKinds = []Kind{Mean, Sum, Count, Min, Max, First, Last}

// Kinds returns every supported kind in display order.
func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)

	return out
}

// ParseKind resolves a case-insensitive kind name.
// ok is false for unknown names; the returned kind is then DefaultKind.
func ParseKind(name string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))

	for _, known := range allKinds {
		if k == known {
			return k, true
		}
	}

	return DefaultKind, false
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}
