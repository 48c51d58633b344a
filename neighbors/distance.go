// Package neighbors implements k-nearest-neighbor classification and regression
// over labeled numeric tables.
//
// A labeled table stores features in every column but the last, and the class
// label (or regression target) in the last column.
package neighbors

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gradlearn/pkg/errors"
)

// Distance returns the Euclidean distance between a and b.
func Distance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.NewDimensionError("Distance", len(a), len(b), 1)
	}
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Distance(a, b, 2), nil
}

// neighbor is one training row ranked by its distance to a query.
type neighbor struct {
	row      int
	distance float64
}

// nearest ranks the rows of m by the distance between their first width
// columns and q, and returns the k closest. Equal distances keep row order.
func nearest(m mat.Matrix, width int, q []float64, k int) []neighbor {
	r, c := m.Dims()
	buf := make([]float64, c)
	ranked := make([]neighbor, r)
	for i := 0; i < r; i++ {
		mat.Row(buf, i, m)
		ranked[i] = neighbor{row: i, distance: floats.Distance(buf[:width], q, 2)}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].distance < ranked[b].distance
	})
	return ranked[:k]
}
