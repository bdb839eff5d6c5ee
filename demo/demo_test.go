package demo

import (
	"sgi/util"
	"testing"
)

func TestRun(t *testing.T) {
	// Act
	results, err := Run()

	// Assert
	util.AssertNil(t, err)
	util.AssertLen(t, 4, results)

	util.AssertEqual(t, Box{10, 12, 20, 22}, results[0].Box)
	util.AssertEqual(t, []uint64{0, 1, 5, 6}, results[0].Indices)

	// Row by row: (2,4), (3,5), (6,8), (9,10) and (10,10)
	util.AssertEqual(t, []uint64{0, 1, 5, 6, 2, 3, 4, 7}, results[1].Indices)

	util.AssertEqual(t, []uint64{4, 7}, results[2].Indices)

	util.AssertEqual(t, []uint64{}, results[3].Indices)
}
