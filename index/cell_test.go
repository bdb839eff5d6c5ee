package index

import (
	"sgi/util"
	"testing"
)

func TestCellIndex_isBelowOrLeftOf(t *testing.T) {
	cell := CellIndex{10, 10}
	/*
		[ 9,11]   [10,11]   [11,11]

		[ 9,10]   [10,10]   [11,10]

		[ 9, 9]   [10, 9]   [11, 9]
	*/

	// First Column
	util.AssertTrue(t, cell.isBelowOrLeftOf(CellIndex{9, 11}))
	util.AssertFalse(t, cell.isBelowOrLeftOf(CellIndex{9, 10}))
	util.AssertFalse(t, cell.isBelowOrLeftOf(CellIndex{9, 9}))

	// Second column
	util.AssertTrue(t, cell.isBelowOrLeftOf(CellIndex{10, 11}))
	util.AssertFalse(t, cell.isBelowOrLeftOf(CellIndex{10, 10}))
	util.AssertFalse(t, cell.isBelowOrLeftOf(CellIndex{10, 9}))

	// Third column
	util.AssertTrue(t, cell.isBelowOrLeftOf(CellIndex{11, 11}))
	util.AssertTrue(t, cell.isBelowOrLeftOf(CellIndex{11, 10}))
	util.AssertTrue(t, cell.isBelowOrLeftOf(CellIndex{11, 9}))
}

func TestCellIndex_isAboveOrRightOf(t *testing.T) {
	cell := CellIndex{10, 10}

	util.AssertTrue(t, cell.isAboveOrRightOf(CellIndex{9, 11}))
	util.AssertTrue(t, cell.isAboveOrRightOf(CellIndex{9, 9}))
	util.AssertFalse(t, cell.isAboveOrRightOf(CellIndex{10, 11}))
	util.AssertFalse(t, cell.isAboveOrRightOf(CellIndex{10, 10}))
	util.AssertTrue(t, cell.isAboveOrRightOf(CellIndex{10, 9}))
	util.AssertFalse(t, cell.isAboveOrRightOf(CellIndex{11, 11}))
	util.AssertTrue(t, cell.isAboveOrRightOf(CellIndex{11, 9}))
}

func TestCellExtent_contains(t *testing.T) {
	extent := CellExtent{
		CellIndex{10, 10},
		CellIndex{20, 20},
	}

	// Lower-left corner
	util.AssertFalse(t, extent.Contains(CellIndex{9, 10}))
	util.AssertFalse(t, extent.Contains(CellIndex{10, 9}))
	util.AssertTrue(t, extent.Contains(CellIndex{10, 10}))
	util.AssertTrue(t, extent.Contains(CellIndex{11, 11}))

	// Upper-right corner
	util.AssertTrue(t, extent.Contains(CellIndex{20, 20}))
	util.AssertFalse(t, extent.Contains(CellIndex{21, 20}))
	util.AssertFalse(t, extent.Contains(CellIndex{20, 21}))

	// Other corners
	util.AssertTrue(t, extent.Contains(CellIndex{20, 10}))
	util.AssertTrue(t, extent.Contains(CellIndex{10, 20}))
	util.AssertFalse(t, extent.Contains(CellIndex{21, 9}))
	util.AssertFalse(t, extent.Contains(CellIndex{9, 21}))
}

func TestCellExtent_isEmpty(t *testing.T) {
	util.AssertFalse(t, CellExtent{CellIndex{0, 0}, CellIndex{0, 0}}.IsEmpty())
	util.AssertFalse(t, CellExtent{CellIndex{0, 0}, CellIndex{3, 2}}.IsEmpty())
	util.AssertTrue(t, CellExtent{CellIndex{1, 0}, CellIndex{0, 0}}.IsEmpty())
	util.AssertTrue(t, CellExtent{CellIndex{0, 1}, CellIndex{0, 0}}.IsEmpty())
	util.AssertTrue(t, CellExtent{CellIndex{6, 6}, CellIndex{5, 5}}.IsEmpty())

	empty := CellExtent{CellIndex{6, 5}, CellIndex{5, 5}}
	util.AssertFalse(t, empty.Contains(CellIndex{5, 5}))
	util.AssertFalse(t, empty.Contains(CellIndex{6, 5}))
	util.AssertEqual(t, 0, empty.CellCount())
	util.AssertLen(t, 0, empty.GetCellIndices())
}

func TestCellExtent_getCellIndices(t *testing.T) {
	// Arrange
	extent := CellExtent{CellIndex{1, 5}, CellIndex{3, 6}}

	// Act
	cells := extent.GetCellIndices()

	// Assert
	util.AssertEqual(t, 6, extent.CellCount())
	util.AssertEqual(t, []CellIndex{
		{1, 5}, {2, 5}, {3, 5},
		{1, 6}, {2, 6}, {3, 6},
	}, cells)
}
