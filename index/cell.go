package index

type CellIndex [2]int

func (c CellIndex) X() int { return c[0] }

func (c CellIndex) Y() int { return c[1] }

func (c CellIndex) isBelowOrLeftOf(other CellIndex) bool {
	return c.X() < other.X() || c.Y() < other.Y()
}

func (c CellIndex) isAboveOrRightOf(other CellIndex) bool {
	return c.X() > other.X() || c.Y() > other.Y()
}

// CellExtent is an inclusive range of cells given by its lower-left and upper-right cell. An extent whose lower-left
// cell lies above or right of its upper-right cell is empty.
type CellExtent [2]CellIndex

func (c CellExtent) LowerLeftCell() CellIndex { return c[0] }

func (c CellExtent) UpperRightCell() CellIndex { return c[1] }

func (c CellExtent) IsEmpty() bool {
	return c.LowerLeftCell().isAboveOrRightOf(c.UpperRightCell())
}

func (c CellExtent) Contains(cell CellIndex) bool {
	if c.IsEmpty() {
		return false
	}
	return !cell.isAboveOrRightOf(c.UpperRightCell()) && !cell.isBelowOrLeftOf(c.LowerLeftCell())
}

// CellCount returns the number of cells within this extent, which is 0 for empty extents.
func (c CellExtent) CellCount() int {
	if c.IsEmpty() {
		return 0
	}
	width := c.UpperRightCell().X() - c.LowerLeftCell().X() + 1
	height := c.UpperRightCell().Y() - c.LowerLeftCell().Y() + 1
	return width * height
}

// GetCellIndices returns all cells of the extent row by row, which is the same order the grid queries use.
func (c CellExtent) GetCellIndices() []CellIndex {
	var indices []CellIndex

	for y := c.LowerLeftCell().Y(); y <= c.UpperRightCell().Y(); y++ {
		for x := c.LowerLeftCell().X(); x <= c.UpperRightCell().X(); x++ {
			indices = append(indices, CellIndex{x, y})
		}
	}

	return indices
}
