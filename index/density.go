package index

import (
	"github.com/hauke96/sigolo/v2"
	"time"
)

// Density describes how the points are spread over the cells of a grid.
type Density struct {
	CellCount     int
	NonEmptyCells int
	MaxCellPoints int
	DensestCell   CellIndex // Only meaningful when MaxCellPoints > 0
	AvgCellPoints float64   // Average over the non-empty cells
}

// CellDensity walks all cells of the grid and collects the occupancy statistics. On ties the densest cell is the
// first one in query order.
func CellDensity[T Coordinate](g *GridIndex[T]) Density {
	startTime := time.Now()

	extent := g.Extent()
	density := Density{
		CellCount: extent.CellCount(),
	}

	totalPoints := 0
	for _, cell := range extent.GetCellIndices() {
		count := g.CountPointsInCell(cell)
		if count == 0 {
			continue
		}

		density.NonEmptyCells++
		totalPoints += count
		if count > density.MaxCellPoints {
			density.MaxCellPoints = count
			density.DensestCell = cell
		}
	}

	if density.NonEmptyCells > 0 {
		density.AvgCellPoints = float64(totalPoints) / float64(density.NonEmptyCells)
	}

	sigolo.Debugf("Determined density of %d cells in %s", density.CellCount, time.Since(startTime))

	return density
}
