package index

import (
	"github.com/paulmach/orb"
)

// NewGridIndexForBound creates a float64 grid covering the given bound, e.g. a lon/lat bbox with degree-sized cells.
func NewGridIndexForBound(bound orb.Bound, cellWidth float64, cellHeight float64) (*GridIndex[float64], error) {
	return NewGridIndex(bound.Min.X(), bound.Max.X(), cellWidth, bound.Min.Y(), bound.Max.Y(), cellHeight)
}

func InsertPoint(g *GridIndex[float64], point orb.Point, id uint64) {
	g.Insert(point.X(), point.Y(), id)
}

func QueryBound(g *GridIndex[float64], bound orb.Bound, includeMin bool, includeMax bool) []uint64 {
	return g.QueryBox(bound.Min.X(), bound.Max.X(), bound.Min.Y(), bound.Max.Y(), includeMin, includeMax)
}

func QueryBoundForEach(g *GridIndex[float64], bound orb.Bound, visit func(id uint64), includeMin bool, includeMax bool) {
	g.QueryBoxForEach(bound.Min.X(), bound.Max.X(), bound.Min.Y(), bound.Max.Y(), visit, includeMin, includeMax)
}

// GridBound returns the declared bounds of the grid. These might be smaller than the area covered by the cells, see
// CellBound.
func GridBound[T Coordinate](g *GridIndex[T]) orb.Bound {
	xStart, xEnd, yStart, yEnd := g.Bounds()
	return orb.Bound{
		Min: orb.Point{float64(xStart), float64(yStart)},
		Max: orb.Point{float64(xEnd), float64(yEnd)},
	}
}

// CellBound returns the rectangle covered by the given cell. The last column and row always end at a full step, even
// when this is beyond the declared end of the grid.
func CellBound[T Coordinate](g *GridIndex[T], cell CellIndex) orb.Bound {
	xStep, yStep := g.Steps()
	minX := float64(g.xStart) + float64(cell.X())*float64(xStep)
	minY := float64(g.yStart) + float64(cell.Y())*float64(yStep)
	return orb.Bound{
		Min: orb.Point{minX, minY},
		Max: orb.Point{minX + float64(xStep), minY + float64(yStep)},
	}
}
