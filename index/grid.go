package index

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"math"
)

var ErrInvalidParameter = errors.New("Invalid grid parameter")

// maxCellCount is the largest number of cells a grid may have. Larger grids are rejected instead of wrapping around.
const maxCellCount = math.MaxInt32

type Coordinate interface {
	~float32 | ~float64
}

// GridIndex is a uniform grid over a 2D plane. Each cell holds the IDs of the points that were inserted into it, the
// coordinates themselves are not stored. Queries therefore return candidates at cell granularity, which may contain
// points outside the queried box but within the same cell. Callers needing exact results have to filter them again.
//
// Points outside the grid bounds are clamped into the nearest border cell. When the span of an axis is not a multiple
// of its step, the last column (or row) ends after the declared end; like every border cell it is unbounded to the
// outside anyway because of the clamping.
//
// A GridIndex has no internal locking. Concurrent queries are fine as long as nobody inserts or clears at the same time.
type GridIndex[T Coordinate] struct {
	xStart, xEnd, xStep T
	yStart, yEnd, yStep T
	nx, ny              int
	cells               [][]uint64 // Flat grid: cell (i, j) is at position j*nx+i
}

func NewGridIndex[T Coordinate](xStart T, xEnd T, xStep T, yStart T, yEnd T, yStep T) (*GridIndex[T], error) {
	// The negated comparisons also catch NaN values.
	if !(xStep > 0) || !(yStep > 0) {
		return nil, errors.Wrapf(ErrInvalidParameter, "Step values must be positive but were x=%v and y=%v", xStep, yStep)
	}
	if !(xStart < xEnd) || !(yStart < yEnd) {
		return nil, errors.Wrapf(ErrInvalidParameter, "Start must be less than end but x-range was [%v, %v] and y-range was [%v, %v]", xStart, xEnd, yStart, yEnd)
	}

	nx, err := cellCountForSpan(xStart, xEnd, xStep)
	if err != nil {
		return nil, errors.Wrap(err, "Invalid x-axis")
	}
	ny, err := cellCountForSpan(yStart, yEnd, yStep)
	if err != nil {
		return nil, errors.Wrap(err, "Invalid y-axis")
	}
	if int64(nx)*int64(ny) > maxCellCount {
		return nil, errors.Wrapf(ErrInvalidParameter, "Grid of %dx%d cells exceeds the maximum of %d cells", nx, ny, maxCellCount)
	}

	sigolo.Debugf("Create grid index with %dx%d cells for x=[%v, %v] (step %v) and y=[%v, %v] (step %v)", nx, ny, xStart, xEnd, xStep, yStart, yEnd, yStep)

	return &GridIndex[T]{
		xStart: xStart,
		xEnd:   xEnd,
		xStep:  xStep,
		yStart: yStart,
		yEnd:   yEnd,
		yStep:  yStep,
		nx:     nx,
		ny:     ny,
		cells:  make([][]uint64, nx*ny),
	}, nil
}

// cellCountForSpan returns ceil((end-start)/step). Start < end and step > 0 must already be checked.
func cellCountForSpan[T Coordinate](start T, end T, step T) (int, error) {
	count := math.Ceil(float64((end - start) / step))
	if math.IsNaN(count) || math.IsInf(count, 0) || count > maxCellCount {
		return 0, errors.Wrapf(ErrInvalidParameter, "Span [%v, %v] with step %v results in too many cells", start, end, step)
	}
	if count < 1 {
		// The quotient underflowed to zero for a tiny span, which still covers one cell.
		count = 1
	}
	return int(count), nil
}

// Insert adds the ID to the cell containing the given coordinate. Coordinates outside the grid are clamped into the
// border cells. Inserting the same ID twice stores it twice.
func (g *GridIndex[T]) Insert(x T, y T, id uint64) {
	cellId := g.getCellId(g.CellIndexFor(x, y))
	g.cells[cellId] = append(g.cells[cellId], id)
}

// CellIndexFor returns the (clamped) cell the given coordinate belongs to.
func (g *GridIndex[T]) CellIndexFor(x T, y T) CellIndex {
	return CellIndex{
		clampCell(rawCell(x, g.xStart, g.xStep), g.nx),
		clampCell(rawCell(y, g.yStart, g.yStep), g.ny),
	}
}

// QueryBox returns the IDs of all cells intersecting the given box. The flags determine whether the lower (includeMin)
// and upper (includeMax) edges of the box belong to it, which only matters when an edge lies exactly on a cell border.
// The result is never nil.
func (g *GridIndex[T]) QueryBox(x1 T, x2 T, y1 T, y2 T, includeMin bool, includeMax bool) []uint64 {
	return g.QueryBoxInto(x1, x2, y1, y2, []uint64{}, false, includeMin, includeMax)
}

// QueryBoxInto works like QueryBox but writes into the given slice to reuse its memory. The slice is truncated first
// unless appendResults is set. Like the builtin append, the returned slice must be used afterwards.
func (g *GridIndex[T]) QueryBoxInto(x1 T, x2 T, y1 T, y2 T, result []uint64, appendResults bool, includeMin bool, includeMax bool) []uint64 {
	if !appendResults {
		result = result[:0]
	}

	g.forEachCell(g.CellRange(x1, x2, y1, y2, includeMin, includeMax), func(cell []uint64) {
		result = append(result, cell...)
	})

	return result
}

// QueryBoxForEach calls visit for every ID QueryBox would return, in the same order, without collecting them.
func (g *GridIndex[T]) QueryBoxForEach(x1 T, x2 T, y1 T, y2 T, visit func(id uint64), includeMin bool, includeMax bool) {
	g.forEachCell(g.CellRange(x1, x2, y1, y2, includeMin, includeMax), func(cell []uint64) {
		for _, id := range cell {
			visit(id)
		}
	})
}

// CellRange determines the cells intersecting the given box. The corners may be passed in any order. When both edges
// of an axis are excluded and lie on the same cell border, the resulting extent is empty.
func (g *GridIndex[T]) CellRange(x1 T, x2 T, y1 T, y2 T, includeMin bool, includeMax bool) CellExtent {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}

	minX := rawCell(x1, g.xStart, g.xStep)
	maxX := rawCell(x2, g.xStart, g.xStep)
	minY := rawCell(y1, g.yStart, g.yStep)
	maxY := rawCell(y2, g.yStart, g.yStep)

	// An excluded edge exactly on a cell border must not select the cell on the other side of that border.
	if !includeMin {
		if isOnCellBorder(x1, g.xStart, g.xStep) {
			minX++
		}
		if isOnCellBorder(y1, g.yStart, g.yStep) {
			minY++
		}
	}
	if !includeMax {
		if isOnCellBorder(x2, g.xStart, g.xStep) {
			maxX--
		}
		if isOnCellBorder(y2, g.yStart, g.yStep) {
			maxY--
		}
	}

	extent := CellExtent{
		CellIndex{clampCell(minX, g.nx), clampCell(minY, g.ny)},
		CellIndex{clampCell(maxX, g.nx), clampCell(maxY, g.ny)},
	}

	if sigolo.ShouldLogTrace() {
		sigolo.Tracef("Box x=[%v, %v], y=[%v, %v] (includeMin=%t, includeMax=%t) covers cells %v to %v", x1, x2, y1, y2, includeMin, includeMax, extent.LowerLeftCell(), extent.UpperRightCell())
	}

	return extent
}

// forEachCell calls f for all cells of the extent, row by row. Empty extents are skipped entirely.
func (g *GridIndex[T]) forEachCell(extent CellExtent, f func(cell []uint64)) {
	if extent.IsEmpty() {
		return
	}

	for j := extent.LowerLeftCell().Y(); j <= extent.UpperRightCell().Y(); j++ {
		for i := extent.LowerLeftCell().X(); i <= extent.UpperRightCell().X(); i++ {
			f(g.cells[g.getCellId(CellIndex{i, j})])
		}
	}
}

// Clear removes all IDs but keeps the grid layout. The memory of the cells is kept for further insertions.
func (g *GridIndex[T]) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *GridIndex[T]) CountCells() int {
	return len(g.cells)
}

// CountPoints returns the number of stored IDs. This iterates over all cells.
func (g *GridIndex[T]) CountPoints() int {
	count := 0
	for _, cell := range g.cells {
		count += len(cell)
	}
	return count
}

// CountPointsInCell returns the number of IDs in the given cell or 0 if the cell is not part of the grid.
func (g *GridIndex[T]) CountPointsInCell(cell CellIndex) int {
	if !g.Extent().Contains(cell) {
		return 0
	}
	return len(g.cells[g.getCellId(cell)])
}

// Extent returns the range of all cells of the grid.
func (g *GridIndex[T]) Extent() CellExtent {
	return CellExtent{CellIndex{0, 0}, CellIndex{g.nx - 1, g.ny - 1}}
}

func (g *GridIndex[T]) Dimensions() (int, int) {
	return g.nx, g.ny
}

func (g *GridIndex[T]) Bounds() (T, T, T, T) {
	return g.xStart, g.xEnd, g.yStart, g.yEnd
}

func (g *GridIndex[T]) Steps() (T, T) {
	return g.xStep, g.yStep
}

func (g *GridIndex[T]) getCellId(cell CellIndex) int {
	return cell.Y()*g.nx + cell.X()
}

// rawCell returns the unclamped cell position of the value as float to not overflow for values far outside the grid.
func rawCell[T Coordinate](value T, start T, step T) float64 {
	return math.Floor(float64((value - start) / step))
}

func isOnCellBorder[T Coordinate](value T, start T, step T) bool {
	normalized := float64((value - start) / step)
	return normalized == math.Floor(normalized)
}

// clampCell turns a raw cell position into a valid cell index within [0, n-1]. NaN ends up in the first cell.
func clampCell(raw float64, n int) int {
	if math.IsNaN(raw) || raw < 0 {
		return 0
	}
	if raw > float64(n-1) {
		return n - 1
	}
	return int(raw)
}
