package demo

import (
	"fmt"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"sgi/index"
)

type Point struct {
	X  float32
	Y  float32
	Id int
}

// SamplePoints are inserted into the demo grid by their position in this list.
var SamplePoints = []Point{
	{10.5, 20.3, 100},
	{10.8, 20.7, 101},
	{15.2, 25.1, 102},
	{30.0, 40.0, 103},
	{45.5, 50.2, 104},
	{11.2, 21.5, 105},
	{10.1, 20.1, 106},
	{50.0, 50.0, 107},
}

type Box struct {
	X1, X2, Y1, Y2 float32
}

type QueryResult struct {
	Box     Box
	Indices []uint64
}

// Run builds a 20x20 grid over [0, 100]x[0, 100], inserts the sample points and runs a few example queries on it.
func Run() ([]QueryResult, error) {
	grid, err := index.NewGridIndex[float32](0, 100, 5, 0, 100, 5)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to create demo grid")
	}

	sigolo.Info("Sample points:")
	for i, point := range SamplePoints {
		sigolo.Infof("  [%d] id=%d at (%.1f, %.1f)", i, point.Id, point.X, point.Y)
		grid.Insert(point.X, point.Y, uint64(i))
	}

	nx, ny := grid.Dimensions()
	sigolo.Infof("Grid created: %d x %d cells", nx, ny)
	sigolo.Infof("Total cells: %d", grid.CountCells())
	sigolo.Infof("Points indexed: %d", grid.CountPoints())

	var results []QueryResult

	smallBox := Box{10, 12, 20, 22}
	results = append(results, runQuery(grid, "Query a small box", smallBox))

	largeBox := Box{10, 50, 20, 50}
	results = append(results, runQuery(grid, "Query a larger box", largeBox))

	callbackBox := Box{40, 60, 40, 60}
	logBox("Query with callback", callbackBox)
	var callbackIndices []uint64
	grid.QueryBoxForEach(callbackBox.X1, callbackBox.X2, callbackBox.Y1, callbackBox.Y2, func(id uint64) {
		sigolo.Infof("  Callback received: %s", pointString(id))
		callbackIndices = append(callbackIndices, id)
	}, true, true)
	sigolo.Infof("Total points processed: %d", len(callbackIndices))
	results = append(results, QueryResult{Box: callbackBox, Indices: callbackIndices})

	emptyBox := Box{0, 5, 0, 5}
	results = append(results, runQuery(grid, "Query empty region", emptyBox))

	return results, nil
}

func runQuery(grid *index.GridIndex[float32], title string, box Box) QueryResult {
	logBox(title, box)

	indices := grid.QueryBox(box.X1, box.X2, box.Y1, box.Y2, true, true)
	sigolo.Infof("Found %d points", len(indices))
	for _, i := range indices {
		sigolo.Infof("  %s", pointString(i))
	}

	return QueryResult{Box: box, Indices: indices}
}

func logBox(title string, box Box) {
	sigolo.Info("")
	sigolo.Infof("%s [%v, %v] x [%v, %v]", title, box.X1, box.X2, box.Y1, box.Y2)
}

func pointString(i uint64) string {
	point := SamplePoints[i]
	return fmt.Sprintf("[%d] id=%d at (%.1f, %.1f)", i, point.Id, point.X, point.Y)
}
