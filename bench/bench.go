package bench

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"math/rand"
	"sgi/index"
	"time"
)

type Config struct {
	Points   int
	Queries  int
	Seed     int64
	Extent   float64 // Points are spread over [0, Extent] on both axes
	CellSize float64
	BoxSizes []float64
}

func DefaultConfig() Config {
	return Config{
		Points:   100000,
		Queries:  1000,
		Seed:     42,
		Extent:   1000,
		CellSize: 10,
		BoxSizes: []float64{10, 50},
	}
}

type point struct {
	x, y float64
}

type box struct {
	x1, x2, y1, y2 float64
}

// Timing holds the results of one box size. The found counts are summed up over all queries.
type Timing struct {
	BoxSize      float64
	Grid         time.Duration
	GridInto     time.Duration
	GridForEach  time.Duration
	Naive        time.Duration
	GridFound    int
	NaiveFound   int
	QueriesCount int
}

func (t Timing) Speedup() float64 {
	if t.Grid == 0 {
		return 0
	}
	return float64(t.Naive) / float64(t.Grid)
}

type Report struct {
	BuildTime time.Duration
	Nx, Ny    int
	Timings   []Timing
}

// Run compares box queries on a grid index with a linear scan over all points. All variants get the same boxes, so
// the three grid variants must find the same number of candidates and never less than the linear scan.
func Run(config Config) (*Report, error) {
	if config.Points < 0 || config.Queries <= 0 {
		return nil, errors.Errorf("Invalid benchmark configuration: %d points and %d queries", config.Points, config.Queries)
	}

	random := rand.New(rand.NewSource(config.Seed))

	sigolo.Infof("Generate %d random points", config.Points)
	points := make([]point, config.Points)
	for i := range points {
		points[i] = point{random.Float64() * config.Extent, random.Float64() * config.Extent}
	}

	buildStartTime := time.Now()
	grid, err := index.NewGridIndex(0, config.Extent, config.CellSize, 0, config.Extent, config.CellSize)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to create benchmark grid")
	}
	for i, p := range points {
		grid.Insert(p.x, p.y, uint64(i))
	}

	report := &Report{
		BuildTime: time.Since(buildStartTime),
	}
	report.Nx, report.Ny = grid.Dimensions()
	sigolo.Infof("Grid built: %d x %d cells in %s", report.Nx, report.Ny, report.BuildTime)

	for _, boxSize := range config.BoxSizes {
		boxes := make([]box, config.Queries)
		for i := range boxes {
			x := random.Float64() * config.Extent
			y := random.Float64() * config.Extent
			boxes[i] = box{x, x + boxSize, y, y + boxSize}
		}

		timing, err := runBoxSize(grid, points, boxes, boxSize)
		if err != nil {
			return nil, err
		}

		sigolo.Infof("Box size %.0fx%.0f:", boxSize, boxSize)
		sigolo.Infof("  Grid index:  %s (%s/query)", timing.Grid, timing.Grid/time.Duration(len(boxes)))
		sigolo.Infof("  Grid (into): %s (%s/query)", timing.GridInto, timing.GridInto/time.Duration(len(boxes)))
		sigolo.Infof("  Grid (each): %s (%s/query)", timing.GridForEach, timing.GridForEach/time.Duration(len(boxes)))
		sigolo.Infof("  Naive scan:  %s (%s/query)", timing.Naive, timing.Naive/time.Duration(len(boxes)))
		sigolo.Infof("  Speedup: %.1fx", timing.Speedup())
		sigolo.Infof("  Avg candidates: %d, avg exact hits: %d", timing.GridFound/len(boxes), timing.NaiveFound/len(boxes))

		report.Timings = append(report.Timings, timing)
	}

	return report, nil
}

func runBoxSize(grid *index.GridIndex[float64], points []point, boxes []box, boxSize float64) (Timing, error) {
	timing := Timing{
		BoxSize:      boxSize,
		QueriesCount: len(boxes),
	}

	startTime := time.Now()
	for _, b := range boxes {
		timing.GridFound += len(grid.QueryBox(b.x1, b.x2, b.y1, b.y2, true, true))
	}
	timing.Grid = time.Since(startTime)

	intoFound := 0
	var buffer []uint64
	startTime = time.Now()
	for _, b := range boxes {
		buffer = grid.QueryBoxInto(b.x1, b.x2, b.y1, b.y2, buffer, false, true, true)
		intoFound += len(buffer)
	}
	timing.GridInto = time.Since(startTime)

	forEachFound := 0
	startTime = time.Now()
	for _, b := range boxes {
		grid.QueryBoxForEach(b.x1, b.x2, b.y1, b.y2, func(id uint64) {
			forEachFound++
		}, true, true)
	}
	timing.GridForEach = time.Since(startTime)

	startTime = time.Now()
	for _, b := range boxes {
		timing.NaiveFound += len(naiveBoxSearch(points, b))
	}
	timing.Naive = time.Since(startTime)

	if intoFound != timing.GridFound || forEachFound != timing.GridFound {
		return timing, errors.Errorf("Grid query variants disagree: %d, %d (into) and %d (for each) candidates", timing.GridFound, intoFound, forEachFound)
	}
	if timing.GridFound < timing.NaiveFound {
		return timing, errors.Errorf("Grid found %d candidates but the linear scan found %d points", timing.GridFound, timing.NaiveFound)
	}

	return timing, nil
}

func naiveBoxSearch(points []point, b box) []uint64 {
	var result []uint64
	for i, p := range points {
		if p.x >= b.x1 && p.x <= b.x2 && p.y >= b.y1 && p.y <= b.y2 {
			result = append(result, uint64(i))
		}
	}
	return result
}
