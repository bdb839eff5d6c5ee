package bench

import (
	"sgi/util"
	"testing"
)

func smallConfig() Config {
	return Config{
		Points:   2000,
		Queries:  50,
		Seed:     7,
		Extent:   100,
		CellSize: 5,
		BoxSizes: []float64{1, 10, 250},
	}
}

func TestRun(t *testing.T) {
	// Act
	report, err := Run(smallConfig())

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, 20, report.Nx)
	util.AssertEqual(t, 20, report.Ny)
	util.AssertLen(t, 3, report.Timings)

	for _, timing := range report.Timings {
		util.AssertEqual(t, 50, timing.QueriesCount)
		util.AssertTrue(t, timing.GridFound >= timing.NaiveFound)
	}

	// Boxes larger than the whole grid cover every point
	largest := report.Timings[2]
	util.AssertEqual(t, 250.0, largest.BoxSize)
	util.AssertTrue(t, largest.NaiveFound > 0)
}

func TestRun_sameSeedFindsSamePoints(t *testing.T) {
	// Act
	first, err := Run(smallConfig())
	util.AssertNil(t, err)
	second, err := Run(smallConfig())
	util.AssertNil(t, err)

	// Assert
	for i := range first.Timings {
		util.AssertEqual(t, first.Timings[i].GridFound, second.Timings[i].GridFound)
		util.AssertEqual(t, first.Timings[i].NaiveFound, second.Timings[i].NaiveFound)
	}
}

func TestRun_invalidConfig(t *testing.T) {
	config := smallConfig()
	config.Queries = 0

	// Act
	report, err := Run(config)

	// Assert
	util.AssertNil(t, report)
	util.AssertError(t, "Invalid benchmark configuration: 2000 points and 0 queries", err)
}

func TestRun_invalidGrid(t *testing.T) {
	config := smallConfig()
	config.CellSize = 0

	// Act
	report, err := Run(config)

	// Assert
	util.AssertNil(t, report)
	util.AssertNotNil(t, err)
}

func TestNaiveBoxSearch(t *testing.T) {
	// Arrange
	points := []point{{1, 1}, {2, 2}, {3, 3}, {2, 5}}

	// Act
	result := naiveBoxSearch(points, box{1, 2, 1, 3})

	// Assert
	util.AssertEqual(t, []uint64{0, 1}, result)
}

func TestTiming_speedup(t *testing.T) {
	util.AssertEqual(t, 4.0, Timing{Grid: 5, Naive: 20}.Speedup())
	util.AssertEqual(t, 0.0, Timing{Naive: 20}.Speedup())
}
