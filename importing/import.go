package importing

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"io"
	"sgi/index"
	ownOsm "sgi/osm"
	"sgi/query"
	"strings"
)

// ParseGridBounds parses the bounds of the grid, see query.ParseBbox. An empty string results in nil, which makes
// Import use the bounds of the data instead.
func ParseGridBounds(boundsString string) (*orb.Bound, error) {
	if strings.TrimSpace(boundsString) == "" {
		return nil, nil
	}
	bound, err := query.ParseBbox(boundsString)
	if err != nil {
		return nil, errors.Wrap(err, "Invalid grid bounds")
	}
	return &bound, nil
}

// Import reads all nodes of the given .osm or .pbf file into a new grid index. When no bound is given, the file is
// read twice: first to determine the bounding box of the data, then to fill the grid.
func Import(inputFile string, bound *orb.Bound, cellSize float64) (*index.GridIndex[float64], *ownOsm.NodeStore, error) {
	reader := ownOsm.NewReader()

	if bound == nil {
		aggregator := ownOsm.NewBoundAggregator()
		err := reader.Read(inputFile, aggregator)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "Unable to determine bounding box of %s", inputFile)
		}
		dataBound := gridBoundForData(aggregator, cellSize)
		bound = &dataBound
	}

	grid, store, err := newGridAndStore(*bound, cellSize)
	if err != nil {
		return nil, nil, err
	}

	err = reader.Read(inputFile, ownOsm.NewGridIndexHandler(grid, store))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Unable to import %s", inputFile)
	}

	return grid, store, nil
}

// ImportFrom works like Import but reads already opened data. The bound is mandatory since the data can only be read
// once.
func ImportFrom(reader io.Reader, format ownOsm.Format, bound orb.Bound, cellSize float64) (*index.GridIndex[float64], *ownOsm.NodeStore, error) {
	grid, store, err := newGridAndStore(bound, cellSize)
	if err != nil {
		return nil, nil, err
	}

	err = ownOsm.NewReader().ReadFrom(reader, format, ownOsm.NewGridIndexHandler(grid, store))
	if err != nil {
		return nil, nil, errors.Wrap(err, "Unable to import OSM data")
	}

	return grid, store, nil
}

func newGridAndStore(bound orb.Bound, cellSize float64) (*index.GridIndex[float64], *ownOsm.NodeStore, error) {
	sigolo.Debugf("Use grid bounds %v with cell size %f", bound, cellSize)
	grid, err := index.NewGridIndexForBound(bound, cellSize, cellSize)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Unable to create grid index for bounds %v", bound)
	}
	return grid, ownOsm.NewNodeStore(), nil
}

// gridBoundForData returns the bound of the data, padded when the data is just a point or a line since the grid needs
// a non-empty area.
func gridBoundForData(aggregator *ownOsm.BoundAggregator, cellSize float64) orb.Bound {
	bound := aggregator.Bound
	if aggregator.NodeCount == 0 {
		sigolo.Infof("Input data contains no nodes, use a single cell grid")
		return orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{cellSize, cellSize}}
	}
	if bound.Min.X() == bound.Max.X() || bound.Min.Y() == bound.Max.Y() {
		return bound.Pad(cellSize / 2)
	}
	return bound
}
