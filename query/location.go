package query

import (
	"fmt"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"math"
	"strconv"
	"strings"
)

// ParseBbox parses "bbox(minLon,minLat,maxLon,maxLat)" or just "minLon,minLat,maxLon,maxLat". The corners may be given
// in any order.
func ParseBbox(bboxString string) (orb.Bound, error) {
	trimmed := strings.TrimSpace(bboxString)
	if strings.HasPrefix(trimmed, "bbox") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "bbox"))
		if !strings.HasPrefix(trimmed, "(") || !strings.HasSuffix(trimmed, ")") {
			return orb.Bound{}, errors.Errorf("Expected parentheses around coordinates of bbox '%s'", bboxString)
		}
		trimmed = trimmed[1 : len(trimmed)-1]
	}

	parts := strings.Split(trimmed, ",")
	if len(parts) != 4 {
		return orb.Bound{}, errors.Errorf("Expected four coordinates in bbox '%s' but found %d", bboxString, len(parts))
	}

	var coordinates [4]float64
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return orb.Bound{}, errors.Wrapf(err, "Unable to parse coordinate %d of bbox '%s'", i+1, bboxString)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return orb.Bound{}, errors.Errorf("Coordinate %d of bbox '%s' must be a finite number", i+1, bboxString)
		}
		coordinates[i] = value
	}

	bound := orb.Point{coordinates[0], coordinates[1]}.Bound()
	return bound.Extend(orb.Point{coordinates[2], coordinates[3]}), nil
}

// EdgeMode defines which edges of a box belong to it. Lower (min) and upper (max) edges are set for both axes at once.
type EdgeMode struct {
	IncludeMin bool
	IncludeMax bool
}

var (
	EdgesInclusive        = EdgeMode{IncludeMin: true, IncludeMax: true}
	EdgesExclusive        = EdgeMode{IncludeMin: false, IncludeMax: false}
	EdgesHalfOpen         = EdgeMode{IncludeMin: true, IncludeMax: false}
	EdgesReversedHalfOpen = EdgeMode{IncludeMin: false, IncludeMax: true}
)

// ParseEdgeMode parses the interval notation "[]", "()", "[)" or "(]". An empty string means "[]".
func ParseEdgeMode(edgeString string) (EdgeMode, error) {
	switch strings.TrimSpace(edgeString) {
	case "", "[]":
		return EdgesInclusive, nil
	case "()":
		return EdgesExclusive, nil
	case "[)":
		return EdgesHalfOpen, nil
	case "(]":
		return EdgesReversedHalfOpen, nil
	}
	return EdgeMode{}, errors.Errorf("Unknown edge mode '%s', expected one of '[]', '()', '[)' and '(]'", edgeString)
}

func (e EdgeMode) String() string {
	lower := "("
	if e.IncludeMin {
		lower = "["
	}
	upper := ")"
	if e.IncludeMax {
		upper = "]"
	}
	return lower + upper
}

// contains checks whether the point is within the bound, where the edges belong to the bound as defined by the mode.
func (e EdgeMode) contains(bound orb.Bound, point orb.Point) bool {
	return e.withinRange(point.X(), bound.Min.X(), bound.Max.X()) && e.withinRange(point.Y(), bound.Min.Y(), bound.Max.Y())
}

func (e EdgeMode) withinRange(value float64, lower float64, upper float64) bool {
	aboveMin := value > lower || (e.IncludeMin && value == lower)
	belowMax := value < upper || (e.IncludeMax && value == upper)
	return aboveMin && belowMax
}

func boundString(bound orb.Bound) string {
	return fmt.Sprintf("%f, %f, %f, %f", bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat())
}
