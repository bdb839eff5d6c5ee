package query

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"sgi/index"
	ownOsm "sgi/osm"
	"sgi/util"
	"testing"
)

func TestParseBbox(t *testing.T) {
	expected := orb.Bound{Min: orb.Point{9, 53}, Max: orb.Point{10, 54}}

	for _, input := range []string{
		"bbox(9,53,10,54)",
		"bbox( 9, 53, 10, 54 )",
		"  bbox (9,53,10,54)  ",
		"9,53,10,54",
		"10,54,9,53",
		"bbox(9,54,10,53)",
	} {
		// Act
		bound, err := ParseBbox(input)

		// Assert
		util.AssertNil(t, err)
		util.AssertEqual(t, expected, bound)
	}
}

func TestParseBbox_invalid(t *testing.T) {
	var err error

	_, err = ParseBbox("bbox(9,53,10)")
	util.AssertError(t, "Expected four coordinates in bbox 'bbox(9,53,10)' but found 3", err)

	_, err = ParseBbox("bbox 9,53,10,54")
	util.AssertError(t, "Expected parentheses around coordinates of bbox 'bbox 9,53,10,54'", err)

	_, err = ParseBbox("9,53,foo,54")
	util.AssertNotNil(t, err)
	util.AssertMatch(t, "^Unable to parse coordinate 3 of bbox '9,53,foo,54'", err.Error())

	_, err = ParseBbox("")
	util.AssertNotNil(t, err)
}

func TestParseBbox_nonFiniteCoordinates(t *testing.T) {
	var err error

	_, err = ParseBbox("NaN,NaN,NaN,NaN")
	util.AssertError(t, "Coordinate 1 of bbox 'NaN,NaN,NaN,NaN' must be a finite number", err)

	_, err = ParseBbox("bbox(9,53,Inf,54)")
	util.AssertError(t, "Coordinate 3 of bbox 'bbox(9,53,Inf,54)' must be a finite number", err)

	_, err = ParseBbox("9,-inf,10,54")
	util.AssertError(t, "Coordinate 2 of bbox '9,-inf,10,54' must be a finite number", err)
}

func TestParseBboxQuery_nanBboxIsRejected(t *testing.T) {
	// Act
	q, err := ParseBboxQuery("NaN,NaN,NaN,NaN", "", false)

	// Assert
	util.AssertNil(t, q)
	util.AssertNotNil(t, err)
}

func TestParseEdgeMode(t *testing.T) {
	testCases := map[string]EdgeMode{
		"":   EdgesInclusive,
		"[]": EdgesInclusive,
		"()": EdgesExclusive,
		"[)": EdgesHalfOpen,
		"(]": EdgesReversedHalfOpen,
	}

	for input, expected := range testCases {
		// Act
		edges, err := ParseEdgeMode(input)

		// Assert
		util.AssertNil(t, err)
		util.AssertEqual(t, expected, edges)
	}

	_, err := ParseEdgeMode("[[")
	util.AssertError(t, "Unknown edge mode '[[', expected one of '[]', '()', '[)' and '(]'", err)
}

func TestEdgeMode_string(t *testing.T) {
	util.AssertEqual(t, "[]", EdgesInclusive.String())
	util.AssertEqual(t, "()", EdgesExclusive.String())
	util.AssertEqual(t, "[)", EdgesHalfOpen.String())
	util.AssertEqual(t, "(]", EdgesReversedHalfOpen.String())
}

func TestEdgeMode_contains(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{5, 5}, Max: orb.Point{6, 6}}

	util.AssertTrue(t, EdgesInclusive.contains(bound, orb.Point{5, 5}))
	util.AssertTrue(t, EdgesInclusive.contains(bound, orb.Point{6, 6}))
	util.AssertFalse(t, EdgesExclusive.contains(bound, orb.Point{5, 5.5}))
	util.AssertFalse(t, EdgesExclusive.contains(bound, orb.Point{5.5, 6}))
	util.AssertTrue(t, EdgesExclusive.contains(bound, orb.Point{5.5, 5.5}))
	util.AssertTrue(t, EdgesHalfOpen.contains(bound, orb.Point{5, 5}))
	util.AssertFalse(t, EdgesHalfOpen.contains(bound, orb.Point{6, 5.5}))
	util.AssertFalse(t, EdgesReversedHalfOpen.contains(bound, orb.Point{5, 5.5}))
	util.AssertTrue(t, EdgesReversedHalfOpen.contains(bound, orb.Point{6, 6}))
	util.AssertFalse(t, EdgesInclusive.contains(bound, orb.Point{4.9, 5.5}))
}

func newTestData(t *testing.T, nodes ...*osm.Node) (*index.GridIndex[float64], *ownOsm.NodeStore) {
	grid, err := index.NewGridIndex(0.0, 10.0, 10.0, 0.0, 10.0, 10.0)
	util.AssertNil(t, err)
	store := ownOsm.NewNodeStore()
	for _, node := range nodes {
		index.InsertPoint(grid, node.Point(), ownOsm.IndexId(node.ID))
		store.Add(node)
	}
	return grid, store
}

func TestBboxQuery_candidatesWithoutExactFilter(t *testing.T) {
	// Arrange
	grid, store := newTestData(t, &osm.Node{ID: 7, Lon: 1, Lat: 1})
	q := NewBboxQuery(orb.Bound{Min: orb.Point{8, 8}, Max: orb.Point{9, 9}}, EdgesInclusive, false)

	// Act
	result, err := q.Execute(grid, store)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, 1, result.CandidateCount)
	util.AssertLen(t, 1, result.Nodes)
	util.AssertEqual(t, osm.NodeID(7), result.Nodes[0].ID)
}

func TestBboxQuery_exactFilterRemovesFalsePositives(t *testing.T) {
	// Arrange
	grid, store := newTestData(t,
		&osm.Node{ID: 7, Lon: 1, Lat: 1},
		&osm.Node{ID: 8, Lon: 8.5, Lat: 8.5},
		&osm.Node{ID: 9, Lon: 9, Lat: 9},
		&osm.Node{ID: -10, Lon: 50, Lat: 50},
	)
	q := NewBboxQuery(orb.Bound{Min: orb.Point{8, 8}, Max: orb.Point{9, 9}}, EdgesHalfOpen, true)

	// Act
	result, err := q.Execute(grid, store)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, 4, result.CandidateCount)
	util.AssertLen(t, 1, result.Nodes)
	util.AssertEqual(t, osm.NodeID(8), result.Nodes[0].ID)
}

func TestBboxQuery_exactFilterKeepsPointsClampedIntoTheGrid(t *testing.T) {
	// Arrange
	grid, store := newTestData(t, &osm.Node{ID: 1, Lon: 50, Lat: 50})
	q := NewBboxQuery(orb.Bound{Min: orb.Point{40, 40}, Max: orb.Point{60, 60}}, EdgesInclusive, true)

	// Act
	result, err := q.Execute(grid, store)

	// Assert
	util.AssertNil(t, err)
	util.AssertLen(t, 1, result.Nodes)
}

func TestBboxQuery_missingNodeInStore(t *testing.T) {
	// Arrange
	grid, store := newTestData(t)
	index.InsertPoint(grid, orb.Point{1, 1}, 42)
	q := NewBboxQuery(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 2}}, EdgesInclusive, false)

	// Act
	result, err := q.Execute(grid, store)

	// Assert
	util.AssertNil(t, result)
	util.AssertError(t, "Node 42 from grid index not found in node store", err)
}

func TestParseBboxQuery(t *testing.T) {
	// Act
	q, err := ParseBboxQuery("bbox(1,2,3,4)", "(]", true)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, orb.Bound{Min: orb.Point{1, 2}, Max: orb.Point{3, 4}}, q.Bound)
	util.AssertEqual(t, EdgesReversedHalfOpen, q.Edges)
	util.AssertTrue(t, q.Exact)

	// Act
	q, err = ParseBboxQuery("bbox(1,2,3,4)", "<>", true)

	// Assert
	util.AssertNil(t, q)
	util.AssertNotNil(t, err)
}

func TestBboxQuery_tagFilter(t *testing.T) {
	// Arrange
	grid, store := newTestData(t,
		&osm.Node{ID: 1, Lon: 1, Lat: 1, Tags: osm.Tags{{Key: "amenity", Value: "bench"}}},
		&osm.Node{ID: 2, Lon: 2, Lat: 2, Tags: osm.Tags{{Key: "amenity", Value: "waste_basket"}}},
		&osm.Node{ID: 3, Lon: 3, Lat: 3},
	)
	q, err := ParseBboxQuery("0,0,5,5", "[]", true, "amenity=bench")
	util.AssertNil(t, err)

	// Act
	result, err := q.Execute(grid, store)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, 3, result.CandidateCount)
	util.AssertLen(t, 1, result.Nodes)
	util.AssertEqual(t, osm.NodeID(1), result.Nodes[0].ID)
}

func TestParseBboxQuery_invalidFilter(t *testing.T) {
	// Act
	q, err := ParseBboxQuery("0,0,5,5", "[]", true, "amenity")

	// Assert
	util.AssertNil(t, q)
	util.AssertError(t, "Expected '=' or '!=' in filter 'amenity'", err)
}
