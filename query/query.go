package query

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"sgi/index"
	ownOsm "sgi/osm"
	"time"
)

type BboxQuery struct {
	Bound orb.Bound
	Edges EdgeMode
	// Exact removes candidates of the grid whose actual position is outside the bbox.
	Exact bool
	// Filter removes nodes not matching the tag filter. Nil means no filtering.
	Filter FilterExpression
}

type Result struct {
	Nodes          []*osm.Node
	CandidateCount int
}

func NewBboxQuery(bound orb.Bound, edges EdgeMode, exact bool) *BboxQuery {
	return &BboxQuery{
		Bound: bound,
		Edges: edges,
		Exact: exact,
	}
}

// ParseBboxQuery creates a query from the string representations of the bbox, edge mode and tag filters, see
// ParseBbox, ParseEdgeMode and ParseFilter.
func ParseBboxQuery(bboxString string, edgeString string, exact bool, filterStrings ...string) (*BboxQuery, error) {
	bound, err := ParseBbox(bboxString)
	if err != nil {
		return nil, err
	}

	edges, err := ParseEdgeMode(edgeString)
	if err != nil {
		return nil, err
	}

	q := NewBboxQuery(bound, edges, exact)
	if len(filterStrings) > 0 {
		q.Filter, err = ParseFilters(filterStrings...)
		if err != nil {
			return nil, err
		}
	}

	return q, nil
}

// Execute collects the nodes of all grid cells intersecting the bbox. These are just candidates, unless the query is
// exact, in which case the position of each candidate is checked.
func (q *BboxQuery) Execute(grid *index.GridIndex[float64], store *ownOsm.NodeStore) (*Result, error) {
	sigolo.Debugf("Execute query for bbox %s with edges %s (exact=%t)", boundString(q.Bound), q.Edges, q.Exact)
	if q.Filter != nil {
		sigolo.Debugf("Filter nodes by %s", q.Filter)
	}
	queryStartTime := time.Now()

	result := &Result{}
	var err error

	index.QueryBoundForEach(grid, q.Bound, func(id uint64) {
		if err != nil {
			return
		}

		result.CandidateCount++

		node, ok := store.GetByIndexId(id)
		if !ok {
			err = errors.Errorf("Node %d from grid index not found in node store", ownOsm.NodeIdFromIndexId(id))
			return
		}

		if q.Exact && !q.Edges.contains(q.Bound, node.Point()) {
			return
		}

		if q.Filter != nil && !q.Filter.Applies(node) {
			return
		}

		result.Nodes = append(result.Nodes, node)
	}, q.Edges.IncludeMin, q.Edges.IncludeMax)

	if err != nil {
		return nil, err
	}

	sigolo.Debugf("Query found %d nodes of %d candidates in %s", len(result.Nodes), result.CandidateCount, time.Since(queryStartTime))

	return result, nil
}
