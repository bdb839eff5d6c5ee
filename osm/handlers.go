package osm

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"sgi/index"
)

// GridIndexHandler inserts every node into the grid index and remembers it in the node store. Ways and relations are
// not indexed.
type GridIndexHandler struct {
	grid      *index.GridIndex[float64]
	store     *NodeStore
	nodeCount int
}

func NewGridIndexHandler(grid *index.GridIndex[float64], store *NodeStore) *GridIndexHandler {
	return &GridIndexHandler{
		grid:  grid,
		store: store,
	}
}

func (h *GridIndexHandler) Name() string {
	return "GridIndexHandler"
}

func (h *GridIndexHandler) Init() error {
	h.nodeCount = 0
	return nil
}

func (h *GridIndexHandler) HandleNode(node *osm.Node) error {
	index.InsertPoint(h.grid, node.Point(), IndexId(node.ID))
	h.store.Add(node)
	h.nodeCount++

	if sigolo.ShouldLogTrace() {
		sigolo.Tracef("Indexed node %d at %v in cell %v", node.ID, node.Point(), h.grid.CellIndexFor(node.Lon, node.Lat))
	}

	return nil
}

func (h *GridIndexHandler) HandleWay(way *osm.Way) error {
	return nil
}

func (h *GridIndexHandler) HandleRelation(relation *osm.Relation) error {
	return nil
}

func (h *GridIndexHandler) Done() error {
	nx, ny := h.grid.Dimensions()
	sigolo.Infof("Indexed %d nodes in a grid of %dx%d cells", h.nodeCount, nx, ny)
	return nil
}

// BoundAggregator determines the bounding box of all nodes. It's used to size the grid when no bounds are given.
type BoundAggregator struct {
	Bound     orb.Bound
	NodeCount int
}

func NewBoundAggregator() *BoundAggregator {
	return &BoundAggregator{}
}

func (a *BoundAggregator) Name() string {
	return "BoundAggregator"
}

func (a *BoundAggregator) Init() error {
	a.Bound = orb.Bound{}
	a.NodeCount = 0
	return nil
}

func (a *BoundAggregator) HandleNode(node *osm.Node) error {
	if a.NodeCount == 0 {
		a.Bound = node.Point().Bound()
	} else {
		a.Bound = a.Bound.Extend(node.Point())
	}
	a.NodeCount++
	return nil
}

func (a *BoundAggregator) HandleWay(way *osm.Way) error {
	return nil
}

func (a *BoundAggregator) HandleRelation(relation *osm.Relation) error {
	return nil
}

func (a *BoundAggregator) Done() error {
	sigolo.Debugf("Bounding box of %d nodes: %v", a.NodeCount, a.Bound)
	return nil
}
