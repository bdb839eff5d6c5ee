package osm

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// NodeStore keeps the nodes by their ID. The grid index only knows IDs, so the exact position of a candidate has to be
// looked up here.
type NodeStore struct {
	nodes map[osm.NodeID]*osm.Node
}

func NewNodeStore() *NodeStore {
	return &NodeStore{
		nodes: map[osm.NodeID]*osm.Node{},
	}
}

func (s *NodeStore) Add(node *osm.Node) {
	s.nodes[node.ID] = node
}

func (s *NodeStore) Get(id osm.NodeID) (*osm.Node, bool) {
	node, ok := s.nodes[id]
	return node, ok
}

// GetByIndexId returns the node for an ID stored in the grid index.
func (s *NodeStore) GetByIndexId(id uint64) (*osm.Node, bool) {
	return s.Get(NodeIdFromIndexId(id))
}

func (s *NodeStore) Position(id osm.NodeID) (orb.Point, bool) {
	node, ok := s.nodes[id]
	if !ok {
		return orb.Point{}, false
	}
	return node.Point(), true
}

func (s *NodeStore) Len() int {
	return len(s.nodes)
}

// IndexId converts the node ID into the ID stored in the grid index. Negative IDs (e.g. of new nodes in local files)
// are kept in two's complement and survive the round trip through NodeIdFromIndexId.
func IndexId(id osm.NodeID) uint64 {
	return uint64(id)
}

func NodeIdFromIndexId(id uint64) osm.NodeID {
	return osm.NodeID(int64(id))
}
