package graph

import (
	"fmt"
	"sort"

	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/users"
)

// Neighbors holds peer ids sorted ascending with their parallel interaction counts
type Neighbors struct {
	IDs     []int
	Weights []int
}

// Len returns the number of peers
func (n Neighbors) Len() int {
	return len(n.IDs)
}

// Total returns the sum of the weights
func (n Neighbors) Total() int {
	total := 0
	for _, weight := range n.Weights {
		total += weight
	}
	return total
}

// Node is the partitioned neighborhood of one profile
type Node struct {
	ID      int
	Address string
	// Both are peers this profile collected from and that collected from it, weights summed
	Both Neighbors
	// ArtistsOnly are creators this profile collected from
	ArtistsOnly Neighbors
	// CollectorsOnly are collectors of this profile creations
	CollectorsOnly Neighbors
}

// Degree returns the number of distinct peers
func (n *Node) Degree() int {
	return n.Both.Len() + n.ArtistsOnly.Len() + n.CollectorsOnly.Len()
}

// Graph is the read-only artist/collector graph keyed by profile id
type Graph struct {
	nodes map[int]*Node
	ids   []int
}

// Build derives the graph from a registry with compressed connections.
// Profiles without connections have no node.
func Build(reg *users.Registry) (*Graph, error) {
	if !reg.IsCompressed() {
		return nil, fmt.Errorf("failed to build graph: %w", domain.ErrConnectionsNotCompressed)
	}

	g := &Graph{nodes: make(map[int]*Node)}
	for _, profile := range reg.Profiles() {
		artists := profile.CompressedArtistConnections
		collectors := profile.CompressedCollectorConnections
		if len(artists) == 0 && len(collectors) == 0 {
			continue
		}

		node := &Node{ID: profile.ID, Address: profile.Address}
		for _, id := range sortedKeys(artists) {
			if count, ok := collectors[id]; ok {
				node.Both.add(id, artists[id]+count)
			} else {
				node.ArtistsOnly.add(id, artists[id])
			}
		}
		for _, id := range sortedKeys(collectors) {
			if _, ok := artists[id]; !ok {
				node.CollectorsOnly.add(id, collectors[id])
			}
		}

		g.nodes[node.ID] = node
		g.ids = append(g.ids, node.ID)
	}
	sort.Ints(g.ids)

	return g, nil
}

// Node returns the node of the profile id
func (g *Graph) Node(id int) (*Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// Nodes returns the nodes in id order
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.ids))
	for _, id := range g.ids {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return len(g.ids)
}

func (n *Neighbors) add(id, weight int) {
	n.IDs = append(n.IDs, id)
	n.Weights = append(n.Weights, weight)
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
