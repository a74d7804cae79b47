package graph

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/urgupguide/tourism-backend-go/internal/spatial"
)

// Node represents a road/trail network node (intersection or way vertex)
type Node struct {
	ID  int64
	Lat float64
	Lon float64
}

// Edge represents a directed connection between two nodes.
// Geometry, when present, is the ordered list of coordinates from the
// source node to the target node, endpoints included.
type Edge struct {
	From     int64
	To       int64
	LengthM  float64
	Geometry []spatial.Point
}

// Graph is a directed multigraph of road/trail nodes, represented as
// adjacency on integer node ids
type Graph struct {
	Nodes map[int64]Node
	Adj   map[int64][]Edge
}

// New creates an empty graph
func New() *Graph {
	return &Graph{
		Nodes: make(map[int64]Node),
		Adj:   make(map[int64][]Edge),
	}
}

// AddNode inserts or replaces a node
func (g *Graph) AddNode(n Node) {
	g.Nodes[n.ID] = n
}

// AddEdge appends a directed edge
func (g *Graph) AddEdge(e Edge) {
	g.Adj[e.From] = append(g.Adj[e.From], e)
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// NearestNode finds the closest node to the given coordinate.
// Returns the node and the ground distance in meters; ok is false for an empty graph.
func (g *Graph) NearestNode(p spatial.Point) (Node, float64, bool) {
	var best Node
	bestDist := -1.0
	for _, n := range g.Nodes {
		d := spatial.HaversineDistance(p.Lat, p.Lon, n.Lat, n.Lon)
		if bestDist < 0 || d < bestDist {
			best = n
			bestDist = d
		}
	}
	if bestDist < 0 {
		return Node{}, 0, false
	}
	return best, bestDist, true
}

// KNearestNodes returns up to k nodes closest to the coordinate, nearest first
func (g *Graph) KNearestNodes(p spatial.Point, k int) []Node {
	type candidate struct {
		node Node
		dist float64
	}
	candidates := make([]candidate, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		candidates = append(candidates, candidate{
			node: n,
			dist: spatial.HaversineDistance(p.Lat, p.Lon, n.Lat, n.Lon),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].node.ID < candidates[j].node.ID
	})
	if k > len(candidates) {
		k = len(candidates)
	}
	nodes := make([]Node, k)
	for i := 0; i < k; i++ {
		nodes[i] = candidates[i].node
	}
	return nodes
}

// ShortestPath computes the minimum cumulative edge length path between two
// nodes using Dijkstra's algorithm. Returns the node id sequence and the total
// length in meters
func (g *Graph) ShortestPath(startID, goalID int64) ([]int64, float64, error) {
	if _, ok := g.Nodes[startID]; !ok {
		return nil, 0, fmt.Errorf("start node %d not in graph", startID)
	}
	if _, ok := g.Nodes[goalID]; !ok {
		return nil, 0, fmt.Errorf("goal node %d not in graph", goalID)
	}
	if startID == goalID {
		return []int64{startID}, 0, nil
	}

	dist := make(map[int64]float64)
	dist[startID] = 0

	cameFrom := make(map[int64]int64)

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{node: startID, priority: 0})

	closed := make(map[int64]bool)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		current := item.node
		if current == goalID {
			return reconstructPath(cameFrom, current), dist[current], nil
		}

		if closed[current] {
			continue
		}
		closed[current] = true

		for _, e := range g.Adj[current] {
			neighbor := e.To
			tentative := dist[current] + e.LengthM

			if old, ok := dist[neighbor]; !ok || tentative < old {
				cameFrom[neighbor] = current
				dist[neighbor] = tentative
				heap.Push(pq, &pqItem{node: neighbor, priority: tentative})
			}
		}
	}

	return nil, 0, fmt.Errorf("no path found from %d to %d", startID, goalID)
}

// EdgeBetween returns the shortest direct edge from one node to another
func (g *Graph) EdgeBetween(fromID, toID int64) (Edge, bool) {
	var best Edge
	found := false
	for _, e := range g.Adj[fromID] {
		if e.To == toID && (!found || e.LengthM < best.LengthM) {
			best = e
			found = true
		}
	}
	return best, found
}

func reconstructPath(cameFrom map[int64]int64, current int64) []int64 {
	var path []int64
	for {
		path = append([]int64{current}, path...)
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		current = prev
	}
	return path
}

type pqItem struct {
	node     int64
	priority float64
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*pqItem)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}
