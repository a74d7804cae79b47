package routing

import (
	"github.com/urgupguide/tourism-backend-go/internal/graph"
	"github.com/urgupguide/tourism-backend-go/internal/models"
	"github.com/urgupguide/tourism-backend-go/internal/spatial"
)

// noPathPenalty inflates the haversine fallback cost when the graph cannot
// connect two waypoints
const noPathPenalty = 1.5

// SolveOrder computes an approximate open-tour visiting order for the
// waypoints: nearest-neighbor construction followed by 2-opt improvement.
// The result is deterministic for identical input. When fixedStart names a
// waypoint id present in the set, the tour is rotated to begin there; an
// unknown id is ignored. When closeTour is set, the first waypoint is
// appended at the end
func SolveOrder(g *graph.Graph, waypoints []models.Waypoint, fixedStart string, closeTour bool) []models.Waypoint {
	if len(waypoints) < 2 {
		return waypoints
	}

	var order []int
	if g == nil || g.NodeCount() == 0 {
		// Without a network the solver is skipped; input order stands
		order = identityOrder(len(waypoints))
	} else {
		cost := buildCostMatrix(g, waypoints)
		order = nearestNeighborTour(cost)
		order = twoOpt(order, cost)
	}

	if fixedStart != "" {
		if k := indexOfWaypoint(waypoints, order, fixedStart); k > 0 {
			order = append(order[k:], order[:k]...)
		}
	}

	result := make([]models.Waypoint, 0, len(order)+1)
	for _, idx := range order {
		result = append(result, waypoints[idx])
	}
	if closeTour {
		result = append(result, result[0])
	}
	return result
}

// buildCostMatrix fills an NxN matrix of pairwise travel costs in meters:
// graph shortest-path length, falling back to penalized haversine when no
// path exists
func buildCostMatrix(g *graph.Graph, waypoints []models.Waypoint) [][]float64 {
	n := len(waypoints)

	nearest := make([]int64, n)
	hasNode := make([]bool, n)
	for i, wp := range waypoints {
		if node, _, ok := g.NearestNode(wp.Point()); ok {
			nearest[i] = node.ID
			hasNode[i] = true
		}
	}

	cost := make([][]float64, n)
	for i := range cost {
		cost[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c := spatial.HaversineKm(waypoints[i].Point(), waypoints[j].Point()) * 1000 * noPathPenalty
			if hasNode[i] && hasNode[j] {
				if _, lengthM, err := g.ShortestPath(nearest[i], nearest[j]); err == nil {
					c = lengthM
				}
			}
			cost[i][j] = c
			cost[j][i] = c
		}
	}
	return cost
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// nearestNeighborTour builds an open tour starting from index 0, always
// visiting the cheapest unvisited waypoint next
func nearestNeighborTour(cost [][]float64) []int {
	n := len(cost)
	visited := make([]bool, n)
	order := make([]int, 0, n)

	current := 0
	visited[0] = true
	order = append(order, 0)

	for len(order) < n {
		next := -1
		bestCost := -1.0
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			if next == -1 || cost[current][j] < bestCost {
				next = j
				bestCost = cost[current][j]
			}
		}
		visited[next] = true
		order = append(order, next)
		current = next
	}
	return order
}

// twoOpt improves an open tour by reversing sub-paths until no reversal
// shortens it. Terminates: each pass strictly decreases total length
func twoOpt(order []int, cost [][]float64) []int {
	n := len(order)
	improved := true
	for improved {
		improved = false
		for i := 0; i < n-2; i++ {
			for j := i + 1; j < n-1; j++ {
				// Current edges: (i-1,i) and (j,j+1); reversal replaces them
				// with (i-1,j) and (i,j+1). For i==0 only the tail edge counts.
				var before, after float64
				if i > 0 {
					before += cost[order[i-1]][order[i]]
					after += cost[order[i-1]][order[j]]
				}
				before += cost[order[j]][order[j+1]]
				after += cost[order[i]][order[j+1]]

				if after < before-1e-9 {
					reverse(order, i, j)
					improved = true
				}
			}
		}
	}
	return order
}

func reverse(order []int, i, j int) {
	for i < j {
		order[i], order[j] = order[j], order[i]
		i++
		j--
	}
}

func indexOfWaypoint(waypoints []models.Waypoint, order []int, id string) int {
	for k, idx := range order {
		if waypoints[idx].ID == id {
			return k
		}
	}
	return -1
}
