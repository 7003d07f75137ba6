package layout

import (
	"fmt"
	"math/rand"

	"routemap/diagram"
)

// GenerateLinearChain builds n nodes connected start -> ... -> end.
func GenerateLinearChain(n int) diagram.Graph {
	g := diagram.Graph{}
	for i := 0; i < n; i++ {
		g.Nodes = append(g.Nodes, diagram.Node{ID: fmt.Sprintf("n%d", i), Name: fmt.Sprintf("Stop %d", i)})
		if i > 0 {
			g.Edges = append(g.Edges, diagram.Edge{
				ID:   fmt.Sprintf("e%d", i),
				From: fmt.Sprintf("n%d", i-1),
				To:   fmt.Sprintf("n%d", i),
			})
		}
	}
	return g
}

// GenerateCycle builds a ring of n nodes.
func GenerateCycle(n int) diagram.Graph {
	g := GenerateLinearChain(n)
	if n > 1 {
		g.Edges = append(g.Edges, diagram.Edge{ID: "back", From: fmt.Sprintf("n%d", n-1), To: "n0"})
	}
	return g
}

// GenerateRandomDAG builds a random acyclic graph: edges only go from a
// lower to a higher node index, then the node order is shuffled.
func GenerateRandomDAG(rng *rand.Rand, nodes, edges int) diagram.Graph {
	g := diagram.Graph{}
	for i := 0; i < nodes; i++ {
		g.Nodes = append(g.Nodes, diagram.Node{ID: fmt.Sprintf("n%d", i)})
	}
	if nodes < 2 {
		return g
	}
	for i := 0; i < edges; i++ {
		from := rng.Intn(nodes - 1)
		to := from + 1 + rng.Intn(nodes-from-1)
		g.Edges = append(g.Edges, diagram.Edge{
			ID:   fmt.Sprintf("e%d", i),
			From: fmt.Sprintf("n%d", from),
			To:   fmt.Sprintf("n%d", to),
		})
	}
	rng.Shuffle(len(g.Nodes), func(i, j int) { g.Nodes[i], g.Nodes[j] = g.Nodes[j], g.Nodes[i] })
	return g
}
