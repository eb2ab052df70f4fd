package flowcanvas

import "slices"

// adjacency returns outgoing and incoming neighbour lists in edge order.
// Edges whose endpoints are missing are ignored.
func (w *Workflow) adjacency() (out, in map[string][]string) {
	out = make(map[string][]string, len(w.Nodes))
	in = make(map[string][]string, len(w.Nodes))
	present := make(map[string]bool, len(w.Nodes))
	for _, n := range w.Nodes {
		present[n.ID] = true
	}
	for _, e := range w.Edges {
		if !present[e.Source] || !present[e.Target] {
			continue
		}
		out[e.Source] = append(out[e.Source], e.Target)
		in[e.Target] = append(in[e.Target], e.Source)
	}
	return out, in
}

// Successors returns the ids of nodes id has edges to, in edge order.
// Parallel edges yield one entry each.
func (w *Workflow) Successors(id string) []string {
	out, _ := w.adjacency()
	return out[id]
}

// Predecessors returns the ids of nodes with edges into id, in edge order.
func (w *Workflow) Predecessors(id string) []string {
	_, in := w.adjacency()
	return in[id]
}

// OutgoingEdges returns the edges leaving id, in edge order.
func (w *Workflow) OutgoingEdges(id string) []Edge {
	var edges []Edge
	for _, e := range w.Edges {
		if e.Source == id {
			edges = append(edges, e)
		}
	}
	return edges
}

// Roots returns the nodes with no incoming edges, in node order.
func (w *Workflow) Roots() []string {
	_, in := w.adjacency()
	var roots []string
	for _, n := range w.Nodes {
		if len(in[n.ID]) == 0 {
			roots = append(roots, n.ID)
		}
	}
	return roots
}

// Reachable returns every node reachable from the given start nodes,
// starts included, in breadth-first order. Unknown starts are ignored.
func (w *Workflow) Reachable(from ...string) []string {
	out, _ := w.adjacency()
	visited := make(map[string]bool, len(w.Nodes))
	var order []string
	var queue []string
	for _, id := range from {
		if w.NodeIndex(id) < 0 || visited[id] {
			continue
		}
		visited[id] = true
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)
		for _, next := range out[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return order
}

// Unreachable returns the nodes not reachable from any root, in node order.
// In a graph where every node sits on a cycle there are no roots and every
// node is unreachable.
func (w *Workflow) Unreachable() []string {
	seen := make(map[string]bool, len(w.Nodes))
	for _, id := range w.Reachable(w.Roots()...) {
		seen[id] = true
	}
	var ids []string
	for _, n := range w.Nodes {
		if !seen[n.ID] {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// FindCycle returns the node ids of one directed cycle, first node
// repeated at the end, or nil when the instance graph is acyclic.
//
// Connection validation checks type pairs only, so an agent and an API
// endpoint can form a cycle. FindCycle reports such cycles; nothing
// prevents them.
func (w *Workflow) FindCycle() []string {
	out, _ := w.adjacency()

	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int, len(w.Nodes))
	parent := make(map[string]string, len(w.Nodes))

	var cycle []string
	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = grey
		for _, next := range out[id] {
			switch color[next] {
			case grey:
				cycle = []string{next}
				for cur := id; cur != next; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				cycle = append(cycle, next)
				slices.Reverse(cycle)
				return true
			case white:
				parent[next] = id
				if visit(next) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}

	for _, n := range w.Nodes {
		if color[n.ID] == white && visit(n.ID) {
			return cycle
		}
	}
	return nil
}
