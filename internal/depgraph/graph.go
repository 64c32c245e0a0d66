// Package depgraph indexes task dependencies for cascades and connectors.
package depgraph

import (
	"fmt"
	"log"
	"strings"

	"github.com/gammazero/toposort"

	"github.com/aristath/gantt/internal/tasks"
)

// Graph is the dependency index of one layout pass. It is read-only once
// built and is shared by the interaction machine during cascades.
type Graph struct {
	ids          []string            // Task IDs in declaration order
	known        map[string]bool     // Task ID -> present in this pass
	dependencies map[string][]string // Task ID -> resolvable dependencies, declaration order
	dependents   map[string][]string // Task ID -> tasks that depend on it, declaration order
}

// Build indexes the dependencies of tasks. References to unknown ids are
// skipped: they get no connector and no propagation target.
func Build(list []*tasks.Task) *Graph {
	g := &Graph{
		ids:          make([]string, 0, len(list)),
		known:        make(map[string]bool, len(list)),
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
	}

	for _, t := range list {
		g.ids = append(g.ids, t.ID)
		g.known[t.ID] = true
	}

	for _, t := range list {
		for _, depID := range t.Dependencies {
			if !g.known[depID] {
				log.Printf("WARNING: task %q depends on unknown task %q, skipping edge", t.ID, depID)
				continue
			}
			g.dependencies[t.ID] = append(g.dependencies[t.ID], depID)
			g.dependents[depID] = append(g.dependents[depID], t.ID)
		}
	}

	return g
}

// Dependents returns the direct dependents of id in declaration order.
func (g *Graph) Dependents(id string) []string {
	return g.dependents[id]
}

// Dependencies returns the resolvable dependencies of id.
func (g *Graph) Dependencies(id string) []string {
	return g.dependencies[id]
}

// Edge is one resolvable dependency: To depends on From.
type Edge struct {
	From string
	To   string
}

// Edges returns every resolvable edge, grouped by dependent in declaration order.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, id := range g.ids {
		for _, dep := range g.dependencies[id] {
			edges = append(edges, Edge{From: dep, To: id})
		}
	}
	return edges
}

// Validate runs a topological sort over the whole graph using gammazero/toposort.
// Returns ordered task IDs or an error if a cycle is detected.
func (g *Graph) Validate() ([]string, error) {
	return g.sort(g.ids)
}

// Closure returns every task reachable from id through dependents, excluding
// id itself, breadth first. Each task appears once even if the graph has cycles.
func (g *Graph) Closure(id string) []string {
	visited := map[string]bool{id: true}
	queue := []string{id}
	var out []string

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range g.dependents[cur] {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			out = append(out, dep)
			queue = append(queue, dep)
		}
	}

	return out
}

// Order returns ids in topological order of the subgraph they induce. When
// the subgraph has a cycle the input order is returned unchanged.
func (g *Graph) Order(ids []string) []string {
	sorted, err := g.sort(ids)
	if err != nil {
		return append([]string(nil), ids...)
	}
	return sorted
}

// sort topologically orders ids, considering only edges between them.
func (g *Graph) sort(ids []string) ([]string, error) {
	in := make(map[string]bool, len(ids))
	for _, id := range ids {
		in[id] = true
	}

	// Build edges for topological sort
	var edges []toposort.Edge
	for _, id := range ids {
		linked := false
		for _, depID := range g.dependencies[id] {
			if !in[depID] {
				continue
			}
			// Edge (depID, id) means depID must come before id
			edges = append(edges, toposort.Edge{depID, id})
			linked = true
		}
		if !linked {
			// Task with no dependencies in the set - add edge from nil to ensure it's included
			edges = append(edges, toposort.Edge{nil, id})
		}
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("dependency graph contains cycle: %w", err)
	}

	order := make([]string, 0, len(ids))
	for _, id := range sorted {
		if id != nil {
			order = append(order, id.(string))
		}
	}

	// Every task must appear in the sorted result
	if len(order) != len(ids) {
		found := make(map[string]bool, len(order))
		for _, id := range order {
			found[id] = true
		}
		missing := []string{}
		for _, id := range ids {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("topological sort lost %d tasks: %s", len(missing), strings.Join(missing, ", "))
	}

	return order, nil
}
