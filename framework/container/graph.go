package container

import "sort"

type nodeSet map[int]struct{}

// graph records which cached instances were built from which others. Aliases
// are interned to ids; an edge dependency -> dependent means the dependent's
// cached instance holds the dependency's cached instance.
//
// Not safe for concurrent use; the container's lock guards it.
type graph struct {
	ids          map[string]int
	names        []string
	dependents   []nodeSet
	dependencies []nodeSet
}

func newGraph() *graph {
	return &graph{ids: make(map[string]int)}
}

func (g *graph) id(alias string) int {
	if id, ok := g.ids[alias]; ok {
		return id
	}
	id := len(g.names)
	g.ids[alias] = id
	g.names = append(g.names, alias)
	g.dependents = append(g.dependents, nodeSet{})
	g.dependencies = append(g.dependencies, nodeSet{})
	return id
}

// link records that dependent was built using dependency. Self edges are
// ignored.
func (g *graph) link(dependency, dependent string) {
	if dependency == dependent {
		return
	}
	from, to := g.id(dependency), g.id(dependent)
	g.dependents[from][to] = struct{}{}
	g.dependencies[to][from] = struct{}{}
}

// detach removes every edge touching alias and returns its former
// dependents.
func (g *graph) detach(alias string) []string {
	id, ok := g.ids[alias]
	if !ok {
		return nil
	}

	out := g.sorted(g.dependents[id])
	for d := range g.dependents[id] {
		delete(g.dependencies[d], id)
	}
	for d := range g.dependencies[id] {
		delete(g.dependents[d], id)
	}
	g.dependents[id] = nodeSet{}
	g.dependencies[id] = nodeSet{}
	return out
}

// closure returns alias followed by every transitive dependent in
// breadth-first order.
func (g *graph) closure(alias string) []string {
	id, ok := g.ids[alias]
	if !ok {
		return []string{alias}
	}

	seen := map[int]bool{id: true}
	queue := []int{id}
	var out []string
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		out = append(out, g.names[n])

		next := make([]int, 0, len(g.dependents[n]))
		for d := range g.dependents[n] {
			if !seen[d] {
				seen[d] = true
				next = append(next, d)
			}
		}
		sort.Ints(next)
		queue = append(queue, next...)
	}
	return out
}

func (g *graph) dependentsOf(alias string) []string {
	id, ok := g.ids[alias]
	if !ok {
		return nil
	}
	return g.sorted(g.dependents[id])
}

func (g *graph) dependenciesOf(alias string) []string {
	id, ok := g.ids[alias]
	if !ok {
		return nil
	}
	return g.sorted(g.dependencies[id])
}

func (g *graph) sorted(set nodeSet) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, g.names[id])
	}
	sort.Strings(out)
	return out
}
