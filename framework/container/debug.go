package container

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Lifetimes reported by Graph.
const (
	LifetimeTransient = "transient"
	LifetimeSingleton = "singleton"
	LifetimeScoped    = "scoped"
	LifetimeInstance  = "instance"
	LifetimeDeferred  = "deferred"
)

type GraphInfo struct {
	ID       string        `json:"id"`
	Services []ServiceInfo `json:"services"`
}

// ServiceInfo describes one alias. Dependencies and Dependents are the cached
// instances linked to this alias's cached instance.
type ServiceInfo struct {
	Alias        string   `json:"alias"`
	Lifetime     string   `json:"lifetime"`
	Factory      string   `json:"factory,omitempty"`
	Resolved     bool     `json:"resolved"`
	Dependencies []string `json:"dependencies,omitempty"`
	Dependents   []string `json:"dependents,omitempty"`
}

// Graph snapshots every known alias.
func (c *Container) Graph() GraphInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var aliases []string
	add := func(alias string) {
		if !seen[alias] {
			seen[alias] = true
			aliases = append(aliases, alias)
		}
	}
	for alias := range c.bindings {
		add(alias)
	}
	for alias := range c.instances {
		add(alias)
	}
	for alias := range c.deferred {
		add(alias)
	}
	sort.Strings(aliases)

	services := make([]ServiceInfo, 0, len(aliases))
	for _, alias := range aliases {
		services = append(services, c.describe(alias))
	}
	return GraphInfo{ID: c.id, Services: services}
}

// Describe returns what the container knows about alias.
func (c *Container) Describe(alias string) (ServiceInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	alias = c.canonical(alias)

	_, bound := c.bindings[alias]
	_, cached := c.instances[alias]
	_, deferred := c.deferred[alias]
	if !bound && !cached && !deferred {
		return ServiceInfo{}, false
	}
	return c.describe(alias), true
}

// describe must hold mu.RLock.
func (c *Container) describe(alias string) ServiceInfo {
	info := ServiceInfo{
		Alias:        alias,
		Dependencies: c.deps.dependenciesOf(alias),
		Dependents:   c.deps.dependentsOf(alias),
	}
	e, cached := c.instances[alias]
	info.Resolved = cached

	b, bound := c.bindings[alias]
	_, scoped := c.scoped[alias]
	switch {
	case bound && scoped:
		info.Lifetime = LifetimeScoped
	case bound && b.shared:
		info.Lifetime = LifetimeSingleton
	case bound:
		info.Lifetime = LifetimeTransient
	case cached:
		info.Lifetime = LifetimeInstance
	default:
		info.Lifetime = LifetimeDeferred
	}

	switch {
	case bound:
		info.Factory = describeFactory(b.factory)
	case cached:
		info.Factory = fmt.Sprintf("%T", e.value)
	}
	return info
}

func describeFactory(f Factory) string {
	switch f := f.(type) {
	case Concrete:
		return "class " + string(f)
	case funcCall:
		return f.fn.name
	case methodCall:
		return f.String()
	}
	return fmt.Sprintf("%T", f)
}

// FprintGraph writes the graph as a table.
func (c *Container) FprintGraph(w io.Writer) {
	info := c.Graph()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("container " + info.ID)
	t.AppendHeader(table.Row{"Alias", "Lifetime", "Factory", "Resolved", "Depends on", "Dependents"})
	for _, svc := range info.Services {
		resolved := "○"
		if svc.Resolved {
			resolved = "●"
		}
		t.AppendRow(table.Row{
			svc.Alias,
			svc.Lifetime,
			svc.Factory,
			resolved,
			strings.Join(svc.Dependencies, ", "),
			strings.Join(svc.Dependents, ", "),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// SprintGraph returns the FprintGraph table as a string.
func (c *Container) SprintGraph() string {
	var sb strings.Builder
	c.FprintGraph(&sb)
	return sb.String()
}

// FprintGraphDOT writes the dependency edges between cached instances in
// Graphviz format.
func (c *Container) FprintGraphDOT(w io.Writer) {
	info := c.Graph()

	_, _ = fmt.Fprintln(w, "digraph dependencies {")
	_, _ = fmt.Fprintln(w, "  rankdir=LR;")
	_, _ = fmt.Fprintln(w, "  node [shape=box];")

	for _, svc := range info.Services {
		style := ""
		if svc.Resolved {
			style = ", style=filled, fillcolor=lightblue"
		}
		_, _ = fmt.Fprintf(w, "  %q [label=%q%s];\n", svc.Alias, escapeLabel(svc.Alias), style)
	}

	_, _ = fmt.Fprintln(w)

	for _, svc := range info.Services {
		for _, dep := range svc.Dependencies {
			_, _ = fmt.Fprintf(w, "  %q -> %q;\n", svc.Alias, dep)
		}
	}

	_, _ = fmt.Fprintln(w, "}")
}

// SprintGraphDOT returns the FprintGraphDOT output as a string.
func (c *Container) SprintGraphDOT() string {
	var sb strings.Builder
	c.FprintGraphDOT(&sb)
	return sb.String()
}

func escapeLabel(s string) string {
	if idx := strings.LastIndex(s, "/"); idx != -1 {
		s = s[idx+1:]
	}
	return s
}
