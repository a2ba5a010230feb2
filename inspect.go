package urlkit

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gobwas/glob"
)

// RouteEntry describes a leaf found while walking the tree.
type RouteEntry struct {
	Keys []string
	Leaf *Leaf
}

// Entries lists every leaf in tree order.
func (b *Builder) Entries() []RouteEntry {
	var out []RouteEntry
	b.root.Walk(func(keys []string, leaf *Leaf) bool {
		out = append(out, RouteEntry{Keys: keys, Leaf: leaf})
		return true
	})
	return out
}

// Paths lists the full path of every leaf in tree order.
func (b *Builder) Paths() []string {
	entries := b.Entries()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Leaf.Get())
	}
	return out
}

// Match returns the leaves whose full path matches a glob pattern.
// "*" stops at "/" while "**" spans segments:
//
//	b.Match("/blog/**")
func (b *Builder) Match(pattern string) ([]*Leaf, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid route pattern %q: %w", pattern, err)
	}

	var out []*Leaf
	b.root.Walk(func(_ []string, leaf *Leaf) bool {
		if g.Match(leaf.Get()) {
			out = append(out, leaf)
		}
		return true
	})
	return out, nil
}

// PrintRoutes prints the route table to stdout, for debugging.
func (b *Builder) PrintRoutes() {
	b.writeRoutes(os.Stdout)
}

func (b *Builder) writeRoutes(w io.Writer) {
	if name := b.Name(); name != "" {
		fmt.Fprintf(w, "%s\n", name)
	}
	for _, e := range b.Entries() {
		key := strings.Join(e.Keys, ".")
		if key == "" {
			key = "(root)"
		}
		fmt.Fprintf(w, "  %-24s %-32s %s\n", key, e.Leaf.Get(), e.Leaf.Shape().Kind())
	}
}
