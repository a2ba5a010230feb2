package urlkit

import (
	"strings"

	"github.com/ettle/strcase"
)

// Builder accumulates declared routes into a tree of leaves.
//
// Add and Use mutate the builder and must not be called concurrently.
// Once construction is done, the leaves returned by Routes are immutable
// and safe for concurrent use.
type Builder struct {
	prefix string
	name   string
	root   *Node
	shapes map[string]Shape
	hook   *hookRef
	logger Logger
}

// New creates a Builder.
//
//	dashboard := urlkit.New(urlkit.Config{Prefix: "/dashboard"}).
//		Add("/").
//		Add("/user-profile", urlkit.Coerced(urlkit.Fields{"tab": urlkit.FieldString}))
func New(config ...Config) *Builder {
	cfg := configDefault(config...)
	return &Builder{
		prefix: normalizePrefix(cfg.Prefix),
		name:   cfg.Name,
		root:   newNode(),
		shapes: make(map[string]Shape),
		hook:   &hookRef{fn: cfg.SearchParams},
		logger: cfg.Logger,
	}
}

// Prefix returns the normalized prefix.
func (b *Builder) Prefix() string {
	return b.prefix
}

// Name returns the display name. Without a configured name it is derived
// from the prefix, e.g. "/blog-api" becomes "Blog Api".
func (b *Builder) Name() string {
	if b.name != "" {
		return b.name
	}
	label := strings.ReplaceAll(strings.Trim(b.prefix, "/"), "/", " ")
	if label == "" {
		return ""
	}
	return strcase.ToCase(label, strcase.TitleCase, ' ')
}

// Add declares path with an optional query shape and returns the builder.
// Nested paths create intermediate nodes; the root path ("" or "/")
// attaches its leaf to the tree root.
func (b *Builder) Add(path string, shape ...Shape) *Builder {
	s := NoShape()
	if len(shape) > 0 {
		s = shape[0]
	}

	fullPath := b.prefix + normalizePath(path)
	b.shapes[fullPath] = s

	node := b.root
	for _, key := range SegmentKeys(path) {
		node = node.ensure(key)
	}
	node.leaf = newLeaf(fullPath, s, b.hook, b.logger)

	b.logger.Debug("route added: %s (%s)", fullPath, s.Kind())
	return b
}

// SetSearchParamsHook replaces the hook used by Parse when no source is
// given. Leaves created earlier, including mounted ones, observe the change.
func (b *Builder) SetSearchParamsHook(hook SearchParamsHook) *Builder {
	b.hook.fn = hook
	return b
}

// Routes exposes the route tree. Treat it as read only.
func (b *Builder) Routes() *Node {
	return b.root
}

// Route returns the leaf reached by following keys from the root.
func (b *Builder) Route(keys ...string) (*Leaf, error) {
	return b.root.Route(keys...)
}

// MustRoute is like Route but panics when the route does not exist.
func (b *Builder) MustRoute(keys ...string) *Leaf {
	return b.root.MustRoute(keys...)
}

// ShapeFor returns the shape registered for a full path.
func (b *Builder) ShapeFor(fullPath string) (Shape, bool) {
	s, ok := b.shapes[fullPath]
	return s, ok
}
