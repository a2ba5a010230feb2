package urlkit

import "strings"

// Use grafts a copy of child's route tree under SegmentKey(name). A name
// with several segments ("api/v2") mounts under nested keys.
//
// Every mounted leaf has child's prefix replaced by the receiver's prefix
// followed by "/"+name, and keeps the query shape it was declared with.
// The copy is taken at call time: later changes to child are not
// reflected, and child stays usable on its own. Using the same name twice
// replaces the previously mounted subtree.
func (b *Builder) Use(name string, child *Builder) *Builder {
	if child == nil {
		b.logger.Warn("use %q: nil child builder ignored", name)
		return b
	}

	name = mountName(name)
	keys := SegmentKeys(name)
	base := b.prefix
	if name != "" {
		base += "/" + name
	}

	if prev := b.root.At(keys...); len(keys) > 0 && prev != nil {
		prev.Walk(func(_ []string, leaf *Leaf) bool {
			delete(b.shapes, leaf.Get())
			return true
		})
	}

	rewrite := func(path string) string {
		return base + strings.TrimPrefix(path, child.prefix)
	}

	// child may be b itself, rewrite from a snapshot
	copied := make(map[string]Shape, len(child.shapes))
	for path, shape := range child.shapes {
		copied[rewrite(path)] = shape
	}
	for path, shape := range copied {
		b.shapes[path] = shape
	}

	subtree := child.root.clone(func(leaf *Leaf) *Leaf {
		return leaf.rebase(rewrite(leaf.Get()), b.hook, b.logger)
	})

	if len(keys) == 0 {
		b.mergeRoot(subtree)
	} else {
		parent := b.root
		for _, k := range keys[:len(keys)-1] {
			parent = parent.ensure(k)
		}
		parent.set(keys[len(keys)-1], subtree)
	}

	b.logger.Debug("mounted %q at %s", child.Name(), base)
	return b
}

// mergeRoot handles an empty mount name: the child's top level entries
// replace same named entries of the receiver's root.
func (b *Builder) mergeRoot(subtree *Node) {
	if subtree.leaf != nil {
		b.root.leaf = subtree.leaf
	}
	for _, k := range subtree.keys {
		b.root.set(k, subtree.children[k])
	}
}
