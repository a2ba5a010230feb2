package urlkit

// Node is a route tree node. Children are kept in insertion order and a
// node may carry a leaf and children at the same time, e.g. after
// declaring both "/users" and "/users/settings".
//
// Navigation methods are nil safe, so lookups can be chained:
//
//	routes.Child("blog").Child("posts").Get()
type Node struct {
	keys     []string
	children map[string]*Node
	leaf     *Leaf
}

func newNode() *Node {
	return &Node{children: make(map[string]*Node)}
}

// Child returns the child stored under key, or nil.
func (n *Node) Child(key string) *Node {
	if n == nil {
		return nil
	}
	return n.children[key]
}

// At follows keys from n and returns the node found, or nil.
func (n *Node) At(keys ...string) *Node {
	current := n
	for _, k := range keys {
		current = current.Child(k)
		if current == nil {
			return nil
		}
	}
	return current
}

// Keys returns the child keys in insertion order.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// IsLeaf reports whether the node carries route behaviors.
func (n *Node) IsLeaf() bool {
	return n != nil && n.leaf != nil
}

// Leaf returns the node's leaf, or nil for internal nodes.
func (n *Node) Leaf() *Leaf {
	if n == nil {
		return nil
	}
	return n.leaf
}

// Get returns the leaf path, or "" if the node is not a leaf.
func (n *Node) Get() string {
	if !n.IsLeaf() {
		return ""
	}
	return n.leaf.Get()
}

// Query delegates to the node's leaf.
func (n *Node) Query(params Params) (string, error) {
	if !n.IsLeaf() {
		return "", newRouteNotFoundError(nil)
	}
	return n.leaf.Query(params)
}

// Parse delegates to the node's leaf. Internal nodes yield empty Values.
func (n *Node) Parse(sources ...QuerySource) Values {
	if !n.IsLeaf() {
		return Values{}
	}
	return n.leaf.Parse(sources...)
}

// Route returns the leaf reached by following keys.
func (n *Node) Route(keys ...string) (*Leaf, error) {
	node := n.At(keys...)
	if !node.IsLeaf() {
		return nil, newRouteNotFoundError(keys)
	}
	return node.leaf, nil
}

// MustRoute is like Route but panics when the route does not exist.
func (n *Node) MustRoute(keys ...string) *Leaf {
	leaf, err := n.Route(keys...)
	if err != nil {
		panic(err)
	}
	return leaf
}

// ensure returns the child under key, creating it when missing.
func (n *Node) ensure(key string) *Node {
	if child, ok := n.children[key]; ok {
		return child
	}
	child := newNode()
	n.keys = append(n.keys, key)
	n.children[key] = child
	return child
}

// set stores child under key, replacing any previous subtree.
func (n *Node) set(key string, child *Node) {
	if _, ok := n.children[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
}

// clone deep copies the subtree, mapping every leaf through fn.
func (n *Node) clone(fn func(*Leaf) *Leaf) *Node {
	out := newNode()
	if n.leaf != nil {
		out.leaf = fn(n.leaf)
	}
	for _, k := range n.keys {
		out.keys = append(out.keys, k)
		out.children[k] = n.children[k].clone(fn)
	}
	return out
}

// walk visits leaves depth first, parents before children.
func (n *Node) walk(keys []string, fn func(keys []string, leaf *Leaf) bool) bool {
	if n.leaf != nil {
		if !fn(keys, n.leaf) {
			return false
		}
	}
	for _, k := range n.keys {
		path := append(append([]string(nil), keys...), k)
		if !n.children[k].walk(path, fn) {
			return false
		}
	}
	return true
}

// Walk calls fn for every leaf under n with the keys leading to it.
// Returning false stops the walk.
func (n *Node) Walk(fn func(keys []string, leaf *Leaf) bool) {
	if n == nil {
		return
	}
	n.walk(nil, fn)
}
