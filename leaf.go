package urlkit

// Leaf is the terminal point of a declared route. It is immutable:
// mounting a builder produces new leaves.
type Leaf struct {
	path   string
	shape  Shape
	hook   *hookRef
	logger Logger
}

func newLeaf(path string, shape Shape, hook *hookRef, logger Logger) *Leaf {
	if logger == nil {
		logger = &defaultLogger{}
	}
	return &Leaf{
		path:   path,
		shape:  shape,
		hook:   hook,
		logger: logger,
	}
}

// Get returns the full path of the route.
func (l *Leaf) Get() string {
	return l.path
}

// Shape returns the query shape declared for the route.
func (l *Leaf) Shape() Shape {
	return l.shape
}

// Query returns the path with params encoded as its query string.
// Empty params return the bare path. Params rejected by the route's
// shape produce an error for which IsInvalidQuery reports true.
func (l *Leaf) Query(params Params) (string, error) {
	if len(params) == 0 {
		return l.path, nil
	}

	if err := l.shape.check(params); err != nil {
		l.logger.Error("query params validation failed for %s: %v", l.path, err)
		return "", newInvalidQueryError(l.path, err)
	}

	return withQuery(l.path, params), nil
}

// MustQuery is like Query but panics on validation errors.
func (l *Leaf) MustQuery(params Params) string {
	out, err := l.Query(params)
	if err != nil {
		panic(err)
	}
	return out
}

// Parse reads query parameters according to the route's shape. The first
// non nil source is used, otherwise the builder's search params hook.
// Parse never fails; invalid input degrades to defaults.
func (l *Leaf) Parse(sources ...QuerySource) Values {
	var src QuerySource
	for _, s := range sources {
		if s != nil {
			src = s
			break
		}
	}
	if src == nil {
		src = l.hook.source()
	}
	return l.shape.decode(src, l.path, l.logger)
}

// rebase returns a copy of the leaf bound to a new path and owner.
func (l *Leaf) rebase(path string, hook *hookRef, logger Logger) *Leaf {
	return newLeaf(path, l.shape, hook, logger)
}
