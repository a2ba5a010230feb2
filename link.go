package urlkit

import "strings"

// LinkConfig configures a standalone link.
type LinkConfig struct {
	// SearchParams is read by Parse when no source is passed.
	SearchParams SearchParamsHook
	Logger       Logger
}

// NewLink returns a leaf for path under an absolute base URL, outside of
// any builder. The link has no query shape:
//
//	docs := urlkit.NewLink("https://example.com", "/docs")
//	docs.MustQuery(urlkit.Q("page", 2)) // https://example.com/docs?page=2
func NewLink(baseURL, path string, config ...LinkConfig) *Leaf {
	var cfg LinkConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	base := strings.TrimRight(baseURL, "/")
	if path != "" {
		path = normalizePath(path)
	}

	return newLeaf(base+path, NoShape(), &hookRef{fn: cfg.SearchParams}, cfg.Logger)
}

// Build is an alias of Query for links.
func (l *Leaf) Build(params Params) (string, error) {
	return l.Query(params)
}
