package urlkit

import (
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// QuerySource yields the query parameters of the current request or URL.
type QuerySource interface {
	// Lookup returns the first value stored for key.
	Lookup(key string) (string, bool)
	// Each calls fn for every key/value pair in source order.
	Each(fn func(key, value string))
}

// SearchParamsHook returns the query source used by Parse when the caller
// does not pass one explicitly.
type SearchParamsHook func() QuerySource

type pair struct {
	key   string
	value string
}

type pairSource []pair

func (p pairSource) Lookup(key string) (string, bool) {
	for _, kv := range p {
		if kv.key == key {
			return kv.value, true
		}
	}
	return "", false
}

func (p pairSource) Each(fn func(key, value string)) {
	for _, kv := range p {
		fn(kv.key, kv.value)
	}
}

// EmptySource returns a source without parameters.
func EmptySource() QuerySource {
	return pairSource(nil)
}

// FromValues wraps url.Values. Keys are visited in sorted order and
// repeated values in their stored order.
func FromValues(values url.Values) QuerySource {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(pairSource, 0, len(keys))
	for _, k := range keys {
		for _, v := range values[k] {
			out = append(out, pair{key: k, value: v})
		}
	}
	return out
}

// FromQueryString parses a raw query string keeping the order of pairs.
// A leading "?" is ignored. Input that looks like a URL, starting with "/"
// or containing "://", is cut at its first "?" and its fragment dropped;
// anything else is taken as the query itself, so values may contain "?".
// Pairs that fail to unescape are skipped.
func FromQueryString(raw string) QuerySource {
	switch {
	case strings.HasPrefix(raw, "?"):
		raw = raw[1:]
	case strings.HasPrefix(raw, "/") || strings.Contains(raw, "://"):
		_, query, ok := strings.Cut(raw, "?")
		if !ok {
			return EmptySource()
		}
		raw, _, _ = strings.Cut(query, "#")
	}
	return parsePairs(raw)
}

// FromRequest reads the query of a net/http request.
func FromRequest(r *http.Request) QuerySource {
	if r == nil || r.URL == nil {
		return EmptySource()
	}
	return parsePairs(r.URL.RawQuery)
}

// parsePairs splits an encoded query on "&", keeping pair order.
func parsePairs(query string) pairSource {
	out := make(pairSource, 0)
	for _, part := range strings.Split(query, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			continue
		}
		out = append(out, pair{key: key, value: value})
	}
	return out
}

// QueriesProvider is satisfied by request contexts that expose their
// query as a flat map, such as go-router's RequestContext.
type QueriesProvider interface {
	Queries() map[string]string
}

// FromQueries adapts a QueriesProvider. Keys are visited in sorted order.
func FromQueries(p QueriesProvider) QuerySource {
	if p == nil {
		return EmptySource()
	}

	queries := p.Queries()
	keys := make([]string, 0, len(queries))
	for k := range queries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(pairSource, 0, len(keys))
	for _, k := range keys {
		out = append(out, pair{key: k, value: queries[k]})
	}
	return out
}

// FromFiber reads the query arguments of a fiber request in order.
func FromFiber(c *fiber.Ctx) QuerySource {
	if c == nil {
		return EmptySource()
	}

	out := make(pairSource, 0)
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		out = append(out, pair{key: string(key), value: string(value)})
	})
	return out
}

// StaticHook returns a hook that always yields src.
func StaticHook(src QuerySource) SearchParamsHook {
	return func() QuerySource { return src }
}

// hookRef is shared by a builder and its leaves so that replacing the
// hook on the builder reaches leaves created earlier.
type hookRef struct {
	fn SearchParamsHook
}

func (h *hookRef) source() QuerySource {
	if h == nil || h.fn == nil {
		return EmptySource()
	}
	if src := h.fn(); src != nil {
		return src
	}
	return EmptySource()
}
