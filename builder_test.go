package urlkit_test

import (
	"errors"
	"fmt"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-urlkit"
)

type capturedLog struct {
	level   string
	message string
}

type captureLogger struct {
	entries []capturedLog
}

func (l *captureLogger) log(level, format string, args ...any) {
	l.entries = append(l.entries, capturedLog{level: level, message: fmt.Sprintf(format, args...)})
}

func (l *captureLogger) Debug(format string, args ...any) { l.log("debug", format, args...) }
func (l *captureLogger) Info(format string, args ...any)  { l.log("info", format, args...) }
func (l *captureLogger) Warn(format string, args ...any)  { l.log("warn", format, args...) }
func (l *captureLogger) Error(format string, args ...any) { l.log("error", format, args...) }

func (l *captureLogger) count(level string) int {
	n := 0
	for _, e := range l.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

func TestBuilder_GetReturnsPrefixedPath(t *testing.T) {
	b := urlkit.New(urlkit.Config{Prefix: "dashboard/"}).
		Add("/users").
		Add("settings/profile").
		Add("/a//b/")

	assert.Equal(t, "/dashboard", b.Prefix())
	assert.Equal(t, "/dashboard/users", b.MustRoute("users").Get())
	assert.Equal(t, "/dashboard/settings/profile", b.MustRoute("settings", "profile").Get())
	assert.Equal(t, "/dashboard/a//b/", b.MustRoute("a", "b").Get())
}

func TestBuilder_RootPath(t *testing.T) {
	b := urlkit.New().Add("/")
	assert.True(t, b.Routes().IsLeaf())
	assert.Equal(t, "/", b.Routes().Get())

	prefixed := urlkit.New(urlkit.Config{Prefix: "/blog"}).Add("")
	assert.Equal(t, "/blog/", prefixed.Routes().Get())
	assert.Empty(t, prefixed.Routes().Keys())
}

func TestBuilder_DashCaseKeys(t *testing.T) {
	b := urlkit.New().Add("/user-profile/edit-avatar")

	node := b.Routes().Child("userProfile")
	require.NotNil(t, node)
	assert.Nil(t, b.Routes().Child("user-profile"))
	assert.Equal(t, "/user-profile/edit-avatar", node.Child("editAvatar").Get())
}

func TestBuilder_LeafAndChildrenCoexist(t *testing.T) {
	b := urlkit.New().
		Add("/users/settings").
		Add("/users").
		Add("/users/list")

	users := b.Routes().Child("users")
	require.True(t, users.IsLeaf())
	assert.Equal(t, "/users", users.Get())
	assert.Equal(t, []string{"settings", "list"}, users.Keys())
	assert.Equal(t, "/users/settings", users.Child("settings").Get())
	assert.Equal(t, "/users/list", users.Child("list").Get())
}

func TestBuilder_InternalNodeIsNotLeaf(t *testing.T) {
	b := urlkit.New().Add("/a/b")

	a := b.Routes().Child("a")
	assert.False(t, a.IsLeaf())
	assert.Nil(t, a.Leaf())
	assert.Equal(t, "", a.Get())
	assert.Equal(t, urlkit.Values{}, a.Parse())

	_, err := a.Query(urlkit.Q("x", 1))
	assert.True(t, urlkit.IsRouteNotFound(err))
}

func TestBuilder_RouteNotFound(t *testing.T) {
	b := urlkit.New().Add("/users")

	_, err := b.Route("missing", "path")
	require.Error(t, err)
	assert.True(t, urlkit.IsRouteNotFound(err))
	assert.False(t, urlkit.IsInvalidQuery(err))

	assert.Nil(t, b.Routes().At("missing", "path"))
	assert.Equal(t, "", b.Routes().Child("missing").Child("path").Get())
	assert.Panics(t, func() { b.MustRoute("missing") })
}

func TestBuilder_Name(t *testing.T) {
	assert.Equal(t, "Dashboard", urlkit.New(urlkit.Config{Prefix: "/x", Name: "Dashboard"}).Name())
	assert.Equal(t, "Blog", urlkit.New(urlkit.Config{Prefix: "/blog"}).Name())
	assert.Equal(t, "", urlkit.New().Name())
}

func TestLeaf_QueryEmptyParamsEqualsGet(t *testing.T) {
	leaf := urlkit.New(urlkit.Config{Prefix: "/app"}).Add("/users").MustRoute("users")

	out, err := leaf.Query(nil)
	require.NoError(t, err)
	assert.Equal(t, leaf.Get(), out)

	out, err = leaf.Query(urlkit.Params{})
	require.NoError(t, err)
	assert.Equal(t, leaf.Get(), out)
	assert.NotContains(t, out, "?")
}

func TestLeaf_QueryEncodesInOrder(t *testing.T) {
	leaf := urlkit.New().Add("/search").MustRoute("search")

	out, err := leaf.Query(urlkit.Q("q", "go lang", "page", 2, "exact", false))
	require.NoError(t, err)
	assert.Equal(t, "/search?q=go%20lang&page=2&exact=false", out)
}

func TestLeaf_QueryKeepsDeclaredURLText(t *testing.T) {
	leaf := urlkit.New().Add("/user-profile").MustRoute("userProfile")
	assert.Equal(t, "/user-profile?tab=posts", leaf.MustQuery(urlkit.Q("tab", "posts")))
}

func TestLeaf_QueryCoercedValidation(t *testing.T) {
	logger := &captureLogger{}
	leaf := urlkit.New(urlkit.Config{Logger: logger}).
		Add("/users", urlkit.Coerced(urlkit.Fields{
			"page":   urlkit.FieldNumber,
			"active": urlkit.FieldBoolean,
		})).
		MustRoute("users")

	out, err := leaf.Query(urlkit.Q("page", "3", "active", true, "extra", "x"))
	require.NoError(t, err)
	assert.Equal(t, "/users?page=3&active=true&extra=x", out)

	_, err = leaf.Query(urlkit.Q("page", "three"))
	require.Error(t, err)
	assert.True(t, urlkit.IsInvalidQuery(err))
	assert.Equal(t, 1, logger.count("error"))

	_, err = leaf.Query(urlkit.Q("active", "yes"))
	assert.True(t, urlkit.IsInvalidQuery(err))

	assert.Panics(t, func() { leaf.MustQuery(urlkit.Q("page", true)) })
}

func TestLeaf_QueryErrorCarriesDetails(t *testing.T) {
	leaf := urlkit.New().
		Add("/users", urlkit.Coerced(urlkit.Fields{"page": urlkit.FieldNumber})).
		MustRoute("users")

	_, err := leaf.Query(urlkit.Q("page", "x"))
	require.Error(t, err)

	var ge *goerrors.Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, goerrors.CategoryValidation, ge.Category)
	assert.Equal(t, urlkit.TextCodeInvalidQuery, ge.TextCode)
	assert.Equal(t, urlkit.ErrInvalidQueryMessage, ge.Message)
	require.Len(t, ge.ValidationErrors, 1)
	assert.Equal(t, "page", ge.ValidationErrors[0].Field)
}

func TestLeaf_ParseCoercedDefaults(t *testing.T) {
	leaf := urlkit.New().
		Add("/users", urlkit.Coerced(urlkit.Fields{
			"page":   urlkit.FieldNumber,
			"active": urlkit.FieldBoolean,
			"q":      urlkit.FieldString,
		})).
		MustRoute("users")

	got := leaf.Parse(urlkit.FromQueryString("?active=true&unknown=1"))
	assert.Equal(t, urlkit.Values{
		"page":   float64(0),
		"active": true,
		"q":      "",
	}, got)
}

func TestLeaf_ParseCoercedInvalidNumber(t *testing.T) {
	logger := &captureLogger{}
	leaf := urlkit.New(urlkit.Config{Logger: logger}).
		Add("/users", urlkit.Coerced(urlkit.Fields{"page": urlkit.FieldNumber, "active": urlkit.FieldBoolean})).
		MustRoute("users")

	got := leaf.Parse(urlkit.FromQueryString("page=abc&active=1"))
	assert.Equal(t, float64(0), got["page"])
	assert.Equal(t, false, got["active"])
	assert.Equal(t, 1, logger.count("debug"))
}

func TestLeaf_ParseWithoutShapeReturnsRawStrings(t *testing.T) {
	leaf := urlkit.New().Add("/raw").MustRoute("raw")

	got := leaf.Parse(urlkit.FromQueryString("a=1&b=true&a=2&c="))
	assert.Equal(t, urlkit.Values{"a": "2", "b": "true", "c": ""}, got)
}

func TestLeaf_RoundTrip(t *testing.T) {
	leaf := urlkit.New(urlkit.Config{Prefix: "/app"}).
		Add("/search", urlkit.Coerced(urlkit.Fields{
			"q":      urlkit.FieldString,
			"page":   urlkit.FieldNumber,
			"ratio":  urlkit.FieldNumber,
			"strict": urlkit.FieldBoolean,
		})).
		MustRoute("search")

	in := urlkit.Q("q", "a&b c/d?", "page", 7, "ratio", 0.5, "strict", true)
	out, err := leaf.Query(in)
	require.NoError(t, err)

	got := leaf.Parse(urlkit.FromQueryString(out))
	assert.Equal(t, urlkit.Values{
		"q":      "a&b c/d?",
		"page":   float64(7),
		"ratio":  0.5,
		"strict": true,
	}, got)
}

func TestLeaf_ParseUsesHook(t *testing.T) {
	b := urlkit.New(urlkit.Config{
		SearchParams: urlkit.StaticHook(urlkit.FromQueryString("page=5")),
	}).Add("/users", urlkit.Coerced(urlkit.Fields{"page": urlkit.FieldNumber}))

	leaf := b.MustRoute("users")
	assert.Equal(t, float64(5), leaf.Parse()["page"])

	b.SetSearchParamsHook(func() urlkit.QuerySource {
		return urlkit.FromQueryString("page=9")
	})
	assert.Equal(t, float64(9), leaf.Parse()["page"])

	// an explicit source wins over the hook
	assert.Equal(t, float64(1), leaf.Parse(urlkit.FromQueryString("page=1"))["page"])

	// nil sources are skipped
	assert.Equal(t, float64(9), leaf.Parse(nil)["page"])
}

func TestLeaf_ParseDefaultHookIsEmpty(t *testing.T) {
	leaf := urlkit.New().Add("/raw").MustRoute("raw")
	assert.Equal(t, urlkit.Values{}, leaf.Parse())

	b := urlkit.New().Add("/raw")
	b.SetSearchParamsHook(func() urlkit.QuerySource { return nil })
	assert.Equal(t, urlkit.Values{}, b.MustRoute("raw").Parse())
}

func TestBuilder_ShapeRegistry(t *testing.T) {
	shape := urlkit.Coerced(urlkit.Fields{"page": urlkit.FieldNumber})
	b := urlkit.New(urlkit.Config{Prefix: "/app"}).
		Add("/users", shape).
		Add("/about")

	s, ok := b.ShapeFor("/app/users")
	require.True(t, ok)
	assert.Equal(t, urlkit.ShapeCoerced, s.Kind())
	assert.Equal(t, urlkit.Fields{"page": urlkit.FieldNumber}, s.Fields())

	s, ok = b.ShapeFor("/app/about")
	require.True(t, ok)
	assert.Equal(t, urlkit.ShapeNone, s.Kind())

	_, ok = b.ShapeFor("/missing")
	assert.False(t, ok)
}

func TestBuilder_RedeclaringPathReplacesLeafOnly(t *testing.T) {
	b := urlkit.New().
		Add("/users/list").
		Add("/users").
		Add("/users", urlkit.Coerced(urlkit.Fields{"page": urlkit.FieldNumber}))

	users := b.Routes().Child("users")
	assert.Equal(t, urlkit.ShapeCoerced, users.Leaf().Shape().Kind())
	assert.Equal(t, "/users/list", users.Child("list").Get())
}

func TestBuilder_ReturnsSameInstance(t *testing.T) {
	b := urlkit.New()
	assert.Same(t, b, b.Add("/a"))
	assert.Same(t, b, b.Use("x", urlkit.New().Add("/y")))
	assert.Same(t, b, b.SetSearchParamsHook(nil))
}
