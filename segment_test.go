package urlkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegments(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "empty", path: "", want: nil},
		{name: "root", path: "/", want: nil},
		{name: "single", path: "/users", want: []string{"users"}},
		{name: "no leading slash", path: "users/settings", want: []string{"users", "settings"}},
		{name: "repeated slashes", path: "//a//b/", want: []string{"a", "b"}},
		{name: "dash case kept", path: "/user-profile/edit", want: []string{"user-profile", "edit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segments(tt.path))
		})
	}
}

func TestSegmentKey(t *testing.T) {
	tests := map[string]string{
		"users":              "users",
		"user-profile":       "userProfile",
		"a-b-c":              "aBC",
		"account-2fa":        "account-2fa",
		"v-2":                "v-2",
		"a-B":                "a-B",
		"trailing-":          "trailing-",
		"double--dash":       "double-Dash",
		"keepCase-and-dash":  "keepCaseAndDash",
		"API-v2":             "APIV2",
		"ünicode-ärger":      "ünicode-ärger",
		"ünicode-wert":       "ünicodeWert",
		"":                   "",
		"-leading":           "Leading",
		"snake_case-segment": "snake_caseSegment",
	}

	for in, want := range tests {
		assert.Equal(t, want, SegmentKey(in), "SegmentKey(%q)", in)
	}
}

func TestSegmentKeys(t *testing.T) {
	assert.Equal(t, []string{"settings", "userProfile"}, SegmentKeys("/settings/user-profile/"))
	assert.Empty(t, SegmentKeys("/"))
}

func TestNormalizePrefix(t *testing.T) {
	assert.Equal(t, "", normalizePrefix(""))
	assert.Equal(t, "/blog", normalizePrefix("blog"))
	assert.Equal(t, "/blog", normalizePrefix("/blog/"))
	assert.Equal(t, "/blog/api", normalizePrefix("blog/api//"))
	assert.Equal(t, "", normalizePrefix("/"))
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/", normalizePath(""))
	assert.Equal(t, "/", normalizePath("/"))
	assert.Equal(t, "/users", normalizePath("users"))
	assert.Equal(t, "//a//b/", normalizePath("//a//b/"))
}
