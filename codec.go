package urlkit

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// componentEscaper turns url.QueryEscape output into URI component
// encoding: spaces are %20 and !'()* are kept literal.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s as a single URI component.
func EncodeComponent(s string) string {
	return componentEscaper.Replace(url.QueryEscape(s))
}

// EncodeQuery renders params as key=value pairs joined by "&", in order.
func EncodeQuery(params Params) string {
	if len(params) == 0 {
		return ""
	}

	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(EncodeComponent(p.Key))
		b.WriteByte('=')
		b.WriteString(EncodeComponent(stringify(p.Value)))
	}
	return b.String()
}

// withQuery appends the encoded params to path, or returns path
// untouched when there is nothing to encode.
func withQuery(path string, params Params) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + EncodeQuery(params)
}

// stringify converts a query value with plain string conversion.
// nil is an empty value, not the text "null". Slices and arrays are
// joined with "," the way browsers render them; other types without a
// string conversion fall back to fmt formatting.
func stringify(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	if isList(rv) {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = stringify(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// isList reports slices and arrays, except byte slices which convert as text.
func isList(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Type().Elem().Kind() != reflect.Uint8
	}
	return false
}

// coerceField converts a raw query value to the declared field type.
// The bool reports whether raw was a valid representation.
func coerceField(raw string, t FieldType) (any, bool) {
	switch t {
	case FieldNumber:
		n, ok := parseNumber(strings.TrimSpace(raw))
		if !ok {
			return float64(0), false
		}
		return n, true
	case FieldBoolean:
		return raw == "true", raw == "true" || raw == "false"
	default:
		return raw, true
	}
}

// parseNumber reads decimal numbers and 0x/0o/0b integers. NaN and
// digit separators ("1_000") are rejected.
func parseNumber(s string) (float64, bool) {
	if strings.Contains(s, "_") {
		return 0, false
	}
	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1])) {
		n, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	n, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// rawValues collects every pair of src, later values win.
func rawValues(src QuerySource) map[string]any {
	out := make(map[string]any)
	src.Each(func(key, value string) {
		out[key] = value
	})
	return out
}
