package urlkit

import "strings"

// Segments splits a declared path into its non empty segments.
// A single leading slash is ignored and empty segments are dropped,
// so "//a//b/" yields ["a", "b"]. The root path yields no segments.
func Segments(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}

	raw := strings.Split(path, "/")
	out := make([]string, 0, len(raw))
	for _, seg := range raw {
		if seg == "" {
			continue
		}
		out = append(out, seg)
	}
	return out
}

// SegmentKey converts a dash-case segment into the key used in the route
// tree. A dash followed by a lower case ASCII letter becomes that letter
// upper-cased, everything else is kept:
//
//	SegmentKey("user-profile") // "userProfile"
//	SegmentKey("v-2")          // "v-2"
func SegmentKey(segment string) string {
	if !strings.Contains(segment, "-") {
		return segment
	}

	var b strings.Builder
	b.Grow(len(segment))

	for i := 0; i < len(segment); i++ {
		c := segment[i]
		if c == '-' && i+1 < len(segment) && isLowerASCII(segment[i+1]) {
			b.WriteByte(segment[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isLowerASCII(c byte) bool {
	return c >= 'a' && c <= 'z'
}

// SegmentKeys maps Segments(path) through SegmentKey.
func SegmentKeys(path string) []string {
	segs := Segments(path)
	for i, s := range segs {
		segs[i] = SegmentKey(s)
	}
	return segs
}

// normalizePrefix returns "" or a prefix that starts with "/" and
// does not end with "/".
func normalizePrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	prefix = strings.TrimRight(prefix, "/")
	return prefix
}

// normalizePath ensures the declared path starts with "/".
// The remaining text is kept as declared.
func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

// mountName trims surrounding slashes from a mount name.
func mountName(name string) string {
	return strings.Trim(name, "/")
}
