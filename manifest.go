package urlkit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

// Format identifies a manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Manifest declares a builder's routes and mounts as data.
//
//	prefix: /dashboard
//	routes:
//	  - path: /users
//	    query: {page: number, q: string}
//	mounts:
//	  - name: blog
//	    child:
//	      prefix: /blog-api
//	      routes:
//	        - path: /posts
type Manifest struct {
	Prefix string      `json:"prefix" yaml:"prefix" toml:"prefix"`
	Name   string      `json:"name" yaml:"name" toml:"name"`
	Routes []RouteSpec `json:"routes" yaml:"routes" toml:"routes"`
	Mounts []MountSpec `json:"mounts" yaml:"mounts" toml:"mounts"`
}

// RouteSpec declares one route. Query maps field names to "string",
// "number" or "boolean"; Schema holds a JSON Schema document. At most one
// of them may be set.
type RouteSpec struct {
	Path   string            `json:"path" yaml:"path" toml:"path"`
	Query  map[string]string `json:"query" yaml:"query" toml:"query"`
	Schema string            `json:"schema" yaml:"schema" toml:"schema"`
}

// MountSpec mounts a nested manifest under Name.
type MountSpec struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Child Manifest `json:"child" yaml:"child" toml:"child"`
}

// LoadManifest decodes a manifest.
func LoadManifest(data []byte, format Format) (*Manifest, error) {
	m := &Manifest{}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, m)
	case FormatTOML:
		err = toml.Unmarshal(data, m)
	case FormatJSON:
		err = json.Unmarshal(data, m)
	default:
		return nil, newManifestError(fmt.Sprintf("unsupported manifest format %q", format), nil, nil)
	}

	if err != nil {
		return nil, newManifestError("failed to decode manifest", err, map[string]any{
			"format": string(format),
		})
	}
	return m, nil
}

// LoadManifestFile reads a manifest, picking the format from the extension.
func LoadManifestFile(path string) (*Manifest, error) {
	format, err := formatFromExt(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newManifestError("failed to read manifest", err, map[string]any{
			"file": path,
		})
	}
	return LoadManifest(data, format)
}

// LoadManifestFiles loads every file and merges them in order, see Merge.
func LoadManifestFiles(paths ...string) (*Manifest, error) {
	out := &Manifest{}
	for _, path := range paths {
		m, err := LoadManifestFile(path)
		if err != nil {
			return nil, err
		}
		if err := out.Merge(m); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Merge applies overlay on top of m. A non empty prefix or name in the
// overlay wins, routes and mounts are appended.
func (m *Manifest) Merge(overlay *Manifest) error {
	if overlay == nil {
		return nil
	}
	if err := mergo.Merge(m, *overlay, mergo.WithOverride, mergo.WithAppendSlice); err != nil {
		return newManifestError("failed to merge manifest", err, nil)
	}
	return nil
}

func formatFromExt(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", newManifestError(fmt.Sprintf("unknown manifest extension for %q", path), nil, nil)
}

// Build creates a builder from the manifest. The manifest's prefix and
// name override the ones in config; mounts are built recursively and
// share config's hook and logger.
func (m *Manifest) Build(config ...Config) (*Builder, error) {
	cfg := configDefault(config...)
	if m.Prefix != "" {
		cfg.Prefix = m.Prefix
	}
	if m.Name != "" {
		cfg.Name = m.Name
	}

	b := New(cfg)

	for i, r := range m.Routes {
		shape, err := r.shape()
		if err != nil {
			return nil, newManifestError("invalid route declaration", err, map[string]any{
				"index": i,
				"path":  r.Path,
			})
		}
		b.Add(r.Path, shape)
	}

	for _, mount := range m.Mounts {
		childCfg := cfg
		childCfg.Prefix = ""
		childCfg.Name = ""

		child, err := mount.Child.Build(childCfg)
		if err != nil {
			return nil, err
		}
		b.Use(mount.Name, child)
	}

	return b, nil
}

func (r RouteSpec) shape() (Shape, error) {
	if len(r.Query) > 0 && r.Schema != "" {
		return NoShape(), fmt.Errorf("route %q declares both query and schema", r.Path)
	}

	if r.Schema != "" {
		v, err := JSONSchema(r.Schema)
		if err != nil {
			return NoShape(), err
		}
		return Validated(v), nil
	}

	if len(r.Query) > 0 {
		keys := make([]string, 0, len(r.Query))
		for k := range r.Query {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fields := make(Fields, len(keys))
		for _, k := range keys {
			t, err := ParseFieldType(r.Query[k])
			if err != nil {
				return NoShape(), fmt.Errorf("field %q: %w", k, err)
			}
			fields[k] = t
		}
		return Coerced(fields), nil
	}

	return NoShape(), nil
}
