package urlkit

import (
	"errors"
	"fmt"
	"math"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const schemaResource = "query.json"

// JSONSchemaValidator validates query values against a JSON Schema.
//
// Query strings carry no types, so string values are first converted to
// the type declared for their property ("integer", "number", "boolean").
type JSONSchemaValidator struct {
	schema *jsonschema.Schema
	types  map[string]string
}

// JSONSchema compiles a JSON Schema document describing the query object.
func JSONSchema(doc string) (*JSONSchemaValidator, error) {
	var raw any
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return nil, fmt.Errorf("invalid schema JSON: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, raw); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &JSONSchemaValidator{
		schema: schema,
		types:  propertyTypes(raw),
	}, nil
}

// MustJSONSchema is like JSONSchema but panics on error.
func MustJSONSchema(doc string) *JSONSchemaValidator {
	v, err := JSONSchema(doc)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate implements Validator.
func (v *JSONSchemaValidator) Validate(values map[string]any) (map[string]any, error) {
	data, err := v.normalize(values)
	if err != nil {
		return nil, err
	}

	if err := v.schema.Validate(data); err != nil {
		return nil, schemaFieldErrors(err)
	}
	return data, nil
}

// ValidatePartial drops the properties that failed validation and
// validates what is left.
func (v *JSONSchemaValidator) ValidatePartial(values map[string]any) (map[string]any, error) {
	data, err := v.normalize(values)
	if err != nil {
		return nil, err
	}

	verr := v.schema.Validate(data)
	if verr == nil {
		return data, nil
	}

	failed := failedFields(schemaFieldErrors(verr))
	if len(failed) == 0 {
		return nil, verr
	}

	for field := range failed {
		top, _, _ := strings.Cut(field, ".")
		delete(data, top)
	}

	if err := v.schema.Validate(data); err != nil {
		return nil, schemaFieldErrors(err)
	}
	return data, nil
}

// normalize converts values to JSON types and applies declared
// property types to string values.
func (v *JSONSchemaValidator) normalize(values map[string]any) (map[string]any, error) {
	buf, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query values: %w", err)
	}

	data := make(map[string]any, len(values))
	if err := json.Unmarshal(buf, &data); err != nil {
		return nil, fmt.Errorf("failed to decode query values: %w", err)
	}

	for key, val := range data {
		data[key] = coerceJSONType(val, v.types[key])
	}
	return data, nil
}

func coerceJSONType(val any, typ string) any {
	switch x := val.(type) {
	case string:
		switch typ {
		case "integer", "number":
			n, ok := coerceField(x, FieldNumber)
			if !ok {
				return x
			}
			return coerceJSONType(n, typ)
		case "boolean":
			if x == "true" || x == "false" {
				return x == "true"
			}
		}
		return x
	case float64:
		if typ == "integer" && x == math.Trunc(x) && !math.IsInf(x, 0) {
			return int64(x)
		}
		return x
	default:
		return val
	}
}

// propertyTypes reads the declared type of each top level property.
func propertyTypes(doc any) map[string]string {
	out := make(map[string]string)

	root, ok := doc.(map[string]any)
	if !ok {
		return out
	}
	props, ok := root["properties"].(map[string]any)
	if !ok {
		return out
	}

	for name, p := range props {
		prop, ok := p.(map[string]any)
		if !ok {
			continue
		}
		switch t := prop["type"].(type) {
		case string:
			out[name] = t
		case []any:
			for _, item := range t {
				if s, ok := item.(string); ok && s != "null" {
					out[name] = s
					break
				}
			}
		}
	}
	return out
}

// schemaFieldErrors flattens a jsonschema error tree into FieldErrors.
func schemaFieldErrors(err error) error {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}

	out := &FieldErrors{}
	collectSchemaErrors(verr, out)
	if len(out.Fields) == 0 {
		out.add("", verr.Error(), nil)
	}
	return out
}

func collectSchemaErrors(verr *jsonschema.ValidationError, out *FieldErrors) {
	if verr == nil {
		return
	}

	if len(verr.Causes) == 0 {
		field := strings.Join(verr.InstanceLocation, ".")
		out.add(field, verr.Error(), nil)
		return
	}

	for _, cause := range verr.Causes {
		collectSchemaErrors(cause, out)
	}
}
