package urlkit

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// ShapeKind tags the variant held by a Shape.
type ShapeKind int

const (
	// ShapeNone performs no validation, parse returns raw strings.
	ShapeNone ShapeKind = iota
	// ShapeValidated delegates to a structural Validator.
	ShapeValidated
	// ShapeCoerced converts declared fields to primitive types.
	ShapeCoerced
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeValidated:
		return "validated"
	case ShapeCoerced:
		return "coerced"
	default:
		return "none"
	}
}

// FieldType is the primitive type of a coerced query field.
type FieldType int

const (
	FieldString FieldType = iota
	FieldNumber
	FieldBoolean
)

func (t FieldType) String() string {
	switch t {
	case FieldNumber:
		return "number"
	case FieldBoolean:
		return "boolean"
	default:
		return "string"
	}
}

// zero is the value a missing field receives on parse.
func (t FieldType) zero() any {
	switch t {
	case FieldNumber:
		return float64(0)
	case FieldBoolean:
		return false
	default:
		return ""
	}
}

// ParseFieldType maps "string", "number" and "boolean" to a FieldType.
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string", "":
		return FieldString, nil
	case "number":
		return FieldNumber, nil
	case "boolean", "bool":
		return FieldBoolean, nil
	}
	return FieldString, fmt.Errorf("unknown query field type %q", s)
}

// Fields declares the primitive type of each query field.
type Fields map[string]FieldType

// Validator checks a set of query values and returns the typed result.
type Validator interface {
	Validate(values map[string]any) (map[string]any, error)
}

// PartialValidator is implemented by validators that can return a best
// effort result for input that fails strict validation.
type PartialValidator interface {
	Validator
	ValidatePartial(values map[string]any) (map[string]any, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(values map[string]any) (map[string]any, error)

func (f ValidatorFunc) Validate(values map[string]any) (map[string]any, error) {
	return f(values)
}

// Shape is the declared expectation for a route's query parameters.
// The zero value is ShapeNone.
type Shape struct {
	kind      ShapeKind
	validator Validator
	fields    Fields
}

// NoShape returns a Shape without constraints.
func NoShape() Shape {
	return Shape{kind: ShapeNone}
}

// Validated returns a Shape backed by v. A nil validator yields NoShape.
func Validated(v Validator) Shape {
	if v == nil {
		return NoShape()
	}
	return Shape{kind: ShapeValidated, validator: v}
}

// Coerced returns a Shape that converts each declared field to its type.
func Coerced(fields Fields) Shape {
	cp := make(Fields, len(fields))
	for k, t := range fields {
		cp[k] = t
	}
	return Shape{kind: ShapeCoerced, fields: cp}
}

// Kind reports the variant.
func (s Shape) Kind() ShapeKind {
	return s.kind
}

// Validator returns the validator of a ShapeValidated shape.
func (s Shape) Validator() Validator {
	return s.validator
}

// Fields returns a copy of the fields of a ShapeCoerced shape.
func (s Shape) Fields() Fields {
	if s.fields == nil {
		return nil
	}
	cp := make(Fields, len(s.fields))
	for k, t := range s.fields {
		cp[k] = t
	}
	return cp
}

// check validates caller supplied params before they are encoded.
func (s Shape) check(params Params) error {
	switch s.kind {
	case ShapeValidated:
		_, err := s.validator.Validate(params.Map())
		return err
	case ShapeCoerced:
		errs := &FieldErrors{}
		for _, p := range params {
			t, ok := s.fields[p.Key]
			if !ok {
				continue
			}
			if msg := checkFieldValue(p.Value, t); msg != "" {
				errs.add(p.Key, msg, p.Value)
			}
		}
		return errs.orNil()
	default:
		return nil
	}
}

func checkFieldValue(v any, t FieldType) string {
	switch t {
	case FieldNumber:
		switch x := v.(type) {
		case bool, nil:
			return "must be a number"
		case string:
			if _, ok := coerceField(x, FieldNumber); !ok {
				return "must be a number"
			}
			return ""
		}
		if _, err := cast.ToFloat64E(v); err != nil {
			return "must be a number"
		}
	case FieldBoolean:
		switch x := v.(type) {
		case bool:
			return ""
		case string:
			if x == "true" || x == "false" {
				return ""
			}
		}
		return "must be a boolean"
	}
	return ""
}

// decode reads src according to the shape. It never fails: problems are
// logged and replaced by the best available default.
func (s Shape) decode(src QuerySource, path string, logger Logger) Values {
	switch s.kind {
	case ShapeValidated:
		raw := rawValues(src)
		out, err := s.validator.Validate(raw)
		if err == nil {
			return Values(out).orEmpty()
		}
		logger.Error("failed to parse search params for %s: %v", path, err)

		pv, ok := s.validator.(PartialValidator)
		if !ok {
			return Values{}
		}
		out, err = pv.ValidatePartial(raw)
		if err != nil {
			logger.Debug("partial parse of search params for %s failed: %v", path, err)
			return Values{}
		}
		return Values(out).orEmpty()

	case ShapeCoerced:
		out := make(Values, len(s.fields))
		for key, t := range s.fields {
			raw, ok := src.Lookup(key)
			if !ok {
				out[key] = t.zero()
				continue
			}
			v, valid := coerceField(raw, t)
			if !valid && t == FieldNumber {
				logger.Debug("search param %q=%q for %s is not a number, using 0", key, raw, path)
			}
			out[key] = v
		}
		return out

	default:
		return Values(rawValues(src))
	}
}
