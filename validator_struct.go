package urlkit

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// StructValidator validates query values by decoding them into T and
// checking its `validate` tags. Fields are matched by their `query` tag:
//
//	type Search struct {
//		Term string `query:"q" validate:"required"`
//		Page int    `query:"page" validate:"gte=1"`
//	}
//
//	urlkit.Validated(urlkit.Struct[Search]())
type StructValidator[T any] struct {
	validate *validator.Validate
}

// Struct returns a StructValidator for T.
func Struct[T any]() *StructValidator[T] {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get(queryTag), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &StructValidator[T]{validate: v}
}

// Validate implements Validator.
func (s *StructValidator[T]) Validate(values map[string]any) (map[string]any, error) {
	var out T
	if err := decodeInto(values, &out); err != nil {
		_, _, fieldErrs := decodeLenient[T](values)
		if fieldErrs.orNil() != nil {
			return nil, fieldErrs
		}
		return nil, err
	}

	if err := s.validate.Struct(out); err != nil {
		return nil, structFieldErrors(err)
	}
	return structToMap(out)
}

// ValidatePartial keeps the fields that decode and pass validation.
func (s *StructValidator[T]) ValidatePartial(values map[string]any) (map[string]any, error) {
	out, _, _ := decodeLenient[T](values)

	failed := map[string]bool{}
	if err := s.validate.Struct(out); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil, err
		}
		failed = failedFields(structFieldErrors(err))
	}

	result, err := structToMap(out)
	if err != nil {
		return nil, err
	}
	for field := range failed {
		delete(result, field)
	}
	return result, nil
}

// decodeLenient decodes the keys of values one at a time, skipping the
// ones that cannot be converted to their field type.
func decodeLenient[T any](values map[string]any) (T, map[string]any, *FieldErrors) {
	var out T
	kept := make(map[string]any, len(values))
	errs := &FieldErrors{}

	for key, val := range values {
		var probe T
		if err := decodeInto(map[string]any{key: val}, &probe); err != nil {
			errs.add(key, fmt.Sprintf("cannot decode: %v", err), val)
			continue
		}
		kept[key] = val
	}

	if err := decodeInto(kept, &out); err != nil {
		var zero T
		return zero, map[string]any{}, errs
	}
	return out, kept, errs
}

func structToMap(v any) (map[string]any, error) {
	out := map[string]any{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: queryTag,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(v); err != nil {
		return nil, err
	}
	return out, nil
}

func structFieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &FieldErrors{}
	for _, fe := range verrs {
		out.add(fe.Field(), fmt.Sprintf("failed on the '%s' tag", fe.Tag()), fe.Value())
	}
	return out
}
