package urlkit

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// Values is the result of parsing a query source.
type Values map[string]any

func (v Values) orEmpty() Values {
	if v == nil {
		return Values{}
	}
	return v
}

// Has reports whether key is present.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// String returns the value of key converted to a string.
func (v Values) String(key string) string {
	return cast.ToString(v[key])
}

// Number returns the value of key converted to a float64.
func (v Values) Number(key string) float64 {
	return cast.ToFloat64(v[key])
}

// Int returns the value of key converted to an int.
func (v Values) Int(key string) int {
	return cast.ToInt(v[key])
}

// Bool returns the value of key converted to a bool.
func (v Values) Bool(key string) bool {
	return cast.ToBool(v[key])
}

// Decode copies values into a struct of type T, matching fields by their
// `query` tag. String values are converted to the field types.
func Decode[T any](values Values) (T, error) {
	var out T
	if err := decodeInto(map[string]any(values), &out); err != nil {
		return out, err
	}
	return out, nil
}

func decodeInto(input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          queryTag,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

const queryTag = "query"
