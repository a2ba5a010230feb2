package urlkit

import (
	"errors"
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors returned by this package.
const (
	TextCodeInvalidQuery    = "INVALID_QUERY_PARAMS"
	TextCodeRouteNotFound   = "ROUTE_NOT_FOUND"
	TextCodeInvalidManifest = "INVALID_MANIFEST"
)

// ErrInvalidQueryMessage is the user facing message of query validation errors.
const ErrInvalidQueryMessage = "invalid query parameters"

func newInvalidQueryError(path string, source error) error {
	fields := fieldErrorsFrom(source)

	err := goerrors.Wrap(source, goerrors.CategoryValidation, ErrInvalidQueryMessage).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeInvalidQuery).
		WithMetadata(map[string]any{
			"path": path,
		})
	if len(fields) > 0 {
		err.ValidationErrors = fields
	}
	return err
}

func newRouteNotFoundError(keys []string) error {
	message := fmt.Sprintf("route not found: %v", keys)
	return goerrors.New(message, goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(TextCodeRouteNotFound).
		WithMetadata(map[string]any{
			"keys": keys,
		})
}

func newManifestError(message string, source error, metadata map[string]any) error {
	var err *goerrors.Error
	if source != nil {
		err = goerrors.Wrap(source, goerrors.CategoryBadInput, message)
	} else {
		err = goerrors.New(message, goerrors.CategoryBadInput)
	}
	err = err.WithTextCode(TextCodeInvalidManifest)
	if metadata != nil {
		err = err.WithMetadata(metadata)
	}
	return err
}

// IsInvalidQuery reports whether err was returned for query parameters
// rejected by a route's shape.
func IsInvalidQuery(err error) bool {
	return hasTextCode(err, TextCodeInvalidQuery)
}

// IsRouteNotFound reports whether err was returned by a failed route lookup.
func IsRouteNotFound(err error) bool {
	return hasTextCode(err, TextCodeRouteNotFound)
}

func hasTextCode(err error, code string) bool {
	var e *goerrors.Error
	if errors.As(err, &e) {
		return e.TextCode == code
	}
	return false
}

// fieldErrorsFrom flattens validator specific errors into go-errors field errors.
func fieldErrorsFrom(err error) goerrors.ValidationErrors {
	var fe *FieldErrors
	if errors.As(err, &fe) {
		out := make(goerrors.ValidationErrors, 0, len(fe.Fields))
		for _, f := range fe.Fields {
			out = append(out, goerrors.FieldError{
				Field:   f.Field,
				Message: f.Message,
				Value:   f.Value,
			})
		}
		return out
	}
	return nil
}

// FieldError describes a single rejected query parameter.
type FieldError struct {
	Field   string
	Message string
	Value   any
}

// FieldErrors is returned by the validators in this package.
type FieldErrors struct {
	Fields []FieldError
}

func (e *FieldErrors) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	if len(e.Fields) == 1 {
		return fmt.Sprintf("%s: %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("%s: %s (and %d more)", e.Fields[0].Field, e.Fields[0].Message, len(e.Fields)-1)
}

func (e *FieldErrors) add(field, message string, value any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message, Value: value})
}

func (e *FieldErrors) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// failedFields returns the set of field names in err, if it carries any.
func failedFields(err error) map[string]bool {
	var fe *FieldErrors
	if !errors.As(err, &fe) {
		return nil
	}
	out := make(map[string]bool, len(fe.Fields))
	for _, f := range fe.Fields {
		if f.Field != "" {
			out[f.Field] = true
		}
	}
	return out
}
