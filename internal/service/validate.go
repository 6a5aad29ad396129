package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// validate checks the `binding` tags declared on the models, reporting fields
// by their JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	return v
}

// decodeDocument overlays a JSON object onto dst. Decoding into an already
// populated value keeps the fields the body does not mention.
func decodeDocument(collection string, body []byte, dst any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return &ValidationError{Collection: collection, Reason: "request body must be a JSON object"}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		var (
			typeErr   *json.UnmarshalTypeError
			syntaxErr *json.SyntaxError
		)
		switch {
		case errors.As(err, &typeErr):
			return &ValidationError{
				Collection: collection,
				Reason:     fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type),
			}
		case errors.As(err, &syntaxErr):
			return &ValidationError{Collection: collection, Reason: "malformed JSON"}
		default:
			return &ValidationError{Collection: collection, Reason: err.Error()}
		}
	}
	return nil
}

// validateDocument runs the field rules and folds every failure into one ValidationError.
func validateDocument(collection string, doc any) error {
	err := validate.Struct(doc)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %s document: %w", collection, err)
	}
	reasons := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		reasons = append(reasons, describeFieldError(fe))
	}
	return &ValidationError{Collection: collection, Reason: strings.Join(reasons, ", ")}
}

func describeFieldError(fe validator.FieldError) string {
	// Namespace starts with the Go type name, e.g. "Roadmap.steps[0].title".
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s rule", field, fe.Tag())
	}
}

// validID reports whether id can name a stored document. Anything else is
// treated as not found without asking the store.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
