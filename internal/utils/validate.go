package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"gadget-shop-be/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks struct tags and reports the first failure as ErrInvalidInput.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperror.Wrap(apperror.ErrInvalidInput, describe(verrs[0]))
	}
	return apperror.Wrap(apperror.ErrInvalidInput, err.Error())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "uuid", "uuid4":
		return fe.Field() + " must be a valid id"
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// ExtraFields returns the members of the JSON object data whose keys are not
// in known. Storefront records carry arbitrary client fields next to the
// typed ones.
func ExtraFields(data []byte, known ...string) (map[string]interface{}, error) {
	var raw map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	for _, k := range known {
		delete(raw, k)
	}
	return raw, nil
}

// MergeFields flattens typed fields over extra ones into one JSON object.
func MergeFields(extra map[string]interface{}, typed map[string]interface{}) ([]byte, error) {
	out := make(map[string]interface{}, len(extra)+len(typed))
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range typed {
		out[k] = v
	}
	return json.Marshal(out)
}
