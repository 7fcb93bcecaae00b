package datapackage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidDescriptor is returned when a descriptor cannot be parsed or is
// missing required keys.
var ErrInvalidDescriptor = errors.New("invalid datapackage descriptor")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode parses a JSON descriptor from r and checks that every required key
// (resources, resource name/path/schema.fields, field name/type) is present.
func Decode(r io.Reader) (*Descriptor, error) {
	var d Descriptor
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}

	if err := validate.Struct(&d); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDescriptor, describeValidation(err))
	}

	return &d, nil
}

// describeValidation flattens validator errors into a single readable line,
// e.g. "Descriptor.Resources[1].Schema is required".
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Namespace()+" is required")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
