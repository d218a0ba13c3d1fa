package forecast

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report failures under the raw document key so paths match Bind's.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		key := strings.SplitN(f.Tag.Get(srcTag), ",", 2)[0]
		if key == "" || key == "-" {
			return f.Name
		}
		return key
	})
	return v
}

// Validate checks the domain constraints declared in `validate` tags.
// The first violation is returned as an ErrSchemaValidation error.
func Validate(provider, path string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return Invalid(provider, JoinPath(path, trimRoot(fe.Namespace())),
			"value %v violates %q", fe.Value(), constraint(fe))
	}
	return &Error{Kind: ErrSchemaValidation, Provider: provider, Path: path, Err: err}
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// trimRoot drops the struct type name validator puts at the head of a namespace.
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
