package validator

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate

	messagesMu sync.RWMutex
	messages   = map[string]MessageFunc{}
)

// MessageFunc renders a human readable message for a failed rule.
type MessageFunc func(err ValidationError) string

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param"`
}

// Message renders the failure using a registered message for the tag, or the built-in wording.
func (v ValidationError) Message() string {
	messagesMu.RLock()
	fn, ok := messages[v.Tag]
	messagesMu.RUnlock()
	if ok {
		return fn(v)
	}

	switch v.Tag {
	case "required":
		return fmt.Sprintf("%s is required", v.Field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", v.Field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", v.Field, v.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", v.Field, v.Param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", v.Field, v.Param)
	case "eqfield":
		return fmt.Sprintf("%s must match %s", v.Field, v.Param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", v.Field, strings.ReplaceAll(v.Param, " ", ","))
	}
	if v.Param != "" {
		return fmt.Sprintf("%s failed validation: %s=%s", v.Field, v.Tag, v.Param)
	}
	return fmt.Sprintf("%s failed validation: %s", v.Field, v.Tag)
}

// ValidationErrors collects multiple validation failures.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}

	parts := make([]string, len(v))
	for i, err := range v {
		if err.Param != "" {
			parts[i] = err.Field + " failed on " + err.Tag + "=" + err.Param
		} else {
			parts[i] = err.Field + " failed on " + err.Tag
		}
	}
	return strings.Join(parts, "; ")
}

// Fields groups rendered messages by field name.
func (v ValidationErrors) Fields() map[string][]string {
	if len(v) == 0 {
		return nil
	}
	out := make(map[string][]string, len(v))
	for _, failure := range v {
		out[failure.Field] = append(out[failure.Field], failure.Message())
	}
	return out
}

// ValidateStruct validates a struct using registered rules.
func ValidateStruct(s interface{}) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	if ve, ok := err.(validator.ValidationErrors); ok {
		failures := make(ValidationErrors, 0, len(ve))
		for _, fe := range ve {
			failures = append(failures, ValidationError{
				Field: fe.Field(),
				Tag:   fe.Tag(),
				Param: fe.Param(),
			})
		}
		return failures
	}

	return err
}

// RegisterValidation exposes underlying validator custom rules.
func RegisterValidation(tag string, fn validator.Func) error {
	return getValidator().RegisterValidation(tag, fn)
}

// RegisterMessage overrides the message rendered for a tag.
func RegisterMessage(tag string, fn MessageFunc) {
	if tag == "" || fn == nil {
		return
	}
	messagesMu.Lock()
	defer messagesMu.Unlock()
	messages[tag] = fn
}

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := fld.Tag.Get("json")
			if name == "" {
				return fld.Name
			}

			comma := strings.Index(name, ",")
			if comma != -1 {
				name = name[:comma]
			}

			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}
