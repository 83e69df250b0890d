// Package inputval validates form input structs with struct tags and turns
// failures into sentences suitable for a form error banner.
//
//	type courseForm struct {
//	    Title string  `validate:"required,max=200" label:"Title"`
//	    Price float64 `validate:"gte=0" label:"Price"`
//	}
//	if res := inputval.Validate(form); res.HasErrors() { ... res.First() ... }
package inputval

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Result collects the failures of one Validate call.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return r != nil && len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Field returns the message for a struct field name, or "".
func (r *Result) Field(name string) string {
	if r == nil {
		return ""
	}
	for _, e := range r.Errors {
		if e.Field == name {
			return e.Message
		}
	}
	return ""
}

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			return f.Name
		})
		// Replace the built-in email rule with the stricter check below.
		_ = v.RegisterValidation("email", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
			return IsValidHTTPURL(fl.Field().String())
		})
	})
	return v
}

// Validate runs the `validate` tags on s. s must be a struct or pointer to
// struct; anything else yields a single generic error.
func Validate(s any) *Result {
	res := &Result{}
	err := instance().Struct(s)
	if err == nil {
		return res
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Errors = append(res.Errors, FieldError{Message: "Invalid input."})
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.StructField(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return res
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required", "required_if", "required_with":
		return label + " is required."
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more.", label, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be %s or less.", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", label, fe.Param())
	case "email":
		return "A valid email address is required."
	case "httpurl":
		return label + " must be a valid http or https URL."
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.Join(strings.Fields(fe.Param()), ", "))
	case "eqfield":
		return label + " does not match."
	}
	return label + " is invalid."
}

// IsValidHTTPURL reports whether s is an absolute http or https URL.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
