// Package validation wires go-playground/validator with English messages
// and JSON field names, plus the custom tags used by registration forms.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/dmitrijs2005/examdesk/internal/common"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	phoneTag   = "phone"
	phoneText  = "{0} must be a 10 digit mobile number"
	phoneRegex = regexp.MustCompile(`^[6-9]\d{9}$`)

	identifierTag  = "identifier"
	identifierText = "{0} must be a mobile number or an email address"

	requiredTag  = "required"
	requiredText = "{0} is required"
)

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(phoneTag, phoneValidation)
	RegisterCustomTranslation(phoneTag, phoneText)

	_ = Validate.RegisterValidation(identifierTag, identifierValidation)
	RegisterCustomTranslation(identifierTag, identifierText)

	RegisterCustomTranslation(requiredTag, requiredText, true)
}

// RegisterCustomTranslation registers a translation for tag. "{0}" in text is
// replaced with the JSON field name.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// FieldError is a single field-level message.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Error is returned by Struct. It matches common.ErrValidation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return common.ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error)
	}
	return common.ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error { return common.ErrValidation }

// Struct validates v and converts validator errors into *Error with fields
// sorted by name.
func Struct(v any) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Error: fe.Translate(Translator)})
	}
	sort.Slice(out.Fields, func(i, j int) bool { return out.Fields[i].Field < out.Fields[j].Field })
	return out
}

// IsPhone reports whether s looks like a 10 digit mobile number.
func IsPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// IsEmail reports whether s is a syntactically valid email.
func IsEmail(s string) bool {
	return Validate.Var(s, "email") == nil
}

func phoneValidation(fl validator.FieldLevel) bool {
	return IsPhone(fl.Field().String())
}

func identifierValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return IsPhone(s) || IsEmail(s)
}

// Fieldf builds an *Error for one field.
func Fieldf(field, format string, args ...any) *Error {
	return &Error{Fields: []FieldError{{Field: field, Error: fmt.Sprintf(format, args...)}}}
}
