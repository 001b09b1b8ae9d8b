// Package bind decodes and validates request payloads for the HTTP handlers.
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/cristianoliveira/railsql/internal/search"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DefaultMaxBytes caps request bodies.
const DefaultMaxBytes = 1 << 20

// ErrInvalidJSON is returned for bodies that are not a single JSON document.
var ErrInvalidJSON = errors.New("invalid JSON")

// ValidationError is the first failed field of a payload, with a message
// fit for users.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ValidatorSvc holds the validator and its english translator.
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Get returns the validator singleton, initializing it on first use.
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "" {
				tag = fld.Tag.Get("query")
			}
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)
		registerShortMax(v, trans)
		registerBase64(v, trans)
		registerPattern(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Struct validates v and returns a *ValidationError for the first failure.
func Struct(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return fmt.Errorf("validating %T: %w", v, err)
	}
	field, msg := ValidationFieldAndMessage(err)
	return &ValidationError{Field: field, Message: msg}
}

// ParseJSON decodes one JSON document of at most maxBytes into T and
// validates it. maxBytes <= 0 uses DefaultMaxBytes.
func ParseJSON[T any](r *http.Request, maxBytes int64) (T, error) {
	var zero T
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	defer r.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if int64(len(raw)) > maxBytes {
		return zero, fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidJSON, maxBytes)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return zero, fmt.Errorf("%w: empty body", ErrInvalidJSON)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if dec.More() {
		return zero, fmt.Errorf("%w: unexpected trailing data", ErrInvalidJSON)
	}

	if err := Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// ValidationFieldAndMessage returns the first field and its translated message.
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

func registerShortMax(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("max", trans,
		func(ut ut.Translator) error {
			return ut.Add("max", "{0} must be at most {1} characters", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("max", fe.Field(), fe.Param())
			return msg
		},
	)
}

func registerBase64(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("base64", trans,
		func(ut ut.Translator) error {
			return ut.Add("base64", "{0} must be base64 encoded", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("base64", fe.Field())
			return msg
		},
	)
}

// registerPattern adds the "pattern" tag: a substring, a glob or an "re:"
// expression that parses.
func registerPattern(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("pattern", func(fl validator.FieldLevel) bool {
		return search.ValidatePattern(fl.Field().String()) == nil
	})
	_ = v.RegisterTranslation("pattern", trans,
		func(ut ut.Translator) error {
			return ut.Add("pattern", "{0} is invalid: {1}", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			detail := "unparseable"
			if value, ok := fe.Value().(string); ok {
				if err := search.ValidatePattern(value); err != nil {
					detail = err.Error()
				}
			}
			msg, _ := ut.T("pattern", fe.Field(), detail)
			return msg
		},
	)
}
