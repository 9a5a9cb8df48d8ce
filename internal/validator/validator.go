package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/Behyna/airtime-topup/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// NonFieldErrors collects problems that belong to the payload as a whole.
const NonFieldErrors = "non_field_errors"

// FieldErrors maps a field's wire name to its messages.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

type IXValidator interface {
	Validator(data any, endpoint string, c *fiber.Ctx) FieldErrors
	Validate(data any) FieldErrors
}

type XValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewXValidator(v *validator.Validate, metrics *metrics.Metrics) IXValidator {
	v.RegisterTagNameFunc(fieldName)
	for key, function := range valid {
		_ = v.RegisterValidation(key, function)
	}

	return &XValidator{
		validator: v,
		metrics:   metrics,
	}
}

// Normalizer is implemented by request types that clean up parsed input,
// such as trimming whitespace, before validation runs.
type Normalizer interface {
	Normalize()
}

// Validator parses the request body into data and validates it. A nil result
// means data is ready to use.
func (x *XValidator) Validator(data any, endpoint string, c *fiber.Ctx) FieldErrors {
	start := time.Now()
	defer func() {
		x.metrics.RecordValidationDuration(endpoint, time.Since(start))
	}()

	if err := c.BodyParser(data); err != nil {
		errs := parseErrors(err)
		for field := range errs {
			x.metrics.RecordValidationError(field, "parse")
		}
		return errs
	}

	if n, ok := data.(Normalizer); ok {
		n.Normalize()
	}

	return x.Validate(data)
}

func (x *XValidator) Validate(data any) FieldErrors {
	err := x.validator.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return FieldErrors{NonFieldErrors: {err.Error()}}
	}

	errs := FieldErrors{}
	for _, fe := range validationErrors {
		errs.Add(fe.Field(), message(fe))
		x.metrics.RecordValidationError(fe.Field(), fe.Tag())
	}

	return errs
}

func parseErrors(err error) FieldErrors {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return FieldErrors{typeErr.Field: {typeMessage(typeErr.Type)}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return FieldErrors{NonFieldErrors: {"JSON parse error - " + syntaxErr.Error()}}
	}

	if errors.Is(err, fiber.ErrUnprocessableEntity) {
		return FieldErrors{NonFieldErrors: {"Unsupported media type in request."}}
	}

	return FieldErrors{NonFieldErrors: {"Invalid data. " + err.Error()}}
}

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.String:
		return "Not a valid string."
	default:
		return "Invalid value."
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "len":
		return fmt.Sprintf("Ensure this field has exactly %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("\"%v\" is not a valid choice.", fe.Value())
	case SHA256Tag:
		return "Enter a valid SHA-256 hex digest."
	default:
		return "Invalid value."
	}
}

// fieldName reports the json name, falling back to the gorm column so model
// errors use the same keys as the database.
func fieldName(fld reflect.StructField) string {
	if name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]; name != "" && name != "-" {
		return name
	}

	for _, setting := range strings.Split(fld.Tag.Get("gorm"), ";") {
		if column, ok := strings.CutPrefix(setting, "column:"); ok {
			return column
		}
	}

	return fld.Name
}
