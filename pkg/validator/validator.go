package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"mediquick-api/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var (
	timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	phonePattern     = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	labCodePattern   = regexp.MustCompile(`^[A-Z0-9-]{2,20}$`)
)

type CustomValidator struct {
	validator *validator.Validate
}

// Option customizes the validator at construction time.
type Option func(*validator.Validate)

// WithEnum registers tag as a rule accepting only the given string values.
func WithEnum(tag string, values []string) Option {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return func(v *validator.Validate) {
		v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			_, ok := allowed[fl.Field().String()]
			return ok
		})
	}
}

// WithEnums registers every tag of enums, see WithEnum.
func WithEnums(enums map[string][]string) Option {
	return func(v *validator.Validate) {
		for tag, values := range enums {
			WithEnum(tag, values)(v)
		}
	}
}

func NewValidator(opts ...Option) *CustomValidator {
	v := validator.New()

	// Report fields by their JSON names so clients see the same keys they sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("hhmm", matches(timeOfDayPattern))
	v.RegisterValidation("phone", matches(phonePattern))
	v.RegisterValidation("labcode", matches(labCodePattern))

	for _, opt := range opts {
		opt(v)
	}

	return &CustomValidator{validator: v}
}

func matches(pattern *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// CrossFieldChecker is implemented by types with constraints spanning several fields.
type CrossFieldChecker interface {
	CrossFieldErrors() []apperror.FieldError
}

// ValidateEntity runs tag rules, cross-field rules and any extra violations
// supplied by the caller, and reports all of them in a single validation error.
func (cv *CustomValidator) ValidateEntity(i interface{}, extra ...apperror.FieldError) error {
	var fields []apperror.FieldError

	if err := cv.validator.Struct(i); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		fields = append(fields, cv.FormatValidationErrors(err)...)
	}

	if checker, ok := i.(CrossFieldChecker); ok {
		fields = append(fields, checker.CrossFieldErrors()...)
	}
	fields = append(fields, extra...)

	if len(fields) > 0 {
		return apperror.Validation(fields)
	}
	return nil
}

func (cv *CustomValidator) FormatValidationErrors(err error) []apperror.FieldError {
	var fields []apperror.FieldError

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fields
	}

	for _, e := range validationErrors {
		field := fieldPath(e)
		fields = append(fields, apperror.FieldError{
			Field:   field,
			Rule:    e.Tag(),
			Message: message(field, e),
		})
	}
	return fields
}

// fieldPath drops the top-level struct name from the namespace:
// "Doctor.availability[0].start_time" becomes "availability[0].start_time".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return e.Field()
}

func message(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "gte":
		return field + " must be greater than or equal to " + e.Param()
	case "lte":
		return field + " must be less than or equal to " + e.Param()
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "hhmm":
		return field + " must be a time of day in HH:MM format"
	case "phone":
		return field + " must be a valid phone number"
	case "labcode":
		return field + " must be 2-20 uppercase letters, digits or dashes"
	default:
		return field + " is invalid"
	}
}
