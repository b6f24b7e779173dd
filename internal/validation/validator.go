package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "meetconnect/internal/errors"
	"meetconnect/internal/model"
)

var (
	clockPattern   = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	contactPattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// Validator adapts go-playground/validator to echo.Validator and converts
// failures into field-level validation errors.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the custom tags used by request payloads:
// clock (HH:MM, 24h), contact (10 digits) and calendardate (YYYY-MM-DD or RFC 3339).
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("contact", func(fl validator.FieldLevel) bool {
		return contactPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, err := model.ParseDate(fl.Field().String())
		return err == nil
	})

	return &Validator{validate: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Unexpected(err)
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: message(i, fe),
			Value:   redact(fe),
		})
	}
	return apperrors.Validation(fields...)
}

// message prefers a msg struct tag on the failing field.
func message(i any, fe validator.FieldError) string {
	t := reflect.TypeOf(i)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if msg := f.Tag.Get("msg"); msg != "" {
				return msg
			}
		}
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Please provide a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "clock":
		return fmt.Sprintf("%s must be in HH:MM format", fe.Field())
	case "contact":
		return fmt.Sprintf("%s must be a 10-digit number", fe.Field())
	case "calendardate":
		return fmt.Sprintf("%s must be a valid date", fe.Field())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func redact(fe validator.FieldError) any {
	if strings.Contains(strings.ToLower(fe.StructField()), "password") {
		return nil
	}
	v := fe.Value()
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.IsZero() {
		return nil
	}
	if rv.Kind() == reflect.Pointer {
		return rv.Elem().Interface()
	}
	return v
}
