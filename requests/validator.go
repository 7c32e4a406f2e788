package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/shreejanpandit/doc-appointment-api/apperrors"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

const invalidData = "The given data was invalid."

var registerOnce sync.Once

// Register installs the custom rules on gin's validator. It is safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("requests: gin validator engine is not validator/v10")
		}

		// Report fields by their wire name rather than the Go field name.
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, key := range []string{"json", "form"} {
				name := strings.SplitN(field.Tag.Get(key), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return field.Name
		})

		mustRegister(v, "hhmm", func(fl validator.FieldLevel) bool {
			return IsTimeOfDay(fl.Field().String())
		})
		mustRegister(v, "ymd", func(fl validator.FieldLevel) bool {
			return IsDate(fl.Field().String())
		})
		mustRegister(v, "before_today", func(fl validator.FieldLevel) bool {
			return fl.Field().String() < time.Now().Format(DateLayout)
		})
		mustRegister(v, "weekday", func(fl validator.FieldLevel) bool {
			return NormalizeWeekDay(fl.Field().String()) != ""
		})
	})
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("requests: register %q: %v", tag, err))
	}
}

// IsTimeOfDay accepts "H:i" with a two digit hour, e.g. 09:30.
func IsTimeOfDay(s string) bool {
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// IsDate accepts "Y-m-d", e.g. 2024-03-01.
func IsDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// NormalizeWeekDay returns the canonical capitalised day name for s in any
// case, or "" when s is not a day of the week.
func NormalizeWeekDay(s string) string {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d.String()
		}
	}
	return ""
}

// checker is implemented by requests with rules that span fields or need
// more than a tag.
type checker interface {
	check() map[string][]string
}

// Bind decodes the body (JSON or form, by content type) into req and
// validates it. Any failure is returned as a validation error.
func Bind(c *gin.Context, req any) error {
	Register()

	if err := c.ShouldBind(req); err != nil {
		return translate(err)
	}
	if ch, ok := req.(checker); ok {
		if fields := ch.check(); len(fields) > 0 {
			return apperrors.NewValidation(invalidData, fields)
		}
	}
	return nil
}

func translate(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = append(fields[fe.Field()], message(fe))
		}
		return apperrors.NewValidation(invalidData, fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperrors.NewFieldError(typeErr.Field, fmt.Sprintf("The %s field must be of type %s.", typeErr.Field, typeErr.Type.Kind()))
	}

	return apperrors.NewFieldError("body", "The request body could not be parsed.")
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "oneof", "weekday":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "hhmm":
		return fmt.Sprintf("The %s field must match the format H:i.", field)
	case "ymd":
		return fmt.Sprintf("The %s field must match the format Y-m-d.", field)
	case "before_today":
		return fmt.Sprintf("The %s field must be a date before today.", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s field must match %s.", field, strings.ToLower(fe.Param()))
	}
	return fmt.Sprintf("The %s field is invalid.", field)
}
