package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse describes a single failed validation rule.
type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
	Message     string
}

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				return true
			}
			field = field.Elem()
		}
		if field.Kind() != reflect.String {
			return true
		}
		return strings.TrimSpace(field.String()) != ""
	})
}

// ValidateStruct checks data against its `validate` tags. Each failure carries the
// message from the field's `msg` tag, or a generic one when the tag is absent.
func ValidateStruct(data interface{}) []*ErrorResponse {
	var errs []*ErrorResponse
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []*ErrorResponse{{Message: "Некорректные данные"}}
	}

	typ := reflect.TypeOf(data)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	for _, fe := range validationErrors {
		element := &ErrorResponse{
			FailedField: fe.Field(),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
			Message:     "Некорректное значение поля " + fe.Field(),
		}
		if field, ok := typ.FieldByName(fe.StructField()); ok {
			if msg := field.Tag.Get("msg"); msg != "" {
				element.Message = msg
			}
		}
		errs = append(errs, element)
	}
	return errs
}

// FirstValidationError returns the message of the first failed rule, or "".
func FirstValidationError(data interface{}) string {
	if errs := ValidateStruct(data); len(errs) > 0 {
		return errs[0].Message
	}
	return ""
}
