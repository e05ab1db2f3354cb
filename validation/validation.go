package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldErrors は入力項目名→メッセージのマップです。
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Add records msg for field unless the field already has a message.
func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

// Err は空なら nil を返します。
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// json タグの名前をフィールド名として使う
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	// decimal は数値として gt/gte を評価する
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Struct は構造体タグに従って検証し、問題があれば FieldErrors を返します。
func Struct(v any) FieldErrors {
	out := FieldErrors{}
	if err := validate.Struct(v); err != nil {
		merge(out, FromError(err))
	}
	return out
}

// FromError converts a validator error into FieldErrors.
func FromError(err error) FieldErrors {
	out := FieldErrors{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out.Add(fe.Field(), messageForTag(fe.Tag(), fe.Param()))
		}
		return out
	}
	out["_"] = "Please fill in all required fields with valid values."
	return out
}

func merge(dst, src FieldErrors) {
	for k, v := range src {
		dst.Add(k, v)
	}
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required", "notblank":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "gt":
		return "Must be greater than " + param + "."
	case "gte", "min":
		return "Must be at least " + param + "."
	case "max", "lte":
		return "Must be at most " + param + "."
	case "oneof":
		return "Must be one of: " + param + "."
	case "url":
		return "Enter a valid URL."
	default:
		return "Invalid value."
	}
}
