// Package validation centraliza las reglas de validación de campos (go-playground/validator)
// y las traduce a domain.ValidationError.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
)

var (
	cyrillicRe = regexp.MustCompile(`^[а-яА-ЯёЁ\s-]+$`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9\s-]+$`)
	usernameRe = regexp.MustCompile(`^[а-яА-ЯёЁa-zA-Z0-9@.+\-_\s]+$`)
	addressRe  = regexp.MustCompile(`^[а-яА-ЯёЁ0-9\s.,-]+$`)
	clockRe    = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// Validator envuelve validator.Validate con las etiquetas propias del dominio:
// cyrillic, phone, username, address, clock, money.
type Validator struct {
	v *validator.Validate
}

// New construye el validador con las reglas registradas.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	mustRegister(v, "cyrillic", regexRule(cyrillicRe))
	mustRegister(v, "phone", regexRule(phoneRe))
	mustRegister(v, "username", regexRule(usernameRe))
	mustRegister(v, "address", regexRule(addressRe))
	mustRegister(v, "clock", regexRule(clockRe))
	mustRegister(v, "money", moneyRule)
	return &Validator{v: v}
}

// Struct valida s; devuelve *domain.ValidationError si algún campo no cumple.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &domain.ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, exists := out.Fields[fe.Field()]; exists {
			continue
		}
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

// decimalValue expone decimal.Decimal como float64 para reglas numéricas (gt, gte, ...).
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// moneyRule como máximo 2 decimales, lo que admite NUMERIC(12,2) sin redondear.
func moneyRule(fl validator.FieldLevel) bool {
	var d decimal.Decimal
	switch f := fl.Field(); f.Kind() {
	case reflect.Float32, reflect.Float64:
		d = decimal.NewFromFloat(f.Float())
	default:
		v, ok := f.Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		d = v
	}
	return d.Equal(d.Round(2))
}

func regexRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: registrar " + tag + ": " + err.Error())
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obligatorio"
	case "email":
		return "email inválido"
	case "min":
		return "debe tener al menos " + fe.Param() + " caracteres"
	case "max":
		return "debe tener como máximo " + fe.Param() + " caracteres"
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "gte":
		return "debe ser mayor o igual que " + fe.Param()
	case "lte":
		return "debe ser menor o igual que " + fe.Param()
	case "eqfield":
		return "las contraseñas no coinciden"
	case "oneof":
		return "valor no permitido, opciones: " + fe.Param()
	case "uuid", "uuid4":
		return "identificador inválido"
	case "url":
		return "URL inválida"
	case "cyrillic":
		return "solo se permiten letras cirílicas, espacios y guiones"
	case "phone":
		return "solo se permiten dígitos, espacios, guiones y un + inicial"
	case "username":
		return "solo se permiten letras, dígitos, espacios y los símbolos @.+-_"
	case "address":
		return "solo se permiten letras cirílicas, dígitos, espacios y .,-"
	case "clock":
		return "formato de hora HH:MM"
	case "money":
		return "como máximo 2 decimales"
	case "len":
		return "debe tener exactamente " + fe.Param() + " elementos"
	case "unique":
		return "valores repetidos"
	}
	return "valor inválido"
}
