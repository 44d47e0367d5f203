// Пакет для валидации данных, используемых в blockdoc.  Содержит валидаторы для полей запросов: целевой тип блока, цвет фона, позиции.  Использует библиотеку go-playground/validator для выполнения проверок, а также регулярные выражения для проверки формата данных.
//
// Основные возможности:
//   - Валидация полей запросов с использованием предопределенных валидаторов.
//   - Проверка целевого типа конвертации по закрытому набору.
//   - Проверка цвета блока (hex, rgb/rgba, именованные цвета, transparent).
package blockdoc

import (
	"regexp"

	"github.com/go-playground/validator"
)

var (
	hexColorRegexp  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	rgbColorRegexp  = regexp.MustCompile(`^rgba?\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*(?:,\s*(?:0|1|0?\.\d+)\s*)?\)$`)
	nameColorRegexp = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
)

var convertTargets = map[string]struct{}{
	"paragraph":   {},
	"heading":     {},
	"bulletList":  {},
	"orderedList": {},
	"blockquote":  {},
	"codeBlock":   {},
}

type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	if err := v.RegisterValidation("blockType", blockTypeValidator); err != nil {
		return nil
	}

	if err := v.RegisterValidation("blockColor", blockColorValidator); err != nil {
		return nil
	}
	return &RequestValidator{v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.validator.Struct(i); err != nil {
		_, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil
		}
		return err
	}
	return nil
}

func blockTypeValidator(fl validator.FieldLevel) bool {
	_, ok := convertTargets[fl.Field().String()]
	return ok
}

func blockColorValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || value == "transparent" {
		return true
	}
	return hexColorRegexp.MatchString(value) ||
		rgbColorRegexp.MatchString(value) ||
		nameColorRegexp.MatchString(value)
}
