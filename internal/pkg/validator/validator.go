package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// cityNamePattern - буквы (включая диакритику), пробелы, дефисы и апострофы
var cityNamePattern = regexp.MustCompile(`^[\p{L}][\p{L}\p{M} '’\-]*$`)

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("cityname", func(fl validator.FieldLevel) bool {
		return cityNamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic("validator: register cityname: " + err.Error())
	}
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
