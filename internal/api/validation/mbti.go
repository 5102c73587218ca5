package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yoockh/huffaz-portal/internal/mbti"
)

// ValidateMBTIType accepts one of the sixteen type codes, case-insensitive.
func ValidateMBTIType(fl validator.FieldLevel) bool {
	return mbti.IsValidType(fl.Field().String())
}

// ValidateLikert accepts answers on the 1..5 scale.
func ValidateLikert(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= mbti.MinAnswer && v <= mbti.MaxAnswer
}

func RegisterMBTIValidators(v *validator.Validate) {
	v.RegisterValidation("mbti", ValidateMBTIType)
	v.RegisterValidation("likert", ValidateLikert)
}

// RegisterWithGin installs the custom tags on gin's binding validator.
func RegisterWithGin() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterMBTIValidators(v)
	}
}
