package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
)

// RegisterCustomValidators registers custom validation functions
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("hmac_alg", func(fl validator.FieldLevel) bool {
		return IsHMACAlgorithm(fl.Field().String())
	})
}

// IsHMACAlgorithm reports whether alg names an HMAC signing method known to the JWT library.
func IsHMACAlgorithm(alg string) bool {
	_, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	return ok
}
