package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	sha256Regex = `^[0-9a-f]{64}$`
)

const (
	SHA256Tag = "sha256hex"
)

var sha256Pattern = regexp.MustCompile(sha256Regex)

var valid = map[string]func(fl validator.FieldLevel) bool{
	SHA256Tag: ValidateSHA256Hex,
}

func ValidateSHA256Hex(fl validator.FieldLevel) bool {
	return sha256Pattern.MatchString(fl.Field().String())
}
