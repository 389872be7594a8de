package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// Allow letters, numbers, spaces, and common name punctuation: . ' - / & ( ) ,
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)

	cpfDigitsRegex = regexp.MustCompile(`^[0-9]{11}$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_cpf", ValidCPF)
}

// ValidName validates that a string contains only valid name characters.
// Empty values pass; combine with required when the field is mandatory.
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return nameRegex.MatchString(val)
}

// ValidCPF validates a Brazilian CPF (11 digits plus check digits).
func ValidCPF(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return CheckCPF(val)
}

// CheckCPF verifies the CPF check digits. Formatting characters
// (dots and dash) are stripped before validation.
func CheckCPF(cpf string) bool {
	digits := make([]byte, 0, 11)
	for i := 0; i < len(cpf); i++ {
		c := cpf[i]
		if c >= '0' && c <= '9' {
			digits = append(digits, c)
		} else if c != '.' && c != '-' {
			return false
		}
	}
	if !cpfDigitsRegex.Match(digits) {
		return false
	}

	// CPFs with all digits equal (e.g. 111.111.111-11) pass the checksum
	// but are invalid.
	allEqual := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	return checkDigit(digits, 9) && checkDigit(digits, 10)
}

func checkDigit(digits []byte, pos int) bool {
	sum := 0
	for i := 0; i < pos; i++ {
		sum += int(digits[i]-'0') * (pos + 1 - i)
	}
	rem := (sum * 10) % 11
	if rem == 10 {
		rem = 0
	}
	return rem == int(digits[pos]-'0')
}
