// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	phoneNoise   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// ValidatePhone accepts E.164-style numbers, tolerating common formatting
// noise (spaces, dashes, parentheses).
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phoneNoise.Replace(phone))
}
