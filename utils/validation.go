package utils

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail vérifie le format d'une adresse email
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePassword vérifie la complexité minimale d'un mot de passe :
// 6 caractères, une minuscule, une majuscule et un chiffre
func ValidatePassword(password string) bool {
	if len(password) < 6 {
		return false
	}
	hasLower := strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz")
	hasUpper := strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	hasDigit := strings.ContainsAny(password, "0123456789")
	return hasLower && hasUpper && hasDigit
}
