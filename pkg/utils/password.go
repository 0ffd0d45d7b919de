package utils

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

// Small built-in list; the check is case-insensitive.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {},
	"123456789": {}, "1234567890": {}, "qwerty123": {}, "qwertyuiop": {},
	"iloveyou": {}, "sunshine": {}, "princess": {}, "football": {},
	"baseball": {}, "welcome1": {}, "letmein1": {}, "abc12345": {},
	"trustno1": {}, "superman": {}, "starwars": {}, "passw0rd": {},
	"11111111": {}, "00000000": {}, "monkey123": {}, "dragon123": {},
	"master123": {}, "whatever": {}, "changeme": {}, "computer": {},
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// PasswordPolicyErrors returns every policy rule the password breaks.
// Attributes such as the username and email are used for the similarity check.
func PasswordPolicyErrors(password string, attributes ...string) []string {
	var problems []string

	if len(password) < MinPasswordLength {
		problems = append(problems, "This password is too short. It must contain at least 8 characters")
	}

	if password != "" && isAllDigits(password) {
		problems = append(problems, "This password is entirely numeric")
	}

	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		problems = append(problems, "This password is too common")
	}

	if tooSimilar(password, attributes) {
		problems = append(problems, "The password is too similar to your personal information")
	}

	return problems
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func tooSimilar(password string, attributes []string) bool {
	lower := strings.ToLower(password)
	for _, attr := range attributes {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if local, _, found := strings.Cut(attr, "@"); found {
			attr = local
		}
		if len(attr) < 3 {
			continue
		}
		if strings.Contains(lower, attr) || strings.Contains(attr, lower) {
			return true
		}
	}
	return false
}
