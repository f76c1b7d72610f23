package service

import (
	"fmt"
	"net/mail"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/apperr"
)

func issueToken(subjectID, secret string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  subjectID,
		"exp": time.Now().Add(ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return &apperr.InputError{Msg: "please provide a valid email address"}
	}
	return nil
}

// validatePassword enforces the signup policy: at least 8 characters with an
// uppercase letter, a lowercase letter and a digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return &apperr.InputError{Msg: "password must be at least 8 characters long"}
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return &apperr.InputError{Msg: "password must contain at least one uppercase letter, one lowercase letter, and one number"}
	}
	return nil
}
