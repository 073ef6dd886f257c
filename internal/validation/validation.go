// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 128
	maxNicknameLen = 10
	maxTitleLen    = 26
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks that an email address is plausibly formed.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("email address is not valid")
	}
	return nil
}

// ValidatePassword checks if a password meets the length requirements.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordLen)
	}
	return nil
}

// ValidateNickname checks that a display name is present and within limits.
func ValidateNickname(nickname string) error {
	if nickname == "" {
		return fmt.Errorf("nickname is required")
	}
	if utf8.RuneCountInString(nickname) > maxNicknameLen {
		return fmt.Errorf("nickname must not exceed %d characters", maxNicknameLen)
	}
	return nil
}

// ValidateTitle checks that a post title is present and within limits.
func ValidateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", maxTitleLen)
	}
	return nil
}
