package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Name is a value object for entry and item names.
// Always trimmed; 1 <= runes <= 255.
type Name string

const (
	minNameLength = 1
	maxNameLength = 255
)

// NewName trims s and returns it as a Name, or an error if the trimmed value
// is blank or too long.
func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < minNameLength {
		return "", fmt.Errorf("name must not be blank")
	}
	if n > maxNameLength {
		return "", fmt.Errorf("name must not exceed %d characters", maxNameLength)
	}
	return Name(s), nil
}

// String returns the underlying string value.
func (n Name) String() string {
	return string(n)
}

// IsValid reports whether the name is non-blank.
func (n Name) IsValid() bool {
	return strings.TrimSpace(string(n)) != ""
}

// EqualFold compares two names ignoring case and surrounding whitespace.
func (n Name) EqualFold(other Name) bool {
	return strings.EqualFold(strings.TrimSpace(string(n)), strings.TrimSpace(string(other)))
}
