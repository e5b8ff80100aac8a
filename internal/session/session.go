package session

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrEmptyCredentials = errors.New("username and password are required")
	ErrNotFound         = errors.New("session not found")
)

// User is the identity bound to a session. Reviews are keyed by Initials.
type User struct {
	Username string `json:"username"`
	Initials string `json:"initials"`
}

// Initials takes the first letter of each space-separated word, upper-cased.
// Consecutive spaces produce empty words, which contribute nothing.
func Initials(username string) string {
	var b strings.Builder
	for _, word := range strings.Split(username, " ") {
		r, _ := utf8.DecodeRuneInString(word)
		if r == utf8.RuneError {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Login accepts any non-empty username/password pair. There is no credential check.
func Login(username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return User{}, ErrEmptyCredentials
	}
	return User{Username: username, Initials: Initials(username)}, nil
}
