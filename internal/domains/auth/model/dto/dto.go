package dto

import "strings"

type LoginRequest struct {
	Username string
	Password string
}

// Blank reports whether either credential is missing.
func (r LoginRequest) Blank() bool {
	return strings.TrimSpace(r.Username) == "" || r.Password == ""
}

// Username is trimmed before lookup; passwords are compared as typed.
func (r LoginRequest) TrimmedUsername() string {
	return strings.TrimSpace(r.Username)
}
