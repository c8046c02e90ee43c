// Package session holds the client-side authenticated session: the access
// token that authorizes API calls plus an advisory cache of the logged-in
// user and their role. The token is the single source of truth for
// "is authenticated"; user and role may be absent even while a token is held
// (for example right after a silent refresh).
package session

import "strings"

// Session is the authenticated identity held client-side.
type Session struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user,omitempty"`
	Role        string `json:"role,omitempty"`
}

// User is a cached profile snapshot. It may be stale; the backend's
// /users/profile endpoint is authoritative.
type User struct {
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phoneNumber,omitempty"`
}

// Authenticated reports whether a token is held.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}

// FallbackUser derives a minimal user from an email address, for login
// responses that carry no user object.
func FallbackUser(email string) *User {
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return &User{
		Email:    email,
		FullName: name,
	}
}
