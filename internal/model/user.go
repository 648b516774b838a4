// Package model holds the domain entities and the request payloads that
// carry them over HTTP.
package model

import (
	"strings"

	"github.com/deppfellow/user-service/internal/validation"
)

// User is the single persisted record.
//
// Password is stored and returned in plaintext.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// HasBlankAttributes reports whether name or password is empty or only
// whitespace. A nil user counts as blank.
func (u *User) HasBlankAttributes() bool {
	return u == nil || isBlank(u.Name) || isBlank(u.Password)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ------------------------------------------------------------

// CreateUserPayload is the body of POST /users.
//
// Blank fields are a business rule checked by the service (422), not a
// structural validation error.
type CreateUserPayload struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (p *CreateUserPayload) Validate() error {
	return validation.Struct(p)
}

// ToUser converts the payload into a candidate record.
func (p *CreateUserPayload) ToUser() *User {
	return &User{Name: p.Name, Password: p.Password}
}

// ------------------------------------------------------------

// UserIDPayload addresses one record by path id.
type UserIDPayload struct {
	ID int64 `param:"id" json:"-"`
}

func (p *UserIDPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

// UpdateUserPayload is the body of PUT /users/:id.
//
// BodyID is optional; when present it must equal the path id.
type UpdateUserPayload struct {
	ID       int64  `param:"id" json:"-"`
	BodyID   *int64 `json:"id"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (p *UpdateUserPayload) Validate() error {
	return validation.Struct(p)
}

// IDMatches reports whether the payload id, if any, agrees with the path id.
func (p *UpdateUserPayload) IDMatches() bool {
	return p.BodyID == nil || *p.BodyID == p.ID
}

// ToUser converts the payload into the update record, addressed by path id.
func (p *UpdateUserPayload) ToUser() *User {
	return &User{ID: p.ID, Name: p.Name, Password: p.Password}
}

// ------------------------------------------------------------

// SearchUsersPayload is the query of GET /users/search.
//
// An empty name is a valid (exact) search; only a missing parameter is
// rejected, by the handler, since binding cannot tell the two apart.
type SearchUsersPayload struct {
	Name string `query:"name"`
}

func (p *SearchUsersPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

// ListUsersPayload is the (empty) input of GET /users.
type ListUsersPayload struct{}

func (p *ListUsersPayload) Validate() error {
	return nil
}
