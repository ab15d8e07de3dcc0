package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidIdentity marks a profile payload that failed validation.
var ErrInvalidIdentity = errors.New("invalid identity")

// Identity ids used when the profile endpoint could not provide one.
const (
	UnknownIdentityID IdentityID = "unknown"
	NewUserIdentityID IdentityID = "new_user"
)

// IdentityID accepts both JSON strings and numbers.
type IdentityID string

func (id *IdentityID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = IdentityID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = IdentityID(n.String())
	return nil
}

// Identity is the authenticated user's profile record.
type Identity struct {
	ID        IdentityID `json:"id"`
	Email     string     `json:"email" validate:"required"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	Grade     string     `json:"grade,omitempty"`
}

// DecodeIdentity parses and validates a profile payload. The result is either
// a well-formed Identity or an error wrapping ErrInvalidIdentity.
func DecodeIdentity(raw []byte) (*Identity, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: not a JSON object", ErrInvalidIdentity)
	}

	var identity Identity
	if err := json.Unmarshal(trimmed, &identity); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIdentity, err)
	}
	if err := Validate(&identity); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIdentity, err)
	}
	return &identity, nil
}

// Marshal encodes the identity the way it is persisted.
func (i *Identity) Marshal() ([]byte, error) {
	return json.Marshal(i)
}

func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// DisplayRole falls back to "student" when the backend sent no role.
func (i *Identity) DisplayRole() string {
	if i.Role == "" {
		return "student"
	}
	return i.Role
}

// LoginPlaceholder is adopted when a login obtained a token but the profile
// could not be fetched.
func LoginPlaceholder(email string) *Identity {
	return &Identity{
		ID:       UnknownIdentityID,
		Email:    email,
		Role:     "user",
		IsActive: true,
	}
}

// RegistrationPlaceholder is the registration counterpart of LoginPlaceholder,
// seeded from the submitted form.
func RegistrationPlaceholder(req *RegisterRequest) *Identity {
	return &Identity{
		ID:        NewUserIdentityID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      "user",
		IsActive:  true,
	}
}
