package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserInput carries the fields of a create or partial update. Nil means the
// field was not supplied.
type UserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UserInputFromMap reads an already validated request body.
func UserInputFromMap(data map[string]any) UserInput {
	return UserInput{
		Name:     stringField(data, "name"),
		Email:    stringField(data, "email"),
		Password: stringField(data, "password"),
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthenticatedUser is the login payload. The token lives here only, never on User.
type AuthenticatedUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}
