package models

import (
	"time"
)

// PermissionUser is granted to every account at registration.
const PermissionUser = "user"

// PermissionAdmin gates user administration and reference-data writes.
const PermissionAdmin = "admin"

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Login        string    `json:"login" bson:"login"`
	Name         string    `json:"name" bson:"name"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Permissions  []string  `json:"permissions" bson:"permissions"`
	Status       Status    `json:"status" bson:"status"`
	Following    []string  `json:"following" bson:"following"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// CurrentUser is the authenticated caller's own view: the user record plus
// its paired profile.
type CurrentUser struct {
	User
	Profile *Profile `json:"profile"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type PermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (r *RegisterRequest) Validate() []FieldMessage {
	var messages []FieldMessage

	if r.Name == "" {
		messages = append(messages, FieldMessage{Path: "name", Message: "Name is required"})
	} else if len(r.Name) > 1024 {
		messages = append(messages, FieldMessage{Path: "name", Message: "Name must be at most 1024 characters"})
	}
	if r.Login == "" {
		messages = append(messages, FieldMessage{Path: "login", Message: "Login is required"})
	} else if len(r.Login) > 256 {
		messages = append(messages, FieldMessage{Path: "login", Message: "Login must be at most 256 characters"})
	}
	messages = append(messages, validatePassword("password", r.Password)...)

	return messages
}

func (r *LoginRequest) Validate() []FieldMessage {
	var messages []FieldMessage

	if r.Login == "" {
		messages = append(messages, FieldMessage{Path: "login", Message: "Login is required"})
	}
	if r.Password == "" {
		messages = append(messages, FieldMessage{Path: "password", Message: "Password is required"})
	}

	return messages
}

func (r *ChangePasswordRequest) Validate() []FieldMessage {
	var messages []FieldMessage

	messages = append(messages, validatePassword("current_password", r.CurrentPassword)...)
	messages = append(messages, validatePassword("new_password", r.NewPassword)...)

	return messages
}

func (r *PermissionsRequest) Validate() []FieldMessage {
	if len(r.Permissions) == 0 {
		return []FieldMessage{{Path: "permissions", Message: "Permissions must be a non-empty list"}}
	}
	for _, p := range r.Permissions {
		if p == "" {
			return []FieldMessage{{Path: "permissions", Message: "Permissions must not contain empty values"}}
		}
	}
	return nil
}

func validatePassword(path, password string) []FieldMessage {
	if password == "" {
		return []FieldMessage{{Path: path, Message: "Password is required"}}
	}
	if len(password) < 5 || len(password) > 256 {
		return []FieldMessage{{Path: path, Message: "Password must be between 5 and 256 characters"}}
	}
	return nil
}
