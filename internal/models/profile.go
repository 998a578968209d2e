package models

import "time"

// Profile is the user-editable public face of an account. It shares the
// user's id when seeded at registration, but is always looked up by the
// user_id back-reference, never by _id equality.
type Profile struct {
	ID         string    `json:"id" bson:"_id"`
	UserID     string    `json:"user_id" bson:"user_id"`
	Name       string    `json:"name" bson:"name,omitempty"`
	Phone      string    `json:"phone" bson:"phone,omitempty"`
	Email      string    `json:"email" bson:"email,omitempty"`
	Address    string    `json:"address" bson:"address,omitempty"`
	ProvinceID string    `json:"province_id" bson:"province_id,omitempty"`
	PictureID  string    `json:"picture_id" bson:"picture_id,omitempty"`
	Status     Status    `json:"status" bson:"status"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// ProfileView is a profile prepared for listing: the picture reference is
// resolved to actual image data (or the default placeholder).
type ProfileView struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	ProvinceID string `json:"province_id"`
	Picture    string `json:"picture"`
}

type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	ProvinceID string `json:"province_id"`
}

// Validate checks field bounds. Name and email are only mandatory when the
// update creates the profile, which the caller signals via creating.
func (r *UpdateProfileRequest) Validate(creating bool) []FieldMessage {
	var messages []FieldMessage

	if creating && r.Name == "" {
		messages = append(messages, FieldMessage{Path: "name", Message: "Name is required"})
	} else if len(r.Name) > 1024 {
		messages = append(messages, FieldMessage{Path: "name", Message: "Name must be at most 1024 characters"})
	}
	if creating && r.Email == "" {
		messages = append(messages, FieldMessage{Path: "email", Message: "Email is required"})
	} else if len(r.Email) > 256 {
		messages = append(messages, FieldMessage{Path: "email", Message: "Email must be at most 256 characters"})
	}
	if len(r.Address) > 1024 {
		messages = append(messages, FieldMessage{Path: "address", Message: "Address must be at most 1024 characters"})
	}
	if len(r.Phone) > 32 {
		messages = append(messages, FieldMessage{Path: "phone", Message: "Phone must be at most 32 characters"})
	}

	return messages
}
