package models

import "time"

type Pet struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description,omitempty"`
	PictureID   string    `json:"picture_id" bson:"picture_id,omitempty"`
	Status      Status    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

type PetRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Picture     string `json:"picture"`
}

func (r *PetRequest) Validate() []FieldMessage {
	var messages []FieldMessage

	if r.Name == "" {
		messages = append(messages, FieldMessage{Path: "name", Message: "Name is required"})
	} else if len(r.Name) > 256 {
		messages = append(messages, FieldMessage{Path: "name", Message: "Name must be at most 256 characters"})
	}
	if len(r.Description) > 1024 {
		messages = append(messages, FieldMessage{Path: "description", Message: "Description must be at most 1024 characters"})
	}

	return messages
}
