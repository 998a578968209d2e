package models

import "time"

type Post struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description,omitempty"`
	PictureID   string    `json:"picture_id" bson:"picture_id,omitempty"`
	Likes       []string  `json:"likes" bson:"likes"`
	LikeCount   int       `json:"like_count" bson:"like_count"`
	PetIDs      []string  `json:"pet_ids" bson:"pet_ids"`
	Status      Status    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type PublishPostRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	// Picture is a base64 payload; it is stored through the image service
	// and only the returned reference is kept on the post.
	Picture string   `json:"picture"`
	PetIDs  []string `json:"pet_ids"`
}

// UpdatePostRequest patches a post. Nil fields are left untouched.
type UpdatePostRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Picture     *string   `json:"picture"`
	PetIDs      *[]string `json:"pet_ids"`
}

func (r *PublishPostRequest) Validate() []FieldMessage {
	var messages []FieldMessage

	messages = append(messages, validateTitle(r.Title)...)
	messages = append(messages, validateDescription(r.Description)...)

	return messages
}

func (r *UpdatePostRequest) Validate() []FieldMessage {
	var messages []FieldMessage

	if r.Title != nil {
		messages = append(messages, validateTitle(*r.Title)...)
	}
	if r.Description != nil {
		messages = append(messages, validateDescription(*r.Description)...)
	}

	return messages
}

func validateTitle(title string) []FieldMessage {
	if len(title) < 2 {
		return []FieldMessage{{Path: "title", Message: "Title must be at least 2 characters"}}
	}
	return nil
}

func validateDescription(description string) []FieldMessage {
	if len(description) > 2014 {
		return []FieldMessage{{Path: "description", Message: "Description must be at most 2014 characters"}}
	}
	return nil
}
