package models

// APIResponse is a generic API response wrapper
type APIResponse struct {
	Success  bool           `json:"success"`
	Data     interface{}    `json:"data,omitempty"`
	Error    string         `json:"error,omitempty"`
	Messages []FieldMessage `json:"messages,omitempty"`
}

// FieldMessage is a single field-level validation failure.
type FieldMessage struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError aggregates every violated field of one request. Services
// return it when a rule depends on stored state (e.g. province existence);
// request structs produce the same message list via Validate().
type ValidationError struct {
	Messages []FieldMessage
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Messages[0].Path + ": " + e.Messages[0].Message
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   message,
	}
}

// NewValidationErrorResponse creates a validation error response
func NewValidationErrorResponse(messages []FieldMessage) APIResponse {
	return APIResponse{
		Success:  false,
		Error:    "Validation failed",
		Messages: messages,
	}
}
