package models

// Image is an opaque base64 payload keyed by id. Profile and post picture
// fields store the id and are resolved to Data at read time.
type Image struct {
	ID   string `json:"id" bson:"_id"`
	Data string `json:"image" bson:"data"`
}

// DefaultImageData is the placeholder served when a profile has no picture
// (a 1x1 transparent PNG).
const DefaultImageData = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type StoreImageRequest struct {
	Image string `json:"image"`
}

func (r *StoreImageRequest) Validate() []FieldMessage {
	if r.Image == "" {
		return []FieldMessage{{Path: "image", Message: "Image payload is required"}}
	}
	return nil
}
