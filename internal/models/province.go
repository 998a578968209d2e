package models

type Province struct {
	ID     string `json:"id" bson:"_id"`
	Name   string `json:"name" bson:"name"`
	Status Status `json:"status" bson:"status"`
}

type ProvinceRequest struct {
	Name string `json:"name"`
}

func (r *ProvinceRequest) Validate() []FieldMessage {
	if r.Name == "" {
		return []FieldMessage{{Path: "name", Message: "Name is required"}}
	}
	if len(r.Name) > 256 {
		return []FieldMessage{{Path: "name", Message: "Name must be at most 256 characters"}}
	}
	return nil
}
