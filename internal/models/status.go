package models

// Status is the lifecycle state of a record. Disabled records are kept in
// the store but treated as deleted by every read path.
type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)
