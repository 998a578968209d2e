package services

import (
	"context"
	"errors"
)

var ErrImageNotFound = errors.New("image not found")

// ImageService stores opaque base64 payloads and hands back references.
type ImageService interface {
	Store(ctx context.Context, data string) (string, error)
	Fetch(ctx context.Context, id string) (string, error)
}
