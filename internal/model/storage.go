package model

import "context"

// Image is an uploaded or generated image payload.
type Image struct {
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

// Storage keeps image payloads out of the key/value store; records hold only refs.
type Storage interface {
	Put(ctx context.Context, key string, image Image) error
	Get(ctx context.Context, key string) (Image, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
