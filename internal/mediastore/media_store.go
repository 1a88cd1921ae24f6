// Package mediastore is the gateway to the remote asset host. The rest of
// the system treats it as an opaque content store: upload hands back a
// store-assigned public id plus a retrievable locator, rotate replaces the
// asset in place at the same public id, delete removes it.
package mediastore

import (
	"context"
	"io"
)

// Asset is the store's handle on an uploaded binary.
type Asset struct {
	PublicID string
	URL      string
}

type UploadParams struct {
	// FolderName groups assets inside the store for browsability only; it
	// carries no integrity rules and defaults to the root display name.
	FolderName   string
	OriginalName string
	ContentType  string
	SizeBytes    int64
}

type MediaStore interface {
	Upload(ctx context.Context, content io.Reader, params UploadParams) (Asset, error)

	// Rotate re-renders the asset at the same public id with the given angle
	// applied, overwriting the previous copy, and returns the new locator.
	// The locator changes on every call even when the angle sums to zero.
	Rotate(ctx context.Context, publicID string, angle int) (string, error)

	Delete(ctx context.Context, publicID string) error
}
