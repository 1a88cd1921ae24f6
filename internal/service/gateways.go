package service

import (
	"context"
	"time"

	"galleria/api/internal/models"
)

// FolderGateway is the persistence surface the folder and image services
// need. *repository.FolderRepository satisfies it; tests use fakes.
type FolderGateway interface {
	Create(ctx context.Context, folder models.Folder) error
	GetByID(ctx context.Context, ownerID string, id string) (models.Folder, error)
	FindByName(ctx context.Context, ownerID string, name string, parentID *string) (models.Folder, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error)
	UpdateParent(ctx context.Context, ownerID string, id string, parentID *string) (models.Folder, error)
	Delete(ctx context.Context, ownerID string, id string) error
	CountChildren(ctx context.Context, ownerID string, id string) (int64, error)
}

type ImageGateway interface {
	Create(ctx context.Context, image models.Image) error
	GetByID(ctx context.Context, ownerID string, id string) (models.Image, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Image, error)
	ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]models.Image, error)
	UpdateFolder(ctx context.Context, ownerID string, id string, folderID *string) error
	UpdateURL(ctx context.Context, id string, url string) (models.Image, error)
	UpdateMetadata(ctx context.Context, id string, meta models.ImageMetadata) (models.Image, error)
	Delete(ctx context.Context, ownerID string, id string) error
	CountByFolder(ctx context.Context, ownerID string, folderID string) (int64, error)
}

type OwnerGateway interface {
	Create(ctx context.Context, owner models.Owner) error
	FindByEmail(ctx context.Context, email string) (models.Owner, error)
	GetByID(ctx context.Context, id string) (models.Owner, error)
}

// ListCache holds serialized gallery listings. Implementations are
// best-effort: a miss or a failed write never fails the request.
type ListCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

// TaskQueue hands maintenance work to an out-of-process consumer.
type TaskQueue interface {
	Enqueue(ctx context.Context, payload map[string]any) error
}
