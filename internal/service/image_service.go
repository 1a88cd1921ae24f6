package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"galleria/api/internal/apperr"
	"galleria/api/internal/ids"
	"galleria/api/internal/mediastore"
	"galleria/api/internal/models"
	"galleria/api/internal/repository"
)

const (
	RotateLeft  = "left"
	RotateRight = "right"

	// Rotation sense as experienced by the viewer: rotating "right" turns
	// the image clockwise, which is a negative angle.
	angleLeft  = 90
	angleRight = -90

	galleryCacheTTL = time.Minute
)

type UploadInput struct {
	OwnerID      string
	Content      io.Reader
	FolderID     *string
	OriginalName string
	MimeType     string
	SizeBytes    int64
}

// ImageService owns the image lifecycle: binaries live in the media store,
// records in the persistence layer, and the store write always comes first
// so a failed store call never leaves a record with a dead locator.
type ImageService struct {
	images  ImageGateway
	folders FolderGateway
	store   mediastore.MediaStore
	cache   ListCache
	queue   TaskQueue
	log     zerolog.Logger
}

func NewImageService(
	images ImageGateway,
	folders FolderGateway,
	store mediastore.MediaStore,
	cache ListCache,
	queue TaskQueue,
	log zerolog.Logger,
) *ImageService {
	return &ImageService{
		images:  images,
		folders: folders,
		store:   store,
		cache:   cache,
		queue:   queue,
		log:     log,
	}
}

func galleryCacheKey(ownerID string) string {
	return "gallery:" + ownerID + ":all"
}

// Upload stores the binary first and persists the record only after the
// store accepted it. The folder display name is resolved best-effort for
// store-side grouping; an unresolvable folder falls back to Home without
// erroring.
func (s *ImageService) Upload(ctx context.Context, input UploadInput) (models.Image, error) {
	if input.Content == nil {
		return models.Image{}, apperr.Validation("file content required")
	}
	if input.OriginalName == "" {
		return models.Image{}, apperr.Validation("original file name required")
	}

	folderName := models.RootFolderName
	if input.FolderID != nil {
		if folder, err := s.folders.GetByID(ctx, input.OwnerID, *input.FolderID); err == nil {
			folderName = folder.Name
		}
	}

	asset, err := s.store.Upload(ctx, input.Content, mediastore.UploadParams{
		FolderName:   folderName,
		OriginalName: input.OriginalName,
		ContentType:  input.MimeType,
		SizeBytes:    input.SizeBytes,
	})
	if err != nil {
		return models.Image{}, apperr.Wrap(apperr.KindExternalStore, "media store upload failed", err)
	}

	image := models.Image{
		ID:           ids.New(),
		OwnerID:      input.OwnerID,
		FolderID:     input.FolderID,
		PublicID:     asset.PublicID,
		URL:          asset.URL,
		OriginalName: input.OriginalName,
		MimeType:     input.MimeType,
		SizeBytes:    input.SizeBytes,
	}
	now := time.Now().UTC()
	image.CreatedAt = now
	image.UpdatedAt = now

	if err := s.images.Create(ctx, image); err != nil {
		// The stored asset has no record pointing at it anymore; hand it to
		// the maintenance consumer instead of losing track of it.
		s.enqueueOrphan(ctx, asset.PublicID)
		return models.Image{}, fmt.Errorf("save image record: %w", err)
	}

	s.invalidateGallery(ctx, input.OwnerID)

	s.log.Info().
		Str("owner_id", input.OwnerID).
		Str("image_id", image.ID).
		Str("public_id", asset.PublicID).
		Int64("size_bytes", input.SizeBytes).
		Msg("image uploaded")

	return image, nil
}

// ListAll returns every image of the owner, newest first, unscoped by
// folder. The listing is served from cache when fresh.
func (s *ImageService) ListAll(ctx context.Context, ownerID string) ([]models.Image, error) {
	key := galleryCacheKey(ownerID)
	if s.cache != nil {
		if payload, ok := s.cache.Get(ctx, key); ok {
			var cached []models.Image
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
		}
	}

	images, err := s.images.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(images); err == nil {
			s.cache.Set(ctx, key, payload, galleryCacheTTL)
		}
	}
	return images, nil
}

// ListByFolder filters to one folder; nil means the root.
func (s *ImageService) ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]models.Image, error) {
	images, err := s.images.ListByFolder(ctx, ownerID, folderID)
	if err != nil {
		return nil, fmt.Errorf("list images by folder: %w", err)
	}
	return images, nil
}

func (s *ImageService) GetByID(ctx context.Context, ownerID string, imageID string) (models.Image, error) {
	image, err := s.images.GetByID(ctx, ownerID, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return models.Image{}, apperr.NotFound("image not found")
		}
		return models.Image{}, fmt.Errorf("get image: %w", err)
	}
	return image, nil
}

// Rotate re-renders the stored asset at the same public id and persists the
// fresh locator. Every call produces a new locator, including rotations that
// sum back to the original orientation.
func (s *ImageService) Rotate(ctx context.Context, ownerID string, imageID string, direction string) (models.Image, error) {
	var angle int
	switch direction {
	case RotateLeft:
		angle = angleLeft
	case RotateRight:
		angle = angleRight
	default:
		return models.Image{}, apperr.Validation(`direction must be "left" or "right"`)
	}

	image, err := s.GetByID(ctx, ownerID, imageID)
	if err != nil {
		return models.Image{}, err
	}

	url, err := s.store.Rotate(ctx, image.PublicID, angle)
	if err != nil {
		return models.Image{}, apperr.Wrap(apperr.KindExternalStore, "media store rotate failed", err)
	}

	updated, err := s.images.UpdateURL(ctx, imageID, url)
	if err != nil {
		return models.Image{}, fmt.Errorf("update image url: %w", err)
	}

	s.invalidateGallery(ctx, ownerID)

	s.log.Info().
		Str("owner_id", ownerID).
		Str("image_id", imageID).
		Int("angle", angle).
		Msg("image rotated")

	return updated, nil
}

// UpdateMetadata applies a partial update. It is not ownership-scoped: the
// API surface must resolve the image through GetByID first. Tags, when
// present, replace the stored list wholesale.
func (s *ImageService) UpdateMetadata(ctx context.Context, imageID string, meta models.ImageMetadata) (models.Image, error) {
	if meta.Empty() {
		return models.Image{}, apperr.Validation("no metadata fields to update")
	}

	updated, err := s.images.UpdateMetadata(ctx, imageID, meta)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return models.Image{}, apperr.NotFound("image not found")
		}
		return models.Image{}, fmt.Errorf("update metadata: %w", err)
	}

	s.invalidateGallery(ctx, updated.OwnerID)
	return updated, nil
}

// MoveToFolder reassigns the image's folder; nil means the root. The target
// folder must belong to the same owner.
func (s *ImageService) MoveToFolder(ctx context.Context, ownerID string, imageID string, folderID *string) error {
	if _, err := s.GetByID(ctx, ownerID, imageID); err != nil {
		return err
	}

	if folderID != nil {
		if _, err := s.folders.GetByID(ctx, ownerID, *folderID); err != nil {
			if errors.Is(err, repository.ErrFolderNotFound) {
				return apperr.NotFound("folder not found")
			}
			return fmt.Errorf("resolve folder: %w", err)
		}
	}

	if err := s.images.UpdateFolder(ctx, ownerID, imageID, folderID); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return apperr.NotFound("image not found")
		}
		return fmt.Errorf("move image: %w", err)
	}

	s.invalidateGallery(ctx, ownerID)
	return nil
}

// Delete removes the store copy first; if the store refuses, the record is
// kept, because it is the only durable reference back to the asset.
func (s *ImageService) Delete(ctx context.Context, ownerID string, imageID string) error {
	image, err := s.GetByID(ctx, ownerID, imageID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, image.PublicID); err != nil {
		return apperr.Wrap(apperr.KindExternalStore, "media store delete failed", err)
	}

	if err := s.images.Delete(ctx, ownerID, imageID); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return apperr.NotFound("image not found")
		}
		return fmt.Errorf("delete image record: %w", err)
	}

	s.invalidateGallery(ctx, ownerID)

	s.log.Info().
		Str("owner_id", ownerID).
		Str("image_id", imageID).
		Str("public_id", image.PublicID).
		Msg("image deleted")

	return nil
}

func (s *ImageService) invalidateGallery(ctx context.Context, ownerID string) {
	if s.cache != nil {
		s.cache.Delete(ctx, galleryCacheKey(ownerID))
	}
}

func (s *ImageService) enqueueOrphan(ctx context.Context, publicID string) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(ctx, map[string]any{
		"type":     "orphan",
		"publicId": publicID,
	}); err != nil {
		s.log.Warn().Err(err).Str("public_id", publicID).Msg("enqueue orphan cleanup failed")
	}
}
