package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"galleria/api/internal/models"
)

var ErrImageNotFound = errors.New("image not found")

const imageColumns = `id, owner_id, folder_id, public_id, url, original_name, mime_type, size_bytes,
	       author, title, subject, theme, description, tags, created_at, updated_at`

type ImageRepository struct {
	pool *pgxpool.Pool
}

func NewImageRepository(pool *pgxpool.Pool) *ImageRepository {
	return &ImageRepository{pool: pool}
}

func scanImage(row pgx.Row) (models.Image, error) {
	var image models.Image
	err := row.Scan(
		&image.ID,
		&image.OwnerID,
		&image.FolderID,
		&image.PublicID,
		&image.URL,
		&image.OriginalName,
		&image.MimeType,
		&image.SizeBytes,
		&image.Author,
		&image.Title,
		&image.Subject,
		&image.Theme,
		&image.Description,
		&image.Tags,
		&image.CreatedAt,
		&image.UpdatedAt,
	)
	return image, err
}

func (r *ImageRepository) Create(ctx context.Context, image models.Image) error {
	const query = `
		INSERT INTO images (
			id, owner_id, folder_id, public_id, url, original_name, mime_type, size_bytes,
			author, title, subject, theme, description, tags, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		image.ID,
		image.OwnerID,
		image.FolderID,
		image.PublicID,
		image.URL,
		image.OriginalName,
		image.MimeType,
		image.SizeBytes,
		image.Author,
		image.Title,
		image.Subject,
		image.Theme,
		image.Description,
		image.Tags,
	)
	return err
}

func (r *ImageRepository) GetByID(ctx context.Context, ownerID string, id string) (models.Image, error) {
	query := fmt.Sprintf(`SELECT %s FROM images WHERE id = $1 AND owner_id = $2`, imageColumns)

	image, err := scanImage(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Image{}, ErrImageNotFound
		}
		return models.Image{}, err
	}
	return image, nil
}

func (r *ImageRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Image, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM images
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`, imageColumns)

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectImages(rows)
}

// ListByFolder filters to one folder; a nil folderID selects images living
// at the root.
func (r *ImageRepository) ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]models.Image, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if folderID != nil {
		query := fmt.Sprintf(`
			SELECT %s FROM images
			WHERE owner_id = $1 AND folder_id = $2
			ORDER BY created_at DESC, id DESC
		`, imageColumns)
		rows, err = r.pool.Query(ctx, query, ownerID, *folderID)
	} else {
		query := fmt.Sprintf(`
			SELECT %s FROM images
			WHERE owner_id = $1 AND folder_id IS NULL
			ORDER BY created_at DESC, id DESC
		`, imageColumns)
		rows, err = r.pool.Query(ctx, query, ownerID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectImages(rows)
}

func collectImages(rows pgx.Rows) ([]models.Image, error) {
	var images []models.Image
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func (r *ImageRepository) UpdateFolder(ctx context.Context, ownerID string, id string, folderID *string) error {
	const query = `
		UPDATE images SET folder_id = $3, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
	`

	cmd, err := r.pool.Exec(ctx, query, id, ownerID, folderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrImageNotFound
	}
	return nil
}

func (r *ImageRepository) UpdateURL(ctx context.Context, id string, url string) (models.Image, error) {
	query := fmt.Sprintf(`
		UPDATE images SET url = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, imageColumns)

	image, err := scanImage(r.pool.QueryRow(ctx, query, id, url))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Image{}, ErrImageNotFound
		}
		return models.Image{}, err
	}
	return image, nil
}

// UpdateMetadata applies the non-nil fields. The SET clause is assembled
// dynamically; callers guarantee at least one field is present.
func (r *ImageRepository) UpdateMetadata(ctx context.Context, id string, meta models.ImageMetadata) (models.Image, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	idx := 1

	appendField := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if meta.Author != nil {
		appendField("author", *meta.Author)
	}
	if meta.Title != nil {
		appendField("title", *meta.Title)
	}
	if meta.Subject != nil {
		appendField("subject", *meta.Subject)
	}
	if meta.Theme != nil {
		appendField("theme", *meta.Theme)
	}
	if meta.Description != nil {
		appendField("description", *meta.Description)
	}
	if meta.Tags != nil {
		appendField("tags", meta.Tags)
	}

	if len(sets) == 0 {
		return models.Image{}, errors.New("no metadata fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE images SET %s, updated_at = NOW()
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), idx, imageColumns)
	args = append(args, id)

	image, err := scanImage(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Image{}, ErrImageNotFound
		}
		return models.Image{}, err
	}
	return image, nil
}

func (r *ImageRepository) Delete(ctx context.Context, ownerID string, id string) error {
	const query = `DELETE FROM images WHERE id = $1 AND owner_id = $2`

	cmd, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrImageNotFound
	}
	return nil
}

// CountByFolder reports how many images reference the folder.
func (r *ImageRepository) CountByFolder(ctx context.Context, ownerID string, folderID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM images WHERE owner_id = $1 AND folder_id = $2`

	var count int64
	if err := r.pool.QueryRow(ctx, query, ownerID, folderID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
