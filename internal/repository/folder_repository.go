package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"galleria/api/internal/models"
)

var ErrFolderNotFound = errors.New("folder not found")

type FolderRepository struct {
	pool *pgxpool.Pool
}

func NewFolderRepository(pool *pgxpool.Pool) *FolderRepository {
	return &FolderRepository{pool: pool}
}

func (r *FolderRepository) Create(ctx context.Context, folder models.Folder) error {
	const query = `
		INSERT INTO folders (id, owner_id, parent_id, name, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	_, err := r.pool.Exec(ctx, query,
		folder.ID,
		folder.OwnerID,
		folder.ParentID,
		folder.Name,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateFolder
	}
	return err
}

// GetByID folds the ownership check into the predicate: a folder belonging
// to another owner is indistinguishable from one that does not exist.
func (r *FolderRepository) GetByID(ctx context.Context, ownerID string, id string) (models.Folder, error) {
	const query = `
		SELECT id, owner_id, parent_id, name, created_at
		FROM folders WHERE id = $1 AND owner_id = $2
	`

	row := r.pool.QueryRow(ctx, query, id, ownerID)
	var folder models.Folder
	if err := row.Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.Name,
		&folder.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Folder{}, ErrFolderNotFound
		}
		return models.Folder{}, err
	}
	return folder, nil
}

// FindByName locates a folder by exact name under the given parent. A nil
// parent means the root, which needs the IS NULL form.
func (r *FolderRepository) FindByName(ctx context.Context, ownerID string, name string, parentID *string) (models.Folder, error) {
	const withParent = `
		SELECT id, owner_id, parent_id, name, created_at
		FROM folders
		WHERE owner_id = $1 AND name = $2 AND parent_id = $3
		LIMIT 1
	`
	const atRoot = `
		SELECT id, owner_id, parent_id, name, created_at
		FROM folders
		WHERE owner_id = $1 AND name = $2 AND parent_id IS NULL
		LIMIT 1
	`

	var row pgx.Row
	if parentID != nil {
		row = r.pool.QueryRow(ctx, withParent, ownerID, name, *parentID)
	} else {
		row = r.pool.QueryRow(ctx, atRoot, ownerID, name)
	}

	var folder models.Folder
	if err := row.Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.Name,
		&folder.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Folder{}, ErrFolderNotFound
		}
		return models.Folder{}, err
	}
	return folder, nil
}

func (r *FolderRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	const query = `
		SELECT id, owner_id, parent_id, name, created_at
		FROM folders
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := rows.Scan(
			&folder.ID,
			&folder.OwnerID,
			&folder.ParentID,
			&folder.Name,
			&folder.CreatedAt,
		); err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}
	return folders, rows.Err()
}

func (r *FolderRepository) UpdateParent(ctx context.Context, ownerID string, id string, parentID *string) (models.Folder, error) {
	const query = `
		UPDATE folders SET parent_id = $3
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, parent_id, name, created_at
	`

	row := r.pool.QueryRow(ctx, query, id, ownerID, parentID)
	var folder models.Folder
	if err := row.Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.Name,
		&folder.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Folder{}, ErrFolderNotFound
		}
		if isUniqueViolation(err) {
			return models.Folder{}, ErrDuplicateFolder
		}
		return models.Folder{}, err
	}
	return folder, nil
}

func (r *FolderRepository) Delete(ctx context.Context, ownerID string, id string) error {
	const query = `DELETE FROM folders WHERE id = $1 AND owner_id = $2`

	cmd, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrFolderNotFound
	}
	return nil
}

// CountChildren reports how many folders name the given folder as parent.
func (r *FolderRepository) CountChildren(ctx context.Context, ownerID string, id string) (int64, error) {
	const query = `SELECT COUNT(*) FROM folders WHERE owner_id = $1 AND parent_id = $2`

	var count int64
	if err := r.pool.QueryRow(ctx, query, ownerID, id).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
