package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"galleria/api/internal/models"
)

var (
	ErrOwnerNotFound   = errors.New("owner not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrDuplicateFolder = errors.New("duplicate folder name")
)

// uniqueViolation is the Postgres SQLSTATE raised by unique indexes.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type OwnerRepository struct {
	pool *pgxpool.Pool
}

func NewOwnerRepository(pool *pgxpool.Pool) *OwnerRepository {
	return &OwnerRepository{pool: pool}
}

func (r *OwnerRepository) Create(ctx context.Context, owner models.Owner) error {
	const query = `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`

	_, err := r.pool.Exec(ctx, query, owner.ID, owner.Email, owner.PasswordHash)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *OwnerRepository) FindByEmail(ctx context.Context, email string) (models.Owner, error) {
	const query = `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users WHERE email = $1
	`

	row := r.pool.QueryRow(ctx, query, email)
	var owner models.Owner
	if err := row.Scan(
		&owner.ID,
		&owner.Email,
		&owner.PasswordHash,
		&owner.CreatedAt,
		&owner.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Owner{}, ErrOwnerNotFound
		}
		return models.Owner{}, err
	}
	return owner, nil
}

func (r *OwnerRepository) GetByID(ctx context.Context, id string) (models.Owner, error) {
	const query = `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	var owner models.Owner
	if err := row.Scan(
		&owner.ID,
		&owner.Email,
		&owner.PasswordHash,
		&owner.CreatedAt,
		&owner.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Owner{}, ErrOwnerNotFound
		}
		return models.Owner{}, err
	}
	return owner, nil
}
