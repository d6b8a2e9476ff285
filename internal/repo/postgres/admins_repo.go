package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swagatham/donation-api/internal/domain"
)

type AdminsRepo interface {
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

type AdminsRepoImpl struct{ pool *pgxpool.Pool }

func NewAdminsRepo(pool *pgxpool.Pool) *AdminsRepoImpl { return &AdminsRepoImpl{pool: pool} }

func (r *AdminsRepoImpl) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	const q = `SELECT id, username, password_hash, created_at FROM admins WHERE username=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a domain.Admin
	err := r.pool.QueryRow(ctx, q, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
