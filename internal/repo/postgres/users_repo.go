package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swagatham/donation-api/internal/domain"
)

// UsersRepo is the user directory: donor records keyed by phone number.
type UsersRepo interface {
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	// UpsertVerified creates the user with otp_verified=true if absent, or
	// marks an existing user verified. Idempotent: a retried verification
	// cannot double-create a user. Returns the user's profile_complete flag
	// and whether the row was newly created.
	UpsertVerified(ctx context.Context, phone string) (profileComplete, created bool, err error)
	ListFamilyMembers(ctx context.Context, userID int64) ([]domain.FamilyMember, error)
	// UpdateProfile rewrites the user's profile fields and replaces the
	// family-member set in one transaction.
	UpdateProfile(ctx context.Context, phone string, in *domain.ProfileUpdateRequest) error
}

type UsersRepoImpl struct{ pool *pgxpool.Pool }

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepoImpl { return &UsersRepoImpl{pool: pool} }

func (r *UsersRepoImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	const q = `
SELECT id, phone, name, email, dob, gender, address,
       COALESCE(otp_verified, FALSE), COALESCE(profile_complete, FALSE),
       created_at, updated_at
FROM users WHERE phone=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u domain.User
	err := r.pool.QueryRow(ctx, q, phone).Scan(
		&u.ID, &u.Phone, &u.Name, &u.Email, &u.DOB, &u.Gender, &u.Address,
		&u.OTPVerified, &u.ProfileComplete, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UsersRepoImpl) UpsertVerified(ctx context.Context, phone string) (bool, bool, error) {
	const q = `
INSERT INTO users (phone, otp_verified)
VALUES ($1, TRUE)
ON CONFLICT (phone) DO UPDATE SET otp_verified = TRUE, updated_at = now()
RETURNING COALESCE(profile_complete, FALSE), (xmax = 0)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var profileComplete, created bool
	if err := r.pool.QueryRow(ctx, q, phone).Scan(&profileComplete, &created); err != nil {
		return false, false, err
	}
	return profileComplete, created, nil
}

func (r *UsersRepoImpl) ListFamilyMembers(ctx context.Context, userID int64) ([]domain.FamilyMember, error) {
	const q = `SELECT name, relation, gender, dob::text FROM family_members WHERE user_id=$1 ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []domain.FamilyMember{}
	for rows.Next() {
		var m domain.FamilyMember
		if err := rows.Scan(&m.Name, &m.Relation, &m.Gender, &m.DOB); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *UsersRepoImpl) UpdateProfile(ctx context.Context, phone string, in *domain.ProfileUpdateRequest) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin profile update: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var userID int64
	err = tx.QueryRow(ctx, `SELECT id FROM users WHERE phone=$1`, phone).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
UPDATE users
SET name=$1, email=$2, dob=$3, gender=$4, address=$5, profile_complete=TRUE, updated_at=now()
WHERE id=$6`,
		in.Name, in.Email, in.DOB, in.Gender, in.Address, userID,
	)
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM family_members WHERE user_id=$1`, userID); err != nil {
		return err
	}
	for _, m := range in.FamilyMembers {
		_, err = tx.Exec(ctx, `
INSERT INTO family_members (user_id, name, relation, gender, dob)
VALUES ($1,$2,$3,$4,$5)`,
			userID, m.Name, m.Relation, m.Gender, m.DOB,
		)
		if err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit profile update: %w", err)
	}
	return nil
}
