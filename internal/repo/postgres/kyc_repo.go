package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swagatham/donation-api/internal/domain"
)

type KYCRepo interface {
	Upsert(ctx context.Context, phone string, in *domain.KYCRequest) error
	GetByUser(ctx context.Context, userID int64) (*domain.KYCDocument, error)
}

type KYCRepoImpl struct{ pool *pgxpool.Pool }

func NewKYCRepo(pool *pgxpool.Pool) *KYCRepoImpl { return &KYCRepoImpl{pool: pool} }

func (r *KYCRepoImpl) Upsert(ctx context.Context, phone string, in *domain.KYCRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var userID int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM users WHERE phone=$1`, phone).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}

	var docPath *string
	if in.KYCDocPath != "" {
		docPath = &in.KYCDocPath
	}

	_, err = r.pool.Exec(ctx, `
INSERT INTO kyc_documents (user_id, pan_number, aadhaar_number, date_of_birth, kyc_doc_path)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO UPDATE SET
  pan_number = EXCLUDED.pan_number,
  aadhaar_number = EXCLUDED.aadhaar_number,
  date_of_birth = EXCLUDED.date_of_birth,
  kyc_doc_path = EXCLUDED.kyc_doc_path`,
		userID, in.PANNumber, in.AadhaarNumber, in.DOB, docPath,
	)
	return err
}

func (r *KYCRepoImpl) GetByUser(ctx context.Context, userID int64) (*domain.KYCDocument, error) {
	const q = `
SELECT pan_number, aadhaar_number, date_of_birth::text, kyc_doc_path
FROM kyc_documents WHERE user_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var d domain.KYCDocument
	err := r.pool.QueryRow(ctx, q, userID).Scan(&d.PANNumber, &d.AadhaarNumber, &d.DateOfBirth, &d.KYCDocPath)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
