package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexedwards/argon2id"

	"github.com/swagatham/donation-api/internal/domain"
	"github.com/swagatham/donation-api/internal/repo/postgres"
	"github.com/swagatham/donation-api/pkg/auth"
	"github.com/swagatham/donation-api/pkg/config"
)

type AdminService interface {
	Login(ctx context.Context, req *domain.AdminLoginRequest) (token string, err error)
}

type adminService struct {
	admins postgres.AdminsRepo
	cfg    *config.Config
}

func NewAdminService(admins postgres.AdminsRepo, cfg *config.Config) AdminService {
	return &adminService{admins: admins, cfg: cfg}
}

func (s *adminService) Login(ctx context.Context, req *domain.AdminLoginRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	admin, err := s.admins.FindByUsername(ctx, req.Username)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup admin: %w", err)
	}

	ok, err := argon2id.ComparePasswordAndHash(req.Password, admin.PasswordHash)
	if err != nil || !ok {
		return "", domain.ErrInvalidCredentials
	}

	return auth.NewAdminToken(admin.ID, admin.Username, s.cfg.Auth.JWTSecret, s.cfg.Auth.AdminSessionTTL)
}
