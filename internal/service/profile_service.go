package service

import (
	"context"
	"fmt"

	"github.com/swagatham/donation-api/internal/domain"
	"github.com/swagatham/donation-api/internal/repo/postgres"
)

type ProfileService interface {
	GetProfile(ctx context.Context, phone string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, phone string, req *domain.ProfileUpdateRequest) error
}

type profileService struct {
	users    postgres.UsersRepo
	payments postgres.PaymentsRepo
	kyc      postgres.KYCRepo
}

func NewProfileService(users postgres.UsersRepo, payments postgres.PaymentsRepo, kyc postgres.KYCRepo) ProfileService {
	return &profileService{users: users, payments: payments, kyc: kyc}
}

func (s *profileService) GetProfile(ctx context.Context, phone string) (*domain.Profile, error) {
	u, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	family, err := s.users.ListFamilyMembers(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("list family members: %w", err)
	}

	payments, err := s.payments.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	kycDoc, err := s.kyc.GetByUser(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("load kyc documents: %w", err)
	}

	return &domain.Profile{
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		DOB:             u.DOB,
		Gender:          u.Gender,
		Address:         u.Address,
		FamilyMembers:   family,
		Payments:        payments,
		KYCDocuments:    kycDoc,
		ProfileComplete: u.ProfileComplete,
	}, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, phone string, req *domain.ProfileUpdateRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}
	return s.users.UpdateProfile(ctx, phone, req)
}
