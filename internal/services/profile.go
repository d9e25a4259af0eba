package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clubportal/internal/domain"
)

type profileService struct {
	profileRepo domain.ProfileRepository
}

// NewProfileService creates a ProfileService.
func NewProfileService(profileRepo domain.ProfileRepository) domain.ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	p, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, id string, upd *domain.ProfileUpdate) (*domain.Profile, error) {
	if upd.WatIAM != nil {
		w := strings.TrimSpace(strings.ToLower(*upd.WatIAM))
		upd.WatIAM = &w
	}
	if upd.Term != nil {
		t := strings.TrimSpace(strings.ToUpper(*upd.Term))
		upd.Term = &t
	}
	p, err := s.profileRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

func (s *profileService) List(ctx context.Context, search string, params domain.PaginationParams) ([]*domain.Profile, int, error) {
	profiles, total, err := s.profileRepo.List(ctx, strings.TrimSpace(search), params)
	if err != nil {
		return nil, 0, fmt.Errorf("list profiles: %w", err)
	}
	if profiles == nil {
		profiles = []*domain.Profile{}
	}
	return profiles, total, nil
}
