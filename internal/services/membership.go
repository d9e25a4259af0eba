package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clubportal/internal/domain"
)

type membershipService struct {
	membershipRepo domain.MembershipRepository
	profileRepo    domain.ProfileRepository
	emailService   domain.EmailService
	logger         *slog.Logger
}

// NewMembershipService creates a MembershipService. emailService may be nil
// to skip confirmation emails.
func NewMembershipService(
	membershipRepo domain.MembershipRepository,
	profileRepo domain.ProfileRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.MembershipService {
	return &membershipService{
		membershipRepo: membershipRepo,
		profileRepo:    profileRepo,
		emailService:   emailService,
		logger:         logger,
	}
}

func (s *membershipService) Grant(ctx context.Context, profileID, term string) (*domain.Membership, error) {
	term = strings.TrimSpace(strings.ToUpper(term))
	if term == "" {
		return nil, domain.ErrInvalidInput
	}
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	m := domain.NewMembership(profile.ID, term, time.Now())
	if err := s.membershipRepo.Create(ctx, m); err != nil {
		if errors.Is(err, domain.ErrAlreadyMember) {
			return nil, domain.ErrAlreadyMember
		}
		return nil, fmt.Errorf("create membership: %w", err)
	}

	if s.emailService != nil {
		data := &domain.MembershipConfirmationEmailData{
			Email:     profile.Email,
			FirstName: profile.FirstName,
			Term:      term,
		}
		// Confirmation email failures don't undo the grant.
		if err := s.emailService.SendMembershipConfirmation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "membership confirmation email failed", "profile_id", profile.ID, "err", err)
		}
	}
	return m, nil
}

func (s *membershipService) Revoke(ctx context.Context, membershipID string) error {
	if err := s.membershipRepo.Delete(ctx, membershipID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}

func (s *membershipService) GetCurrentByProfile(ctx context.Context, profileID string) (*domain.Membership, error) {
	m, err := s.membershipRepo.GetCurrentByProfile(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return m, nil
}

func (s *membershipService) List(ctx context.Context, term string, params domain.PaginationParams) ([]*domain.MembershipWithProfile, int, error) {
	list, total, err := s.membershipRepo.List(ctx, strings.TrimSpace(strings.ToUpper(term)), params)
	if err != nil {
		return nil, 0, fmt.Errorf("list memberships: %w", err)
	}
	if list == nil {
		list = []*domain.MembershipWithProfile{}
	}
	return list, total, nil
}
