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

type applicationService struct {
	applicationRepo domain.ApplicationRepository
	profileRepo     domain.ProfileRepository
	emailService    domain.EmailService
	logger          *slog.Logger
}

// NewApplicationService creates an ApplicationService. emailService may be
// nil to skip decision emails.
func NewApplicationService(
	applicationRepo domain.ApplicationRepository,
	profileRepo domain.ProfileRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		profileRepo:     profileRepo,
		emailService:    emailService,
		logger:          logger,
	}
}

func (s *applicationService) Submit(ctx context.Context, profileID, position, answers string) (*domain.Application, error) {
	position = strings.TrimSpace(position)
	if position == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.profileRepo.GetByID(ctx, profileID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	now := time.Now()
	app := domain.NewApplication(profileID, position, answers, now, now)
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return app, nil
}

func (s *applicationService) ListMine(ctx context.Context, profileID string) ([]*domain.Application, error) {
	apps, err := s.applicationRepo.ListByProfileID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	if apps == nil {
		apps = []*domain.Application{}
	}
	return apps, nil
}

func (s *applicationService) List(ctx context.Context, status string, params domain.PaginationParams) ([]*domain.Application, int, error) {
	status = strings.TrimSpace(strings.ToLower(status))
	switch status {
	case "", domain.ApplicationPending, domain.ApplicationAccepted, domain.ApplicationRejected:
	default:
		return nil, 0, domain.ErrInvalidInput
	}
	apps, total, err := s.applicationRepo.List(ctx, status, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	if apps == nil {
		apps = []*domain.Application{}
	}
	return apps, total, nil
}

func (s *applicationService) Decide(ctx context.Context, applicationID string, accept bool) (*domain.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	if app.Status != domain.ApplicationPending {
		return nil, domain.ErrInvalidInput
	}

	status := domain.ApplicationRejected
	if accept {
		status = domain.ApplicationAccepted
	}
	updated, err := s.applicationRepo.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update application status: %w", err)
	}

	if s.emailService != nil {
		profile, err := s.profileRepo.GetByID(ctx, updated.ProfileID)
		if err != nil {
			s.logger.WarnContext(ctx, "applicant profile lookup failed for decision email", "application_id", updated.ID, "err", err)
			return updated, nil
		}
		data := &domain.ApplicationDecisionEmailData{
			Email:     profile.Email,
			FirstName: profile.FirstName,
			Position:  updated.Position,
			Accepted:  accept,
		}
		if err := s.emailService.SendApplicationDecision(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "application decision email failed", "application_id", updated.ID, "err", err)
		}
	}
	return updated, nil
}
