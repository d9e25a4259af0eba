package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubportal/internal/checkin"
	"clubportal/internal/domain"
	"clubportal/monitoring"
)

type checkInService struct {
	eventRepo      domain.EventRepository
	membershipRepo domain.MembershipRepository
	profileRepo    domain.ProfileRepository
	attendanceRepo domain.AttendanceRepository
}

// NewCheckInService creates a CheckInService with the given repositories.
func NewCheckInService(
	eventRepo domain.EventRepository,
	membershipRepo domain.MembershipRepository,
	profileRepo domain.ProfileRepository,
	attendanceRepo domain.AttendanceRepository,
) domain.CheckInService {
	return &checkInService{
		eventRepo:      eventRepo,
		membershipRepo: membershipRepo,
		profileRepo:    profileRepo,
		attendanceRepo: attendanceRepo,
	}
}

// identityProof resolves a check-in request to the attendee's profile. The
// two variants differ only in how presence is proven; the surrounding
// pipeline (window check, duplicate check, insert) is shared.
type identityProof interface {
	resolve(ctx context.Context, s *checkInService) (*domain.Profile, error)
}

// tokenProof proves presence with the rotating HMAC token: the membership is
// looked up by its own record ID, not the caller's session, and the token is
// what ties the request to the legitimate member's device.
type tokenProof struct {
	membershipID string
	token        string
}

func (p tokenProof) resolve(ctx context.Context, s *checkInService) (*domain.Profile, error) {
	m, err := s.membershipRepo.GetByID(ctx, p.membershipID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidMembership
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	profile, err := s.profileRepo.GetByID(ctx, m.ProfileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidMembership
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if !checkin.Verify(profile.ID, p.token, time.Now()) {
		return nil, domain.ErrInvalidCheckInToken
	}
	return profile, nil
}

// trustedAdminAssertion identifies the attendee directly; the admin caller
// vouches for their presence, so no token is required.
type trustedAdminAssertion struct {
	profileID string
}

func (p trustedAdminAssertion) resolve(ctx context.Context, s *checkInService) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, p.profileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidProfile
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *checkInService) SelfCheckIn(ctx context.Context, eventID, membershipID, token string) (*domain.Profile, error) {
	p, err := s.checkIn(ctx, eventID, tokenProof{membershipID: membershipID, token: token})
	monitoring.RecordCheckIn(monitoring.FlowSelf, outcomeLabel(err))
	return p, err
}

func (s *checkInService) ManualCheckIn(ctx context.Context, eventID, profileID string) (*domain.Profile, error) {
	p, err := s.checkIn(ctx, eventID, trustedAdminAssertion{profileID: profileID})
	monitoring.RecordCheckIn(monitoring.FlowManual, outcomeLabel(err))
	return p, err
}

// checkIn is the shared pipeline: window check, identity resolution,
// duplicate check, idempotent insert. Failures never mutate state.
func (s *checkInService) checkIn(ctx context.Context, eventID string, proof identityProof) (*domain.Profile, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.CheckInOpen(time.Now()) {
		return nil, domain.ErrEventNotActive
	}

	profile, err := proof.resolve(ctx, s)
	if err != nil {
		return nil, err
	}

	exists, err := s.attendanceRepo.Exists(ctx, event.ID, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("check attendance: %w", err)
	}
	if exists {
		return profile, domain.ErrAlreadyCheckedIn
	}

	created, err := s.attendanceRepo.Create(ctx, domain.NewAttendance(event.ID, profile.ID, time.Now()))
	if err != nil {
		return nil, fmt.Errorf("create attendance: %w", err)
	}
	if !created {
		// Lost a race with a concurrent check-in; the unique constraint
		// kept the record single.
		return profile, domain.ErrAlreadyCheckedIn
	}
	return profile, nil
}

func (s *checkInService) UncheckIn(ctx context.Context, eventID, profileID string) error {
	deleted, err := s.attendanceRepo.Delete(ctx, eventID, profileID)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	if !deleted {
		return domain.ErrNotFound
	}
	monitoring.RecordUncheckIn()
	return nil
}

func (s *checkInService) Status(ctx context.Context, eventID, profileID string) (bool, error) {
	checked, err := s.attendanceRepo.Exists(ctx, eventID, profileID)
	if err != nil {
		return false, fmt.Errorf("check attendance: %w", err)
	}
	return checked, nil
}

func (s *checkInService) ListAttendance(ctx context.Context, eventID string) ([]*domain.AttendanceWithProfile, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	list, err := s.attendanceRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	if list == nil {
		list = []*domain.AttendanceWithProfile{}
	}
	return list, nil
}

// outcomeLabel maps a check-in result to a metrics label.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return monitoring.OutcomeSuccess
	case errors.Is(err, domain.ErrAlreadyCheckedIn):
		return monitoring.OutcomeAlreadyIn
	case errors.Is(err, domain.ErrEventNotActive):
		return monitoring.OutcomeWindowClosed
	case errors.Is(err, domain.ErrInvalidCheckInToken):
		return monitoring.OutcomeInvalidToken
	case errors.Is(err, domain.ErrInvalidMembership),
		errors.Is(err, domain.ErrInvalidProfile),
		errors.Is(err, domain.ErrNotFound):
		return monitoring.OutcomeNotFound
	default:
		return monitoring.OutcomeError
	}
}
