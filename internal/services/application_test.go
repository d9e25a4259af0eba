package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubportal/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestApplicationService_SubmitAndDecide(t *testing.T) {
	ctx := context.Background()
	profiles := &mockProfileRepository{profiles: map[string]*domain.Profile{
		"prof-1": {ID: "prof-1", Email: "jdoe@uwaterloo.ca", FirstName: "Jane"},
	}}
	apps := &mockApplicationRepository{}
	emails := &mockEmailService{}
	svc := NewApplicationService(apps, profiles, emails, testLogger())

	app, err := svc.Submit(ctx, "prof-1", "Events Director", `{"why":"I like events"}`)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPending, app.Status)

	decided, err := svc.Decide(ctx, app.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationAccepted, decided.Status)
	require.Len(t, emails.sent, 1)
	assert.Equal(t, "application_decision", emails.sent[0].kind)
	assert.Equal(t, "jdoe@uwaterloo.ca", emails.sent[0].to)
}

func TestApplicationService_Submit_Invalid(t *testing.T) {
	ctx := context.Background()
	svc := NewApplicationService(&mockApplicationRepository{}, &mockProfileRepository{}, nil, testLogger())

	_, err := svc.Submit(ctx, "prof-1", "  ", "{}")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Submit(ctx, "prof-404", "Events Director", "{}")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplicationService_Decide_OnlyPending(t *testing.T) {
	ctx := context.Background()
	apps := &mockApplicationRepository{apps: map[string]*domain.Application{
		"app-1": {ID: "app-1", ProfileID: "prof-1", Status: domain.ApplicationAccepted},
	}}
	svc := NewApplicationService(apps, &mockProfileRepository{}, nil, testLogger())

	_, err := svc.Decide(ctx, "app-1", false)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplicationService_Decide_EmailFailureDoesNotUndoDecision(t *testing.T) {
	ctx := context.Background()
	profiles := &mockProfileRepository{profiles: map[string]*domain.Profile{
		"prof-1": {ID: "prof-1", Email: "jdoe@uwaterloo.ca"},
	}}
	apps := &mockApplicationRepository{apps: map[string]*domain.Application{
		"app-1": {ID: "app-1", ProfileID: "prof-1", Position: "Treasurer", Status: domain.ApplicationPending},
	}}
	emails := &mockEmailService{err: assert.AnError}
	svc := NewApplicationService(apps, profiles, emails, testLogger())

	decided, err := svc.Decide(ctx, "app-1", false)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationRejected, decided.Status)
}

func TestApplicationService_List_StatusFilter(t *testing.T) {
	ctx := context.Background()
	apps := &mockApplicationRepository{apps: map[string]*domain.Application{
		"a": {ID: "a", Status: domain.ApplicationPending},
		"b": {ID: "b", Status: domain.ApplicationAccepted},
	}}
	svc := NewApplicationService(apps, &mockProfileRepository{}, nil, testLogger())

	out, total, err := svc.List(ctx, "pending", domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, out, 1)

	_, _, err = svc.List(ctx, "bogus", domain.PaginationParams{Page: 1, PageSize: 20})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMembershipService_GrantRevoke(t *testing.T) {
	ctx := context.Background()
	profiles := &mockProfileRepository{profiles: map[string]*domain.Profile{
		"prof-1": {ID: "prof-1", Email: "jdoe@uwaterloo.ca", FirstName: "Jane"},
	}}
	memberships := &mockMembershipRepository{}
	emails := &mockEmailService{}
	svc := NewMembershipService(memberships, profiles, emails, testLogger())

	m, err := svc.Grant(ctx, "prof-1", "w25")
	require.NoError(t, err)
	assert.Equal(t, "W25", m.Term)
	require.Len(t, emails.sent, 1)
	assert.Equal(t, "membership_confirmation", emails.sent[0].kind)

	// Duplicate grant for the same term.
	_, err = svc.Grant(ctx, "prof-1", "W25")
	require.ErrorIs(t, err, domain.ErrAlreadyMember)

	require.NoError(t, svc.Revoke(ctx, m.ID))
	require.ErrorIs(t, svc.Revoke(ctx, m.ID), domain.ErrNotFound)
}

func TestMembershipService_Grant_UnknownProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewMembershipService(&mockMembershipRepository{}, &mockProfileRepository{}, nil, testLogger())
	_, err := svc.Grant(ctx, "prof-404", "W25")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthService_SignUpAndLogIn(t *testing.T) {
	ctx := context.Background()
	profiles := &mockProfileRepository{}
	svc := NewAuthService(profiles, &mockHasher{}, &mockTokenIssuer{}, 0)

	token, profile, err := svc.SignUp(ctx, &domain.SignUpParams{
		Email:     "JDoe@uwaterloo.ca",
		Password:  "hunter2hunter2",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, "jdoe@uwaterloo.ca", profile.Email)
	assert.Equal(t, domain.RoleMember, profile.Role)
	assert.NotEmpty(t, token)

	// Duplicate email.
	_, _, err = svc.SignUp(ctx, &domain.SignUpParams{Email: "jdoe@uwaterloo.ca", Password: "hunter2hunter2"})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, got, err := svc.LogIn(ctx, "jdoe@uwaterloo.ca", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, got.ID)

	_, _, err = svc.LogIn(ctx, "jdoe@uwaterloo.ca", "wrong-password")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.LogIn(ctx, "nobody@uwaterloo.ca", "hunter2hunter2")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(&mockProfileRepository{}, &mockHasher{}, &mockTokenIssuer{}, 0)

	_, _, err := svc.SignUp(ctx, &domain.SignUpParams{Email: "not-an-email", Password: "hunter2hunter2"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = svc.SignUp(ctx, &domain.SignUpParams{Email: "jdoe@uwaterloo.ca", Password: "short"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
