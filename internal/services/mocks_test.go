package services

import (
	"context"
	"time"

	"clubportal/internal/domain"
)

// In-memory fakes for the repository and port interfaces, shared by the
// service tests in this package.

type mockEventRepository struct {
	events map[string]*domain.Event
	err    error
}

func (m *mockEventRepository) Create(ctx context.Context, e *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	e.ID = "ev-created"
	if m.events == nil {
		m.events = map[string]*domain.Event{}
	}
	m.events[e.ID] = e
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *mockEventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Event
	for _, e := range m.events {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEventRepository) ListActive(ctx context.Context, now time.Time) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Event
	for _, e := range m.events {
		if e.CheckInOpen(now) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEventRepository) Update(ctx context.Context, id string, upd *domain.EventUpdate) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Name != nil {
		e.Name = *upd.Name
	}
	if upd.StartTime != nil {
		e.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		e.EndTime = *upd.EndTime
	}
	if upd.BufferedStart != nil {
		e.BufferedStart = *upd.BufferedStart
	}
	if upd.BufferedEnd != nil {
		e.BufferedEnd = *upd.BufferedEnd
	}
	return e, nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

type mockMembershipRepository struct {
	memberships map[string]*domain.Membership
	err         error
}

func (m *mockMembershipRepository) Create(ctx context.Context, mem *domain.Membership) error {
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.memberships {
		if existing.ProfileID == mem.ProfileID && existing.Term == mem.Term {
			return domain.ErrAlreadyMember
		}
	}
	mem.ID = "mem-created"
	if m.memberships == nil {
		m.memberships = map[string]*domain.Membership{}
	}
	m.memberships[mem.ID] = mem
	return nil
}

func (m *mockMembershipRepository) GetByID(ctx context.Context, id string) (*domain.Membership, error) {
	if m.err != nil {
		return nil, m.err
	}
	mem, ok := m.memberships[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return mem, nil
}

func (m *mockMembershipRepository) GetCurrentByProfile(ctx context.Context, profileID string) (*domain.Membership, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, mem := range m.memberships {
		if mem.ProfileID == profileID {
			return mem, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockMembershipRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.memberships[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.memberships, id)
	return nil
}

func (m *mockMembershipRepository) List(ctx context.Context, term string, params domain.PaginationParams) ([]*domain.MembershipWithProfile, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return nil, 0, nil
}

type mockProfileRepository struct {
	profiles    map[string]*domain.Profile
	credentials map[string]struct{ hash, salt string } // keyed by email
	err         error
}

func (m *mockProfileRepository) Create(ctx context.Context, p *domain.Profile, passwordHash, salt string) error {
	if m.err != nil {
		return m.err
	}
	if m.profiles == nil {
		m.profiles = map[string]*domain.Profile{}
	}
	for _, existing := range m.profiles {
		if existing.Email == p.Email {
			return domain.ErrDuplicateEmail
		}
	}
	p.ID = "prof-created"
	m.profiles[p.ID] = p
	if m.credentials == nil {
		m.credentials = map[string]struct{ hash, salt string }{}
	}
	m.credentials[p.Email] = struct{ hash, salt string }{passwordHash, salt}
	return nil
}

func (m *mockProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockProfileRepository) GetCredentialsByEmail(ctx context.Context, email string) (*domain.Profile, string, string, error) {
	if m.err != nil {
		return nil, "", "", m.err
	}
	p, err := m.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", "", err
	}
	cred := m.credentials[email]
	return p, cred.hash, cred.salt, nil
}

func (m *mockProfileRepository) Update(ctx context.Context, id string, upd *domain.ProfileUpdate) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.FirstName != nil {
		p.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		p.LastName = *upd.LastName
	}
	if upd.WatIAM != nil {
		p.WatIAM = *upd.WatIAM
	}
	if upd.Faculty != nil {
		p.Faculty = *upd.Faculty
	}
	if upd.Term != nil {
		p.Term = *upd.Term
	}
	if upd.IsMathSocMember != nil {
		p.IsMathSocMember = *upd.IsMathSocMember
	}
	return p, nil
}

func (m *mockProfileRepository) List(ctx context.Context, search string, params domain.PaginationParams) ([]*domain.Profile, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return nil, 0, nil
}

type mockAttendanceRepository struct {
	rows        map[string]*domain.Attendance // key: eventID + ":" + profileID
	createCalls int
	existsErr   error
	createErr   error
	// forceConflict makes Create report created=false even when the pair is
	// absent, to exercise the lost-race path.
	forceConflict bool
}

func attendanceKey(eventID, profileID string) string {
	return eventID + ":" + profileID
}

func (m *mockAttendanceRepository) Create(ctx context.Context, a *domain.Attendance) (bool, error) {
	m.createCalls++
	if m.createErr != nil {
		return false, m.createErr
	}
	if m.forceConflict {
		return false, nil
	}
	key := attendanceKey(a.EventID, a.ProfileID)
	if m.rows == nil {
		m.rows = map[string]*domain.Attendance{}
	}
	if _, ok := m.rows[key]; ok {
		return false, nil
	}
	a.ID = "att-created"
	m.rows[key] = a
	return true, nil
}

func (m *mockAttendanceRepository) Exists(ctx context.Context, eventID, profileID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.rows[attendanceKey(eventID, profileID)]
	return ok, nil
}

func (m *mockAttendanceRepository) Delete(ctx context.Context, eventID, profileID string) (bool, error) {
	key := attendanceKey(eventID, profileID)
	if _, ok := m.rows[key]; !ok {
		return false, nil
	}
	delete(m.rows, key)
	return true, nil
}

func (m *mockAttendanceRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.AttendanceWithProfile, error) {
	var out []*domain.AttendanceWithProfile
	for _, a := range m.rows {
		if a.EventID == eventID {
			out = append(out, &domain.AttendanceWithProfile{Attendance: a})
		}
	}
	return out, nil
}

type sentEmail struct {
	kind string
	to   string
}

type mockEmailService struct {
	sent []sentEmail
	err  error
}

func (m *mockEmailService) SendMembershipConfirmation(ctx context.Context, data *domain.MembershipConfirmationEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{kind: "membership_confirmation", to: data.Email})
	return nil
}

func (m *mockEmailService) SendApplicationDecision(ctx context.Context, data *domain.ApplicationDecisionEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{kind: "application_decision", to: data.Email})
	return nil
}

type mockApplicationRepository struct {
	apps map[string]*domain.Application
	err  error
}

func (m *mockApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	if m.err != nil {
		return m.err
	}
	a.ID = "app-created"
	if m.apps == nil {
		m.apps = map[string]*domain.Application{}
	}
	m.apps[a.ID] = a
	return nil
}

func (m *mockApplicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (m *mockApplicationRepository) ListByProfileID(ctx context.Context, profileID string) ([]*domain.Application, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Application
	for _, a := range m.apps {
		if a.ProfileID == profileID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepository) List(ctx context.Context, status string, params domain.PaginationParams) ([]*domain.Application, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var out []*domain.Application
	for _, a := range m.apps {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (m *mockApplicationRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Application, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.Status = status
	return a, nil
}

type mockHasher struct {
	failCompare bool
}

func (m *mockHasher) GenerateSalt() (string, error) { return "salt", nil }
func (m *mockHasher) Hash(salt, password string) (string, error) {
	return "hashed:" + salt + ":" + password, nil
}
func (m *mockHasher) Compare(hash, salt, password string) error {
	if m.failCompare || hash != "hashed:"+salt+":"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type mockTokenIssuer struct{}

func (m *mockTokenIssuer) Issue(profileID, email, role string, expiry time.Duration) (string, error) {
	return "jwt-for-" + profileID, nil
}
