// Package qrclient implements the member-device side of the check-in scheme:
// it builds the QR payload, regenerates the rotating token as time steps roll
// over, and polls the server until the scan lands.
package qrclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// CheckInPayload is the decoded content of a check-in QR code.
type CheckInPayload struct {
	EventID      string
	MembershipID string
	Token        string
}

// Payload encodes the check-in parameters as a URL under base, suitable for
// QR rendering. The scanner posts the same three values to /checkin.
func Payload(base, eventID, membershipID, token string) string {
	v := url.Values{}
	v.Set("event_id", eventID)
	v.Set("membership_id", membershipID)
	v.Set("token", token)
	return strings.TrimSuffix(base, "/") + "/checkin?" + v.Encode()
}

// ParsePayload decodes a scanned payload URL and validates its IDs.
func ParsePayload(raw string) (*CheckInPayload, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}
	q := u.Query()
	p := &CheckInPayload{
		EventID:      q.Get("event_id"),
		MembershipID: q.Get("membership_id"),
		Token:        q.Get("token"),
	}
	if _, err := uuid.Parse(p.EventID); err != nil {
		return nil, fmt.Errorf("invalid event_id: %w", err)
	}
	if _, err := uuid.Parse(p.MembershipID); err != nil {
		return nil, fmt.Errorf("invalid membership_id: %w", err)
	}
	if p.Token == "" {
		return nil, fmt.Errorf("missing token")
	}
	return p, nil
}
