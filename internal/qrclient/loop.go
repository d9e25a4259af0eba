package qrclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"clubportal/internal/checkin"
)

// Loop drives a QR display for one event: a fresh payload when the token
// rotates, a once-a-second countdown, and a poll of the attendance status
// endpoint until the scan is confirmed.
type Loop struct {
	ServerURL    string
	ProfileID    string
	EventID      string
	MembershipID string
	AuthToken    string

	// HTTPClient is used for status polling. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// OnPayload receives each freshly generated payload URL.
	OnPayload func(payload string)
	// OnCountdown receives the seconds remaining before the next rotation.
	OnCountdown func(seconds int)
	// OnCheckedIn fires once when the server confirms attendance; the loop
	// stops afterwards.
	OnCheckedIn func()
}

const pollInterval = 10 * time.Second

func (l *Loop) client() *http.Client {
	if l.HTTPClient != nil {
		return l.HTTPClient
	}
	return http.DefaultClient
}

func (l *Loop) emitPayload(now time.Time) {
	if l.OnPayload == nil {
		return
	}
	token := checkin.Generate(l.ProfileID, checkin.TimeStep(now))
	l.OnPayload(Payload(l.ServerURL, l.EventID, l.MembershipID, token))
}

// Run emits an initial payload and countdown, then ticks until the server
// confirms the check-in or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	now := time.Now()
	l.emitPayload(now)
	if l.OnCountdown != nil {
		l.OnCountdown(checkin.SecondsUntilNextStep(now))
	}

	second := time.NewTicker(time.Second)
	defer second.Stop()
	poll := time.NewTicker(pollInterval)
	defer poll.Stop()

	lastStep := checkin.TimeStep(now)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-second.C:
			// Regenerate on step rollover rather than on a fixed 30s timer,
			// so the payload stays aligned with the server's step buckets.
			if step := checkin.TimeStep(t); step != lastStep {
				lastStep = step
				l.emitPayload(t)
			}
			if l.OnCountdown != nil {
				l.OnCountdown(checkin.SecondsUntilNextStep(t))
			}
		case <-poll.C:
			checkedIn, err := l.pollStatus(ctx)
			if err != nil {
				// Transient poll failures are expected at venue wifi quality.
				continue
			}
			if checkedIn {
				if l.OnCheckedIn != nil {
					l.OnCheckedIn()
				}
				return nil
			}
		}
	}
}

func (l *Loop) pollStatus(ctx context.Context) (bool, error) {
	url := fmt.Sprintf("%s/events/%s/attendance/me", l.ServerURL, l.EventID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	if l.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+l.AuthToken)
	}
	resp, err := l.client().Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("status poll returned %d", resp.StatusCode)
	}
	var envelope struct {
		Data struct {
			CheckedIn bool `json:"checked_in"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return false, err
	}
	return envelope.Data.CheckedIn, nil
}
