// Package checkin implements the rotating proof-of-presence token used for
// event check-in. A token is derived from the attendee's profile ID and a
// 30-second time step; the member's device and the server recompute it
// independently, so the derivation must match bit for bit on both sides.
//
// The profile ID is not high-entropy key material: the token deters
// screenshot sharing, it is not an access-control guarantee. A captured
// token stays valid for the remainder of its step window.
package checkin

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// TimeStepSeconds is the token rotation granularity.
const TimeStepSeconds = 30

// TimeStep returns the 30-second-aligned step bucket for the given time.
func TimeStep(now time.Time) int64 {
	return now.Unix() / TimeStepSeconds
}

// SecondsUntilNextStep returns how long the current token remains the
// freshest one, for countdown displays.
func SecondsUntilNextStep(now time.Time) int {
	return TimeStepSeconds - int(now.Unix()%TimeStepSeconds)
}

// Generate derives the token for a seed and time step:
// hex(HMAC-SHA256(key=seed, msg=decimal step)). Pure and deterministic.
func Generate(secretSeed string, step int64) string {
	mac := hmac.New(sha256.New, []byte(secretSeed))
	mac.Write([]byte(strconv.FormatInt(step, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyAt checks presented against the tokens for steps step-1, step, and
// step+1. The one-step tolerance absorbs clock skew and the delay between
// QR render and scan.
func VerifyAt(secretSeed, presented string, step int64) bool {
	for _, s := range [3]int64{step - 1, step, step + 1} {
		if hmac.Equal([]byte(Generate(secretSeed, s)), []byte(presented)) {
			return true
		}
	}
	return false
}

// Verify checks presented against the current step's tolerance window.
func Verify(secretSeed, presented string, now time.Time) bool {
	return VerifyAt(secretSeed, presented, TimeStep(now))
}
