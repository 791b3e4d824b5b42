package service

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	trackingPrefix   = "TCF"
	trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewTrackingNumber returns TCF, the last six digits of the millisecond
// clock and two random alphanumerics. Numbers are not globally unique.
func NewTrackingNumber(now time.Time) string {
	ms := now.UnixMilli() % 1_000_000
	if ms < 0 {
		ms = -ms
	}
	return fmt.Sprintf("%s%06d%c%c", trackingPrefix, ms,
		trackingAlphabet[rand.IntN(len(trackingAlphabet))],
		trackingAlphabet[rand.IntN(len(trackingAlphabet))],
	)
}
