package session

import (
	"errors"
	"math"
	"time"
)

// Policy configures automatic reconnection.
type Policy struct {
	Enabled      bool
	InitialDelay time.Duration
	MaxDelay     time.Duration
	// MaxAttempts bounds consecutive failed reconnects; after that the
	// manager stops for good.
	MaxAttempts int
	// RandomizationFactor spreads each delay over [d*(1-f), d*(1+f)].
	RandomizationFactor float64
}

// DefaultPolicy is the backend's recommended reconnection policy.
func DefaultPolicy() Policy {
	return Policy{
		Enabled:             true,
		InitialDelay:        time.Second,
		MaxDelay:            5 * time.Second,
		MaxAttempts:         5,
		RandomizationFactor: 0.5,
	}
}

// Validate rejects policies that can never reconnect sensibly.
func (p Policy) Validate() error {
	if !p.Enabled {
		return nil
	}
	if p.InitialDelay <= 0 {
		return errors.New("reconnect initial delay must be positive")
	}
	if p.MaxDelay < p.InitialDelay {
		return errors.New("reconnect max delay must not be smaller than the initial delay")
	}
	if p.MaxAttempts < 1 {
		return errors.New("reconnect max attempts must be at least 1")
	}
	if p.RandomizationFactor < 0 || p.RandomizationFactor > 1 {
		return errors.New("reconnect randomization factor must be within [0, 1]")
	}
	return nil
}

// Backoff returns the wait before reconnect attempt n (1-based):
// min(initial*2^(n-1), max), randomized by the policy factor using rnd
// (a source of values in [0, 1)). The result never exceeds MaxDelay.
func Backoff(p Policy, attempt int, rnd func() float64) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := float64(p.InitialDelay) * math.Pow(2, float64(attempt-1))
	if base > float64(p.MaxDelay) || math.IsInf(base, 0) {
		base = float64(p.MaxDelay)
	}
	if p.RandomizationFactor > 0 && rnd != nil {
		delta := base * p.RandomizationFactor
		base = base - delta + rnd()*2*delta
	}
	if base > float64(p.MaxDelay) {
		base = float64(p.MaxDelay)
	}
	if base < 0 {
		base = 0
	}
	return time.Duration(base)
}
