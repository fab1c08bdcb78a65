package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff_Exponential(t *testing.T) {
	p := Policy{Enabled: true, InitialDelay: time.Second, MaxDelay: 5 * time.Second, MaxAttempts: 5}

	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 5 * time.Second, 5 * time.Second}
	for i, w := range want {
		assert.Equal(t, w, Backoff(p, i+1, nil), "attempt %d", i+1)
	}
	assert.Equal(t, time.Second, Backoff(p, 0, nil))
	assert.Equal(t, 5*time.Second, Backoff(p, 4000, nil))
}

func TestBackoff_Randomized(t *testing.T) {
	p := DefaultPolicy()

	assert.Equal(t, 500*time.Millisecond, Backoff(p, 1, func() float64 { return 0 }))
	assert.Equal(t, time.Second, Backoff(p, 1, func() float64 { return 0.5 }))
	assert.Equal(t, 3*time.Second, Backoff(p, 2, func() float64 { return 1 }))
	assert.Equal(t, 5*time.Second, Backoff(p, 3, func() float64 { return 1 }), "never above max delay")
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.True(t, p.Enabled)
	assert.Equal(t, time.Second, p.InitialDelay)
	assert.Equal(t, 5*time.Second, p.MaxDelay)
	assert.Equal(t, 5, p.MaxAttempts)
	assert.NoError(t, p.Validate())
}

func TestPolicy_Validate(t *testing.T) {
	assert.NoError(t, Policy{}.Validate(), "disabled policy needs no values")

	bad := []Policy{
		{Enabled: true, MaxDelay: time.Second, MaxAttempts: 1},
		{Enabled: true, InitialDelay: 2 * time.Second, MaxDelay: time.Second, MaxAttempts: 1},
		{Enabled: true, InitialDelay: time.Second, MaxDelay: time.Second},
		{Enabled: true, InitialDelay: time.Second, MaxDelay: time.Second, MaxAttempts: 1, RandomizationFactor: 1.5},
	}
	for _, p := range bad {
		assert.Error(t, p.Validate(), "%+v", p)
	}
}
