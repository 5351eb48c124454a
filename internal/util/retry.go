// ABOUTME: Backoff helper for retrying external service calls
// ABOUTME: Used by the OpenAI client for embedding and insight generation retries
package util

import (
	"math/rand/v2"
	"time"
)

const maxBackoff = 30 * time.Second

// CalculateBackoff returns the delay before the given retry attempt.
// The base delay doubles each attempt, capped at 30s, with ±25% jitter.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30 // avoid overflow in the shift below
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > maxBackoff || backoff <= 0 {
		backoff = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
