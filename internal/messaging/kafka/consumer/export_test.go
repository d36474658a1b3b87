package consumer

import "time"

// SetRetryDelays shortens the store retry backoff for tests.
func SetRetryDelays(base, maxDelay time.Duration) (restore func()) {
	prevBase, prevMax := retryBaseDelay, retryMaxDelay
	retryBaseDelay, retryMaxDelay = base, maxDelay
	return func() {
		retryBaseDelay, retryMaxDelay = prevBase, prevMax
	}
}
