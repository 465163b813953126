package consumer

import "time"

// SetRetryDelays overrides the back-off bounds for the duration of a test.
func SetRetryDelays(base, maxDelay time.Duration) (restore func()) {
	prevBase, prevMax := retryBaseDelay, retryMaxDelay
	retryBaseDelay, retryMaxDelay = base, maxDelay
	return func() {
		retryBaseDelay, retryMaxDelay = prevBase, prevMax
	}
}
