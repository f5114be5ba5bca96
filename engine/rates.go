package engine

// Rate converts two consecutive readings of a cumulative counter into
// a non-negative rate in units per second.
//
// A non-positive elapsed time yields 0: it happens on the very first
// sample and when the wall clock moves backwards between cycles. A
// current value below the prior one means the counter was reset
// (reboot, or a wraparound on 32-bit counters); the rate for that
// cycle is clamped to 0 rather than guessing at the reset cause.
func Rate(prior, current uint64, elapsedSeconds float64) float64 {
	if elapsedSeconds <= 0 {
		return 0
	}
	if current < prior {
		return 0
	}
	return float64(current-prior) / elapsedSeconds
}
