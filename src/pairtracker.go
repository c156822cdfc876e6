package selcal

/*------------------------------------------------------------------
 *
 * Purpose:	Combine two accepted bursts into a four-character SELCAL
 *		code, enforcing ICAO inter-burst timing.
 *
 * Description:	A two-state machine: IDLE and AWAITING_SECOND(first_pair,
 *		first_time). The tracker does not age out on its own unless
 *		IdleTimeout is set - by default it only advances when a
 *		differing pair arrives.
 *
 *------------------------------------------------------------------*/

import "time"

// PairTrackerConfig holds the inter-burst gap bounds and optional idle
// timeout.
type PairTrackerConfig struct {
	GapMin time.Duration // minimum inter-burst gap (default 0.45s)
	GapMax time.Duration // maximum inter-burst gap (default 0.9s)

	// IdleTimeout, if nonzero, resets a stale AWAITING_SECOND state back
	// to IDLE once now-first_time exceeds it. Disabled (zero) by default.
	IdleTimeout time.Duration
}

// DefaultPairTrackerConfig returns the recommended gap bounds, with the
// idle timeout disabled.
func DefaultPairTrackerConfig() PairTrackerConfig {
	return PairTrackerConfig{
		GapMin:      450 * time.Millisecond,
		GapMax:      900 * time.Millisecond,
		IdleTimeout: 0,
	}
}

// trackerState enumerates the tracker's two logical states.
type trackerState int

const (
	stateIdle trackerState = iota
	stateAwaitingSecond
)

// PairTracker is the burst-pair state machine. It is not safe for
// concurrent use; the scheduler calls Evaluate once per tick from a single
// goroutine.
type PairTracker struct {
	config PairTrackerConfig

	state     trackerState
	firstPair Pair
	firstTime time.Time
}

// NewPairTracker creates a tracker in the IDLE state.
func NewPairTracker(config PairTrackerConfig) *PairTracker {
	return &PairTracker{config: config, state: stateIdle}
}

// Reset forces the tracker back to IDLE, discarding any pending first
// burst. Used for external reset per its data model.
func (t *PairTracker) Reset() {
	t.state = stateIdle
	t.firstPair = Pair{}
	t.firstTime = time.Time{}
}

// Evaluate feeds one accepted pair at time now through the state machine.
// It returns the completed four-letter code and ok=true exactly when a
// second, differing, correctly-timed pair completes a cycle begun by a
// prior call.
func (t *PairTracker) Evaluate(pair Pair, now time.Time) (code string, ok bool) {
	if t.config.IdleTimeout > 0 && t.state == stateAwaitingSecond && now.Sub(t.firstTime) > t.config.IdleTimeout {
		t.Reset()
	}

	switch t.state {
	case stateIdle:
		t.firstPair = pair
		t.firstTime = now
		t.state = stateAwaitingSecond
		return "", false

	case stateAwaitingSecond:
		if pair == t.firstPair {
			// Same burst still sounding; do not advance first_time.
			return "", false
		}

		gap := now.Sub(t.firstTime)
		if gap < t.config.GapMin || gap > t.config.GapMax {
			t.Reset()
			return "", false
		}

		code = t.firstPair.String() + pair.String()
		t.Reset()
		return code, true

	default:
		t.Reset()
		return "", false
	}
}
