package selcal

/*------------------------------------------------------------------
 *
 * Purpose:	The analyzer task: wake on a fixed tick, run the detection
 *		pipeline against the most recent window, apply the silence
 *		gate before heavier analysis.
 *
 * Description:	Cancellation is cooperative via context.Context, checked
 *		between ticks; the main loop observes the cancellation
 *		signal between ticks only, never mid-pipeline.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"time"
)

// Runner owns the per-run pipeline state (Pair Tracker, Emitter) and
// drives the analyzer loop, with fields on one object constructed once by
// the caller rather than file-scope mutable globals.
type Runner struct {
	ring     *RingBuffer
	detector *PairDetector
	tracker  *PairTracker
	emitter  *Emitter
	logger   Logger

	silenceRMSMax float64
	stepInterval  time.Duration

	// now, if non-nil, overrides time.Now for deterministic tests.
	now func() time.Time
}

// NewRunner builds a Runner from its collaborators and the silence-gate/
// tick-period configuration.
func NewRunner(ring *RingBuffer, detector *PairDetector, tracker *PairTracker, emitter *Emitter, logger Logger, cfg Config) *Runner {
	return &Runner{
		ring:          ring,
		detector:      detector,
		tracker:       tracker,
		emitter:       emitter,
		logger:        logger,
		silenceRMSMax: cfg.SilenceRMSMax,
		stepInterval:  time.Duration(cfg.StepSeconds * float64(time.Second)),
		now:           time.Now,
	}
}

// Tick runs exactly one iteration of the pipeline against the ring
// buffer's current snapshot: silence gate, pair detection, tracking,
// validation, and emission. It reports whether a code was emitted.
func (r *Runner) Tick() bool {
	window := r.ring.Snapshot()

	if RMS(window) < r.silenceRMSMax {
		return false
	}

	pair, ok := r.detector.Detect(window)
	if !ok {
		return false
	}

	code, ok := r.tracker.Evaluate(pair, r.now())
	if !ok {
		return false
	}

	if !IsValidSELCAL(code) {
		return false
	}

	return r.emitter.Emit(code, r.now())
}

// Run drives the tick loop until ctx is cancelled, then returns cleanly
// with no error: termination is on external interrupt only. Callers are
// responsible for stopping the capture stream; the log has no open handle
// to flush, by construction - see emitter.go.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.stepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Tick()
		}
	}
}
