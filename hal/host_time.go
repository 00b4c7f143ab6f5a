//go:build !tinygo

package hal

import "time"

// hostTime turns wall-clock progress into millisecond ticks. In manual mode
// only stepN advances it.
type hostTime struct {
	ch     chan uint64
	seq    uint64
	manual bool

	last time.Time
	acc  time.Duration
}

func newHostTime(manual bool) *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), manual: manual}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// sync emits the ticks that elapsed since the previous call.
func (t *hostTime) sync() {
	if t.manual {
		return
	}
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.stepN(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	ticks := uint64(t.acc / time.Millisecond)
	if ticks == 0 {
		return
	}
	t.acc %= time.Millisecond
	t.stepN(ticks)
}

// stepN advances the clock by n ticks. Only the newest value matters to the
// consumer, so a full channel is drained rather than blocking.
func (t *hostTime) stepN(n uint64) {
	if n == 0 {
		return
	}
	t.seq += n
	for {
		select {
		case t.ch <- t.seq:
			return
		default:
		}
		select {
		case <-t.ch:
		default:
		}
	}
}
