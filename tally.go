// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendezvous

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Tally is an Observer that counts calls in progress and slot traffic.
// Counters are atomic so a Tally may be read from any goroutine while
// the channel is in use.
//
// The zero value is ready to use.
type Tally struct {
	entered    atomix.Int64
	speakers   atomix.Int64
	listeners  atomix.Int64
	pairs      atomix.Int64
	inFlight   atomix.Int64
	violations atomix.Uint32
}

// Observe implements Observer.
func (t *Tally) Observe(ev Event) {
	switch ev.Kind {
	case SpeakEnter:
		t.entered.Add(1)
		t.speakers.Add(1)
	case SpeakExit:
		t.speakers.Add(-1)
	case ListenEnter:
		t.entered.Add(1)
		t.listeners.Add(1)
	case ListenExit:
		t.listeners.Add(-1)
	case SlotWrite:
		if n := t.inFlight.Add(1); n != 1 {
			t.violations.Add(1)
		}
	case SlotRead:
		if n := t.inFlight.Add(-1); n != 0 {
			t.violations.Add(1)
		}
		t.pairs.Add(1)
	}
}

// Entered returns the total number of Speak and Listen calls seen.
func (t *Tally) Entered() int64 { return t.entered.Load() }

// Speakers returns the number of Speak calls that have entered and not
// yet returned.
func (t *Tally) Speakers() int64 { return t.speakers.Load() }

// Listeners returns the number of Listen calls that have entered and
// not yet returned.
func (t *Tally) Listeners() int64 { return t.listeners.Load() }

// Pairs returns the number of completed hand-offs.
func (t *Tally) Pairs() int64 { return t.pairs.Load() }

// InFlight returns writes minus reads. It is 0 or 1 on a sound channel.
func (t *Tally) InFlight() int64 { return t.inFlight.Load() }

// Violations returns how many times the in-flight count left {0, 1}.
func (t *Tally) Violations() uint32 { return t.violations.Load() }

// Settled reports whether exactly speakers Speak calls and listeners
// Listen calls remain in progress. It never blocks: it returns
// iox.ErrWouldBlock while the counts differ.
func (t *Tally) Settled(speakers, listeners int64) error {
	if t.speakers.Load() != speakers || t.listeners.Load() != listeners {
		return iox.ErrWouldBlock
	}
	return nil
}
