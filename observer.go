// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendezvous

import "fmt"

// EventKind identifies a point in the life of a Speak or Listen call.
type EventKind uint8

const (
	SpeakEnter EventKind = iota + 1
	SpeakExit
	ListenEnter
	ListenExit
	SlotWrite
	SlotRead
)

func (k EventKind) String() string {
	switch k {
	case SpeakEnter:
		return "speak-enter"
	case SpeakExit:
		return "speak-exit"
	case ListenEnter:
		return "listen-enter"
	case ListenExit:
		return "listen-exit"
	case SlotWrite:
		return "slot-write"
	case SlotRead:
		return "slot-read"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is delivered to an Observer. Word is the value being spoken,
// written or read; it is zero for ListenEnter.
type Event struct {
	Kind    EventKind
	Channel Serial
	Word    Word
}

// Observer receives channel events. Observe is called with the channel
// lock held, in the order the events happen.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f(ev).
func (f ObserverFunc) Observe(ev Event) { f(ev) }

// Observers returns an Observer that forwards each event to every
// non-nil observer in os, in order.
func Observers(os ...Observer) Observer {
	fan := make(fanout, 0, len(os))
	for _, o := range os {
		if o != nil {
			fan = append(fan, o)
		}
	}
	return fan
}

type fanout []Observer

func (f fanout) Observe(ev Event) {
	for _, o := range f {
		o.Observe(ev)
	}
}
