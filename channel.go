// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendezvous

// Word is the 32-bit value exchanged by one pairing.
type Word = int32

// Channel pairs Speak and Listen calls one to one and hands a single
// Word from each speaker to its listener.
//
// Any number of speakers and listeners may block on a Channel at once,
// but a speaker and a listener are never both left waiting: as soon as
// one of each is present they pair off. Pairing attempts are serialized
// behind a single turn; which waiting speaker or listener is chosen next
// is unspecified.
//
// A Channel must not be copied after first use.
type Channel struct {
	mon    monitor
	obs    Observer
	serial Serial
}

// Option configures a Channel.
type Option func(*Channel)

// WithObserver installs o to receive every Event of the channel.
// Observers run while the channel lock is held and must not call back
// into the same channel.
func WithObserver(o Observer) Option {
	return func(c *Channel) {
		c.obs = o
	}
}

// New creates an empty Channel.
func New(opts ...Option) *Channel {
	c := &Channel{serial: nextSerial()}
	c.mon.init()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Serial returns the serial number assigned to this channel.
func (c *Channel) Serial() Serial {
	return c.serial
}

// Speak blocks until w has been written to the channel and read by
// exactly one Listen call.
func (c *Channel) Speak(w Word) {
	g := c.mon.acquire()
	st := g.state()
	st.speakers++
	c.emit(SpeakEnter, w)

	for st.idle == 0 || st.turn {
		g.wait(speakReady)
	}
	st.turn = true
	st.idle--
	st.claims++
	g.signal(listenReady)

	for st.slot.full {
		g.wait(speakReady)
	}
	g.write(w)
	c.emit(SlotWrite, w)
	g.signal(deliveryReady)

	// Hold the turn until the value has been taken.
	for st.slot.full {
		g.wait(speakReady)
	}
	st.turn = false
	st.speakers--
	g.signal(speakReady)
	c.emit(SpeakExit, w)
	g.release()
}

// Listen blocks until a Speak call has handed it a word, and returns it.
func (c *Channel) Listen() Word {
	g := c.mon.acquire()
	st := g.state()
	st.listeners++
	st.idle++
	c.emit(ListenEnter, 0)
	g.signal(speakReady)

	for st.claims == 0 {
		g.wait(listenReady)
	}
	st.claims--

	for !st.slot.full {
		g.wait(deliveryReady)
	}
	w := g.read()
	c.emit(SlotRead, w)
	// The turn holder and the speakers queued for the turn share
	// speakReady, so a single signal could miss the turn holder.
	g.broadcast(speakReady)

	st.listeners--
	c.emit(ListenExit, w)
	g.release()
	return w
}

// Pending reports the number of Speak and Listen calls currently in
// progress on the channel.
func (c *Channel) Pending() (speakers, listeners int) {
	g := c.mon.acquire()
	st := g.state()
	speakers, listeners = st.speakers, st.listeners
	g.release()
	return speakers, listeners
}

func (c *Channel) emit(kind EventKind, w Word) {
	if c.obs == nil {
		return
	}
	c.obs.Observe(Event{Kind: kind, Channel: c.serial, Word: w})
}
