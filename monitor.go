// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendezvous

import (
	"fmt"
	"sync"
)

// cond names one of the three condition variables bound to the channel lock.
type cond uint8

const (
	// speakReady releases a speaker to take the pairing turn, or the turn
	// holder once its value has been read.
	speakReady cond = iota
	// listenReady releases a listener once a speaker has committed a pairing.
	listenReady
	// deliveryReady releases a listener once a value sits in the slot.
	deliveryReady
	numConds
)

func (c cond) String() string {
	switch c {
	case speakReady:
		return "speakReady"
	case listenReady:
		return "listenReady"
	case deliveryReady:
		return "deliveryReady"
	}
	return fmt.Sprintf("cond(%d)", uint8(c))
}

// slot is the single-value hand-off buffer.
type slot struct {
	word Word
	full bool
}

// state is everything the channel lock guards.
// It is only reachable through a guard.
type state struct {
	slot      slot
	speakers  int  // Speak calls entered and not completed
	listeners int  // Listen calls entered and not completed
	idle      int  // listeners not yet claimed by a speaker
	claims    int  // pairings committed by a speaker, not yet taken by a listener
	turn      bool // a speaker holds the pairing turn
}

// monitor is one mutex, its condition variables and the state they guard.
type monitor struct {
	mu    sync.Mutex
	conds [numConds]sync.Cond
	st    state
}

func (m *monitor) init() {
	for i := range m.conds {
		m.conds[i].L = &m.mu
	}
}

// acquire locks the monitor and returns the guard that proves it.
func (m *monitor) acquire() guard {
	m.mu.Lock()
	return guard{m: m}
}

// guard is held between acquire and release. Only a guard reaches the
// state or the condition variables.
type guard struct {
	m *monitor
}

func (g guard) state() *state { return &g.m.st }

func (g guard) release() { g.m.mu.Unlock() }

// wait atomically releases the lock, suspends until c is signalled and
// reacquires the lock. Callers re-check their predicate in a loop.
func (g guard) wait(c cond) { g.m.conds[c].Wait() }

// signal wakes one waiter on c, if any.
func (g guard) signal(c cond) { g.m.conds[c].Signal() }

// broadcast wakes every waiter on c.
func (g guard) broadcast(c cond) { g.m.conds[c].Broadcast() }

// write places w into the empty slot.
func (g guard) write(w Word) {
	s := &g.m.st.slot
	if s.full {
		panic(&InvariantError{Op: "write", Word: w, Held: s.word})
	}
	s.word, s.full = w, true
}

// read takes the word out of the occupied slot and leaves it empty.
func (g guard) read() Word {
	s := &g.m.st.slot
	if !s.full {
		panic(&InvariantError{Op: "read"})
	}
	w := s.word
	s.word, s.full = 0, false
	return w
}

// InvariantError is the panic value raised when the slot is written
// while occupied or read while empty. It signals a broken protocol,
// never a caller error.
type InvariantError struct {
	Op   string
	Word Word
	Held Word
}

func (e *InvariantError) Error() string {
	if e.Op == "write" {
		return fmt.Sprintf("rendezvous: write %d into occupied slot holding %d", e.Word, e.Held)
	}
	return fmt.Sprintf("rendezvous: %s from empty slot", e.Op)
}
