// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendezvous

import (
	"code.hybscloud.com/kont"
)

// channelDispatcher is the structural interface for channel operations.
// DispatchChannel blocks until the pairing completes.
type channelDispatcher interface {
	DispatchChannel(ch *Channel) kont.Resumed
}

// SpeakOp is the effect operation for speaking a word.
// Perform(SpeakOp{Value: w}) speaks w and resumes once a listener has read it.
type SpeakOp struct {
	kont.Phantom[struct{}]
	Value Word
}

// DispatchChannel handles SpeakOp on ch.
func (s SpeakOp) DispatchChannel(ch *Channel) kont.Resumed {
	ch.Speak(s.Value)
	return struct{}{}
}

// ListenOp is the effect operation for listening for a word.
// Perform(ListenOp{}) resumes with the word handed over by a speaker.
type ListenOp struct {
	kont.Phantom[Word]
}

// DispatchChannel handles ListenOp on ch.
func (ListenOp) DispatchChannel(ch *Channel) kont.Resumed {
	return ch.Listen()
}
