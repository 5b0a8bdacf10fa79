// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rendezvous provides a synchronous one-word channel on which
// concurrent speakers and listeners pair off one to one.
//
// A [Channel] is a monitor: one mutex, three condition variables and a
// single-slot buffer. [Channel.Speak] blocks until its word has been read
// by exactly one [Channel.Listen]; Listen blocks until some Speak hands it
// a word. Multiple speakers and multiple listeners may wait at the same
// time, but the channel never leaves a speaker and a listener both
// waiting.
//
// # Guarantees
//
//   - At most one word is in flight; a speaker never overwrites an unread word.
//   - Each word is read by exactly one listener before the next is written.
//   - Pairing attempts are serialized behind a single turn.
//   - No FIFO order among waiting speakers or waiting listeners.
//   - No timeouts or cancellation: a call blocks until it is paired.
//
// A slot written while occupied or read while empty means the protocol
// itself is broken; it panics with an [*InvariantError].
//
// # Instrumentation
//
// [WithObserver] installs an [Observer] that sees every [Event] in order,
// under the channel lock. [Tally] counts calls in progress and checks that
// the slot never holds more than one word. A channel built without an
// observer makes no observer calls.
//
// # Conversations
//
// Sequences of speak and listen can be written as effects on
// [code.hybscloud.com/kont] and run against a channel:
//
//   - Operations: [SpeakOp], [ListenOp].
//   - Cont-world: [SpeakThen], [ListenBind], [Done], [Loop].
//   - Expr-world: [ExprSpeakThen], [ExprListenBind], [ExprDone], [ExprLoop]. Bridge via [Reify] and [Reflect].
//   - Execution: [Exec], [ExecExpr], [ExecError], [ExecErrorExpr].
//
// # Example
//
//	ch := rendezvous.New()
//	go ch.Speak(42)
//	w := ch.Listen() // 42
package rendezvous
