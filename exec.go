// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendezvous

import (
	"code.hybscloud.com/kont"
)

// channelHandler implements kont.Handler for channel effects.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type channelHandler[R any] struct {
	ch *Channel
}

// Dispatch implements kont.Handler via structural interface assertion.
// Each operation blocks the calling goroutine until its pairing completes.
func (h channelHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	cop, ok := op.(channelDispatcher)
	if !ok {
		panic("rendezvous: unhandled effect in channelHandler")
	}
	return cop.DispatchChannel(h.ch), true
}

// Exec runs a Cont-world conversation on ch and returns its result.
// It blocks on every SpeakOp and ListenOp, so the counterpart
// conversation must run on another goroutine.
func Exec[R any](ch *Channel, protocol kont.Eff[R]) R {
	return kont.Handle(protocol, channelHandler[R]{ch: ch})
}

// ExecExpr runs an Expr-world conversation on ch and returns its result.
func ExecExpr[R any](ch *Channel, protocol kont.Expr[R]) R {
	return kont.HandleExpr(protocol, channelHandler[R]{ch: ch})
}

// Reify converts a Cont-world conversation to Expr-world.
func Reify[A any](m kont.Eff[A]) kont.Expr[A] {
	return kont.Reify(m)
}

// Reflect converts an Expr-world conversation to Cont-world.
func Reflect[A any](m kont.Expr[A]) kont.Eff[A] {
	return kont.Reflect(m)
}
