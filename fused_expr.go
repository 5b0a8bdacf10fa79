// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendezvous

import (
	"code.hybscloud.com/kont"
)

// exprReturnFrame is boxed once so chaining frames does not allocate.
var exprReturnFrame kont.Frame = kont.ReturnFrame{}

func identityResume(v kont.Erased) kont.Erased { return v }

// ExprSpeakThen speaks w and then continues with next.
// Fuses ExprPerform(SpeakOp{Value: w}) + ExprThen.
func ExprSpeakThen[B any](w Word, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = SpeakOp{Value: w}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

func listenBindUnwind[B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(Word) kont.Expr[B])
	result := f(current.(Word))
	return kont.Erased(result.Value), result.Frame
}

// ExprListenBind listens for a word and passes it to f.
// Fuses ExprPerform(ListenOp{}) + ExprBind.
func ExprListenBind[B any](f func(Word) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = listenBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = ListenOp{}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprDone ends an Expr-world conversation with a.
func ExprDone[A any](a A) kont.Expr[A] {
	return kont.ExprReturn(a)
}

// ExprLoop runs a recursive conversation (Expr-world).
// step returns Left(nextState) to continue or Right(result) to finish.
func ExprLoop[S, A any](initial S, step func(S) kont.Expr[kont.Either[S, A]]) kont.Expr[A] {
	return Reify(Loop(initial, func(s S) kont.Eff[kont.Either[S, A]] {
		return Reflect(step(s))
	}))
}
