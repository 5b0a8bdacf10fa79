// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendezvous

import (
	"code.hybscloud.com/kont"
)

// SpeakThen speaks w and then continues with next.
func SpeakThen[B any](w Word, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(SpeakOp{Value: w}), next)
}

// ListenBind listens for a word and passes it to f.
func ListenBind[B any](f func(Word) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(ListenOp{}), f)
}

// Done ends a conversation with a.
func Done[A any](a A) kont.Eff[A] {
	return kont.Pure(a)
}

// Loop runs a recursive conversation.
// step returns Left(nextState) to continue or Right(result) to finish.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if next, ok := e.GetLeft(); ok {
			return Loop(next, step)
		}
		result, _ := e.GetRight()
		return kont.Pure(result)
	})
}
