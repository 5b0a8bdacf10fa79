// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendezvous_test

import (
	"sync"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/rendezvous"
)

// BenchmarkSpeakListen measures one hand-off between a dedicated
// speaker goroutine and the benchmark goroutine.
func BenchmarkSpeakListen(b *testing.B) {
	b.ReportAllocs()
	ch := rendezvous.New()
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				ch.Speak(1)
			}
		}
	}()
	for b.Loop() {
		ch.Listen()
	}
	// A speaker already parked in Speak stays there.
	close(stop)
}

// BenchmarkBurst measures 8 speakers and 8 listeners pairing off at once.
func BenchmarkBurst(b *testing.B) {
	b.ReportAllocs()
	const n = 8
	for b.Loop() {
		ch := rendezvous.New()
		var wg sync.WaitGroup
		for i := range n {
			wg.Go(func() { ch.Speak(rendezvous.Word(i)) })
			wg.Go(func() { ch.Listen() })
		}
		wg.Wait()
	}
}

// BenchmarkObservedSpeakListen measures a hand-off with a Tally installed.
func BenchmarkObservedSpeakListen(b *testing.B) {
	b.ReportAllocs()
	ch := rendezvous.New(rendezvous.WithObserver(new(rendezvous.Tally)))
	for b.Loop() {
		done := make(chan struct{})
		go func() {
			ch.Speak(1)
			close(done)
		}()
		ch.Listen()
		<-done
	}
}

// BenchmarkConversation measures a speak/listen round trip as effects.
func BenchmarkConversation(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		client := rendezvous.SpeakThen(1,
			rendezvous.ListenBind(func(w rendezvous.Word) kont.Eff[rendezvous.Word] {
				return rendezvous.Done(w)
			}),
		)
		server := rendezvous.ListenBind(func(w rendezvous.Word) kont.Eff[struct{}] {
			return rendezvous.SpeakThen(w*2, rendezvous.Done(struct{}{}))
		})
		converse[rendezvous.Word, struct{}](client, server)
	}
}

// BenchmarkExprConversation measures the Expr-world round trip.
func BenchmarkExprConversation(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		client := rendezvous.ExprSpeakThen(1,
			rendezvous.ExprListenBind(func(w rendezvous.Word) kont.Expr[rendezvous.Word] {
				return rendezvous.ExprDone(w)
			}),
		)
		server := rendezvous.ExprListenBind(func(w rendezvous.Word) kont.Expr[struct{}] {
			return rendezvous.ExprSpeakThen(w*2, rendezvous.ExprDone(struct{}{}))
		})
		converseExpr[rendezvous.Word, struct{}](client, server)
	}
}
