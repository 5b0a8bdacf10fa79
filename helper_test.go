// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendezvous_test

import (
	"testing"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/rendezvous"
)

// converse runs a on its own goroutine and b on the caller's, both on a
// fresh channel, and returns both results.
func converse[A, B any](a kont.Eff[A], b kont.Eff[B]) (A, B) {
	ch := rendezvous.New()
	var resultA A
	done := make(chan struct{})
	go func() {
		resultA = rendezvous.Exec(ch, a)
		close(done)
	}()
	resultB := rendezvous.Exec(ch, b)
	<-done
	return resultA, resultB
}

// converseExpr is converse for Expr-world conversations.
func converseExpr[A, B any](a kont.Expr[A], b kont.Expr[B]) (A, B) {
	ch := rendezvous.New()
	var resultA A
	done := make(chan struct{})
	go func() {
		resultA = rendezvous.ExecExpr(ch, a)
		close(done)
	}()
	resultB := rendezvous.ExecExpr(ch, b)
	<-done
	return resultA, resultB
}

// settle waits until tally reports exactly speakers and listeners in
// progress, backing off between polls. It fails the test after timeout.
func settle(tb testing.TB, tally *rendezvous.Tally, speakers, listeners int64, timeout time.Duration) {
	tb.Helper()
	deadline := time.Now().Add(timeout)
	var bo iox.Backoff
	for {
		err := tally.Settled(speakers, listeners)
		if err == nil {
			return
		}
		if !iox.IsWouldBlock(err) {
			tb.Fatalf("Settled: unexpected error %v", err)
		}
		if time.Now().After(deadline) {
			tb.Fatalf("not settled after %v: speakers=%d listeners=%d, want %d/%d",
				timeout, tally.Speakers(), tally.Listeners(), speakers, listeners)
		}
		bo.Wait()
	}
}

// waitOrTimeout reports whether done closes within d.
func waitOrTimeout(done <-chan struct{}, d time.Duration) bool {
	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}
