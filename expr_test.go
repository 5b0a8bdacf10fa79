// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendezvous_test

import (
	"fmt"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/rendezvous"
)

func TestExprSpeakListen(t *testing.T) {
	client := rendezvous.ExprSpeakThen(42,
		rendezvous.ExprListenBind(func(w rendezvous.Word) kont.Expr[string] {
			return rendezvous.ExprDone(fmt.Sprintf("reply %d", w))
		}),
	)

	server := rendezvous.ExprListenBind(func(w rendezvous.Word) kont.Expr[string] {
		return rendezvous.ExprSpeakThen(w+1,
			rendezvous.ExprDone("done"),
		)
	})

	clientResult, serverResult := converseExpr[string, string](client, server)
	if clientResult != "reply 43" {
		t.Fatalf("client got %q, want %q", clientResult, "reply 43")
	}
	if serverResult != "done" {
		t.Fatalf("server got %q, want %q", serverResult, "done")
	}
}

func TestReifyContToExpr(t *testing.T) {
	cont := rendezvous.SpeakThen(7, rendezvous.Done("sent"))
	expr := rendezvous.Reify(cont)

	server := rendezvous.ExprListenBind(func(w rendezvous.Word) kont.Expr[rendezvous.Word] {
		return rendezvous.ExprDone(w)
	})

	clientResult, serverResult := converseExpr[string, rendezvous.Word](expr, server)
	if clientResult != "sent" {
		t.Fatalf("client got %q, want %q", clientResult, "sent")
	}
	if serverResult != 7 {
		t.Fatalf("server got %d, want 7", serverResult)
	}
}

func TestReflectExprToCont(t *testing.T) {
	expr := rendezvous.ExprListenBind(func(w rendezvous.Word) kont.Expr[rendezvous.Word] {
		return rendezvous.ExprDone(w * 2)
	})
	cont := rendezvous.Reflect(expr)

	client := rendezvous.SpeakThen(21, rendezvous.Done(struct{}{}))

	_, serverResult := converse[struct{}, rendezvous.Word](client, cont)
	if serverResult != 42 {
		t.Fatalf("server got %d, want 42", serverResult)
	}
}
