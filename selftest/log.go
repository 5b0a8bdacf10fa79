// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package selftest

import (
	"context"
	"log/slog"

	"code.hybscloud.com/rendezvous"
)

// NewLogObserver returns an Observer that logs every channel event at
// debug level. Records are only built when the logger has debug enabled.
func NewLogObserver(logger *slog.Logger) rendezvous.Observer {
	return rendezvous.ObserverFunc(func(ev rendezvous.Event) {
		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			return
		}
		attrs := []slog.Attr{
			slog.Uint64("channel", uint64(ev.Channel)),
			slog.String("event", ev.Kind.String()),
		}
		if ev.Kind != rendezvous.ListenEnter {
			attrs = append(attrs, slog.Int("word", int(ev.Word)))
		}
		logger.LogAttrs(context.Background(), slog.LevelDebug, "channel event", attrs...)
	})
}
