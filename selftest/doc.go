// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package selftest drives a rendezvous channel with S concurrent speakers
// and L concurrent listeners and checks the outcome.
//
// A [Scenario] passes when exactly min(S, L) pairings complete, the
// words received form a one-to-one match with words spoken, the slot
// never held two words, and the |S-L| surplus calls stay blocked for
// the observation window.
//
// Surplus calls cannot be cancelled; their goroutines remain parked
// until the process exits.
package selftest
