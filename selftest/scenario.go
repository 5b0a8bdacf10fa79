// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package selftest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"code.hybscloud.com/rendezvous"
)

// resultCapacity bounds each listener's result queue. A listener
// produces exactly one word.
const resultCapacity = 2

var (
	// ErrUnsettled means the calls in progress never matched the
	// expected surplus within the window, or a surplus call returned.
	ErrUnsettled = errors.New("selftest: channel did not settle")
	// ErrPairCount means the number of completed pairings is not min(S, L).
	ErrPairCount = errors.New("selftest: wrong number of pairings")
	// ErrDuplicate means some word was received more than once.
	ErrDuplicate = errors.New("selftest: word delivered twice")
	// ErrUnknownValue means a listener received a word nobody spoke.
	ErrUnknownValue = errors.New("selftest: word never spoken")
	// ErrSlotViolation means the slot held more than one word, or was
	// read while empty.
	ErrSlotViolation = errors.New("selftest: slot exclusion violated")
)

// Scenario is one run of Speakers concurrent Speak calls, speaking
// 0..Speakers-1, against Listeners concurrent Listen calls.
type Scenario struct {
	Name      string        `yaml:"name"`
	Speakers  int           `yaml:"speakers"`
	Listeners int           `yaml:"listeners"`
	Window    time.Duration `yaml:"window"` // deadline for the expected pairings
	Hold      time.Duration `yaml:"hold"`   // how long surplus calls must stay blocked
}

func (s Scenario) String() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("S:%d,L:%d", s.Speakers, s.Listeners)
}

// Validate checks the counts and durations.
func (s Scenario) Validate() error {
	var errs []error
	if s.Speakers < 0 {
		errs = append(errs, fmt.Errorf("%s: speakers must not be negative", s))
	}
	if s.Listeners < 0 {
		errs = append(errs, fmt.Errorf("%s: listeners must not be negative", s))
	}
	if s.Window <= 0 {
		errs = append(errs, fmt.Errorf("%s: window must be positive", s))
	}
	if s.Hold < 0 {
		errs = append(errs, fmt.Errorf("%s: hold must not be negative", s))
	}
	return errors.Join(errs...)
}

// Report is the outcome of a Scenario.
type Report struct {
	Scenario           Scenario
	Pairs              int64
	RemainingSpeakers  int64
	RemainingListeners int64
	Received           []rendezvous.Word // sorted
	Passed             bool
}

// Expected returns the number of pairings and the surplus of each kind
// the scenario should end with.
func (s Scenario) Expected() (pairs, speakers, listeners int) {
	pairs = min(s.Speakers, s.Listeners)
	return pairs, s.Speakers - pairs, s.Listeners - pairs
}

// Run executes sc on a fresh channel. A nil logger discards output.
// Run returns a non-nil error exactly when the report does not pass,
// or when ctx ends first.
func Run(ctx context.Context, sc Scenario, logger *slog.Logger) (Report, error) {
	report := Report{Scenario: sc}
	if err := sc.Validate(); err != nil {
		return report, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tally := new(rendezvous.Tally)
	ch := rendezvous.New(rendezvous.WithObserver(rendezvous.Observers(tally, NewLogObserver(logger))))
	log := logger.With("scenario", sc.String(), "channel", ch.Serial())
	log.Info("scenario started", "speakers", sc.Speakers, "listeners", sc.Listeners)

	results := make([]lfq.SPSC[rendezvous.Word], sc.Listeners)
	for i := range results {
		results[i].Init(resultCapacity)
	}
	for i := range sc.Speakers {
		go ch.Speak(rendezvous.Word(i))
	}
	for i := range sc.Listeners {
		q := &results[i]
		go func() {
			w := ch.Listen()
			_ = q.Enqueue(&w)
		}()
	}
	log.Debug("calls started")

	pairs, wantSpeakers, wantListeners := sc.Expected()
	deadline := time.Now().Add(sc.Window)

	var errs []error
	settleErr := awaitSettled(ctx, tally, sc, deadline)
	if settleErr != nil && !errors.Is(settleErr, ErrUnsettled) {
		return report, settleErr
	}
	if settleErr != nil {
		errs = append(errs, settleErr)
	}

	received, collectErr := collect(ctx, results, pairs, deadline)
	if collectErr != nil && !errors.Is(collectErr, ErrUnsettled) {
		return report, collectErr
	}
	if collectErr != nil {
		errs = append(errs, collectErr)
	}

	// Surplus calls must stay blocked for the hold period.
	if sc.Hold > 0 && settleErr == nil {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		case <-time.After(sc.Hold):
		}
		if err := settled(tally, sc); err != nil {
			errs = append(errs, fmt.Errorf("%w: a surplus call returned during hold", ErrUnsettled))
		}
		extra, _ := collect(ctx, results, 0, time.Now())
		if len(extra) > 0 {
			errs = append(errs, fmt.Errorf("%w: %d extra words received during hold", ErrUnsettled, len(extra)))
			received = append(received, extra...)
		}
	}

	slices.Sort(received)
	report.Received = received
	report.Pairs = tally.Pairs()
	report.RemainingSpeakers = tally.Speakers()
	report.RemainingListeners = tally.Listeners()

	if report.Pairs != int64(pairs) {
		errs = append(errs, fmt.Errorf("%w: got %d, want %d", ErrPairCount, report.Pairs, pairs))
	}
	if v := tally.Violations(); v != 0 {
		errs = append(errs, fmt.Errorf("%w: %d times", ErrSlotViolation, v))
	}
	errs = append(errs, checkWords(received, sc.Speakers)...)

	log.Info("scenario finished",
		"expected_remaining_speakers", wantSpeakers,
		"expected_remaining_listeners", wantListeners,
		"remaining_speakers", report.RemainingSpeakers,
		"remaining_listeners", report.RemainingListeners,
		"pairs", report.Pairs,
	)

	err := errors.Join(errs...)
	report.Passed = err == nil
	if err != nil {
		log.Error("scenario failed", "error", err)
		return report, fmt.Errorf("%s: %w", sc, err)
	}
	log.Info("scenario passed")
	return report, nil
}

// settled reports whether every call of sc has entered the channel,
// the expected pairings are done and exactly the surplus remains in
// progress. It returns iox.ErrWouldBlock until then.
func settled(tally *rendezvous.Tally, sc Scenario) error {
	pairs, speakers, listeners := sc.Expected()
	if tally.Entered() != int64(sc.Speakers+sc.Listeners) || tally.Pairs() != int64(pairs) {
		return iox.ErrWouldBlock
	}
	return tally.Settled(int64(speakers), int64(listeners))
}

// awaitSettled polls until sc is settled, backing off between polls.
func awaitSettled(ctx context.Context, tally *rendezvous.Tally, sc Scenario, deadline time.Time) error {
	var bo iox.Backoff
	for {
		err := settled(tally, sc)
		if err == nil {
			return nil
		}
		if !iox.IsWouldBlock(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if time.Now().After(deadline) {
			pairs, speakers, listeners := sc.Expected()
			return fmt.Errorf("%w: %d calls entered, %d pairs, %d speakers and %d listeners in progress; want %d, %d, %d and %d",
				ErrUnsettled, tally.Entered(), tally.Pairs(), tally.Speakers(), tally.Listeners(),
				sc.Speakers+sc.Listeners, pairs, speakers, listeners)
		}
		bo.Wait()
	}
}

// collect drains the listener queues until want words have arrived or
// the deadline passes. A listener leaves its Listen call before it
// enqueues, so the words trail the tally.
func collect(ctx context.Context, results []lfq.SPSC[rendezvous.Word], want int, deadline time.Time) ([]rendezvous.Word, error) {
	var out []rendezvous.Word
	var bo iox.Backoff
	for {
		progress := false
		for i := range results {
			w, err := results[i].Dequeue()
			if err != nil {
				continue
			}
			out = append(out, w)
			progress = true
		}
		if len(out) >= want {
			return out, nil
		}
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		if time.Now().After(deadline) {
			return out, fmt.Errorf("%w: received %d words, want %d", ErrUnsettled, len(out), want)
		}
		if progress {
			bo.Reset()
		} else {
			bo.Wait()
		}
	}
}

// checkWords verifies that sorted words are distinct members of 0..speakers-1.
func checkWords(sorted []rendezvous.Word, speakers int) []error {
	var errs []error
	for i, w := range sorted {
		if w < 0 || int(w) >= speakers {
			errs = append(errs, fmt.Errorf("%w: %d", ErrUnknownValue, w))
			continue
		}
		if i > 0 && sorted[i-1] == w {
			errs = append(errs, fmt.Errorf("%w: %d", ErrDuplicate, w))
		}
	}
	return errs
}

// RunAll runs every scenario of cfg in order and joins their errors.
// It stops early only when ctx ends.
func RunAll(ctx context.Context, cfg *Config, logger *slog.Logger) ([]Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	reports := make([]Report, 0, len(cfg.Scenarios))
	var errs []error
	for _, sc := range cfg.Scenarios {
		report, err := Run(ctx, sc, logger)
		reports = append(reports, report)
		if err != nil {
			errs = append(errs, err)
		}
		if ctx.Err() != nil {
			break
		}
	}
	return reports, errors.Join(errs...)
}
