// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package selftest

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is a list of scenarios read from a YAML file:
//
//	window: 2s
//	hold: 20ms
//	scenarios:
//	  - name: ten-by-ten
//	    speakers: 10
//	    listeners: 10
//
// Window and Hold apply to every scenario that leaves them unset.
type Config struct {
	Window    time.Duration `yaml:"window"`
	Hold      time.Duration `yaml:"hold"`
	Scenarios []Scenario    `yaml:"scenarios"`
}

const (
	defaultWindow = 5 * time.Second
	defaultHold   = 20 * time.Millisecond
)

// Default returns the built-in scenarios: the balanced 10x10 run, a
// speaker surplus, a listener surplus, a single pair and listeners
// with no speaker at all.
func Default() *Config {
	cfg := &Config{
		Window: defaultWindow,
		Hold:   defaultHold,
		Scenarios: []Scenario{
			{Name: "ten-by-ten", Speakers: 10, Listeners: 10},
			{Name: "speaker-surplus", Speakers: 3, Listeners: 1},
			{Name: "listener-surplus", Speakers: 1, Listeners: 3},
			{Name: "single-pair", Speakers: 1, Listeners: 1},
			{Name: "no-speakers", Speakers: 0, Listeners: 2},
		},
	}
	cfg.fill()
	return cfg
}

// LoadFile reads a Config from path. Unset window and hold values fall
// back to the defaults before they are copied into the scenarios.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a Config from YAML.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{Window: defaultWindow, Hold: defaultHold}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("selftest: parsing config: %w", err)
	}
	cfg.fill()
	return cfg, nil
}

// fill copies the shared window and hold into scenarios that lack them.
func (c *Config) fill() {
	for i := range c.Scenarios {
		if c.Scenarios[i].Window == 0 {
			c.Scenarios[i].Window = c.Window
		}
		if c.Scenarios[i].Hold == 0 {
			c.Scenarios[i].Hold = c.Hold
		}
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Scenarios) == 0 {
		errs = append(errs, errors.New("selftest: no scenarios"))
	}
	for _, sc := range c.Scenarios {
		if err := sc.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
