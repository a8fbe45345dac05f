// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aamcrae/config"
)

const defaultBaud = 115200

// KeypadConfig holds the GPIOs of the keypad matrix.
type KeypadConfig struct {
	Rows [KeypadSize]int
	Cols [KeypadSize]int
}

// PanelConfig holds the GPIOs of the front panel.
type PanelConfig struct {
	Switches []int
	Buttons  []int
	LEDs     []int
}

// SerialConfig holds the serial device settings.
type SerialConfig struct {
	Device string
	Baud   int
}

// ConfigKeypad reads the keypad configuration.
// Sample config:
//  [keypad]
//  rows=5,6,12,13      # Output GPIOs for rows 1-4
//  cols=17,27,22,23    # Input GPIOs for columns 1-4
func ConfigKeypad(conf *config.Config) (*KeypadConfig, error) {
	s := conf.GetSection("keypad")
	if s == nil {
		return nil, fmt.Errorf("no config for keypad")
	}
	var k KeypadConfig
	n, err := s.Parse("rows", "%d,%d,%d,%d", &k.Rows[0], &k.Rows[1], &k.Rows[2], &k.Rows[3])
	if err != nil {
		return nil, fmt.Errorf("rows: %v", err)
	}
	if n != KeypadSize {
		return nil, fmt.Errorf("rows: argument count")
	}
	n, err = s.Parse("cols", "%d,%d,%d,%d", &k.Cols[0], &k.Cols[1], &k.Cols[2], &k.Cols[3])
	if err != nil {
		return nil, fmt.Errorf("cols: %v", err)
	}
	if n != KeypadSize {
		return nil, fmt.Errorf("cols: argument count")
	}
	return &k, nil
}

// ConfigPanel reads the front panel configuration.
// Sample config:
//  [panel]
//  switches=24,25      # Input enable, keypad select
//  buttons=8,7         # Commit, clear display
//  leds=9,10           # LEDs mirroring the switches (optional)
func ConfigPanel(conf *config.Config) (*PanelConfig, error) {
	s := conf.GetSection("panel")
	if s == nil {
		return nil, fmt.Errorf("no config for panel")
	}
	var p PanelConfig
	a, err := s.GetArg("switches")
	if err != nil {
		return nil, fmt.Errorf("switches: %v", err)
	}
	if p.Switches, err = gpioList("switches", a); err != nil {
		return nil, err
	}
	a, err = s.GetArg("buttons")
	if err != nil {
		return nil, fmt.Errorf("buttons: %v", err)
	}
	if p.Buttons, err = gpioList("buttons", a); err != nil {
		return nil, err
	}
	if a, err = s.GetArg("leds"); err == nil {
		if p.LEDs, err = gpioList("leds", a); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// ConfigSerial reads the serial configuration.
// Sample config:
//  [serial]
//  device=/dev/ttyPS1
//  baud=115200         # optional
func ConfigSerial(conf *config.Config) (*SerialConfig, error) {
	s := conf.GetSection("serial")
	if s == nil {
		return nil, fmt.Errorf("no config for serial")
	}
	var sc SerialConfig
	var err error
	sc.Device, err = s.GetArg("device")
	if err != nil {
		return nil, fmt.Errorf("device: %v", err)
	}
	sc.Baud = defaultBaud
	if _, err := s.GetArg("baud"); err == nil {
		n, err := s.Parse("baud", "%d", &sc.Baud)
		if err != nil {
			return nil, fmt.Errorf("baud: %v", err)
		}
		if n != 1 || sc.Baud <= 0 {
			return nil, fmt.Errorf("baud: invalid value")
		}
	}
	return &sc, nil
}

// gpioList parses a comma separated list of GPIO numbers.
func gpioList(key, a string) ([]int, error) {
	var l []int
	for _, f := range strings.Split(a, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%s: %v", key, err)
		}
		l = append(l, v)
	}
	return l, nil
}
