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

	"github.com/aamcrae/braille/io"
	gpio "github.com/aamcrae/gpio"
)

// Pins tracks opened GPIOs so that they can be released together.
type Pins struct {
	pins []*gpio.Gpio
}

// Output opens a GPIO as an output.
func (p *Pins) Output(n int) (io.Setter, error) {
	g, err := gpio.OutputPin(n)
	if err != nil {
		return nil, fmt.Errorf("pin %d: %v", n, err)
	}
	p.pins = append(p.pins, g)
	return g, nil
}

// Input opens a GPIO as a polled input.
func (p *Pins) Input(n int) (io.Getter, error) {
	g, err := gpio.Pin(n)
	if err != nil {
		return nil, fmt.Errorf("pin %d: %v", n, err)
	}
	p.pins = append(p.pins, g)
	return g, nil
}

// Close releases all the GPIOs.
func (p *Pins) Close() {
	for _, g := range p.pins {
		g.Close()
	}
	p.pins = nil
}

// OpenKeypad opens the keypad GPIOs.
func (p *Pins) OpenKeypad(kc *KeypadConfig, w io.Waiter) (*Keypad, error) {
	var rows [KeypadSize]io.Setter
	var cols [KeypadSize]io.Getter
	var err error
	for i := 0; i < KeypadSize; i++ {
		if rows[i], err = p.Output(kc.Rows[i]); err != nil {
			return nil, fmt.Errorf("keypad: %v", err)
		}
		if cols[i], err = p.Input(kc.Cols[i]); err != nil {
			return nil, fmt.Errorf("keypad: %v", err)
		}
	}
	return NewKeypad(rows, cols, w), nil
}

// OpenPanel opens the front panel GPIOs.
func (p *Pins) OpenPanel(pc *PanelConfig) (*Panel, error) {
	var sw, btn []io.Getter
	var leds []io.Setter
	for _, n := range pc.Switches {
		g, err := p.Input(n)
		if err != nil {
			return nil, fmt.Errorf("switch: %v", err)
		}
		sw = append(sw, g)
	}
	for _, n := range pc.Buttons {
		g, err := p.Input(n)
		if err != nil {
			return nil, fmt.Errorf("button: %v", err)
		}
		btn = append(btn, g)
	}
	for _, n := range pc.LEDs {
		g, err := p.Output(n)
		if err != nil {
			return nil, fmt.Errorf("led: %v", err)
		}
		leds = append(leds, g)
	}
	return NewPanel(sw, btn, leds), nil
}
