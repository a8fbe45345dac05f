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
)

// Panel is the front panel of slide switches, push buttons and LEDs.
// Each bank is read or written as a bitmask, with bit N
// corresponding to the Nth GPIO of the bank.
type Panel struct {
	switches []io.Getter
	buttons  []io.Getter
	leds     []io.Setter
}

// NewPanel creates a panel from the GPIOs. leds may be empty.
func NewPanel(switches, buttons []io.Getter, leds []io.Setter) *Panel {
	p := new(Panel)
	p.switches = switches
	p.buttons = buttons
	p.leds = leds
	return p
}

// Switches returns the state of the switches.
func (p *Panel) Switches() (uint32, error) {
	v, err := read(p.switches)
	if err != nil {
		return 0, fmt.Errorf("switch %v", err)
	}
	return v, nil
}

// Buttons returns the state of the buttons, with a bit set
// if the button is pressed.
func (p *Panel) Buttons() (uint32, error) {
	v, err := read(p.buttons)
	if err != nil {
		return 0, fmt.Errorf("button %v", err)
	}
	return v, nil
}

// ShowLEDs sets the LEDs from the bitmask.
func (p *Panel) ShowLEDs(v uint32) error {
	for i, l := range p.leds {
		if err := l.Set(int(v>>uint(i)) & 1); err != nil {
			return fmt.Errorf("led %d: %v", i, err)
		}
	}
	return nil
}

func read(pins []io.Getter) (uint32, error) {
	var v uint32
	for i, p := range pins {
		b, err := p.Get()
		if err != nil {
			return 0, fmt.Errorf("%d: %v", i, err)
		}
		if b != 0 {
			v |= 1 << uint(i)
		}
	}
	return v, nil
}

// Rising returns true if any bit in mask changed from 0 to 1.
func Rising(prev, cur, mask uint32) bool {
	return cur&^prev&mask != 0
}
