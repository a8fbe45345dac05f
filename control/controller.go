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

// Package control runs the main loop of the Braille reader, refreshing the
// cell and accepting characters from the keypad or the serial line.

package control

import (
	"fmt"

	"github.com/aamcrae/braille/cell"
	"github.com/aamcrae/braille/display"
	"github.com/aamcrae/braille/input"
)

// Switch bits.
const (
	InputEnable = 1 << 0 // Accept new characters
	UseKeypad   = 1 << 1 // Characters from the keypad rather than the serial line
)

// Button bits.
const (
	Commit = 1 << 0 // Show the buffered character on the cell and display
	Clear  = 1 << 1 // Clear the display
)

// Renderer refreshes the Braille cell for one frame.
type Renderer interface {
	Render(cell.Pattern)
}

// Keypad returns the key currently pressed, or 0.
type Keypad interface {
	Scan() (byte, error)
}

// Serial returns a received character if one is available.
type Serial interface {
	Poll() (byte, bool)
}

// Panel provides the switches and buttons, and the LEDs.
type Panel interface {
	Switches() (uint32, error)
	Buttons() (uint32, error)
	ShowLEDs(uint32) error
}

// Faulter reports output errors.
type Faulter interface {
	Err() error
}

// Buffer holds the character waiting to be committed. The character for
// the cell may differ from the displayed one when a keypad digit is
// shown as its Braille letter.
type Buffer struct {
	Display byte
	Braille byte
}

// Controller owns all the state of the reader. It is driven from a single
// goroutine; each Step renders exactly one frame, so the loop runs at the
// frame rate.
type Controller struct {
	cell    Renderer
	display display.Display
	keypad  Keypad
	serial  Serial
	panel   Panel
	outputs []Faulter

	Pattern     cell.Pattern // Pattern currently shown on the cell
	Buffer      Buffer
	lastKey     byte
	prevButtons uint32
	Frames      int
}

// New creates a Controller. outputs are checked for errors after every frame.
// k or s may be nil if there is no keypad or serial line.
func New(r Renderer, d display.Display, k Keypad, s Serial, p Panel, outputs ...Faulter) *Controller {
	c := new(Controller)
	c.cell = r
	c.display = d
	c.keypad = k
	c.serial = s
	c.panel = p
	c.outputs = outputs
	return c
}

// Init reads the initial button state so that buttons already held down
// are not seen as a press.
func (c *Controller) Init() error {
	b, err := c.panel.Buttons()
	if err != nil {
		return err
	}
	c.prevButtons = b
	return nil
}

// Run repeatedly steps the controller, and only returns on error.
func (c *Controller) Run() error {
	for {
		if err := c.Step(); err != nil {
			return err
		}
	}
}

// Step runs one pass of the control loop.
// The cell is always refreshed, even when input is disabled.
func (c *Controller) Step() error {
	sw, err := c.panel.Switches()
	if err != nil {
		return err
	}
	if err := c.panel.ShowLEDs(sw); err != nil {
		return err
	}
	c.cell.Render(c.Pattern)
	c.Frames++
	for _, o := range c.outputs {
		if err := o.Err(); err != nil {
			return fmt.Errorf("cell output: %v", err)
		}
	}
	if sw&InputEnable == 0 {
		b, err := c.panel.Buttons()
		if err != nil {
			return err
		}
		c.prevButtons = b
		c.lastKey = 0
		return nil
	}
	if sw&UseKeypad == 0 {
		c.lastKey = 0
		if c.serial != nil {
			if ch, ok := c.serial.Poll(); ok && ch != '\r' && ch != '\n' {
				c.Buffer = Buffer{Display: ch, Braille: ch}
			}
		}
	} else if c.keypad != nil {
		key, err := c.keypad.Scan()
		if err != nil {
			return err
		}
		if key != 0 && key != c.lastKey {
			c.Buffer = Buffer{Display: key, Braille: input.KeyToBraille(key)}
		}
		c.lastKey = key
	}
	b, err := c.panel.Buttons()
	if err != nil {
		return err
	}
	if input.Rising(c.prevButtons, b, Commit) && c.Buffer.Display != 0 {
		c.Pattern = cell.Encode(c.Buffer.Braille)
		c.display.WriteChar(c.Buffer.Display)
	}
	if input.Rising(c.prevButtons, b, Clear) {
		c.display.Clear()
	}
	c.prevButtons = b
	return nil
}
