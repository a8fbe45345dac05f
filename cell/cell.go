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

// Package cell drives a 6 dot Braille cell where each dot is
// raised and lowered by a servo.

package cell

import (
	"fmt"

	"github.com/aamcrae/braille/io"
)

// Framer generates a single frame of servo pulses.
type Framer interface {
	Frame([io.Channels]io.Event)
}

// Cell converts Braille patterns into servo pulses.
// The servos must be refreshed continuously, so Render is expected to
// be called on every pass of the control loop, even when the pattern
// has not changed.
type Cell struct {
	wiring Wiring
	rng    Range
	framer Framer
}

// NewCell creates a Cell. The servo range must fit within the
// frame period; a range that does not is a configuration error
// that should have been caught when the configuration was read.
func NewCell(w Wiring, r Range, f Framer) *Cell {
	if err := r.Validate(io.Period); err != nil {
		panic(fmt.Sprintf("cell: %v", err))
	}
	c := new(Cell)
	c.wiring = w
	c.rng = r
	c.framer = f
	return c
}

// Range returns the servo range of the cell.
func (c *Cell) Range() Range {
	return c.rng
}

// Events returns the frame events for the servo angles of each dot.
func (c *Cell) Events(angles [Dots]int) [io.Channels]io.Event {
	var ev [io.Channels]io.Event
	for i, ch := range c.wiring {
		ev[i] = io.Event{Port: ch.Port, Mask: ch.Mask, Width: c.rng.Pulse(angles[i])}
	}
	return ev
}

// Expand returns the frame events that display the pattern.
func (c *Cell) Expand(p Pattern) [io.Channels]io.Event {
	return c.Events(Angles(p & PatternMask))
}

// Render generates one frame for the pattern, blocking for the frame period.
func (c *Cell) Render(p Pattern) {
	c.framer.Frame(c.Expand(p))
}
