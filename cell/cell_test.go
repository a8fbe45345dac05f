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

package cell

import (
	"strings"
	"testing"
	"time"

	"github.com/aamcrae/braille/io"
)

// clock is a virtual time Waiter.
type clock struct {
	now time.Duration
}

func (c *clock) Wait(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}

// servoPort tracks the width of the last pulse on each bit.
type servoPort struct {
	name  string
	clk   *clock
	bits  uint32
	rise  [3]time.Duration
	width [3]time.Duration
}

func (s *servoPort) Name() string { return s.name }
func (s *servoPort) Read() uint32 { return s.bits }

func (s *servoPort) Set(mask uint32) {
	for i := range s.rise {
		if mask&(1<<uint(i)) != 0 {
			s.rise[i] = s.clk.now
		}
	}
	s.bits |= mask
}

func (s *servoPort) Clear(mask uint32) {
	for i := range s.width {
		if mask&(1<<uint(i)) != 0 && s.bits&(1<<uint(i)) != 0 {
			s.width[i] = s.clk.now - s.rise[i]
		}
	}
	s.bits &^= mask
}

func newTestCell() (*Cell, *clock, *servoPort, *servoPort) {
	clk := &clock{}
	a := &servoPort{name: "A", clk: clk}
	b := &servoPort{name: "B", clk: clk}
	c := NewCell(NewWiring(a, b), DefaultRange, io.NewScheduler(clk))
	return c, clk, a, b
}

// widths returns the pulse widths for dots 1-6.
func widths(a, b *servoPort) [Dots]time.Duration {
	return [Dots]time.Duration{b.width[0], b.width[1], b.width[2], a.width[0], a.width[1], a.width[2]}
}

func TestWiring(t *testing.T) {
	a := io.NewMemPort("A")
	b := io.NewMemPort("B")
	w := NewWiring(a, b)
	want := []struct {
		port io.Port
		mask uint32
	}{
		{b, 1}, {b, 2}, {b, 4}, {a, 1}, {a, 2}, {a, 4},
	}
	for i, ch := range w {
		if ch.Port != want[i].port || ch.Mask != want[i].mask {
			t.Errorf("dot %d: port %s mask %d, want port %s mask %d", i+1, ch.Port.Name(), ch.Mask, want[i].port.Name(), want[i].mask)
		}
	}
}

func TestExpand(t *testing.T) {
	c, _, _, _ := newTestCell()
	ev := c.Expand(Encode('z'))
	want := [Dots]time.Duration{us(1500), us(600), us(1500), us(600), us(1500), us(1500)}
	for i, e := range ev {
		if e.Width != want[i] {
			t.Errorf("dot %d width %s, want %s", i+1, e.Width, want[i])
		}
	}
	// Bits above the 6 dots are ignored.
	if c.Expand(0xC0) != c.Expand(0) {
		t.Errorf("upper bits changed the events")
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		p    Pattern
		want [Dots]time.Duration
	}{
		{0, [Dots]time.Duration{us(600), us(600), us(600), us(600), us(600), us(600)}},
		{PatternMask, [Dots]time.Duration{us(1500), us(1500), us(1500), us(1500), us(1500), us(1500)}},
		{Encode('d'), [Dots]time.Duration{us(1500), us(600), us(600), us(1500), us(1500), us(600)}},
		{Encode('w'), [Dots]time.Duration{us(600), us(1500), us(600), us(1500), us(1500), us(1500)}},
	}
	for _, tc := range tests {
		c, clk, a, b := newTestCell()
		for frame := 1; frame <= 2; frame++ {
			c.Render(tc.p)
			if clk.now != time.Duration(frame)*io.Period {
				t.Errorf("%s: frame %d ended at %s", tc.p, frame, clk.now)
			}
			if got := widths(a, b); got != tc.want {
				t.Errorf("%s: frame %d widths %v, want %v", tc.p, frame, got, tc.want)
			}
			if a.bits != 0 || b.bits != 0 {
				t.Errorf("%s: outputs left high", tc.p)
			}
		}
	}
}

func TestEvents(t *testing.T) {
	c, _, _, _ := newTestCell()
	ev := c.Events([Dots]int{0, 45, 90, 180, -10, 300})
	want := [Dots]time.Duration{us(600), us(1050), us(1500), us(2400), us(600), us(2400)}
	for i, e := range ev {
		if e.Width != want[i] {
			t.Errorf("dot %d width %s, want %s", i+1, e.Width, want[i])
		}
	}
}

func TestNewCellBadRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for range exceeding period")
		}
	}()
	NewCell(Wiring{}, Range{us(600), io.Period + time.Millisecond}, io.NewScheduler(&clock{}))
}

func TestHwCellBadPin(t *testing.T) {
	cc := &CellConfig{PortA: [3]int{-1, -2, -3}, PortB: [3]int{-4, -5, -6}, Range: DefaultRange}
	_, err := NewHwCell(cc, &clock{})
	if err == nil || !strings.HasPrefix(err.Error(), "pin -1: ") {
		t.Errorf("NewHwCell error %v", err)
	}
}
