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

// Simulator Braille reader program

package main

import (
	"flag"
	"log"
	"os"
	"sync"
	"time"

	"github.com/aamcrae/braille/cell"
	"github.com/aamcrae/braille/control"
	"github.com/aamcrae/braille/display"
	"github.com/aamcrae/braille/input"
	"github.com/aamcrae/braille/io"
)

var autoCommit = flag.Bool("auto", true, "Commit each character as it is received")
var pressTime = flag.Duration("press", 100*time.Millisecond, "Time a simulated button is held down")

// servoPort is a port whose outputs drive simulated servos.
// The width of each pulse is measured, and is the position of the servo.
type servoPort struct {
	*io.MemPort
	now    func() time.Time
	mu     sync.Mutex
	rise   [io.Channels]time.Time
	widths [io.Channels]time.Duration
}

func newServoPort(name string) *servoPort {
	return &servoPort{MemPort: io.NewMemPort(name), now: time.Now}
}

func (s *servoPort) Set(mask uint32) {
	t := s.now()
	s.mu.Lock()
	for i := range s.rise {
		if mask&(1<<i) != 0 {
			s.rise[i] = t
		}
	}
	s.mu.Unlock()
	s.MemPort.Set(mask)
}

func (s *servoPort) Clear(mask uint32) {
	t := s.now()
	high := s.Read()
	s.mu.Lock()
	for i := range s.rise {
		if mask&high&(1<<i) != 0 {
			s.widths[i] = t.Sub(s.rise[i])
		}
	}
	s.mu.Unlock()
	s.MemPort.Clear(mask)
}

// Width returns the last pulse width measured on the output.
func (s *servoPort) Width(mask uint32) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.widths {
		if mask&(1<<i) != 0 {
			return s.widths[i]
		}
	}
	return 0
}

// simCell holds the simulated servos of the cell.
type simCell struct {
	wiring cell.Wiring
	rng    cell.Range
}

// Angles returns the current angle of each servo.
func (s *simCell) Angles() [cell.Dots]int {
	var a [cell.Dots]int
	for i, ch := range s.wiring {
		a[i] = s.rng.Angle(ch.Port.(*servoPort).Width(ch.Mask))
	}
	return a
}

// simPanel has input always enabled from the serial line, and buttons
// pressed from the web server.
type simPanel struct {
	mu      sync.Mutex
	buttons uint32
	leds    uint32
}

func (p *simPanel) Switches() (uint32, error) {
	return control.InputEnable, nil
}

func (p *simPanel) Buttons() (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buttons, nil
}

func (p *simPanel) ShowLEDs(v uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v != p.leds {
		log.Printf("LEDs %02b", v)
		p.leds = v
	}
	return nil
}

// press holds the button down for a while.
func (p *simPanel) press(b uint32) {
	p.mu.Lock()
	p.buttons |= b
	p.mu.Unlock()
	time.AfterFunc(*pressTime, func() {
		p.mu.Lock()
		p.buttons &^= b
		p.mu.Unlock()
	})
}

// held returns true if the button is down.
func (p *simPanel) held(b uint32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buttons&b != 0
}

// autoSerial presses the commit button when a character arrives.
// Characters are left queued while the button is down, so that each
// one is committed by its own press.
type autoSerial struct {
	*input.Serial
	panel *simPanel
}

func (a *autoSerial) Poll() (byte, bool) {
	if a.panel.held(control.Commit) {
		return 0, false
	}
	b, ok := a.Serial.Poll()
	if ok && b != '\r' && b != '\n' {
		a.panel.press(control.Commit)
	}
	return b, ok
}

func main() {
	flag.Parse()
	a := newServoPort("A")
	b := newServoPort("B")
	w := io.NewSleeper()
	over := w.Calibrate(100)
	log.Printf("Timer overshoot %s, spin %s", over, w.Spin)
	wiring := cell.NewWiring(a, b)
	c := cell.NewCell(wiring, cell.DefaultRange, io.NewScheduler(w))
	sc := &simCell{wiring, cell.DefaultRange}
	panel := new(simPanel)
	stdin := input.NewSerial("stdin", os.Stdin)
	var serial control.Serial = stdin
	if *autoCommit {
		serial = &autoSerial{stdin, panel}
	}
	ctl := control.New(c, display.NewConsole(os.Stdout), nil, serial, panel)
	if err := ctl.Init(); err != nil {
		log.Fatalf("init: %v", err)
	}
	go CellServer(sc, panel)
	log.Fatal(ctl.Run())
}
