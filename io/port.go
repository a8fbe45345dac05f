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

package io

import (
	"fmt"
	"sync"
)

// Port is a bank of output bits that can be set and cleared
// independently. A port is exclusively owned by the frame scheduler
// while a frame is running.
type Port interface {
	Name() string
	Set(mask uint32)
	Clear(mask uint32)
	Read() uint32
}

// PinPort is a Port built from individual GPIO output pins, with
// pin N driven by bit N of the port.
// Pin errors do not interrupt a frame; the first error is kept
// and can be retrieved with Err.
type PinPort struct {
	name string
	pins []Setter
	bits uint32 // Shadow of the output values
	err  error
}

// NewPinPort creates a port from the pins, which are all driven low.
func NewPinPort(name string, pins ...Setter) *PinPort {
	if len(pins) > 32 {
		panic(fmt.Sprintf("%s: too many pins (%d)", name, len(pins)))
	}
	p := new(PinPort)
	p.name = name
	p.pins = pins
	p.Clear(p.all())
	return p
}

// Name returns the name of the port.
func (p *PinPort) Name() string {
	return p.name
}

// Set drives the pins selected by mask high.
func (p *PinPort) Set(mask uint32) {
	p.write(mask, 1)
	p.bits |= mask & p.all()
}

// Clear drives the pins selected by mask low.
func (p *PinPort) Clear(mask uint32) {
	p.write(mask, 0)
	p.bits &^= mask
}

// Read returns the last values written to the pins.
func (p *PinPort) Read() uint32 {
	return p.bits
}

// Err returns the first error seen when writing to a pin.
func (p *PinPort) Err() error {
	return p.err
}

func (p *PinPort) write(mask uint32, v int) {
	for i, pin := range p.pins {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		if err := pin.Set(v); err != nil && p.err == nil {
			p.err = fmt.Errorf("%s: pin %d: %v", p.name, i, err)
		}
	}
}

func (p *PinPort) all() uint32 {
	return uint32(1<<uint(len(p.pins))) - 1
}

// MemPort is a Port held in memory. It is safe to read
// the port from a different goroutine to the one writing it.
type MemPort struct {
	name string
	mu   sync.Mutex
	bits uint32
}

// NewMemPort creates a new in-memory port with all bits clear.
func NewMemPort(name string) *MemPort {
	return &MemPort{name: name}
}

func (m *MemPort) Name() string {
	return m.name
}

func (m *MemPort) Set(mask uint32) {
	m.mu.Lock()
	m.bits |= mask
	m.mu.Unlock()
}

func (m *MemPort) Clear(mask uint32) {
	m.mu.Lock()
	m.bits &^= mask
	m.mu.Unlock()
}

func (m *MemPort) Read() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bits
}
