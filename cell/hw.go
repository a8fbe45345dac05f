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
	"fmt"
	"log"

	"github.com/aamcrae/braille/io"
	gpio "github.com/aamcrae/gpio"
)

// HwCell combines a Cell with the GPIO outputs driving the servos.
type HwCell struct {
	*Cell
	PortA *io.PinPort
	PortB *io.PinPort
	pins  []*gpio.Gpio
}

// NewHwCell opens the GPIOs from the configuration and creates
// a Cell driving them. w is used for the frame timing.
func NewHwCell(cc *CellConfig, w io.Waiter) (*HwCell, error) {
	h := new(HwCell)
	a, err := h.open(cc.PortA[:])
	if err != nil {
		h.Close()
		return nil, err
	}
	b, err := h.open(cc.PortB[:])
	if err != nil {
		h.Close()
		return nil, err
	}
	h.PortA = io.NewPinPort("A", a...)
	h.PortB = io.NewPinPort("B", b...)
	h.Cell = NewCell(NewWiring(h.PortA, h.PortB), cc.Range, io.NewScheduler(w))
	log.Printf("cell: port A %v, port B %v, range %s - %s", cc.PortA, cc.PortB, cc.Range.Min, cc.Range.Max)
	return h, nil
}

func (h *HwCell) open(gpios []int) ([]io.Setter, error) {
	var s []io.Setter
	for _, v := range gpios {
		p, err := gpio.OutputPin(v)
		if err != nil {
			return nil, fmt.Errorf("pin %d: %v", v, err)
		}
		h.pins = append(h.pins, p)
		s = append(s, p)
	}
	return s, nil
}

// Err returns the first output error on either port.
func (h *HwCell) Err() error {
	if err := h.PortA.Err(); err != nil {
		return err
	}
	return h.PortB.Err()
}

// Close lowers the outputs and releases the GPIOs.
func (h *HwCell) Close() {
	if h.PortA != nil {
		h.PortA.Clear(^uint32(0))
	}
	if h.PortB != nil {
		h.PortB.Clear(^uint32(0))
	}
	for _, p := range h.pins {
		p.Close()
	}
}
