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
	"sort"
	"time"
)

// Period is the fixed length of a servo frame (50Hz).
const Period = 20 * time.Millisecond

// Channels is the number of outputs driven in each frame.
const Channels = 6

// Event describes the pulse on one output channel for a single frame.
// The output is the bit (or bits) in Mask on Port, held high for Width.
type Event struct {
	Port  Port
	Mask  uint32
	Width time.Duration
}

// Scheduler is a s/w PWM generator for a fixed set of channels sharing
// a common frame period.
// Rather than running a timer per channel, all outputs are raised
// together at the start of the frame, and then lowered in order of
// increasing pulse width, so that a single waiter services every falling
// edge using only the delta between consecutive widths.
// The remainder of the frame is then padded so that every frame
// takes exactly Period.
type Scheduler struct {
	waiter Waiter
}

// NewScheduler creates a frame scheduler using the waiter for timing.
func NewScheduler(w Waiter) *Scheduler {
	s := new(Scheduler)
	s.waiter = w
	return s
}

// Period returns the frame period.
func (s *Scheduler) Period() time.Duration {
	return Period
}

// Frame generates one complete frame for the events, blocking
// for the frame period. ev is a copy, so the caller's events
// are not reordered.
// Widths are limited to [0, Period] so that a bad width cannot
// stretch the frame into the next one.
func (s *Scheduler) Frame(ev [Channels]Event) {
	for i := range ev {
		if ev[i].Width < 0 {
			ev[i].Width = 0
		} else if ev[i].Width > Period {
			ev[i].Width = Period
		}
	}
	// Rising edge for all channels.
	for i := range ev {
		ev[i].Port.Set(ev[i].Mask)
	}
	// Equal widths fall at the same instant, so any ordering of
	// ties is valid; the sort does not need to be stable.
	sort.Slice(ev[:], func(i, j int) bool {
		return ev[i].Width < ev[j].Width
	})
	var elapsed time.Duration
	for i := range ev {
		s.waiter.Wait(ev[i].Width - elapsed)
		ev[i].Port.Clear(ev[i].Mask)
		elapsed = ev[i].Width
	}
	if elapsed < Period {
		s.waiter.Wait(Period - elapsed)
	}
}
