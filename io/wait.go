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
	"time"
)

// Waiter blocks the caller for a duration.
// Wait must treat a zero or negative duration as a no-op.
type Waiter interface {
	Wait(time.Duration)
}

const (
	defaultSpin   = 200 * time.Microsecond
	maxSpin       = 2 * time.Millisecond
	calibrateWait = 100 * time.Microsecond
)

// Sleeper is a microsecond resolution Waiter.
// time.Sleep on a general purpose kernel overshoots by tens to
// hundreds of microseconds, so Sleeper sleeps until Spin before the
// deadline and then polls the monotonic clock for the remainder.
// Waits shorter than Spin are polled entirely.
// Spin trades CPU time for accuracy, and can be measured
// for the running system with Calibrate.
type Sleeper struct {
	Spin time.Duration
}

// NewSleeper returns a Sleeper with a default spin interval.
func NewSleeper() *Sleeper {
	return &Sleeper{Spin: defaultSpin}
}

// Wait blocks for d.
func (s *Sleeper) Wait(d time.Duration) {
	if d <= 0 {
		return
	}
	deadline := time.Now().Add(d)
	if d > s.Spin {
		time.Sleep(d - s.Spin)
	}
	for time.Now().Before(deadline) {
	}
}

// Calibrate measures the worst overshoot of n short sleeps
// and sets Spin to twice that value, limited to a maximum of 2ms.
// The measured overshoot is returned.
func (s *Sleeper) Calibrate(n int) time.Duration {
	var worst time.Duration
	for i := 0; i < n; i++ {
		start := time.Now()
		time.Sleep(calibrateWait)
		over := time.Since(start) - calibrateWait
		if over > worst {
			worst = over
		}
	}
	s.Spin = worst * 2
	if s.Spin > maxSpin {
		s.Spin = maxSpin
	}
	return worst
}
