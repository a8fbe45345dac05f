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

// Servo angle to pulse width conversion

package cell

import (
	"fmt"
	"time"
)

// MaxAngle is the full travel of a servo in degrees.
const MaxAngle = 180

// Range is the span of pulse widths for a servo, Min being
// the pulse width at 0 degrees and Max the width at 180 degrees.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// DefaultRange is tuned for SG90 micro servos.
var DefaultRange = Range{Min: 600 * time.Microsecond, Max: 2400 * time.Microsecond}

// ClampAngle limits an angle to 0 - 180 degrees.
func ClampAngle(angle int) int {
	if angle < 0 {
		return 0
	}
	if angle > MaxAngle {
		return MaxAngle
	}
	return angle
}

// Pulse returns the pulse width for the angle, which is clamped
// to the valid range. The width is interpolated in whole
// microseconds, rounding down.
func (r Range) Pulse(angle int) time.Duration {
	angle = ClampAngle(angle)
	span := int64((r.Max - r.Min) / time.Microsecond)
	return r.Min + time.Duration(span*int64(angle)/MaxAngle)*time.Microsecond
}

// Angle returns the nearest angle for a pulse width.
func (r Range) Angle(width time.Duration) int {
	span := r.Max - r.Min
	if span <= 0 {
		return 0
	}
	a := ((width-r.Min)*MaxAngle + span/2) / span
	return ClampAngle(int(a))
}

// Validate checks that the range is ordered and fits within the frame period.
func (r Range) Validate(period time.Duration) error {
	if r.Min < 0 || r.Min > r.Max {
		return fmt.Errorf("invalid servo range %s - %s", r.Min, r.Max)
	}
	if r.Max > period {
		return fmt.Errorf("servo range maximum %s exceeds frame period %s", r.Max, period)
	}
	return nil
}
