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
	"github.com/aamcrae/braille/io"
)

// Servo positions for a lowered and a raised dot.
const (
	Down = 0
	Up   = 90
)

// Channel is the output bit driving the servo for one dot.
type Channel struct {
	Port io.Port
	Mask uint32
}

// Wiring holds the channel for each dot, indexed by pattern bit.
type Wiring [Dots]Channel

// NewWiring returns the standard wiring of a cell across two ports of
// three outputs each. Dots 1-3 are on port B, slots 0-2, and
// dots 4-6 are on port A, slots 0-2.
func NewWiring(a, b io.Port) Wiring {
	return Wiring{
		{b, 1 << 0},
		{b, 1 << 1},
		{b, 1 << 2},
		{a, 1 << 0},
		{a, 1 << 1},
		{a, 1 << 2},
	}
}

// Angles returns the servo angle for each dot of the pattern.
func Angles(p Pattern) [Dots]int {
	var a [Dots]int
	for i := range a {
		if p&(1<<uint(i)) != 0 {
			a[i] = Up
		} else {
			a[i] = Down
		}
	}
	return a
}
