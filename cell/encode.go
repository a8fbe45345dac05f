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

// Braille encoding

package cell

import (
	"strconv"
	"strings"
)

// Dots is the number of dots in a Braille cell.
const Dots = 6

// Pattern is a 6 dot Braille cell, with bit N set if dot N+1 is raised.
// The dots are numbered down the left column and then the right:
//  1 4
//  2 5
//  3 6
type Pattern uint8

// PatternMask holds the valid bits of a Pattern.
const PatternMask Pattern = 1<<Dots - 1

// Letters a-z.
var letters = [26]Pattern{
	0b000001, // a
	0b000011, // b
	0b001001, // c
	0b011001, // d
	0b010001, // e
	0b001011, // f
	0b011011, // g
	0b010011, // h
	0b001010, // i
	0b011010, // j
	0b000101, // k
	0b000111, // l
	0b001101, // m
	0b011101, // n
	0b010101, // o
	0b001111, // p
	0b011111, // q
	0b010111, // r
	0b001110, // s
	0b011110, // t
	0b100101, // u
	0b100111, // v
	0b111010, // w
	0b101101, // x
	0b111101, // y
	0b110101, // z
}

// Encode returns the Braille pattern for a letter, ignoring case.
// Anything other than a letter is blank (all dots down).
func Encode(c byte) Pattern {
	if c >= 'A' && c <= 'Z' {
		c = c - 'A' + 'a'
	}
	if c < 'a' || c > 'z' {
		return 0
	}
	return letters[c-'a']
}

// Dot returns true if dot n (1 - 6) is raised.
func (p Pattern) Dot(n int) bool {
	if n < 1 || n > Dots {
		return false
	}
	return p&(1<<uint(n-1)) != 0
}

// String lists the raised dots e.g "1-3-5".
func (p Pattern) String() string {
	var d []string
	for n := 1; n <= Dots; n++ {
		if p.Dot(n) {
			d = append(d, strconv.Itoa(n))
		}
	}
	if len(d) == 0 {
		return "-"
	}
	return strings.Join(d, "-")
}
