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

// Package input reads characters and control switches for the Braille cell.

package input

import (
	"fmt"
	"time"

	"github.com/aamcrae/braille/io"
)

// KeypadSize is the number of rows and columns in the keypad matrix.
const KeypadSize = 4

// Enter is returned for the keypad enter key.
const Enter = '\r'

// Symbols on the keypad, by row and column.
var keymap = [KeypadSize][KeypadSize]byte{
	{'1', '2', '3', 'U'},
	{'4', '5', '6', 'D'},
	{'7', '8', '9', 'E'},
	{'L', '0', 'R', Enter},
}

// Time for the column inputs to follow a row change.
const settle = 10 * time.Microsecond

// Keypad is a 4x4 matrix keypad. The rows are outputs that are
// normally high, and the columns are inputs pulled high.
// A row is scanned by driving it low; a pressed key in that
// row pulls its column low.
type Keypad struct {
	rows   [KeypadSize]io.Setter
	cols   [KeypadSize]io.Getter
	waiter io.Waiter
}

// NewKeypad creates a keypad from the row outputs and column inputs.
func NewKeypad(rows [KeypadSize]io.Setter, cols [KeypadSize]io.Getter, w io.Waiter) *Keypad {
	k := new(Keypad)
	k.rows = rows
	k.cols = cols
	k.waiter = w
	return k
}

// Scan checks each row in turn and returns the symbol of the
// first key found pressed, or 0 if no key is pressed.
func (k *Keypad) Scan() (byte, error) {
	if err := k.idle(); err != nil {
		return 0, err
	}
	for r := range k.rows {
		if err := k.rows[r].Set(0); err != nil {
			return 0, fmt.Errorf("keypad row %d: %v", r, err)
		}
		k.waiter.Wait(settle)
		for c := range k.cols {
			v, err := k.cols[c].Get()
			if err != nil {
				return 0, fmt.Errorf("keypad column %d: %v", c, err)
			}
			if v == 0 {
				return keymap[r][c], k.idle()
			}
		}
		if err := k.rows[r].Set(1); err != nil {
			return 0, fmt.Errorf("keypad row %d: %v", r, err)
		}
	}
	return 0, nil
}

// idle drives all rows high.
func (k *Keypad) idle() error {
	for r, p := range k.rows {
		if err := p.Set(1); err != nil {
			return fmt.Errorf("keypad row %d: %v", r, err)
		}
	}
	return nil
}

// KeyToBraille maps the digit keys to the letters sharing the same
// Braille pattern ('1' is 'a' through to '9' as 'i', and '0' as 'j').
// Other keys are returned unchanged.
func KeyToBraille(key byte) byte {
	switch {
	case key >= '1' && key <= '9':
		return key - '1' + 'a'
	case key == '0':
		return 'j'
	}
	return key
}
