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

// Package display shows the committed characters as text.

package display

import (
	"fmt"
	"io"
	"sync"
)

// Display is a character display.
type Display interface {
	WriteChar(byte)
	Clear()
}

// Console is a Display that writes to a stream, one line per
// cleared screen.
type Console struct {
	w  io.Writer
	mu sync.Mutex
	n  int // Characters on the current line
}

// NewConsole creates a console display writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// WriteChar prints the character.
func (c *Console) WriteChar(b byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%c", b)
	c.n++
}

// Clear starts a new line, if anything has been written.
func (c *Console) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n > 0 {
		fmt.Fprintln(c.w)
		c.n = 0
	}
}
