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

package display

import (
	"fmt"

	"github.com/aamcrae/braille/io"
	"github.com/aamcrae/config"
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"
)

var _ drivers.I2C = (*io.I2C)(nil)

// Default I2C address of a PCF8574 LCD backpack.
const defaultAddress = 0x27

// LCDConfig holds the bus settings and geometry of the LCD.
type LCDConfig struct {
	Bus     int
	Address int
	Width   int
	Height  int
}

// LCD is a HD44780 character LCD connected through a PCF8574 I2C expander.
// Characters are written in sequence, wrapping onto the next line.
type LCD struct {
	dev    hd44780i2c.Device
	width  int
	height int
	col    int
	row    int
}

// Config reads the LCD configuration.
// Sample config:
//  [lcd]
//  bus=1               # I2C bus number
//  address=39          # I2C address (optional, default 0x27)
//  size=16,2           # columns, rows (optional)
func Config(conf *config.Config) (*LCDConfig, error) {
	s := conf.GetSection("lcd")
	if s == nil {
		return nil, fmt.Errorf("no config for lcd")
	}
	lc := LCDConfig{Address: defaultAddress, Width: 16, Height: 2}
	n, err := s.Parse("bus", "%d", &lc.Bus)
	if err != nil {
		return nil, fmt.Errorf("bus: %v", err)
	}
	if n != 1 {
		return nil, fmt.Errorf("bus: argument count")
	}
	if _, err := s.GetArg("address"); err == nil {
		n, err = s.Parse("address", "%d", &lc.Address)
		if err != nil || n != 1 || lc.Address <= 0 || lc.Address > 0x7F {
			return nil, fmt.Errorf("address: invalid value")
		}
	}
	if _, err := s.GetArg("size"); err == nil {
		n, err = s.Parse("size", "%d,%d", &lc.Width, &lc.Height)
		if err != nil || n != 2 || lc.Width <= 0 || lc.Height <= 0 || lc.Width > 40 || lc.Height > 4 {
			return nil, fmt.Errorf("size: invalid value")
		}
	}
	return &lc, nil
}

// NewLCD initialises the LCD on the bus.
func NewLCD(bus drivers.I2C, lc *LCDConfig) (*LCD, error) {
	l := new(LCD)
	l.width = lc.Width
	l.height = lc.Height
	l.dev = hd44780i2c.New(bus, uint8(lc.Address))
	err := l.dev.Configure(hd44780i2c.Config{Width: uint8(lc.Width), Height: uint8(lc.Height)})
	if err != nil {
		return nil, fmt.Errorf("lcd 0x%02x: %v", lc.Address, err)
	}
	l.dev.BacklightOn(true)
	l.Clear()
	return l, nil
}

// WriteChar writes the character at the cursor and advances it.
func (l *LCD) WriteChar(b byte) {
	if l.col >= l.width {
		l.col = 0
		l.row = (l.row + 1) % l.height
	}
	l.dev.SetCursor(uint8(l.col), uint8(l.row))
	l.dev.Print([]byte{b})
	l.col++
}

// Clear blanks the display and homes the cursor.
func (l *LCD) Clear() {
	l.dev.ClearDisplay()
	l.col = 0
	l.row = 0
}
