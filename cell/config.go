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
	"time"

	"github.com/aamcrae/braille/io"
	"github.com/aamcrae/config"
)

// Section is the name of the cell configuration section.
const Section = "cell"

// CellConfig is the configuration of the cell servos, read from a configuration file.
type CellConfig struct {
	PortA [3]int // GPIOs for servos 4-6
	PortB [3]int // GPIOs for servos 1-3
	Range Range
}

// Config reads and validates the cell configuration.
// Sample config:
//  [cell]
//  porta=26,19,13      # GPIOs for dots 4, 5, 6
//  portb=21,20,16      # GPIOs for dots 1, 2, 3
//  range=600,2400      # Servo pulse width in microseconds at 0 and 180 degrees (optional)
func Config(conf *config.Config) (*CellConfig, error) {
	s := conf.GetSection(Section)
	if s == nil {
		return nil, fmt.Errorf("no config for %s", Section)
	}
	var c CellConfig
	n, err := s.Parse("porta", "%d,%d,%d", &c.PortA[0], &c.PortA[1], &c.PortA[2])
	if err != nil {
		return nil, fmt.Errorf("porta: %v", err)
	}
	if n != 3 {
		return nil, fmt.Errorf("porta: argument count")
	}
	n, err = s.Parse("portb", "%d,%d,%d", &c.PortB[0], &c.PortB[1], &c.PortB[2])
	if err != nil {
		return nil, fmt.Errorf("portb: %v", err)
	}
	if n != 3 {
		return nil, fmt.Errorf("portb: argument count")
	}
	c.Range = DefaultRange
	if _, err := s.GetArg("range"); err == nil {
		var lo, hi int
		n, err = s.Parse("range", "%d,%d", &lo, &hi)
		if err != nil {
			return nil, fmt.Errorf("range: %v", err)
		}
		if n != 2 {
			return nil, fmt.Errorf("range: argument count")
		}
		c.Range = Range{Min: time.Duration(lo) * time.Microsecond, Max: time.Duration(hi) * time.Microsecond}
	}
	if err := c.Range.Validate(io.Period); err != nil {
		return nil, fmt.Errorf("range: %v", err)
	}
	return &c, nil
}
