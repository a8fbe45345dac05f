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
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

const (
	i2cDevice = "/dev/i2c-%d"
	i2cSlave  = 0x0703 // ioctl to select the target address
)

// I2C is a Linux I2C bus accessed through the i2c-dev device node.
// It satisfies the tinygo drivers.I2C interface so that
// device drivers written for microcontrollers can be used.
type I2C struct {
	name string
	f    *os.File
	mu   sync.Mutex
	addr int // Currently selected target, -1 if none
}

// OpenI2C opens the numbered I2C bus.
func OpenI2C(bus int) (*I2C, error) {
	b := new(I2C)
	b.name = fmt.Sprintf(i2cDevice, bus)
	b.addr = -1
	if Verify {
		if err := verifyFile(b.name); err != nil {
			return nil, err
		}
	}
	var err error
	b.f, err = os.OpenFile(b.name, os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Tx writes w to the device at addr, and then reads r from it.
// Either may be empty.
func (b *I2C) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if int(addr) != b.addr {
		err := unix.IoctlSetInt(int(b.f.Fd()), i2cSlave, int(addr))
		if err != nil {
			return fmt.Errorf("%s: address 0x%02x: %v", b.name, addr, err)
		}
		b.addr = int(addr)
	}
	if len(w) > 0 {
		if _, err := b.f.Write(w); err != nil {
			return fmt.Errorf("%s: write 0x%02x: %v", b.name, addr, err)
		}
	}
	if len(r) > 0 {
		if _, err := b.f.Read(r); err != nil {
			return fmt.Errorf("%s: read 0x%02x: %v", b.name, addr, err)
		}
	}
	return nil
}

// Close closes the bus.
func (b *I2C) Close() error {
	return b.f.Close()
}
