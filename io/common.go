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

// Package io provides the output ports, timing and bus access
// used to drive a Braille cell.

package io

import (
	"fmt"
	"os/user"
	"time"

	"golang.org/x/sys/unix"
)

// Setter is an interface for setting an output value on a GPIO
type Setter interface {
	Set(int) error
}

// Getter is an interface for reading an input value from a GPIO
type Getter interface {
	Get() (int, error)
}

const verifyTimeout = 2 * time.Second

// Verify will enable waiting for device files to become writable.
// This is necessary if the process is not running as root - systemd
// and udev will change the group permissions on the device files, but
// this takes some time to do. If we try and access the files before
// the file group/modes are changed, we will get a permission error.
// This can be overridden.
var Verify = false

func init() {
	// If the user is not root, enable Verify mode
	u, err := user.Current()
	if err == nil && u.Uid != "0" {
		Verify = true
	}
}

// Wait for file to become readable and writable.
func verifyFile(f string) error {
	var tout time.Duration
	sl := time.Millisecond
	for tout = 0; tout < verifyTimeout; tout += sl {
		err := unix.Access(f, unix.W_OK|unix.R_OK)
		if err == nil {
			return nil
		}
		time.Sleep(sl)
	}
	return fmt.Errorf("%s: not accessible", f)
}
