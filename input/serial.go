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

package input

import (
	"io"
	"log"

	"github.com/tarm/serial"
)

const serialQueueSize = 64 // Size of queue for received bytes

// Serial is a source of characters from a serial line (or any other reader).
// Reading is done in a background goroutine so that the
// control loop can poll for characters without blocking.
type Serial struct {
	name string
	rd   io.ReadCloser
	c    chan byte
	done chan struct{}
}

// OpenSerial opens a serial device at the baud rate.
func OpenSerial(device string, baud int) (*Serial, error) {
	p, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, err
	}
	return NewSerial(device, p), nil
}

// NewSerial starts reading characters from rd.
func NewSerial(name string, rd io.ReadCloser) *Serial {
	s := new(Serial)
	s.name = name
	s.rd = rd
	s.c = make(chan byte, serialQueueSize)
	s.done = make(chan struct{})
	go s.reader()
	return s
}

// Poll returns the next received character if there is one.
func (s *Serial) Poll() (byte, bool) {
	select {
	case b, ok := <-s.c:
		return b, ok
	default:
		return 0, false
	}
}

// Close closes the underlying reader and terminates the reading goroutine,
// even if it is waiting for room in the queue.
func (s *Serial) Close() error {
	close(s.done)
	return s.rd.Close()
}

// goroutine reader
// Reads from the device and queues the characters.
func (s *Serial) reader() {
	defer close(s.c)
	buf := make([]byte, 32)
	for {
		n, err := s.rd.Read(buf)
		for _, b := range buf[:n] {
			select {
			case s.c <- b:
			case <-s.done:
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				log.Printf("%s: read: %v", s.name, err)
			}
			return
		}
	}
}
