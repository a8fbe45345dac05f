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
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aamcrae/braille/io"
	"github.com/aamcrae/config"
)

// matrix simulates a keypad with a set of pressed keys.
type matrix struct {
	rows    [KeypadSize]int
	pressed map[[2]int]bool
	waits   int
}

type rowPin struct {
	m *matrix
	r int
}

func (p rowPin) Set(v int) error {
	p.m.rows[p.r] = v
	return nil
}

type colPin struct {
	m *matrix
	c int
}

func (p colPin) Get() (int, error) {
	for r := 0; r < KeypadSize; r++ {
		if p.m.rows[r] == 0 && p.m.pressed[[2]int{r, p.c}] {
			return 0, nil
		}
	}
	return 1, nil
}

func (m *matrix) Wait(d time.Duration) {
	m.waits++
}

func newMatrix() (*matrix, *Keypad) {
	m := &matrix{pressed: make(map[[2]int]bool)}
	var rows [KeypadSize]io.Setter
	var cols [KeypadSize]io.Getter
	for i := 0; i < KeypadSize; i++ {
		rows[i] = rowPin{m, i}
		cols[i] = colPin{m, i}
	}
	return m, NewKeypad(rows, cols, m)
}

func TestKeypadScan(t *testing.T) {
	m, k := newMatrix()
	key, err := k.Scan()
	if err != nil || key != 0 {
		t.Fatalf("Scan() with no key = %q, %v", key, err)
	}
	for r := 0; r < KeypadSize; r++ {
		for c := 0; c < KeypadSize; c++ {
			m.pressed = map[[2]int]bool{{r, c}: true}
			key, err := k.Scan()
			if err != nil {
				t.Fatalf("Scan(): %v", err)
			}
			if key != keymap[r][c] {
				t.Errorf("key %d,%d = %q, want %q", r, c, key, keymap[r][c])
			}
			for i, v := range m.rows {
				if v != 1 {
					t.Errorf("row %d left low after scan", i)
				}
			}
		}
	}
	if m.waits == 0 {
		t.Errorf("no settle delay used")
	}
	// The first row scanned wins.
	m.pressed = map[[2]int]bool{{3, 3}: true, {1, 2}: true}
	if key, _ := k.Scan(); key != '6' {
		t.Errorf("Scan() with 2 keys = %q, want '6'", key)
	}
}

type badPin struct{}

func (badPin) Set(int) error { return errors.New("set failed") }
func (badPin) Get() (int, error) { return 0, errors.New("get failed") }

func TestKeypadError(t *testing.T) {
	m, _ := newMatrix()
	var rows [KeypadSize]io.Setter
	var cols [KeypadSize]io.Getter
	for i := range rows {
		rows[i] = rowPin{m, i}
		cols[i] = badPin{}
	}
	if _, err := NewKeypad(rows, cols, m).Scan(); err == nil {
		t.Errorf("expected column error")
	}
	rows[2] = badPin{}
	if _, err := NewKeypad(rows, cols, m).Scan(); err == nil {
		t.Errorf("expected row error")
	}
}

func TestKeyToBraille(t *testing.T) {
	tests := map[byte]byte{
		'1': 'a', '2': 'b', '3': 'c', '4': 'd', '5': 'e',
		'6': 'f', '7': 'g', '8': 'h', '9': 'i', '0': 'j',
		'U': 'U', 'D': 'D', 'E': 'E', 'L': 'L', 'R': 'R', Enter: Enter,
	}
	for k, want := range tests {
		if got := KeyToBraille(k); got != want {
			t.Errorf("KeyToBraille(%q) = %q, want %q", k, got, want)
		}
	}
}

func TestSerial(t *testing.T) {
	s := NewSerial("test", ioutil.NopCloser(strings.NewReader("ab\r\nc")))
	var got []byte
	deadline := time.Now().Add(5 * time.Second)
	for len(got) < 5 && time.Now().Before(deadline) {
		if b, ok := s.Poll(); ok {
			got = append(got, b)
		} else {
			time.Sleep(time.Millisecond)
		}
	}
	if string(got) != "ab\r\nc" {
		t.Errorf("received %q", got)
	}
	if _, ok := s.Poll(); ok {
		t.Errorf("unexpected character after end of input")
	}
	s.Close()
}

// stuckReader returns its data, then blocks on any further read.
type stuckReader struct {
	data  []byte
	block chan struct{}
}

func (r *stuckReader) Read(b []byte) (int, error) {
	if len(r.data) == 0 {
		<-r.block
		return 0, errors.New("closed")
	}
	n := copy(b, r.data)
	r.data = r.data[n:]
	return n, nil
}

func (r *stuckReader) Close() error {
	return nil
}

func TestSerialCloseFull(t *testing.T) {
	rd := &stuckReader{data: []byte(strings.Repeat("x", 4*serialQueueSize)), block: make(chan struct{})}
	defer close(rd.block)
	s := NewSerial("stuck", rd)
	deadline := time.Now().Add(5 * time.Second)
	for len(s.c) < serialQueueSize && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if len(s.c) != serialQueueSize {
		t.Fatalf("queue has %d characters, want %d", len(s.c), serialQueueSize)
	}
	s.Close()
	time.Sleep(50 * time.Millisecond)
	n := 0
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-s.c:
			if !ok {
				if n != serialQueueSize {
					t.Errorf("received %d characters after close, want %d", n, serialQueueSize)
				}
				return
			}
			n++
		case <-timeout:
			t.Fatalf("reader did not exit after Close")
		}
	}
}

type pin int

func (p pin) Get() (int, error) { return int(p), nil }

type led struct{ v *int }

func (l led) Set(v int) error {
	*l.v = v
	return nil
}

func TestPanel(t *testing.T) {
	var l0, l1 int
	p := NewPanel([]io.Getter{pin(1), pin(0)}, []io.Getter{pin(0), pin(1)}, []io.Setter{led{&l0}, led{&l1}})
	sw, err := p.Switches()
	if err != nil || sw != 0b01 {
		t.Errorf("Switches() = %02b, %v", sw, err)
	}
	btn, err := p.Buttons()
	if err != nil || btn != 0b10 {
		t.Errorf("Buttons() = %02b, %v", btn, err)
	}
	if err := p.ShowLEDs(0b10); err != nil {
		t.Fatal(err)
	}
	if l0 != 0 || l1 != 1 {
		t.Errorf("LEDs %d%d, want 01", l0, l1)
	}
	if _, err := NewPanel([]io.Getter{badPin{}}, nil, nil).Switches(); err == nil {
		t.Errorf("expected switch error")
	}
}

func TestRising(t *testing.T) {
	tests := []struct {
		prev, cur, mask uint32
		want            bool
	}{
		{0, 1, 1, true},
		{1, 1, 1, false},
		{1, 0, 1, false},
		{0, 2, 1, false},
		{1, 3, 2, true},
	}
	for _, tc := range tests {
		if got := Rising(tc.prev, tc.cur, tc.mask); got != tc.want {
			t.Errorf("Rising(%b, %b, %b) = %v", tc.prev, tc.cur, tc.mask, got)
		}
	}
}

func parse(t *testing.T, s string) *config.Config {
	t.Helper()
	f := filepath.Join(t.TempDir(), "braille.conf")
	if err := os.WriteFile(f, []byte(s), 0644); err != nil {
		t.Fatal(err)
	}
	conf, err := config.ParseFile(f)
	if err != nil {
		t.Fatalf("%s: %v", f, err)
	}
	return conf
}

func TestConfig(t *testing.T) {
	conf := parse(t, "[keypad]\nrows=5,6,12,13\ncols=17,27,22,23\n[panel]\nswitches=24,25\nbuttons=8,7\n[serial]\ndevice=/dev/ttyPS1\n")
	kc, err := ConfigKeypad(conf)
	if err != nil {
		t.Fatalf("keypad: %v", err)
	}
	if kc.Rows != [KeypadSize]int{5, 6, 12, 13} || kc.Cols != [KeypadSize]int{17, 27, 22, 23} {
		t.Errorf("keypad %v", kc)
	}
	pc, err := ConfigPanel(conf)
	if err != nil {
		t.Fatalf("panel: %v", err)
	}
	if len(pc.Switches) != 2 || pc.Switches[1] != 25 || len(pc.Buttons) != 2 || pc.Buttons[0] != 8 || pc.LEDs != nil {
		t.Errorf("panel %v", pc)
	}
	sc, err := ConfigSerial(conf)
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	if sc.Device != "/dev/ttyPS1" || sc.Baud != defaultBaud {
		t.Errorf("serial %v", sc)
	}
}

func TestConfigErrors(t *testing.T) {
	conf := parse(t, "[keypad]\nrows=5,6,12\ncols=17,27,22,23\n[panel]\nswitches=24,x\nbuttons=8,7\n")
	if _, err := ConfigKeypad(conf); err == nil {
		t.Errorf("expected keypad error")
	}
	if _, err := ConfigPanel(conf); err == nil {
		t.Errorf("expected panel error")
	}
	if _, err := ConfigSerial(conf); err == nil {
		t.Errorf("expected serial error")
	}
}

func TestPinError(t *testing.T) {
	p := new(Pins)
	defer p.Close()
	if _, err := p.Output(-1); err == nil || !strings.HasPrefix(err.Error(), "pin -1: ") {
		t.Errorf("Output(-1) error %v", err)
	}
	if _, err := p.Input(-1); err == nil || !strings.HasPrefix(err.Error(), "pin -1: ") {
		t.Errorf("Input(-1) error %v", err)
	}
}
