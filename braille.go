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

// Braille reader program

package main

import (
	"flag"
	"log"
	"os"

	"github.com/aamcrae/braille/cell"
	"github.com/aamcrae/braille/control"
	"github.com/aamcrae/braille/display"
	"github.com/aamcrae/braille/input"
	"github.com/aamcrae/braille/io"
	"github.com/aamcrae/config"
)

var configFile = flag.String("config", "braille.conf", "Configuration file")
var calibrate = flag.Int("calibrate", 1000, "Number of sleeps used to calibrate the timer (0 to skip)")

func main() {
	flag.Parse()
	conf, err := config.ParseFile(*configFile)
	if err != nil {
		log.Fatalf("%s: %v", *configFile, err)
	}
	w := io.NewSleeper()
	if *calibrate > 0 {
		over := w.Calibrate(*calibrate)
		log.Printf("Timer overshoot %s, spin %s", over, w.Spin)
	}
	cc, err := cell.Config(conf)
	if err != nil {
		log.Fatalf("%s: %v", *configFile, err)
	}
	hw, err := cell.NewHwCell(cc, w)
	if err != nil {
		log.Fatalf("cell: %v", err)
	}
	defer hw.Close()

	pins := new(input.Pins)
	defer pins.Close()
	pc, err := input.ConfigPanel(conf)
	if err != nil {
		log.Fatalf("%s: %v", *configFile, err)
	}
	panel, err := pins.OpenPanel(pc)
	if err != nil {
		log.Fatalf("panel: %v", err)
	}
	var keypad control.Keypad
	if conf.GetSection("keypad") != nil {
		kc, err := input.ConfigKeypad(conf)
		if err != nil {
			log.Fatalf("%s: %v", *configFile, err)
		}
		k, err := pins.OpenKeypad(kc, w)
		if err != nil {
			log.Fatalf("keypad: %v", err)
		}
		keypad = k
	}
	var serial control.Serial
	if conf.GetSection("serial") != nil {
		sc, err := input.ConfigSerial(conf)
		if err != nil {
			log.Fatalf("%s: %v", *configFile, err)
		}
		s, err := input.OpenSerial(sc.Device, sc.Baud)
		if err != nil {
			log.Fatalf("serial: %v", err)
		}
		defer s.Close()
		serial = s
	}
	var disp display.Display = display.NewConsole(os.Stdout)
	if conf.GetSection("lcd") != nil {
		lc, err := display.Config(conf)
		if err != nil {
			log.Fatalf("%s: %v", *configFile, err)
		}
		bus, err := io.OpenI2C(lc.Bus)
		if err != nil {
			log.Fatalf("i2c: %v", err)
		}
		defer bus.Close()
		disp, err = display.NewLCD(bus, lc)
		if err != nil {
			log.Fatalf("lcd: %v", err)
		}
	}
	c := control.New(hw, disp, keypad, serial, panel, hw)
	if err := c.Init(); err != nil {
		log.Fatalf("init: %v", err)
	}
	log.Printf("Braille reader running")
	if err := c.Run(); err != nil {
		log.Printf("%v (after %d frames)", err, c.Frames)
		hw.Close()
		os.Exit(1)
	}
}
