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

// Program to demonstrate the cell by showing each letter in turn

package main

import (
	"flag"
	"log"
	"time"

	"github.com/aamcrae/braille/cell"
	"github.com/aamcrae/braille/io"
	"github.com/aamcrae/config"
)

var configFile = flag.String("config", "braille.conf", "Configuration file")
var hold = flag.Duration("hold", time.Second, "Time each letter is shown")
var loops = flag.Int("loops", 1, "Number of times through the alphabet")

func main() {
	flag.Parse()
	conf, err := config.ParseFile(*configFile)
	if err != nil {
		log.Fatalf("%s: %v", *configFile, err)
	}
	cc, err := cell.Config(conf)
	if err != nil {
		log.Fatalf("%s: %v", *configFile, err)
	}
	w := io.NewSleeper()
	w.Calibrate(1000)
	c, err := cell.NewHwCell(cc, w)
	if err != nil {
		log.Fatalf("cell: %v", err)
	}
	defer c.Close()
	frames := int(*hold / io.Period)
	for i := 0; i < *loops; i++ {
		for l := byte('a'); l <= 'z'; l++ {
			p := cell.Encode(l)
			log.Printf("%c: dots %s", l, p)
			for f := 0; f < frames; f++ {
				c.Render(p)
			}
			if err := c.Err(); err != nil {
				log.Fatalf("cell: %v", err)
			}
		}
	}
}
