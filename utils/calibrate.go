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

// Servo calibration utility

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aamcrae/braille/cell"
	"github.com/aamcrae/braille/io"
	"github.com/aamcrae/config"
)

var configFile = flag.String("config", "braille.conf", "Configuration file")

// refresher generates frames continuously for the most recent
// set of angles, so the servos hold position while waiting for input.
type refresher struct {
	c      *cell.HwCell
	frame  *io.Scheduler
	update chan [cell.Dots]int
	done   chan struct{}
}

func newRefresher(c *cell.HwCell, w io.Waiter) *refresher {
	r := &refresher{c: c, frame: io.NewScheduler(w), update: make(chan [cell.Dots]int, 1), done: make(chan struct{})}
	go r.run()
	return r
}

func (r *refresher) set(a [cell.Dots]int) {
	r.update <- a
}

func (r *refresher) stop() {
	close(r.update)
	<-r.done
}

func (r *refresher) run() {
	defer close(r.done)
	ev := r.c.Events(cell.Angles(0))
	for {
		select {
		case a, ok := <-r.update:
			if !ok {
				return
			}
			ev = r.c.Events(a)
		default:
		}
		r.frame.Frame(ev)
		if err := r.c.Err(); err != nil {
			log.Fatalf("cell: %v", err)
		}
	}
}

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
	r := newRefresher(c, w)
	defer r.stop()
	rng := c.Range()
	angles := cell.Angles(0)
	reader := bufio.NewReader(os.Stdin)
	for {
		show(rng, angles)
		fmt.Print("Enter command ('help' for help) ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		f := strings.Fields(text)
		if len(f) == 0 {
			continue
		}
		switch f[0] {
		case "help":
			fmt.Println("  help - print help")
			fmt.Println("  N angle - move dot N (1-6) to angle (0-180)")
			fmt.Println("  all angle - move all dots to angle")
			fmt.Println("  l c - show letter c")
			fmt.Println("  q - quit")
		case "q":
			return
		case "all":
			var a int
			if len(f) != 2 || !scan(f[1], &a) {
				fmt.Printf("Unrecognised input\n")
				continue
			}
			for i := range angles {
				angles[i] = cell.ClampAngle(a)
			}
		case "l":
			if len(f) != 2 || len(f[1]) != 1 {
				fmt.Printf("Unrecognised input\n")
				continue
			}
			p := cell.Encode(f[1][0])
			fmt.Printf("'%s' is dots %s\n", f[1], p)
			angles = cell.Angles(p)
		default:
			var n, a int
			if len(f) != 2 || !scan(f[0], &n) || !scan(f[1], &a) || n < 1 || n > cell.Dots {
				fmt.Printf("Unrecognised input\n")
				continue
			}
			angles[n-1] = cell.ClampAngle(a)
		}
		r.set(angles)
	}
}

func scan(s string, v *int) bool {
	n, err := fmt.Sscanf(s, "%d", v)
	return err == nil && n == 1
}

func show(rng cell.Range, angles [cell.Dots]int) {
	for i, a := range angles {
		fmt.Printf("dot %d: %3d (%s)\n", i+1, a, rng.Pulse(a))
	}
}
