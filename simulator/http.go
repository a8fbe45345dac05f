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

// HTTP server for the simulated cell
package main

import (
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"net/http"

	"github.com/aamcrae/braille/cell"
	"github.com/aamcrae/braille/control"
	"github.com/fogleman/gg"
)

var port = flag.Int("port", 8080, "Web server port number")
var refresh = flag.Int("refresh", 1, "Page refresh rate in seconds")

const (
	imgWidth  = 240
	imgHeight = 360
	dotRadius = 40
	raised    = cell.Up / 2 // Servos past this angle are shown as raised
)

const page = `<html><head><meta http-equiv="refresh" content="%d"></head>
<body><img src="/cell.jpg"><br>
<form method="post" action="/commit"><input type="submit" value="Commit"></form>
<form method="post" action="/clear"><input type="submit" value="Clear"></form>
</body></html>
`

// CellServer serves an image of the cell, and the commit and clear buttons.
func CellServer(sc *simCell, p *simPanel) {
	http.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, page, *refresh)
	}))
	http.Handle("/cell.jpg", http.HandlerFunc(handler(sc)))
	http.Handle("/commit", http.HandlerFunc(button(p, control.Commit)))
	http.Handle("/clear", http.HandlerFunc(button(p, control.Clear)))
	url := fmt.Sprintf(":%d", *port)
	log.Printf("Starting server on %s", url)
	server := &http.Server{Addr: url}
	log.Fatal(server.ListenAndServe())
}

func button(p *simPanel, b uint32) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		p.press(b)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func handler(sc *simCell) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		err := jpeg.Encode(w, drawCell(sc.Angles()), nil)
		if err != nil {
			log.Printf("Error writing image: %v\n", err)
			w.WriteHeader(http.StatusInternalServerError)
		}
	}
}

// drawCell draws the dots in the standard layout, dots 1-3 down the left
// and 4-6 down the right. Raised dots are filled.
func drawCell(angles [cell.Dots]int) image.Image {
	c := gg.NewContext(imgWidth, imgHeight)
	c.SetRGB(1, 1, 1)
	c.Clear()
	c.SetLineWidth(4)
	for i, a := range angles {
		x := float64(imgWidth/4 + (i/3)*imgWidth/2)
		y := float64(imgHeight/6 + (i%3)*imgHeight/3)
		c.DrawCircle(x, y, dotRadius)
		if a >= raised {
			c.SetRGB(0, 0, 0)
			c.Fill()
		} else {
			c.SetRGB(0.6, 0.6, 0.6)
			c.Stroke()
		}
		c.SetRGB(0.8, 0, 0)
		c.DrawStringAnchored(fmt.Sprintf("%d", a), x, y+dotRadius+14, 0.5, 0.5)
	}
	return c.Image()
}
