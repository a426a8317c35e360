// poster renders one high-resolution frame of a landmark region (or an
// explicit zoom/offset view) to a PNG file, using the same parallel band
// renderer as the interactive viewers.

package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"sort"

	mandel "github.com/marben/mandelzoom"
)

// Landmarks selectable with -view. Same table the library exports; the
// names here are the CLI spellings.
var landmarks = map[string]mandel.Region{
	"home":     mandel.Home,
	"seahorse": mandel.SeahorseValley,
	"elephant": mandel.ElephantValley,
	"minibrot": mandel.SpiralMinibrot,
	"triple":   mandel.TripleSpiral,
	"dragon":   mandel.ValleyOfTheDragon,
	"spiral":   mandel.MinibrotInMiniSpiral,
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run() error {
	width := flag.Int("width", 1920, "image width in pixels")
	height := flag.Int("height", 1080, "image height in pixels")
	iter := flag.Int("iter", 500, "max escape iterations")
	workers := flag.Int("workers", mandel.DefaultWorkers, "concurrent band workers")
	view := flag.String("view", "seahorse", "landmark to render: "+landmarkNames())
	zoom := flag.Float64("zoom", 0, "explicit zoom (pixels per unit); overrides -view together with -x and -y")
	x := flag.Float64("x", 0, "plane x of pixel (0,0) when -zoom is set")
	y := flag.Float64("y", 0, "plane y of pixel (0,0) when -zoom is set")
	out := flag.String("o", "mandel.png", "output file")
	flag.Parse()

	// Step 1: Resolve the view
	var vs mandel.ViewState
	if *zoom > 0 {
		vs = mandel.ViewState{Zoom: *zoom, OffsetX: *x, OffsetY: *y}
	} else {
		region, ok := landmarks[*view]
		if !ok {
			return fmt.Errorf("unknown view %q, try one of: %s", *view, landmarkNames())
		}
		vs = region.View(uint32(*width))
	}

	// Step 2: Render the frame across all band workers
	log.Printf("Rendering %dx%d at zoom %g with %d workers...", *width, *height, vs.Zoom, *workers)
	img := mandel.RenderImage(mandel.RenderRequest{
		Width:   uint32(*width),
		Height:  uint32(*height),
		MaxIter: uint32(*iter),
		View:    vs,
	}, *workers)

	// Step 3: Save the rendered image to a PNG file
	log.Printf("Saving rendered image to %q...", *out)
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	log.Printf("Rendered image saved to %q", *out)
	return nil
}

func landmarkNames() string {
	names := make([]string, 0, len(landmarks))
	for name := range landmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	s := ""
	for i, n := range names {
		if i > 0 {
			s += ", "
		}
		s += n
	}
	return s
}
