package mandel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// scenarioView is the reference viewport from the render scenario used
// throughout the tests: pixel (0,0) maps to c = -2-1i.
var scenarioView = ViewState{Zoom: 200, OffsetX: -2.0, OffsetY: -1.0}

func TestEscapeCountEarlyExit(t *testing.T) {
	cases := []struct {
		name     string
		cre, cim float64
	}{
		{"cardioid center", -0.5, 0},
		{"cardioid origin", 0, 0},
		{"cardioid cusp", 0.25, 0},
		{"cardioid off axis", -0.1, 0.3},
		{"bulb center", -1, 0},
		{"bulb off center", -1.05, 0.1},
		{"bulb near edge", -1.2, 0.1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, maxIter := range []uint32{1, 100, 5000} {
				if got := EscapeCount(tc.cre, tc.cim, maxIter); got != maxIter {
					t.Errorf("EscapeCount(%g, %g, %d) = %d, want %d",
						tc.cre, tc.cim, maxIter, got, maxIter)
				}
			}
			if c := PixelColor(EscapeCount(tc.cre, tc.cim, 100), 100); c != [4]byte{0, 0, 0, 255} {
				t.Errorf("interior color = %v, want opaque black", c)
			}
		})
	}
}

func TestEscapeCountBound(t *testing.T) {
	for _, maxIter := range []uint32{0, 1, 50, 1000, 5000} {
		limit := maxIter
		if limit > IterCap {
			limit = IterCap
		}
		for cre := -2.5; cre <= 1.0; cre += 0.31 {
			for cim := -1.2; cim <= 1.2; cim += 0.37 {
				n := EscapeCount(cre, cim, maxIter)
				if n > maxIter {
					t.Fatalf("EscapeCount(%g, %g, %d) = %d exceeds maxIter", cre, cim, maxIter, n)
				}
				if n != maxIter && n > limit {
					t.Fatalf("EscapeCount(%g, %g, %d) = %d exceeds cap %d", cre, cim, maxIter, n, limit)
				}
			}
		}
	}
}

// The point -0.125+0.744i sits deep in a period-3 bulb: inside the set but
// caught by neither early-exit test, so the iteration ceiling is the only
// thing that stops it.
func TestEscapeCountHardCap(t *testing.T) {
	if got := EscapeCount(-0.125, 0.744, 5000); got != IterCap {
		t.Errorf("EscapeCount = %d, want the %d cap", got, IterCap)
	}
	// At maxIter below the cap, the request limit wins.
	if got := EscapeCount(-0.125, 0.744, 300); got != 300 {
		t.Errorf("EscapeCount = %d, want 300", got)
	}
}

func TestRenderScenarioCorners(t *testing.T) {
	const width, maxIter = 800, 100

	// Pixel (0,0) maps to c = -2-1i, far outside the set: it must escape
	// almost immediately and carry the low-count color, not black.
	n := EscapeCount(-2.0, -1.0, maxIter)
	if n == 0 || n >= maxIter {
		t.Fatalf("corner escape count = %d, want small positive", n)
	}
	row := RenderBand(width, Band{Start: 0, End: 1}, scenarioView, maxIter)
	want := [4]byte{clamp8(2 * n), clamp8(5 * n), clamp8(3 * n), 255}
	if got := [4]byte(row[0:4]); got != want {
		t.Errorf("pixel (0,0) = %v, want %v", got, want)
	}

	// Pixel (200,200) maps to c = -1+0i, inside the period-2 bulb.
	row = RenderBand(width, Band{Start: 200, End: 201}, scenarioView, maxIter)
	if got := [4]byte(row[200*4 : 200*4+4]); got != [4]byte{0, 0, 0, 255} {
		t.Errorf("pixel (200,200) = %v, want opaque black", got)
	}
}

func TestRenderBandMatchesPixelEvaluation(t *testing.T) {
	const width, maxIter = 64, 120
	band := Band{Start: 10, End: 26}
	view := SeahorseValley.View(width)

	buf := RenderBand(width, band, view, maxIter)
	if len(buf) != int(width*band.Rows()*4) {
		t.Fatalf("buffer length %d, want %d", len(buf), width*band.Rows()*4)
	}

	for y := band.Start; y < band.End; y++ {
		for x := uint32(0); x < width; x++ {
			cre := float64(x)/view.Zoom + view.OffsetX
			cim := float64(y)/view.Zoom + view.OffsetY
			want := PixelColor(EscapeCount(cre, cim, maxIter), maxIter)

			o := ((y-band.Start)*width + x) * 4
			if got := [4]byte(buf[o : o+4]); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderBandEmpty(t *testing.T) {
	buf := RenderBand(800, Band{Start: 5, End: 5}, scenarioView, 100)
	if len(buf) != 0 {
		t.Errorf("zero-height band produced %d bytes, want 0", len(buf))
	}
}

func TestRenderBandDeterministic(t *testing.T) {
	band := Band{Start: 0, End: 32}
	view := TripleSpiral.View(48)

	a := RenderBand(48, band, view, 250)
	b := RenderBand(48, band, view, 250)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeated render differs (-first +second):\n%s", diff)
	}
}

func TestPixelColorClamps(t *testing.T) {
	// 5*n passes 255 first, then 3*n, then 2*n; alpha is always opaque.
	cases := []struct {
		n, maxIter uint32
		want       [4]byte
	}{
		{0, 100, [4]byte{0, 0, 0, 255}},
		{1, 100, [4]byte{2, 5, 3, 255}},
		{60, 100, [4]byte{120, 255, 180, 255}},
		{99, 100, [4]byte{198, 255, 255, 255}},
		{500, 1000, [4]byte{255, 255, 255, 255}},
		{100, 100, [4]byte{0, 0, 0, 255}}, // at maxIter: interior
	}
	for _, tc := range cases {
		if got := PixelColor(tc.n, tc.maxIter); got != tc.want {
			t.Errorf("PixelColor(%d, %d) = %v, want %v", tc.n, tc.maxIter, got, tc.want)
		}
	}
}
