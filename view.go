package mandel

// Region is an axis-aligned rectangle in the complex plane.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// View converts the region to the zoom/offset form used by render
// requests, scaled so the region's width spans a canvas of the given
// pixel width.
func (r Region) View(width uint32) ViewState {
	return ViewState{
		Zoom:    float64(width) / (r.Xmax - r.Xmin),
		OffsetX: r.Xmin,
		OffsetY: r.Ymin,
	}
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Home – the whole set, the usual starting view
	Home = Region{
		Xmin: -2.5,
		Xmax: 1.0,
		Ymin: -1.25,
		Ymax: 1.25,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)
