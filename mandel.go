package mandel

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Center returns the midpoint of r.
func (r Region) Center() (x, y float64) {
	return (r.Xmin + r.Xmax) / 2, (r.Ymin + r.Ymax) / 2
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Full view of the set at magnification 1
	WholeSet = Region{
		Xmin: -2,
		Xmax: 2,
		Ymin: -2,
		Ymax: 2,
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
		Xmin: 0.25,
		Xmax: 0.35,
		Ymin: -0.05,
		Ymax: 0.05,
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

// NamedRegion pairs a landmark with the name clients refer to it by.
type NamedRegion struct {
	Name   string
	Region Region
}

// Landmarks lists the predefined regions in a stable order.
var Landmarks = []NamedRegion{
	{"whole", WholeSet},
	{"seahorse", SeahorseValley},
	{"elephant", ElephantValley},
	{"spiral", SpiralMinibrot},
	{"triple", TripleSpiral},
	{"dragon", ValleyOfTheDragon},
	{"minispiral", MinibrotInMiniSpiral},
}

// Landmark looks up a predefined region by name.
func Landmark(name string) (Region, bool) {
	for _, l := range Landmarks {
		if l.Name == name {
			return l.Region, true
		}
	}
	return Region{}, false
}
