package mandel

import "runtime"

// Defaults of the canonical viewer.
const (
	DefaultWidth         = 500
	DefaultHeight        = 500
	DefaultMaxIterations = 100
	DefaultThreshold     = 2.0
	DefaultWorkers       = 10
	DefaultPanSpeed      = 10.0
)

// ZoomAnchor selects where the pivot of a zoom ends up on screen.
type ZoomAnchor int

const (
	// AnchorCursor keeps the plane point under the cursor under the cursor.
	AnchorCursor ZoomAnchor = iota
	// AnchorCenter moves the plane point under the cursor to the screen centre.
	AnchorCenter
)

func (a ZoomAnchor) String() string {
	switch a {
	case AnchorCursor:
		return "cursor"
	case AnchorCenter:
		return "center"
	default:
		return "unknown"
	}
}

// Params are the escape-time parameters shared by every pixel of a frame.
type Params struct {
	MaxIterations int
	Threshold     float64
}

// DefaultParams returns the canonical escape parameters.
func DefaultParams() Params {
	return Params{MaxIterations: DefaultMaxIterations, Threshold: DefaultThreshold}
}

// Option configures a Renderer or a Viewport. Options that do not apply to
// the value being built are ignored, so one option list can configure both.
type Option func(*config)

type config struct {
	params   Params
	workers  int
	panSpeed float64
	anchor   ZoomAnchor
}

func defaultConfig() config {
	return config{
		params:   DefaultParams(),
		workers:  DefaultWorkers,
		panSpeed: DefaultPanSpeed,
		anchor:   AnchorCursor,
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxIterations sets the iteration cap. Values <= 0 keep the default.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.params.MaxIterations = n
		}
	}
}

// WithThreshold sets the stability threshold. Values <= 0 keep the default.
func WithThreshold(t float64) Option {
	return func(c *config) {
		if t > 0 {
			c.params.Threshold = t
		}
	}
}

// WithWorkers sets how many column ranges a frame is split into.
// If n <= 0, GOMAXPROCS is used.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		c.workers = n
	}
}

// WithPanSpeed sets the held-key pan velocity in pixel units per second.
func WithPanSpeed(v float64) Option {
	return func(c *config) {
		c.panSpeed = v
	}
}

// WithZoomAnchor selects the zoom pivot policy.
func WithZoomAnchor(a ZoomAnchor) Option {
	return func(c *config) {
		c.anchor = a
	}
}
