package pipeline

import (
	"time"

	"github.com/inhies/go-bytesize"
)

// Progress is one progress report from a running pipeline.
type Progress struct {
	// Games is the number of games pulled from the source so far.
	Games int64
	// BytesRead and Total are measured in source-file bytes, so the
	// ratio is meaningful for compressed inputs too.
	BytesRead bytesize.ByteSize
	Total     bytesize.ByteSize
}

// Percent returns the completed fraction as 0-100, clamped. It returns
// 0 when the total is unknown.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	pct := 100 * float64(p.BytesRead) / float64(p.Total)
	if pct > 100 {
		return 100
	}
	return pct
}

// Observer receives progress reports. Reports are advisory; a run is
// correct without any observer.
type Observer func(Progress)

// Throttle bounds the progress report rate. The clock is consulted only
// every Stride games, and a report goes out only when Interval has
// passed since the previous one. The zero value takes defaults.
type Throttle struct {
	Interval time.Duration
	Stride   int64
}

// DefaultThrottle is the report rate used when a config leaves the
// throttle zero.
var DefaultThrottle = Throttle{Interval: time.Second, Stride: 100}

func (t Throttle) withDefaults() Throttle {
	if t.Interval <= 0 {
		t.Interval = DefaultThrottle.Interval
	}
	if t.Stride <= 0 {
		t.Stride = DefaultThrottle.Stride
	}
	return t
}

// gate is the per-invocation throttle state. It is owned by one Run
// call and never shared.
type gate struct {
	throttle Throttle
	last     time.Time
}

func newGate(t Throttle) *gate {
	return &gate{throttle: t.withDefaults(), last: time.Now()}
}

// ready reports whether a progress report should go out for game n.
func (g *gate) ready(n int64) bool {
	if n%g.throttle.Stride != 0 {
		return false
	}
	now := time.Now()
	if now.Sub(g.last) < g.throttle.Interval {
		return false
	}
	g.last = now
	return true
}
