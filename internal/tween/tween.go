// Package tween provides a small callback-driven animation primitive. An
// Animation interpolates between two values over a fixed duration and is
// advanced by an external clock, so callers decide when frames happen.
package tween

import (
	"math"
	"time"
)

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// Linear returns progress unchanged.
func Linear(t float64) float64 { return t }

// EaseIn starts slow and accelerates.
func EaseIn(t float64) float64 { return t * t }

// EaseInOutCubic starts and ends slow with a fast middle.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	p := 2*t - 2
	return 1 + p*p*p/2
}

// FastOutSlowIn is the cubic bezier (0.4, 0, 0.2, 1), the standard material
// curve for elements entering the screen.
func FastOutSlowIn(t float64) float64 {
	return cubicBezier(0.4, 0, 0.2, 1, t)
}

// cubicBezier evaluates the curve defined by control points (x1, y1) and
// (x2, y2) at horizontal position t, solving for the curve parameter by
// bisection.
func cubicBezier(x1, y1, x2, y2, t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	sample := func(a, b, s float64) float64 {
		// Cubic bezier with endpoints pinned at 0 and 1.
		return 3*a*s*(1-s)*(1-s) + 3*b*s*s*(1-s) + s*s*s
	}
	lo, hi := 0.0, 1.0
	s := t
	for i := 0; i < 32; i++ {
		x := sample(x1, x2, s)
		if math.Abs(x-t) < 1e-7 {
			break
		}
		if x < t {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return sample(y1, y2, s)
}

// Animation interpolates a float64 value from From to To over Duration,
// reporting each frame through OnTick. It does nothing until Tick is called.
type Animation struct {
	From     float64
	To       float64
	Duration time.Duration
	Easing   Easing

	// OnTick receives the interpolated value each frame, including the
	// final frame at To.
	OnTick func(value float64)
	// OnEnd fires once when the animation reaches its duration.
	OnEnd func()
	// OnCancel fires when Stop is called before the animation ends.
	OnCancel func()

	started bool
	done    bool
	start   time.Time
}

// New returns an animation from one value to another. A nil easing means
// linear.
func New(from, to float64, d time.Duration, easing Easing) *Animation {
	return &Animation{From: from, To: to, Duration: d, Easing: easing}
}

// Tick advances the animation to the given time. The first call starts the
// clock. It reports whether the animation is still running; once it reports
// false the caller should discard it.
func (a *Animation) Tick(now time.Time) bool {
	if a.done {
		return false
	}
	if !a.started {
		a.started = true
		a.start = now
	}

	progress := 1.0
	if a.Duration > 0 {
		progress = float64(now.Sub(a.start)) / float64(a.Duration)
	}
	if progress >= 1 {
		a.done = true
		if a.OnTick != nil {
			a.OnTick(a.To)
		}
		if a.OnEnd != nil {
			a.OnEnd()
		}
		return false
	}

	if a.OnTick != nil {
		eased := progress
		if a.Easing != nil {
			eased = a.Easing(progress)
		}
		a.OnTick(a.From + (a.To-a.From)*eased)
	}
	return true
}

// Stop cancels a running animation without jumping to the target value.
func (a *Animation) Stop() {
	if a == nil || a.done {
		return
	}
	a.done = true
	if a.OnCancel != nil {
		a.OnCancel()
	}
}

// Target returns the value the animation is heading toward.
func (a *Animation) Target() float64 { return a.To }

// IsAnimating reports whether the animation has not yet finished or been
// stopped.
func (a *Animation) IsAnimating() bool { return a != nil && !a.done }
