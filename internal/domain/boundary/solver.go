// Package boundary resolves which fixed-width slot a periodic angle occupies
// at an instant, and when that slot starts and ends.
//
// The angle is treated as a black box sampled through an AngleFunc. It must
// increase (modulo 360) and be continuous over the search window; crossings
// of the slot edges are then located by bisection.
package boundary

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// AngleFunc samples a periodic angle, in degrees, at an instant.
type AngleFunc func(ctx context.Context, t time.Time) (float64, error)

var (
	// ErrDivergence reports a search that could not bracket or pin down a
	// boundary. It signals a malformed angle function or a too narrow window.
	ErrDivergence = errors.New("boundary search did not converge")
	// ErrInvalidWidth reports a slot width that does not tile the circle.
	ErrInvalidWidth = errors.New("slot width must divide 360 into whole slots")
	// ErrNonFinite reports a NaN or infinite angle sample.
	ErrNonFinite = errors.New("angle sample is not finite")
)

// tieEpsilon is expressed in slot units. An angle this close below an edge
// is assigned to the slot it is entering.
const tieEpsilon = 1e-9

// Config bounds the bisection.
type Config struct {
	// Window is the initial bracket on each side of the reference instant.
	Window time.Duration
	// Precision stops the search once the bracket is this narrow.
	Precision time.Duration
	// AngleTolerance stops the search once the sampled error is this small.
	AngleTolerance float64
	// VerifyTolerance is the largest error accepted at the converged instant.
	VerifyTolerance float64
	// MaxIterations caps bisection steps per boundary.
	MaxIterations int
	// MaxExpansions caps how often the bracket may double. Negative
	// disables expansion.
	MaxExpansions int
}

// DefaultConfig suits angles that advance between roughly 5 and 30 degrees
// per day, which covers every Sun/Moon combination in use.
func DefaultConfig() Config {
	return Config{
		Window:          48 * time.Hour,
		Precision:       time.Millisecond,
		AngleTolerance:  1e-7,
		VerifyTolerance: 1e-3,
		MaxIterations:   64,
		MaxExpansions:   3,
	}
}

// Slot is one resolved slot, half-open over [Start, End).
type Slot struct {
	// Index is 1-based.
	Index int
	// Count is the number of slots in the circle.
	Count int
	// Angle is the normalised angle sampled at the reference instant.
	Angle float64
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the slot.
func (s Slot) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}

// Duration is the length of the slot.
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Solver locates slot boundaries. It holds no per-call state and is safe for
// concurrent use.
type Solver struct {
	cfg Config
}

// NewSolver builds a solver, filling unset fields from DefaultConfig.
func NewSolver(cfg Config) *Solver {
	def := DefaultConfig()
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.Precision <= 0 {
		cfg.Precision = def.Precision
	}
	if cfg.AngleTolerance <= 0 {
		cfg.AngleTolerance = def.AngleTolerance
	}
	if cfg.VerifyTolerance <= 0 {
		cfg.VerifyTolerance = def.VerifyTolerance
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = def.MaxIterations
	}
	switch {
	case cfg.MaxExpansions == 0:
		cfg.MaxExpansions = def.MaxExpansions
	case cfg.MaxExpansions < 0:
		cfg.MaxExpansions = 0
	}
	return &Solver{cfg: cfg}
}

// Config returns the effective configuration.
func (s *Solver) Config() Config {
	return s.cfg
}

// Resolve returns the slot of width degrees that f occupies at t0.
func (s *Solver) Resolve(ctx context.Context, f AngleFunc, width float64, t0 time.Time) (Slot, error) {
	count, err := SlotCount(width)
	if err != nil {
		return Slot{}, err
	}
	t0 = t0.UTC()

	angle0, err := sample(ctx, f, t0)
	if err != nil {
		return Slot{}, err
	}
	n := int(math.Floor(angle0/width+tieEpsilon)) % count
	lower := float64(n) * width
	upper := float64(n+1) * width

	start, err := s.searchBackward(ctx, f, lower, t0, Wrap180(angle0-lower))
	if err != nil {
		return Slot{}, fmt.Errorf("start of slot %d: %w", n+1, err)
	}
	end, err := s.searchForward(ctx, f, upper, t0)
	if err != nil {
		return Slot{}, fmt.Errorf("end of slot %d: %w", n+1, err)
	}

	return Slot{
		Index: n + 1,
		Count: count,
		Angle: angle0,
		Start: start,
		End:   end,
	}, nil
}

// searchForward finds the first crossing of target after t0.
func (s *Solver) searchForward(ctx context.Context, f AngleFunc, target float64, t0 time.Time) (time.Time, error) {
	lo, hi := t0, t0.Add(s.cfg.Window)
	gHi, err := offset(ctx, f, target, hi)
	if err != nil {
		return time.Time{}, err
	}
	for k := 1; gHi < 0; k++ {
		if k > s.cfg.MaxExpansions {
			return time.Time{}, fmt.Errorf("%w: angle %.6f not reached within %s after %s",
				ErrDivergence, target, hi.Sub(t0), t0.Format(time.RFC3339))
		}
		lo = hi
		hi = t0.Add(s.cfg.Window << k)
		if gHi, err = offset(ctx, f, target, hi); err != nil {
			return time.Time{}, err
		}
	}
	return s.bisect(ctx, f, target, lo, hi, gHi)
}

// searchBackward finds the last crossing of target at or before t0, where
// the signed error at t0 is g0 (non-negative up to the tie tolerance).
func (s *Solver) searchBackward(ctx context.Context, f AngleFunc, target float64, t0 time.Time, g0 float64) (time.Time, error) {
	lo, hi, gHi := t0.Add(-s.cfg.Window), t0, g0
	gLo, err := offset(ctx, f, target, lo)
	if err != nil {
		return time.Time{}, err
	}
	for k := 1; gLo >= 0; k++ {
		if k > s.cfg.MaxExpansions {
			return time.Time{}, fmt.Errorf("%w: angle %.6f not found within %s before %s",
				ErrDivergence, target, t0.Sub(lo), t0.Format(time.RFC3339))
		}
		hi, gHi = lo, gLo
		lo = t0.Add(-(s.cfg.Window << k))
		if gLo, err = offset(ctx, f, target, lo); err != nil {
			return time.Time{}, err
		}
	}
	return s.bisect(ctx, f, target, lo, hi, gHi)
}

// bisect narrows [lo, hi] around the crossing, keeping g(lo) < 0 <= g(hi),
// and returns hi: the first sampled instant past the edge.
func (s *Solver) bisect(ctx context.Context, f AngleFunc, target float64, lo, hi time.Time, gHi float64) (time.Time, error) {
	for i := 0; i < s.cfg.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return time.Time{}, err
		}
		if hi.Sub(lo) <= s.cfg.Precision || (gHi >= 0 && gHi <= s.cfg.AngleTolerance) {
			return s.verify(target, hi, gHi)
		}
		mid := lo.Add(hi.Sub(lo) / 2)
		g, err := offset(ctx, f, target, mid)
		if err != nil {
			return time.Time{}, err
		}
		if g >= 0 {
			hi, gHi = mid, g
		} else {
			lo = mid
		}
	}
	return time.Time{}, fmt.Errorf("%w: angle %.6f unresolved after %d iterations (bracket %s)",
		ErrDivergence, target, s.cfg.MaxIterations, hi.Sub(lo))
}

func (s *Solver) verify(target float64, at time.Time, g float64) (time.Time, error) {
	if math.Abs(g) > s.cfg.VerifyTolerance {
		return time.Time{}, fmt.Errorf("%w: angle jumps across %.6f at %s (error %.6f)",
			ErrDivergence, target, at.Format(time.RFC3339Nano), g)
	}
	return at, nil
}

func offset(ctx context.Context, f AngleFunc, target float64, t time.Time) (float64, error) {
	v, err := sample(ctx, f, t)
	if err != nil {
		return 0, err
	}
	return Wrap180(v - target), nil
}

func sample(ctx context.Context, f AngleFunc, t time.Time) (float64, error) {
	v, err := f(ctx, t)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v at %s", ErrNonFinite, v, t.Format(time.RFC3339Nano))
	}
	return Normalize(v), nil
}

// SlotCount returns how many slots of width degrees tile the circle.
func SlotCount(width float64) (int, error) {
	if !(width > 0) || width > 360 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidWidth, width)
	}
	count := 360 / width
	rounded := math.Round(count)
	if math.Abs(count-rounded) > 1e-9 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidWidth, width)
	}
	return int(rounded), nil
}

// Normalize wraps an angle into [0, 360).
func Normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Wrap180 wraps an angle difference into [-180, 180).
func Wrap180(deg float64) float64 {
	return Normalize(deg+180) - 180
}
