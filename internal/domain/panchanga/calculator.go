// Package panchanga composes the five Panchanga elements of an instant and
// place, and serves them to the transport layer.
package panchanga

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vastr/panchanga/internal/domain/angles"
	"github.com/vastr/panchanga/internal/domain/boundary"
	"github.com/vastr/panchanga/internal/domain/elements"
	"github.com/vastr/panchanga/internal/domain/vara"
)

// Query is one instant at one place. The place Location only decides the
// civil date used for the weekday.
type Query struct {
	Instant time.Time
	Place   vara.Place
}

// Position is an ecliptic position in degrees.
type Position struct {
	Longitude float64
	Latitude  float64
}

// Element pairs a resolved slot with its classification.
type Element[R any] struct {
	Slot   boundary.Slot
	Record R
}

// Result is the full Panchanga of a query. It is never mutated after Compute
// returns.
type Result struct {
	Instant   time.Time
	Sun       Position
	Moon      Position
	Vara      vara.Day
	Tithi     Element[elements.TithiRecord]
	Nakshatra Element[elements.NakshatraRecord]
	Yoga      Element[elements.YogaRecord]
	Karana    Element[elements.KaranaRecord]
}

// Calculator resolves the cyclic elements against a position provider and
// the weekday against a sun events provider.
type Calculator struct {
	positions angles.PositionProvider
	functions angles.Functions
	solver    *boundary.Solver
	days      *vara.Calculator
	rule      elements.KaranaRule
}

// NewCalculator wires the collaborators. An empty karana rule means classical.
func NewCalculator(cfg Config, positions angles.PositionProvider, solver *boundary.Solver, days *vara.Calculator) *Calculator {
	rule := cfg.KaranaRule
	if rule == "" {
		rule = elements.ClassicalRule
	}
	return &Calculator{
		positions: positions,
		functions: angles.NewFunctions(positions),
		solver:    solver,
		days:      days,
		rule:      rule,
	}
}

// Compute resolves every element of q. The four cyclic elements and the
// weekday run concurrently; the first failure cancels the rest.
func (c *Calculator) Compute(ctx context.Context, q Query) (Result, error) {
	instant := q.Instant.UTC()
	res := Result{Instant: instant}

	var slots [4]boundary.Slot
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range angles.Kinds {
		i, kind := i, kind
		f, err := c.functions.For(kind)
		if err != nil {
			return Result{}, err
		}
		g.Go(func() error {
			slot, err := c.solver.Resolve(gctx, f, kind.Width(), instant)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", kind, err)
			}
			slots[i] = slot
			return nil
		})
	}
	g.Go(func() error {
		day, err := c.days.Compute(gctx, instant, q.Place)
		if err != nil {
			return fmt.Errorf("resolve vara: %w", err)
		}
		res.Vara = day
		return nil
	})
	g.Go(func() error {
		var err error
		res.Sun, err = c.position(gctx, angles.Sun, instant)
		if err != nil {
			return err
		}
		res.Moon, err = c.position(gctx, angles.Moon, instant)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return c.classify(res, slots)
}

func (c *Calculator) classify(res Result, slots [4]boundary.Slot) (Result, error) {
	tithi, err := elements.TithiFor(slots[angles.Tithi].Index)
	if err != nil {
		return Result{}, err
	}
	nakshatra, err := elements.NakshatraFor(slots[angles.Nakshatra].Index)
	if err != nil {
		return Result{}, err
	}
	yoga, err := elements.YogaFor(slots[angles.Yoga].Index)
	if err != nil {
		return Result{}, err
	}
	karana, err := elements.KaranaFor(slots[angles.Karana].Index, c.rule)
	if err != nil {
		return Result{}, err
	}
	res.Tithi = Element[elements.TithiRecord]{Slot: slots[angles.Tithi], Record: tithi}
	res.Nakshatra = Element[elements.NakshatraRecord]{Slot: slots[angles.Nakshatra], Record: nakshatra}
	res.Yoga = Element[elements.YogaRecord]{Slot: slots[angles.Yoga], Record: yoga}
	res.Karana = Element[elements.KaranaRecord]{Slot: slots[angles.Karana], Record: karana}
	return res, nil
}

func (c *Calculator) position(ctx context.Context, body angles.Body, t time.Time) (Position, error) {
	lon, err := c.positions.Longitude(ctx, body, t)
	if err != nil {
		return Position{}, fmt.Errorf("%s longitude: %w", body, err)
	}
	lat, err := c.positions.Latitude(ctx, body, t)
	if err != nil {
		return Position{}, fmt.Errorf("%s latitude: %w", body, err)
	}
	return Position{Longitude: boundary.Normalize(lon), Latitude: lat}, nil
}
