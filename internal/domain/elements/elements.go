// Package elements holds the static classification tables of the cyclic
// Panchanga elements. Tables are built at init and never mutated, so lookups
// are safe from any goroutine.
package elements

import (
	"errors"
	"fmt"
)

// Favorability grades an element for undertaking new work.
type Favorability string

const (
	Favorable   Favorability = "Favorable"
	Unfavorable Favorability = "Unfavorable"
	Neutral     Favorability = "Neutral"
)

// ErrUnknownSlot reports a slot index outside a table.
var ErrUnknownSlot = errors.New("slot index out of range")

func checkSlot(kind string, slot, count int) error {
	if slot < 1 || slot > count {
		return fmt.Errorf("%w: %s %d not in 1..%d", ErrUnknownSlot, kind, slot, count)
	}
	return nil
}

func favorableUnless(bad bool) Favorability {
	if bad {
		return Unfavorable
	}
	return Favorable
}
