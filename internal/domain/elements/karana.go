package elements

import (
	"fmt"
	"strings"
)

// KaranaClass separates the cycling karanas from the month-anchored ones.
type KaranaClass string

const (
	Movable KaranaClass = "Movable"
	Fixed   KaranaClass = "Fixed"
)

// KaranaRecord classifies one of the 11 named karanas. Half is the half-tithi
// index (1..60) the record was resolved from.
type KaranaRecord struct {
	Number       int
	Name         string
	Class        KaranaClass
	Deity        string
	Favorability Favorability
	Half         int
}

// Karana numbers. The seven movable karanas come first.
const (
	Bava = iota + 1
	Balava
	Kaulava
	Taitila
	Gara
	Vanija
	Vishti
	Shakuni
	Chatushpada
	Naga
	Kimstughna
)

// KaranaHalves is the number of half-tithis in a lunar month.
const KaranaHalves = 60

var karanaTable = [11]struct {
	name  string
	deity string
	fav   Favorability
}{
	{"Bava", "Indra", Favorable},
	{"Balava", "Brahma", Favorable},
	{"Kaulava", "Mitra", Favorable},
	{"Taitila", "Aryaman", Favorable},
	{"Gara", "Bhumi", Favorable},
	{"Vanija", "Lakshmi", Favorable},
	{"Vishti", "Yama", Unfavorable},
	{"Shakuni", "Kali", Unfavorable},
	{"Chatushpada", "Rudra", Unfavorable},
	{"Naga", "Sarpa", Unfavorable},
	{"Kimstughna", "Vayu", Favorable},
}

// KaranaRule maps a half-tithi index to a karana number.
type KaranaRule string

const (
	// ClassicalRule: half 1 is Kimstughna, halves 2..57 cycle the movable
	// karanas, halves 58, 59, 60 are Shakuni, Chatushpada, Naga.
	ClassicalRule KaranaRule = "classical"
	// LegacyRule anchors the fixed karanas on tithis 14/29, 30 and 15.
	LegacyRule KaranaRule = "legacy"
)

// ParseKaranaRule accepts "classical" (also the empty string) or "legacy".
func ParseKaranaRule(value string) (KaranaRule, error) {
	switch KaranaRule(strings.ToLower(strings.TrimSpace(value))) {
	case "", ClassicalRule:
		return ClassicalRule, nil
	case LegacyRule:
		return LegacyRule, nil
	default:
		return "", fmt.Errorf("unknown karana rule %q", value)
	}
}

// Number returns the karana number (1..11) of a half-tithi index.
func (r KaranaRule) Number(half int) (int, error) {
	if err := checkSlot("karana half", half, KaranaHalves); err != nil {
		return 0, err
	}
	if r == LegacyRule {
		return legacyKarana(half), nil
	}
	return classicalKarana(half), nil
}

func classicalKarana(half int) int {
	switch half {
	case 1:
		return Kimstughna
	case 58:
		return Shakuni
	case 59:
		return Chatushpada
	case 60:
		return Naga
	default:
		return (half-2)%7 + 1
	}
}

func legacyKarana(half int) int {
	tithi := (half + 1) / 2
	first := half%2 == 1
	switch {
	case tithi == 14 || tithi == 29:
		if first {
			return Vanija
		}
		return Shakuni
	case tithi == 30:
		if first {
			return Chatushpada
		}
		return Naga
	case tithi == 15:
		if first {
			return Kimstughna
		}
		return Bava
	default:
		return (half-1)%7 + 1
	}
}

// KaranaFor returns the record of a half-tithi index under rule.
func KaranaFor(half int, rule KaranaRule) (KaranaRecord, error) {
	number, err := rule.Number(half)
	if err != nil {
		return KaranaRecord{}, err
	}
	row := karanaTable[number-1]
	class := Movable
	if number > Vishti {
		class = Fixed
	}
	return KaranaRecord{
		Number:       number,
		Name:         row.name,
		Class:        class,
		Deity:        row.deity,
		Favorability: row.fav,
		Half:         half,
	}, nil
}
