package elements

// YogaRecord classifies one of the 27 Sun plus Moon yogas.
type YogaRecord struct {
	Number       int
	Name         string
	Ruler        string
	Favorability Favorability
}

// YogaCount is the number of yogas.
const YogaCount = 27

var yogaRulers = [9]string{"Saturn", "Mercury", "Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter"}

var yogaTable = [YogaCount]struct {
	name string
	fav  Favorability
}{
	{"Vishkambha", Unfavorable},
	{"Priti", Favorable},
	{"Ayushman", Favorable},
	{"Saubhagya", Favorable},
	{"Shobhana", Favorable},
	{"Atiganda", Unfavorable},
	{"Sukarma", Favorable},
	{"Dhriti", Favorable},
	{"Shula", Unfavorable},
	{"Ganda", Favorable},
	{"Vriddhi", Favorable},
	{"Dhruva", Favorable},
	{"Vyaghata", Unfavorable},
	{"Harshana", Favorable},
	{"Vajra", Favorable},
	{"Siddhi", Favorable},
	{"Vyatipata", Favorable},
	{"Variyana", Favorable},
	{"Parigha", Unfavorable},
	{"Shiva", Favorable},
	{"Siddha", Favorable},
	{"Sadhya", Favorable},
	{"Shubha", Favorable},
	{"Shukla", Favorable},
	{"Brahma", Favorable},
	{"Indra", Favorable},
	{"Vaidhriti", Unfavorable},
}

// YogaFor returns the record of a 1-based yoga slot.
func YogaFor(slot int) (YogaRecord, error) {
	if err := checkSlot("yoga", slot, YogaCount); err != nil {
		return YogaRecord{}, err
	}
	row := yogaTable[slot-1]
	return YogaRecord{
		Number:       slot,
		Name:         row.name,
		Ruler:        yogaRulers[(slot-1)%len(yogaRulers)],
		Favorability: row.fav,
	}, nil
}
