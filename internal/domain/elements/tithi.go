package elements

// Paksha is the lunar fortnight.
type Paksha string

const (
	Shukla  Paksha = "Shukla"
	Krishna Paksha = "Krishna"
)

// TithiRecord classifies one of the 30 lunar days.
type TithiRecord struct {
	Number       int
	Name         string
	Paksha       Paksha
	PakshaNumber int
	Ruler        string
	Deity        string
	Group        string
	Favorability Favorability
}

// TithiCount is the number of tithis in a lunar month.
const TithiCount = 30

var tithiNames = [15]string{
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashthi", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dwadashi", "Trayodashi", "Chaturdashi", "Purnima",
}

var tithiDeities = [15]string{
	"Agni", "Brahma", "Gauri", "Ganesha", "Naga",
	"Kartikeya", "Surya", "Shiva", "Durga", "Yama",
	"Vishvedevas", "Vishnu", "Kamadeva", "Kali", "Chandra",
}

var tithiRulers = [15]string{
	"Sun", "Moon", "Mars", "Mercury", "Jupiter",
	"Venus", "Saturn", "Rahu", "Sun", "Moon",
	"Mars", "Mercury", "Jupiter", "Venus", "Saturn",
}

var tithiGroups = [5]string{"Nanda", "Bhadra", "Jaya", "Rikta", "Purna"}

var tithiTable = buildTithis()

func buildTithis() [TithiCount]TithiRecord {
	var table [TithiCount]TithiRecord
	for slot := 1; slot <= TithiCount; slot++ {
		paksha, n := Shukla, slot
		if slot > 15 {
			paksha, n = Krishna, slot-15
		}
		rec := TithiRecord{
			Number:       slot,
			Name:         tithiNames[n-1],
			Paksha:       paksha,
			PakshaNumber: n,
			Ruler:        tithiRulers[n-1],
			Deity:        tithiDeities[n-1],
			Group:        tithiGroups[(n-1)%5],
		}
		if slot == TithiCount {
			rec.Name = "Amavasya"
			rec.Ruler = "Rahu"
			rec.Deity = "Pitris"
		}
		rec.Favorability = favorableUnless(rec.Group == "Rikta" || slot == TithiCount)
		table[slot-1] = rec
	}
	return table
}

// TithiFor returns the record of a 1-based tithi slot.
func TithiFor(slot int) (TithiRecord, error) {
	if err := checkSlot("tithi", slot, TithiCount); err != nil {
		return TithiRecord{}, err
	}
	return tithiTable[slot-1], nil
}
