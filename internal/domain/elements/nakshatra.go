package elements

// NakshatraRecord classifies one of the 27 lunar mansions.
type NakshatraRecord struct {
	Number       int
	Name         string
	Ruler        string
	Deity        string
	Gana         string
	Nature       string
	Favorability Favorability
}

// NakshatraCount is the number of lunar mansions.
const NakshatraCount = 27

// vimshottari is the ruling sequence, repeated three times over the mansions.
var vimshottari = [9]string{"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury"}

var nakshatraTable = [NakshatraCount]struct {
	name, deity, gana, nature string
}{
	{"Ashwini", "Ashvins", "Deva", "Kshipra"},
	{"Bharani", "Yama", "Manushya", "Ugra"},
	{"Krittika", "Agni", "Rakshasa", "Mishra"},
	{"Rohini", "Prajapati", "Manushya", "Dhruva"},
	{"Mrigashira", "Soma", "Deva", "Mridu"},
	{"Ardra", "Rudra", "Manushya", "Tikshna"},
	{"Punarvasu", "Aditi", "Deva", "Chara"},
	{"Pushya", "Brihaspati", "Deva", "Kshipra"},
	{"Ashlesha", "Sarpas", "Rakshasa", "Tikshna"},
	{"Magha", "Pitris", "Rakshasa", "Ugra"},
	{"Purva Phalguni", "Bhaga", "Manushya", "Ugra"},
	{"Uttara Phalguni", "Aryaman", "Manushya", "Dhruva"},
	{"Hasta", "Savitar", "Deva", "Kshipra"},
	{"Chitra", "Vishvakarma", "Rakshasa", "Mridu"},
	{"Swati", "Vayu", "Deva", "Chara"},
	{"Vishakha", "Indragni", "Rakshasa", "Mishra"},
	{"Anuradha", "Mitra", "Deva", "Mridu"},
	{"Jyeshtha", "Indra", "Rakshasa", "Tikshna"},
	{"Mula", "Nirriti", "Rakshasa", "Tikshna"},
	{"Purva Ashadha", "Apas", "Manushya", "Ugra"},
	{"Uttara Ashadha", "Vishvedevas", "Manushya", "Dhruva"},
	{"Shravana", "Vishnu", "Deva", "Chara"},
	{"Dhanishta", "Vasus", "Rakshasa", "Chara"},
	{"Shatabhisha", "Varuna", "Rakshasa", "Chara"},
	{"Purva Bhadrapada", "Aja Ekapada", "Manushya", "Ugra"},
	{"Uttara Bhadrapada", "Ahir Budhnya", "Manushya", "Dhruva"},
	{"Revati", "Pushan", "Deva", "Mridu"},
}

// NakshatraFor returns the record of a 1-based nakshatra slot.
func NakshatraFor(slot int) (NakshatraRecord, error) {
	if err := checkSlot("nakshatra", slot, NakshatraCount); err != nil {
		return NakshatraRecord{}, err
	}
	row := nakshatraTable[slot-1]
	return NakshatraRecord{
		Number:       slot,
		Name:         row.name,
		Ruler:        vimshottari[(slot-1)%len(vimshottari)],
		Deity:        row.deity,
		Gana:         row.gana,
		Nature:       row.nature,
		Favorability: favorableUnless(row.nature == "Ugra" || row.nature == "Tikshna"),
	}, nil
}
