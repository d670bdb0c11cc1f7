package panchanga

import (
	"time"

	"github.com/vastr/panchanga/internal/domain/elements"
)

// Request captures the payload accepted by the Panchanga service.
type Request struct {
	// Datetime is RFC3339, a naive local "2006-01-02T15:04[:05]", or empty for now.
	Datetime  string   `json:"datetime"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Elevation *float64 `json:"elevation,omitempty"`
	Timezone  string   `json:"timezone,omitempty"`
}

// Response is serialized back to API consumers.
type Response struct {
	Datetime  string        `json:"datetime"`
	Timezone  string        `json:"timezone"`
	Location  LocationInfo  `json:"location"`
	Sun       BodyInfo      `json:"sun"`
	Moon      BodyInfo      `json:"moon"`
	Times     Times         `json:"times"`
	Vara      VaraInfo      `json:"vara"`
	Tithi     TithiInfo     `json:"tithi"`
	Nakshatra NakshatraInfo `json:"nakshatra"`
	Yoga      YogaInfo      `json:"yoga"`
	Karana    KaranaInfo    `json:"karana"`
}

type LocationInfo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}

type BodyInfo struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Times are local to the response timezone.
type Times struct {
	Sunrise     string `json:"sunrise"`
	Sunset      string `json:"sunset"`
	NextSunrise string `json:"nextSunrise"`
}

type VaraInfo struct {
	Number       int                   `json:"number"`
	Name         string                `json:"name"`
	Sanskrit     string                `json:"sanskrit"`
	Ruler        string                `json:"ruler"`
	Favorability elements.Favorability `json:"favorability"`
	Date         string                `json:"date"`
}

// Span is the [start, end) interval of a cyclic element.
type Span struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type TithiInfo struct {
	Number       int                   `json:"number"`
	Name         string                `json:"name"`
	Paksha       elements.Paksha       `json:"paksha"`
	PakshaNumber int                   `json:"pakshaNumber"`
	Ruler        string                `json:"ruler"`
	Deity        string                `json:"deity"`
	Group        string                `json:"group"`
	Favorability elements.Favorability `json:"favorability"`
	Span
}

type NakshatraInfo struct {
	Number       int                   `json:"number"`
	Name         string                `json:"name"`
	Ruler        string                `json:"ruler"`
	Deity        string                `json:"deity"`
	Gana         string                `json:"gana"`
	Nature       string                `json:"nature"`
	Favorability elements.Favorability `json:"favorability"`
	Span
}

type YogaInfo struct {
	Number       int                   `json:"number"`
	Name         string                `json:"name"`
	Ruler        string                `json:"ruler"`
	Favorability elements.Favorability `json:"favorability"`
	Span
}

type KaranaInfo struct {
	Number       int                   `json:"number"`
	Name         string                `json:"name"`
	Class        elements.KaranaClass  `json:"class"`
	Deity        string                `json:"deity"`
	Favorability elements.Favorability `json:"favorability"`
	Half         int                   `json:"half"`
	Span
}

// HistoryEntry is a compact record of one served computation.
type HistoryEntry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Instant   time.Time `json:"instant"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Elevation float64   `json:"elevation"`
	Timezone  string    `json:"timezone"`
	Vara      string    `json:"vara"`
	Tithi     string    `json:"tithi"`
	Nakshatra string    `json:"nakshatra"`
	Yoga      string    `json:"yoga"`
	Karana    string    `json:"karana"`
}

// Config wires runtime options for the Panchanga domain.
type Config struct {
	KaranaRule elements.KaranaRule
	// HistoryLimit is the default page size of History; requests above
	// MaxHistoryLimit are clamped.
	HistoryLimit int
}

const (
	defaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)
