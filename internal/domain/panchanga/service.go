package panchanga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"

	"github.com/vastr/panchanga/internal/domain/boundary"
	"github.com/vastr/panchanga/internal/domain/elements"
	"github.com/vastr/panchanga/internal/domain/vara"
	apperrors "github.com/vastr/panchanga/pkg/errors"
	"github.com/vastr/panchanga/pkg/util"
)

// Service exposes Panchanga computation to transports.
type Service interface {
	Compute(ctx context.Context, req Request) (Response, error)
	History(ctx context.Context, limit int) ([]HistoryEntry, error)
}

const (
	minElevation = -500.0
	maxElevation = 9000.0
)

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

type service struct {
	cfg        Config
	calc       *Calculator
	zones      TimezoneProvider
	elevations ElevationProvider
	history    HistoryRepository
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

// NewService wires up the Panchanga domain. elevations may be nil, in which
// case requests without an elevation are computed at sea level.
func NewService(cfg Config, calc *Calculator, zones TimezoneProvider, elevations ElevationProvider, history HistoryRepository, logger *slog.Logger) Service {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaultHistoryLimit
	}
	return &service{
		cfg:        cfg,
		calc:       calc,
		zones:      zones,
		elevations: elevations,
		history:    history,
		logger:     logger.With("component", "panchanga.service"),
		now:        util.NowUTC,
		newID:      uuid.NewString,
	}
}

func (s *service) Compute(ctx context.Context, req Request) (Response, error) {
	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return Response{}, err
	}
	if req.Elevation != nil {
		if e := *req.Elevation; math.IsNaN(e) || e < minElevation || e > maxElevation {
			return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput,
				fmt.Sprintf("elevation must be between %.0f and %.0f metres", minElevation, maxElevation), nil)
		}
	}

	instant, loc, zoneName, err := s.resolveInstant(ctx, req)
	if err != nil {
		return Response{}, err
	}
	elevation := s.resolveElevation(ctx, req)

	res, err := s.calc.Compute(ctx, Query{
		Instant: instant,
		Place: vara.Place{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Elevation: elevation,
			Location:  loc,
		},
	})
	if err != nil {
		appErr := classifyError(err)
		if apperrors.IsCode(appErr, apperrors.CodeSolverDivergence) {
			s.logger.Error("panchanga solver failed", "instant", instant, "lat", req.Latitude, "lon", req.Longitude, "error", err)
		} else {
			s.logger.Warn("panchanga computation failed", "instant", instant, "error", err)
		}
		return Response{}, appErr
	}

	resp := toResponse(res, loc, zoneName, req, elevation)
	s.record(ctx, res, req, elevation, zoneName)
	s.logger.Info("panchanga computed",
		"instant", instant,
		"timezone", zoneName,
		"tithi", res.Tithi.Record.Number,
		"nakshatra", res.Nakshatra.Record.Number,
	)
	return resp, nil
}

func (s *service) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = s.cfg.HistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	entries, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeProviderFailure, "history lookup failed", err)
	}
	return entries, nil
}

func validateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "latitude must be between -90 and 90", nil)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "longitude must be between -180 and 180", nil)
	}
	return nil
}

// resolveInstant parses the datetime and picks the zone used for the civil
// date and for local display.
func (s *service) resolveInstant(ctx context.Context, req Request) (time.Time, *time.Location, string, error) {
	var explicit *time.Location
	if name := strings.TrimSpace(req.Timezone); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return time.Time{}, nil, "", apperrors.Wrap(apperrors.CodeInvalidInput, "unknown timezone "+name, err)
		}
		explicit = loc
	}

	raw := strings.TrimSpace(req.Datetime)
	if raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			if explicit != nil {
				return t.UTC(), explicit, explicit.String(), nil
			}
			return t.UTC(), t.Location(), offsetName(t), nil
		}
	}

	loc, name := explicit, ""
	if loc != nil {
		name = loc.String()
	} else {
		var err error
		if loc, name, err = s.lookupZone(ctx, req.Latitude, req.Longitude); err != nil {
			return time.Time{}, nil, "", err
		}
	}
	if raw == "" {
		return s.now().UTC(), loc, name, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.UTC(), loc, name, nil
		}
	}
	return time.Time{}, nil, "", apperrors.Wrap(apperrors.CodeInvalidInput,
		"datetime must be RFC3339 or YYYY-MM-DDTHH:MM[:SS]", nil)
}

func (s *service) lookupZone(ctx context.Context, lat, lon float64) (*time.Location, string, error) {
	name, err := s.zones.TimezoneFor(ctx, lat, lon)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.CodeProviderFailure, "timezone lookup failed", err)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.CodeProviderFailure, "timezone "+name+" not available", err)
	}
	return loc, name, nil
}

func offsetName(t time.Time) string {
	if _, off := t.Zone(); off == 0 {
		return "UTC"
	}
	return t.Format("-07:00")
}

func (s *service) resolveElevation(ctx context.Context, req Request) float64 {
	if req.Elevation != nil {
		return *req.Elevation
	}
	if s.elevations == nil {
		return 0
	}
	elevation, err := s.elevations.Elevation(ctx, req.Latitude, req.Longitude)
	if err != nil {
		s.logger.Warn("elevation lookup failed, using sea level", "lat", req.Latitude, "lon", req.Longitude, "error", err)
		return 0
	}
	return math.Min(math.Max(elevation, minElevation), maxElevation)
}

func (s *service) record(ctx context.Context, res Result, req Request, elevation float64, zone string) {
	entry := HistoryEntry{
		ID:        s.newID(),
		CreatedAt: s.now().UTC(),
		Instant:   res.Instant,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Elevation: elevation,
		Timezone:  zone,
		Vara:      res.Vara.Name,
		Tithi:     res.Tithi.Record.Name,
		Nakshatra: res.Nakshatra.Record.Name,
		Yoga:      res.Yoga.Record.Name,
		Karana:    res.Karana.Record.Name,
	}
	if err := s.history.Save(ctx, entry); err != nil {
		s.logger.Warn("history save failed", "id", entry.ID, "error", err)
	}
}

// classifyError maps a computation failure onto the service error codes.
func classifyError(err error) error {
	switch {
	case errors.Is(err, boundary.ErrDivergence),
		errors.Is(err, boundary.ErrInvalidWidth),
		errors.Is(err, boundary.ErrNonFinite),
		errors.Is(err, elements.ErrUnknownSlot):
		return apperrors.Wrap(apperrors.CodeSolverDivergence, "boundary resolution failed", err)
	case errors.Is(err, vara.ErrNoSunrise):
		return apperrors.Wrap(apperrors.CodeProviderFailure, "no sunrise at this place and date", err)
	default:
		return apperrors.Wrap(apperrors.CodeProviderFailure, "astronomical provider failed", err)
	}
}

func toResponse(res Result, loc *time.Location, zone string, req Request, elevation float64) Response {
	local := func(t time.Time) string { return t.In(loc).Format(time.RFC3339) }
	span := func(slot boundary.Slot) Span { return Span{Start: local(slot.Start), End: local(slot.End)} }

	t, n, y, k := res.Tithi.Record, res.Nakshatra.Record, res.Yoga.Record, res.Karana.Record
	return Response{
		Datetime: local(res.Instant),
		Timezone: zone,
		Location: LocationInfo{Latitude: req.Latitude, Longitude: req.Longitude, Elevation: elevation},
		Sun:      BodyInfo{Longitude: res.Sun.Longitude, Latitude: res.Sun.Latitude},
		Moon:     BodyInfo{Longitude: res.Moon.Longitude, Latitude: res.Moon.Latitude},
		Times: Times{
			Sunrise:     local(res.Vara.Sunrise),
			Sunset:      local(res.Vara.Sunset),
			NextSunrise: local(res.Vara.NextSunrise),
		},
		Vara: VaraInfo{
			Number:       res.Vara.Number,
			Name:         res.Vara.Name,
			Sanskrit:     res.Vara.Sanskrit,
			Ruler:        res.Vara.Ruler,
			Favorability: res.Vara.Favorability,
			Date:         res.Vara.Date.Format(time.DateOnly),
		},
		Tithi: TithiInfo{
			Number: t.Number, Name: t.Name, Paksha: t.Paksha, PakshaNumber: t.PakshaNumber,
			Ruler: t.Ruler, Deity: t.Deity, Group: t.Group, Favorability: t.Favorability,
			Span: span(res.Tithi.Slot),
		},
		Nakshatra: NakshatraInfo{
			Number: n.Number, Name: n.Name, Ruler: n.Ruler, Deity: n.Deity,
			Gana: n.Gana, Nature: n.Nature, Favorability: n.Favorability,
			Span: span(res.Nakshatra.Slot),
		},
		Yoga: YogaInfo{
			Number: y.Number, Name: y.Name, Ruler: y.Ruler, Favorability: y.Favorability,
			Span: span(res.Yoga.Slot),
		},
		Karana: KaranaInfo{
			Number: k.Number, Name: k.Name, Class: k.Class, Deity: k.Deity,
			Favorability: k.Favorability, Half: k.Half,
			Span: span(res.Karana.Slot),
		},
	}
}
