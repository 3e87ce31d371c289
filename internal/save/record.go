package save

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spikan/soda-clicker/internal/bignum"
	"github.com/spikan/soda-clicker/internal/config"
	"github.com/spikan/soda-clicker/internal/production"
	"github.com/spikan/soda-clicker/internal/state"
)

// RecordVersion is written into every new save.
const RecordVersion = 2

// Upper bounds for upgrade counts and level in a loaded record. Prices and
// level thresholds are exact powers of these values and are recomputed on
// every frame.
const (
	MaxCount = 10_000
	MaxLevel = 10_000
)

// Record is the persisted form of a game. Currency values and upgrade counts
// are decimal strings so arbitrarily large values survive the round trip;
// times are Unix epoch milliseconds.
type Record struct {
	Sips           bignum.Num `json:"sips"`
	Straws         bignum.Num `json:"straws"`
	Cups           bignum.Num `json:"cups"`
	WiderStraws    bignum.Num `json:"widerStraws"`
	BetterCups     bignum.Num `json:"betterCups"`
	Suctions       bignum.Num `json:"suctions"`
	CriticalClicks bignum.Num `json:"criticalClicks"`
	FasterDrinks   bignum.Num `json:"fasterDrinks"`
	LastSaveTime   int64      `json:"lastSaveTime"`

	TotalSipsEarned bignum.Num `json:"totalSipsEarned"`
	SPD             bignum.Num `json:"spd"`
	StrawSPD        bignum.Num `json:"strawSPD"`
	CupSPD          bignum.Num `json:"cupSPD"`
	Level           int        `json:"level"`
	DrinkRate       int64      `json:"drinkRate"`
	LastDrinkTime   int64      `json:"lastDrinkTime"`
	TotalClicks     int64      `json:"totalClicks"`
	BestStreak      int        `json:"bestStreak"`
	TotalPlayTime   int64      `json:"totalPlayTime"`
	AutosaveCounter int        `json:"autosaveCounter"`
	SaveID          string     `json:"saveId"`
	Version         int        `json:"version"`
}

// LoadReport lists fields that were absent or unreadable and fell back to
// their defaults.
type LoadReport struct {
	Fresh   bool     // No save existed
	Missing []string // Absent or null
	Reset   []string // Present but of the wrong type or out of range
}

// Clean reports whether every field decoded as stored.
func (r LoadReport) Clean() bool {
	return len(r.Missing) == 0 && len(r.Reset) == 0
}

// DefaultRecord is the record of a brand-new game.
func DefaultRecord() Record {
	return Record{Level: 1, Version: RecordVersion}
}

// BuildRecord captures s as a record stamped with now.
func BuildRecord(s state.State, now time.Time) Record {
	c := s.Counts
	return Record{
		Sips:           s.Sips,
		Straws:         count(c.Straws),
		Cups:           count(c.Cups),
		WiderStraws:    count(c.WiderStraws),
		BetterCups:     count(c.BetterCups),
		Suctions:       count(c.Suctions),
		CriticalClicks: count(c.CriticalClicks),
		FasterDrinks:   count(c.FasterDrinks),
		LastSaveTime:   now.UnixMilli(),

		TotalSipsEarned: s.TotalSipsEarned,
		SPD:             s.Production.SPD,
		StrawSPD:        s.Production.StrawSPD,
		CupSPD:          s.Production.CupSPD,
		Level:           s.Level,
		DrinkRate:       s.Drink.Rate.Milliseconds(),
		LastDrinkTime:   epochMs(s.Drink.LastDrink),
		TotalClicks:     s.Clicks.Total,
		BestStreak:      s.Clicks.BestStreak,
		TotalPlayTime:   s.PlayTime.Milliseconds(),
		AutosaveCounter: s.AutosaveCounter,
		SaveID:          s.SaveID,
		Version:         RecordVersion,
	}
}

// EncodeRecord marshals r to JSON.
func EncodeRecord(r Record) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaveSerialization, err)
	}
	return data, nil
}

// DecodeRecord parses a save leniently. Malformed JSON is an error; a field
// that is missing, has the wrong type or is out of range falls back to its
// default and is listed in the report.
func DecodeRecord(data []byte) (Record, LoadReport, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, LoadReport{}, fmt.Errorf("%w: %w", ErrSaveDeserialization, err)
	}
	if raw == nil {
		return Record{}, LoadReport{}, fmt.Errorf("%w: save is not an object", ErrSaveDeserialization)
	}

	r := DefaultRecord()
	var rep LoadReport

	field(raw, "sips", &r.Sips, &rep)
	field(raw, "straws", &r.Straws, &rep)
	field(raw, "cups", &r.Cups, &rep)
	field(raw, "widerStraws", &r.WiderStraws, &rep)
	field(raw, "betterCups", &r.BetterCups, &rep)
	field(raw, "suctions", &r.Suctions, &rep)
	field(raw, "criticalClicks", &r.CriticalClicks, &rep)
	field(raw, "fasterDrinks", &r.FasterDrinks, &rep)
	field(raw, "lastSaveTime", &r.LastSaveTime, &rep)

	field(raw, "totalSipsEarned", &r.TotalSipsEarned, &rep)
	field(raw, "spd", &r.SPD, &rep)
	field(raw, "strawSPD", &r.StrawSPD, &rep)
	field(raw, "cupSPD", &r.CupSPD, &rep)
	field(raw, "level", &r.Level, &rep)
	field(raw, "drinkRate", &r.DrinkRate, &rep)
	field(raw, "lastDrinkTime", &r.LastDrinkTime, &rep)
	field(raw, "totalClicks", &r.TotalClicks, &rep)
	field(raw, "bestStreak", &r.BestStreak, &rep)
	field(raw, "totalPlayTime", &r.TotalPlayTime, &rep)
	field(raw, "autosaveCounter", &r.AutosaveCounter, &rep)
	field(raw, "saveId", &r.SaveID, &rep)
	field(raw, "version", &r.Version, &rep)

	if r.Level < 1 || r.Level > MaxLevel {
		r.Level = 1
		rep.Reset = append(rep.Reset, "level")
	}
	limit := bignum.FromInt(MaxCount)
	for _, c := range []struct {
		name string
		n    *bignum.Num
	}{
		{"straws", &r.Straws},
		{"cups", &r.Cups},
		{"widerStraws", &r.WiderStraws},
		{"betterCups", &r.BetterCups},
		{"suctions", &r.Suctions},
		{"criticalClicks", &r.CriticalClicks},
		{"fasterDrinks", &r.FasterDrinks},
	} {
		if c.n.GT(limit) {
			*c.n = bignum.Zero()
			rep.Reset = append(rep.Reset, c.name)
		}
	}
	for name, v := range map[string]*int64{
		"lastSaveTime":  &r.LastSaveTime,
		"drinkRate":     &r.DrinkRate,
		"lastDrinkTime": &r.LastDrinkTime,
		"totalClicks":   &r.TotalClicks,
		"totalPlayTime": &r.TotalPlayTime,
	} {
		if *v < 0 {
			*v = 0
			rep.Reset = append(rep.Reset, name)
		}
	}
	if r.BestStreak < 0 {
		r.BestStreak = 0
		rep.Reset = append(rep.Reset, "bestStreak")
	}
	if r.AutosaveCounter < 0 {
		r.AutosaveCounter = 0
		rep.Reset = append(rep.Reset, "autosaveCounter")
	}
	return r, rep, nil
}

// ApplyRecord rebuilds a state from r on top of base. Base supplies the
// options and any timing the record does not carry.
func ApplyRecord(r Record, base state.State) state.State {
	s := base
	s.Sips = r.Sips
	s.TotalSipsEarned = bignum.Max(r.TotalSipsEarned, r.Sips)
	s.Counts = production.Counts{
		Straws:         toInt(r.Straws),
		Cups:           toInt(r.Cups),
		Suctions:       toInt(r.Suctions),
		CriticalClicks: toInt(r.CriticalClicks),
		FasterDrinks:   toInt(r.FasterDrinks),
		WiderStraws:    toInt(r.WiderStraws),
		BetterCups:     toInt(r.BetterCups),
	}
	s.Production.SPD = r.SPD
	s.Production.StrawSPD = r.StrawSPD
	s.Production.CupSPD = r.CupSPD

	s.Level = max(r.Level, 1)
	if r.DrinkRate > 0 {
		s.Drink.Rate = time.Duration(r.DrinkRate) * time.Millisecond
	}
	if r.LastDrinkTime > 0 {
		s.Drink.LastDrink = time.UnixMilli(r.LastDrinkTime)
	}
	s.Drink.Progress = 0

	s.Clicks = state.ClickStats{Total: r.TotalClicks, BestStreak: r.BestStreak}
	s.PlayTime = time.Duration(r.TotalPlayTime) * time.Millisecond
	s.AutosaveCounter = r.AutosaveCounter
	if r.LastSaveTime > 0 {
		s.LastSaveTime = time.UnixMilli(r.LastSaveTime)
	}
	s.SaveID = r.SaveID
	return s
}

// DecodeOptions parses an options record leniently, like DecodeRecord, and
// clamps the autosave interval.
func DecodeOptions(data []byte) (config.Options, LoadReport, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		if err == nil {
			err = errors.New("options are not an object")
		}
		return config.DefaultOptions(), LoadReport{}, fmt.Errorf("%w: %w", ErrSaveDeserialization, err)
	}

	o := config.DefaultOptions()
	var rep LoadReport
	field(raw, "autosaveEnabled", &o.AutosaveEnabled, &rep)
	field(raw, "autosaveInterval", &o.AutosaveInterval, &rep)
	field(raw, "clickSoundsEnabled", &o.ClickSoundsEnabled, &rep)
	field(raw, "musicEnabled", &o.MusicEnabled, &rep)
	return o.Normalize(), rep, nil
}

// field decodes raw[name] into dst. On a missing, null or mistyped value dst
// keeps its default and the report records why.
func field[T any](raw map[string]json.RawMessage, name string, dst *T, rep *LoadReport) {
	msg, ok := raw[name]
	if !ok || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		rep.Missing = append(rep.Missing, name)
		return
	}
	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		rep.Reset = append(rep.Reset, name)
		return
	}
	*dst = v
}

func count(n int) bignum.Num {
	return bignum.FromInt(int64(n))
}

func toInt(n bignum.Num) int {
	return int(min(n.Int64(), MaxCount))
}

func epochMs(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
