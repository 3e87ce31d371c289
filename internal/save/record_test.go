package save

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikan/soda-clicker/internal/bignum"
	"github.com/spikan/soda-clicker/internal/production"
	"github.com/spikan/soda-clicker/internal/state"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleState() state.State {
	s := state.New(epoch, 4*time.Second)
	s.Sips = bignum.MustParse("1e500")
	s.TotalSipsEarned = bignum.MustParse("2e500")
	s.Counts = production.Counts{Straws: 12, Cups: 3, Suctions: 1, FasterDrinks: 2, WiderStraws: 4, BetterCups: 5, CriticalClicks: 6}
	s.Production.SPD = bignum.MustParse("33.5")
	s.Level = 7
	s.Clicks = state.ClickStats{Total: 420, BestStreak: 19, Streak: 3}
	s.PlayTime = 90 * time.Minute
	s.AutosaveCounter = 4
	s.SaveID = "3c8b3f5e-2a7f-4a55-9d5c-2b0f5f1d9a10"
	return s
}

func TestRecordRoundTrip(t *testing.T) {
	orig := sampleState()
	rec := BuildRecord(orig, epoch.Add(time.Minute))

	data, err := EncodeRecord(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"straws":"12"`)

	decoded, rep, err := DecodeRecord(data)
	require.NoError(t, err)
	assert.True(t, rep.Clean(), "report: %+v", rep)

	got := ApplyRecord(decoded, state.New(epoch, time.Second))
	assert.True(t, got.Sips.EQ(orig.Sips))
	assert.Equal(t, orig.Sips.String(), got.Sips.String())
	assert.True(t, got.TotalSipsEarned.EQ(orig.TotalSipsEarned))
	assert.Equal(t, orig.Counts, got.Counts)
	assert.Equal(t, 7, got.Level)
	assert.Equal(t, 4*time.Second, got.Drink.Rate)
	assert.True(t, got.Drink.LastDrink.Equal(epoch))
	assert.Equal(t, int64(420), got.Clicks.Total)
	assert.Equal(t, 19, got.Clicks.BestStreak)
	assert.Zero(t, got.Clicks.Streak)
	assert.Equal(t, 90*time.Minute, got.PlayTime)
	assert.Equal(t, 4, got.AutosaveCounter)
	assert.Equal(t, orig.SaveID, got.SaveID)
	assert.True(t, got.LastSaveTime.Equal(epoch.Add(time.Minute)))
}

func TestDecodeRecordMalformed(t *testing.T) {
	for _, input := range []string{`{"sips": `, `not json`, `null`, `[1,2]`} {
		_, _, err := DecodeRecord([]byte(input))
		assert.ErrorIs(t, err, ErrSaveDeserialization, "input %q", input)
	}
}

func TestDecodeRecordPerFieldDefaults(t *testing.T) {
	data := []byte(`{
		"sips": "150",
		"straws": "many",
		"cups": 4,
		"level": "high",
		"totalClicks": 12,
		"bestStreak": -3,
		"saveId": 99
	}`)

	rec, rep, err := DecodeRecord(data)
	require.NoError(t, err)

	assert.Equal(t, "150", rec.Sips.String())
	assert.True(t, rec.Straws.IsZero())
	assert.Equal(t, "4", rec.Cups.String())
	assert.Equal(t, 1, rec.Level)
	assert.Equal(t, int64(12), rec.TotalClicks)
	assert.Zero(t, rec.BestStreak)
	assert.Empty(t, rec.SaveID)

	assert.ElementsMatch(t, []string{"straws", "level", "bestStreak", "saveId"}, rep.Reset)
	assert.Contains(t, rep.Missing, "betterCups")
	assert.Contains(t, rep.Missing, "lastSaveTime")
	assert.NotContains(t, rep.Missing, "sips")
}

func TestDecodeRecordRejectsOutOfRangeCounts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		reset string
	}{
		{"huge straws", `{"straws": "1e12"}`, "straws"},
		{"huge cups as number", `{"cups": 20000}`, "cups"},
		{"huge faster drinks", `{"fasterDrinks": "10001"}`, "fasterDrinks"},
		{"huge level", `{"level": 1000000000}`, "level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, rep, err := DecodeRecord([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, []string{tt.reset}, rep.Reset)
			assert.Equal(t, 1, rec.Level)
			assert.True(t, rec.Straws.IsZero())
			assert.True(t, rec.Cups.IsZero())
			assert.True(t, rec.FasterDrinks.IsZero())
		})
	}

	rec, rep, err := DecodeRecord([]byte(`{"straws": "10000", "level": 10000}`))
	require.NoError(t, err)
	assert.Empty(t, rep.Reset, "the bounds themselves are accepted")
	assert.Equal(t, "10000", rec.Straws.String())
	assert.Equal(t, MaxLevel, rec.Level)
}

func TestDecodeRecordAcceptsNumbers(t *testing.T) {
	rec, rep, err := DecodeRecord([]byte(`{"sips": 1234.5, "totalSipsEarned": 2000}`))
	require.NoError(t, err)
	assert.Empty(t, rep.Reset)
	assert.Equal(t, "1234.5", rec.Sips.String())
	assert.Equal(t, "2000", rec.TotalSipsEarned.String())
}

func TestApplyRecordKeepsBaseForAbsentTiming(t *testing.T) {
	base := state.New(epoch, 3*time.Second)
	got := ApplyRecord(DefaultRecord(), base)

	assert.Equal(t, 3*time.Second, got.Drink.Rate)
	assert.True(t, got.Drink.LastDrink.Equal(epoch))
	assert.Equal(t, 1, got.Level)
	assert.True(t, got.Sips.IsZero())
	assert.Equal(t, base.Options, got.Options)
}

func TestDecodeOptions(t *testing.T) {
	opts, rep, err := DecodeOptions([]byte(`{"autosaveEnabled": false, "autosaveInterval": 1, "musicEnabled": "loud"}`))
	require.NoError(t, err)

	assert.False(t, opts.AutosaveEnabled)
	assert.Equal(t, 5, opts.AutosaveInterval)
	assert.True(t, opts.ClickSoundsEnabled)
	assert.True(t, opts.MusicEnabled)
	assert.Equal(t, []string{"musicEnabled"}, rep.Reset)
	assert.Equal(t, []string{"clickSoundsEnabled"}, rep.Missing)

	opts, _, err = DecodeOptions([]byte(`{"autosaveInterval": 100000}`))
	require.NoError(t, err)
	assert.Equal(t, 3600, opts.AutosaveInterval)

	_, _, err = DecodeOptions([]byte(`{`))
	assert.ErrorIs(t, err, ErrSaveDeserialization)
}
