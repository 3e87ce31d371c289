package save

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	rec := BuildRecord(sampleState(), epoch.Add(time.Hour))

	code, err := Export(rec)
	require.NoError(t, err)
	assert.NotContains(t, code, "=")
	assert.NotContains(t, code, "+")
	assert.NotContains(t, code, "/")

	got, rep, err := Import("  " + code + "\n")
	require.NoError(t, err)
	assert.True(t, rep.Clean())
	assert.Equal(t, rec.Sips.String(), got.Sips.String())
	assert.Equal(t, rec.Level, got.Level)
	assert.Equal(t, rec.SaveID, got.SaveID)
	assert.Equal(t, rec.LastSaveTime, got.LastSaveTime)
}

func TestImportRejectsGarbage(t *testing.T) {
	_, _, err := Import("!!!not base64!!!")
	assert.ErrorIs(t, err, ErrSaveDeserialization)

	_, _, err = Import(strings.Repeat("A", 40))
	assert.ErrorIs(t, err, ErrSaveDeserialization)
}

func TestImportRejectsOversizedCode(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()

	padded := `{"sips": "1", "pad": "` + strings.Repeat("x", 2*maxImportSize) + `"}`
	code := base64.RawURLEncoding.EncodeToString(enc.EncodeAll([]byte(padded), nil))
	require.Less(t, len(code), 64*1024, "code stays small")

	_, _, err = Import(code)
	assert.ErrorIs(t, err, ErrSaveDeserialization)
}
