package save

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// maxImportSize bounds the decompressed size of an import code.
const maxImportSize = 1 << 20

// Export encodes r as a portable text code: JSON, zstd-compressed,
// base64url without padding.
func Export(r Record) (string, error) {
	data, err := EncodeRecord(r)
	if err != nil {
		return "", err
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSaveSerialization, err)
	}
	defer enc.Close()

	return base64.RawURLEncoding.EncodeToString(enc.EncodeAll(data, nil)), nil
}

// Import decodes a code produced by Export. The record is validated with
// the same lenient rules as a stored save.
func Import(code string) (Record, LoadReport, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(code))
	if err != nil {
		return Record{}, LoadReport{}, fmt.Errorf("%w: code is not base64: %w", ErrSaveDeserialization, err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxImportSize))
	if err != nil {
		return Record{}, LoadReport{}, fmt.Errorf("%w: %w", ErrSaveDeserialization, err)
	}
	defer dec.Close()

	data, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return Record{}, LoadReport{}, fmt.Errorf("%w: code is damaged: %w", ErrSaveDeserialization, err)
	}
	return DecodeRecord(data)
}
