package storage

import (
	"strings"

	"github.com/klauspost/compress/zstd"
)

const compressedSuffix = ".zst"

func isCompressed(name string) bool { return strings.HasSuffix(name, compressedSuffix) }

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}
