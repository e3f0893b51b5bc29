package savestore

import (
	"bytes"
	"encoding/hex"
	"io"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"
)

func compressLZ4(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(src); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressLZ4(src []byte, sizeHint int) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, sizeHint))
	if _, err := io.Copy(buf, lz4.NewReader(bytes.NewReader(src))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// checksum is computed over the stored bytes, so tampering is caught
// before anything is decompressed
func checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
