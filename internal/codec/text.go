package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"slices"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// errNotPNG is wrapped when a text operation meets a non-PNG stream.
var errNotPNG = errors.New("not a PNG stream")

// insertText returns the PNG stream data with one tEXt chunk per key,
// placed right after the IHDR chunk.
func insertText(data []byte, kv map[string]string) ([]byte, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, errNotPNG
	}
	// The signature is followed by IHDR: 4 length + 4 type + 13 data + 4 CRC.
	ihdrEnd := len(pngSignature) + 25
	if len(data) < ihdrEnd || string(data[12:16]) != "IHDR" {
		return nil, fmt.Errorf("%w: missing IHDR", errNotPNG)
	}

	keys := make([]string, 0, len(kv))
	for k := range kv {
		if err := validKeyword(k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var out bytes.Buffer
	out.Grow(len(data) + 64*len(keys))
	out.Write(data[:ihdrEnd])
	for _, k := range keys {
		payload := make([]byte, 0, len(k)+1+len(kv[k]))
		payload = append(payload, k...)
		payload = append(payload, 0)
		payload = append(payload, kv[k]...)
		writeChunk(&out, "tEXt", payload)
	}
	out.Write(data[ihdrEnd:])
	return out.Bytes(), nil
}

// validKeyword checks the PNG keyword rules: 1 to 79 printable Latin-1
// characters with no NUL.
func validKeyword(k string) error {
	if len(k) == 0 || len(k) > 79 {
		return fmt.Errorf("%w: text keyword %q must have 1 to 79 bytes", ErrCodecRejection, k)
	}
	if bytes.IndexByte([]byte(k), 0) >= 0 {
		return fmt.Errorf("%w: text keyword %q contains NUL", ErrCodecRejection, k)
	}
	return nil
}

func writeChunk(w *bytes.Buffer, typ string, payload []byte) {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(len(payload))) //nolint:gosec // payload is bounded by the caller
	copy(hdr[4:], typ)
	w.Write(hdr[:])
	w.Write(payload)

	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], chunkCRC(hdr[4:], payload))
	w.Write(sum[:])
}

// ReadText returns the tEXt metadata of the PNG file at path.
// A PNG without text chunks yields an empty map.
func ReadText(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	kv, err := parseText(data)
	if err != nil {
		return nil, fmt.Errorf("codec: %s: %w", path, err)
	}
	return kv, nil
}

func parseText(data []byte) (map[string]string, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, errNotPNG
	}

	kv := make(map[string]string)
	rest := data[len(pngSignature):]
	for len(rest) >= 12 {
		n := int(binary.BigEndian.Uint32(rest[:4]))
		typ := string(rest[4:8])
		if n < 0 || len(rest) < 12+n {
			return nil, fmt.Errorf("%w: truncated %s chunk", errNotPNG, typ)
		}
		payload := rest[8 : 8+n]

		if typ == "tEXt" {
			if want := binary.BigEndian.Uint32(rest[8+n : 12+n]); want != chunkCRC(rest[4:8], payload) {
				return nil, fmt.Errorf("%w: bad tEXt checksum", errNotPNG)
			}
			if k, v, ok := bytes.Cut(payload, []byte{0}); ok {
				kv[string(k)] = string(v)
			}
		}
		if typ == "IEND" {
			break
		}
		rest = rest[12+n:]
	}
	return kv, nil
}

func chunkCRC(typ, payload []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write(typ)
	crc.Write(payload)
	return crc.Sum32()
}
