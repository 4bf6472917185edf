// Package container handles the outer framing of a save file: the
// magic number, format version, and the independently zlib-compressed
// sections (Header1, Header2, Bricks, Components) each section wraps
// its payload in, per spec §4.1.
package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Magic is the 3-byte literal that opens every save file.
var Magic = [3]byte{'B', 'R', 'S'}

// ErrInvalidCompression is returned when a section's two length fields
// are inconsistent with any valid encoding: a negative size, or a
// compressed size that exceeds the decompressed size it claims to
// inflate to.
var ErrInvalidCompression = errors.New("container: invalid compression sizes")

// SectionError wraps an error encountered while reading or writing a
// named section, so callers can tell which part of the file failed.
type SectionError struct {
	Section string
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("container: section %q: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

// ReadMagic reads and checks the 3-byte magic number.
func ReadMagic(r io.Reader) error {
	var got [3]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		return fmt.Errorf("container: reading magic: %w", err)
	}
	if got != Magic {
		return fmt.Errorf("container: bad magic %q, want %q", got, Magic)
	}
	return nil
}

// WriteMagic writes the 3-byte magic number.
func WriteMagic(w io.Writer) error {
	_, err := w.Write(Magic[:])
	return err
}

// ReadVersion reads the container format version, a little-endian
// uint16.
func ReadVersion(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("container: reading version: %w", err)
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// WriteVersion writes the container format version.
func WriteVersion(w io.Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// ReadSection reads one section: a little-endian i32 decompressed
// length, a little-endian i32 compressed length, then either that many
// zlib-compressed bytes, or — when the compressed length is 0 — the
// decompressed length's worth of raw bytes, stored uncompressed. It
// returns the fully inflated payload.
//
// Per spec §4.1, a compressed_size of 0 signals a section stored raw
// rather than zlib-framed.
func ReadSection(name string, r io.Reader) ([]byte, error) {
	payload, err := readSection(r)
	if err != nil {
		return nil, &SectionError{Section: name, Err: err}
	}
	return payload, nil
}

// SkipSection advances past one section without decoding its payload,
// for callers that only need to reach a later section.
func SkipSection(r io.Reader) error {
	uncompressedLen, compressedLen, err := readLens(r)
	if err != nil {
		return err
	}
	n := compressedLen
	if n == 0 {
		n = uncompressedLen
	}
	if _, err := io.CopyN(io.Discard, r, int64(n)); err != nil {
		return fmt.Errorf("discarding payload: %w", err)
	}
	return nil
}

func readLens(r io.Reader) (uncompressedLen, compressedLen int32, err error) {
	var lens [8]byte
	if _, err := io.ReadFull(r, lens[:]); err != nil {
		return 0, 0, fmt.Errorf("reading lengths: %w", err)
	}
	uncompressedLen = int32(binary.LittleEndian.Uint32(lens[0:4]))
	compressedLen = int32(binary.LittleEndian.Uint32(lens[4:8]))
	if uncompressedLen < 0 || compressedLen < 0 {
		return 0, 0, fmt.Errorf("%w: negative length (uncompressed=%d, compressed=%d)", ErrInvalidCompression, uncompressedLen, compressedLen)
	}
	if compressedLen > uncompressedLen {
		return 0, 0, fmt.Errorf("%w: compressed length %d exceeds decompressed length %d", ErrInvalidCompression, compressedLen, uncompressedLen)
	}
	return uncompressedLen, compressedLen, nil
}

func readSection(r io.Reader) ([]byte, error) {
	uncompressedLen, compressedLen, err := readLens(r)
	if err != nil {
		return nil, err
	}

	if compressedLen == 0 {
		raw := make([]byte, uncompressedLen)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, fmt.Errorf("reading raw payload: %w", err)
		}
		return raw, nil
	}

	compressed := make([]byte, compressedLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("reading compressed payload: %w", err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("opening zlib stream: %w", err)
	}
	defer zr.Close()

	var buf bytes.Buffer
	buf.Grow(int(uncompressedLen))
	if _, err := io.Copy(&buf, zr); err != nil {
		return nil, fmt.Errorf("inflating: %w", err)
	}
	if buf.Len() != int(uncompressedLen) {
		return nil, fmt.Errorf("%w: decompressed %d bytes, header declared %d", ErrInvalidCompression, buf.Len(), uncompressedLen)
	}
	return buf.Bytes(), nil
}

// WriteSection frames payload the same way ReadSection expects:
// decompressed length, compressed length, then either the
// zlib-compressed bytes at the given level, or — when disableCompression
// is set, or when compression fails to shrink the payload — the raw
// payload itself with a compressed length of 0.
func WriteSection(name string, w io.Writer, payload []byte, level int, disableCompression bool) error {
	if err := writeSection(w, payload, level, disableCompression); err != nil {
		return &SectionError{Section: name, Err: err}
	}
	return nil
}

func writeSection(w io.Writer, payload []byte, level int, disableCompression bool) error {
	var compressed []byte
	if !disableCompression {
		var buf bytes.Buffer
		zw, err := zlib.NewWriterLevel(&buf, level)
		if err != nil {
			return fmt.Errorf("opening zlib writer: %w", err)
		}
		if _, err := zw.Write(payload); err != nil {
			return fmt.Errorf("deflating: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("closing zlib writer: %w", err)
		}
		compressed = buf.Bytes()
	}

	var lens [8]byte
	binary.LittleEndian.PutUint32(lens[0:4], uint32(len(payload)))

	stored := payload
	if compressed != nil && len(compressed) < len(payload) {
		binary.LittleEndian.PutUint32(lens[4:8], uint32(len(compressed)))
		stored = compressed
	} else {
		binary.LittleEndian.PutUint32(lens[4:8], 0)
	}

	if _, err := w.Write(lens[:]); err != nil {
		return fmt.Errorf("writing lengths: %w", err)
	}
	if _, err := w.Write(stored); err != nil {
		return fmt.Errorf("writing payload: %w", err)
	}
	return nil
}
