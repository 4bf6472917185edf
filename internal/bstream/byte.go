// Package bstream provides the byte- and bit-level primitives the save
// codec is built from: little-endian integers, the dual string
// encoding, the UUID layout, variable-width integers and the Unreal
// property-value codec. Call sites are monomorphic over a concrete
// Reader/Writer type, not a dynamically-dispatched interface, mirroring
// the teacher's split between byte-level and bit-level stream helpers.
package bstream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"

	"github.com/brsio/brs/model"
)

// ErrInvalidString is returned when a string's declared encoding does
// not match its payload.
var ErrInvalidString = errors.New("bstream: invalid string data")

// ucs2Decoder and ucs2Encoder transcode the UCS-2/UTF-16LE string
// branch, grounded on benoitkugler-pdf/reader/read.go's use of
// golang.org/x/text/encoding/unicode (there used big-endian with a BOM;
// here little-endian with no BOM, matching the wire format).
var (
	ucs2Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	ucs2Encoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
)

// ByteReader reads the byte-aligned fields of Header1/Header2 and the
// component table's outer framing.
type ByteReader struct {
	r io.Reader
}

// NewByteReader wraps r for byte-level reads.
func NewByteReader(r io.Reader) *ByteReader {
	return &ByteReader{r: r}
}

func (r *ByteReader) ReadUint8() (uint8, error) {
	var b [1]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *ByteReader) ReadUint16() (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func (r *ByteReader) ReadInt32() (int32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b[:])), nil
}

func (r *ByteReader) ReadUint32() (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func (r *ByteReader) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadString decodes the dual-encoding string format from spec §4.1: a
// signed i32 length prefix, empty for 0, UTF-8 with a null terminator
// for positive, UTF-16LE with a null terminator for negative (the
// negated length is the code-unit count, per spec's pinned Open
// Question — the terminator is not counted in it).
func (r *ByteReader) ReadString() (string, error) {
	l, err := r.ReadInt32()
	if err != nil {
		return "", err
	}
	switch {
	case l == 0:
		return "", nil
	case l > 0:
		payload, err := r.ReadBytes(int(l - 1))
		if err != nil {
			return "", err
		}
		if _, err := r.ReadBytes(1); err != nil { // null terminator
			return "", err
		}
		if !utf8.Valid(payload) {
			return "", fmt.Errorf("%w: invalid utf-8", ErrInvalidString)
		}
		return string(payload), nil
	default:
		codeUnits := int(-l)
		payload, err := r.ReadBytes(codeUnits * 2)
		if err != nil {
			return "", err
		}
		if _, err := r.ReadBytes(1); err != nil { // null terminator
			return "", err
		}
		s, err := ucs2Decoder.String(string(payload))
		if err != nil {
			return "", fmt.Errorf("%w: invalid ucs-2: %v", ErrInvalidString, err)
		}
		return s, nil
	}
}

// ReadUUID decodes the save format's UUID layout: 16 bytes as four
// little-endian u32 words, each re-serialized big-endian to reproduce
// the canonical UUID byte order.
func (r *ByteReader) ReadUUID() (uuid.UUID, error) {
	var out [16]byte
	for i := 0; i < 4; i++ {
		word, err := r.ReadBytes(4)
		if err != nil {
			return uuid.UUID{}, err
		}
		le := binary.LittleEndian.Uint32(word)
		binary.BigEndian.PutUint32(out[i*4:], le)
	}
	return uuid.FromBytes(out[:])
}

// ReadArray reads a length-prefixed array of T, using elem to decode
// each element.
func ReadArray[T any](r *ByteReader, elem func(*ByteReader) (T, error)) ([]T, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("bstream: negative array length %d", n)
	}
	out := make([]T, 0, n)
	for i := int32(0); i < n; i++ {
		v, err := elem(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ByteWriter writes the byte-aligned counterparts of ByteReader.
type ByteWriter struct {
	w io.Writer
}

func NewByteWriter(w io.Writer) *ByteWriter {
	return &ByteWriter{w: w}
}

func (w *ByteWriter) WriteUint8(v uint8) error {
	_, err := w.w.Write([]byte{v})
	return err
}

func (w *ByteWriter) WriteUint16(v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.w.Write(b[:])
	return err
}

func (w *ByteWriter) WriteInt32(v int32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	_, err := w.w.Write(b[:])
	return err
}

func (w *ByteWriter) WriteUint32(v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.w.Write(b[:])
	return err
}

func (w *ByteWriter) WriteBytes(b []byte) error {
	_, err := w.w.Write(b)
	return err
}

// WriteString is the inverse of ByteReader.ReadString: empty strings
// write only the zero length prefix; ASCII strings use the positive
// branch; any string with a non-ASCII code point uses the negative
// UCS-2 branch.
func (w *ByteWriter) WriteString(s string) error {
	if s == "" {
		return w.WriteInt32(0)
	}
	if isASCII(s) {
		if err := w.WriteInt32(int32(len(s) + 1)); err != nil {
			return err
		}
		if err := w.WriteBytes([]byte(s)); err != nil {
			return err
		}
		return w.WriteBytes([]byte{0})
	}

	units := utf16.Encode([]rune(s))
	encoded, err := ucs2Encoder.Bytes([]byte(s))
	if err != nil {
		return fmt.Errorf("bstream: encoding ucs-2: %w", err)
	}
	if err := w.WriteInt32(-int32(len(units))); err != nil {
		return err
	}
	if err := w.WriteBytes(encoded); err != nil {
		return err
	}
	return w.WriteBytes([]byte{0})
}

func (w *ByteWriter) WriteUUID(id uuid.UUID) error {
	raw := id[:]
	for i := 0; i < 4; i++ {
		be := binary.BigEndian.Uint32(raw[i*4:])
		var le [4]byte
		binary.LittleEndian.PutUint32(le[:], be)
		if err := w.WriteBytes(le[:]); err != nil {
			return err
		}
	}
	return nil
}

// WriteArray is the inverse of ReadArray.
func WriteArray[T any](w *ByteWriter, items []T, elem func(*ByteWriter, T) error) error {
	if err := w.WriteInt32(int32(len(items))); err != nil {
		return err
	}
	for _, item := range items {
		if err := elem(w, item); err != nil {
			return err
		}
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// ReadColorBGRA reads a 4-byte BGRA color, used by Header2.Colors.
func ReadColorBGRA(r *ByteReader) (model.Color, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return model.Color{}, err
	}
	return model.ColorFromBGRA([4]byte(b)), nil
}

// WriteColorBGRA writes the inverse of ReadColorBGRA.
func WriteColorBGRA(w *ByteWriter, c model.Color) error {
	bgra := c.BGRA()
	return w.WriteBytes(bgra[:])
}
