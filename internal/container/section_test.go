package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

func TestSectionRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat("brick ", 500))
	var buf bytes.Buffer
	if err := WriteSection("bricks", &buf, payload, 6, false); err != nil {
		t.Fatalf("WriteSection: %v", err)
	}
	got, err := ReadSection("bricks", &buf)
	if err != nil {
		t.Fatalf("ReadSection: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(payload))
	}
}

func TestSectionEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSection("header1", &buf, nil, 6, false); err != nil {
		t.Fatalf("WriteSection: %v", err)
	}
	got, err := ReadSection("header1", &buf)
	if err != nil {
		t.Fatalf("ReadSection: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty payload, got %d bytes", len(got))
	}
}

func TestSectionCompressesRepeatedData(t *testing.T) {
	payload := bytes.Repeat([]byte{'A'}, 4096)
	var buf bytes.Buffer
	if err := WriteSection("header2", &buf, payload, 6, false); err != nil {
		t.Fatal(err)
	}
	if buf.Len() >= len(payload) {
		t.Fatalf("expected compression to shrink a highly repetitive payload: wrote %d bytes for %d bytes of input", buf.Len(), len(payload))
	}
	compressedLen := binary.LittleEndian.Uint32(buf.Bytes()[4:8])
	if compressedLen == 0 {
		t.Fatal("expected a non-zero compressed length for a payload that compresses")
	}
}

func TestSectionFallsBackToRawWhenIncompressible(t *testing.T) {
	// Random-looking short payload: zlib framing overhead means the
	// "compressed" form is not actually smaller, so it must fall back
	// to the raw (compressed_size == 0) form.
	payload := []byte{0x01, 0x02}
	var buf bytes.Buffer
	if err := WriteSection("header1", &buf, payload, 6, false); err != nil {
		t.Fatal(err)
	}
	lens := buf.Bytes()[:8]
	uncompressedLen := binary.LittleEndian.Uint32(lens[0:4])
	compressedLen := binary.LittleEndian.Uint32(lens[4:8])
	if uncompressedLen != uint32(len(payload)) {
		t.Fatalf("uncompressed length = %d, want %d", uncompressedLen, len(payload))
	}
	if compressedLen != 0 {
		t.Fatalf("expected raw fallback (compressed length 0), got %d", compressedLen)
	}
	got, err := ReadSection("header1", &buf)
	if err != nil {
		t.Fatalf("ReadSection: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, payload)
	}
}

func TestSectionDisableCompressionForcesRaw(t *testing.T) {
	payload := bytes.Repeat([]byte{'A'}, 4096)
	var buf bytes.Buffer
	if err := WriteSection("bricks", &buf, payload, 6, true); err != nil {
		t.Fatal(err)
	}
	compressedLen := binary.LittleEndian.Uint32(buf.Bytes()[4:8])
	if compressedLen != 0 {
		t.Fatalf("expected compression disabled to force compressed length 0, got %d", compressedLen)
	}
	got, err := ReadSection("bricks", &buf)
	if err != nil {
		t.Fatalf("ReadSection: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("round trip mismatch with compression disabled")
	}
}

func TestSectionRejectsCompressedLargerThanUncompressed(t *testing.T) {
	var buf bytes.Buffer
	var lens [8]byte
	binary.LittleEndian.PutUint32(lens[0:4], 4)
	binary.LittleEndian.PutUint32(lens[4:8], 10)
	buf.Write(lens[:])
	buf.Write(make([]byte, 10))

	_, err := ReadSection("header1", &buf)
	if !errors.Is(err, ErrInvalidCompression) {
		t.Fatalf("expected ErrInvalidCompression, got %v", err)
	}
}

func TestSkipSection(t *testing.T) {
	payload := []byte(strings.Repeat("brick ", 500))
	var buf bytes.Buffer
	if err := WriteSection("bricks", &buf, payload, 6, false); err != nil {
		t.Fatal(err)
	}
	buf.WriteString("trailing")

	if err := SkipSection(&buf); err != nil {
		t.Fatalf("SkipSection: %v", err)
	}
	if buf.String() != "trailing" {
		t.Fatalf("expected only trailing bytes left, got %q", buf.String())
	}
}

func TestMagicRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMagic(&buf); err != nil {
		t.Fatal(err)
	}
	if err := ReadMagic(&buf); err != nil {
		t.Fatalf("ReadMagic: %v", err)
	}
}

func TestMagicRejectsBadInput(t *testing.T) {
	buf := bytes.NewBufferString("xyz")
	if err := ReadMagic(buf); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestVersionRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVersion(&buf, 10); err != nil {
		t.Fatal(err)
	}
	got, err := ReadVersion(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != 10 {
		t.Fatalf("expected version 10, got %d", got)
	}
}
