// Package brs reads and writes Brickadia .brs save files: a versioned,
// multi-section binary container holding two header sections, an
// optional preview thumbnail, the brick list, and any components
// attached to bricks.
//
// Decode with Read (or the stepwise Reader), encode with Write. Both
// operate on github.com/brsio/brs/model.SaveData; this package owns
// only the wire format, not the in-memory representation.
package brs

import (
	"errors"
	"fmt"

	"github.com/brsio/brs/internal/container"
)

// ErrBadMagic is returned when a stream does not open with the 3-byte
// "BRS" magic number.
var ErrBadMagic = errors.New("brs: not a BRS save file")

// ErrUnsupportedVersion is returned when a stream declares a container
// version newer than this package knows how to read.
var ErrUnsupportedVersion = errors.New("brs: unsupported save version")

// ErrBadSectionReadOrder is returned by a Reader method called before
// the section(s) preceding it have been read or skipped.
var ErrBadSectionReadOrder = errors.New("brs: sections read out of order")

// ErrInvalidCompression is returned when a section's length fields are
// inconsistent with any valid raw-or-zlib encoding.
var ErrInvalidCompression = container.ErrInvalidCompression

// ErrInvalidDataHeader1 wraps a failure decoding the Header1 section.
var ErrInvalidDataHeader1 = errors.New("brs: invalid header1 data")

// ErrInvalidDataHeader2 wraps a failure decoding the Header2 section.
var ErrInvalidDataHeader2 = errors.New("brs: invalid header2 data")

// ErrInvalidData is returned for a structurally invalid bricks or
// components payload that is not specific to either header section.
var ErrInvalidData = errors.New("brs: invalid section data")

// maxBrickCount bounds the capacity hint readBricks uses when
// preallocating the brick slice from the header's declared count: a
// corrupt or hostile count should not itself drive a huge allocation.
// A save with more than maxBrickCount bricks still decodes correctly —
// it just grows the slice by reallocation like any other append past
// its initial capacity.
const maxBrickCount = 10_000_000

// SectionError reports which top-level section of the file a read or
// write error occurred in.
type SectionError struct {
	Section string
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("brs: section %q: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

func wrapSection(name string, err error) error {
	if err == nil {
		return nil
	}
	return &SectionError{Section: name, Err: err}
}

// ComponentBrickError reports a failure decoding one brick's property
// values within a named component's sub-stream.
type ComponentBrickError struct {
	Component  string
	BrickIndex uint32
	Err        error
}

func (e *ComponentBrickError) Error() string {
	return fmt.Sprintf("brs: component %q: brick %d: %v", e.Component, e.BrickIndex, e.Err)
}

func (e *ComponentBrickError) Unwrap() error {
	return e.Err
}
