package brs

import (
	"bytes"
	"fmt"
	"io"

	"github.com/brsio/brs/internal/bstream"
	"github.com/brsio/brs/internal/container"
	"github.com/brsio/brs/model"
	"github.com/brsio/brs/model/version"
)

// readState tracks which section a Reader expects next. Each stepwise
// method checks the current state before doing any I/O and advances it
// by exactly one step on success, so sections can only be consumed in
// their wire order.
type readState int

const (
	stateHeader1 readState = iota
	stateHeader2
	statePreview
	stateBricks
	stateComponents
	stateDone
)

// Reader decodes a save file one section at a time. Construct one with
// NewReader, which reads the magic number, container version and (if
// present) game version eagerly; Version and GameVersion are valid
// immediately afterward. Each remaining section must then be read (or,
// for Header1/Header2/Preview, explicitly skipped) in wire order —
// calling a method out of turn returns ErrBadSectionReadOrder.
type Reader struct {
	r    io.Reader
	caps version.Capabilities

	Version     uint16
	GameVersion int32

	state   readState
	header1 model.Header1
	header2 model.Header2
}

// NewReader reads the magic number, container version, and (since
// version 8) the game version off r, and returns a Reader positioned
// to read Header1 next.
func NewReader(r io.Reader) (*Reader, error) {
	if err := container.ReadMagic(r); err != nil {
		return nil, ErrBadMagic
	}

	v, err := container.ReadVersion(r)
	if err != nil {
		return nil, wrapSection("version", err)
	}
	if v > model.CurrentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	caps := version.Of(v)

	rd := &Reader{r: r, caps: caps, Version: v}

	if caps.HasGameVersion {
		gv, err := bstream.NewByteReader(r).ReadInt32()
		if err != nil {
			return nil, wrapSection("game_version", err)
		}
		rd.GameVersion = gv
	}

	return rd, nil
}

func (rd *Reader) expect(want readState) error {
	if rd.state != want {
		return ErrBadSectionReadOrder
	}
	return nil
}

// ReadHeader1 decodes the Header1 section.
func (rd *Reader) ReadHeader1() (model.Header1, error) {
	if err := rd.expect(stateHeader1); err != nil {
		return model.Header1{}, err
	}
	payload, err := container.ReadSection("header1", rd.r)
	if err != nil {
		return model.Header1{}, err
	}
	h, err := readHeader1(bstream.NewByteReader(bytes.NewReader(payload)), rd.caps)
	if err != nil {
		return model.Header1{}, wrapSection("header1", fmt.Errorf("%w: %v", ErrInvalidDataHeader1, err))
	}
	rd.header1 = h
	rd.state = stateHeader2
	return h, nil
}

// SkipHeader1 advances past the Header1 section without decoding it.
// A subsequent ReadBricks call will see a zero-value Header1 (brick
// count 0), since the declared brick count is only known by decoding,
// and therefore returns no bricks.
func (rd *Reader) SkipHeader1() error {
	if err := rd.expect(stateHeader1); err != nil {
		return err
	}
	if err := container.SkipSection(rd.r); err != nil {
		return wrapSection("header1", err)
	}
	rd.state = stateHeader2
	return nil
}

// ReadHeader2 decodes the Header2 section.
func (rd *Reader) ReadHeader2() (model.Header2, error) {
	if err := rd.expect(stateHeader2); err != nil {
		return model.Header2{}, err
	}
	payload, err := container.ReadSection("header2", rd.r)
	if err != nil {
		return model.Header2{}, err
	}
	h, err := readHeader2(bstream.NewByteReader(bytes.NewReader(payload)), rd.caps)
	if err != nil {
		return model.Header2{}, wrapSection("header2", fmt.Errorf("%w: %v", ErrInvalidDataHeader2, err))
	}
	rd.header2 = h
	rd.state = statePreview
	return h, nil
}

// SkipHeader2 advances past the Header2 section without decoding it.
// A subsequent ReadBricks call will see empty palettes, since the
// palette lengths that size the bricks section's fixed-width fields
// are only known by decoding.
func (rd *Reader) SkipHeader2() error {
	if err := rd.expect(stateHeader2); err != nil {
		return err
	}
	if err := container.SkipSection(rd.r); err != nil {
		return wrapSection("header2", err)
	}
	rd.state = statePreview
	return nil
}

// ReadPreview decodes the plain preview section.
func (rd *Reader) ReadPreview() (model.Preview, error) {
	if err := rd.expect(statePreview); err != nil {
		return model.Preview{}, err
	}
	p, err := readPreview(bstream.NewByteReader(rd.r), rd.caps)
	if err != nil {
		return model.Preview{}, wrapSection("preview", err)
	}
	rd.state = stateBricks
	return p, nil
}

// SkipPreview advances past the preview section without returning its
// image data. The preview is not zlib-framed, so skipping still reads
// (and discards) its bytes.
func (rd *Reader) SkipPreview() error {
	if _, err := rd.ReadPreview(); err != nil {
		return err
	}
	return nil
}

// ReadBricks decodes the Bricks section, using the palette lengths
// from whichever Header1/Header2 this Reader has read (zero if they
// were skipped instead).
func (rd *Reader) ReadBricks() ([]model.Brick, error) {
	if err := rd.expect(stateBricks); err != nil {
		return nil, err
	}
	payload, err := container.ReadSection("bricks", rd.r)
	if err != nil {
		return nil, err
	}
	bricks, err := readBricks(payload, rd.caps, rd.header1, rd.header2)
	if err != nil {
		return nil, wrapSection("bricks", fmt.Errorf("%w: %v", ErrInvalidData, err))
	}
	rd.state = stateComponents
	return bricks, nil
}

// ReadComponents decodes the Components section, mutating each
// referenced brick's Components map in place. Saves older than
// version 8 carry no components section at all; ReadComponents then
// returns an empty map without reading anything further.
func (rd *Reader) ReadComponents(bricks []model.Brick) (map[string]model.Component, error) {
	if err := rd.expect(stateComponents); err != nil {
		return nil, err
	}
	if !rd.caps.HasComponents {
		rd.state = stateDone
		return map[string]model.Component{}, nil
	}
	payload, err := container.ReadSection("components", rd.r)
	if err != nil {
		return nil, err
	}
	components, err := readComponents(payload, rd.caps, bricks)
	if err != nil {
		return nil, wrapSection("components", fmt.Errorf("%w: %w", ErrInvalidData, err))
	}
	rd.state = stateDone
	return components, nil
}

// ReadAll drives every remaining step in order and assembles a
// complete SaveData.
func (rd *Reader) ReadAll() (*model.SaveData, error) {
	header1, err := rd.ReadHeader1()
	if err != nil {
		return nil, err
	}
	header2, err := rd.ReadHeader2()
	if err != nil {
		return nil, err
	}
	preview, err := rd.ReadPreview()
	if err != nil {
		return nil, err
	}
	bricks, err := rd.ReadBricks()
	if err != nil {
		return nil, err
	}
	components, err := rd.ReadComponents(bricks)
	if err != nil {
		return nil, err
	}

	return &model.SaveData{
		Version:     rd.Version,
		GameVersion: rd.GameVersion,
		Header1:     header1,
		Header2:     header2,
		Preview:     preview,
		Bricks:      bricks,
		Components:  components,
	}, nil
}

// ReadAllSkipPreview is ReadAll without decoding the preview image,
// for callers that only need the header, bricks and components (a
// summary tool has no use for embedded thumbnail bytes).
func (rd *Reader) ReadAllSkipPreview() (*model.SaveData, error) {
	header1, err := rd.ReadHeader1()
	if err != nil {
		return nil, err
	}
	header2, err := rd.ReadHeader2()
	if err != nil {
		return nil, err
	}
	if err := rd.SkipPreview(); err != nil {
		return nil, err
	}
	bricks, err := rd.ReadBricks()
	if err != nil {
		return nil, err
	}
	components, err := rd.ReadComponents(bricks)
	if err != nil {
		return nil, err
	}

	return &model.SaveData{
		Version:     rd.Version,
		GameVersion: rd.GameVersion,
		Header1:     header1,
		Header2:     header2,
		Bricks:      bricks,
		Components:  components,
	}, nil
}

// Read decodes a complete save file from r. It is a thin convenience
// wrapper over NewReader and ReadAll for callers that don't need
// stepwise or order-skipping access to the sections.
//
// The returned SaveData is not validated against the cross-reference
// invariants in model.SaveData.Validate; call it explicitly if the
// caller needs that guarantee (decoding a save nobody has tampered
// with rarely does).
func Read(r io.Reader) (*model.SaveData, error) {
	rd, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	return rd.ReadAll()
}
