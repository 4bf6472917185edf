package brs

import (
	"bytes"
	"io"
	"sort"

	"github.com/brsio/brs/internal/bstream"
	"github.com/brsio/brs/internal/container"
	"github.com/brsio/brs/model"
	"github.com/brsio/brs/model/version"
)

// DefaultCompressionLevel is the zlib level Write uses unless a
// WriteOption overrides it. 6 is zlib's own default: a reasonable
// balance of ratio and speed for the section sizes a save produces.
const DefaultCompressionLevel = 6

// WriteOption configures Write.
type WriteOption func(*writeConfig)

type writeConfig struct {
	level              int
	disableCompression bool
}

// WithCompressionLevel overrides the zlib compression level used for
// every section, from 0 (store) to 9 (best compression). Ignored if
// WithDisableCompression is also given.
func WithCompressionLevel(level int) WriteOption {
	return func(c *writeConfig) { c.level = level }
}

// WithDisableCompression skips zlib entirely: every section is
// written raw, framed with a compressed length of 0, regardless of
// how well it would have compressed.
func WithDisableCompression() WriteOption {
	return func(c *writeConfig) { c.disableCompression = true }
}

// Write encodes a complete save file to w, always at
// model.CurrentVersion regardless of the version s.Version records.
func Write(w io.Writer, s *model.SaveData, opts ...WriteOption) error {
	cfg := writeConfig{level: DefaultCompressionLevel}
	for _, opt := range opts {
		opt(&cfg)
	}

	caps := version.Of(model.CurrentVersion)

	if err := container.WriteMagic(w); err != nil {
		return wrapSection("magic", err)
	}
	if err := container.WriteVersion(w, model.CurrentVersion); err != nil {
		return wrapSection("version", err)
	}

	plain := bstream.NewByteWriter(w)
	if err := plain.WriteInt32(s.GameVersion); err != nil {
		return wrapSection("game_version", err)
	}

	var header1Buf bytes.Buffer
	if err := writeHeader1(bstream.NewByteWriter(&header1Buf), s.Header1, uint32(len(s.Bricks))); err != nil {
		return wrapSection("header1", err)
	}
	if err := container.WriteSection("header1", w, header1Buf.Bytes(), cfg.level, cfg.disableCompression); err != nil {
		return err
	}

	var header2Buf bytes.Buffer
	if err := writeHeader2(bstream.NewByteWriter(&header2Buf), s.Header2); err != nil {
		return wrapSection("header2", err)
	}
	if err := container.WriteSection("header2", w, header2Buf.Bytes(), cfg.level, cfg.disableCompression); err != nil {
		return err
	}

	if err := writePreview(plain, s.Preview); err != nil {
		return wrapSection("preview", err)
	}

	bricksPayload, err := writeBricks(s.Bricks, caps, len(s.Header2.BrickAssets), len(s.Header2.Colors), len(s.Header2.Materials))
	if err != nil {
		return wrapSection("bricks", err)
	}
	if err := container.WriteSection("bricks", w, bricksPayload, cfg.level, cfg.disableCompression); err != nil {
		return err
	}

	names := make([]string, 0, len(s.Components))
	for name := range s.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	componentsPayload, err := writeComponents(s.Components, names, s.Bricks)
	if err != nil {
		return wrapSection("components", err)
	}
	if err := container.WriteSection("components", w, componentsPayload, cfg.level, cfg.disableCompression); err != nil {
		return err
	}

	return nil
}
