package brs

import (
	"github.com/brsio/brs/internal/bstream"
	"github.com/brsio/brs/model"
	"github.com/brsio/brs/model/version"
)

// readPreview decodes the plain (uncompressed) preview section, present
// since version 8. It is framed directly on the container stream, not
// as a zlib section: a one-byte kind tag, then for any non-None tag a
// little-endian u32 length and that many bytes of image data.
func readPreview(br *bstream.ByteReader, caps version.Capabilities) (model.Preview, error) {
	if !caps.HasPreview {
		return model.Preview{}, nil
	}

	tag, err := br.ReadUint8()
	if err != nil {
		return model.Preview{}, err
	}

	kind := previewKindFromTag(tag)
	if kind == model.PreviewNone {
		return model.Preview{Kind: model.PreviewNone}, nil
	}

	length, err := br.ReadUint32()
	if err != nil {
		return model.Preview{}, err
	}
	data, err := br.ReadBytes(int(length))
	if err != nil {
		return model.Preview{}, err
	}

	return model.Preview{Kind: kind, Tag: tag, Data: data}, nil
}

func previewKindFromTag(tag byte) model.PreviewKind {
	switch tag {
	case 0:
		return model.PreviewNone
	case 1:
		return model.PreviewPNG
	case 2:
		return model.PreviewJPEG
	default:
		return model.PreviewUnknown
	}
}

func previewTag(p model.Preview) byte {
	switch p.Kind {
	case model.PreviewNone:
		return 0
	case model.PreviewPNG:
		return 1
	case model.PreviewJPEG:
		return 2
	default:
		return p.Tag
	}
}

// writePreview is the inverse of readPreview.
func writePreview(bw *bstream.ByteWriter, p model.Preview) error {
	tag := previewTag(p)
	if err := bw.WriteUint8(tag); err != nil {
		return err
	}
	if p.Kind == model.PreviewNone {
		return nil
	}
	if err := bw.WriteUint32(uint32(len(p.Data))); err != nil {
		return err
	}
	if err := bw.WriteBytes(p.Data); err != nil {
		return err
	}
	return nil
}
