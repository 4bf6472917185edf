package brs

import (
	"github.com/brsio/brs/internal/bstream"
	"github.com/brsio/brs/model"
	"github.com/brsio/brs/model/version"
)

// readHeader2 decodes the Header2 section: the dedup palettes bricks
// index into. Saves older than version 2 carry no material palette at
// all (model.DefaultMaterials is substituted); saves older than
// version 3 carry no brick owners; saves older than version 9 carry no
// physical material palette.
func readHeader2(br *bstream.ByteReader, caps version.Capabilities) (model.Header2, error) {
	var h model.Header2
	var err error

	if h.Mods, err = bstream.ReadArray(br, (*bstream.ByteReader).ReadString); err != nil {
		return h, err
	}
	if h.BrickAssets, err = bstream.ReadArray(br, (*bstream.ByteReader).ReadString); err != nil {
		return h, err
	}
	if h.Colors, err = bstream.ReadArray(br, bstream.ReadColorBGRA); err != nil {
		return h, err
	}

	if caps.HasMaterialPalette {
		if h.Materials, err = bstream.ReadArray(br, (*bstream.ByteReader).ReadString); err != nil {
			return h, err
		}
	} else {
		h.Materials = append([]string(nil), model.DefaultMaterials...)
	}

	if caps.HasBrickOwners {
		h.BrickOwners, err = bstream.ReadArray(br, func(br *bstream.ByteReader) (model.BrickOwner, error) {
			return readBrickOwner(br, caps)
		})
		if err != nil {
			return h, err
		}
	}

	if caps.HasPhysicalMaterials {
		if h.PhysicalMaterials, err = bstream.ReadArray(br, (*bstream.ByteReader).ReadString); err != nil {
			return h, err
		}
	}

	return h, nil
}

func readBrickOwner(br *bstream.ByteReader, caps version.Capabilities) (model.BrickOwner, error) {
	id, err := br.ReadUUID()
	if err != nil {
		return model.BrickOwner{}, err
	}
	name, err := br.ReadString()
	if err != nil {
		return model.BrickOwner{}, err
	}
	if caps.OwnerBrickCount {
		bricks, err := br.ReadUint32()
		if err != nil {
			return model.BrickOwner{}, err
		}
		return model.BrickOwner{Name: name, ID: id, Bricks: bricks}, nil
	}
	return model.BrickOwnerFromUser(model.User{Name: name, ID: id}), nil
}

// writeHeader2 is the inverse of readHeader2, always at the current
// container version's capabilities.
func writeHeader2(bw *bstream.ByteWriter, h model.Header2) error {
	if err := bstream.WriteArray(bw, h.Mods, (*bstream.ByteWriter).WriteString); err != nil {
		return err
	}
	if err := bstream.WriteArray(bw, h.BrickAssets, (*bstream.ByteWriter).WriteString); err != nil {
		return err
	}
	if err := bstream.WriteArray(bw, h.Colors, bstream.WriteColorBGRA); err != nil {
		return err
	}
	if err := bstream.WriteArray(bw, h.Materials, (*bstream.ByteWriter).WriteString); err != nil {
		return err
	}
	if err := bstream.WriteArray(bw, h.BrickOwners, writeBrickOwner); err != nil {
		return err
	}
	return bstream.WriteArray(bw, h.PhysicalMaterials, (*bstream.ByteWriter).WriteString)
}

func writeBrickOwner(bw *bstream.ByteWriter, o model.BrickOwner) error {
	if err := bw.WriteUUID(o.ID); err != nil {
		return err
	}
	if err := bw.WriteString(o.Name); err != nil {
		return err
	}
	return bw.WriteUint32(o.Bricks)
}
