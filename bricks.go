package brs

import (
	"bytes"
	"fmt"

	"github.com/brsio/brs/internal/bstream"
	"github.com/brsio/brs/model"
	"github.com/brsio/brs/model/version"
)

// readBricks decodes the Bricks section's bit-packed stream. It reads
// bricks until either the header's declared brick count is reached or
// the underlying buffer is exhausted, whichever comes first, so a save
// whose declared count exceeds the bricks actually stored decodes the
// bricks that are there. A declared count of 0 yields no bricks.
func readBricks(payload []byte, caps version.Capabilities, header1 model.Header1, header2 model.Header2) ([]model.Brick, error) {
	br := bstream.NewBitReader(bytes.NewReader(payload))

	assetCount := len(header2.BrickAssets)
	colorCount := len(header2.Colors)
	materialCount := len(header2.Materials)

	bricks := make([]model.Brick, 0, min(int(header1.BrickCount), maxBrickCount))
	for {
		if len(bricks) == int(header1.BrickCount) {
			break
		}
		if br.Len() == 0 {
			break
		}

		b, err := readBrick(br, caps, assetCount, colorCount, materialCount)
		if err != nil {
			return nil, fmt.Errorf("brick %d: %w", len(bricks), err)
		}
		bricks = append(bricks, b)
	}
	return bricks, nil
}

func readBrick(br *bstream.BitReader, caps version.Capabilities, assetCount, colorCount, materialCount int) (model.Brick, error) {
	b := model.NewBrick()

	assetIndex, err := br.ReadUint(uint32(max(assetCount, 2)))
	if err != nil {
		return b, fmt.Errorf("asset index: %w", err)
	}
	b.AssetNameIndex = assetIndex

	hasSize, err := br.ReadBit()
	if err != nil {
		return b, fmt.Errorf("size presence: %w", err)
	}
	if hasSize {
		x, err := br.ReadUintPacked()
		if err != nil {
			return b, fmt.Errorf("size.x: %w", err)
		}
		y, err := br.ReadUintPacked()
		if err != nil {
			return b, fmt.Errorf("size.y: %w", err)
		}
		z, err := br.ReadUintPacked()
		if err != nil {
			return b, fmt.Errorf("size.z: %w", err)
		}
		b.Size = model.Size{Kind: model.SizeProcedural, X: x, Y: y, Z: z}
	}

	px, err := br.ReadIntPacked()
	if err != nil {
		return b, fmt.Errorf("position.x: %w", err)
	}
	py, err := br.ReadIntPacked()
	if err != nil {
		return b, fmt.Errorf("position.y: %w", err)
	}
	pz, err := br.ReadIntPacked()
	if err != nil {
		return b, fmt.Errorf("position.z: %w", err)
	}
	b.Position = model.Position{X: px, Y: py, Z: pz}

	orientation, err := br.ReadUint(24)
	if err != nil {
		return b, fmt.Errorf("orientation: %w", err)
	}
	b.Direction, b.Rotation = model.SplitOrientation(orientation)

	if caps.FourCollisionBits {
		player, err := br.ReadBit()
		if err != nil {
			return b, err
		}
		weapon, err := br.ReadBit()
		if err != nil {
			return b, err
		}
		interaction, err := br.ReadBit()
		if err != nil {
			return b, err
		}
		tool, err := br.ReadBit()
		if err != nil {
			return b, err
		}
		b.Collision = model.Collision{Player: player, Weapon: weapon, Interaction: interaction, Tool: tool}
	} else {
		bit, err := br.ReadBit()
		if err != nil {
			return b, err
		}
		b.Collision = model.CollisionForAll(bit)
	}

	visible, err := br.ReadBit()
	if err != nil {
		return b, fmt.Errorf("visibility: %w", err)
	}
	b.Visibility = visible

	if caps.IndexedMaterial {
		m, err := br.ReadUint(uint32(max(materialCount, 1)))
		if err != nil {
			return b, fmt.Errorf("material index: %w", err)
		}
		b.MaterialIndex = m
	} else {
		has, err := br.ReadBit()
		if err != nil {
			return b, err
		}
		if has {
			m, err := br.ReadUintPacked()
			if err != nil {
				return b, fmt.Errorf("material index: %w", err)
			}
			b.MaterialIndex = m
		} else {
			b.MaterialIndex = 1
		}
	}

	if caps.HasPhysicalIndex {
		pIdx, err := br.ReadUintPacked()
		if err != nil {
			return b, fmt.Errorf("physical index: %w", err)
		}
		b.PhysicalIndex = pIdx
	}

	if caps.HasMaterialIntensity {
		intensity, err := br.ReadUint(11)
		if err != nil {
			return b, fmt.Errorf("material intensity: %w", err)
		}
		b.MaterialIntensity = intensity
	}

	unique, err := br.ReadBit()
	if err != nil {
		return b, fmt.Errorf("color presence: %w", err)
	}
	if unique {
		if caps.RGBUniqueColor {
			raw, err := br.ReadBytes(3)
			if err != nil {
				return b, fmt.Errorf("color: %w", err)
			}
			b.Color = model.BrickColor{Kind: model.BrickColorUnique, Color: model.ColorFromRGB([3]byte(raw))}
		} else {
			raw, err := br.ReadBytes(4)
			if err != nil {
				return b, fmt.Errorf("color: %w", err)
			}
			b.Color = model.BrickColor{Kind: model.BrickColorUnique, Color: model.ColorFromBGRA([4]byte(raw))}
		}
	} else {
		idx, err := br.ReadUint(uint32(max(colorCount, 1)))
		if err != nil {
			return b, fmt.Errorf("color index: %w", err)
		}
		b.Color = model.BrickColor{Kind: model.BrickColorIndex, Index: idx}
	}

	if caps.HasOwnerIndex {
		owner, err := br.ReadUintPacked()
		if err != nil {
			return b, fmt.Errorf("owner index: %w", err)
		}
		b.OwnerIndex = owner
	}

	return b, nil
}

// writeBricks is the inverse of readBricks. colorCount and
// materialCount must be the written Header2's palette lengths: they
// size the fixed-width index fields, and must match what the reader
// will derive from that same header or the bit widths desynchronize.
func writeBricks(bricks []model.Brick, caps version.Capabilities, assetCount, colorCount, materialCount int) ([]byte, error) {
	var buf bytes.Buffer
	bw := bstream.NewBitWriter(&buf)

	for i, b := range bricks {
		if err := writeBrick(bw, caps, b, assetCount, colorCount, materialCount); err != nil {
			return nil, fmt.Errorf("brick %d: %w", i, err)
		}
	}
	bw.ByteAlign()
	return buf.Bytes(), nil
}

func writeBrick(bw *bstream.BitWriter, caps version.Capabilities, b model.Brick, assetCount, colorCount, materialCount int) error {
	if err := bw.WriteUint(b.AssetNameIndex, uint32(max(assetCount, 2))); err != nil {
		return fmt.Errorf("asset index: %w", err)
	}

	hasSize := b.Size.Kind == model.SizeProcedural
	bw.WriteBit(hasSize)
	if hasSize {
		bw.WriteUintPacked(b.Size.X)
		bw.WriteUintPacked(b.Size.Y)
		bw.WriteUintPacked(b.Size.Z)
	}

	bw.WriteIntPacked(b.Position.X)
	bw.WriteIntPacked(b.Position.Y)
	bw.WriteIntPacked(b.Position.Z)

	if err := bw.WriteUint(model.Orientation(b.Direction, b.Rotation), 24); err != nil {
		return fmt.Errorf("orientation: %w", err)
	}

	if caps.FourCollisionBits {
		bw.WriteBit(b.Collision.Player)
		bw.WriteBit(b.Collision.Weapon)
		bw.WriteBit(b.Collision.Interaction)
		bw.WriteBit(b.Collision.Tool)
	} else {
		bw.WriteBit(b.Collision.Player || b.Collision.Weapon || b.Collision.Interaction || b.Collision.Tool)
	}

	bw.WriteBit(b.Visibility)

	if caps.IndexedMaterial {
		if err := bw.WriteUint(b.MaterialIndex, uint32(max(materialCount, 1))); err != nil {
			return fmt.Errorf("material index: %w", err)
		}
	} else {
		has := b.MaterialIndex != 1
		bw.WriteBit(has)
		if has {
			bw.WriteUintPacked(b.MaterialIndex)
		}
	}

	if caps.HasPhysicalIndex {
		bw.WriteUintPacked(b.PhysicalIndex)
	}
	if caps.HasMaterialIntensity {
		if err := bw.WriteUint(b.MaterialIntensity, 11); err != nil {
			return fmt.Errorf("material intensity: %w", err)
		}
	}

	bw.WriteBit(b.Color.Kind == model.BrickColorUnique)
	if b.Color.Kind == model.BrickColorUnique {
		if caps.RGBUniqueColor {
			bw.WriteBytes([]byte{b.Color.Color.R, b.Color.Color.G, b.Color.Color.B})
		} else {
			bgra := b.Color.Color.BGRA()
			bw.WriteBytes(bgra[:])
		}
	} else {
		if err := bw.WriteUint(b.Color.Index, uint32(max(colorCount, 1))); err != nil {
			return fmt.Errorf("color index: %w", err)
		}
	}

	if caps.HasOwnerIndex {
		bw.WriteUintPacked(b.OwnerIndex)
	}

	return nil
}
