package bstream

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/brsio/brs/model"
)

// ReadUnrealValue reads one component property value from the bit
// stream. The wire shape is entirely determined by typeName (the
// property's declared type, from its Component.Properties entry), not
// by a tag in the stream itself, per spec §4.7.
func (r *BitReader) ReadUnrealValue(typeName string) (model.UnrealType, error) {
	switch typeName {
	case "Class", "Object":
		s, err := r.ReadString()
		if err != nil {
			return model.UnrealType{}, err
		}
		return model.UnrealType{Kind: model.UnrealClass, Str: s}, nil

	case "String":
		s, err := r.ReadString()
		if err != nil {
			return model.UnrealType{}, err
		}
		return model.UnrealType{Kind: model.UnrealString, Str: s}, nil

	case "Boolean":
		b, err := r.ReadBit()
		if err != nil {
			return model.UnrealType{}, err
		}
		return model.UnrealType{Kind: model.UnrealBoolean, Bool: b}, nil

	case "Float":
		raw, err := r.ReadBytes(4)
		if err != nil {
			return model.UnrealType{}, err
		}
		f := math.Float32frombits(binary.LittleEndian.Uint32(raw))
		return model.UnrealType{Kind: model.UnrealFloat, Float: f}, nil

	case "Color":
		raw, err := r.ReadBytes(4)
		if err != nil {
			return model.UnrealType{}, err
		}
		c := model.ColorFromBGRA([4]byte(raw))
		return model.UnrealType{Kind: model.UnrealColor, Color: c}, nil

	case "Byte":
		raw, err := r.ReadBytes(1)
		if err != nil {
			return model.UnrealType{}, err
		}
		return model.UnrealType{Kind: model.UnrealByte, Byte: raw[0]}, nil

	case "Rotator":
		var rot [3]float32
		for i := range rot {
			raw, err := r.ReadBytes(4)
			if err != nil {
				return model.UnrealType{}, err
			}
			rot[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw))
		}
		return model.UnrealType{Kind: model.UnrealRotator, Rotator: rot}, nil

	default:
		return model.UnrealType{}, fmt.Errorf("bstream: unknown component property type %q", typeName)
	}
}

// WriteUnrealValue is the inverse of ReadUnrealValue.
func (w *BitWriter) WriteUnrealValue(v model.UnrealType) error {
	switch v.Kind {
	case model.UnrealClass, model.UnrealString:
		return w.WriteString(v.Str)

	case model.UnrealBoolean:
		w.WriteBit(v.Bool)
		return nil

	case model.UnrealFloat:
		var raw [4]byte
		binary.LittleEndian.PutUint32(raw[:], math.Float32bits(v.Float))
		w.WriteBytes(raw[:])
		return nil

	case model.UnrealColor:
		bgra := v.Color.BGRA()
		w.WriteBytes(bgra[:])
		return nil

	case model.UnrealByte:
		w.WriteBytes([]byte{v.Byte})
		return nil

	case model.UnrealRotator:
		for _, f := range v.Rotator {
			var raw [4]byte
			binary.LittleEndian.PutUint32(raw[:], math.Float32bits(f))
			w.WriteBytes(raw[:])
		}
		return nil

	default:
		return fmt.Errorf("bstream: unknown unreal value kind %d", v.Kind)
	}
}
