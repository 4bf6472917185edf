package brs

import (
	"bytes"
	"fmt"

	"github.com/brsio/brs/internal/bstream"
	"github.com/brsio/brs/model"
	"github.com/brsio/brs/model/version"
)

// readComponents decodes the Components section, present since version
// 8. The section is framed at the byte level — a count, then for each
// component its name and the byte length of its private sub-stream —
// so a reader that doesn't recognize a component can skip its
// sub-stream rather than fail the whole save. Inside the sub-stream,
// everything is bit-packed: the component's schema version, the
// ordered list of bricks it decorates, its ordered property schema,
// and then every decorated brick's property values in brick order,
// property order.
func readComponents(payload []byte, caps version.Capabilities, bricks []model.Brick) (map[string]model.Component, error) {
	components := map[string]model.Component{}
	if !caps.HasComponents {
		return components, nil
	}

	br := bstream.NewByteReader(bytes.NewReader(payload))
	count, err := br.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("component count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("negative component count %d", count)
	}

	for i := int32(0); i < count; i++ {
		name, err := br.ReadString()
		if err != nil {
			return nil, fmt.Errorf("component %d name: %w", i, err)
		}
		subLen, err := br.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("component %q sub-stream length: %w", name, err)
		}
		sub, err := br.ReadBytes(int(subLen))
		if err != nil {
			return nil, fmt.Errorf("component %q sub-stream: %w", name, err)
		}

		comp, err := decodeComponent(sub, bricks, name)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", name, err)
		}
		components[name] = comp
	}

	return components, nil
}

func decodeComponent(sub []byte, bricks []model.Brick, name string) (model.Component, error) {
	bitr := bstream.NewBitReader(bytes.NewReader(sub))

	versionBytes, err := bitr.ReadBytes(4)
	if err != nil {
		return model.Component{}, fmt.Errorf("version: %w", err)
	}
	compVersion := int32(uint32(versionBytes[0]) | uint32(versionBytes[1])<<8 | uint32(versionBytes[2])<<16 | uint32(versionBytes[3])<<24)

	indexCount, err := bitr.ReadUintPacked()
	if err != nil {
		return model.Component{}, fmt.Errorf("brick index count: %w", err)
	}
	indices := make([]uint32, indexCount)
	for i := range indices {
		idx, err := bitr.ReadUintPacked()
		if err != nil {
			return model.Component{}, fmt.Errorf("brick index %d: %w", i, err)
		}
		if int(idx) >= len(bricks) {
			return model.Component{}, &ComponentBrickError{Component: name, BrickIndex: idx, Err: fmt.Errorf("index out of range (%d bricks)", len(bricks))}
		}
		indices[i] = idx
	}

	propCount, err := bitr.ReadUintPacked()
	if err != nil {
		return model.Component{}, fmt.Errorf("property count: %w", err)
	}
	props := make([]model.PropertyDef, propCount)
	for i := range props {
		pname, err := bitr.ReadString()
		if err != nil {
			return model.Component{}, fmt.Errorf("property %d name: %w", i, err)
		}
		ptype, err := bitr.ReadString()
		if err != nil {
			return model.Component{}, fmt.Errorf("property %d type: %w", i, err)
		}
		props[i] = model.PropertyDef{Name: pname, Type: ptype}
	}

	for _, idx := range indices {
		values := make(map[string]model.UnrealType, len(props))
		for _, def := range props {
			v, err := bitr.ReadUnrealValue(def.Type)
			if err != nil {
				return model.Component{}, &ComponentBrickError{Component: name, BrickIndex: idx, Err: fmt.Errorf("property %q: %w", def.Name, err)}
			}
			values[def.Name] = v
		}
		if bricks[idx].Components == nil {
			bricks[idx].Components = map[string]map[string]model.UnrealType{}
		}
		bricks[idx].Components[name] = values
	}

	return model.Component{Version: compVersion, BrickIndices: indices, Properties: props}, nil
}

// writeComponents is the inverse of readComponents.
func writeComponents(components map[string]model.Component, names []string, bricks []model.Brick) ([]byte, error) {
	var out bytes.Buffer
	bw := bstream.NewByteWriter(&out)

	if err := bw.WriteInt32(int32(len(names))); err != nil {
		return nil, err
	}

	for _, name := range names {
		comp := components[name]
		sub, err := encodeComponent(comp, bricks, name)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", name, err)
		}
		if err := bw.WriteString(name); err != nil {
			return nil, err
		}
		if err := bw.WriteUint32(uint32(len(sub))); err != nil {
			return nil, err
		}
		if err := bw.WriteBytes(sub); err != nil {
			return nil, err
		}
	}

	return out.Bytes(), nil
}

func encodeComponent(comp model.Component, bricks []model.Brick, name string) ([]byte, error) {
	var buf bytes.Buffer
	bitw := bstream.NewBitWriter(&buf)

	u := uint32(comp.Version)
	bitw.WriteBytes([]byte{byte(u), byte(u >> 8), byte(u >> 16), byte(u >> 24)})

	bitw.WriteUintPacked(uint32(len(comp.BrickIndices)))
	for _, idx := range comp.BrickIndices {
		bitw.WriteUintPacked(idx)
	}

	bitw.WriteUintPacked(uint32(len(comp.Properties)))
	for _, def := range comp.Properties {
		if err := bitw.WriteString(def.Name); err != nil {
			return nil, fmt.Errorf("property %q name: %w", def.Name, err)
		}
		if err := bitw.WriteString(def.Type); err != nil {
			return nil, fmt.Errorf("property %q type: %w", def.Name, err)
		}
	}

	for _, idx := range comp.BrickIndices {
		values := bricks[idx].Components[name]
		for _, def := range comp.Properties {
			v, ok := values[def.Name]
			if !ok {
				return nil, fmt.Errorf("brick %d missing value for property %q", idx, def.Name)
			}
			if err := bitw.WriteUnrealValue(v); err != nil {
				return nil, fmt.Errorf("brick %d property %q: %w", idx, def.Name, err)
			}
		}
	}

	bitw.ByteAlign()
	return buf.Bytes(), nil
}
