package model

import "fmt"

// Validate checks the cross-reference invariants from spec §3 that the
// codec itself cannot enforce mid-stream (they depend on the fully
// decoded save). A SaveOctree also relies on these holding before it
// indexes brick bounds.
func (s *SaveData) Validate() error {
	assetCount := len(s.Header2.BrickAssets)
	colorCount := len(s.Header2.Colors)
	materialCount := len(s.Header2.Materials)
	physicalCount := len(s.Header2.PhysicalMaterials)

	for i, b := range s.Bricks {
		if int(b.AssetNameIndex) >= assetCount {
			return fmt.Errorf("model: brick %d: asset index %d out of range (%d assets)", i, b.AssetNameIndex, assetCount)
		}
		if b.Color.Kind == BrickColorIndex && int(b.Color.Index) >= colorCount {
			return fmt.Errorf("model: brick %d: color index %d out of range (%d colors)", i, b.Color.Index, colorCount)
		}
		if int(b.MaterialIndex) >= materialCount {
			return fmt.Errorf("model: brick %d: material index %d out of range (%d materials)", i, b.MaterialIndex, materialCount)
		}
		if int(b.PhysicalIndex) >= physicalCount {
			return fmt.Errorf("model: brick %d: physical index %d out of range (%d physical materials)", i, b.PhysicalIndex, physicalCount)
		}
		if b.MaterialIntensity >= 11 {
			return fmt.Errorf("model: brick %d: material intensity %d out of range", i, b.MaterialIntensity)
		}
		if Orientation(b.Direction, b.Rotation) >= 24 {
			return fmt.Errorf("model: brick %d: orientation out of range", i)
		}
	}

	for name, c := range s.Components {
		for _, idx := range c.BrickIndices {
			if int(idx) >= len(s.Bricks) {
				return fmt.Errorf("model: component %q: brick index %d out of range (%d bricks)", name, idx, len(s.Bricks))
			}
			props, ok := s.Bricks[idx].Components[name]
			if !ok {
				return fmt.Errorf("model: component %q: brick %d has no matching component entry", name, idx)
			}
			if len(props) != len(c.Properties) {
				return fmt.Errorf("model: component %q: brick %d property count mismatch", name, idx)
			}
			for _, def := range c.Properties {
				v, ok := props[def.Name]
				if !ok {
					return fmt.Errorf("model: component %q: brick %d missing property %q", name, idx, def.Name)
				}
				if !v.matchesTypeName(def.Type) {
					return fmt.Errorf("model: component %q: brick %d property %q has wrong type for %q", name, idx, def.Name, def.Type)
				}
			}
		}
	}

	return nil
}

// matchesTypeName reports whether the value's tag agrees with a
// declared UnrealType type name, per the table in spec §4.7.
func (u UnrealType) matchesTypeName(typeName string) bool {
	switch typeName {
	case "Class", "Object":
		return u.Kind == UnrealClass
	case "String":
		return u.Kind == UnrealString
	case "Boolean":
		return u.Kind == UnrealBoolean
	case "Float":
		return u.Kind == UnrealFloat
	case "Color":
		return u.Kind == UnrealColor
	case "Byte":
		return u.Kind == UnrealByte
	case "Rotator":
		return u.Kind == UnrealRotator
	default:
		return false
	}
}
