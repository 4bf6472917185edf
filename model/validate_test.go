package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateEmptySave(t *testing.T) {
	s := NewSaveData()
	require.NoError(t, s.Validate())
}

func TestValidateRejectsOutOfRangeAssetIndex(t *testing.T) {
	s := NewSaveData()
	b := NewBrick()
	b.AssetNameIndex = 5
	s.Bricks = append(s.Bricks, b)
	require.Error(t, s.Validate())
}

func TestValidateRejectsOutOfRangeMaterialIntensity(t *testing.T) {
	s := NewSaveData()
	b := NewBrick()
	b.MaterialIntensity = 11
	s.Bricks = append(s.Bricks, b)
	require.Error(t, s.Validate())
}

func TestValidateRejectsOrientationOutOfRange(t *testing.T) {
	require.Less(t, Orientation(ZNegative, Deg270), uint32(24))

	s := NewSaveData()
	b := NewBrick()
	b.Direction = Direction(6)
	s.Bricks = append(s.Bricks, b)
	require.Error(t, s.Validate())
}

func TestValidateComponentBrickIndexOutOfRange(t *testing.T) {
	s := NewSaveData()
	s.Components["BCD_Interact"] = Component{BrickIndices: []uint32{0}}
	require.Error(t, s.Validate())
}

func TestValidateComponentPropertyMismatch(t *testing.T) {
	s := NewSaveData()
	b := NewBrick()
	b.Components["BCD_Interact"] = map[string]UnrealType{}
	s.Bricks = append(s.Bricks, b)
	s.Components["BCD_Interact"] = Component{
		BrickIndices: []uint32{0},
		Properties:   []PropertyDef{{Name: "bInteractEnabled", Type: "Boolean"}},
	}
	require.Error(t, s.Validate())
}

func TestValidateComponentRoundTripOK(t *testing.T) {
	s := NewSaveData()
	b := NewBrick()
	b.Components["BCD_Interact"] = map[string]UnrealType{
		"bInteractEnabled": {Kind: UnrealBoolean, Bool: true},
	}
	s.Bricks = append(s.Bricks, b)
	s.Components["BCD_Interact"] = Component{
		BrickIndices: []uint32{0},
		Properties:   []PropertyDef{{Name: "bInteractEnabled", Type: "Boolean"}},
	}
	require.NoError(t, s.Validate())
}

func TestOrientationSplitRoundTrip(t *testing.T) {
	for d := XPositive; d <= ZNegative; d++ {
		for r := Deg0; r <= Deg270; r++ {
			o := Orientation(d, r)
			gotD, gotR := SplitOrientation(o)
			require.Equal(t, d, gotD)
			require.Equal(t, r, gotR)
		}
	}
}

func TestColorBGRARoundTrip(t *testing.T) {
	c := Color{R: 10, G: 20, B: 30, A: 40}
	require.Equal(t, c, ColorFromBGRA(c.BGRA()))
}
