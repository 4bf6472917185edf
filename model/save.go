// Package model defines the in-memory representation of a Brickadia save
// file: the two headers, the preview thumbnail, the brick list and the
// components attached to it.
//
// Values in this package are plain owned trees. Decoding (package brs)
// constructs them; encoding consumes them. Nothing in this package knows
// how to read or write bytes.
package model

import (
	"github.com/google/uuid"
)

// CurrentVersion is the container version this module always writes.
// The codec never writes an older version; it reads every version back
// to 1.
const CurrentVersion uint16 = 10

// SaveData is every part of a save file.
type SaveData struct {
	// Version is the container version the save was read at. Readers set
	// this; writers ignore it and always emit CurrentVersion.
	Version uint16

	// GameVersion is the Brickadia build the save was written by. Zero on
	// saves older than container version 8, which did not record it.
	GameVersion int32

	Header1 Header1
	Header2 Header2

	// Preview is the save's embedded thumbnail, if any.
	Preview Preview

	// Bricks is the ordered list of bricks placed in the save.
	Bricks []Brick

	// Components maps a component name (e.g. "BCD_Interact") to its
	// schema. The per-brick property values live on each Brick, keyed by
	// the same component name.
	Components map[string]Component
}

// NewSaveData returns an empty save at CurrentVersion, matching the
// defaults a fresh scene would have.
func NewSaveData() SaveData {
	return SaveData{
		Version:    CurrentVersion,
		Header1:    NewHeader1(),
		Header2:    NewHeader2(),
		Components: map[string]Component{},
	}
}

// Header1 is the first compressed section of a save: map name, author,
// description and the advisory brick count.
type Header1 struct {
	Map         string
	Description string
	Author      User

	// Host is the server host that saved the file, recorded since
	// container version 8. Nil on older saves; the reader always sets it
	// on version 8 and later.
	Host *User

	// SaveTime is 8 opaque bytes; this package does not interpret them
	// (see spec's Open Questions — datetime conversion is a caller
	// concern).
	SaveTime [8]byte

	// BrickCount is the brick count as stored in the header. It is
	// advisory on read; the writer always re-derives it from
	// len(SaveData.Bricks).
	BrickCount uint32
}

// NewHeader1 returns the header a brand new save would have.
func NewHeader1() Header1 {
	return Header1{Map: "Unknown", Author: NewUser()}
}

// Header2 is the second compressed section of a save: the dedup
// palettes (mods, brick assets, colors, materials, physical materials,
// owners) that bricks index into.
type Header2 struct {
	Mods              []string
	BrickAssets       []string
	Colors            []Color
	Materials         []string
	BrickOwners       []BrickOwner
	PhysicalMaterials []string
}

// NewHeader2 returns the palette a brand new save would have: one
// default brick asset, one default material, one default physical
// material.
func NewHeader2() Header2 {
	return Header2{
		BrickAssets:       []string{"PB_DefaultBrick"},
		Materials:         []string{"BMC_Plastic"},
		PhysicalMaterials: []string{"BPMC_Default"},
	}
}

// DefaultMaterials is substituted for Header2.Materials on saves older
// than container version 2, which carried no material palette at all.
var DefaultMaterials = []string{
	"BMC_Hologram", "BMC_Plastic", "BMC_Glow", "BMC_Metallic", "BMC_Glass",
}

// User identifies a Brickadia account.
type User struct {
	Name string
	ID   uuid.UUID
}

// NewUser returns the placeholder user a brand new save would have.
func NewUser() User {
	return User{Name: "Unknown"}
}

// BrickOwner is a User plus the number of bricks attributed to them in
// the save, used by Brick.OwnerIndex (1-based; 0 means PUBLIC).
type BrickOwner struct {
	Name   string
	ID     uuid.UUID
	Bricks uint32
}

// BrickOwnerFromUser builds a BrickOwner from a User with no bricks attributed
// yet, used by the reader when synthesizing an owner record on saves
// older than container version 8 (which recorded owners without a
// brick count).
func BrickOwnerFromUser(u User) BrickOwner {
	return BrickOwner{Name: u.Name, ID: u.ID}
}

// PreviewKind tags the variant of Preview.
type PreviewKind uint8

const (
	PreviewNone PreviewKind = iota
	PreviewPNG
	PreviewJPEG
	PreviewUnknown
)

// Preview is the save's optional embedded thumbnail.
type Preview struct {
	Kind PreviewKind

	// Tag is the raw wire tag byte. Only meaningful when Kind is
	// PreviewUnknown; PNG and JPEG always use their documented tags (1
	// and 2).
	Tag byte

	Data []byte
}

// Color is a straight RGBA color. The wire format stores most color
// fields BGRA (and sometimes RGB-only); conversion happens at the
// codec boundary, not here.
type Color struct {
	R, G, B, A uint8
}

// ColorFromBGRA builds a Color from a 4-byte BGRA wire value.
func ColorFromBGRA(b [4]byte) Color {
	return Color{R: b[2], G: b[1], B: b[0], A: b[3]}
}

// ColorFromRGB builds a Color from a 3-byte RGB wire value with alpha forced
// to opaque.
func ColorFromRGB(b [3]byte) Color {
	return Color{R: b[0], G: b[1], B: b[2], A: 255}
}

// BGRA returns the wire BGRA encoding of the color.
func (c Color) BGRA() [4]byte {
	return [4]byte{c.B, c.G, c.R, c.A}
}

// SizeKind tags the variant of Size.
type SizeKind uint8

const (
	SizeEmpty SizeKind = iota
	SizeProcedural
)

// Size is a brick's procedural dimensions. Non-procedural (static mesh)
// bricks carry SizeEmpty.
type Size struct {
	Kind    SizeKind
	X, Y, Z uint32
}

// BrickColorKind tags the variant of BrickColor.
type BrickColorKind uint8

const (
	BrickColorIndex BrickColorKind = iota
	BrickColorUnique
)

// BrickColor is either an index into Header2.Colors or a color unique
// to one brick.
type BrickColor struct {
	Kind  BrickColorKind
	Index uint32
	Color Color
}

// Collision is a brick's four independent collision channels.
type Collision struct {
	Player, Weapon, Interaction, Tool bool
}

// CollisionForAll returns a Collision with all four channels set to the
// same state, used to expand the single collision bit carried by saves
// older than container version 10.
func CollisionForAll(state bool) Collision {
	return Collision{Player: state, Weapon: state, Interaction: state, Tool: state}
}

// Direction is a brick's facing axis.
type Direction uint8

const (
	XPositive Direction = iota
	XNegative
	YPositive
	YNegative
	ZPositive
	ZNegative
)

// Rotation is a brick's rotation about its Direction axis.
type Rotation uint8

const (
	Deg0 Rotation = iota
	Deg90
	Deg180
	Deg270
)

// Orientation packs Direction and Rotation into the single wire value
// bricks store, per spec invariant 7 (orientation < 24).
func Orientation(d Direction, r Rotation) uint32 {
	return (uint32(d) << 2) | uint32(r)
}

// SplitOrientation is the inverse of Orientation.
func SplitOrientation(o uint32) (Direction, Rotation) {
	return Direction((o >> 2) % 6), Rotation(o & 3)
}

// Position is a brick's location, in Brickadia units.
type Position struct {
	X, Y, Z int32
}

// Brick is a single placed brick, and the properties of any components
// attached to it.
type Brick struct {
	AssetNameIndex uint32
	Size           Size
	Position       Position
	Direction      Direction
	Rotation       Rotation
	Collision      Collision
	Visibility     bool
	MaterialIndex  uint32
	PhysicalIndex  uint32

	// MaterialIntensity is < 11 (spec invariant 6).
	MaterialIntensity uint32

	Color BrickColor

	// OwnerIndex is 1-based into Header2.BrickOwners; 0 means PUBLIC.
	OwnerIndex uint32

	// Components maps a component name to that component's per-brick
	// property values, keyed by property name.
	Components map[string]map[string]UnrealType
}

// NewBrick returns the brick a freshly placed default brick would have.
// Its color is a unique opaque white, so it needs no Header2.Colors
// entry.
func NewBrick() Brick {
	return Brick{
		Direction:         ZPositive,
		Collision:         CollisionForAll(true),
		Visibility:        true,
		MaterialIntensity: 5,
		Color:             BrickColor{Kind: BrickColorUnique, Color: Color{R: 255, G: 255, B: 255, A: 255}},
		Components:        map[string]map[string]UnrealType{},
	}
}

// PropertyDef names one property in a Component's schema and the
// UnrealType tag its values decode as. Component.Properties is an
// ordered slice of these, not a map: property iteration order is wire
// order, and the writer must reproduce it exactly (spec §8, testable
// property 1e).
type PropertyDef struct {
	Name string
	Type string
}

// Component is a schema shared by every brick that carries it: a
// version number, the bricks it decorates, and the ordered list of
// properties each of those bricks supplies a value for.
type Component struct {
	Version      int32
	BrickIndices []uint32
	Properties   []PropertyDef
}

// UnrealTypeKind tags the variant of UnrealType.
type UnrealTypeKind uint8

const (
	UnrealClass UnrealTypeKind = iota
	UnrealString
	UnrealBoolean
	UnrealFloat
	UnrealColor
	UnrealByte
	UnrealRotator
)

// UnrealType is a dynamically-typed component property value. Its wire
// shape is determined by the property's declared type name (see
// internal/bstream's unreal type codec), not by a tag byte in the
// stream.
type UnrealType struct {
	Kind    UnrealTypeKind
	Str     string  // Class, String
	Bool    bool    // Boolean
	Float   float32 // Float
	Color   Color   // Color
	Byte    byte    // Byte
	Rotator [3]float32
}
