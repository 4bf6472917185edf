// Package version funnels a save's container version into a single
// capability record, consulted by both the reader and the writer
// instead of scattering `version >= N` comparisons through the codec
// (spec §9, "Version branching").
package version

// Capabilities describes which wire fields a given container version
// carries. The writer always uses Of(model.CurrentVersion); the reader
// derives one from the version it just read off the wire.
type Capabilities struct {
	Version uint16

	// HasGameVersion: container carries an i32 game_version right after
	// the container version (>= 8).
	HasGameVersion bool

	// HasHost: Header1 carries a distinct host user (>= 8).
	HasHost bool

	// HasSaveTime: Header1 carries 8 save-time bytes (>= 4).
	HasSaveTime bool

	// HasMaterialPalette: Header2 carries an explicit materials array
	// (>= 2); below this, DefaultMaterials is substituted.
	HasMaterialPalette bool

	// HasBrickOwners: Header2 carries a brick_owners array at all (>= 3).
	HasBrickOwners bool

	// OwnerBrickCount: each BrickOwner record also carries its brick
	// count (>= 8); below this it is read/written as a plain User.
	OwnerBrickCount bool

	// HasPhysicalMaterials: Header2 carries a physical_materials array
	// (>= 9).
	HasPhysicalMaterials bool

	// HasPreview: the plain preview byte/section is present at all
	// (>= 8).
	HasPreview bool

	// FourCollisionBits: bricks carry four independent collision bits
	// (>= 10); below this a single bit is broadcast to all four.
	FourCollisionBits bool

	// IndexedMaterial: material_index is a packed width field sized off
	// the material palette (>= 8); below this it is an optional
	// uint_packed gated by a presence bit.
	IndexedMaterial bool

	// HasPhysicalIndex: bricks carry a physical_index field (>= 9).
	HasPhysicalIndex bool

	// HasMaterialIntensity: bricks carry a material_intensity field
	// (>= 9).
	HasMaterialIntensity bool

	// RGBUniqueColor: a brick's unique color is 3 raw RGB bytes (>= 9);
	// below this it is 4 raw BGRA bytes.
	RGBUniqueColor bool

	// HasOwnerIndex: bricks carry an owner_index field (>= 3).
	HasOwnerIndex bool

	// HasComponents: the save carries a components section at all
	// (>= 8).
	HasComponents bool
}

// Of derives the capability record for a given container version.
func Of(v uint16) Capabilities {
	return Capabilities{
		Version:              v,
		HasGameVersion:       v >= 8,
		HasHost:              v >= 8,
		HasSaveTime:          v >= 4,
		HasMaterialPalette:   v >= 2,
		HasBrickOwners:       v >= 3,
		OwnerBrickCount:      v >= 8,
		HasPhysicalMaterials: v >= 9,
		HasPreview:           v >= 8,
		FourCollisionBits:    v >= 10,
		IndexedMaterial:      v >= 8,
		HasPhysicalIndex:     v >= 9,
		HasMaterialIntensity: v >= 9,
		RGBUniqueColor:       v >= 9,
		HasOwnerIndex:        v >= 3,
		HasComponents:        v >= 8,
	}
}
