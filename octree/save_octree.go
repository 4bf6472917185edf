package octree

import "github.com/brsio/brs/model"

// AxisSizeFunc returns a brick's half-extents (Brickadia stores brick
// dimensions as half-widths) along x, y and z. The octree itself has
// no notion of a brick asset's default footprint — only a procedural
// brick's model.Size carries one directly — so callers that need
// bounds for non-procedural bricks supply a lookup against their own
// asset catalogue.
type AxisSizeFunc func(model.Brick) (x, y, z int32)

// SaveOctree indexes a save's bricks by their bounding box, for the
// bricks_in, bounds_side and brick_side queries.
type SaveOctree struct {
	tree     *ChunkTree[int]
	bricks   []model.Brick
	sizeFunc AxisSizeFunc
}

// NewSaveOctree builds an index over bricks. sizeFunc resolves a
// brick's half-extents; pass a func that looks up Header2.BrickAssets
// defaults for bricks with model.SizeEmpty. Each brick is inserted by
// its full bounding box, position minus half-extents to position plus
// half-extents, not merely its center point.
func NewSaveOctree(bricks []model.Brick, sizeFunc AxisSizeFunc) *SaveOctree {
	tree := NewChunkTree[int]()
	for i, b := range bricks {
		hx, hy, hz := sizeFunc(b)
		min := Point{X: b.Position.X - hx, Y: b.Position.Y - hy, Z: b.Position.Z - hz}
		max := Point{X: b.Position.X + hx + 1, Y: b.Position.Y + hy + 1, Z: b.Position.Z + hz + 1}
		tree.Insert(Bounds{Min: min, Max: max}, i)
	}
	return &SaveOctree{tree: tree, bricks: bricks, sizeFunc: sizeFunc}
}

// BricksIn returns the index, into the slice NewSaveOctree was built
// from, of every brick whose bounding box overlaps region.
func (s *SaveOctree) BricksIn(region Bounds) []int {
	return s.tree.Query(region)
}

// BoundsSide returns region's edge length along axis (0=x, 1=y, 2=z).
func (s *SaveOctree) BoundsSide(region Bounds, axis int) int32 {
	return region.Side(axis)
}

// BrickSide returns the full (not half) extent of the brick at index
// idx along axis, via the SaveOctree's AxisSizeFunc.
func (s *SaveOctree) BrickSide(idx int, axis int) int32 {
	x, y, z := s.sizeFunc(s.bricks[idx])
	switch axis {
	case 0:
		return 2 * x
	case 1:
		return 2 * y
	default:
		return 2 * z
	}
}

// ChunkCount reports how many 1024^3 chunks the index currently spans.
func (s *SaveOctree) ChunkCount() int {
	return s.tree.Len()
}
