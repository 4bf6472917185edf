// Package octree indexes a save's bricks by position for spatial
// queries: which bricks fall within a region, and which chunk a given
// position belongs to. It is grounded on the original implementation's
// util/octree module, reworked here as a generic Go sparse octree over
// brsio/brs/model.Brick.
package octree

// ChunkSize is the edge length, in Brickadia units, of one octree
// chunk. Each chunk owns an independent octree root so that sparse,
// spread-out builds don't force allocation of a single octree spanning
// the save's full coordinate range.
const ChunkSize = 1024

// ChunkDepth is the number of times a chunk root subdivides to reach a
// unit-sized leaf octant: ChunkSize == 1<<ChunkDepth.
const ChunkDepth = 10

// Point is an integer coordinate in Brickadia units.
type Point struct {
	X, Y, Z int32
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Bounds is an axis-aligned inclusive-exclusive region: a point p is
// contained when Min.<=p.< for each axis.
type Bounds struct {
	Min, Max Point
}

// Contains reports whether p lies within b.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X < b.Max.X &&
		p.Y >= b.Min.Y && p.Y < b.Max.Y &&
		p.Z >= b.Min.Z && p.Z < b.Max.Z
}

// Intersects reports whether b and o share any volume.
func (b Bounds) Intersects(o Bounds) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X &&
		b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y &&
		b.Min.Z < o.Max.Z && b.Max.Z > o.Min.Z
}

// Side returns the edge length of b along axis 0 (x), 1 (y) or 2 (z).
func (b Bounds) Side(axis int) int32 {
	switch axis {
	case 0:
		return b.Max.X - b.Min.X
	case 1:
		return b.Max.Y - b.Min.Y
	default:
		return b.Max.Z - b.Min.Z
	}
}

// Covers reports whether o's volume lies entirely within b.
func (b Bounds) Covers(o Bounds) bool {
	return b.Min.X <= o.Min.X && b.Max.X >= o.Max.X &&
		b.Min.Y <= o.Min.Y && b.Max.Y >= o.Max.Y &&
		b.Min.Z <= o.Min.Z && b.Max.Z >= o.Max.Z
}

// chunkCoord floors v to the nearest multiple of ChunkSize.
func chunkCoord(v int32) int32 {
	if v >= 0 {
		return (v / ChunkSize) * ChunkSize
	}
	return -(((-v + ChunkSize - 1) / ChunkSize) * ChunkSize)
}

// ChunkOf returns the coordinate of the chunk p belongs to: the
// origin, in world units, of the 1024^3 cube containing p.
func ChunkOf(p Point) Point {
	return Point{chunkCoord(p.X), chunkCoord(p.Y), chunkCoord(p.Z)}
}
