package octree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brsio/brs/model"
)

func bricksAt(points ...Point) []model.Brick {
	bricks := make([]model.Brick, len(points))
	for i, p := range points {
		bricks[i] = model.NewBrick()
		bricks[i].Position = model.Position{X: p.X, Y: p.Y, Z: p.Z}
	}
	return bricks
}

func TestSaveOctreeBricksIn(t *testing.T) {
	bricks := bricksAt(
		Point{0, 0, 0},
		Point{5, 5, 5},
		Point{100, 100, 100},
	)
	idx := NewSaveOctree(bricks, func(model.Brick) (int32, int32, int32) { return 0, 0, 0 })

	found := idx.BricksIn(Bounds{Min: Point{-1, -1, -1}, Max: Point{10, 10, 10}})
	require.ElementsMatch(t, []int{0, 1}, found)

	all := idx.BricksIn(Bounds{Min: Point{-1000, -1000, -1000}, Max: Point{1000, 1000, 1000}})
	require.ElementsMatch(t, []int{0, 1, 2}, all)
}

func TestSaveOctreeBricksInUsesFullBoundingBox(t *testing.T) {
	// A brick centered well outside the query region still overlaps it
	// once its half-extents are taken into account.
	bricks := bricksAt(Point{50, 0, 0})
	idx := NewSaveOctree(bricks, func(model.Brick) (int32, int32, int32) { return 60, 0, 0 })

	found := idx.BricksIn(Bounds{Min: Point{-5, -5, -5}, Max: Point{5, 5, 5}})
	require.ElementsMatch(t, []int{0}, found)

	none := idx.BricksIn(Bounds{Min: Point{200, 200, 200}, Max: Point{205, 205, 205}})
	require.Empty(t, none)
}

func TestSaveOctreeAcrossChunks(t *testing.T) {
	bricks := bricksAt(
		Point{0, 0, 0},
		Point{ChunkSize + 5, ChunkSize + 5, ChunkSize + 5},
	)
	idx := NewSaveOctree(bricks, func(model.Brick) (int32, int32, int32) { return 0, 0, 0 })
	require.Equal(t, 2, idx.ChunkCount())

	found := idx.BricksIn(Bounds{Min: Point{-10, -10, -10}, Max: Point{ChunkSize * 2, ChunkSize * 2, ChunkSize * 2}})
	require.ElementsMatch(t, []int{0, 1}, found)
}

func TestSaveOctreeBrickSide(t *testing.T) {
	bricks := bricksAt(Point{0, 0, 0})
	idx := NewSaveOctree(bricks, func(model.Brick) (int32, int32, int32) { return 5, 10, 15 })
	require.Equal(t, int32(10), idx.BrickSide(0, 0))
	require.Equal(t, int32(20), idx.BrickSide(0, 1))
	require.Equal(t, int32(30), idx.BrickSide(0, 2))
}

func TestBoundsContainsAndIntersects(t *testing.T) {
	b := Bounds{Min: Point{0, 0, 0}, Max: Point{10, 10, 10}}
	require.True(t, b.Contains(Point{5, 5, 5}))
	require.False(t, b.Contains(Point{10, 10, 10}))
	require.True(t, b.Intersects(Bounds{Min: Point{5, 5, 5}, Max: Point{20, 20, 20}}))
	require.False(t, b.Intersects(Bounds{Min: Point{10, 10, 10}, Max: Point{20, 20, 20}}))
}

func TestBoundsCovers(t *testing.T) {
	outer := Bounds{Min: Point{0, 0, 0}, Max: Point{10, 10, 10}}
	require.True(t, outer.Covers(Bounds{Min: Point{2, 2, 2}, Max: Point{8, 8, 8}}))
	require.True(t, outer.Covers(outer))
	require.False(t, outer.Covers(Bounds{Min: Point{-1, 2, 2}, Max: Point{8, 8, 8}}))
}

func TestNodeInsertRangeAndCollect(t *testing.T) {
	n := &Node[int]{}
	const side = ChunkSize
	origin := Point{0, 0, 0}

	n.Insert(origin, side, Bounds{Min: Point{3, 4, 5}, Max: Point{4, 5, 6}}, 42)

	var out []int
	n.Collect(origin, side, Bounds{Min: Point{3, 4, 5}, Max: Point{4, 5, 6}}, map[int]struct{}{}, &out)
	require.Equal(t, []int{42}, out)

	out = nil
	n.Collect(origin, side, Bounds{Min: Point{100, 100, 100}, Max: Point{101, 101, 101}}, map[int]struct{}{}, &out)
	require.Empty(t, out)
}

func TestNodeInsertPreservesUncoveredVolumeOnSplit(t *testing.T) {
	// Filling the whole cube, then inserting a smaller range with a
	// different value, must leave the untouched remainder at its
	// original value rather than erasing it.
	n := &Node[int]{}
	const side = 8
	origin := Point{0, 0, 0}

	n.Insert(origin, side, Bounds{Min: origin, Max: Point{side, side, side}}, 1)
	n.Insert(origin, side, Bounds{Min: Point{0, 0, 0}, Max: Point{1, 1, 1}}, 2)

	var out []int
	n.Collect(origin, side, Bounds{Min: Point{side - 1, side - 1, side - 1}, Max: Point{side, side, side}}, map[int]struct{}{}, &out)
	require.Equal(t, []int{1}, out)

	out = nil
	n.Collect(origin, side, Bounds{Min: Point{0, 0, 0}, Max: Point{1, 1, 1}}, map[int]struct{}{}, &out)
	require.Equal(t, []int{2}, out)
}

func TestChunkTreeInsertSpansMultipleChunks(t *testing.T) {
	tree := NewChunkTree[int]()
	tree.Insert(Bounds{Min: Point{ChunkSize - 1, 0, 0}, Max: Point{ChunkSize + 1, 1, 1}}, 7)
	require.Equal(t, 2, tree.Len())

	found := tree.Query(Bounds{Min: Point{ChunkSize - 1, 0, 0}, Max: Point{ChunkSize, 1, 1}})
	require.Equal(t, []int{7}, found)
	found = tree.Query(Bounds{Min: Point{ChunkSize, 0, 0}, Max: Point{ChunkSize + 1, 1, 1}})
	require.Equal(t, []int{7}, found)
}
